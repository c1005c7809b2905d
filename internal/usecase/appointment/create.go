package appointment

import (
	"context"
	"time"

	"github.com/TorqueWorks01/garage-scheduler/internal/audit"
	domain "github.com/TorqueWorks01/garage-scheduler/internal/domain/appointment"
	"github.com/TorqueWorks01/garage-scheduler/internal/httperr"
	"github.com/TorqueWorks01/garage-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type LineItemInput struct {
	ServiceID uint
	Quantity  int
}

type CreateAppointmentInput struct {
	CustomerID uint

	// Optional preferred mechanic; usually assigned later by an admin.
	MechanicID *uint

	ScheduledAt time.Time
	Items       []LineItemInput
	Notes       string

	Now               time.Time
	MinAdvanceMinutes int
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if len(in.Items) == 0 {
		return nil, httperr.Validation("no_services", "at least one service is required")
	}

	minAdvance := in.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}
	if in.ScheduledAt.Before(in.Now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.Validation("too_soon", "appointment must be booked further in advance")
	}

	// Price line items from the catalog at booking time.
	ids := make([]uint, 0, len(in.Items))
	for _, item := range in.Items {
		if item.Quantity <= 0 {
			return nil, httperr.Validation("invalid_quantity", "quantity must be positive")
		}
		ids = append(ids, item.ServiceID)
	}

	services, err := uc.repo.GetActiveServices(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Service, len(services))
	for _, svc := range services {
		byID[svc.ID] = svc
	}

	items := make([]models.AppointmentService, 0, len(in.Items))
	for _, item := range in.Items {
		svc, ok := byID[item.ServiceID]
		if !ok {
			return nil, httperr.Validation("service_not_found", "one of the selected services is unavailable")
		}
		items = append(items, models.AppointmentService{
			ServiceID: svc.ID,
			Quantity:  item.Quantity,
			Price:     svc.Price,
		})
	}

	if in.MechanicID != nil {
		if err := assertMechanicAvailable(ctx, uc.repo, *in.MechanicID, in.ScheduledAt); err != nil {
			return nil, err
		}
	}

	ap := &models.Appointment{
		CustomerID:  in.CustomerID,
		MechanicID:  in.MechanicID,
		ScheduledAt: in.ScheduledAt,
		Status:      string(domain.InitialStatus()),
		Items:       items,
		Notes:       in.Notes,
	}

	if err := uc.repo.Create(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.CustomerID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// assertMechanicAvailable rejects an instant falling inside one of the
// mechanic's approved unavailable windows. Shared with assignment.
func assertMechanicAvailable(
	ctx context.Context,
	repo domain.Repository,
	mechanicID uint,
	instant time.Time,
) error {

	windows, err := repo.FindUnavailableWindows(ctx, mechanicID, instant)
	if err != nil {
		return err
	}

	if len(windows) > 0 {
		return httperr.Conflict(
			"mechanic_unavailable",
			"mechanic is unavailable at the requested time",
			map[string]any{"conflicts": windows},
		)
	}

	return nil
}
