package appointment

import (
	"context"
	"time"

	"github.com/TorqueWorks01/garage-scheduler/internal/audit"
	domain "github.com/TorqueWorks01/garage-scheduler/internal/domain/appointment"
	"github.com/TorqueWorks01/garage-scheduler/internal/httperr"
	"github.com/TorqueWorks01/garage-scheduler/internal/models"
	"github.com/TorqueWorks01/garage-scheduler/internal/notify"
)

type UpdateStatusInput struct {
	AppointmentID uint
	MechanicID    uint

	Status string
	Notes  string

	Now time.Time
}

type UpdateStatus struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notify.Dispatcher
}

func NewUpdateStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notify *notify.Dispatcher,
) *UpdateStatus {
	return &UpdateStatus{
		repo:   repo,
		audit:  audit,
		notify: notify,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Appointment, error) {

	if !domain.ValidStatus(in.Status) {
		return nil, httperr.Validation("invalid_status", "unknown appointment status")
	}

	ap, err := uc.repo.GetForMechanic(ctx, in.AppointmentID, in.MechanicID)
	if err != nil {
		return nil, httperr.NotFound("appointment_not_found", "appointment not found")
	}

	if err := domain.Transition(ap, domain.Status(in.Status), in.Now); err != nil {
		return nil, err
	}

	if in.Notes != "" {
		ap.Notes = in.Notes
	}

	if err := uc.repo.Update(ctx, ap); err != nil {
		return nil, err
	}

	// Best effort: the customer hears about the change, but a lost
	// notification never rolls back the transition.
	uc.notify.Dispatch(notify.Event{
		UserID:        ap.CustomerID,
		AppointmentID: ap.ID,
		Status:        ap.Status,
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.MechanicID,
		Action:   "appointment_status_" + ap.Status,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
