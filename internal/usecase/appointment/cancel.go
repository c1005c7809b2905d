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

type CancelAppointment struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	notify *notify.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notify *notify.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:   repo,
		audit:  audit,
		notify: notify,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	customerID uint,
	appointmentID uint,
	now time.Time,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetForCustomer(ctx, appointmentID, customerID)
	if err != nil {
		return nil, httperr.NotFound("appointment_not_found", "appointment not found")
	}

	if err := domain.Cancel(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, ap); err != nil {
		return nil, err
	}

	uc.notify.Dispatch(notify.Event{
		UserID:        ap.CustomerID,
		AppointmentID: ap.ID,
		Status:        ap.Status,
	})

	uc.audit.Dispatch(audit.Event{
		UserID:   &customerID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
