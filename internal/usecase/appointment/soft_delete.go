package appointment

import (
	"context"

	"github.com/TorqueWorks01/garage-scheduler/internal/audit"
	domain "github.com/TorqueWorks01/garage-scheduler/internal/domain/appointment"
	"github.com/TorqueWorks01/garage-scheduler/internal/httperr"
)

type SoftDeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSoftDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SoftDeleteAppointment {
	return &SoftDeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *SoftDeleteAppointment) Execute(
	ctx context.Context,
	customerID uint,
	appointmentID uint,
) error {

	ap, err := uc.repo.GetForCustomer(ctx, appointmentID, customerID)
	if err != nil {
		return httperr.NotFound("appointment_not_found", "appointment not found")
	}

	if err := domain.SoftDelete(ap); err != nil {
		return err
	}

	if err := uc.repo.Update(ctx, ap); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &customerID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return nil
}
