package appointment

import (
	"context"

	"github.com/TorqueWorks01/garage-scheduler/internal/audit"
	domain "github.com/TorqueWorks01/garage-scheduler/internal/domain/appointment"
	"github.com/TorqueWorks01/garage-scheduler/internal/httperr"
	"github.com/TorqueWorks01/garage-scheduler/internal/models"
)

type ReviewAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewReviewAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ReviewAppointment {
	return &ReviewAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *ReviewAppointment) Execute(
	ctx context.Context,
	customerID uint,
	appointmentID uint,
	rating int,
	review string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetForCustomer(ctx, appointmentID, customerID)
	if err != nil {
		return nil, httperr.NotFound("appointment_not_found", "appointment not found")
	}

	if err := domain.SetReview(ap, rating, review); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &customerID,
		Action:   "appointment_reviewed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
