package appointment

import (
	"context"

	"github.com/TorqueWorks01/garage-scheduler/internal/audit"
	domain "github.com/TorqueWorks01/garage-scheduler/internal/domain/appointment"
	"github.com/TorqueWorks01/garage-scheduler/internal/httperr"
	"github.com/TorqueWorks01/garage-scheduler/internal/models"
)

// AssignMechanic is the admin operation attaching a mechanic to a booking.
// The same unavailability guard as creation applies.
type AssignMechanic struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAssignMechanic(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AssignMechanic {
	return &AssignMechanic{
		repo:  repo,
		audit: audit,
	}
}

func (uc *AssignMechanic) Execute(
	ctx context.Context,
	adminID uint,
	appointmentID uint,
	mechanicID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, httperr.NotFound("appointment_not_found", "appointment not found")
	}

	if domain.IsTerminal(domain.Status(ap.Status)) {
		return nil, httperr.State("terminal_state", "appointment is in a terminal state")
	}

	if err := assertMechanicAvailable(ctx, uc.repo, mechanicID, ap.ScheduledAt); err != nil {
		return nil, err
	}

	ap.MechanicID = &mechanicID

	if err := uc.repo.Update(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "appointment_assigned",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
