package schedule

import (
	"context"
	"time"

	"github.com/TorqueWorks01/garage-scheduler/internal/audit"
	domain "github.com/TorqueWorks01/garage-scheduler/internal/domain/schedule"
	"github.com/TorqueWorks01/garage-scheduler/internal/httperr"
)

type DeleteSchedule struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteSchedule(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteSchedule {
	return &DeleteSchedule{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteSchedule) Execute(
	ctx context.Context,
	mechanicID uint,
	scheduleID uint,
	now time.Time,
) error {

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		s, err := tx.GetForMechanic(ctx, scheduleID, mechanicID)
		if err != nil {
			return httperr.NotFound("schedule_not_found", "schedule not found")
		}

		blocking, err := tx.ListAppointmentsWithin(ctx, mechanicID, s.StartTime, s.EndTime)
		if err != nil {
			return err
		}

		if err := domain.CanDelete(s, now, blocking); err != nil {
			return err
		}

		return tx.Delete(ctx, s)
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &mechanicID,
		Action:   "schedule_deleted",
		Entity:   "schedule",
		EntityID: &scheduleID,
	})

	return nil
}
