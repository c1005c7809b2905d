package schedule

import (
	"context"
	"time"

	"github.com/TorqueWorks01/garage-scheduler/internal/audit"
	domain "github.com/TorqueWorks01/garage-scheduler/internal/domain/schedule"
	"github.com/TorqueWorks01/garage-scheduler/internal/httperr"
	"github.com/TorqueWorks01/garage-scheduler/internal/models"
)

type UpdateScheduleInput struct {
	ScheduleID uint
	MechanicID uint

	StartTime time.Time
	EndTime   time.Time
	Kind      string
	Notes     string

	Now time.Time
}

type UpdateSchedule struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateSchedule(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateSchedule {
	return &UpdateSchedule{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateSchedule) Execute(
	ctx context.Context,
	in UpdateScheduleInput,
) (*models.Schedule, error) {

	if !domain.ValidKind(in.Kind) {
		return nil, httperr.Validation("invalid_kind", "kind must be available or unavailable")
	}

	if err := domain.ValidateInterval(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}

	var updated *models.Schedule

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		s, err := tx.GetForMechanic(ctx, in.ScheduleID, in.MechanicID)
		if err != nil {
			return httperr.NotFound("schedule_not_found", "schedule not found")
		}

		if err := domain.CanMutate(s, in.Now); err != nil {
			return err
		}

		conflicts, err := tx.FindConflicts(ctx, in.MechanicID, in.StartTime, in.EndTime, s.ID)
		if err != nil {
			return err
		}
		if len(conflicts) > 0 {
			return httperr.Conflict(
				"schedule_conflict",
				"schedule overlaps an existing window",
				map[string]any{"conflicts": conflicts},
			)
		}

		s.StartTime = in.StartTime
		s.EndTime = in.EndTime
		s.Kind = in.Kind
		s.Notes = in.Notes
		// Any change discards a prior approval and goes back for review.
		s.Status = string(domain.InitialStatus())

		if err := tx.Update(ctx, s); err != nil {
			return err
		}

		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.MechanicID,
		Action:   "schedule_updated",
		Entity:   "schedule",
		EntityID: &updated.ID,
	})

	return updated, nil
}
