package schedule

import (
	"context"
	"time"

	"github.com/TorqueWorks01/garage-scheduler/internal/audit"
	domain "github.com/TorqueWorks01/garage-scheduler/internal/domain/schedule"
	"github.com/TorqueWorks01/garage-scheduler/internal/httperr"
	"github.com/TorqueWorks01/garage-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateScheduleInput struct {
	MechanicID uint

	StartTime time.Time
	EndTime   time.Time
	Kind      string
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type CreateSchedule struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateSchedule(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateSchedule {
	return &CreateSchedule{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateSchedule) Execute(
	ctx context.Context,
	in CreateScheduleInput,
) (*models.Schedule, error) {

	if !domain.ValidKind(in.Kind) {
		return nil, httperr.Validation("invalid_kind", "kind must be available or unavailable")
	}

	if err := domain.ValidateInterval(in.StartTime, in.EndTime); err != nil {
		return nil, err
	}

	s := &models.Schedule{
		MechanicID: in.MechanicID,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		Kind:       in.Kind,
		Notes:      in.Notes,
		Status:     string(domain.InitialStatus()),
	}

	// Conflict check and insert share one transaction so two concurrent
	// submissions cannot both pass against stale reads.
	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		conflicts, err := tx.FindConflicts(ctx, in.MechanicID, in.StartTime, in.EndTime, 0)
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

		return tx.Create(ctx, s)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.MechanicID,
		Action:   "schedule_created",
		Entity:   "schedule",
		EntityID: &s.ID,
	})

	return s, nil
}
