package schedule

import (
	"context"
	"time"

	"github.com/TorqueWorks01/garage-scheduler/internal/models"
)

type Repository interface {
	// -------- Schedule --------
	Create(
		ctx context.Context,
		s *models.Schedule,
	) error

	Update(
		ctx context.Context,
		s *models.Schedule,
	) error

	Delete(
		ctx context.Context,
		s *models.Schedule,
	) error

	GetForMechanic(
		ctx context.Context,
		scheduleID uint,
		mechanicID uint,
	) (*models.Schedule, error)

	ListForMechanic(
		ctx context.Context,
		mechanicID uint,
		from *time.Time,
		to *time.Time,
	) ([]models.Schedule, error)

	// -------- Conflict check --------

	// FindConflicts returns the mechanic's schedules whose [start,end)
	// interval overlaps the proposed one, excluding excludeID (0 = none).
	// Inside Transaction the matching rows are read under a row lock so
	// check-then-write stays atomic.
	FindConflicts(
		ctx context.Context,
		mechanicID uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) ([]models.Schedule, error)

	// -------- Dependencies --------

	// ListAppointmentsWithin returns non-cancelled appointments whose
	// instant falls inside [start, end) for the mechanic.
	ListAppointmentsWithin(
		ctx context.Context,
		mechanicID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Atomicity --------
	Transaction(
		ctx context.Context,
		fn func(Repository) error,
	) error
}
