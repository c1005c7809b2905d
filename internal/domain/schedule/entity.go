package schedule

import (
	"time"

	"github.com/TorqueWorks01/garage-scheduler/internal/httperr"
	"github.com/TorqueWorks01/garage-scheduler/internal/models"
)

// ===============================
// Domain Rules
// ===============================

// Locked reports whether the window may no longer be edited or deleted:
// once approved and already started, the record is frozen.
func Locked(s *models.Schedule, now time.Time) bool {
	return s.Status == string(StatusApproved) && !now.Before(s.StartTime)
}

func CanMutate(s *models.Schedule, now time.Time) error {
	if Locked(s, now) {
		return httperr.State("schedule_locked", "an approved schedule that has already started cannot be changed")
	}
	return nil
}

// CanDelete applies the mutation rule plus the dependency rule: a window
// with appointments inside it must keep existing so those bookings stay
// explainable.
func CanDelete(s *models.Schedule, now time.Time, blocking []models.Appointment) error {
	if err := CanMutate(s, now); err != nil {
		return err
	}
	if len(blocking) > 0 {
		return httperr.Dependency(
			"schedule_has_appointments",
			"schedule cannot be deleted while appointments fall inside it",
			map[string]any{"blocking": blocking},
		)
	}
	return nil
}
