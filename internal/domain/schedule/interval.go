package schedule

import (
	"time"

	"github.com/TorqueWorks01/garage-scheduler/internal/httperr"
)

// MinDuration is the shortest window a mechanic may declare.
const MinDuration = 30 * time.Minute

// Overlaps reports whether the half-open intervals [s1,e1) and [s2,e2)
// share at least one instant. Touching endpoints (e1 == s2) do not
// overlap, so back-to-back windows are allowed.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && s2.Before(e1)
}

// Contains reports whether instant t falls inside [start, end).
func Contains(start, end, t time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// ValidateInterval enforces ordering and minimum duration. It runs before
// any conflict check.
func ValidateInterval(start, end time.Time) error {
	if !start.Before(end) {
		return httperr.Validation("invalid_interval", "end must be after start")
	}
	if end.Sub(start) < MinDuration {
		return httperr.Validation("interval_too_short", "schedule must span at least 30 minutes")
	}
	return nil
}
