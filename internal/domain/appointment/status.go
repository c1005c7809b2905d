package appointment

import "github.com/TorqueWorks01/garage-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func InitialStatus() Status {
	return StatusPending
}

// forward holds the single allowed next step; skipping levels is not
// permitted. Cancellation is handled separately.
var forward = map[Status]Status{
	StatusPending:    StatusConfirmed,
	StatusConfirmed:  StatusInProgress,
	StatusInProgress: StatusCompleted,
}

func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// CanTransition validates one status change. Forward moves advance exactly
// one step; cancellation is reachable from any non-terminal state.
func CanTransition(from, to Status) error {
	if IsTerminal(from) {
		return httperr.State("terminal_state", "appointment is in a terminal state")
	}

	if to == StatusCancelled {
		return nil
	}

	if next, ok := forward[from]; ok && next == to {
		return nil
	}

	return httperr.State("invalid_transition", "status transition not allowed")
}

func CanCancel(current Status) error {
	return CanTransition(current, StatusCancelled)
}
