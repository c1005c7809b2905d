package schedule

import "github.com/TorqueWorks01/garage-scheduler/internal/httperr"

// ===============================
// Schedule Kind / Approval Status
// ===============================

type Kind string

const (
	KindAvailable   Kind = "available"
	KindUnavailable Kind = "unavailable"
)

func ValidKind(k string) bool {
	return k == string(KindAvailable) || k == string(KindUnavailable)
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// InitialStatus is assigned on create and re-assigned on every update,
// forcing admin re-review after any change.
func InitialStatus() Status {
	return StatusPending
}

// CanReview validates an admin approval decision.
func CanReview(to string) error {
	if to != string(StatusApproved) && to != string(StatusRejected) {
		return httperr.Validation("invalid_approval_status", "approval status must be approved or rejected")
	}
	return nil
}
