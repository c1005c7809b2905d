package appointment

import (
	"time"

	"github.com/TorqueWorks01/garage-scheduler/internal/httperr"
	"github.com/TorqueWorks01/garage-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Transition(ap *models.Appointment, to Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)
	switch to {
	case StatusCancelled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCancelled, now)
}

// SoftDelete hides a cancelled appointment from the customer's history.
func SoftDelete(ap *models.Appointment) error {
	if Status(ap.Status) != StatusCancelled {
		return httperr.State("not_cancelled", "only cancelled appointments can be removed")
	}
	ap.Deleted = true
	return nil
}

// SetReview records the customer's rating once the visit is completed.
func SetReview(ap *models.Appointment, rating int, review string) error {
	if Status(ap.Status) != StatusCompleted {
		return httperr.State("not_completed", "only completed appointments can be reviewed")
	}
	if rating < 1 || rating > 5 {
		return httperr.Validation("invalid_rating", "rating must be between 1 and 5")
	}

	ap.Rating = &rating
	ap.Review = review
	return nil
}
