package notify

import (
	"gorm.io/gorm"

	"github.com/TorqueWorks01/garage-scheduler/internal/models"
)

// messages maps the appointment status that triggered the notification to
// the customer-facing text.
var messages = map[string]string{
	"confirmed":   "Your appointment has been confirmed.",
	"in_progress": "Work on your vehicle has started.",
	"completed":   "Your vehicle is ready for pickup.",
	"cancelled":   "Your appointment has been cancelled.",
}

func MessageFor(status string) string {
	if m, ok := messages[status]; ok {
		return m
	}
	return "Your appointment has been updated."
}

// Store persists notifications; actual delivery (email, SMS) is handled by
// an external worker reading this table.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Save(n *models.Notification) error {
	return s.db.Create(n).Error
}
