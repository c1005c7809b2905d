package models

import "time"

// Notification is a best-effort message to a customer, written asynchronously
// when an appointment changes status. Delivery is handled out of band.
type Notification struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID        uint  `gorm:"index" json:"user_id"`
	AppointmentID *uint `json:"appointment_id"`

	Status  string `gorm:"size:20" json:"status"`
	Message string `gorm:"size:255" json:"message"`

	CreatedAt time.Time `json:"created_at"`
}
