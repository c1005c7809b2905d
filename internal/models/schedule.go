package models

import "time"

// Schedule is a mechanic-declared availability or unavailability window.
// Intervals are half-open: [StartTime, EndTime).
type Schedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	MechanicID uint `gorm:"index" json:"mechanic_id"`
	Mechanic   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"mechanic"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Kind string `gorm:"size:20;default:'available'" json:"kind"`

	Notes  string `gorm:"size:255" json:"notes"`
	Status string `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
