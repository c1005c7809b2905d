package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerID uint `gorm:"index" json:"customer_id"`
	Customer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	// Nil until an admin assigns a mechanic.
	MechanicID *uint `gorm:"index" json:"mechanic_id"`
	Mechanic   *User `gorm:"foreignKey:MechanicID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"mechanic,omitempty"`

	ScheduledAt time.Time `json:"scheduled_at"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	Items []AppointmentService `gorm:"constraint:OnDelete:CASCADE;" json:"items"`

	Notes string `gorm:"size:255" json:"notes"`

	Rating *int   `json:"rating"`
	Review string `gorm:"size:500" json:"review"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	// Soft delete set by the customer on cancelled appointments;
	// hidden from listings, never physically removed.
	Deleted bool `gorm:"default:false" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AppointmentService is one line item of a booking, priced at booking time.
type AppointmentService struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	AppointmentID uint `gorm:"index" json:"appointment_id"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Quantity int     `gorm:"default:1" json:"quantity"`
	Price    float64 `json:"price"`
}
