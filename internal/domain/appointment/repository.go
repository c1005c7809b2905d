package appointment

import (
	"context"
	"time"

	"github.com/TorqueWorks01/garage-scheduler/internal/models"
)

type ListFilter struct {
	Status string
	Date   *time.Time
}

type Repository interface {
	// -------- Services (catalog lookup at booking time) --------
	GetActiveServices(
		ctx context.Context,
		ids []uint,
	) ([]models.Service, error)

	// -------- Appointment (create) --------
	Create(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (fetch) --------
	GetForCustomer(
		ctx context.Context,
		appointmentID uint,
		customerID uint,
	) (*models.Appointment, error)

	GetForMechanic(
		ctx context.Context,
		appointmentID uint,
		mechanicID uint,
	) (*models.Appointment, error)

	GetByID(
		ctx context.Context,
		appointmentID uint,
	) (*models.Appointment, error)

	Update(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Listing --------
	ListForCustomer(
		ctx context.Context,
		customerID uint,
	) ([]models.Appointment, error)

	ListForMechanic(
		ctx context.Context,
		mechanicID uint,
		filter ListFilter,
	) ([]models.Appointment, error)

	ListAll(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)

	// -------- Unavailability guard --------

	// FindUnavailableWindows returns the mechanic's approved unavailable
	// schedules containing the instant. A non-empty result blocks
	// creation and assignment.
	FindUnavailableWindows(
		ctx context.Context,
		mechanicID uint,
		instant time.Time,
	) ([]models.Schedule, error)
}
