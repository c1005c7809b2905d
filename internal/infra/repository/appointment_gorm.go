package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/TorqueWorks01/garage-scheduler/internal/domain/appointment"
	"github.com/TorqueWorks01/garage-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *AppointmentGormRepository) GetActiveServices(
	ctx context.Context,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ? AND active = true", ids).
		Find(&services).Error; err != nil {
		return nil, err
	}

	return services, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) Create(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Create(ap).Error
}

func (r *AppointmentGormRepository) GetForCustomer(
	ctx context.Context,
	appointmentID uint,
	customerID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Items.Service").
		Where("id = ? AND customer_id = ? AND deleted = false", appointmentID, customerID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetForMechanic(
	ctx context.Context,
	appointmentID uint,
	mechanicID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Items.Service").
		Preload("Customer").
		Where("id = ? AND mechanic_id = ?", appointmentID, mechanicID).
		First(&ap).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) GetByID(
	ctx context.Context,
	appointmentID uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Items.Service").
		First(&ap, appointmentID).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

func (r *AppointmentGormRepository) ListForCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Items.Service").
		Preload("Mechanic").
		Where("customer_id = ? AND deleted = false", customerID).
		Order("scheduled_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListForMechanic(
	ctx context.Context,
	mechanicID uint,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Items.Service").
		Preload("Customer").
		Where("mechanic_id = ?", mechanicID)

	q = applyFilter(q, filter)

	var apps []models.Appointment
	if err := q.Order("scheduled_at ASC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListAll(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Items.Service").
		Preload("Customer").
		Preload("Mechanic")

	q = applyFilter(q, filter)

	var apps []models.Appointment
	if err := q.Order("scheduled_at DESC").Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func applyFilter(q *gorm.DB, filter domain.ListFilter) *gorm.DB {
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Date != nil {
		dayStart := time.Date(
			filter.Date.Year(), filter.Date.Month(), filter.Date.Day(),
			0, 0, 0, 0, filter.Date.Location(),
		)
		q = q.Where("scheduled_at >= ? AND scheduled_at < ?", dayStart, dayStart.Add(24*time.Hour))
	}
	return q
}

// --------------------------------------------------
// Unavailability guard
// --------------------------------------------------

func (r *AppointmentGormRepository) FindUnavailableWindows(
	ctx context.Context,
	mechanicID uint,
	instant time.Time,
) ([]models.Schedule, error) {

	var windows []models.Schedule
	if err := r.db.WithContext(ctx).
		Where(
			"mechanic_id = ? AND kind = 'unavailable' AND status = 'approved' AND start_time <= ? AND end_time > ?",
			mechanicID, instant, instant,
		).
		Find(&windows).Error; err != nil {
		return nil, err
	}

	return windows, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
