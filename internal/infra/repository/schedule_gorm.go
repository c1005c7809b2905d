package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/TorqueWorks01/garage-scheduler/internal/domain/schedule"
	"github.com/TorqueWorks01/garage-scheduler/internal/models"
)

type ScheduleGormRepository struct {
	db *gorm.DB
}

func NewScheduleGormRepository(db *gorm.DB) *ScheduleGormRepository {
	return &ScheduleGormRepository{db: db}
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *ScheduleGormRepository) Create(
	ctx context.Context,
	s *models.Schedule,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *ScheduleGormRepository) Update(
	ctx context.Context,
	s *models.Schedule,
) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *ScheduleGormRepository) Delete(
	ctx context.Context,
	s *models.Schedule,
) error {
	return r.db.WithContext(ctx).Delete(s).Error
}

func (r *ScheduleGormRepository) GetForMechanic(
	ctx context.Context,
	scheduleID uint,
	mechanicID uint,
) (*models.Schedule, error) {

	var s models.Schedule
	if err := r.db.WithContext(ctx).
		Where("id = ? AND mechanic_id = ?", scheduleID, mechanicID).
		First(&s).Error; err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *ScheduleGormRepository) ListForMechanic(
	ctx context.Context,
	mechanicID uint,
	from *time.Time,
	to *time.Time,
) ([]models.Schedule, error) {

	q := r.db.WithContext(ctx).
		Where("mechanic_id = ?", mechanicID)

	if from != nil {
		q = q.Where("end_time > ?", *from)
	}
	if to != nil {
		q = q.Where("start_time < ?", *to)
	}

	var schedules []models.Schedule
	if err := q.Order("start_time ASC").Find(&schedules).Error; err != nil {
		return nil, err
	}

	return schedules, nil
}

// --------------------------------------------------
// Conflict check
// --------------------------------------------------

// Half-open intervals: start_time < end AND end_time > start. Rows are
// locked FOR UPDATE so two concurrent submissions serialize; the loser
// re-reads the winner's row and gets the conflict.
func (r *ScheduleGormRepository) FindConflicts(
	ctx context.Context,
	mechanicID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) ([]models.Schedule, error) {

	q := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"mechanic_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			mechanicID, string(domain.StatusRejected), end, start,
		)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var conflicts []models.Schedule
	if err := q.Order("start_time ASC").Find(&conflicts).Error; err != nil {
		return nil, err
	}

	return conflicts, nil
}

// --------------------------------------------------
// Dependencies
// --------------------------------------------------

func (r *ScheduleGormRepository) ListAppointmentsWithin(
	ctx context.Context,
	mechanicID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"mechanic_id = ? AND status <> ? AND scheduled_at >= ? AND scheduled_at < ?",
			mechanicID, "cancelled", start, end,
		).
		Order("scheduled_at ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Atomicity
// --------------------------------------------------

func (r *ScheduleGormRepository) Transaction(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ScheduleGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*ScheduleGormRepository)(nil)
