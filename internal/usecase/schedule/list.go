package schedule

import (
	"context"
	"time"

	domain "github.com/TorqueWorks01/garage-scheduler/internal/domain/schedule"
	"github.com/TorqueWorks01/garage-scheduler/internal/models"
)

type ListSchedules struct {
	repo domain.Repository
}

func NewListSchedules(repo domain.Repository) *ListSchedules {
	return &ListSchedules{repo: repo}
}

func (uc *ListSchedules) Execute(
	ctx context.Context,
	mechanicID uint,
	from *time.Time,
	to *time.Time,
) ([]models.Schedule, error) {
	return uc.repo.ListForMechanic(ctx, mechanicID, from, to)
}
