package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TorqueWorks01/garage-scheduler/internal/httperr"
	"github.com/TorqueWorks01/garage-scheduler/internal/models"
)

func window(status string, start, end time.Time) *models.Schedule {
	return &models.Schedule{
		ID:         1,
		MechanicID: 7,
		StartTime:  start,
		EndTime:    end,
		Kind:       string(KindAvailable),
		Status:     status,
	}
}

func TestLocked(t *testing.T) {
	start, end := at(9, 0), at(17, 0)

	tests := []struct {
		name   string
		status string
		now    time.Time
		want   bool
	}{
		{"approved and started", string(StatusApproved), at(10, 0), true},
		{"approved at the exact start", string(StatusApproved), at(9, 0), true},
		{"approved but not started", string(StatusApproved), at(8, 0), false},
		{"pending even after start", string(StatusPending), at(10, 0), false},
		{"rejected even after start", string(StatusRejected), at(10, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := window(tt.status, start, end)
			assert.Equal(t, tt.want, Locked(s, tt.now))
		})
	}
}

func TestCanMutate(t *testing.T) {
	s := window(string(StatusApproved), at(9, 0), at(17, 0))

	err := CanMutate(s, at(10, 0))
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "schedule_locked"))
	assert.True(t, httperr.IsKind(err, httperr.KindState))

	assert.NoError(t, CanMutate(s, at(8, 0)))
}

func TestCanDelete(t *testing.T) {
	s := window(string(StatusApproved), at(9, 0), at(17, 0))
	before := at(8, 0)

	t.Run("no dependencies", func(t *testing.T) {
		assert.NoError(t, CanDelete(s, before, nil))
	})

	t.Run("blocked by appointments", func(t *testing.T) {
		blocking := []models.Appointment{{ID: 42, ScheduledAt: at(10, 0)}}

		err := CanDelete(s, before, blocking)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "schedule_has_appointments"))
		assert.True(t, httperr.IsKind(err, httperr.KindDependency))

		var be *httperr.BusinessError
		require.ErrorAs(t, err, &be)
		assert.Equal(t, blocking, be.Detail["blocking"])
	})

	t.Run("lock checked before dependencies", func(t *testing.T) {
		blocking := []models.Appointment{{ID: 42}}
		err := CanDelete(s, at(10, 0), blocking)
		require.Error(t, err)
		assert.True(t, httperr.IsBusiness(err, "schedule_locked"))
	})
}

func TestKindAndReview(t *testing.T) {
	assert.True(t, ValidKind("available"))
	assert.True(t, ValidKind("unavailable"))
	assert.False(t, ValidKind("busy"))
	assert.False(t, ValidKind(""))

	assert.NoError(t, CanReview("approved"))
	assert.NoError(t, CanReview("rejected"))
	assert.Error(t, CanReview("pending"))
	assert.Error(t, CanReview("nope"))
}
