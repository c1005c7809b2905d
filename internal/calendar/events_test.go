package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TorqueWorks01/garage-scheduler/internal/models"
)

func TestBuildEvents(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	schedules := []models.Schedule{
		{ID: 1, StartTime: start, EndTime: start.Add(3 * time.Hour), Kind: "available", Status: "approved"},
		{ID: 2, StartTime: start.Add(4 * time.Hour), EndTime: start.Add(6 * time.Hour), Kind: "unavailable", Status: "approved"},
		{ID: 3, StartTime: start.Add(7 * time.Hour), EndTime: start.Add(9 * time.Hour), Kind: "available", Status: "pending"},
	}
	appointments := []models.Appointment{
		{ID: 5, ScheduledAt: start.Add(time.Hour), Status: "confirmed", Customer: models.User{Name: "Dana Reyes"}},
		{ID: 6, ScheduledAt: start.Add(2 * time.Hour), Status: "pending"},
	}

	events := BuildEvents(schedules, appointments)
	require.Len(t, events, 5)

	byID := map[string]Event{}
	for _, ev := range events {
		byID[ev.ID] = ev
	}

	t.Run("schedules span their real interval", func(t *testing.T) {
		ev := byID["schedule-1"]
		assert.Equal(t, "schedule", ev.Source)
		assert.Equal(t, "Available", ev.Title)
		assert.Equal(t, start, ev.Start)
		assert.Equal(t, start.Add(3*time.Hour), ev.End)
	})

	t.Run("unavailable windows are red", func(t *testing.T) {
		ev := byID["schedule-2"]
		assert.Equal(t, "Unavailable", ev.Title)
		assert.Equal(t, "#d9534f", ev.Color)
	})

	t.Run("pending windows are amber regardless of kind", func(t *testing.T) {
		assert.Equal(t, "#f0ad4e", byID["schedule-3"].Color)
	})

	t.Run("appointments get the synthetic span", func(t *testing.T) {
		ev := byID["appointment-5"]
		assert.Equal(t, "appointment", ev.Source)
		assert.Equal(t, "Appointment - Dana Reyes", ev.Title)
		assert.Equal(t, ev.Start.Add(AppointmentSpan), ev.End)
	})

	t.Run("nameless customer falls back to the id", func(t *testing.T) {
		assert.Equal(t, "Appointment #6", byID["appointment-6"].Title)
	})
}

func TestBuildEventsEmpty(t *testing.T) {
	events := BuildEvents(nil, nil)
	assert.NotNil(t, events)
	assert.Empty(t, events)
}
