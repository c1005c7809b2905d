package calendar

import (
	"fmt"
	"time"

	schedDomain "github.com/TorqueWorks01/garage-scheduler/internal/domain/schedule"
	"github.com/TorqueWorks01/garage-scheduler/internal/models"
)

// AppointmentSpan is the synthetic visual duration of an appointment
// event; the real duration of the visit is not tracked.
const AppointmentSpan = time.Hour

type Event struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	Source string `json:"source"` // "schedule" | "appointment"
	Kind   string `json:"kind,omitempty"`
	Status string `json:"status"`
	Color  string `json:"color"`
}

// BuildEvents derives the full replacement event set from the current
// schedule and appointment lists. Callers re-run it after every refresh;
// there is no incremental patching.
func BuildEvents(schedules []models.Schedule, appointments []models.Appointment) []Event {
	events := make([]Event, 0, len(schedules)+len(appointments))

	for _, s := range schedules {
		events = append(events, Event{
			ID:     fmt.Sprintf("schedule-%d", s.ID),
			Title:  scheduleTitle(&s),
			Start:  s.StartTime,
			End:    s.EndTime,
			Source: "schedule",
			Kind:   s.Kind,
			Status: s.Status,
			Color:  scheduleColor(&s),
		})
	}

	for _, ap := range appointments {
		events = append(events, Event{
			ID:     fmt.Sprintf("appointment-%d", ap.ID),
			Title:  appointmentTitle(&ap),
			Start:  ap.ScheduledAt,
			End:    ap.ScheduledAt.Add(AppointmentSpan),
			Source: "appointment",
			Status: ap.Status,
			Color:  appointmentColor(ap.Status),
		})
	}

	return events
}

func scheduleTitle(s *models.Schedule) string {
	if s.Kind == string(schedDomain.KindUnavailable) {
		return "Unavailable"
	}
	return "Available"
}

func scheduleColor(s *models.Schedule) string {
	if s.Status == string(schedDomain.StatusPending) {
		return "#f0ad4e"
	}
	if s.Kind == string(schedDomain.KindUnavailable) {
		return "#d9534f"
	}
	return "#5cb85c"
}

func appointmentColor(status string) string {
	switch status {
	case "pending":
		return "#f0ad4e"
	case "confirmed":
		return "#0275d8"
	case "in_progress":
		return "#5bc0de"
	case "completed":
		return "#5cb85c"
	default:
		return "#999999"
	}
}

func appointmentTitle(ap *models.Appointment) string {
	if ap.Customer.Name != "" {
		return fmt.Sprintf("Appointment - %s", ap.Customer.Name)
	}
	return fmt.Sprintf("Appointment #%d", ap.ID)
}
