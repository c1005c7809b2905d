package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TorqueWorks01/garage-scheduler/internal/calendar"
	"github.com/TorqueWorks01/garage-scheduler/internal/config"
	domain "github.com/TorqueWorks01/garage-scheduler/internal/domain/appointment"
	"github.com/TorqueWorks01/garage-scheduler/internal/httperr"
	"github.com/TorqueWorks01/garage-scheduler/internal/httpresp"
	infraRepo "github.com/TorqueWorks01/garage-scheduler/internal/infra/repository"
	"github.com/TorqueWorks01/garage-scheduler/internal/middleware"
	"github.com/TorqueWorks01/garage-scheduler/internal/timezone"
)

// CalendarHandler serves the mechanic's calendar: the event set is always
// re-derived from the full schedule and appointment lists, never patched.
type CalendarHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewCalendarHandler(db *gorm.DB, cfg *config.Config) *CalendarHandler {
	return &CalendarHandler{db: db, cfg: cfg}
}

func (h *CalendarHandler) Events(c *gin.Context) {
	mechanicID := c.MustGet(middleware.ContextUserID).(uint)

	loc := timezone.Location(h.cfg.ShopTimezone)
	now := time.Now().In(loc)

	// Default window: start of current month through the next month.
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 2, 0)

	if raw := c.Query("from"); raw != "" {
		t, err := parseDate(raw, h.cfg.ShopTimezone)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", "Invalid from date.")
			return
		}
		from = t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := parseDate(raw, h.cfg.ShopTimezone)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", "Invalid to date.")
			return
		}
		to = t.Add(24 * time.Hour)
	}

	ctx := c.Request.Context()

	scheduleRepo := infraRepo.NewScheduleGormRepository(h.db)
	schedules, err := scheduleRepo.ListForMechanic(ctx, mechanicID, &from, &to)
	if err != nil {
		httperr.Internal(c, "failed_to_load_schedules", "Could not load calendar data.")
		return
	}

	appointmentRepo := infraRepo.NewAppointmentGormRepository(h.db)
	apps, err := appointmentRepo.ListForMechanic(ctx, mechanicID, domain.ListFilter{})
	if err != nil {
		httperr.Internal(c, "failed_to_load_appointments", "Could not load calendar data.")
		return
	}

	httpresp.OK(c, gin.H{
		"events": calendar.BuildEvents(schedules, apps),
	})
}
