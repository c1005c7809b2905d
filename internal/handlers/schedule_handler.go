package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TorqueWorks01/garage-scheduler/internal/config"
	"github.com/TorqueWorks01/garage-scheduler/internal/httperr"
	"github.com/TorqueWorks01/garage-scheduler/internal/httpresp"
	"github.com/TorqueWorks01/garage-scheduler/internal/middleware"
	"github.com/TorqueWorks01/garage-scheduler/internal/timezone"
	ucSchedule "github.com/TorqueWorks01/garage-scheduler/internal/usecase/schedule"
)

// ======================================================
// HANDLER
// ======================================================

type ScheduleHandler struct {
	cfg *config.Config

	createUC *ucSchedule.CreateSchedule
	updateUC *ucSchedule.UpdateSchedule
	deleteUC *ucSchedule.DeleteSchedule
	listUC   *ucSchedule.ListSchedules
}

func NewScheduleHandler(
	cfg *config.Config,
	createUC *ucSchedule.CreateSchedule,
	updateUC *ucSchedule.UpdateSchedule,
	deleteUC *ucSchedule.DeleteSchedule,
	listUC *ucSchedule.ListSchedules,
) *ScheduleHandler {
	return &ScheduleHandler{
		cfg:      cfg,
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
		listUC:   listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ScheduleRequest struct {
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Type      string `json:"type" binding:"required"`
	Notes     string `json:"notes"`
}

// ======================================================
// LIST
// ======================================================

func (h *ScheduleHandler) List(c *gin.Context) {
	mechanicID := c.MustGet(middleware.ContextUserID).(uint)

	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := parseDate(raw, h.cfg.ShopTimezone)
		if err != nil {
			httperr.BadRequest(c, "invalid_from", "Invalid from date.")
			return
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := parseDate(raw, h.cfg.ShopTimezone)
		if err != nil {
			httperr.BadRequest(c, "invalid_to", "Invalid to date.")
			return
		}
		end := t.Add(24 * time.Hour)
		to = &end
	}

	schedules, err := h.listUC.Execute(c.Request.Context(), mechanicID, from, to)
	if err != nil {
		httperr.Internal(c, "failed_to_list_schedules", "Could not load schedules.")
		return
	}

	httpresp.OK(c, gin.H{"schedules": schedules})
}

// ======================================================
// CREATE
// ======================================================

func (h *ScheduleHandler) Create(c *gin.Context) {
	mechanicID := c.MustGet(middleware.ContextUserID).(uint)

	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid schedule data.")
		return
	}

	start, err := parseInstant(req.StartTime, h.cfg.ShopTimezone)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_time", "Invalid start time.")
		return
	}
	end, err := parseInstant(req.EndTime, h.cfg.ShopTimezone)
	if err != nil {
		httperr.BadRequest(c, "invalid_end_time", "Invalid end time.")
		return
	}

	s, err := h.createUC.Execute(c.Request.Context(), ucSchedule.CreateScheduleInput{
		MechanicID: mechanicID,
		StartTime:  start,
		EndTime:    end,
		Kind:       req.Type,
		Notes:      req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{"schedule": s})
}

// ======================================================
// UPDATE
// ======================================================

func (h *ScheduleHandler) Update(c *gin.Context) {
	mechanicID := c.MustGet(middleware.ContextUserID).(uint)

	scheduleID := parseID(c, "id")
	if scheduleID == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid schedule id.")
		return
	}

	var req ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid schedule data.")
		return
	}

	start, err := parseInstant(req.StartTime, h.cfg.ShopTimezone)
	if err != nil {
		httperr.BadRequest(c, "invalid_start_time", "Invalid start time.")
		return
	}
	end, err := parseInstant(req.EndTime, h.cfg.ShopTimezone)
	if err != nil {
		httperr.BadRequest(c, "invalid_end_time", "Invalid end time.")
		return
	}

	s, err := h.updateUC.Execute(c.Request.Context(), ucSchedule.UpdateScheduleInput{
		ScheduleID: scheduleID,
		MechanicID: mechanicID,
		StartTime:  start,
		EndTime:    end,
		Kind:       req.Type,
		Notes:      req.Notes,
		Now:        timezone.NowIn(h.cfg.ShopTimezone),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"schedule": s})
}

// ======================================================
// DELETE
// ======================================================

func (h *ScheduleHandler) Delete(c *gin.Context) {
	mechanicID := c.MustGet(middleware.ContextUserID).(uint)

	scheduleID := parseID(c, "id")
	if scheduleID == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid schedule id.")
		return
	}

	err := h.deleteUC.Execute(
		c.Request.Context(),
		mechanicID,
		scheduleID,
		timezone.NowIn(h.cfg.ShopTimezone),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"deleted": true})
}
