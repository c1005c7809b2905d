package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TorqueWorks01/garage-scheduler/internal/audit"
	schedDomain "github.com/TorqueWorks01/garage-scheduler/internal/domain/schedule"
	"github.com/TorqueWorks01/garage-scheduler/internal/httperr"
	"github.com/TorqueWorks01/garage-scheduler/internal/httpresp"
	"github.com/TorqueWorks01/garage-scheduler/internal/middleware"
	"github.com/TorqueWorks01/garage-scheduler/internal/models"
)

// AdminScheduleHandler is the approval queue: admins list pending windows
// and approve or reject them.
type AdminScheduleHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAdminScheduleHandler(db *gorm.DB, audit *audit.Dispatcher) *AdminScheduleHandler {
	return &AdminScheduleHandler{db: db, audit: audit}
}

// --------- Requests ---------

type ApprovalRequest struct {
	Status string `json:"status" binding:"required"`
}

// --------- Handlers ---------

func (h *AdminScheduleHandler) List(c *gin.Context) {
	status := c.DefaultQuery("status", string(schedDomain.StatusPending))

	var schedules []models.Schedule
	if err := h.db.
		Preload("Mechanic").
		Where("status = ?", status).
		Order("start_time ASC").
		Find(&schedules).Error; err != nil {
		httperr.Internal(c, "failed_to_list_schedules", "Could not load schedules.")
		return
	}

	httpresp.OK(c, gin.H{"schedules": schedules})
}

func (h *AdminScheduleHandler) Review(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	scheduleID := parseID(c, "id")
	if scheduleID == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid schedule id.")
		return
	}

	var req ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid approval data.")
		return
	}

	if err := schedDomain.CanReview(req.Status); err != nil {
		httperr.Respond(c, err)
		return
	}

	var s models.Schedule
	if err := h.db.First(&s, scheduleID).Error; err != nil {
		httperr.NotFoundStatus(c, "schedule_not_found", "Schedule not found.")
		return
	}

	if s.Status != string(schedDomain.StatusPending) {
		httperr.Respond(c, httperr.State("already_reviewed", "schedule has already been reviewed"))
		return
	}

	s.Status = req.Status
	if err := h.db.Save(&s).Error; err != nil {
		httperr.Internal(c, "failed_to_review_schedule", "Could not update the schedule.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &adminID,
		Action:   "schedule_" + req.Status,
		Entity:   "schedule",
		EntityID: &s.ID,
	})

	httpresp.OK(c, gin.H{"schedule": s})
}
