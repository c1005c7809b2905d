package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TorqueWorks01/garage-scheduler/internal/config"
	domain "github.com/TorqueWorks01/garage-scheduler/internal/domain/appointment"
	"github.com/TorqueWorks01/garage-scheduler/internal/httperr"
	"github.com/TorqueWorks01/garage-scheduler/internal/httpresp"
	infraRepo "github.com/TorqueWorks01/garage-scheduler/internal/infra/repository"
	"github.com/TorqueWorks01/garage-scheduler/internal/middleware"
	ucAppointment "github.com/TorqueWorks01/garage-scheduler/internal/usecase/appointment"
)

type AdminAppointmentHandler struct {
	db  *gorm.DB
	cfg *config.Config

	assignUC *ucAppointment.AssignMechanic
}

func NewAdminAppointmentHandler(
	db *gorm.DB,
	cfg *config.Config,
	assignUC *ucAppointment.AssignMechanic,
) *AdminAppointmentHandler {
	return &AdminAppointmentHandler{
		db:       db,
		cfg:      cfg,
		assignUC: assignUC,
	}
}

// --------- Requests ---------

type AssignMechanicRequest struct {
	MechanicID uint `json:"mechanic_id" binding:"required"`
}

// --------- Handlers ---------

func (h *AdminAppointmentHandler) List(c *gin.Context) {
	filter := domain.ListFilter{Status: c.Query("status")}

	if raw := c.Query("date"); raw != "" {
		date, err := parseDate(raw, h.cfg.ShopTimezone)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Invalid date.")
			return
		}
		filter.Date = &date
	}

	repo := infraRepo.NewAppointmentGormRepository(h.db)
	apps, err := repo.ListAll(c.Request.Context(), filter)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not load appointments.")
		return
	}

	httpresp.OK(c, gin.H{"appointments": apps})
}

func (h *AdminAppointmentHandler) Assign(c *gin.Context) {
	adminID := c.MustGet(middleware.ContextUserID).(uint)

	appointmentID := parseID(c, "id")
	if appointmentID == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req AssignMechanicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid assignment data.")
		return
	}

	ap, err := h.assignUC.Execute(c.Request.Context(), adminID, appointmentID, req.MechanicID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"appointment": ap})
}
