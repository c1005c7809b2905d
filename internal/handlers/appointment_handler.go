package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TorqueWorks01/garage-scheduler/internal/config"
	domain "github.com/TorqueWorks01/garage-scheduler/internal/domain/appointment"
	"github.com/TorqueWorks01/garage-scheduler/internal/dto"
	"github.com/TorqueWorks01/garage-scheduler/internal/httperr"
	"github.com/TorqueWorks01/garage-scheduler/internal/httpresp"
	infraRepo "github.com/TorqueWorks01/garage-scheduler/internal/infra/repository"
	"github.com/TorqueWorks01/garage-scheduler/internal/middleware"
	"github.com/TorqueWorks01/garage-scheduler/internal/models"
	"github.com/TorqueWorks01/garage-scheduler/internal/timezone"
	ucAppointment "github.com/TorqueWorks01/garage-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER (mechanic-facing)
// ======================================================

type AppointmentHandler struct {
	db  *gorm.DB
	cfg *config.Config

	updateStatusUC *ucAppointment.UpdateStatus
}

func NewAppointmentHandler(
	db *gorm.DB,
	cfg *config.Config,
	updateStatusUC *ucAppointment.UpdateStatus,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:             db,
		cfg:            cfg,
		updateStatusUC: updateStatusUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	mechanicID := c.MustGet(middleware.ContextUserID).(uint)

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
	apps, err := repo.ListForMechanic(c.Request.Context(), mechanicID, filter)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not load appointments.")
		return
	}

	httpresp.OK(c, gin.H{"appointments": toListDTOs(apps)})
}

// ======================================================
// UPDATE STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	mechanicID := c.MustGet(middleware.ContextUserID).(uint)

	appointmentID := parseID(c, "id")
	if appointmentID == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid status data.")
		return
	}

	ap, err := h.updateStatusUC.Execute(c.Request.Context(), ucAppointment.UpdateStatusInput{
		AppointmentID: appointmentID,
		MechanicID:    mechanicID,
		Status:        req.Status,
		Notes:         req.Notes,
		Now:           timezone.NowIn(h.cfg.ShopTimezone),
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"appointment": ap})
}

// ======================================================
// HELPERS
// ======================================================

func toListDTOs(apps []models.Appointment) []dto.AppointmentListDTO {
	out := make([]dto.AppointmentListDTO, 0, len(apps))
	for _, ap := range apps {
		services := make([]string, 0, len(ap.Items))
		total := 0.0
		for _, item := range ap.Items {
			services = append(services, item.Service.Name)
			total += item.Price * float64(item.Quantity)
		}

		out = append(out, dto.AppointmentListDTO{
			ID:           ap.ID,
			ScheduledAt:  ap.ScheduledAt,
			Status:       ap.Status,
			CustomerName: ap.Customer.Name,
			Services:     services,
			Total:        total,
		})
	}
	return out
}
