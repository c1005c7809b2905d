package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/TorqueWorks01/garage-scheduler/internal/config"
	"github.com/TorqueWorks01/garage-scheduler/internal/httperr"
	"github.com/TorqueWorks01/garage-scheduler/internal/httpresp"
	infraRepo "github.com/TorqueWorks01/garage-scheduler/internal/infra/repository"
	"github.com/TorqueWorks01/garage-scheduler/internal/middleware"
	"github.com/TorqueWorks01/garage-scheduler/internal/timezone"
	ucAppointment "github.com/TorqueWorks01/garage-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER (customer-facing)
// ======================================================

type BookingHandler struct {
	db  *gorm.DB
	cfg *config.Config

	createUC     *ucAppointment.CreateAppointment
	cancelUC     *ucAppointment.CancelAppointment
	reviewUC     *ucAppointment.ReviewAppointment
	softDeleteUC *ucAppointment.SoftDeleteAppointment
}

func NewBookingHandler(
	db *gorm.DB,
	cfg *config.Config,
	createUC *ucAppointment.CreateAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	reviewUC *ucAppointment.ReviewAppointment,
	softDeleteUC *ucAppointment.SoftDeleteAppointment,
) *BookingHandler {
	return &BookingHandler{
		db:           db,
		cfg:          cfg,
		createUC:     createUC,
		cancelUC:     cancelUC,
		reviewUC:     reviewUC,
		softDeleteUC: softDeleteUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type BookingItemRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`
	Quantity  int  `json:"quantity"`
}

type CreateBookingRequest struct {
	ScheduledAt string               `json:"scheduled_at" binding:"required"`
	MechanicID  *uint                `json:"mechanic_id"`
	Items       []BookingItemRequest `json:"items" binding:"required"`
	Notes       string               `json:"notes"`
}

type ReviewRequest struct {
	Rating int    `json:"rating" binding:"required"`
	Review string `json:"review"`
}

// ======================================================
// CREATE
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid booking data.")
		return
	}

	scheduledAt, err := parseInstant(req.ScheduledAt, h.cfg.ShopTimezone)
	if err != nil {
		httperr.BadRequest(c, "invalid_scheduled_at", "Invalid appointment time.")
		return
	}

	items := make([]ucAppointment.LineItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		qty := item.Quantity
		if qty == 0 {
			qty = 1
		}
		items = append(items, ucAppointment.LineItemInput{
			ServiceID: item.ServiceID,
			Quantity:  qty,
		})
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		CustomerID:        customerID,
		MechanicID:        req.MechanicID,
		ScheduledAt:       scheduledAt,
		Items:             items,
		Notes:             req.Notes,
		Now:               timezone.NowIn(h.cfg.ShopTimezone),
		MinAdvanceMinutes: h.cfg.MinAdvanceMinutes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, gin.H{"appointment": ap})
}

// ======================================================
// HISTORY
// ======================================================

func (h *BookingHandler) List(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	repo := infraRepo.NewAppointmentGormRepository(h.db)
	apps, err := repo.ListForCustomer(c.Request.Context(), customerID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Could not load booking history.")
		return
	}

	httpresp.OK(c, gin.H{"appointments": apps})
}

// ======================================================
// CANCEL
// ======================================================

func (h *BookingHandler) Cancel(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	appointmentID := parseID(c, "id")
	if appointmentID == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	ap, err := h.cancelUC.Execute(
		c.Request.Context(),
		customerID,
		appointmentID,
		timezone.NowIn(h.cfg.ShopTimezone),
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"appointment": ap})
}

// ======================================================
// SOFT DELETE
// ======================================================

func (h *BookingHandler) Delete(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	appointmentID := parseID(c, "id")
	if appointmentID == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	if err := h.softDeleteUC.Execute(c.Request.Context(), customerID, appointmentID); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"deleted": true})
}

// ======================================================
// REVIEW
// ======================================================

func (h *BookingHandler) Review(c *gin.Context) {
	customerID := c.MustGet(middleware.ContextUserID).(uint)

	appointmentID := parseID(c, "id")
	if appointmentID == 0 {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid review data.")
		return
	}

	ap, err := h.reviewUC.Execute(
		c.Request.Context(),
		customerID,
		appointmentID,
		req.Rating,
		req.Review,
	)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"appointment": ap})
}
