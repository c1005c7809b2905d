package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/TorqueWorks01/garage-scheduler/internal/audit"
	"github.com/TorqueWorks01/garage-scheduler/internal/cache"
	"github.com/TorqueWorks01/garage-scheduler/internal/config"
	"github.com/TorqueWorks01/garage-scheduler/internal/handlers"
	infraRepo "github.com/TorqueWorks01/garage-scheduler/internal/infra/repository"
	"github.com/TorqueWorks01/garage-scheduler/internal/middleware"
	"github.com/TorqueWorks01/garage-scheduler/internal/models"
	"github.com/TorqueWorks01/garage-scheduler/internal/notify"
	ucAppointment "github.com/TorqueWorks01/garage-scheduler/internal/usecase/appointment"
	ucSchedule "github.com/TorqueWorks01/garage-scheduler/internal/usecase/schedule"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	cch *cache.Cache,
	log *zap.Logger,
) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	scheduleRepo := infraRepo.NewScheduleGormRepository(db)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	notifyStore := notify.NewStore(db)
	notifyDispatcher := notify.NewDispatcher(notifyStore, log)

	// ======================================================
	// USE CASES (SCHEDULES)
	// ======================================================
	createScheduleUC := ucSchedule.NewCreateSchedule(scheduleRepo, auditDispatcher)
	updateScheduleUC := ucSchedule.NewUpdateSchedule(scheduleRepo, auditDispatcher)
	deleteScheduleUC := ucSchedule.NewDeleteSchedule(scheduleRepo, auditDispatcher)
	listSchedulesUC := ucSchedule.NewListSchedules(scheduleRepo)

	// ======================================================
	// USE CASES (APPOINTMENTS)
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, auditDispatcher)
	updateStatusUC := ucAppointment.NewUpdateStatus(appointmentRepo, auditDispatcher, notifyDispatcher)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, auditDispatcher, notifyDispatcher)
	reviewAppointmentUC := ucAppointment.NewReviewAppointment(appointmentRepo, auditDispatcher)
	softDeleteUC := ucAppointment.NewSoftDeleteAppointment(appointmentRepo, auditDispatcher)
	assignMechanicUC := ucAppointment.NewAssignMechanic(appointmentRepo, auditDispatcher)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	publicHandler := handlers.NewPublicHandler(db, cch)

	scheduleHandler := handlers.NewScheduleHandler(
		cfg,
		createScheduleUC,
		updateScheduleUC,
		deleteScheduleUC,
		listSchedulesUC,
	)
	appointmentHandler := handlers.NewAppointmentHandler(db, cfg, updateStatusUC)
	calendarHandler := handlers.NewCalendarHandler(db, cfg)

	bookingHandler := handlers.NewBookingHandler(
		db,
		cfg,
		createAppointmentUC,
		cancelAppointmentUC,
		reviewAppointmentUC,
		softDeleteUC,
	)

	userHandler := handlers.NewUserHandler(db, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, cch, auditDispatcher)
	adminAppointmentHandler := handlers.NewAdminAppointmentHandler(db, cfg, assignMechanicUC)
	adminScheduleHandler := handlers.NewAdminScheduleHandler(db, auditDispatcher)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.GET("/public/services", publicHandler.ListServices)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			// ------------------------------
			// CUSTOMER
			// ------------------------------
			customer := secured.Group("/customer")
			customer.Use(middleware.RequireRole(models.RoleCustomer))
			{
				customer.POST("/appointments", bookingHandler.Create)
				customer.GET("/appointments", bookingHandler.List)
				customer.PATCH("/appointments/:id/cancel", bookingHandler.Cancel)
				customer.DELETE("/appointments/:id", bookingHandler.Delete)
				customer.PUT("/appointments/:id/review", bookingHandler.Review)
			}

			// ------------------------------
			// MECHANIC
			// ------------------------------
			mechanic := secured.Group("/mechanic")
			mechanic.Use(middleware.RequireRole(models.RoleMechanic))
			{
				mechanic.GET("/schedules", scheduleHandler.List)
				mechanic.POST("/schedules", scheduleHandler.Create)
				mechanic.PUT("/schedules/:id", scheduleHandler.Update)
				mechanic.DELETE("/schedules/:id", scheduleHandler.Delete)

				mechanic.GET("/appointments", appointmentHandler.List)
				mechanic.PUT("/appointments/:id/status", appointmentHandler.UpdateStatus)

				mechanic.GET("/calendar", calendarHandler.Events)
			}

			// ------------------------------
			// ADMIN
			// ------------------------------
			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/users", userHandler.List)
				admin.POST("/users", userHandler.Create)
				admin.PUT("/users/:id", userHandler.Update)
				admin.DELETE("/users/:id", userHandler.Delete)

				admin.GET("/services", serviceHandler.List)
				admin.POST("/services", serviceHandler.Create)
				admin.PUT("/services/:id", serviceHandler.Update)
				admin.DELETE("/services/:id", serviceHandler.Delete)

				admin.GET("/appointments", adminAppointmentHandler.List)
				admin.PUT("/appointments/:id/assign", adminAppointmentHandler.Assign)

				admin.GET("/schedules", adminScheduleHandler.List)
				admin.PUT("/schedules/:id/approval", adminScheduleHandler.Review)

				admin.GET("/audit-logs", auditLogsHandler.List)
			}
		}
	}
}
