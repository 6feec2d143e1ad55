package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/agendalivre/agenda-api/internal/cache"
	"github.com/agendalivre/agenda-api/internal/config"
	domain "github.com/agendalivre/agenda-api/internal/domain/booking"
	"github.com/agendalivre/agenda-api/internal/handlers"
	"github.com/agendalivre/agenda-api/internal/middleware"
	"github.com/agendalivre/agenda-api/internal/notification"
	usecase "github.com/agendalivre/agenda-api/internal/usecase/booking"
)

// RegisterRoutes wires the HTTP surface. The repository and notification
// dispatcher are built in main so the reminder worker can share them.
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	repo domain.Repository,
	notifier *notification.Dispatcher,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	availabilityCache := cache.NewAvailability(cfg.RedisAddr)

	// ======================================================
	// USE CASES — BOOKING
	// ======================================================
	createAppointmentUC := usecase.NewCreateAppointment(
		repo,
		notifier,
		cfg.Timezone,
	)

	confirmAppointmentUC := usecase.NewConfirmAppointment(repo)

	cancelAppointmentUC := usecase.NewCancelAppointment(
		repo,
		notifier,
	)

	completeAppointmentUC := usecase.NewCompleteAppointment(repo)

	getAvailabilityUC := usecase.NewGetAvailability(repo, cfg.Timezone)
	checkSlotUC := usecase.NewCheckSlot(repo, cfg.Timezone)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	serviceHandler := handlers.NewServiceHandler(db)
	scheduleHandler := handlers.NewScheduleHandler(db)
	reportsHandler := handlers.NewReportsHandler(db, cfg.Timezone)

	appointmentHandler := handlers.NewAppointmentHandler(
		db,
		repo,
		confirmAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		availabilityCache,
		cfg.Timezone,
	)

	publicHandler := handlers.NewPublicHandler(
		db,
		getAvailabilityUC,
		checkSlotUC,
		createAppointmentUC,
		availabilityCache,
		cfg.Timezone,
	)

	// ======================================================
	// ROTAS PÚBLICAS
	// ======================================================
	api := r.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	public := api.Group("/public")
	{
		public.GET("/professionals", publicHandler.ListProfessionals)
		public.GET("/professionals/:id", publicHandler.GetProfessional)
		public.GET("/professionals/:id/availability", publicHandler.GetAvailability)
		public.POST("/professionals/:id/appointments", publicHandler.CreateAppointment)
	}

	// ======================================================
	// ROTAS AUTENTICADAS
	// ======================================================
	me := api.Group("/me")
	me.Use(middleware.AuthMiddleware(cfg))
	{
		me.GET("", meHandler.GetMe)
		me.PATCH("", meHandler.UpdateMe)

		me.GET("/services", serviceHandler.List)
		me.POST("/services", serviceHandler.Create)
		me.PATCH("/services/:id", serviceHandler.Update)
		me.DELETE("/services/:id", serviceHandler.Delete)

		me.GET("/schedules", scheduleHandler.Get)
		me.PUT("/schedules", scheduleHandler.Update)

		me.GET("/appointments", appointmentHandler.List)
		me.GET("/appointments/:id", appointmentHandler.Get)
		me.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
		me.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		me.PATCH("/appointments/:id/complete", appointmentHandler.Complete)

		me.GET("/reports/dashboard", reportsHandler.Dashboard)
		me.GET("/reports/appointments", reportsHandler.Appointments)
		me.GET("/reports/revenue", reportsHandler.Revenue)
		me.GET("/reports/services-performance", reportsHandler.ServicesPerformance)
	}
}
