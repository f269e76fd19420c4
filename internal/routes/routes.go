package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/handlers"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// Deps reúne o que as rotas precisam; montado em cmd/api.
type Deps struct {
	Scheduling  *ucAppointment.Dependencies
	Catalog     domain.CatalogAdmin
	Schedules   domain.ScheduleAdmin
	AuditReader audit.Reader

	JWTSecret string
	Logger    zerolog.Logger
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.Logger(d.Logger),
		middleware.Recovery(d.Logger),
		middleware.CORSMiddleware(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ======================================================
	// HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(d.Scheduling)
	workingHoursHandler := handlers.NewWorkingHoursHandler(
		d.Scheduling.Professionals,
		d.Schedules,
		d.Scheduling.Audit,
	)
	professionalHandler := handlers.NewProfessionalHandler(d.Catalog, d.Scheduling.Professionals)
	serviceHandler := handlers.NewServiceHandler(d.Catalog, d.Scheduling.Services)
	clientHandler := handlers.NewClientHandler(d.Catalog)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.AuditReader)

	// ======================================================
	// API (JSON)
	// ======================================================
	secured := r.Group("/api")
	secured.Use(middleware.AuthMiddleware(d.JWTSecret))
	{
		secured.GET("/me", professionalHandler.Me)

		// ------------------------------
		// CATÁLOGO
		// ------------------------------
		secured.GET("/professionals", professionalHandler.List)
		secured.POST("/professionals", professionalHandler.Create)

		secured.GET("/services", serviceHandler.List)
		secured.POST("/services", serviceHandler.Create)
		secured.PATCH("/services/:id", serviceHandler.Update)

		secured.GET("/clients", clientHandler.List)
		secured.POST("/clients", clientHandler.Create)

		// ------------------------------
		// AGENDA DO PROFISSIONAL
		// ------------------------------
		secured.GET("/professionals/:id/working-hours", workingHoursHandler.Get)
		secured.PUT("/professionals/:id/working-hours", workingHoursHandler.Update)
		secured.GET("/professionals/:id/exceptions", workingHoursHandler.ListExceptions)
		secured.POST("/professionals/:id/exceptions", workingHoursHandler.CreateException)
		secured.GET("/professionals/:id/calendar.ics", appointmentHandler.Calendar)

		// ------------------------------
		// APPOINTMENTS
		// ------------------------------
		secured.POST("/appointments", appointmentHandler.Create)
		secured.GET("/appointments", appointmentHandler.List)
		secured.GET("/appointments/availability", appointmentHandler.Availability)
		secured.PATCH("/appointments/:id", appointmentHandler.Update)
		secured.PATCH("/appointments/:id/cancel", appointmentHandler.Cancel)
		secured.PATCH("/appointments/:id/confirm", appointmentHandler.Confirm)
		secured.PUT("/appointments/:id/status", appointmentHandler.ChangeStatus)

		secured.GET("/audit-logs", auditLogsHandler.List)
	}
}
