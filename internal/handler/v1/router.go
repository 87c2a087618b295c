package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medagenda/medagenda/internal/config"
	"github.com/medagenda/medagenda/internal/domain"
	"github.com/medagenda/medagenda/internal/service"
	"github.com/medagenda/medagenda/pkg/auth"
	"github.com/medagenda/medagenda/pkg/metrics"
)

// Services bundles everything the router needs.
type Services struct {
	Auth         *service.AuthService
	Directory    *service.DirectoryService
	Availability *service.AvailabilityService
	Booking      *service.BookingService
	Patients     *service.PatientService
	Clinical     *service.ClinicalService
	Catalogs     *service.CatalogService
	Statistics   *service.StatisticsService
	Admin        *service.AdminService
	Profile      *service.ProfileService
}

func NewRouter(
	cfg *config.Config,
	svcs Services,
	jwtManager *auth.JWTManager,
	collector *metrics.Collector,
	log *zap.Logger,
) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		Recovery(log),
		RequestID(),
		RequestLogger(log),
		Metrics(collector),
		CORS(cfg.CORS),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "version": cfg.App.Version})
	})
	r.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	authHandler := NewAuthHandler(svcs.Auth)
	publicHandler := NewPublicHandler(svcs.Directory, svcs.Availability, svcs.Patients, svcs.Booking)
	apptHandler := NewAppointmentHandler(svcs.Booking)
	scheduleHandler := NewScheduleHandler(svcs.Availability)
	patientHandler := NewPatientHandler(svcs.Patients)
	clinicalHandler := NewClinicalHandler(svcs.Clinical)
	catalogHandler := NewCatalogHandler(svcs.Catalogs)
	statsHandler := NewStatisticsHandler(svcs.Statistics)
	adminHandler := NewAdminHandler(svcs.Admin)
	profileHandler := NewProfileHandler(svcs.Profile)

	api := r.Group("/api")

	public := api.Group("/public")
	{
		public.GET("/professionals", publicHandler.ListProfessionals)
		public.GET("/professionals/:professionalID/availability", publicHandler.GetAvailability)
		public.GET("/patients/lookup", publicHandler.LookupPatient)
		public.POST("/appointments", publicHandler.BookAppointment)
	}

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
		authGroup.POST("/change-password", Authenticated(jwtManager), authHandler.ChangePassword)
	}

	protected := api.Group("", Authenticated(jwtManager))

	users := protected.Group("/users")
	{
		users.GET("/me", profileHandler.GetMe)
		users.PUT("/me", profileHandler.UpdateMe)

		pro := users.Group("/professionals", RequireRole(domain.RoleProfessional))
		{
			pro.GET("/me", profileHandler.GetProfessionalProfile)
			pro.PUT("/me", profileHandler.UpdateProfessionalProfile)
		}
	}

	appointments := protected.Group("/appointments", RequireRole(domain.RoleProfessional))
	{
		appointments.GET("", apptHandler.List)
		appointments.POST("", apptHandler.Create)
		appointments.GET("/:id", apptHandler.Get)
		appointments.PUT("/:id/reprogram", apptHandler.Reprogram)
		appointments.PUT("/:id/status", apptHandler.UpdateStatus)
		appointments.PUT("/:id/notes", apptHandler.UpdateNotes)
		appointments.DELETE("/:id", apptHandler.Delete)
	}

	availability := protected.Group("/availability", RequireRole(domain.RoleProfessional))
	{
		availability.GET("", scheduleHandler.GetOwnAvailability)
		availability.GET("/rules", scheduleHandler.ListRules)
		availability.POST("/rules", scheduleHandler.CreateRule)
		availability.DELETE("/rules/:id", scheduleHandler.DeleteRule)
		availability.GET("/blocks", scheduleHandler.ListBlocks)
		availability.POST("/blocks", scheduleHandler.CreateBlock)
		availability.DELETE("/blocks/:id", scheduleHandler.DeleteBlock)
	}

	patients := protected.Group("/patients", RequireRole(domain.RoleProfessional))
	{
		patients.GET("", patientHandler.List)
		patients.POST("", patientHandler.Create)
		patients.GET("/:id", patientHandler.Get)
		patients.PUT("/:id", patientHandler.Update)
	}

	records := protected.Group("/clinical-records", RequireRole(domain.RoleProfessional))
	{
		records.POST("", clinicalHandler.Create)
		records.GET("/patient/:patientID", clinicalHandler.ListByPatient)
		records.GET("/:id", clinicalHandler.Get)
		records.PUT("/:id", clinicalHandler.Update)
		records.DELETE("/:id", clinicalHandler.Delete)
	}

	catalogs := protected.Group("/catalogs")
	{
		catalogs.GET("/specialties", catalogHandler.ListSpecialties)
		catalogs.GET("/pathologies", catalogHandler.ListPathologies)

		manage := catalogs.Group("", RequireRole(domain.RoleAdmin))
		{
			manage.POST("/specialties", catalogHandler.CreateSpecialty)
			manage.PUT("/specialties/:id", catalogHandler.UpdateSpecialty)
			manage.DELETE("/specialties/:id", catalogHandler.DeleteSpecialty)
			manage.POST("/pathologies", catalogHandler.CreatePathology)
			manage.PUT("/pathologies/:id", catalogHandler.UpdatePathology)
			manage.DELETE("/pathologies/:id", catalogHandler.DeletePathology)
		}
	}

	statistics := protected.Group("/statistics", RequireRole(domain.RoleProfessional))
	{
		statistics.GET("/summary", statsHandler.Summary)
		statistics.GET("/daily", statsHandler.DailyReport)
	}

	admin := protected.Group("/admin", RequireRole(domain.RoleAdmin))
	{
		admin.GET("/users", adminHandler.ListUsers)
		admin.POST("/users", adminHandler.CreateUser)
		admin.PUT("/users/:id/active", adminHandler.SetUserActive)
		admin.PUT("/users/:id/password", adminHandler.ResetPassword)
		admin.DELETE("/patients/:id", patientHandler.Purge)
	}

	return r
}
