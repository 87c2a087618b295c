package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/medagenda/medagenda/internal/config"
	v1 "github.com/medagenda/medagenda/internal/handler/v1"
	"github.com/medagenda/medagenda/internal/repository"
	"github.com/medagenda/medagenda/internal/service"
	"github.com/medagenda/medagenda/pkg/auth"
	"github.com/medagenda/medagenda/pkg/database"
	"github.com/medagenda/medagenda/pkg/logger"
	"github.com/medagenda/medagenda/pkg/metrics"
	"github.com/medagenda/medagenda/pkg/tracer"
)

func main() {
	// Missing .env is fine; environments like containers set vars
	// directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("loading configuration: " + err.Error())
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("building logger: " + err.Error())
	}
	defer log.Sync()

	log.Info("starting medagenda",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		log.Fatal("initializing tracer", zap.Error(err))
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Warn("tracer shutdown", zap.Error(err))
		}
	}()

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal("connecting to database", zap.Error(err))
	}
	if err := database.Migrate(db, log); err != nil {
		log.Fatal("migrating database", zap.Error(err))
	}

	collector := metrics.NewCollector("medagenda")
	jwtManager := auth.NewJWTManager(cfg.JWT)

	userRepo := repository.NewUserRepo(db)
	patientRepo := repository.NewPatientRepo(db)
	apptRepo := repository.NewAppointmentRepo(db)
	ruleRepo := repository.NewScheduleRepo(db)
	blockRepo := repository.NewBlockRepo(db)
	clinicalRepo := repository.NewClinicalRepo(db)
	catalogRepo := repository.NewCatalogRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	statsRepo := repository.NewStatsRepo(db)

	auditSvc := service.NewAuditService(auditRepo, log)
	defer auditSvc.Shutdown()

	notifier := service.NewNotificationService(cfg.Email, collector, log)

	svcs := v1.Services{
		Auth:         service.NewAuthService(userRepo, jwtManager, auditSvc, log),
		Directory:    service.NewDirectoryService(userRepo, log),
		Availability: service.NewAvailabilityService(ruleRepo, blockRepo, apptRepo, collector, log),
		Booking:      service.NewBookingService(apptRepo, userRepo, notifier, auditSvc, collector, log),
		Patients:     service.NewPatientService(patientRepo, log),
		Clinical:     service.NewClinicalService(clinicalRepo, patientRepo, log),
		Catalogs:     service.NewCatalogService(catalogRepo, log),
		Statistics:   service.NewStatisticsService(statsRepo, log),
		Admin:        service.NewAdminService(userRepo, log),
		Profile:      service.NewProfileService(userRepo, log),
	}

	router := v1.NewRouter(cfg, svcs, jwtManager, collector, log)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("http server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}
