package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/patasfelizes/clinic-api/internal/config"
	"github.com/patasfelizes/clinic-api/internal/email"
	appointmentHandler "github.com/patasfelizes/clinic-api/internal/handler/appointment"
	auditHandler "github.com/patasfelizes/clinic-api/internal/handler/audit"
	authHandler "github.com/patasfelizes/clinic-api/internal/handler/auth"
	dashboardHandler "github.com/patasfelizes/clinic-api/internal/handler/dashboard"
	healthHandler "github.com/patasfelizes/clinic-api/internal/handler/health"
	inventoryHandler "github.com/patasfelizes/clinic-api/internal/handler/inventory"
	medicalHandler "github.com/patasfelizes/clinic-api/internal/handler/medical"
	notificationHandler "github.com/patasfelizes/clinic-api/internal/handler/notification"
	patientHandler "github.com/patasfelizes/clinic-api/internal/handler/patient"
	saleHandler "github.com/patasfelizes/clinic-api/internal/handler/sale"
	tutorHandler "github.com/patasfelizes/clinic-api/internal/handler/tutor"
	"github.com/patasfelizes/clinic-api/internal/middleware"
	"github.com/patasfelizes/clinic-api/internal/repository/memory"
	"github.com/patasfelizes/clinic-api/internal/router"
	appointmentService "github.com/patasfelizes/clinic-api/internal/service/appointment"
	auditService "github.com/patasfelizes/clinic-api/internal/service/audit"
	authService "github.com/patasfelizes/clinic-api/internal/service/auth"
	dashboardService "github.com/patasfelizes/clinic-api/internal/service/dashboard"
	inventoryService "github.com/patasfelizes/clinic-api/internal/service/inventory"
	medicalService "github.com/patasfelizes/clinic-api/internal/service/medical"
	notificationService "github.com/patasfelizes/clinic-api/internal/service/notification"
	patientService "github.com/patasfelizes/clinic-api/internal/service/patient"
	saleService "github.com/patasfelizes/clinic-api/internal/service/sale"
	tutorService "github.com/patasfelizes/clinic-api/internal/service/tutor"
	"github.com/patasfelizes/clinic-api/internal/worker"
	"github.com/patasfelizes/clinic-api/pkg/auth"
	"github.com/patasfelizes/clinic-api/pkg/logger"
	"github.com/patasfelizes/clinic-api/pkg/messaging"
	redisbroker "github.com/patasfelizes/clinic-api/pkg/messaging/redis"
	"github.com/patasfelizes/clinic-api/pkg/metrics"
	"github.com/patasfelizes/clinic-api/pkg/security"
	"github.com/patasfelizes/clinic-api/pkg/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
	})

	validator.RegisterBindings()

	// The registry is the whole persistence story: everything lives in
	// memory and resets to the demo seed on restart.
	store, err := memory.NewStore()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to seed registry")
	}

	tutorRepo := memory.NewTutorRepository(store)
	patientRepo := memory.NewPatientRepository(store)
	appointmentRepo := memory.NewAppointmentRepository(store)
	medicalRepo := memory.NewMedicalRecordRepository(store)
	productRepo := memory.NewProductRepository(store)
	saleRepo := memory.NewSaleRepository(store)
	notificationRepo := memory.NewNotificationRepository(store)
	userRepo := memory.NewUserRepository(store)
	auditRepo := memory.NewAuditRepository()

	appMetrics := metrics.NewMetrics("clinic")
	store.SetMetrics(appMetrics)

	broker := newBroker(cfg, appLogger)
	defer broker.Close()

	emailSvc := email.NewService(email.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	}, appLogger)

	jwtSvc := auth.NewJWTService(auth.Config{
		Secret:        cfg.JWT.Secret,
		RefreshSecret: cfg.JWT.RefreshSecret,
		Expiry:        time.Duration(cfg.JWT.ExpiryHours) * time.Hour,
		RefreshExpiry: time.Duration(cfg.JWT.RefreshExpiryHours) * time.Hour,
	})

	auditSvc := auditService.NewService(auditRepo, appLogger)
	notificationSvc := notificationService.NewService(notificationRepo, broker, appMetrics, appLogger)
	tutorSvc := tutorService.NewService(tutorRepo, auditSvc)
	patientSvc := patientService.NewService(patientRepo, tutorRepo, auditSvc)
	appointmentSvc := appointmentService.NewService(appointmentRepo, patientRepo, tutorRepo, userRepo, emailSvc, auditSvc, appLogger)
	medicalSvc := medicalService.NewService(medicalRepo, patientRepo, appointmentRepo, auditSvc)
	inventorySvc := inventoryService.NewService(productRepo, notificationSvc, auditSvc, appMetrics)
	saleSvc := saleService.NewService(saleRepo, productRepo, tutorRepo, patientRepo, notificationSvc, auditSvc, appMetrics)
	authSvc := authService.NewService(userRepo, jwtSvc, security.NewBcryptHasher(0), auditSvc)
	dashboardSvc := dashboardService.NewService(patientRepo, appointmentRepo, productRepo, saleRepo, notificationRepo)

	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	handlers := router.Handlers{
		Health:       healthHandler.NewHandler(),
		Auth:         authHandler.NewHandler(authSvc),
		Tutor:        tutorHandler.NewHandler(tutorSvc, patientSvc),
		Patient:      patientHandler.NewHandler(patientSvc, appointmentSvc, medicalSvc),
		Appointment:  appointmentHandler.NewHandler(appointmentSvc),
		Medical:      medicalHandler.NewHandler(medicalSvc),
		Inventory:    inventoryHandler.NewHandler(inventorySvc),
		Sale:         saleHandler.NewHandler(saleSvc),
		Notification: notificationHandler.NewHandler(notificationSvc),
		Dashboard:    dashboardHandler.NewHandler(dashboardSvc),
		Audit:        auditHandler.NewHandler(auditSvc),
	}

	r := router.NewRouter(authMiddleware, handlers, appMetrics, router.Config{
		RateLimit:  rate.Limit(cfg.Server.RateLimit),
		RateBurst:  cfg.Server.RateBurst,
		CORSConfig: middleware.DefaultCORSConfig(),
		Timeout:    cfg.Server.RequestTimeout,
	})
	r.Setup()

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	lowStockWorker := worker.NewLowStockWorker(productRepo, notificationSvc, appLogger, 5*time.Minute)
	go lowStockWorker.Start(workerCtx)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	stopWorker()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

// newBroker connects to Redis when a URL is configured, otherwise the
// in-process broker keeps notification publishing local.
func newBroker(cfg *config.Config, appLogger *logger.Logger) messaging.Broker {
	if cfg.Redis.URL == "" {
		return messaging.NewInProcBroker()
	}

	broker, err := redisbroker.NewRedisBroker(redisbroker.Config{URL: cfg.Redis.URL}, appLogger.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	return broker
}
