package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medimitra-backend/config"
	deliveryHttp "medimitra-backend/internal/delivery/http"
	"medimitra-backend/internal/delivery/http/handler"
	"medimitra-backend/internal/delivery/http/middleware"
	"medimitra-backend/internal/infrastructure/cache"
	"medimitra-backend/internal/infrastructure/database"
	"medimitra-backend/internal/repository"
	"medimitra-backend/internal/service"
	"medimitra-backend/internal/usecase"
	"medimitra-backend/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db

	// Apply schema migrations before accepting traffic
	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient

	// Initialize all layers
	server := initializeServer(cfg, db, redisClient)
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	availabilitySlotRepo := repository.NewAvailabilitySlotRepository()
	icuBedRepo := repository.NewICUBedRepository()
	ambulanceBookingRepo := repository.NewAmbulanceBookingRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	messageRepo := repository.NewDoctorPatientMessageRepository()

	// Initialize services
	locker := service.NewRedisResourceLocker(redisClient, log, cfg.Lock.TTL)
	auditService := service.NewAuditService(log, auditLogRepo)
	messageService := service.NewMessageService(db, log, messageRepo)
	statsService := service.NewStatsService(db, redisClient, log, cfg.Stats.CacheTTL, icuBedRepo, ambulanceBookingRepo)

	// Prime the stats cache so the first dashboard request is served warm
	warmupCtx, cancelWarmup := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelWarmup()
	statsService.WarmUp(warmupCtx)

	// Initialize usecases
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, locker, appointmentRepo, doctorProfileRepo, availabilitySlotRepo, auditService, messageService)
	availabilitySlotUsecase := usecase.NewAvailabilitySlotUsecase(db, log, locker, availabilitySlotRepo, doctorProfileRepo, appointmentRepo, auditService)
	icuBedUsecase := usecase.NewICUBedUsecase(db, log, locker, icuBedRepo, auditService, statsService)
	ambulanceUsecase := usecase.NewAmbulanceUsecase(db, log, locker, ambulanceBookingRepo, auditService, statsService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	slotHandler := handler.NewAvailabilitySlotHandler(availabilitySlotUsecase, customValidator)
	icuBedHandler := handler.NewICUBedHandler(icuBedUsecase, customValidator)
	ambulanceHandler := handler.NewAmbulanceHandler(ambulanceUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(appointmentHandler, slotHandler, icuBedHandler, ambulanceHandler, auditLogHandler, corsMiddleware, loggingMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
