package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medicore/config"
	deliveryHttp "medicore/internal/delivery/http"
	"medicore/internal/delivery/http/handler"
	"medicore/internal/delivery/http/middleware"
	"medicore/internal/infrastructure/bytestore"
	"medicore/internal/infrastructure/cache"
	"medicore/internal/infrastructure/database"
	"medicore/internal/repository"
	"medicore/internal/seed"
	"medicore/internal/service"
	"medicore/internal/store"
	"medicore/internal/usecase"
	"medicore/pkg/jwt"
	"medicore/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	Store       *store.Store
	DB          *gorm.DB
	RedisClient *redis.Client
	Locks       *service.KeyedMutex
	QueueScope  service.QueueScope
	Backup      usecase.BackupUsecase
	Server      *http.Server
}

// New creates a new App instance with all dependencies initialized
func New(ctx context.Context) (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	app.Log = setupLogger(cfg.Log)
	app.Log.Info("Configuration loaded successfully")

	scope, err := service.ParseQueueScope(cfg.Queue.Scope)
	if err != nil {
		return nil, err
	}
	app.QueueScope = scope

	// Open the snapshot backend and the store on top of it
	persister, err := app.openPersister(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	s, err := store.Open(ctx, store.Options{
		Persister: persister,
		Seed:      seed.Defaults(app.Log),
		Log:       app.Log,
	})
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	app.Store = s
	if rec := s.Recovery(); rec != nil {
		app.Log.Warnf("Store started from a fresh seed after recovery: %v", rec)
	}
	app.Log.Info("Store opened successfully")

	app.Locks = service.NewKeyedMutex(app.Log)
	app.Server = app.initializeServer()

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// openPersister connects the configured snapshot backend. The memory backend
// keeps nothing across restarts.
func (app *App) openPersister(ctx context.Context) (*store.Persister, error) {
	cfg := app.Config.Store

	var bytes store.ByteStore
	switch cfg.Backend {
	case config.BackendFile:
		f, err := bytestore.NewFile(afero.NewOsFs(), cfg.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare store dir: %w", err)
		}
		bytes = f
	case config.BackendRedis:
		client, err := cache.NewRedisClient(ctx, app.Config.Redis, app.Log)
		if err != nil {
			return nil, err
		}
		app.RedisClient = client
		bytes = bytestore.NewRedis(client, app.Config.Redis.Prefix)
	case config.BackendPostgres:
		db, err := database.NewPostgresConnection(app.Config.DB, app.Log)
		if err != nil {
			return nil, err
		}
		app.DB = db
		pg, err := bytestore.NewPostgres(ctx, db)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare snapshot table: %w", err)
		}
		bytes = pg
	default:
		bytes = bytestore.NewMemory()
	}

	app.Log.Infof("Store backend: %s", cfg.Backend)
	return store.NewPersister(bytes, cfg.Key, cfg.MaxSnapshotBytes, app.Log), nil
}

// initializeServer creates and configures the HTTP server
func (app *App) initializeServer() *http.Server {
	cfg, log, db := app.Config, app.Log, app.Store

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	appointmentRepo := repository.NewAppointmentRepository()
	doctorRepo := repository.NewDoctorRepository()
	patientRepo := repository.NewPatientRepository()
	userRepo := repository.NewUserRepository()
	settingsRepo := repository.NewSettingsRepository()
	notificationRepo := repository.NewNotificationLogRepository()

	// Initialize services
	engine := service.NewScheduleEngine(log, doctorRepo, appointmentRepo)
	queue := service.NewQueueAllocator(app.QueueScope, appointmentRepo)
	mailer := service.NewLogMailer(log, notificationRepo)
	sweep := service.NewReminderSweep(log, app.Locks, appointmentRepo, doctorRepo, patientRepo, settingsRepo, mailer)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, jwtService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, app.Locks, appointmentRepo, doctorRepo, patientRepo, engine, queue)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo, appointmentRepo)
	patientUsecase := usecase.NewPatientUsecase(db, log, app.Locks, patientRepo, appointmentRepo)
	userUsecase := usecase.NewUserUsecase(db, log, app.Locks, userRepo, doctorRepo)
	settingsUsecase := usecase.NewSettingsUsecase(db, log, settingsRepo)
	notificationUsecase := usecase.NewNotificationUsecase(db, log, notificationRepo, patientRepo, doctorRepo, appointmentRepo, settingsRepo, mailer)
	dashboardUsecase := usecase.NewDashboardUsecase(db, log, sweep, appointmentRepo, doctorRepo, patientRepo)
	financeUsecase := usecase.NewFinanceUsecase(db, log, appointmentRepo, doctorRepo)
	app.Backup = usecase.NewBackupUsecase(db, log, afero.NewOsFs())

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	userHandler := handler.NewUserHandler(userUsecase, customValidator)
	settingsHandler := handler.NewSettingsHandler(settingsUsecase, customValidator)
	notificationHandler := handler.NewNotificationHandler(notificationUsecase, customValidator)
	dashboardHandler := handler.NewDashboardHandler(dashboardUsecase, financeUsecase, customValidator)
	backupHandler := handler.NewBackupHandler(app.Backup)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigin)

	// Initialize router
	router := deliveryHttp.NewRouter(
		log,
		authHandler,
		appointmentHandler,
		doctorHandler,
		patientHandler,
		userHandler,
		settingsHandler,
		notificationHandler,
		dashboardHandler,
		backupHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           httpRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
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

	app.Log.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close releases the store and the snapshot backend connections.
func (app *App) Close() {
	if app.Locks != nil {
		app.Locks.Stop()
	}

	// Close the store before its backend so the last flush can land
	if app.Store != nil {
		if err := app.Store.Close(); err != nil {
			app.Log.Warnf("Failed to close store: %v", err)
		}
	}

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
