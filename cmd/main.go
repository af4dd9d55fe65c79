package main

import (
	"context"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/yogawell/member-service/config"
	database "github.com/yogawell/member-service/internal/core"
	"github.com/yogawell/member-service/internal/core/domain"
	"github.com/yogawell/member-service/internal/core/repository/memory"
	"github.com/yogawell/member-service/internal/core/repository/psql"
	"github.com/yogawell/member-service/internal/core/repository/sqlite"
	logicv1 "github.com/yogawell/member-service/internal/logic/v1"
	"github.com/yogawell/member-service/internal/storage/photo"
	v1 "github.com/yogawell/member-service/internal/web/v1"
	"github.com/yogawell/member-service/middleware"
)

func main() {
	// Load configuration from environment variables (with .env file support for local dev)
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		panic("Configuration validation failed: " + err.Error())
	}

	// Initialize structured logger
	logger, err := middleware.NewLogger()
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logger.Sync()

	logger.Info("Service starting",
		zap.String("service", cfg.Service.Name),
		zap.String("version", cfg.Service.Version),
		zap.String("env", cfg.Service.Env),
		zap.String("port", cfg.Service.Port),
		zap.String("storage_backend", cfg.Storage.Backend),
		zap.String("photo_store", cfg.Photo.Store),
	)

	// Initialize OpenTelemetry tracing with centralized config
	var tp interface{ Shutdown(context.Context) error }
	if cfg.Tracing.Enabled {
		tp, err = middleware.InitTracing(cfg)
		if err != nil {
			logger.Warn("Failed to initialize tracing", zap.Error(err))
		} else {
			logger.Info("Tracing initialized",
				zap.String("endpoint", cfg.Tracing.Endpoint),
				zap.Float64("sample_rate", cfg.Tracing.SampleRate),
			)
		}
	} else {
		logger.Info("Tracing disabled (TRACING_ENABLED=false)")
	}

	// Initialize Pyroscope profiling
	if cfg.Profiling.Enabled {
		if err := middleware.InitProfiling(); err != nil {
			logger.Warn("Failed to initialize profiling", zap.Error(err))
		} else {
			logger.Info("Profiling initialized", zap.String("endpoint", cfg.Profiling.Endpoint))
			defer middleware.StopProfiling()
		}
	}

	// Select the record storage backend. Repositories are constructed
	// here and injected; nothing downstream reaches for a global handle.
	var (
		contactRepo  domain.ContactRepository
		profileRepo  domain.ProfileRepository
		accountRepo  domain.AccountRepository
		closeStorage func()
	)
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		pool, err := database.Connect(context.Background(), &cfg.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := psql.EnsureSchema(context.Background(), pool); err != nil {
			pool.Close()
			logger.Fatal("Failed to ensure database schema", zap.Error(err))
		}
		contactRepo = psql.NewContactRepository(pool)
		profileRepo = psql.NewProfileRepository(pool)
		accountRepo = psql.NewAccountRepository(pool)
		closeStorage = pool.Close
		logger.Info("Database connection pool established")
	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.Storage.SQLitePath)
		if err != nil {
			logger.Fatal("Failed to open sqlite database", zap.Error(err))
		}
		contactRepo = sqlite.NewContactRepository(db)
		profileRepo = sqlite.NewProfileRepository(db)
		accountRepo = sqlite.NewAccountRepository(db)
		closeStorage = func() { db.Close() }
		logger.Info("SQLite database opened", zap.String("path", cfg.Storage.SQLitePath))
	default:
		contactRepo = memory.NewContactRepository()
		profileRepo = memory.NewProfileRepository()
		accountRepo = memory.NewAccountRepository()
		closeStorage = func() {}
		logger.Info("Using in-memory storage (records are lost on restart)")
	}
	defer closeStorage()

	// Photo asset store
	var photoStore photo.Store
	switch cfg.Photo.Store {
	case config.PhotoStoreS3:
		photoStore, err = photo.NewS3Store(context.Background(), cfg.Photo.Bucket)
		if err != nil {
			logger.Fatal("Failed to initialize s3 photo store", zap.Error(err))
		}
		logger.Info("S3 photo store initialized", zap.String("bucket", cfg.Photo.Bucket))
	default:
		photoStore, err = photo.NewLocalStore(cfg.Photo.Dir)
		if err != nil {
			logger.Fatal("Failed to create photo directory", zap.Error(err))
		}
		logger.Info("Local photo store initialized", zap.String("dir", cfg.Photo.Dir))
	}

	contactHandler := v1.NewContactHandler(logicv1.NewContactService(contactRepo))
	profileHandler := v1.NewProfileHandler(logicv1.NewProfileService(profileRepo, photoStore, cfg.Photo.MaxSize))
	accountHandler := v1.NewAccountHandler(logicv1.NewAccountService(accountRepo))

	r := gin.Default()

	var isShuttingDown atomic.Bool

	// Tracing middleware (must be first for context propagation)
	r.Use(middleware.TracingMiddleware())

	// Logging middleware (must be before Prometheus middleware)
	r.Use(middleware.LoggingMiddleware(logger))

	// Prometheus middleware
	r.Use(middleware.PrometheusMiddleware())

	// Root endpoint for quick check
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Backend is running"})
	})

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Readiness check
	// Returns 503 once shutdown has started, to drain traffic before HTTP shutdown.
	r.GET("/ready", func(c *gin.Context) {
		if isShuttingDown.Load() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "shutting_down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Metrics endpoint
	r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.Handler()))

	contactHandler.RegisterRoutes(r.Group("/api/contact-us"))
	profileHandler.RegisterRoutes(r.Group("/personal"))
	accountHandler.RegisterRoutes(r.Group("/auth"))

	srv := &http.Server{
		Addr:    ":" + cfg.Service.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Starting member service", zap.String("port", cfg.Service.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown - signal handling with context
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	<-ctx.Done()
	logger.Info("Shutdown signal received")

	// Fail readiness first and wait for propagation so routing stops
	// sending new traffic before the HTTP server goes away.
	isShuttingDown.Store(true)
	drainDelay := cfg.GetReadinessDrainDelayDuration()
	if drainDelay > 0 {
		logger.Info("Readiness drain delay started", zap.Duration("delay", drainDelay))
		time.Sleep(drainDelay)
	}

	shutdownTimeout := cfg.GetShutdownTimeoutDuration()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logger.Info("Shutting down server...", zap.Duration("timeout", shutdownTimeout))

	// Explicit cleanup sequence: HTTP server → storage → tracer.

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		logger.Info("HTTP server shutdown complete")
	}

	closeStorage()
	logger.Info("Storage closed")

	if tp != nil {
		if err := tp.Shutdown(shutdownCtx); err != nil {
			logger.Error("Tracer shutdown error", zap.Error(err))
		} else {
			logger.Info("Tracer shutdown complete")
		}
	}

	logger.Info("Graceful shutdown complete")
}
