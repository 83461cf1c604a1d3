package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	financeapp "github.com/finboard/backend/internal/application/finance"
	forecastapp "github.com/finboard/backend/internal/application/forecast"
	reconcileapp "github.com/finboard/backend/internal/application/reconcile"
	"github.com/finboard/backend/internal/infrastructure/cache"
	"github.com/finboard/backend/internal/infrastructure/config"
	"github.com/finboard/backend/internal/infrastructure/logger"
	"github.com/finboard/backend/internal/infrastructure/persistence"
	"github.com/finboard/backend/internal/interfaces/http/handler"
	"github.com/finboard/backend/internal/interfaces/http/middleware"
	"github.com/finboard/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Finboard Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	// Initialize database connection
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize the projection cache
	projectionCache, err := cache.NewRedisProjectionCache(cache.RedisConfig{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, cfg.Engine.ProjectionCacheTTL)
	if err != nil {
		log.Fatal("Failed to connect to redis", zap.Error(err))
	}
	log.Info("Projection cache connected",
		zap.String("addr", cfg.Redis.Addr()),
		zap.Duration("ttl", cfg.Engine.ProjectionCacheTTL),
	)

	// Initialize repositories
	recordRepo := persistence.NewDailyRecordRepository(db.DB)
	txnRepo := persistence.NewTransactionRepository(db.DB)
	shipmentRepo := persistence.NewShipmentRepository(db.DB)
	adSpendRepo := persistence.NewAdSpendRepository(db.DB)
	wholesaleRepo := persistence.NewWholesaleRepository(db.DB)
	invoiceRepo := persistence.NewInvoiceRepository(db.DB)
	rateRepo := persistence.NewRateConfigRepository(db.DB)
	expenseRepo := persistence.NewExpenseTemplateRepository(db.DB)
	obligationRepo := persistence.NewObligationRepository(db.DB)

	// Initialize application services
	aggregationService := financeapp.NewAggregationService(
		txnRepo, shipmentRepo, adSpendRepo, wholesaleRepo, rateRepo, recordRepo,
		cfg.Engine.UpsertBatchSize, log,
	)
	forecastService := forecastapp.NewForecastService(
		recordRepo, expenseRepo, obligationRepo, projectionCache, log,
	)
	forecastService.SetEngineDefaults(forecastapp.EngineDefaults{
		HorizonDays:        cfg.Engine.HorizonDays,
		TrailingWindowDays: cfg.Engine.TrailingWindowDays,
		ObligationLeadDays: cfg.Engine.ObligationLeadDays,
	})
	reconciliationService := reconcileapp.NewReconciliationService(txnRepo, invoiceRepo, log)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig()))

	// Health check endpoint (outside API versioning)
	systemHandler := handler.NewSystemHandler(db)
	engine.GET("/health", systemHandler.Health)

	// Register versioned API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(handler.NewPnLHandler(aggregationService)).
		Register(handler.NewForecastHandler(forecastService)).
		Register(handler.NewReconcileHandler(reconciliationService)).
		Register(systemHandler)
	r.Setup()

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
