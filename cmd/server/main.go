package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/foodworks/backoffice/internal/application/catalog"
	financeapp "github.com/foodworks/backoffice/internal/application/finance"
	inventoryapp "github.com/foodworks/backoffice/internal/application/inventory"
	notificationapp "github.com/foodworks/backoffice/internal/application/notification"
	tradeapp "github.com/foodworks/backoffice/internal/application/trade"
	"github.com/foodworks/backoffice/internal/infrastructure/config"
	"github.com/foodworks/backoffice/internal/infrastructure/logger"
	"github.com/foodworks/backoffice/internal/infrastructure/persistence"
	"github.com/foodworks/backoffice/internal/infrastructure/scheduler"
	"github.com/foodworks/backoffice/internal/interfaces/http/handler"
	"github.com/foodworks/backoffice/internal/interfaces/http/middleware"
	"github.com/foodworks/backoffice/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const version = "1.0.0"

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

	log.Info("Starting back office",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection
	db, err := persistence.NewDatabaseWithGormLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	materialRepo := persistence.NewGormRawMaterialRepository(db.DB)
	discountRepo := persistence.NewGormDiscountRepository(db.DB)
	recordRepo := persistence.NewGormInventoryRecordRepository(db.DB)
	batchRepo := persistence.NewGormBatchRepository(db.DB)
	withdrawalRepo := persistence.NewGormWithdrawalRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	ledgerRepo := persistence.NewGormLedgerEntryRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)

	// Transaction scopes
	inventoryTxScope := persistence.NewGormInventoryTransactionScope(db.DB)
	tradeTxScope := persistence.NewGormTradeTransactionScope(db.DB)

	// Initialize application services
	catalogService := catalogapp.NewCatalogService(productRepo, materialRepo, discountRepo, log)
	pricer := tradeapp.NewPricer(productRepo, discountRepo)
	reconciler := tradeapp.NewReconcilerService(tradeTxScope, pricer, log)
	orderService := tradeapp.NewOrderService(tradeTxScope, orderRepo, pricer, reconciler, log)
	inventoryService := inventoryapp.NewInventoryService(inventoryTxScope, recordRepo, batchRepo, withdrawalRepo, log)
	withdrawalService := inventoryapp.NewWithdrawalService(inventoryTxScope, reconciler, log)
	sweepService := inventoryapp.NewSweepService(inventoryTxScope, productRepo, materialRepo, log)
	backlogService := inventoryapp.NewBacklogService(inventoryTxScope, sweepService, log)
	ledgerService := financeapp.NewLedgerService(ledgerRepo, log)
	notificationService := notificationapp.NewNotificationService(notificationRepo)

	// Start the daily expiration sweep
	if cfg.Sweep.Enabled {
		runHour, runMinute, err := scheduler.ParseRunAt(cfg.Sweep.RunAt)
		if err != nil {
			log.Fatal("Invalid sweep run time", zap.String("run_at", cfg.Sweep.RunAt), zap.Error(err))
		}

		var lock scheduler.DailyLock = scheduler.NoOpDailyLock{}
		if cfg.Sweep.LockEnabled {
			redisClient := redis.NewClient(&redis.Options{
				Addr:     cfg.Redis.Addr(),
				Password: cfg.Redis.Password,
				DB:       cfg.Redis.DB,
			})
			defer func() {
				if err := redisClient.Close(); err != nil {
					log.Error("Error closing redis client", zap.Error(err))
				}
			}()
			lock = scheduler.NewRedisDailyLock(redisClient, cfg.Sweep.LockTTL)
			log.Info("Sweep lock enabled", zap.String("redis", cfg.Redis.Addr()))
		}

		sweepScheduler := scheduler.NewSweepScheduler(scheduler.SweepSchedulerConfig{
			RunHour:       runHour,
			RunMinute:     runMinute,
			CheckInterval: time.Minute,
			RepairBacklog: cfg.Sweep.RepairBacklog,
		}, sweepService, backlogService, lock, log)

		if err := sweepScheduler.Start(context.Background()); err != nil {
			log.Fatal("Failed to start sweep scheduler", zap.Error(err))
		}
		defer func() {
			if err := sweepScheduler.Stop(context.Background()); err != nil {
				log.Error("Error stopping sweep scheduler", zap.Error(err))
			}
		}()
		log.Info("Sweep scheduler started",
			zap.String("run_at", cfg.Sweep.RunAt),
			zap.Bool("repair_backlog", cfg.Sweep.RepairBacklog),
		)
	}

	// Initialize HTTP handlers
	catalogHandler := handler.NewCatalogHandler(catalogService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService, withdrawalService)
	orderHandler := handler.NewOrderHandler(orderService)
	ledgerHandler := handler.NewLedgerHandler(ledgerService)
	notificationHandler := handler.NewNotificationHandler(notificationService)
	sweepHandler := handler.NewSweepHandler(sweepService, backlogService)
	systemHandler := handler.NewSystemHandler(db, cfg.App.Name, version)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig()))

	// Register domain route groups
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(catalogHandler).
		Register(inventoryHandler).
		Register(orderHandler).
		Register(ledgerHandler).
		Register(notificationHandler).
		Register(sweepHandler).
		Register(systemHandler)
	r.Setup()

	// Start HTTP server
	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}

	log.Info("Server stopped")
}
