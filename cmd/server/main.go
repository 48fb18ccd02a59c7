package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	exportapp "github.com/zaoknom/docbox-backend/internal/application/export"
	financeapp "github.com/zaoknom/docbox-backend/internal/application/finance"
	orderapp "github.com/zaoknom/docbox-backend/internal/application/order"
	partnerapp "github.com/zaoknom/docbox-backend/internal/application/partner"
	"github.com/zaoknom/docbox-backend/internal/infrastructure/cache"
	"github.com/zaoknom/docbox-backend/internal/infrastructure/config"
	"github.com/zaoknom/docbox-backend/internal/infrastructure/logger"
	"github.com/zaoknom/docbox-backend/internal/infrastructure/notify"
	"github.com/zaoknom/docbox-backend/internal/infrastructure/persistence"
	"github.com/zaoknom/docbox-backend/internal/interfaces/http/handler"
	"github.com/zaoknom/docbox-backend/internal/interfaces/http/middleware"
	"github.com/zaoknom/docbox-backend/internal/interfaces/http/router"
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
		_ = logger.Sync(log)
	}()

	log.Info("Starting docbox backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
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
	clientRepo := persistence.NewGormClientRepository(db.DB)
	providerRepo := persistence.NewGormProviderRepository(db.DB)
	mounterRepo := persistence.NewGormMounterRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	providerOrderRepo := persistence.NewGormProviderOrderRepository(db.DB)
	transactionRepo := persistence.NewGormTransactionRepository(db.DB)

	// Balance cache: redis when reachable, a process-local cache
	// otherwise
	var balanceCache financeapp.BalanceCache
	redisCache, err := cache.NewRedisBalanceCache(cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, balance cache is in-memory", zap.Error(err))
		balanceCache = cache.NewInMemoryBalanceCache()
	} else {
		defer func() {
			if err := redisCache.Close(); err != nil {
				log.Error("Error closing redis client", zap.Error(err))
			}
		}()
		balanceCache = redisCache
		log.Info("Redis balance cache connected", zap.String("addr", cfg.Redis.Addr()))
	}

	// Delivery notifications go to the telegram relay; an empty URL
	// disables them
	notifier := notify.NewTelegramNotifier(cfg.Bot, log)

	// Initialize application services
	clientService := partnerapp.NewClientService(clientRepo)
	providerService := partnerapp.NewProviderService(providerRepo)
	mounterService := partnerapp.NewMounterService(mounterRepo, clientRepo)
	orderService := orderapp.NewOrderService(orderRepo, clientRepo, addressRepo, mounterRepo, transactionRepo)
	providerOrderService := orderapp.NewProviderOrderService(
		providerOrderRepo, orderRepo, providerRepo, notifier,
		cfg.Provider.Lookback(), decimal.NewFromInt(int64(cfg.Provider.PriceThreshold)),
		orderapp.WithDefaultProvider(cfg.Provider.Name),
		orderapp.WithLogger(log))
	transactionService := financeapp.NewTransactionService(transactionRepo, orderRepo, balanceCache)
	csvService := exportapp.NewCSVService(orderRepo, transactionRepo, clientRepo, providerRepo)

	// Initialize HTTP handlers
	clientHandler := handler.NewClientHandler(clientService, orderService, transactionService)
	providerHandler := handler.NewProviderHandler(providerService)
	mounterHandler := handler.NewMounterHandler(mounterService)
	orderHandler := handler.NewOrderHandler(orderService)
	providerOrderHandler := handler.NewProviderOrderHandler(providerOrderService)
	transactionHandler := handler.NewTransactionHandler(transactionService)
	exportHandler := handler.NewExportHandler(csvService)
	supplierHandler := handler.NewSupplierHandler(orderService, providerOrderService, transactionService, cfg.API.Token, log)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	handler.NewSystemHandler(db).RegisterRoutes(engine)

	// Setup API routes
	router.Mount(engine, "v1",
		clientHandler,
		providerHandler,
		mounterHandler,
		orderHandler,
		providerOrderHandler,
		transactionHandler,
		exportHandler,
		supplierHandler,
	)

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
