package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	appCatalog "github.com/meditrack/backend/internal/application/catalog"
	appDashboard "github.com/meditrack/backend/internal/application/dashboard"
	appIdentity "github.com/meditrack/backend/internal/application/identity"
	appNotification "github.com/meditrack/backend/internal/application/notification"
	appOnboarding "github.com/meditrack/backend/internal/application/onboarding"
	appOrder "github.com/meditrack/backend/internal/application/order"
	appPartner "github.com/meditrack/backend/internal/application/partner"
	appSettings "github.com/meditrack/backend/internal/application/settings"
	"github.com/meditrack/backend/internal/domain/order"
	"github.com/meditrack/backend/internal/domain/settings"
	"github.com/meditrack/backend/internal/infrastructure/auth"
	"github.com/meditrack/backend/internal/infrastructure/cache"
	"github.com/meditrack/backend/internal/infrastructure/config"
	"github.com/meditrack/backend/internal/infrastructure/event"
	"github.com/meditrack/backend/internal/infrastructure/localstore"
	"github.com/meditrack/backend/internal/infrastructure/logger"
	"github.com/meditrack/backend/internal/infrastructure/persistence"
	"github.com/meditrack/backend/internal/infrastructure/scheduler"
	"github.com/meditrack/backend/internal/interfaces/http/handler"
	"github.com/meditrack/backend/internal/interfaces/http/middleware"
	"github.com/meditrack/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("starting meditrack backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port))

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("error closing database", zap.Error(err))
		}
	}()

	// Postgres deployments run versioned migrations; the file-backed
	// drivers migrate themselves on startup.
	if cfg.Database.Driver != "postgres" {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("failed to migrate database", zap.Error(err))
		}
	}
	log.Info("database connected", zap.String("driver", cfg.Database.Driver))

	// Notifications live in a bbolt sidecar next to the relational store
	localPath := filepath.Join(filepath.Dir(cfg.Database.Path), "notifications.db")
	local, err := localstore.Open(localPath)
	if err != nil {
		log.Fatal("failed to open local store", zap.Error(err))
	}
	defer func() {
		if err := local.Close(); err != nil {
			log.Error("error closing local store", zap.Error(err))
		}
	}()

	notifStore, err := localstore.NewNotificationStore(local)
	if err != nil {
		log.Fatal("failed to prepare notification store", zap.Error(err))
	}

	// Repositories
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	manufacturerRepo := persistence.NewGormManufacturerRepository(db.DB)
	formRepo := persistence.NewGormMedicineFormRepository(db.DB)
	itemRepo := persistence.NewGormInventoryRepository(db.DB)
	stockHistoryRepo := persistence.NewGormStockHistoryRepository(db.DB)
	priceHistoryRepo := persistence.NewGormPriceHistoryRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	settingRepo := persistence.NewGormSettingRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	// Event bus with an audit trail of every order event
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewAuditHandler(log),
		order.EventOrderCreated,
		order.EventOrderStatusChanged,
		order.EventOrderArchived)

	// Application services
	settingsService := appSettings.NewService(settingRepo, log)
	orderService := appOrder.NewService(orderRepo, settingsService, eventBus, log)
	inventoryService := appCatalog.NewInventoryService(itemRepo, stockHistoryRepo, priceHistoryRepo, log)
	manufacturerService := appCatalog.NewManufacturerService(manufacturerRepo, log)
	formService := appCatalog.NewFormService(formRepo, log)
	supplierService := appPartner.NewSupplierService(supplierRepo, log)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := appIdentity.NewAuthService(userRepo, jwtService, log)

	center := appNotification.NewCenter(notifStore, settingsService, log)
	archiver := appNotification.NewAutoArchiver(orderRepo, settingsService, center, log)
	alerts := appNotification.NewOrderAlerts(orderRepo, itemRepo, settingsService, center, log)
	watcher := appNotification.NewOrderWatcher(orderRepo, settingsService, center, log)

	seedService := appOnboarding.NewSeedService(
		supplierService, manufacturerService, inventoryService, orderService, settingsService, log)

	queryCache := cache.New(cfg.Redis, log)
	defer func() {
		if err := queryCache.Close(); err != nil {
			log.Error("error closing cache", zap.Error(err))
		}
	}()
	dashboardService := appDashboard.NewService(orderService, inventoryService, center, queryCache, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := formService.EnsureDefaults(ctx); err != nil {
		log.Warn("failed to seed default medicine forms", zap.Error(err))
	}

	if cfg.App.SeedOnStartup && !seedService.Completed(ctx) {
		if summary, err := seedService.Run(ctx); err != nil {
			log.Warn("startup seed failed", zap.Error(err))
		} else {
			log.Info("startup seed finished",
				zap.Int("suppliers", summary.Suppliers),
				zap.Int("items", summary.Items),
				zap.Int("orders", summary.Orders))
		}
	}

	if err := dashboardService.Refresh(ctx); err != nil {
		log.Warn("initial dashboard refresh failed", zap.Error(err))
	}

	// Background maintenance
	sched := scheduler.New(log)
	if cfg.Maintenance.Enabled {
		sched.RegisterCron("@daily", scheduler.TaskFunc{
			TaskName: "auto-archive",
			Fn: func(ctx context.Context) error {
				_, err := archiver.Run(ctx)
				return err
			},
		}, cfg.Maintenance.RunArchiveOnStart)

		sched.RegisterInterval(scheduler.TaskFunc{
			TaskName: "order-alerts",
			Fn: func(ctx context.Context) error {
				_, err := alerts.Run(ctx)
				return err
			},
		}, func() time.Duration {
			minutes := settingsService.GetInt(context.Background(), settings.KeyAlertCheckInterval)
			if minutes < 5 {
				minutes = 5
			}
			if minutes > 120 {
				minutes = 120
			}
			return time.Duration(minutes) * time.Minute
		})

		sched.RegisterInterval(watcher, func() time.Duration {
			return cfg.Maintenance.WatcherInterval
		})

		sched.RegisterInterval(dashboardService, func() time.Duration {
			return cfg.Maintenance.WatcherInterval
		})

		if err := sched.Start(ctx); err != nil {
			log.Fatal("failed to start scheduler", zap.Error(err))
		}
	}

	// HTTP surface
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.HTTP.CORSAllowOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.JWT.Enabled {
		engine.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService: jwtService,
			SkipPaths: []string{
				"/health",
				"/api/v1/health",
				"/api/v1/auth/login",
			},
			Logger: log,
		}))
		log.Info("authentication enabled")
	}

	systemHandler := handler.NewSystemHandler(db, version, log)
	engine.GET("/health", systemHandler.Health)

	router.New(engine, log).Register(
		systemHandler,
		handler.NewOrderHandler(orderService, dashboardService, log),
		handler.NewInventoryHandler(inventoryService, log),
		handler.NewManufacturerHandler(manufacturerService, formService, log),
		handler.NewSupplierHandler(supplierService, log),
		handler.NewSettingsHandler(settingsService, cfg.App.EnableDevRoutes, log),
		handler.NewNotificationHandler(center, log),
		handler.NewAuthHandler(authService, log),
		handler.NewOnboardingHandler(seedService, log),
		handler.NewDashboardHandler(dashboardService, log),
	).Setup()

	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := sched.Stop(shutdownCtx); err != nil {
		log.Error("error stopping scheduler", zap.Error(err))
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("error shutting down http server", zap.Error(err))
	}

	log.Info("shutdown complete")
}
