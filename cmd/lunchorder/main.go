package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rookgm/lunchorder/config"
	"github.com/rookgm/lunchorder/internal/auth"
	handler "github.com/rookgm/lunchorder/internal/handler/http"
	"github.com/rookgm/lunchorder/internal/logger"
	"github.com/rookgm/lunchorder/internal/middleware"
	"github.com/rookgm/lunchorder/internal/repository"
	"github.com/rookgm/lunchorder/internal/repository/postgres"
	"github.com/rookgm/lunchorder/internal/service"
	"go.uber.org/zap"
)

func main() {

	// create new config
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Log.Sync()

	policy, err := cfg.Policy()
	if err != nil {
		logger.Log.Fatal("Error building order policy", zap.Error(err))
	}

	// create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// initialize database
	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Log.Fatal("Error initializing database", zap.Error(err))
	}
	defer db.Close()

	// migrate database
	if err := db.Migrate(); err != nil {
		logger.Log.Fatal("Error migrating database", zap.Error(err))
	}

	tokenKey, err := cfg.AuthTokenKey()
	if err != nil {
		logger.Log.Fatal("Error extracting token key", zap.Error(err))
	}
	token := auth.NewAuthToken(tokenKey)

	// dependency injection
	// user
	userRepo := repository.NewUserRepository(db)
	userService := service.NewUserService(userRepo)
	userHandler := handler.NewUserHandler(userService, token)

	if cfg.HasAdmin() {
		if err := userService.EnsureAdmin(ctx, cfg.AdminLogin, cfg.AdminPassword); err != nil {
			logger.Log.Fatal("Error provisioning admin", zap.Error(err))
		}
	}

	// auth
	authService := service.NewAuthService(userRepo, token)
	authHandler := handler.NewAuthHandler(authService)

	// lunch config
	configRepo := repository.NewConfigRepository(db)
	configService := service.NewConfigService(configRepo)
	configHandler := handler.NewConfigHandler(configService)

	if err := configService.Bootstrap(ctx, cfg.DefaultLunchConfig()); err != nil {
		logger.Log.Fatal("Error bootstrapping lunch config", zap.Error(err))
	}

	// order
	orderRepo := repository.NewOrderRepository(db)
	orderService := service.NewOrderService(orderRepo, configRepo, policy)
	orderHandler := handler.NewOrderHandler(orderService)

	// report
	reportRepo := repository.NewReportRepository(db)
	reportService := service.NewReportService(reportRepo, policy)
	reportHandler := handler.NewReportHandler(reportService)

	rateLimit, err := middleware.RateLimit(cfg.RateLimit)
	if err != nil {
		logger.Log.Fatal("Error creating rate limiter", zap.Error(err))
	}

	router := chi.NewRouter()

	router.Use(chimw.Recoverer)
	router.Use(middleware.Logging(logger.Log))

	router.Post("/api/user/register", userHandler.RegisterUser())
	router.Post("/api/user/login", authHandler.LoginUser())

	// routes that require authentication
	router.Group(func(group chi.Router) {
		group.Use(handler.AuthMiddleware(token))
		group.Get("/api/user/me", userHandler.GetCurrentUser())
		group.Get("/api/calendar", orderHandler.Calendar())
		group.Get("/api/calendar/{year}/{month}", orderHandler.Calendar())
		group.Get("/api/orders/today", orderHandler.GetTodayOrder())

		group.Group(func(mutate chi.Router) {
			mutate.Use(rateLimit)
			mutate.Post("/api/orders/toggle", orderHandler.ToggleOrder())
			mutate.Post("/api/orders/today", orderHandler.SetTodayOrder())
		})

		// staff only routes
		group.Group(func(admin chi.Router) {
			admin.Use(handler.AdminOnly)
			admin.Get("/api/admin/config", configHandler.GetConfig())
			admin.Put("/api/admin/config", configHandler.UpdateConfig())
			admin.Get("/api/admin/orders", orderHandler.ListOrders())
			admin.Patch("/api/admin/orders/{id}", orderHandler.UpdateOrder())
			admin.Post("/api/admin/orders/finalize", orderHandler.FinalizeOrders())
			admin.Get("/api/admin/reports/monthly", reportHandler.MonthlyReport())
			admin.Get("/api/admin/reports/fax", reportHandler.FaxSheet())
		})
	})

	logger.Log.Info("Running server",
		zap.String("addr", cfg.ServerAddr),
		zap.String("cutoff", policy.CutoffString()),
		zap.String("timezone", policy.Location.String()),
		zap.Int("window_days", policy.WindowDays),
	)

	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		logger.Log.Fatal("Error starting server", zap.Error(err))
	}
}
