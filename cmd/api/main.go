package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/felipeortega/gymdesk-backend/api/routes"
	"github.com/felipeortega/gymdesk-backend/internal/auth"
	"github.com/felipeortega/gymdesk-backend/internal/checkins"
	"github.com/felipeortega/gymdesk-backend/internal/dashboard"
	"github.com/felipeortega/gymdesk-backend/internal/members"
	"github.com/felipeortega/gymdesk-backend/internal/payments"
	"github.com/felipeortega/gymdesk-backend/internal/users"
	"github.com/felipeortega/gymdesk-backend/internal/workouts"
	"github.com/felipeortega/gymdesk-backend/pkg/auth/session"
	"github.com/felipeortega/gymdesk-backend/pkg/config"
	"github.com/felipeortega/gymdesk-backend/pkg/db"
	"github.com/felipeortega/gymdesk-backend/pkg/logger"
	"github.com/felipeortega/gymdesk-backend/pkg/metrics"
	"github.com/felipeortega/gymdesk-backend/pkg/migrate"
	"github.com/felipeortega/gymdesk-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(dbClient.DB()),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
		AppConfig:      cfg.App,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	memberRepo := members.NewRepository(dbClient.DB())

	memberService, err := members.NewService(memberRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create member service", err)
		os.Exit(1)
	}

	paymentService, err := payments.NewService(payments.NewRepository(dbClient.DB()), memberRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create payment service", err)
		os.Exit(1)
	}

	workoutService, err := workouts.NewService(workouts.NewRepository(dbClient.DB()), memberRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create workout service", err)
		os.Exit(1)
	}

	checkinService, err := checkins.NewService(checkins.NewRepository(dbClient.DB()), memberRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create check-in service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboard.NewService(dashboard.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create dashboard service", err)
		os.Exit(1)
	}

	httpMetrics := metrics.NewHTTPMetrics(prometheus.DefaultRegisterer)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisClient,
			sessionManager,
			httpMetrics,
			authService,
			memberService,
			paymentService,
			workoutService,
			checkinService,
			dashboardService,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
