package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pageza/nutrilens/backend/config"
	"github.com/pageza/nutrilens/backend/internal/api"
	"github.com/pageza/nutrilens/backend/internal/database"
	"github.com/pageza/nutrilens/backend/internal/middleware"
	"github.com/pageza/nutrilens/backend/internal/server"
	"github.com/pageza/nutrilens/backend/internal/service"
	"github.com/pageza/nutrilens/backend/internal/slogx"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger := slogx.New(slogx.Config{
		Service: "nutrilens-api",
		Version: version,
		Env:     string(cfg.Env),
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg)
	if err != nil {
		return err
	}
	if err := database.RunMigrations(db); err != nil {
		return err
	}

	checks := map[string]api.HealthCheckFunc{
		"database": func(ctx context.Context) error { return database.HealthCheck(ctx, db) },
	}

	var (
		drafts      service.DraftStore
		mealLimiter *middleware.RateLimiter
	)
	redisClient, err := database.NewRedisClient(ctx, cfg)
	switch {
	case err == nil:
		defer redisClient.Close()
		drafts = service.NewRedisDraftStore(redisClient, cfg.DraftTTL)
		mealLimiter = middleware.NewMealAnalysisRateLimiter(redisClient, cfg.MealAnalysisLimit)
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	case cfg.Env == config.Production:
		return err
	default:
		logger.Warn("redis unavailable, keeping onboarding drafts in memory", "error", err)
		drafts = service.NewMemoryDraftStore(cfg.DraftTTL)
	}

	var photos service.PhotoStore
	if cfg.S3Bucket != "" {
		s3Config, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return err
		}
		photos = service.NewS3PhotoStore(s3Config)
	} else {
		logger.Warn("S3_BUCKET not set, meal photos will not be stored")
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	profileService := service.NewProfileService(db)

	srv := server.New(cfg, logger, api.Services{
		Auth:        authService,
		Profiles:    profileService,
		Onboarding:  service.NewOnboardingService(profileService, drafts, time.Now),
		Meals:       service.NewMealService(db, service.SimulatedAnalyzer{}, photos),
		Dashboard:   service.NewDashboardService(db, profileService),
		MealLimiter: mealLimiter,
		LoginLimit:  middleware.LoginRateLimit(middleware.DefaultLoginLimit),
		Checks:      checks,
	})

	return srv.Run(ctx)
}
