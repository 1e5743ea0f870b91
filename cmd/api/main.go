package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/senurad/procuretrack-backend/api/routes"
	"github.com/senurad/procuretrack-backend/internal/draft"
	"github.com/senurad/procuretrack-backend/internal/procurement"
	"github.com/senurad/procuretrack-backend/pkg/config"
	"github.com/senurad/procuretrack-backend/pkg/env"
	"github.com/senurad/procuretrack-backend/pkg/logger"
	"github.com/senurad/procuretrack-backend/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	procurementClient, err := procurement.NewClient(cfg.Upstream, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create procurement client", err)
		os.Exit(1)
	}

	printer, err := procurement.NewPrinter(procurementClient, cfg.Print)
	if err != nil {
		logg.Error(context.Background(), "failed to create printer", err)
		os.Exit(1)
	}

	draftStore, err := draft.NewStore(redisClient, cfg.Draft.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create draft store", err)
		os.Exit(1)
	}

	draftService, err := draft.NewService(draftStore, procurementClient, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create draft service", err)
		os.Exit(1)
	}

	addr := ":" + env.Get("PORT", cfg.App.Port)
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, redisClient, draftService, procurementClient, printer),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
