package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/minbar-sermons-api/internal/app"
	"github.com/minbar-sermons-api/internal/config"
	"github.com/minbar-sermons-api/internal/logging"
	"go.uber.org/zap"
)

func main() {
	// Get configuration (loads .env if present)
	cfg := config.GetConfig()
	if err := config.GetInitError(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, nil, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}
	defer a.Close()

	if err := a.Serve(ctx); err != nil {
		logger.Error("server stopped", zap.Error(err))
		return
	}
	logger.Info("server stopped")
}
