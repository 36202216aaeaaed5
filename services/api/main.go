package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/blakelange123/vibelux-stressindex/internal/logging"
	"github.com/blakelange123/vibelux-stressindex/services/api/config"
	"github.com/blakelange123/vibelux-stressindex/services/api/db"
	httpserver "github.com/blakelange123/vibelux-stressindex/services/api/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := db.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("db connection error", zap.Error(err))
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		logger.Fatal("schema migration error", zap.Error(err))
	}

	srv := httpserver.New(cfg, store, logger)
	logger.Info("REST API listening", zap.String("addr", cfg.ListenAddr()))

	if err := srv.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
