package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/noah-isme/library-duty-api/internal/app"
	"github.com/noah-isme/library-duty-api/pkg/config"
	"github.com/noah-isme/library-duty-api/pkg/logger"
)

// @title Library Duty API
// @version 1.0.0
// @description Weekly library duty rosters for the student library committee
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logr)
	if err != nil {
		logr.Fatal("bootstrap failed", zap.Error(err))
	}
	defer func() {
		if err := application.Close(); err != nil {
			logr.Warn("close failed", zap.Error(err))
		}
	}()

	if err := application.Run(ctx); err != nil {
		logr.Error("server failed", zap.Error(err))
	}
}
