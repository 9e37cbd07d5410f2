package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/library-duty-api/internal/app"
	"github.com/noah-isme/library-duty-api/pkg/config"
	"github.com/noah-isme/library-duty-api/pkg/logger"
)

var (
	termFlag string
	jsonOut  bool
)

var rootCmd = &cobra.Command{
	Use:          "dutyctl",
	Short:        "Operate library duty schedules from the command line",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&termFlag, "term", "t", "", "term to operate on (FIRST_TERM or SECOND_TERM)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print the full result as JSON")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// withApp loads configuration, connects the shared resources and hands them
// to fn, closing everything afterwards.
func withApp(fn func(ctx context.Context, a *app.App) error) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logr.Sync() //nolint:errcheck

	a, err := app.New(ctx, cfg, logr)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logr.Warn("close failed", zap.Error(err))
		}
	}()
	return fn(ctx, a)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
