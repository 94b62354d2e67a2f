package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/app"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/config"
	"github.com/Nihalmp45/zen-rooms-hotel-booking/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "zen-rooms",
		Short:         "Hotel search, checkout and account API",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "indexes",
		Short: "Create document store indexes and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ensureIndexes(cmd.Context())
		},
	})

	return root
}

func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", map[string]any{
			"error": err.Error(),
		})
	}
	logger.Init(cfg.LogLevel)
	return cfg
}

func serve() error {
	cfg := loadConfig()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	application, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize app", map[string]any{
			"error": err.Error(),
		})
	}

	go func() {
		if err := application.Run(); err != nil {
			logger.Fatal("http server failed", map[string]any{
				"error": err.Error(),
			})
		}
	}()

	logger.Info("zen-rooms started", map[string]any{
		"port":   cfg.AppPort,
		"prefix": cfg.APIPrefix,
		"env":    cfg.AppEnv,
	})

	<-ctx.Done() // wait for Ctrl+C

	logger.Info("shutdown signal received", nil)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		shutdownTimeout,
	)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	logger.Info("zen-rooms stopped cleanly", nil)
	return nil
}

func ensureIndexes(parent context.Context) error {
	cfg := loadConfig()

	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, 30*time.Second)
	defer cancel()

	if err := app.EnsureIndexes(ctx, cfg); err != nil {
		logger.Error("index build failed", map[string]any{
			"error": err.Error(),
		})
		return err
	}

	logger.Info("indexes ready", nil)
	return nil
}
