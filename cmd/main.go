package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/rinkscout/internal/config"
	"github.com/okian/rinkscout/pkg/logger"
)

func main() {
	// Logs go to stderr; stdout carries the report.
	if err := logger.Init(logger.WithOutput(os.Stderr)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if cfg.LogFormat == string(logger.FormatJSON) {
		if err := logger.Init(logger.WithOutput(os.Stderr), logger.WithFormat(logger.FormatJSON)); err != nil {
			os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
			os.Exit(1)
		}
	}
	log := logger.Get()
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg, os.Stdout, log); err != nil {
		log.Error(ctx, "roster review failed", logger.Error(err))
		stop()
		os.Exit(1)
	}
}
