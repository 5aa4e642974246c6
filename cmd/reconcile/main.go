package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/liftsync/server/pkg/bootstrap"
	"github.com/liftsync/server/pkg/config"
	"github.com/liftsync/server/pkg/infrastructure/database"
	"github.com/liftsync/server/pkg/infrastructure/sentry"
	"github.com/liftsync/server/pkg/reconcile"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	days := flag.Int("days", 0, "lookback window in days (default: sync.lookback_days)")
	flag.Parse()

	logger := bootstrap.NewLogger("reconcile")

	if err := run(logger, *configPath, *days); err != nil {
		logger.Error("Reconciliation failed", "error", err)
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, configPath string, days int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if days <= 0 {
		days = cfg.Sync.LookbackDays
	}

	if err := database.RunMigrations(cfg.Database.DSN(), cfg.Database.MigrationsPath); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	ctx := context.Background()
	svc, err := bootstrap.NewService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()
	defer sentry.Flush(2 * time.Second)
	defer sentry.RecoverAndCapture(logger)

	if svc.Strava == nil {
		return fmt.Errorf("strava access token not configured")
	}

	window := time.Duration(cfg.Sync.ReconcileWindowSeconds) * time.Second
	rec := reconcile.New(svc.DB, svc.Strava, window, logger)

	since := time.Now().UTC().AddDate(0, 0, -days)
	n, err := rec.Run(ctx, since)
	if err != nil {
		return err
	}

	logger.Info("Reconciliation complete", "since", since.Format("2006-01-02"), "externally_synced", n)
	return nil
}
