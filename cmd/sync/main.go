package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	shared "github.com/liftsync/server/pkg"
	"github.com/liftsync/server/pkg/bootstrap"
	"github.com/liftsync/server/pkg/config"
	"github.com/liftsync/server/pkg/infrastructure/database"
	"github.com/liftsync/server/pkg/infrastructure/sentry"
	"github.com/liftsync/server/pkg/pipeline"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	logger := bootstrap.NewLogger("sync")

	if err := run(logger, *configPath, *migrateOnly); err != nil {
		logger.Error("Sync failed", "error", err)
		sentry.Flush(2 * time.Second)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, configPath string, migrateOnly bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := database.RunMigrations(cfg.Database.DSN(), cfg.Database.MigrationsPath); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	if migrateOnly {
		logger.Info("Migrations applied")
		return nil
	}

	ctx := context.Background()
	svc, err := bootstrap.NewService(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer svc.Close()
	defer sentry.Flush(2 * time.Second)
	defer sentry.RecoverAndCapture(logger)

	// Cron wrappers and CI set TRIGGERED_BY; a bare invocation is manual.
	triggeredBy := os.Getenv("TRIGGERED_BY")
	if triggeredBy == "" {
		triggeredBy = shared.TriggerManual
	}

	report, err := pipeline.FromService(svc, logger).Run(ctx, triggeredBy)
	if err != nil {
		return err
	}
	if report.Skipped {
		logger.Info("Run skipped, a recent sync already succeeded")
		return nil
	}

	logger.Info("Sync complete",
		"run_id", report.RunID,
		"fetched", report.Stats.WorkoutsFetched,
		"synced", report.Stats.WorkoutsSynced,
		"failed", report.Stats.WorkoutsFailed,
		"reconciled", report.Stats.Reconciled)

	if len(report.Errors) > 0 {
		return fmt.Errorf("%d stage(s) failed: %s", len(report.Errors), strings.Join(report.Errors, "; "))
	}
	return nil
}
