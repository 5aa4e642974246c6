package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	shared "github.com/liftsync/server/pkg"
	"github.com/liftsync/server/pkg/api"
	"github.com/liftsync/server/pkg/bootstrap"
	"github.com/liftsync/server/pkg/config"
	"github.com/liftsync/server/pkg/infrastructure/database"
	"github.com/liftsync/server/pkg/infrastructure/sentry"
	"github.com/liftsync/server/pkg/pipeline"
)

// errRunBusy reports a trigger that lost the race to an in-flight run.
var errRunBusy = errors.New("a sync run is already in progress")

// serialRunner keeps the daemon from running two pipelines at once. The
// loser of a race is turned away rather than queued; the next tick or
// trigger picks the work up.
type serialRunner struct {
	mu sync.Mutex
	p  *pipeline.Pipeline
}

func (r *serialRunner) Run(ctx context.Context, triggeredBy string) (*pipeline.RunReport, error) {
	if !r.mu.TryLock() {
		return nil, errRunBusy
	}
	defer r.mu.Unlock()
	return r.p.Run(ctx, triggeredBy)
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	logger := bootstrap.NewLogger("syncd")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	// Once config is known, move logging onto the rotated writer.
	logger = bootstrap.NewLoggerTo(bootstrap.LogWriter(cfg.Log), "syncd")
	logger.Info("LiftSync daemon starting", "schedule", cfg.Sync.Schedule, "addr", cfg.Server.Addr())

	if err := database.RunMigrations(cfg.Database.DSN(), cfg.Database.MigrationsPath); err != nil {
		logger.Error("Migration failed", "error", err)
		os.Exit(1)
	}
	logger.Info("Migrations applied")
	if *migrateOnly {
		return
	}

	ctx := context.Background()
	svc, err := bootstrap.NewService(ctx, cfg, logger)
	if err != nil {
		logger.Error("Service init failed", "error", err)
		os.Exit(1)
	}
	defer svc.Close()
	defer sentry.Flush(2 * time.Second)

	runner := &serialRunner{p: pipeline.FromService(svc, logger)}

	// Scheduled runs. The pipeline's hold-down additionally suppresses a
	// tick landing right after a manual run.
	sched := cron.New()
	if _, err := sched.AddFunc(cfg.Sync.Schedule, func() {
		if _, err := runner.Run(ctx, shared.TriggerSchedule); err != nil {
			if errors.Is(err, errRunBusy) {
				logger.Info("Skipping scheduled run, another run is in flight")
				return
			}
			logger.Error("Scheduled run failed", "error", err)
			sentry.CaptureException(err, map[string]interface{}{"triggered_by": shared.TriggerSchedule}, logger)
		}
	}); err != nil {
		logger.Error("Invalid cron schedule", "schedule", cfg.Sync.Schedule, "error", err)
		os.Exit(1)
	}
	sched.Start()

	httpSrv := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: api.New(svc.DB, runner, cfg.Server.APIKey, logger),
	}
	go func() {
		logger.Info("Status server listening", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Status server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info("Shutting down", "signal", sig.String())

	// Let an in-flight scheduled run finish before closing shared resources.
	<-sched.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Daemon stopped")
}
