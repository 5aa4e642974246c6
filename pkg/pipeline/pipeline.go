// Package pipeline orchestrates one LiftSync run: fetch recent workouts,
// fetch the daily heart-rate series behind them, generate and push FIT
// artifacts per the routing rules, then reconcile what Strava already has.
//
// Stage failures are non-fatal: each is logged, captured and recorded on the
// run report, and the remaining stages still execute. Only run bookkeeping
// failures abort a run.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	shared "github.com/liftsync/server/pkg"
	"github.com/liftsync/server/pkg/bootstrap"
	"github.com/liftsync/server/pkg/config"
	"github.com/liftsync/server/pkg/domain/file_generators"
	"github.com/liftsync/server/pkg/domain/heartrate"
	"github.com/liftsync/server/pkg/domain/workout"
	"github.com/liftsync/server/pkg/infrastructure/notifications"
	"github.com/liftsync/server/pkg/infrastructure/sentry"
	"github.com/liftsync/server/pkg/infrastructure/state"
	"github.com/liftsync/server/pkg/integrations/hevy"
	"github.com/liftsync/server/pkg/reconcile"
	"github.com/liftsync/server/pkg/router"
)

// holdDown suppresses scheduled runs after a recent successful sync, so a
// manual "sync now" is not followed by redundant cron work.
const holdDown = time.Hour

// WorkoutSource is the slice of the Hevy client the pipeline needs.
type WorkoutSource interface {
	Workouts(ctx context.Context, page, pageSize int) (*hevy.WorkoutPage, error)
}

// HealthSource is the slice of the Garmin client the pipeline needs.
type HealthSource interface {
	DailyHeartRate(ctx context.Context, day time.Time) ([]heartrate.Sample, error)
}

// Deps wires the pipeline. Nil integration fields disable their stages; the
// run proceeds with whatever is configured.
type Deps struct {
	DB         shared.Database
	State      shared.StateStore
	Store      shared.ArtifactStore
	Notifier   shared.Notifier
	Hevy       WorkoutSource
	Garmin     HealthSource
	Uploaders  map[string]shared.Uploader
	Activities reconcile.ActivityLister
	Config     *config.Config
	Logger     *slog.Logger
}

// RunReport is what Run hands back: the run row ID, whether the hold-down
// skipped the run, the final stats, and any stage-level errors.
type RunReport struct {
	RunID   string
	Skipped bool
	Stats   shared.RunStats
	Errors  []string
}

type Pipeline struct {
	db         shared.Database
	state      shared.StateStore
	store      shared.ArtifactStore
	notifier   shared.Notifier
	hevy       WorkoutSource
	garmin     HealthSource
	uploaders  map[string]shared.Uploader
	reconciler *reconcile.Reconciler
	cfg        *config.Config
	logger     *slog.Logger
}

func New(d Deps) *Pipeline {
	var rec *reconcile.Reconciler
	if d.Activities != nil {
		window := time.Duration(d.Config.Sync.ReconcileWindowSeconds) * time.Second
		rec = reconcile.New(d.DB, d.Activities, window, d.Logger)
	}
	return &Pipeline{
		db:         d.DB,
		state:      d.State,
		store:      d.Store,
		notifier:   d.Notifier,
		hevy:       d.Hevy,
		garmin:     d.Garmin,
		uploaders:  d.Uploaders,
		reconciler: rec,
		cfg:        d.Config,
		logger:     d.Logger,
	}
}

// FromService builds a Pipeline from the bootstrap wiring, skipping the
// stages whose integrations are not configured.
func FromService(svc *bootstrap.Service, logger *slog.Logger) *Pipeline {
	d := Deps{
		DB:       svc.DB,
		State:    svc.State,
		Store:    svc.Store,
		Notifier: svc.Notifier,
		Config:   svc.Config,
		Logger:   logger,
	}
	if svc.Hevy != nil {
		d.Hevy = svc.Hevy
	}
	if svc.Garmin != nil {
		d.Garmin = svc.Garmin
	}
	if svc.Strava != nil || svc.Intervals != nil {
		d.Uploaders = make(map[string]shared.Uploader)
	}
	if svc.Strava != nil {
		d.Uploaders[svc.Strava.Name()] = svc.Strava
		d.Activities = svc.Strava
	}
	if svc.Intervals != nil {
		d.Uploaders[svc.Intervals.Name()] = svc.Intervals
	}
	return New(d)
}

// Run executes the full pipeline and records it as one sync_runs row. Stage
// errors are collected on the report; the returned error is non-nil only when
// the run itself could not be recorded or it crashed.
func (p *Pipeline) Run(ctx context.Context, triggeredBy string) (report *RunReport, err error) {
	if triggeredBy == shared.TriggerSchedule {
		recent, checkErr := p.db.HasRecentSuccessfulRun(ctx, time.Now().UTC().Add(-holdDown))
		if checkErr != nil {
			return nil, fmt.Errorf("failed to check recent runs: %w", checkErr)
		}
		if recent {
			p.logger.Info("Skipping scheduled run, a sync succeeded within the last hour")
			return &RunReport{Skipped: true}, nil
		}
	}

	run := &shared.SyncRun{ID: uuid.NewString(), TriggeredBy: triggeredBy}
	if startErr := p.db.StartSyncRun(ctx, run); startErr != nil {
		return nil, fmt.Errorf("failed to record run start: %w", startErr)
	}
	report = &RunReport{RunID: run.ID}
	p.logger.Info("Pipeline run started", "run_id", run.ID, "triggered_by", triggeredBy)

	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(error)
			if !ok {
				perr = fmt.Errorf("panic: %v", r)
			}
			sentry.CaptureException(perr, map[string]interface{}{"run_id": run.ID}, p.logger)
			if finishErr := p.db.FinishSyncRun(ctx, run.ID, shared.RunStatusError, report.Stats, perr.Error()); finishErr != nil {
				p.logger.Error("Failed to record crashed run", "run_id", run.ID, "error", finishErr)
			}
			err = fmt.Errorf("pipeline run crashed: %w", perr)
		}
	}()

	p.stage(ctx, report, "fetch_workouts", p.fetchWorkouts)
	p.stage(ctx, report, "fetch_daily_health", p.fetchDailyHealth)
	p.stage(ctx, report, "sync_workouts", p.syncWorkouts)
	p.stage(ctx, report, "reconcile", p.reconcileStage)

	run.Stats = report.Stats
	run.Status = shared.RunStatusSuccess
	run.Error = strings.Join(report.Errors, "; ")
	if finishErr := p.db.FinishSyncRun(ctx, run.ID, run.Status, run.Stats, run.Error); finishErr != nil {
		return report, fmt.Errorf("failed to record run completion: %w", finishErr)
	}
	p.logger.Info("Pipeline run complete",
		"run_id", run.ID,
		"fetched", report.Stats.WorkoutsFetched,
		"synced", report.Stats.WorkoutsSynced,
		"failed", report.Stats.WorkoutsFailed,
		"reconciled", report.Stats.Reconciled,
		"stage_errors", len(report.Errors))

	p.notify(ctx, run)
	return report, nil
}

type stageFunc func(ctx context.Context, stats *shared.RunStats) error

func (p *Pipeline) stage(ctx context.Context, report *RunReport, name string, fn stageFunc) {
	p.logger.Info("Stage starting", "stage", name)
	if err := fn(ctx, &report.Stats); err != nil {
		p.logger.Error("Stage failed", "stage", name, "error", err)
		sentry.CaptureException(err, map[string]interface{}{"stage": name, "run_id": report.RunID}, p.logger)
		report.Errors = append(report.Errors, fmt.Sprintf("%s: %v", name, err))
	}
}

// --- Stage: fetch workouts ---

func (p *Pipeline) fetchWorkouts(ctx context.Context, stats *shared.RunStats) error {
	if p.hevy == nil {
		p.logger.Info("Hevy not configured, skipping workout fetch")
		return nil
	}
	page, err := p.hevy.Workouts(ctx, 1, hevy.DefaultPageSize)
	if err != nil {
		return fmt.Errorf("failed to fetch Hevy workouts: %w", err)
	}
	for _, raw := range page.Workouts {
		w, err := hevy.DecodeWorkout(raw)
		if err != nil {
			p.logger.Warn("Skipping undecodable workout", "error", err)
			continue
		}
		if err := p.db.UpsertRawWorkout(ctx, w); err != nil {
			return fmt.Errorf("failed to store workout %s: %w", w.SourceID, err)
		}
		stats.WorkoutsFetched++
	}
	p.logger.Info("Fetched Hevy workouts", "count", stats.WorkoutsFetched)
	return nil
}

// --- Stage: fetch daily health ---

func (p *Pipeline) fetchDailyHealth(ctx context.Context, stats *shared.RunStats) error {
	if p.garmin == nil {
		p.logger.Info("Garmin not configured, skipping daily health fetch")
		return nil
	}
	workouts, err := p.db.ListRawWorkouts(ctx, p.lookbackStart())
	if err != nil {
		return fmt.Errorf("failed to list raw workouts: %w", err)
	}
	for _, day := range workoutDays(workouts) {
		samples, err := p.garmin.DailyHeartRate(ctx, day)
		if err != nil {
			p.logger.Warn("Daily heart-rate fetch failed", "date", day.Format("2006-01-02"), "error", err)
			continue
		}
		series := &shared.DailySeries{Date: day, Source: shared.PlatformGarmin, Samples: samples}
		if err := p.db.UpsertDailyHealth(ctx, series); err != nil {
			return fmt.Errorf("failed to store daily health for %s: %w", day.Format("2006-01-02"), err)
		}
		stats.DaysFetched++
	}
	p.logger.Info("Fetched daily health", "days", stats.DaysFetched)
	return nil
}

// --- Stage: sync workouts ---

func (p *Pipeline) syncWorkouts(ctx context.Context, stats *shared.RunStats) error {
	if len(p.uploaders) == 0 {
		p.logger.Info("No destinations configured, skipping workout sync")
		return nil
	}
	pending, err := p.db.ListUnsyncedWorkouts(ctx, p.lookbackStart())
	if err != nil {
		return fmt.Errorf("failed to list unsynced workouts: %w", err)
	}
	if len(pending) == 0 {
		p.logger.Info("No unsynced workouts")
		return nil
	}

	rulesBySource := make(map[string][]*shared.SyncRule)
	for _, raw := range pending {
		rules, ok := rulesBySource[raw.Source]
		if !ok {
			rules, err = p.db.ListRules(ctx, raw.Source, true)
			if err != nil {
				return fmt.Errorf("failed to load sync rules: %w", err)
			}
			rulesBySource[raw.Source] = rules
		}

		matches := router.Destinations(rules, raw.Source, shared.ActivityStrength)
		if len(matches) == 0 {
			stats.WorkoutsSkipped++
			continue
		}
		if err := p.syncOne(ctx, stats, raw, matches); err != nil {
			p.logger.Error("Workout sync failed", "source_id", raw.SourceID, "error", err)
			sentry.CaptureException(err, map[string]interface{}{"source_id": raw.SourceID}, p.logger)
			stats.WorkoutsFailed++
		}
	}
	return nil
}

// syncOne parses, generates and pushes a single workout. Upload failures are
// recorded as error rows and do not abort the remaining destinations; the
// returned error covers only failures before any upload was attempted.
func (p *Pipeline) syncOne(ctx context.Context, stats *shared.RunStats, raw *shared.RawWorkout, matches []router.Match) error {
	w, err := workout.Parse(raw.Payload)
	if err != nil {
		return fmt.Errorf("failed to parse workout %s: %w", raw.SourceID, err)
	}

	res, err := p.resolveHeartRate(ctx, raw)
	if err != nil {
		return err
	}

	fitData, summary, err := p.buildArtifact(ctx, raw, w, res)
	if err != nil {
		return err
	}

	avg := 0
	if summary.AvgHR != nil {
		avg = *summary.AvgHR
	}
	meta := shared.UploadMeta{
		Title:     raw.Title,
		SportType: shared.SportWeightTraining,
		Source:    raw.Source,
		SourceID:  raw.SourceID,
		StartTime: raw.StartTime,
	}

	sent, failed := 0, 0
	for _, m := range matches {
		ok, err := router.ShouldSync(ctx, p.db, raw.Source, raw.SourceID, m.Destination)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		ruleID := m.RuleID
		rec := &shared.ActivitySync{
			SourcePlatform: raw.Source,
			SourceID:       raw.SourceID,
			Destination:    m.Destination,
			RuleID:         &ruleID,
			AvgHeartRate:   avg,
			HRSource:       res.Source,
			Calories:       summary.Calories,
		}

		uploader, found := p.uploaders[m.Destination]
		if !found {
			rec.Status = shared.SyncStatusError
			rec.Error = fmt.Sprintf("no uploader for destination %q", m.Destination)
		} else if destID, upErr := uploader.Upload(ctx, fitData, meta); upErr != nil {
			rec.Status = shared.SyncStatusError
			rec.Error = upErr.Error()
		} else {
			rec.Status = shared.SyncStatusSent
			rec.DestinationID = destID
		}

		if err := p.db.LogActivitySync(ctx, rec); err != nil {
			return fmt.Errorf("failed to record sync for %s: %w", raw.SourceID, err)
		}
		if rec.Status == shared.SyncStatusSent {
			sent++
			p.logger.Info("Workout synced",
				"source_id", raw.SourceID, "destination", m.Destination,
				"destination_id", rec.DestinationID, "hr_source", res.Source)
		} else {
			failed++
			p.logger.Error("Workout upload failed",
				"source_id", raw.SourceID, "destination", m.Destination, "error", rec.Error)
		}
	}

	switch {
	case sent > 0:
		stats.WorkoutsSynced++
		stats.Calories += summary.Calories
		if stats.HRSources == nil {
			stats.HRSources = make(map[string]int)
		}
		stats.HRSources[res.Source]++
	case failed == 0:
		stats.WorkoutsSkipped++
	}
	if failed > 0 {
		stats.WorkoutsFailed++
	}
	return nil
}

func (p *Pipeline) resolveHeartRate(ctx context.Context, raw *shared.RawWorkout) (heartrate.Resolution, error) {
	series, err := p.db.GetDailyHealthRange(ctx, raw.StartTime, raw.EndTime)
	if err != nil {
		return heartrate.Resolution{}, fmt.Errorf("failed to load daily health: %w", err)
	}
	measured := heartrate.WindowSamples(series, raw.StartTime, raw.EndTime)

	cfg := p.cfg.ResolverConfig()
	history, err := p.db.RecentAverageHeartRates(ctx, cfg.HistoryWindow)
	if err != nil {
		return heartrate.Resolution{}, fmt.Errorf("failed to load heart-rate history: %w", err)
	}
	return heartrate.Resolve(measured, history, cfg), nil
}

// buildArtifact encodes the FIT file and persists it when its inputs changed
// since the last build. Encoding is deterministic, so an unchanged
// fingerprint means the stored artifact is already byte-identical.
func (p *Pipeline) buildArtifact(ctx context.Context, raw *shared.RawWorkout, w *workout.Workout, res heartrate.Resolution) ([]byte, file_generators.Summary, error) {
	fitData, summary, err := file_generators.BuildFitFile(w, res.Samples, p.cfg.GeneratorOptions())
	if err != nil {
		return nil, summary, fmt.Errorf("failed to build FIT file for %s: %w", raw.SourceID, err)
	}

	fingerprint := artifactFingerprint(raw.Payload, res)
	rebuild, err := p.state.ShouldRebuild(ctx, raw.SourceID, fingerprint)
	if err != nil {
		return nil, summary, fmt.Errorf("failed to check artifact manifest: %w", err)
	}
	if !rebuild {
		return fitData, summary, nil
	}

	path, err := p.store.Write(ctx, raw.SourceID+".fit", fitData)
	if err != nil {
		return nil, summary, fmt.Errorf("failed to store FIT artifact: %w", err)
	}
	rec := &shared.ArtifactRecord{
		SourceID:    raw.SourceID,
		Fingerprint: fingerprint,
		Path:        path,
		Size:        int64(len(fitData)),
		SHA256:      state.HashBytes(fitData),
		HRSource:    res.Source,
	}
	if err := p.state.MarkBuilt(ctx, rec); err != nil {
		return nil, summary, fmt.Errorf("failed to record artifact: %w", err)
	}
	summary.OutputPath = path
	p.logger.Info("Generated FIT artifact", "source_id", raw.SourceID, "path", path, "size", len(fitData))
	return fitData, summary, nil
}

// --- Stage: reconcile ---

func (p *Pipeline) reconcileStage(ctx context.Context, stats *shared.RunStats) error {
	if p.reconciler == nil {
		p.logger.Info("Strava not configured, skipping reconciliation")
		return nil
	}
	n, err := p.reconciler.Run(ctx, p.lookbackStart())
	if err != nil {
		return err
	}
	stats.Reconciled = n
	return nil
}

// notify sends the run summary when the run did something worth reporting.
func (p *Pipeline) notify(ctx context.Context, run *shared.SyncRun) {
	s := run.Stats
	if s.WorkoutsSynced == 0 && s.WorkoutsFailed == 0 && s.Reconciled == 0 && run.Error == "" {
		return
	}
	if err := p.notifier.Send(ctx, notifications.FormatRunSummary(run)); err != nil {
		p.logger.Warn("Run notification failed", "error", err)
	}
}

func (p *Pipeline) lookbackStart() time.Time {
	return time.Now().UTC().AddDate(0, 0, -p.cfg.Sync.LookbackDays)
}

// workoutDays collects the distinct UTC days the workouts span, ascending.
func workoutDays(workouts []*shared.RawWorkout) []time.Time {
	seen := make(map[time.Time]bool)
	var days []time.Time
	for _, w := range workouts {
		end := w.EndTime
		if end.Before(w.StartTime) {
			end = w.StartTime
		}
		for day := startOfDay(w.StartTime); !day.After(end); day = day.AddDate(0, 0, 1) {
			if !seen[day] {
				seen[day] = true
				days = append(days, day)
			}
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// artifactFingerprint covers everything that shapes the artifact bytes: the
// source payload and the resolved heart-rate samples.
func artifactFingerprint(payload []byte, res heartrate.Resolution) string {
	var b bytes.Buffer
	b.Write(payload)
	fmt.Fprintf(&b, "|%s|%v", res.Source, res.Samples)
	return state.HashBytes(b.Bytes())
}
