// Package reconcile marks workouts that reached Strava without our upload.
//
// Garmin watch activities sync to Strava natively, so a fetched workout may
// already exist there before the pipeline considers pushing it. The
// reconciler lists recent Strava activities and matches them to raw workouts
// in two passes:
// 1. Closest start time within a small window
// 2. Identical title within a day, for files whose embedded timestamps carry a timezone offset
// Matches are written to the sync log with status "external" so the router
// never pushes a duplicate.
package reconcile

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	shared "github.com/liftsync/server/pkg"
	"github.com/liftsync/server/pkg/integrations/strava"
)

const (
	// DefaultWindow is the start-time tolerance for pass 1.
	DefaultWindow = 120 * time.Second

	// nameWindow bounds pass 2. Timezone offsets reach about twelve hours,
	// so a full day covers any mislabeled local time.
	nameWindow = 24 * time.Hour

	// activityPageSize is how many recent Strava activities one run inspects.
	activityPageSize = 100
)

// ActivityLister is the slice of the Strava client the reconciler needs.
type ActivityLister interface {
	ListActivities(ctx context.Context, after time.Time, perPage int) ([]strava.Activity, error)
}

// Reconciler matches Strava activities against raw workouts and records the
// pairs that arrived through native sync.
type Reconciler struct {
	db     shared.Database
	strava ActivityLister
	window time.Duration
	logger *slog.Logger
}

// New returns a Reconciler. A non-positive window falls back to DefaultWindow.
func New(db shared.Database, lister ActivityLister, window time.Duration, logger *slog.Logger) *Reconciler {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Reconciler{db: db, strava: lister, window: window, logger: logger}
}

// Run reconciles Strava activities created at or after since. It returns the
// number of newly recorded external syncs.
func (r *Reconciler) Run(ctx context.Context, since time.Time) (int, error) {
	activities, err := r.strava.ListActivities(ctx, since, activityPageSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list Strava activities: %w", err)
	}
	if len(activities) == 0 {
		r.logger.Info("No Strava activities found for reconciliation")
		return 0, nil
	}

	workouts, err := r.db.ListRawWorkouts(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("failed to load raw workouts: %w", err)
	}
	sort.Slice(workouts, func(i, j int) bool {
		return workouts[i].StartTime.Before(workouts[j].StartTime)
	})

	matched := make(map[int64]bool)
	known := make(map[string]bool)
	reconciled := 0

	// Pass 1: closest start time wins, ties go to the earlier workout.
	for _, act := range activities {
		var best *shared.RawWorkout
		bestDiff := r.window + 1
		for _, w := range workouts {
			diff := absDuration(w.StartTime.Sub(act.StartDate))
			if diff <= r.window && diff < bestDiff {
				bestDiff = diff
				best = w
			}
		}
		if best == nil {
			continue
		}
		matched[act.ID] = true

		wrote, err := r.record(ctx, best, act, known)
		if err != nil {
			return reconciled, err
		}
		if wrote {
			reconciled++
			r.logger.Debug("Reconciled by timestamp",
				"source", best.Source, "source_id", best.SourceID,
				"strava_id", act.ID, "diff", bestDiff)
		}
	}

	// Pass 2: identical title within a day for the activities pass 1 missed.
	for _, act := range activities {
		if matched[act.ID] || act.Name == "" {
			continue
		}
		var hit *shared.RawWorkout
		for _, w := range workouts {
			if w.Title != act.Name {
				continue
			}
			if absDuration(w.StartTime.Sub(act.StartDate)) <= nameWindow {
				hit = w
				break
			}
		}
		if hit == nil {
			continue
		}
		matched[act.ID] = true

		wrote, err := r.record(ctx, hit, act, known)
		if err != nil {
			return reconciled, err
		}
		if wrote {
			reconciled++
			r.logger.Debug("Reconciled by title",
				"source", hit.Source, "source_id", hit.SourceID,
				"strava_id", act.ID, "title", act.Name)
		}
	}

	r.logger.Info("Reconciliation complete", "reconciled", reconciled)
	return reconciled, nil
}

// record writes an external sync row for the pair unless the sync log already
// covers it. known caches keys confirmed synced during this run.
func (r *Reconciler) record(ctx context.Context, w *shared.RawWorkout, act strava.Activity, known map[string]bool) (bool, error) {
	key := w.Source + ":" + w.SourceID
	if known[key] {
		return false, nil
	}
	synced, err := r.db.HasSynced(ctx, w.Source, w.SourceID, shared.PlatformStrava)
	if err != nil {
		return false, fmt.Errorf("failed to check sync log: %w", err)
	}
	if synced {
		known[key] = true
		return false, nil
	}

	rec := &shared.ActivitySync{
		SourcePlatform: w.Source,
		SourceID:       w.SourceID,
		Destination:    shared.PlatformStrava,
		DestinationID:  strconv.FormatInt(act.ID, 10),
		Status:         shared.SyncStatusExternal,
	}
	if err := r.db.LogActivitySync(ctx, rec); err != nil {
		return false, fmt.Errorf("failed to record external sync: %w", err)
	}
	known[key] = true
	return true, nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
