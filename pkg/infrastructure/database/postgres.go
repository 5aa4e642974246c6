// Package database provides the PostgreSQL implementation of shared.Database.
package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	shared "github.com/liftsync/server/pkg"
	"github.com/liftsync/server/pkg/domain/heartrate"
)

// Postgres wraps a pgxpool.Pool and implements shared.Database.
type Postgres struct {
	Pool *pgxpool.Pool
}

// New creates a Postgres store with a connection pool.
func New(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Postgres{Pool: pool}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	p.Pool.Close()
}

// RunMigrations applies all pending migrations from the given directory.
func RunMigrations(dsn, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// UpsertRawWorkout stores a source workout payload, replacing any previous
// fetch of the same workout.
func (p *Postgres) UpsertRawWorkout(ctx context.Context, w *shared.RawWorkout) error {
	_, err := p.Pool.Exec(ctx,
		`INSERT INTO workouts_raw (source, source_id, title, start_time, end_time, raw_json, fetched_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW())
		 ON CONFLICT (source, source_id)
		 DO UPDATE SET title = EXCLUDED.title, start_time = EXCLUDED.start_time,
		               end_time = EXCLUDED.end_time, raw_json = EXCLUDED.raw_json,
		               fetched_at = NOW()`,
		w.Source, w.SourceID, w.Title, w.StartTime, w.EndTime, w.Payload)
	if err != nil {
		return fmt.Errorf("upserting raw workout: %w", err)
	}
	return nil
}

// ListRawWorkouts returns all raw workouts started at or after since,
// regardless of sync state. The reconciler matches against the full set so a
// pushed workout is never mistaken for a second-best candidate.
func (p *Postgres) ListRawWorkouts(ctx context.Context, since time.Time) ([]*shared.RawWorkout, error) {
	rows, err := p.Pool.Query(ctx,
		`SELECT source, source_id, title, start_time, end_time, raw_json, fetched_at
		 FROM workouts_raw
		 WHERE start_time >= $1
		 ORDER BY start_time ASC`,
		since)
	if err != nil {
		return nil, fmt.Errorf("querying raw workouts: %w", err)
	}
	defer rows.Close()

	var result []*shared.RawWorkout
	for rows.Next() {
		var w shared.RawWorkout
		if err := rows.Scan(&w.Source, &w.SourceID, &w.Title, &w.StartTime, &w.EndTime,
			&w.Payload, &w.FetchedAt); err != nil {
			return nil, fmt.Errorf("scanning raw workout: %w", err)
		}
		result = append(result, &w)
	}
	return result, rows.Err()
}

// ListUnsyncedWorkouts returns raw workouts started at or after since that
// have no successful or external sync log entry yet.
func (p *Postgres) ListUnsyncedWorkouts(ctx context.Context, since time.Time) ([]*shared.RawWorkout, error) {
	rows, err := p.Pool.Query(ctx,
		`SELECT source, source_id, title, start_time, end_time, raw_json, fetched_at
		 FROM workouts_raw w
		 WHERE start_time >= $1
		   AND NOT EXISTS (
		     SELECT 1 FROM activity_sync s
		     WHERE s.source_platform = w.source
		       AND s.source_id = w.source_id
		       AND s.status IN ($2, $3)
		   )
		 ORDER BY start_time ASC`,
		since, shared.SyncStatusSent, shared.SyncStatusExternal)
	if err != nil {
		return nil, fmt.Errorf("querying unsynced workouts: %w", err)
	}
	defer rows.Close()

	var result []*shared.RawWorkout
	for rows.Next() {
		var w shared.RawWorkout
		if err := rows.Scan(&w.Source, &w.SourceID, &w.Title, &w.StartTime, &w.EndTime,
			&w.Payload, &w.FetchedAt); err != nil {
			return nil, fmt.Errorf("scanning raw workout: %w", err)
		}
		result = append(result, &w)
	}
	return result, rows.Err()
}

// UpsertDailyHealth stores one day of heart-rate samples, replacing any
// previous fetch of the same day.
func (p *Postgres) UpsertDailyHealth(ctx context.Context, series *shared.DailySeries) error {
	blob, err := marshalSamples(series.Samples)
	if err != nil {
		return fmt.Errorf("encoding hr series: %w", err)
	}
	_, err = p.Pool.Exec(ctx,
		`INSERT INTO daily_health (date, source, hr_series, synced_at)
		 VALUES ($1::date, $2, $3, NOW())
		 ON CONFLICT (date, source)
		 DO UPDATE SET hr_series = EXCLUDED.hr_series, synced_at = NOW()`,
		series.Date, series.Source, blob)
	if err != nil {
		return fmt.Errorf("upserting daily health: %w", err)
	}
	return nil
}

// GetDailyHealthRange returns all heart-rate samples for days between from
// and to inclusive, ordered by day.
func (p *Postgres) GetDailyHealthRange(ctx context.Context, from, to time.Time) ([]heartrate.Sample, error) {
	rows, err := p.Pool.Query(ctx,
		`SELECT hr_series FROM daily_health
		 WHERE date >= $1::date AND date <= $2::date
		 ORDER BY date ASC`,
		from, to)
	if err != nil {
		return nil, fmt.Errorf("querying daily health: %w", err)
	}
	defer rows.Close()

	var samples []heartrate.Sample
	for rows.Next() {
		var blob []byte
		if err := rows.Scan(&blob); err != nil {
			return nil, fmt.Errorf("scanning daily health: %w", err)
		}
		day, err := unmarshalSamples(blob)
		if err != nil {
			return nil, fmt.Errorf("decoding hr series: %w", err)
		}
		samples = append(samples, day...)
	}
	return samples, rows.Err()
}

// LogActivitySync appends a row to the sync log and fills in the row ID.
func (p *Postgres) LogActivitySync(ctx context.Context, rec *shared.ActivitySync) error {
	err := p.Pool.QueryRow(ctx,
		`INSERT INTO activity_sync (source_platform, source_id, destination, destination_id,
		                            rule_id, status, error_message, avg_heart_rate, hr_source, calories)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, synced_at`,
		rec.SourcePlatform, rec.SourceID, rec.Destination, rec.DestinationID,
		rec.RuleID, rec.Status, rec.Error, rec.AvgHeartRate, rec.HRSource, rec.Calories,
	).Scan(&rec.ID, &rec.SyncedAt)
	if err != nil {
		return fmt.Errorf("logging activity sync: %w", err)
	}
	return nil
}

// HasSynced reports whether a workout already reached a destination, either
// pushed by us or reconciled as external.
func (p *Postgres) HasSynced(ctx context.Context, sourcePlatform, sourceID, destination string) (bool, error) {
	var exists bool
	err := p.Pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM activity_sync
		   WHERE source_platform = $1 AND source_id = $2 AND destination = $3
		     AND status IN ($4, $5)
		 )`,
		sourcePlatform, sourceID, destination,
		shared.SyncStatusSent, shared.SyncStatusExternal,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking sync log: %w", err)
	}
	return exists, nil
}

// RecentAverageHeartRates returns per-workout average heart rates from past
// syncs that carried measured data, most recent first. Feeds the resolver's
// historical fallback.
func (p *Postgres) RecentAverageHeartRates(ctx context.Context, limit int) ([]float64, error) {
	rows, err := p.Pool.Query(ctx,
		`SELECT avg_heart_rate FROM (
		   SELECT DISTINCT ON (source_platform, source_id) avg_heart_rate, synced_at
		   FROM activity_sync
		   WHERE hr_source = $1 AND avg_heart_rate > 0
		   ORDER BY source_platform, source_id, synced_at DESC
		 ) t
		 ORDER BY synced_at DESC
		 LIMIT $2`,
		heartrate.SourceDaily, limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent average heart rates: %w", err)
	}
	defer rows.Close()

	var result []float64
	for rows.Next() {
		var avg int
		if err := rows.Scan(&avg); err != nil {
			return nil, fmt.Errorf("scanning average heart rate: %w", err)
		}
		result = append(result, float64(avg))
	}
	return result, rows.Err()
}

// RecentSyncs returns the latest sync log rows, most recent first.
func (p *Postgres) RecentSyncs(ctx context.Context, limit int) ([]*shared.ActivitySync, error) {
	rows, err := p.Pool.Query(ctx,
		`SELECT id, source_platform, source_id, destination, destination_id, rule_id,
		        status, error_message, avg_heart_rate, hr_source, calories, synced_at
		 FROM activity_sync
		 ORDER BY synced_at DESC
		 LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent syncs: %w", err)
	}
	defer rows.Close()

	var result []*shared.ActivitySync
	for rows.Next() {
		var rec shared.ActivitySync
		if err := rows.Scan(&rec.ID, &rec.SourcePlatform, &rec.SourceID, &rec.Destination,
			&rec.DestinationID, &rec.RuleID, &rec.Status, &rec.Error,
			&rec.AvgHeartRate, &rec.HRSource, &rec.Calories, &rec.SyncedAt); err != nil {
			return nil, fmt.Errorf("scanning sync row: %w", err)
		}
		result = append(result, &rec)
	}
	return result, rows.Err()
}

// ListRules returns routing rules for a source platform in priority order.
func (p *Postgres) ListRules(ctx context.Context, sourcePlatform string, enabledOnly bool) ([]*shared.SyncRule, error) {
	query := `SELECT id, source_platform, activity_type, destination, priority, enabled
	          FROM sync_rules
	          WHERE source_platform = $1`
	if enabledOnly {
		query += ` AND enabled`
	}
	query += ` ORDER BY priority ASC, id ASC`

	rows, err := p.Pool.Query(ctx, query, sourcePlatform)
	if err != nil {
		return nil, fmt.Errorf("querying sync rules: %w", err)
	}
	defer rows.Close()

	var result []*shared.SyncRule
	for rows.Next() {
		var r shared.SyncRule
		if err := rows.Scan(&r.ID, &r.SourcePlatform, &r.ActivityType, &r.Destination,
			&r.Priority, &r.Enabled); err != nil {
			return nil, fmt.Errorf("scanning sync rule: %w", err)
		}
		result = append(result, &r)
	}
	return result, rows.Err()
}

// StartSyncRun records the beginning of a pipeline run.
func (p *Postgres) StartSyncRun(ctx context.Context, run *shared.SyncRun) error {
	stats, err := json.Marshal(run.Stats)
	if err != nil {
		return fmt.Errorf("encoding run stats: %w", err)
	}
	err = p.Pool.QueryRow(ctx,
		`INSERT INTO sync_runs (id, triggered_by, status, stats)
		 VALUES ($1, $2, $3, $4)
		 RETURNING started_at`,
		run.ID, run.TriggeredBy, shared.RunStatusRunning, stats,
	).Scan(&run.StartedAt)
	if err != nil {
		return fmt.Errorf("starting sync run: %w", err)
	}
	run.Status = shared.RunStatusRunning
	return nil
}

// FinishSyncRun closes out a pipeline run with its final status and stats.
func (p *Postgres) FinishSyncRun(ctx context.Context, id, status string, stats shared.RunStats, runErr string) error {
	blob, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("encoding run stats: %w", err)
	}
	_, err = p.Pool.Exec(ctx,
		`UPDATE sync_runs
		 SET status = $2, stats = $3, error_message = $4, finished_at = NOW()
		 WHERE id = $1`,
		id, status, blob, runErr)
	if err != nil {
		return fmt.Errorf("finishing sync run: %w", err)
	}
	return nil
}

// HasRecentSuccessfulRun reports whether any run finished successfully with a
// start time at or after since. Scheduled runs use it as a hold-down so a
// manual sync suppresses the next cron tick.
func (p *Postgres) HasRecentSuccessfulRun(ctx context.Context, since time.Time) (bool, error) {
	var exists bool
	err := p.Pool.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM sync_runs
		   WHERE status = $1 AND started_at >= $2
		 )`,
		shared.RunStatusSuccess, since,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking recent runs: %w", err)
	}
	return exists, nil
}

// RecentRuns returns the latest pipeline runs, most recent first.
func (p *Postgres) RecentRuns(ctx context.Context, limit int) ([]*shared.SyncRun, error) {
	rows, err := p.Pool.Query(ctx,
		`SELECT id, triggered_by, status, stats, error_message, started_at, finished_at
		 FROM sync_runs
		 ORDER BY started_at DESC
		 LIMIT $1`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("querying recent runs: %w", err)
	}
	defer rows.Close()

	var result []*shared.SyncRun
	for rows.Next() {
		var (
			run  shared.SyncRun
			blob []byte
		)
		if err := rows.Scan(&run.ID, &run.TriggeredBy, &run.Status, &blob,
			&run.Error, &run.StartedAt, &run.FinishedAt); err != nil {
			return nil, fmt.Errorf("scanning sync run: %w", err)
		}
		if err := json.Unmarshal(blob, &run.Stats); err != nil {
			return nil, fmt.Errorf("decoding run stats: %w", err)
		}
		result = append(result, &run)
	}
	return result, rows.Err()
}

// Heart-rate series are stored as [epoch_millis, bpm] pairs, the shape the
// health platform reports them in.
func marshalSamples(samples []heartrate.Sample) ([]byte, error) {
	pairs := make([][2]int64, len(samples))
	for i, s := range samples {
		pairs[i] = [2]int64{s.Timestamp.UnixMilli(), int64(s.BPM)}
	}
	return json.Marshal(pairs)
}

func unmarshalSamples(blob []byte) ([]heartrate.Sample, error) {
	var pairs [][2]int64
	if err := json.Unmarshal(blob, &pairs); err != nil {
		return nil, err
	}
	samples := make([]heartrate.Sample, len(pairs))
	for i, p := range pairs {
		samples[i] = heartrate.Sample{
			Timestamp: time.UnixMilli(p[0]).UTC(),
			BPM:       int(p[1]),
		}
	}
	return samples, nil
}
