package shared

import (
	"context"
	"time"

	"github.com/liftsync/server/pkg/domain/heartrate"
)

// --- Persistence Interfaces ---

type Database interface {
	UpsertRawWorkout(ctx context.Context, w *RawWorkout) error
	ListRawWorkouts(ctx context.Context, since time.Time) ([]*RawWorkout, error)
	ListUnsyncedWorkouts(ctx context.Context, since time.Time) ([]*RawWorkout, error)

	UpsertDailyHealth(ctx context.Context, series *DailySeries) error
	GetDailyHealthRange(ctx context.Context, from, to time.Time) ([]heartrate.Sample, error)

	// Sync log (drives loop prevention and the historical HR fallback)
	LogActivitySync(ctx context.Context, rec *ActivitySync) error
	HasSynced(ctx context.Context, sourcePlatform, sourceID, destination string) (bool, error)
	RecentAverageHeartRates(ctx context.Context, limit int) ([]float64, error)
	RecentSyncs(ctx context.Context, limit int) ([]*ActivitySync, error)

	// Routing rules
	ListRules(ctx context.Context, sourcePlatform string, enabledOnly bool) ([]*SyncRule, error)

	// Run bookkeeping
	StartSyncRun(ctx context.Context, run *SyncRun) error
	FinishSyncRun(ctx context.Context, id, status string, stats RunStats, runErr string) error
	RecentRuns(ctx context.Context, limit int) ([]*SyncRun, error)
	HasRecentSuccessfulRun(ctx context.Context, since time.Time) (bool, error)

	Close()
}

// --- State Interfaces ---

// StateStore is the local manifest of generated FIT artifacts, used to skip
// regeneration when the source payload has not changed.
type StateStore interface {
	ShouldRebuild(ctx context.Context, sourceID, fingerprint string) (bool, error)
	MarkBuilt(ctx context.Context, rec *ArtifactRecord) error
	Close() error
}

// --- Storage Interfaces ---

type ArtifactStore interface {
	// Write persists data under name and returns the full path written.
	Write(ctx context.Context, name string, data []byte) (string, error)
	Read(ctx context.Context, name string) ([]byte, error)
}

// --- Destination Interfaces ---

type Uploader interface {
	Name() string
	// Upload pushes a FIT artifact and returns the destination's activity ID.
	Upload(ctx context.Context, fit []byte, meta UploadMeta) (string, error)
}

// --- Notification Interfaces ---

type Notifier interface {
	Send(ctx context.Context, text string) error
}
