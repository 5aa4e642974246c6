package shared

import (
	"time"

	"github.com/liftsync/server/pkg/domain/heartrate"
)

// RawWorkout is a workout payload exactly as fetched from a source platform.
// Payload keeps the original JSON so parsing changes never require a refetch.
type RawWorkout struct {
	Source    string
	SourceID  string
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Payload   []byte
	FetchedAt time.Time
}

// DailySeries is one day of heart-rate samples from the health platform.
type DailySeries struct {
	Date    time.Time
	Source  string
	Samples []heartrate.Sample
}

// ActivitySync is one row of the source-to-destination sync log. Rows with
// status "external" are written by the reconciler for activities that reached
// the destination through native sync rather than through us.
type ActivitySync struct {
	ID             int64     `json:"id"`
	SourcePlatform string    `json:"source_platform"`
	SourceID       string    `json:"source_id"`
	Destination    string    `json:"destination"`
	DestinationID  string    `json:"destination_id,omitempty"`
	RuleID         *int64    `json:"rule_id,omitempty"`
	Status         string    `json:"status"`
	Error          string    `json:"error,omitempty"`
	AvgHeartRate   int       `json:"avg_heart_rate,omitempty"`
	HRSource       string    `json:"hr_source,omitempty"`
	Calories       int       `json:"calories,omitempty"`
	SyncedAt       time.Time `json:"synced_at"`
}

// SyncRule routes workouts from a source platform to a destination. The
// activity type matches exactly or via RuleWildcard.
type SyncRule struct {
	ID             int64
	SourcePlatform string
	ActivityType   string
	Destination    string
	Priority       int
	Enabled        bool
}

// RunStats summarizes one pipeline run. Persisted as JSON on the run row.
type RunStats struct {
	DaysFetched     int            `json:"days_fetched"`
	WorkoutsFetched int            `json:"workouts_fetched"`
	WorkoutsSynced  int            `json:"workouts_synced"`
	WorkoutsSkipped int            `json:"workouts_skipped"`
	WorkoutsFailed  int            `json:"workouts_failed"`
	Reconciled      int            `json:"reconciled"`
	Calories        int            `json:"calories"`
	HRSources       map[string]int `json:"hr_sources,omitempty"`
}

// SyncRun is the bookkeeping record for one pipeline run.
type SyncRun struct {
	ID          string     `json:"id"`
	TriggeredBy string     `json:"triggered_by"`
	Status      string     `json:"status"`
	Stats       RunStats   `json:"stats"`
	Error       string     `json:"error,omitempty"`
	StartedAt   time.Time  `json:"started_at"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
}

// UploadMeta carries destination-facing metadata alongside a FIT artifact.
type UploadMeta struct {
	Title     string
	SportType string
	Source    string
	SourceID  string
	StartTime time.Time
}

// ArtifactRecord is a manifest entry for a generated FIT file. Fingerprint
// hashes the inputs that shaped the artifact (source payload plus resolved
// heart-rate samples); SHA256 hashes the artifact itself.
type ArtifactRecord struct {
	SourceID    string
	Fingerprint string
	Path        string
	Size        int64
	SHA256      string
	HRSource    string
}
