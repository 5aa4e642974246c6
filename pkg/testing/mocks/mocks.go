// Package mocks provides hand-rolled fakes for the shared interfaces.
// Every method delegates to an optional func field and falls back to a
// benign default, so tests only wire what they assert on.
package mocks

import (
	"context"
	"time"

	shared "github.com/liftsync/server/pkg"
	"github.com/liftsync/server/pkg/domain/heartrate"
)

// --- Mock Database ---

type MockDatabase struct {
	UpsertRawWorkoutFunc        func(ctx context.Context, w *shared.RawWorkout) error
	ListRawWorkoutsFunc         func(ctx context.Context, since time.Time) ([]*shared.RawWorkout, error)
	ListUnsyncedWorkoutsFunc    func(ctx context.Context, since time.Time) ([]*shared.RawWorkout, error)
	UpsertDailyHealthFunc       func(ctx context.Context, series *shared.DailySeries) error
	GetDailyHealthRangeFunc     func(ctx context.Context, from, to time.Time) ([]heartrate.Sample, error)
	LogActivitySyncFunc         func(ctx context.Context, rec *shared.ActivitySync) error
	HasSyncedFunc               func(ctx context.Context, sourcePlatform, sourceID, destination string) (bool, error)
	RecentAverageHeartRatesFunc func(ctx context.Context, limit int) ([]float64, error)
	RecentSyncsFunc             func(ctx context.Context, limit int) ([]*shared.ActivitySync, error)
	ListRulesFunc               func(ctx context.Context, sourcePlatform string, enabledOnly bool) ([]*shared.SyncRule, error)
	StartSyncRunFunc            func(ctx context.Context, run *shared.SyncRun) error
	FinishSyncRunFunc           func(ctx context.Context, id, status string, stats shared.RunStats, runErr string) error
	RecentRunsFunc              func(ctx context.Context, limit int) ([]*shared.SyncRun, error)
	HasRecentSuccessfulRunFunc  func(ctx context.Context, since time.Time) (bool, error)
	CloseFunc                   func()
}

func (m *MockDatabase) UpsertRawWorkout(ctx context.Context, w *shared.RawWorkout) error {
	if m.UpsertRawWorkoutFunc != nil {
		return m.UpsertRawWorkoutFunc(ctx, w)
	}
	return nil
}

func (m *MockDatabase) ListRawWorkouts(ctx context.Context, since time.Time) ([]*shared.RawWorkout, error) {
	if m.ListRawWorkoutsFunc != nil {
		return m.ListRawWorkoutsFunc(ctx, since)
	}
	return nil, nil
}

func (m *MockDatabase) ListUnsyncedWorkouts(ctx context.Context, since time.Time) ([]*shared.RawWorkout, error) {
	if m.ListUnsyncedWorkoutsFunc != nil {
		return m.ListUnsyncedWorkoutsFunc(ctx, since)
	}
	return nil, nil
}

func (m *MockDatabase) UpsertDailyHealth(ctx context.Context, series *shared.DailySeries) error {
	if m.UpsertDailyHealthFunc != nil {
		return m.UpsertDailyHealthFunc(ctx, series)
	}
	return nil
}

func (m *MockDatabase) GetDailyHealthRange(ctx context.Context, from, to time.Time) ([]heartrate.Sample, error) {
	if m.GetDailyHealthRangeFunc != nil {
		return m.GetDailyHealthRangeFunc(ctx, from, to)
	}
	return nil, nil
}

func (m *MockDatabase) LogActivitySync(ctx context.Context, rec *shared.ActivitySync) error {
	if m.LogActivitySyncFunc != nil {
		return m.LogActivitySyncFunc(ctx, rec)
	}
	return nil
}

func (m *MockDatabase) HasSynced(ctx context.Context, sourcePlatform, sourceID, destination string) (bool, error) {
	if m.HasSyncedFunc != nil {
		return m.HasSyncedFunc(ctx, sourcePlatform, sourceID, destination)
	}
	return false, nil
}

func (m *MockDatabase) RecentAverageHeartRates(ctx context.Context, limit int) ([]float64, error) {
	if m.RecentAverageHeartRatesFunc != nil {
		return m.RecentAverageHeartRatesFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockDatabase) RecentSyncs(ctx context.Context, limit int) ([]*shared.ActivitySync, error) {
	if m.RecentSyncsFunc != nil {
		return m.RecentSyncsFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockDatabase) ListRules(ctx context.Context, sourcePlatform string, enabledOnly bool) ([]*shared.SyncRule, error) {
	if m.ListRulesFunc != nil {
		return m.ListRulesFunc(ctx, sourcePlatform, enabledOnly)
	}
	return nil, nil
}

func (m *MockDatabase) StartSyncRun(ctx context.Context, run *shared.SyncRun) error {
	if m.StartSyncRunFunc != nil {
		return m.StartSyncRunFunc(ctx, run)
	}
	run.Status = shared.RunStatusRunning
	run.StartedAt = time.Now().UTC()
	return nil
}

func (m *MockDatabase) FinishSyncRun(ctx context.Context, id, status string, stats shared.RunStats, runErr string) error {
	if m.FinishSyncRunFunc != nil {
		return m.FinishSyncRunFunc(ctx, id, status, stats, runErr)
	}
	return nil
}

func (m *MockDatabase) RecentRuns(ctx context.Context, limit int) ([]*shared.SyncRun, error) {
	if m.RecentRunsFunc != nil {
		return m.RecentRunsFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockDatabase) HasRecentSuccessfulRun(ctx context.Context, since time.Time) (bool, error) {
	if m.HasRecentSuccessfulRunFunc != nil {
		return m.HasRecentSuccessfulRunFunc(ctx, since)
	}
	return false, nil
}

func (m *MockDatabase) Close() {
	if m.CloseFunc != nil {
		m.CloseFunc()
	}
}

// --- Mock State Store ---

type MockStateStore struct {
	ShouldRebuildFunc func(ctx context.Context, sourceID, fingerprint string) (bool, error)
	MarkBuiltFunc     func(ctx context.Context, rec *shared.ArtifactRecord) error
	CloseFunc         func() error
}

func (m *MockStateStore) ShouldRebuild(ctx context.Context, sourceID, fingerprint string) (bool, error) {
	if m.ShouldRebuildFunc != nil {
		return m.ShouldRebuildFunc(ctx, sourceID, fingerprint)
	}
	return true, nil
}

func (m *MockStateStore) MarkBuilt(ctx context.Context, rec *shared.ArtifactRecord) error {
	if m.MarkBuiltFunc != nil {
		return m.MarkBuiltFunc(ctx, rec)
	}
	return nil
}

func (m *MockStateStore) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// --- Mock Artifact Store ---

type MockArtifactStore struct {
	WriteFunc func(ctx context.Context, name string, data []byte) (string, error)
	ReadFunc  func(ctx context.Context, name string) ([]byte, error)
}

func (m *MockArtifactStore) Write(ctx context.Context, name string, data []byte) (string, error) {
	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, name, data)
	}
	return name, nil
}

func (m *MockArtifactStore) Read(ctx context.Context, name string) ([]byte, error) {
	if m.ReadFunc != nil {
		return m.ReadFunc(ctx, name)
	}
	return []byte("mock-data"), nil
}

// --- Mock Uploader ---

type MockUploader struct {
	NameValue  string
	UploadFunc func(ctx context.Context, fit []byte, meta shared.UploadMeta) (string, error)
}

func (m *MockUploader) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "mock"
}

func (m *MockUploader) Upload(ctx context.Context, fit []byte, meta shared.UploadMeta) (string, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, fit, meta)
	}
	return "mock-id", nil
}

// --- Mock Notifier ---

type MockNotifier struct {
	SendFunc func(ctx context.Context, text string) error
	Sent     []string
}

func (m *MockNotifier) Send(ctx context.Context, text string) error {
	m.Sent = append(m.Sent, text)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, text)
	}
	return nil
}
