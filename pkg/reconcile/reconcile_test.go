package reconcile

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shared "github.com/liftsync/server/pkg"
	"github.com/liftsync/server/pkg/integrations/strava"
	"github.com/liftsync/server/pkg/testing/mocks"
)

type fakeLister struct {
	activities []strava.Activity
	err        error
}

func (f *fakeLister) ListActivities(ctx context.Context, after time.Time, perPage int) ([]strava.Activity, error) {
	return f.activities, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func hevyWorkout(id, title string, start time.Time) *shared.RawWorkout {
	return &shared.RawWorkout{Source: shared.PlatformHevy, SourceID: id, Title: title, StartTime: start}
}

func TestRunMatchesByTimestamp(t *testing.T) {
	base := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	lister := &fakeLister{activities: []strava.Activity{
		{ID: 9001, Name: "Evening Workout", StartDate: base},
	}}

	var logged []*shared.ActivitySync
	db := &mocks.MockDatabase{
		ListRawWorkoutsFunc: func(ctx context.Context, since time.Time) ([]*shared.RawWorkout, error) {
			return []*shared.RawWorkout{
				hevyWorkout("w1", "Evening Workout", base.Add(time.Minute)),
				{Source: shared.PlatformGarmin, SourceID: "g1", StartTime: base.Add(10 * time.Minute)},
			}, nil
		},
		LogActivitySyncFunc: func(ctx context.Context, rec *shared.ActivitySync) error {
			logged = append(logged, rec)
			return nil
		},
	}

	r := New(db, lister, DefaultWindow, discardLogger())
	count, err := r.Run(context.Background(), base.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.Len(t, logged, 1)
	rec := logged[0]
	assert.Equal(t, shared.PlatformHevy, rec.SourcePlatform)
	assert.Equal(t, "w1", rec.SourceID)
	assert.Equal(t, shared.PlatformStrava, rec.Destination)
	assert.Equal(t, "9001", rec.DestinationID)
	assert.Equal(t, shared.SyncStatusExternal, rec.Status)
	assert.Nil(t, rec.RuleID)
}

func TestRunPrefersClosestWorkout(t *testing.T) {
	base := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	lister := &fakeLister{activities: []strava.Activity{{ID: 1, StartDate: base}}}

	var logged []*shared.ActivitySync
	db := &mocks.MockDatabase{
		ListRawWorkoutsFunc: func(ctx context.Context, since time.Time) ([]*shared.RawWorkout, error) {
			return []*shared.RawWorkout{
				hevyWorkout("near", "A", base.Add(30*time.Second)),
				hevyWorkout("far", "B", base.Add(-90*time.Second)),
			}, nil
		},
		LogActivitySyncFunc: func(ctx context.Context, rec *shared.ActivitySync) error {
			logged = append(logged, rec)
			return nil
		},
	}

	r := New(db, lister, DefaultWindow, discardLogger())
	count, err := r.Run(context.Background(), base.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, logged, 1)
	assert.Equal(t, "near", logged[0].SourceID)
}

func TestRunSkipsAlreadySynced(t *testing.T) {
	base := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	lister := &fakeLister{activities: []strava.Activity{{ID: 1, StartDate: base}}}

	db := &mocks.MockDatabase{
		ListRawWorkoutsFunc: func(ctx context.Context, since time.Time) ([]*shared.RawWorkout, error) {
			return []*shared.RawWorkout{hevyWorkout("w1", "A", base)}, nil
		},
		HasSyncedFunc: func(ctx context.Context, sourcePlatform, sourceID, destination string) (bool, error) {
			return true, nil
		},
		LogActivitySyncFunc: func(ctx context.Context, rec *shared.ActivitySync) error {
			t.Fatal("no sync row should be written for an already-synced workout")
			return nil
		},
	}

	r := New(db, lister, DefaultWindow, discardLogger())
	count, err := r.Run(context.Background(), base.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRunTitleFallback(t *testing.T) {
	base := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	lister := &fakeLister{activities: []strava.Activity{
		{ID: 9002, Name: "Push Day", StartDate: base},
	}}

	var logged []*shared.ActivitySync
	db := &mocks.MockDatabase{
		ListRawWorkoutsFunc: func(ctx context.Context, since time.Time) ([]*shared.RawWorkout, error) {
			// Seven hours off, the shape of a local-time-as-UTC upload.
			return []*shared.RawWorkout{hevyWorkout("w2", "Push Day", base.Add(7 * time.Hour))}, nil
		},
		LogActivitySyncFunc: func(ctx context.Context, rec *shared.ActivitySync) error {
			logged = append(logged, rec)
			return nil
		},
	}

	r := New(db, lister, DefaultWindow, discardLogger())
	count, err := r.Run(context.Background(), base.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, logged, 1)
	assert.Equal(t, "w2", logged[0].SourceID)
	assert.Equal(t, "9002", logged[0].DestinationID)
}

func TestRunTitleFallbackIgnoresUnnamedActivities(t *testing.T) {
	base := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	lister := &fakeLister{activities: []strava.Activity{{ID: 1, Name: "", StartDate: base}}}

	db := &mocks.MockDatabase{
		ListRawWorkoutsFunc: func(ctx context.Context, since time.Time) ([]*shared.RawWorkout, error) {
			return []*shared.RawWorkout{hevyWorkout("w1", "", base.Add(7 * time.Hour))}, nil
		},
	}

	r := New(db, lister, DefaultWindow, discardLogger())
	count, err := r.Run(context.Background(), base.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRunClaimsWorkoutOnce(t *testing.T) {
	base := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	lister := &fakeLister{activities: []strava.Activity{
		{ID: 1, StartDate: base},
		{ID: 2, StartDate: base.Add(time.Minute)},
	}}

	var logged []*shared.ActivitySync
	db := &mocks.MockDatabase{
		ListRawWorkoutsFunc: func(ctx context.Context, since time.Time) ([]*shared.RawWorkout, error) {
			return []*shared.RawWorkout{hevyWorkout("w1", "A", base.Add(30 * time.Second))}, nil
		},
		LogActivitySyncFunc: func(ctx context.Context, rec *shared.ActivitySync) error {
			logged = append(logged, rec)
			return nil
		},
	}

	r := New(db, lister, DefaultWindow, discardLogger())
	count, err := r.Run(context.Background(), base.Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Len(t, logged, 1)
}

func TestRunNoActivities(t *testing.T) {
	db := &mocks.MockDatabase{
		ListRawWorkoutsFunc: func(ctx context.Context, since time.Time) ([]*shared.RawWorkout, error) {
			t.Fatal("raw workouts should not be loaded when Strava has nothing to match")
			return nil, nil
		},
	}

	r := New(db, &fakeLister{}, DefaultWindow, discardLogger())
	count, err := r.Run(context.Background(), time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestRunListErrorIsWrapped(t *testing.T) {
	listErr := errors.New("strava down")
	r := New(&mocks.MockDatabase{}, &fakeLister{err: listErr}, DefaultWindow, discardLogger())

	_, err := r.Run(context.Background(), time.Now().Add(-time.Hour))
	require.Error(t, err)
	assert.ErrorIs(t, err, listErr)
}
