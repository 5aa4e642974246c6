package router

import (
	"context"
	"errors"
	"testing"

	shared "github.com/liftsync/server/pkg"
	"github.com/liftsync/server/pkg/testing/mocks"
)

func testRules() []*shared.SyncRule {
	return []*shared.SyncRule{
		{ID: 1, SourcePlatform: shared.PlatformHevy, ActivityType: shared.ActivityStrength, Destination: shared.PlatformStrava, Priority: 10, Enabled: true},
		{ID: 2, SourcePlatform: shared.PlatformHevy, ActivityType: shared.RuleWildcard, Destination: shared.PlatformStrava, Priority: 20, Enabled: true},
		{ID: 3, SourcePlatform: shared.PlatformGarmin, ActivityType: shared.RuleWildcard, Destination: shared.PlatformStrava, Priority: 10, Enabled: true},
	}
}

func TestMatchRules(t *testing.T) {
	tests := []struct {
		name           string
		sourcePlatform string
		activityType   string
		wantIDs        []int64
	}{
		{
			name:           "exact activity type matches specific and wildcard rules",
			sourcePlatform: shared.PlatformHevy,
			activityType:   shared.ActivityStrength,
			wantIDs:        []int64{1, 2},
		},
		{
			name:           "unknown activity type matches only the wildcard",
			sourcePlatform: shared.PlatformHevy,
			activityType:   "cardio",
			wantIDs:        []int64{2},
		},
		{
			name:           "source platform is matched exactly",
			sourcePlatform: shared.PlatformGarmin,
			activityType:   shared.ActivityStrength,
			wantIDs:        []int64{3},
		},
		{
			name:           "no rules for unknown source",
			sourcePlatform: shared.PlatformStrava,
			activityType:   shared.ActivityStrength,
			wantIDs:        nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched := MatchRules(testRules(), tt.sourcePlatform, tt.activityType)
			if len(matched) != len(tt.wantIDs) {
				t.Fatalf("MatchRules() returned %d rules, want %d", len(matched), len(tt.wantIDs))
			}
			for i, rule := range matched {
				if rule.ID != tt.wantIDs[i] {
					t.Errorf("MatchRules()[%d].ID = %d, want %d", i, rule.ID, tt.wantIDs[i])
				}
			}
		})
	}
}

func TestDestinationsDedupesByPriority(t *testing.T) {
	matches := Destinations(testRules(), shared.PlatformHevy, shared.ActivityStrength)
	if len(matches) != 1 {
		t.Fatalf("Destinations() returned %d matches, want 1", len(matches))
	}
	if matches[0].Destination != shared.PlatformStrava {
		t.Errorf("Destination = %q, want %q", matches[0].Destination, shared.PlatformStrava)
	}
	if matches[0].RuleID != 1 {
		t.Errorf("RuleID = %d, want 1 (highest priority rule)", matches[0].RuleID)
	}
}

func TestDestinationsKeepsDistinctPlatforms(t *testing.T) {
	rules := []*shared.SyncRule{
		{ID: 1, SourcePlatform: shared.PlatformHevy, ActivityType: shared.RuleWildcard, Destination: shared.PlatformStrava, Priority: 10, Enabled: true},
		{ID: 2, SourcePlatform: shared.PlatformHevy, ActivityType: shared.RuleWildcard, Destination: shared.PlatformGarmin, Priority: 20, Enabled: true},
	}
	matches := Destinations(rules, shared.PlatformHevy, shared.ActivityStrength)
	if len(matches) != 2 {
		t.Fatalf("Destinations() returned %d matches, want 2", len(matches))
	}
	if matches[0].Destination != shared.PlatformStrava || matches[1].Destination != shared.PlatformGarmin {
		t.Errorf("Destinations() = %v, want strava then garmin", matches)
	}
}

func TestShouldSync(t *testing.T) {
	tests := []struct {
		name           string
		sourcePlatform string
		destination    string
		alreadySynced  bool
		want           bool
	}{
		{
			name:           "new pair syncs",
			sourcePlatform: shared.PlatformHevy,
			destination:    shared.PlatformStrava,
			alreadySynced:  false,
			want:           true,
		},
		{
			name:           "destination equal to source is refused",
			sourcePlatform: shared.PlatformHevy,
			destination:    shared.PlatformHevy,
			alreadySynced:  false,
			want:           false,
		},
		{
			name:           "already synced pair is refused",
			sourcePlatform: shared.PlatformHevy,
			destination:    shared.PlatformStrava,
			alreadySynced:  true,
			want:           false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := &mocks.MockDatabase{
				HasSyncedFunc: func(ctx context.Context, sourcePlatform, sourceID, destination string) (bool, error) {
					return tt.alreadySynced, nil
				},
			}
			got, err := ShouldSync(context.Background(), db, tt.sourcePlatform, "w1", tt.destination)
			if err != nil {
				t.Fatalf("ShouldSync() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ShouldSync(%s -> %s) = %v, want %v", tt.sourcePlatform, tt.destination, got, tt.want)
			}
		})
	}
}

func TestShouldSyncWrapsLogError(t *testing.T) {
	dbErr := errors.New("connection reset")
	db := &mocks.MockDatabase{
		HasSyncedFunc: func(ctx context.Context, sourcePlatform, sourceID, destination string) (bool, error) {
			return false, dbErr
		},
	}
	_, err := ShouldSync(context.Background(), db, shared.PlatformHevy, "w1", shared.PlatformStrava)
	if err == nil {
		t.Fatal("ShouldSync() error = nil, want wrapped database error")
	}
	if !errors.Is(err, dbErr) {
		t.Errorf("ShouldSync() error = %v, want it to wrap %v", err, dbErr)
	}
}

func TestShouldSyncSkipsLogForSelfSync(t *testing.T) {
	db := &mocks.MockDatabase{
		HasSyncedFunc: func(ctx context.Context, sourcePlatform, sourceID, destination string) (bool, error) {
			t.Fatal("HasSynced should not be consulted for a self-sync")
			return false, nil
		},
	}
	got, err := ShouldSync(context.Background(), db, shared.PlatformStrava, "w1", shared.PlatformStrava)
	if err != nil {
		t.Fatalf("ShouldSync() error = %v", err)
	}
	if got {
		t.Error("ShouldSync(strava -> strava) = true, want false")
	}
}
