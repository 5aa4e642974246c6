package file_generators

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/liftsync/server/pkg/domain/workout"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// testWorkout is a one-hour session with two exercises: a warmup and a
// working set of bench, then one working set of squats.
func testWorkout() *workout.Workout {
	start := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	return &workout.Workout{
		SourceID:  "w-fit-1",
		Title:     "Evening Push",
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Exercises: []workout.Exercise{
			{
				Name: "Bench Press (Barbell)",
				Sets: []workout.Set{
					{Kind: workout.SetKindWarmup, WeightKg: floatPtr(40), Reps: intPtr(10)},
					{Kind: workout.SetKindNormal, WeightKg: floatPtr(80), Reps: intPtr(5)},
				},
			},
			{
				Name: "Squat (Barbell)",
				Sets: []workout.Set{
					{Kind: workout.SetKindNormal, WeightKg: floatPtr(100), Reps: intPtr(5)},
				},
			},
		},
	}
}

func assertFitHeader(t *testing.T, data []byte) {
	t.Helper()
	if len(data) < 14 {
		t.Fatalf("result too short to be a FIT file: %d bytes", len(data))
	}
	if got := string(data[8:12]); got != ".FIT" {
		t.Fatalf("expected .FIT file type in header, got %q", got)
	}
}

func TestBuildFitFile(t *testing.T) {
	hrSamples := []int{110, 115, 120, 125, 130}

	data, summary, err := BuildFitFile(testWorkout(), hrSamples, DefaultOptions())
	if err != nil {
		t.Fatalf("BuildFitFile failed: %v", err)
	}

	assertFitHeader(t, data)
	if len(data) <= 100 {
		t.Errorf("file suspiciously small: %d bytes", len(data))
	}

	if summary.Exercises != 2 {
		t.Errorf("Exercises = %d, want 2", summary.Exercises)
	}
	if summary.TotalSets != 3 {
		t.Errorf("TotalSets = %d, want 3", summary.TotalSets)
	}
	if summary.HRSamples != 5 {
		t.Errorf("HRSamples = %d, want 5", summary.HRSamples)
	}
	if summary.AvgHR == nil || *summary.AvgHR != 120 {
		t.Errorf("AvgHR = %v, want 120", summary.AvgHR)
	}
	if summary.Calories != 586 {
		t.Errorf("Calories = %d, want 586", summary.Calories)
	}
	if summary.DurationSeconds != 3600 {
		t.Errorf("DurationSeconds = %v, want 3600", summary.DurationSeconds)
	}
	if summary.OutputPath != "" {
		t.Errorf("OutputPath should be empty for in-memory build, got %q", summary.OutputPath)
	}
}

func TestBuildFitFileNoHeartRate(t *testing.T) {
	data, summary, err := BuildFitFile(testWorkout(), nil, DefaultOptions())
	if err != nil {
		t.Fatalf("BuildFitFile failed: %v", err)
	}

	assertFitHeader(t, data)
	if summary.HRSamples != 0 {
		t.Errorf("HRSamples = %d, want 0", summary.HRSamples)
	}
	if summary.AvgHR != nil {
		t.Errorf("AvgHR = %v, want nil", *summary.AvgHR)
	}
	// The default-rate fallback still yields a positive estimate.
	if summary.Calories <= 0 {
		t.Errorf("Calories = %d, want > 0", summary.Calories)
	}
}

func TestBuildFitFileDeterministic(t *testing.T) {
	hrSamples := []int{110, 115, 120, 125, 130}

	first, _, err := BuildFitFile(testWorkout(), hrSamples, DefaultOptions())
	if err != nil {
		t.Fatalf("first build failed: %v", err)
	}
	second, _, err := BuildFitFile(testWorkout(), hrSamples, DefaultOptions())
	if err != nil {
		t.Fatalf("second build failed: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Error("identical inputs produced different bytes")
	}
}

func TestBuildFitFileRejectsBadWorkouts(t *testing.T) {
	if _, _, err := BuildFitFile(nil, nil, DefaultOptions()); err == nil {
		t.Error("nil workout: expected error")
	}

	missing := &workout.Workout{}
	if _, _, err := BuildFitFile(missing, nil, DefaultOptions()); !errors.Is(err, workout.ErrMalformed) {
		t.Errorf("missing timestamps: want ErrMalformed, got %v", err)
	}

	reversed := testWorkout()
	reversed.StartTime, reversed.EndTime = reversed.EndTime, reversed.StartTime
	if _, _, err := BuildFitFile(reversed, nil, DefaultOptions()); !errors.Is(err, workout.ErrMalformed) {
		t.Errorf("reversed timestamps: want ErrMalformed, got %v", err)
	}
}

func TestGenerateFitFile(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "fit_output", "w-fit-1.fit")
	hrSamples := []int{110, 115, 120, 125, 130}

	summary, err := GenerateFitFile(testWorkout(), hrSamples, DefaultOptions(), outputPath)
	if err != nil {
		t.Fatalf("GenerateFitFile failed: %v", err)
	}
	if summary.OutputPath != outputPath {
		t.Errorf("OutputPath = %q, want %q", summary.OutputPath, outputPath)
	}

	info, err := os.Stat(outputPath)
	if err != nil {
		t.Fatalf("generated file missing: %v", err)
	}
	if info.Size() <= 100 {
		t.Errorf("file size = %d bytes, want > 100", info.Size())
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read generated file: %v", err)
	}
	assertFitHeader(t, data)
}

func TestGenerateFitFileOverwrites(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "w.fit")
	if err := os.WriteFile(outputPath, []byte("stale"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := GenerateFitFile(testWorkout(), nil, DefaultOptions(), outputPath); err != nil {
		t.Fatalf("GenerateFitFile failed: %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	assertFitHeader(t, data)
}
