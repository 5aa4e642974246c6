package fit_parser

import (
	"testing"
	"time"

	"github.com/muktihari/fit/profile/typedef"

	"github.com/liftsync/server/pkg/domain/file_generators"
	"github.com/liftsync/server/pkg/domain/workout"
)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func buildTestFile(t *testing.T, hrSamples []int) []byte {
	t.Helper()

	start := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	w := &workout.Workout{
		SourceID:  "w-parse-1",
		Title:     "Round Trip",
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

	data, _, err := file_generators.BuildFitFile(w, hrSamples, file_generators.DefaultOptions())
	if err != nil {
		t.Fatalf("BuildFitFile failed: %v", err)
	}
	return data
}

func TestParseFitFileRoundTrip(t *testing.T) {
	hrSamples := []int{110, 115, 120, 125, 130}
	summary, err := ParseFitFile(buildTestFile(t, hrSamples))
	if err != nil {
		t.Fatalf("ParseFitFile failed: %v", err)
	}

	if summary.Manufacturer != typedef.ManufacturerDevelopment {
		t.Errorf("Manufacturer = %v, want development", summary.Manufacturer)
	}
	if summary.Product != 1 || summary.SerialNumber != 12345 {
		t.Errorf("Product/SerialNumber = %d/%d, want 1/12345", summary.Product, summary.SerialNumber)
	}
	if summary.Sport != typedef.SportTraining || summary.SubSport != typedef.SubSportStrengthTraining {
		t.Errorf("sport = %v/%v, want training/strength_training", summary.Sport, summary.SubSport)
	}

	wantStart := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	if !summary.TimeCreated.Equal(wantStart) {
		t.Errorf("TimeCreated = %v, want %v", summary.TimeCreated, wantStart)
	}
	if !summary.StartTime.Equal(wantStart) {
		t.Errorf("StartTime = %v, want %v", summary.StartTime, wantStart)
	}

	if len(summary.HeartRates) != 5 {
		t.Fatalf("heart rates = %d, want 5", len(summary.HeartRates))
	}
	for i, want := range hrSamples {
		if summary.HeartRates[i] != want {
			t.Errorf("heart rate %d = %d, want %d", i, summary.HeartRates[i], want)
		}
	}

	if summary.Laps != 1 || summary.Sessions != 1 {
		t.Errorf("laps/sessions = %d/%d, want 1/1", summary.Laps, summary.Sessions)
	}
	if summary.DurationSeconds != 3600 {
		t.Errorf("DurationSeconds = %v, want 3600", summary.DurationSeconds)
	}
	if summary.Calories != 586 {
		t.Errorf("Calories = %d, want 586", summary.Calories)
	}
	if summary.AvgHeartRate != 120 || summary.MaxHeartRate != 130 {
		t.Errorf("avg/max HR = %d/%d, want 120/130", summary.AvgHeartRate, summary.MaxHeartRate)
	}
	if summary.ActivityType != typedef.ActivityManual {
		t.Errorf("ActivityType = %v, want manual", summary.ActivityType)
	}
	if summary.NumSessions != 1 {
		t.Errorf("NumSessions = %d, want 1", summary.NumSessions)
	}
}

func TestParseFitFileTitles(t *testing.T) {
	summary, err := ParseFitFile(buildTestFile(t, nil))
	if err != nil {
		t.Fatalf("ParseFitFile failed: %v", err)
	}

	if len(summary.Titles) != 2 {
		t.Fatalf("titles = %d, want 2", len(summary.Titles))
	}

	bench := summary.Titles[0]
	if bench.MessageIndex != 0 || bench.Category != 0 || bench.Subcategory != 1 {
		t.Errorf("bench title = %+v, want index 0 category 0/1", bench)
	}
	if bench.Name != "Bench Press (Barbell)" {
		t.Errorf("bench name = %q", bench.Name)
	}

	squat := summary.Titles[1]
	if squat.MessageIndex != 1 || squat.Category != 28 || squat.Subcategory != 6 {
		t.Errorf("squat title = %+v, want index 1 category 28/6", squat)
	}
}

func TestParseFitFileSets(t *testing.T) {
	summary, err := ParseFitFile(buildTestFile(t, nil))
	if err != nil {
		t.Fatalf("ParseFitFile failed: %v", err)
	}

	if len(summary.ActiveSets) != 3 {
		t.Fatalf("active sets = %d, want 3", len(summary.ActiveSets))
	}
	if len(summary.RestSets) != 2 {
		t.Fatalf("rest sets = %d, want 2", len(summary.RestSets))
	}

	// The warmup doubles to 50s against the hour-long session and keeps
	// its logged reps and weight.
	first := summary.ActiveSets[0]
	if first.DurationSeconds != 50 {
		t.Errorf("first set duration = %v, want 50", first.DurationSeconds)
	}
	if first.Repetitions != 10 {
		t.Errorf("first set reps = %d, want 10", first.Repetitions)
	}
	if first.WeightKg != 40 {
		t.Errorf("first set weight = %v, want 40", first.WeightKg)
	}
	if first.Category != 0 || first.Subcategory != 1 {
		t.Errorf("first set category = %d/%d, want 0/1", first.Category, first.Subcategory)
	}

	// One message index sequence over active and rest sets.
	gotIndexes := []uint16{
		summary.ActiveSets[0].MessageIndex,
		summary.RestSets[0].MessageIndex,
		summary.ActiveSets[1].MessageIndex,
		summary.RestSets[1].MessageIndex,
		summary.ActiveSets[2].MessageIndex,
	}
	for i, idx := range gotIndexes {
		if int(idx) != i {
			t.Fatalf("message indexes = %v, want 0..4", gotIndexes)
		}
	}

	// Rest sets reference their exercise but carry no reps or weight.
	for _, rest := range summary.RestSets {
		if rest.Repetitions != 0 || rest.WeightKg != 0 {
			t.Errorf("rest set carries reps/weight: %+v", rest)
		}
	}
	if summary.ActiveSets[2].ExerciseIndex != 1 {
		t.Errorf("last active set exercise index = %d, want 1", summary.ActiveSets[2].ExerciseIndex)
	}
}

func TestParseFitFileTimers(t *testing.T) {
	summary, err := ParseFitFile(buildTestFile(t, nil))
	if err != nil {
		t.Fatalf("ParseFitFile failed: %v", err)
	}

	if len(summary.Timers) != 2 {
		t.Fatalf("timer events = %d, want 2", len(summary.Timers))
	}
	if summary.Timers[0].EventType != typedef.EventTypeStart {
		t.Errorf("first timer = %v, want start", summary.Timers[0].EventType)
	}
	if summary.Timers[1].EventType != typedef.EventTypeStopAll {
		t.Errorf("second timer = %v, want stop_all", summary.Timers[1].EventType)
	}

	start := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	if !summary.Timers[0].Timestamp.Equal(start) {
		t.Errorf("timer start = %v, want %v", summary.Timers[0].Timestamp, start)
	}
	if !summary.Timers[1].Timestamp.Equal(start.Add(time.Hour)) {
		t.Errorf("timer stop = %v, want %v", summary.Timers[1].Timestamp, start.Add(time.Hour))
	}
}

func TestParseFitFileUnknownExercise(t *testing.T) {
	start := time.Date(2026, 3, 2, 18, 0, 0, 0, time.UTC)
	w := &workout.Workout{
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Exercises: []workout.Exercise{
			{Name: "Mystery Movement", Sets: []workout.Set{{Kind: workout.SetKindNormal}}},
		},
	}
	data, _, err := file_generators.BuildFitFile(w, nil, file_generators.DefaultOptions())
	if err != nil {
		t.Fatalf("BuildFitFile failed: %v", err)
	}

	summary, err := ParseFitFile(data)
	if err != nil {
		t.Fatalf("ParseFitFile failed: %v", err)
	}
	if len(summary.Titles) != 1 {
		t.Fatalf("titles = %d, want 1", len(summary.Titles))
	}
	title := summary.Titles[0]
	if title.Category != 65534 || title.Subcategory != 0 {
		t.Errorf("unknown category = %d/%d, want 65534/0", title.Category, title.Subcategory)
	}
	if title.Name != "Mystery Movement" {
		t.Errorf("unknown name = %q, want input echoed", title.Name)
	}
}

func TestParseFitFileRejectsBadInput(t *testing.T) {
	if _, err := ParseFitFile(nil); err == nil {
		t.Error("empty data: expected error")
	}
	if _, err := ParseFitFile([]byte("this is not a fit file")); err == nil {
		t.Error("garbage data: expected error")
	}
}
