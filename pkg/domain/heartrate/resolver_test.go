package heartrate

import (
	"testing"
	"time"
)

func TestResolveMeasuredAboveThreshold(t *testing.T) {
	measured := []int{110, 115, 120, 125, 130}
	res := Resolve(measured, []float64{150}, DefaultConfig())

	if res.Source != SourceDaily {
		t.Fatalf("source = %q, want daily", res.Source)
	}
	if len(res.Samples) != 5 {
		t.Fatalf("samples = %d, want 5 (measured passed through)", len(res.Samples))
	}
	for i, s := range res.Samples {
		if s != measured[i] {
			t.Errorf("sample %d = %d, want %d", i, s, measured[i])
		}
	}
}

func TestResolveThresholdBoundary(t *testing.T) {
	// Mean exactly at the threshold counts as exercise data.
	res := Resolve([]int{65, 65, 65}, nil, DefaultConfig())
	if res.Source != SourceDaily {
		t.Errorf("mean == threshold: source = %q, want daily", res.Source)
	}

	// A mean just below it falls through.
	res = Resolve([]int{64, 65, 65}, nil, DefaultConfig())
	if res.Source != SourceStatic {
		t.Errorf("mean < threshold: source = %q, want static", res.Source)
	}
}

func TestResolveHistoricalAverage(t *testing.T) {
	res := Resolve(nil, []float64{150, 140, 130}, DefaultConfig())

	if res.Source != "avg_3" {
		t.Fatalf("source = %q, want avg_3", res.Source)
	}
	if len(res.Samples) != 30 {
		t.Fatalf("samples = %d, want 30", len(res.Samples))
	}
	for i, s := range res.Samples {
		if s != 140 {
			t.Fatalf("sample %d = %d, want 140", i, s)
		}
	}
}

func TestResolveHistoryWindowCap(t *testing.T) {
	history := make([]float64, 25)
	for i := range history {
		history[i] = 120
	}
	res := Resolve(nil, history, DefaultConfig())
	if res.Source != "avg_10" {
		t.Errorf("source = %q, want avg_10 (window capped)", res.Source)
	}
}

func TestResolveStaticFallback(t *testing.T) {
	res := Resolve(nil, nil, DefaultConfig())

	if res.Source != SourceStatic {
		t.Fatalf("source = %q, want static", res.Source)
	}
	if len(res.Samples) != 30 {
		t.Fatalf("samples = %d, want 30", len(res.Samples))
	}
	for _, s := range res.Samples {
		if s != 90 {
			t.Fatalf("sample = %d, want 90", s)
		}
	}
}

func TestResolveLowMeasuredFallsThroughToHistory(t *testing.T) {
	// Resting-range data inside the window must not win over history.
	res := Resolve([]int{48, 52, 50}, []float64{144}, DefaultConfig())
	if res.Source != "avg_1" {
		t.Errorf("source = %q, want avg_1", res.Source)
	}
	if len(res.Samples) != 30 || res.Samples[0] != 144 {
		t.Errorf("samples = %v", res.Samples)
	}
}

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v", got)
	}
	if got := Mean([]int{110, 115, 120, 125, 130}); got != 120 {
		t.Errorf("Mean = %v, want 120", got)
	}
}

func TestWindowSamples(t *testing.T) {
	start := time.Date(2026, 3, 2, 18, 30, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)

	// One reading before the window, three inside it (both ends are
	// inclusive), one after.
	series := []Sample{
		{Timestamp: start.Add(-time.Minute), BPM: 62},
		{Timestamp: start, BPM: 98},
		{Timestamp: start.Add(10 * time.Minute), BPM: 131},
		{Timestamp: end, BPM: 117},
		{Timestamp: end.Add(time.Second), BPM: 84},
	}

	got := WindowSamples(series, start, end)
	want := []int{98, 131, 117}
	if len(got) != len(want) {
		t.Fatalf("WindowSamples = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, got[i], want[i])
		}
	}
}

func TestWindowSamplesEmptySeries(t *testing.T) {
	now := time.Now()
	if got := WindowSamples(nil, now, now.Add(time.Hour)); len(got) != 0 {
		t.Errorf("expected no samples, got %v", got)
	}
}
