// Package heartrate resolves which heart-rate samples to embed in a
// generated activity file. Ambient daily monitoring is preferred, but it is
// imprecise: a clock offset or a missed detection can leave the workout
// window holding resting-state data. The resolver degrades through
// historical-average and static fallbacks instead of failing.
package heartrate

import (
	"fmt"
	"math"
	"time"
)

// Source tags reported alongside resolved samples. The historical-average
// tier reports "avg_N" with N the number of prior workouts actually used.
const (
	SourceDaily  = "daily"
	SourceStatic = "static"
)

// Config carries the resolver tunables. The defaults mirror long-observed
// behavior; they are configuration, not physiology.
type Config struct {
	// MinExerciseBPM is the minimum mean heart rate for measured samples to
	// count as exercise data. A window mean below this is treated as resting
	// data that leaked into the window, not as a valid low-intensity workout.
	MinExerciseBPM float64

	// DefaultBPM is the ultimate-fallback heart rate.
	DefaultBPM int

	// SyntheticSamples is how many flat samples the fallback tiers emit.
	SyntheticSamples int

	// HistoryWindow caps how many recent per-workout averages feed the
	// historical-average tier.
	HistoryWindow int
}

// DefaultConfig returns the standard resolver tuning.
func DefaultConfig() Config {
	return Config{
		MinExerciseBPM:   65,
		DefaultBPM:       90,
		SyntheticSamples: 30,
		HistoryWindow:    10,
	}
}

// Resolution is the resolver outcome: the samples to embed and a tag naming
// the tier that produced them.
type Resolution struct {
	Samples []int
	Source  string
}

// Resolve picks heart-rate samples for one workout.
//
// Tiers, in order:
//  1. measured samples whose mean clears MinExerciseBPM, tagged "daily";
//  2. a flat sequence at the rounded mean of up to HistoryWindow recent
//     per-workout averages (most recent first), tagged "avg_N";
//  3. a flat sequence at DefaultBPM, tagged "static".
//
// Resolve never fails; missing data selects a coarser tier.
func Resolve(measured []int, history []float64, cfg Config) Resolution {
	if len(measured) > 0 && Mean(measured) >= cfg.MinExerciseBPM {
		return Resolution{Samples: measured, Source: SourceDaily}
	}

	if len(history) > 0 {
		window := history
		if len(window) > cfg.HistoryWindow {
			window = window[:cfg.HistoryWindow]
		}
		sum := 0.0
		for _, avg := range window {
			sum += avg
		}
		bpm := int(math.Round(sum / float64(len(window))))
		return Resolution{
			Samples: flat(bpm, cfg.SyntheticSamples),
			Source:  fmt.Sprintf("avg_%d", len(window)),
		}
	}

	return Resolution{
		Samples: flat(cfg.DefaultBPM, cfg.SyntheticSamples),
		Source:  SourceStatic,
	}
}

// Mean returns the arithmetic mean of samples. Zero for an empty slice.
func Mean(samples []int) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0
	for _, s := range samples {
		sum += s
	}
	return float64(sum) / float64(len(samples))
}

func flat(bpm, n int) []int {
	samples := make([]int, n)
	for i := range samples {
		samples[i] = bpm
	}
	return samples
}

// Sample is one timestamped reading from a daily-monitoring series.
type Sample struct {
	Timestamp time.Time
	BPM       int
}

// WindowSamples extracts the readings that fall inside [start, end], both
// ends inclusive. The series does not need to be sorted; output preserves
// series order, matching how daily-monitoring rows are stored.
func WindowSamples(series []Sample, start, end time.Time) []int {
	var out []int
	for _, s := range series {
		if s.Timestamp.Before(start) || s.Timestamp.After(end) {
			continue
		}
		out = append(out, s.BPM)
	}
	return out
}
