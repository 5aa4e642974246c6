// Package timeline reconstructs a chronological sequence of set and rest
// intervals from logged workout data. The source app records what was
// lifted, not when: each set arrives with no timestamps. Nominal per-set
// durations are assigned, scaled to fit the actual elapsed time within
// bounds, and merged with heart-rate samples into one strictly ordered
// event list ready for file encoding.
package timeline

import (
	"math"
	"sort"

	"github.com/liftsync/server/pkg/domain/workout"
)

// Config holds the timing tunables. The durations approximate typical
// rep-tempo and recovery timing; they are empirical defaults, not law.
type Config struct {
	WorkingSetSeconds    float64
	WarmupSetSeconds     float64
	RestBetweenSets      float64
	RestBetweenExercises float64

	// MinScale and MaxScale bound the elapsed-time fit. Logged workouts can
	// report implausible durations (a forgotten stop timer, a quick-logged
	// session); unbounded scaling would produce degenerate or absurd sets.
	MinScale float64
	MaxScale float64
}

// DefaultConfig returns the standard timing constants.
func DefaultConfig() Config {
	return Config{
		WorkingSetSeconds:    40,
		WarmupSetSeconds:     25,
		RestBetweenSets:      75,
		RestBetweenExercises: 120,
		MinScale:             0.3,
		MaxScale:             2.0,
	}
}

// Kind tags a timeline event.
type Kind int

const (
	// KindHeartRate is a sensor reading.
	KindHeartRate Kind = iota
	// KindActiveSet marks the end of an exercise set.
	KindActiveSet
	// KindRest marks the end of a recovery interval.
	KindRest
)

// Event is one entry of the merged timeline. Offsets are milliseconds from
// the workout start. Heart-rate events use only BPM; set events carry the
// indexes and durations the file encoder needs, with reps and weight
// echoed from the source set when logged.
type Event struct {
	Kind     Kind
	OffsetMS int64

	BPM int

	MessageIndex    int
	ExerciseIndex   int
	StartOffsetMS   int64
	DurationSeconds float64

	Reps     *int
	WeightKg *float64
}

// SetInterval is one flattened set with its nominal timing.
type SetInterval struct {
	ExerciseIndex int
	Set           workout.Set
	ActiveSeconds float64
	RestSeconds   float64
}

// Flatten walks exercises and sets in order, assigning nominal active and
// rest durations. Warmup sets get the shorter active duration. Rest after a
// set is zero for the very last set of the workout, the inter-exercise
// duration for the last set of an exercise, and the inter-set duration
// otherwise.
func Flatten(w *workout.Workout, cfg Config) []SetInterval {
	var intervals []SetInterval
	numExercises := len(w.Exercises)

	for exIdx, ex := range w.Exercises {
		for setIdx, s := range ex.Sets {
			active := cfg.WorkingSetSeconds
			if s.Kind == workout.SetKindWarmup {
				active = cfg.WarmupSetSeconds
			}

			lastSetOfExercise := setIdx == len(ex.Sets)-1
			lastExercise := exIdx == numExercises-1

			var rest float64
			switch {
			case lastSetOfExercise && lastExercise:
				rest = 0
			case lastSetOfExercise:
				rest = cfg.RestBetweenExercises
			default:
				rest = cfg.RestBetweenSets
			}

			intervals = append(intervals, SetInterval{
				ExerciseIndex: exIdx,
				Set:           s,
				ActiveSeconds: active,
				RestSeconds:   rest,
			})
		}
	}
	return intervals
}

// ScaleFactor fits the nominal timeline to the resolved workout duration,
// clamped to [MinScale, MaxScale]. A workout with no sets scales by 1.
func ScaleFactor(intervals []SetInterval, durationSeconds float64, cfg Config) float64 {
	ideal := 0.0
	for _, iv := range intervals {
		ideal += iv.ActiveSeconds + iv.RestSeconds
	}
	if ideal <= 0 {
		return 1.0
	}

	scale := durationSeconds / ideal
	if scale < cfg.MinScale {
		return cfg.MinScale
	}
	if scale > cfg.MaxScale {
		return cfg.MaxScale
	}
	return scale
}

// Synthesize builds the full merged timeline for one workout.
//
// Heart-rate samples are spread at equal intervals across the resolved
// duration; a single sample sits at offset zero. Set intervals walk a
// running cursor with scaled durations, emitting an active event at each
// set's end offset and a rest event at each recovery's end offset when the
// set has nominal rest. One message index counter is shared across active
// and rest events.
//
// The result is sorted by offset ascending; at equal offsets heart-rate
// events precede set events, since file readers expect sensor data to be
// flushed before state-change markers at the same instant.
func Synthesize(w *workout.Workout, hrSamples []int, durationSeconds float64, cfg Config) []Event {
	intervals := Flatten(w, cfg)
	scale := ScaleFactor(intervals, durationSeconds, cfg)

	var events []Event

	if n := len(hrSamples); n > 0 {
		var intervalMS int64
		if n > 1 {
			intervalMS = int64(math.Round(durationSeconds * 1000 / float64(n-1)))
		}
		for i, bpm := range hrSamples {
			events = append(events, Event{
				Kind:     KindHeartRate,
				OffsetMS: int64(i) * intervalMS,
				BPM:      bpm,
			})
		}
	}

	cursor := 0.0
	msgIndex := 0
	for _, iv := range intervals {
		activeStart := cursor
		activeEnd := cursor + iv.ActiveSeconds*scale
		cursor = activeEnd + iv.RestSeconds*scale

		startMS := int64(math.Round(activeStart * 1000))
		endMS := int64(math.Round(activeEnd * 1000))

		events = append(events, Event{
			Kind:            KindActiveSet,
			OffsetMS:        endMS,
			MessageIndex:    msgIndex,
			ExerciseIndex:   iv.ExerciseIndex,
			StartOffsetMS:   startMS,
			DurationSeconds: activeEnd - activeStart,
			Reps:            iv.Set.Reps,
			WeightKg:        iv.Set.WeightKg,
		})
		msgIndex++

		if iv.RestSeconds > 0 {
			restSeconds := iv.RestSeconds * scale
			restEndMS := endMS + int64(math.Round(restSeconds*1000))
			events = append(events, Event{
				Kind:            KindRest,
				OffsetMS:        restEndMS,
				MessageIndex:    msgIndex,
				ExerciseIndex:   iv.ExerciseIndex,
				StartOffsetMS:   endMS,
				DurationSeconds: restSeconds,
			})
			msgIndex++
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		if events[i].OffsetMS != events[j].OffsetMS {
			return events[i].OffsetMS < events[j].OffsetMS
		}
		return events[i].Kind == KindHeartRate && events[j].Kind != KindHeartRate
	})
	return events
}
