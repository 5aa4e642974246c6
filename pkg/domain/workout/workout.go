// Package workout defines the strength-workout data model consumed by the
// FIT generation pipeline and parses the Hevy workout JSON shape into it.
package workout

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMalformed marks workouts that cannot be processed at all: missing or
// unparsable start/end timestamps, or an end time before the start time.
// Absent set fields and unknown exercise names are not malformed; they
// degrade to documented fallbacks downstream.
var ErrMalformed = errors.New("malformed workout")

// Set kinds as reported by the source app. Kinds other than warmup get
// normal-set treatment in timeline synthesis.
const (
	SetKindNormal  = "normal"
	SetKindWarmup  = "warmup"
	SetKindDropset = "dropset"
	SetKindFailure = "failure"
)

// Set is one logged set. Optional fields are pointers so absence is
// explicit rather than a zero-value guess.
type Set struct {
	Kind            string
	WeightKg        *float64
	Reps            *int
	DurationSeconds *int
	RPE             *float64
}

// Exercise is one exercise entry with its sets in performance order.
type Exercise struct {
	Name string
	Sets []Set
}

// Workout is one completed session. Exercises preserve source order.
type Workout struct {
	SourceID  string
	Title     string
	StartTime time.Time
	EndTime   time.Time
	Exercises []Exercise
}

// Duration returns the elapsed time between start and end.
func (w *Workout) Duration() time.Duration {
	return w.EndTime.Sub(w.StartTime)
}

// TotalSets counts logged sets across all exercises.
func (w *Workout) TotalSets() int {
	n := 0
	for _, ex := range w.Exercises {
		n += len(ex.Sets)
	}
	return n
}

// Wire shapes for the Hevy workout JSON.
type hevyWorkout struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	StartTime string         `json:"start_time"`
	EndTime   string         `json:"end_time"`
	Exercises []hevyExercise `json:"exercises"`
}

type hevyExercise struct {
	Title string    `json:"title"`
	Sets  []hevySet `json:"sets"`
}

type hevySet struct {
	Type            string   `json:"type"`
	WeightKg        *float64 `json:"weight_kg"`
	Reps            *int     `json:"reps"`
	DurationSeconds *int     `json:"duration_seconds"`
	RPE             *float64 `json:"rpe"`
}

// Parse decodes a Hevy workout JSON payload into a Workout. It fails with
// ErrMalformed when the timestamps are missing, unparsable, or reversed.
func Parse(data []byte) (*Workout, error) {
	var raw hevyWorkout
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode workout JSON: %w", err)
	}
	return fromWire(&raw)
}

func fromWire(raw *hevyWorkout) (*Workout, error) {
	start, err := ParseTimestamp(raw.StartTime)
	if err != nil {
		return nil, fmt.Errorf("start_time: %w", err)
	}
	end, err := ParseTimestamp(raw.EndTime)
	if err != nil {
		return nil, fmt.Errorf("end_time: %w", err)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end_time %s before start_time %s",
			ErrMalformed, raw.EndTime, raw.StartTime)
	}

	w := &Workout{
		SourceID:  raw.ID,
		Title:     raw.Title,
		StartTime: start,
		EndTime:   end,
		Exercises: make([]Exercise, 0, len(raw.Exercises)),
	}
	for _, ex := range raw.Exercises {
		sets := make([]Set, 0, len(ex.Sets))
		for _, s := range ex.Sets {
			kind := s.Type
			if kind == "" {
				kind = SetKindNormal
			}
			sets = append(sets, Set{
				Kind:            kind,
				WeightKg:        s.WeightKg,
				Reps:            s.Reps,
				DurationSeconds: s.DurationSeconds,
				RPE:             s.RPE,
			})
		}
		w.Exercises = append(w.Exercises, Exercise{Name: ex.Title, Sets: sets})
	}
	return w, nil
}

// ParseTimestamp accepts the two timestamp layouts the source platforms
// emit: RFC 3339 ("2024-03-01T18:30:00Z", offset variants included) and the
// space-separated form "2024-03-01 18:30:00", which is assumed UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return time.Time{}, fmt.Errorf("%w: empty timestamp", ErrMalformed)
	}
	if strings.Contains(cleaned, "T") {
		t, err := time.Parse(time.RFC3339, cleaned)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: unparsable timestamp %q", ErrMalformed, raw)
		}
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04:05", cleaned, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: unparsable timestamp %q", ErrMalformed, raw)
	}
	return t, nil
}
