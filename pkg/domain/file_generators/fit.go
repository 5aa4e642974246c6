// Package file_generators encodes synthesized workout timelines into FIT
// activity files accepted by the watch-vendor importer.
package file_generators

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/muktihari/fit/encoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
	"github.com/muktihari/fit/proto"

	"github.com/liftsync/server/pkg/domain/energy"
	"github.com/liftsync/server/pkg/domain/exercises"
	"github.com/liftsync/server/pkg/domain/heartrate"
	"github.com/liftsync/server/pkg/domain/timeline"
	"github.com/liftsync/server/pkg/domain/workout"
)

// FileId provenance for generated activities. The development manufacturer
// marks our own uploads so they can be told apart from watch recordings.
const (
	fitProductID    = 1
	fitSerialNumber = 12345
)

// Options bundles the tunables file generation needs.
type Options struct {
	Timeline timeline.Config
	Profile  energy.Profile
}

// DefaultOptions returns the standard generation tuning.
func DefaultOptions() Options {
	return Options{
		Timeline: timeline.DefaultConfig(),
		Profile:  energy.DefaultProfile(),
	}
}

// Summary reports what one generation call produced. AvgHR is nil when no
// heart-rate samples were embedded.
type Summary struct {
	Exercises       int
	TotalSets       int
	HRSamples       int
	AvgHR           *int
	Calories        int
	DurationSeconds float64
	OutputPath      string
}

// BuildFitFile encodes a strength-training FIT file for one workout.
//
// Message order is what the importer requires: file_id, sport, one
// exercise_title per exercise, a timer-start event, the merged
// record/set timeline, a timer-stop event, then lap, session and activity
// summaries. hrSamples may be empty; calories then fall back to the
// profile's default heart rate and no record messages are written.
func BuildFitFile(w *workout.Workout, hrSamples []int, opts Options) ([]byte, Summary, error) {
	if w == nil {
		return nil, Summary{}, fmt.Errorf("workout cannot be nil")
	}
	if w.StartTime.IsZero() || w.EndTime.IsZero() {
		return nil, Summary{}, fmt.Errorf("%w: missing start or end time", workout.ErrMalformed)
	}
	if w.EndTime.Before(w.StartTime) {
		return nil, Summary{}, fmt.Errorf("%w: end time before start time", workout.ErrMalformed)
	}

	durationSeconds := w.Duration().Seconds()
	durationMS := uint32(math.Round(durationSeconds * 1000))
	calories := energy.Estimate(hrSamples, durationSeconds, opts.Profile, w.StartTime.Year())
	events := timeline.Synthesize(w, hrSamples, durationSeconds, opts.Timeline)

	// Category pairs are looked up once per exercise; set messages reuse
	// them via the exercise index.
	categories := make([]exercises.Category, len(w.Exercises))
	displayNames := make([]string, len(w.Exercises))
	for i, ex := range w.Exercises {
		categories[i], displayNames[i] = exercises.Lookup(ex.Name)
	}

	fit := &proto.FIT{
		Messages: []proto.Message{},
	}

	fileId := mesgdef.NewFileId(nil).
		SetType(typedef.FileActivity).
		SetManufacturer(typedef.ManufacturerDevelopment).
		SetProduct(fitProductID).
		SetSerialNumber(fitSerialNumber).
		SetTimeCreated(w.StartTime)
	fit.Messages = append(fit.Messages, fileId.ToMesg(nil))

	sport := mesgdef.NewSport(nil).
		SetSport(typedef.SportTraining).
		SetSubSport(typedef.SubSportStrengthTraining)
	fit.Messages = append(fit.Messages, sport.ToMesg(nil))

	for i := range w.Exercises {
		title := mesgdef.NewExerciseTitle(nil).
			SetMessageIndex(typedef.MessageIndex(i)).
			SetExerciseCategory(typedef.ExerciseCategory(categories[i].Category)).
			SetExerciseName(categories[i].Subcategory).
			SetWktStepName([]string{displayNames[i]})
		fit.Messages = append(fit.Messages, title.ToMesg(nil))
	}

	timerStart := mesgdef.NewEvent(nil).
		SetTimestamp(w.StartTime).
		SetEvent(typedef.EventTimer).
		SetEventType(typedef.EventTypeStart)
	fit.Messages = append(fit.Messages, timerStart.ToMesg(nil))

	for _, ev := range events {
		ts := w.StartTime.Add(time.Duration(ev.OffsetMS) * time.Millisecond)

		switch ev.Kind {
		case timeline.KindHeartRate:
			rec := mesgdef.NewRecord(nil).
				SetTimestamp(ts).
				SetHeartRate(uint8(ev.BPM))
			fit.Messages = append(fit.Messages, rec.ToMesg(nil))

		case timeline.KindActiveSet:
			cat := categories[ev.ExerciseIndex]
			setMsg := mesgdef.NewSet(nil).
				SetTimestamp(ts).
				SetStartTime(w.StartTime.Add(time.Duration(ev.StartOffsetMS) * time.Millisecond)).
				SetDuration(uint32(math.Round(ev.DurationSeconds * 1000))).
				SetSetType(typedef.SetTypeActive).
				SetCategory([]typedef.ExerciseCategory{typedef.ExerciseCategory(cat.Category)}).
				SetCategorySubtype([]uint16{cat.Subcategory}).
				SetMessageIndex(typedef.MessageIndex(ev.MessageIndex)).
				SetWktStepIndex(typedef.MessageIndex(ev.ExerciseIndex))
			if ev.Reps != nil {
				setMsg.SetRepetitions(uint16(*ev.Reps))
			}
			if ev.WeightKg != nil {
				setMsg.SetWeightScaled(*ev.WeightKg)
			}
			fit.Messages = append(fit.Messages, setMsg.ToMesg(nil))

		case timeline.KindRest:
			restMsg := mesgdef.NewSet(nil).
				SetTimestamp(ts).
				SetStartTime(w.StartTime.Add(time.Duration(ev.StartOffsetMS) * time.Millisecond)).
				SetDuration(uint32(math.Round(ev.DurationSeconds * 1000))).
				SetSetType(typedef.SetTypeRest).
				SetMessageIndex(typedef.MessageIndex(ev.MessageIndex)).
				SetWktStepIndex(typedef.MessageIndex(ev.ExerciseIndex))
			fit.Messages = append(fit.Messages, restMsg.ToMesg(nil))
		}
	}

	timerStop := mesgdef.NewEvent(nil).
		SetTimestamp(w.EndTime).
		SetEvent(typedef.EventTimer).
		SetEventType(typedef.EventTypeStopAll)
	fit.Messages = append(fit.Messages, timerStop.ToMesg(nil))

	var avgHR, maxHR int
	if len(hrSamples) > 0 {
		avgHR = int(math.Round(heartrate.Mean(hrSamples)))
		for _, s := range hrSamples {
			if s > maxHR {
				maxHR = s
			}
		}
	}

	lap := mesgdef.NewLap(nil).
		SetTimestamp(w.EndTime).
		SetStartTime(w.StartTime).
		SetTotalElapsedTime(durationMS).
		SetTotalTimerTime(durationMS).
		SetSport(typedef.SportTraining).
		SetSubSport(typedef.SubSportStrengthTraining).
		SetMessageIndex(0).
		SetEvent(typedef.EventLap).
		SetEventType(typedef.EventTypeStop).
		SetTotalCalories(uint16(calories))
	if len(hrSamples) > 0 {
		lap.SetAvgHeartRate(uint8(avgHR))
		lap.SetMaxHeartRate(uint8(maxHR))
	}
	fit.Messages = append(fit.Messages, lap.ToMesg(nil))

	session := mesgdef.NewSession(nil).
		SetTimestamp(w.EndTime).
		SetStartTime(w.StartTime).
		SetTotalElapsedTime(durationMS).
		SetTotalTimerTime(durationMS).
		SetSport(typedef.SportTraining).
		SetSubSport(typedef.SubSportStrengthTraining).
		SetMessageIndex(0).
		SetFirstLapIndex(0).
		SetNumLaps(1).
		SetEvent(typedef.EventLap).
		SetEventType(typedef.EventTypeStop).
		SetTotalCalories(uint16(calories))
	if len(hrSamples) > 0 {
		session.SetAvgHeartRate(uint8(avgHR))
		session.SetMaxHeartRate(uint8(maxHR))
	}
	fit.Messages = append(fit.Messages, session.ToMesg(nil))

	activityMsg := mesgdef.NewActivity(nil).
		SetTimestamp(w.EndTime).
		SetTotalTimerTime(durationMS).
		SetNumSessions(1).
		SetType(typedef.ActivityManual).
		SetEvent(typedef.EventActivity).
		SetEventType(typedef.EventTypeStop)
	fit.Messages = append(fit.Messages, activityMsg.ToMesg(nil))

	var buf bytes.Buffer
	enc := encoder.New(&buf)
	if err := enc.Encode(fit); err != nil {
		return nil, Summary{}, fmt.Errorf("failed to encode FIT file: %w", err)
	}

	summary := Summary{
		Exercises:       len(w.Exercises),
		TotalSets:       w.TotalSets(),
		HRSamples:       len(hrSamples),
		Calories:        calories,
		DurationSeconds: durationSeconds,
	}
	if len(hrSamples) > 0 {
		avg := avgHR
		summary.AvgHR = &avg
	}
	return buf.Bytes(), summary, nil
}

// GenerateFitFile builds the FIT file and writes it to outputPath, creating
// parent directories as needed. Any existing file at the path is replaced.
// I/O failures propagate; a partial write is never reported as success.
func GenerateFitFile(w *workout.Workout, hrSamples []int, opts Options, outputPath string) (Summary, error) {
	data, summary, err := BuildFitFile(w, hrSamples, opts)
	if err != nil {
		return Summary{}, err
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return Summary{}, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return Summary{}, fmt.Errorf("failed to write FIT file: %w", err)
	}

	summary.OutputPath = outputPath
	return summary, nil
}
