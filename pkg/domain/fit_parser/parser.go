// Package fit_parser decodes generated activity files back into a flat
// summary. It exists for inspection tooling and round-trip verification,
// not for general FIT ingestion: only the messages our generator emits are
// projected.
package fit_parser

import (
	"bytes"
	"fmt"
	"time"

	"github.com/muktihari/fit/decoder"
	"github.com/muktihari/fit/profile/mesgdef"
	"github.com/muktihari/fit/profile/typedef"
	"github.com/muktihari/fit/proto"
)

// Invalid sentinels from the FIT base types.
const (
	invalidUint8  = 0xFF
	invalidUint16 = 0xFFFF
	invalidUint32 = 0xFFFFFFFF
)

// ExerciseTitle is one decoded exercise_title message.
type ExerciseTitle struct {
	MessageIndex uint16
	Category     uint16
	Subcategory  uint16
	Name         string
}

// SetDetail is one decoded set message.
type SetDetail struct {
	Timestamp       time.Time
	StartTime       time.Time
	DurationSeconds float64
	Repetitions     int
	WeightKg        float64
	MessageIndex    uint16
	ExerciseIndex   uint16
	Category        uint16
	Subcategory     uint16
}

// TimerEvent is one decoded timer event message.
type TimerEvent struct {
	Timestamp time.Time
	EventType typedef.EventType
}

// FileSummary is the flattened content of one generated activity file.
// Message-kind slices preserve file order.
type FileSummary struct {
	Manufacturer typedef.Manufacturer
	Product      uint16
	SerialNumber uint32
	TimeCreated  time.Time

	Sport    typedef.Sport
	SubSport typedef.SubSport

	Titles     []ExerciseTitle
	HeartRates []int
	ActiveSets []SetDetail
	RestSets   []SetDetail
	Timers     []TimerEvent

	Laps     int
	Sessions int

	StartTime       time.Time
	DurationSeconds float64
	Calories        int
	AvgHeartRate    int
	MaxHeartRate    int
	ActivityType    typedef.Activity
	NumSessions     uint16
}

// ParseFitFile decodes a FIT payload into a FileSummary. It fails on an
// empty payload, an undecodable stream, or a file with no session message.
func ParseFitFile(data []byte) (*FileSummary, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty FIT data")
	}

	summary := &FileSummary{}
	dec := decoder.New(bytes.NewReader(data))

	for dec.Next() {
		fitData, err := dec.Decode()
		if err != nil {
			return nil, fmt.Errorf("failed to decode FIT file: %w", err)
		}

		for i := range fitData.Messages {
			msg := &fitData.Messages[i]
			switch msg.Num {
			case typedef.MesgNumFileId:
				fileId := mesgdef.NewFileId(msg)
				summary.Manufacturer = fileId.Manufacturer
				summary.Product = fileId.Product
				summary.SerialNumber = uint32(fileId.SerialNumber)
				if !fileId.TimeCreated.IsZero() {
					summary.TimeCreated = fileId.TimeCreated.UTC()
				}

			case typedef.MesgNumSport:
				sportMsg := mesgdef.NewSport(msg)
				summary.Sport = sportMsg.Sport
				summary.SubSport = sportMsg.SubSport

			case typedef.MesgNumExerciseTitle:
				title := mesgdef.NewExerciseTitle(msg)
				name := ""
				if len(title.WktStepName) > 0 {
					name = title.WktStepName[0]
				}
				summary.Titles = append(summary.Titles, ExerciseTitle{
					MessageIndex: uint16(title.MessageIndex),
					Category:     uint16(title.ExerciseCategory),
					Subcategory:  title.ExerciseName,
					Name:         name,
				})

			case typedef.MesgNumRecord:
				rec := mesgdef.NewRecord(msg)
				if rec.HeartRate != invalidUint8 {
					summary.HeartRates = append(summary.HeartRates, int(rec.HeartRate))
				}

			case typedef.MesgNumSet:
				detail := parseSet(msg)
				if detail.setType == typedef.SetTypeActive {
					summary.ActiveSets = append(summary.ActiveSets, detail.SetDetail)
				} else {
					summary.RestSets = append(summary.RestSets, detail.SetDetail)
				}

			case typedef.MesgNumEvent:
				ev := mesgdef.NewEvent(msg)
				if ev.Event == typedef.EventTimer {
					summary.Timers = append(summary.Timers, TimerEvent{
						Timestamp: ev.Timestamp.UTC(),
						EventType: ev.EventType,
					})
				}

			case typedef.MesgNumLap:
				summary.Laps++

			case typedef.MesgNumSession:
				summary.Sessions++
				sess := mesgdef.NewSession(msg)
				summary.StartTime = sess.StartTime.UTC()
				if sess.TotalElapsedTime != invalidUint32 {
					summary.DurationSeconds = float64(sess.TotalElapsedTime) / 1000
				}
				if sess.TotalCalories != invalidUint16 {
					summary.Calories = int(sess.TotalCalories)
				}
				if sess.AvgHeartRate != invalidUint8 {
					summary.AvgHeartRate = int(sess.AvgHeartRate)
				}
				if sess.MaxHeartRate != invalidUint8 {
					summary.MaxHeartRate = int(sess.MaxHeartRate)
				}

			case typedef.MesgNumActivity:
				act := mesgdef.NewActivity(msg)
				summary.ActivityType = act.Type
				if act.NumSessions != invalidUint16 {
					summary.NumSessions = act.NumSessions
				}
			}
		}
	}

	if summary.Sessions == 0 {
		return nil, fmt.Errorf("no sessions found in FIT file")
	}
	return summary, nil
}

type setProjection struct {
	SetDetail
	setType typedef.SetType
}

func parseSet(msg *proto.Message) setProjection {
	setMsg := mesgdef.NewSet(msg)

	detail := setProjection{setType: setMsg.SetType}
	detail.Timestamp = setMsg.Timestamp.UTC()
	detail.StartTime = setMsg.StartTime.UTC()
	if setMsg.Duration != invalidUint32 {
		detail.DurationSeconds = float64(setMsg.Duration) / 1000
	}
	if setMsg.Repetitions != invalidUint16 {
		detail.Repetitions = int(setMsg.Repetitions)
	}
	if setMsg.Weight != invalidUint16 {
		detail.WeightKg = setMsg.WeightScaled()
	}
	detail.MessageIndex = uint16(setMsg.MessageIndex)
	detail.ExerciseIndex = uint16(setMsg.WktStepIndex)
	if len(setMsg.Category) > 0 {
		detail.Category = uint16(setMsg.Category[0])
	}
	if len(setMsg.CategorySubtype) > 0 {
		detail.Subcategory = setMsg.CategorySubtype[0]
	}
	return detail
}
