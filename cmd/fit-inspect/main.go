package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/liftsync/server/pkg/domain/fit_parser"
	"github.com/liftsync/server/pkg/domain/heartrate"
)

func main() {
	inputPath := flag.String("input", "", "Path to FIT file")
	showSets := flag.Bool("sets", false, "Print the per-set table")
	flag.Parse()

	if *inputPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(*inputPath)
	if err != nil {
		fmt.Printf("Failed to read file: %v\n", err)
		os.Exit(1)
	}

	summary, err := fit_parser.ParseFitFile(data)
	if err != nil {
		fmt.Printf("Failed to decode FIT file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("File: %s (%d bytes)\n", *inputPath, len(data))
	fmt.Printf("Created: %s  Serial: %d  Manufacturer: %s\n",
		summary.TimeCreated.Format(time.RFC3339), summary.SerialNumber, summary.Manufacturer)
	fmt.Printf("Sport: %s / %s\n", summary.Sport, summary.SubSport)

	fmt.Printf("\n=== SESSION ===\n")
	sw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(sw, "Start\tDuration\tCalories\tAvg HR\tMax HR\tLaps")
	fmt.Fprintln(sw, "-----\t--------\t--------\t------\t------\t----")
	fmt.Fprintf(sw, "%s\t%s\t%d kcal\t%d\t%d\t%d\n",
		summary.StartTime.Format("2006-01-02 15:04:05"),
		formatDuration(summary.DurationSeconds),
		summary.Calories, summary.AvgHeartRate, summary.MaxHeartRate, summary.Laps)
	sw.Flush()

	titleByIndex := make(map[uint16]string, len(summary.Titles))
	for _, t := range summary.Titles {
		titleByIndex[t.MessageIndex] = t.Name
	}
	setsByExercise := make(map[uint16]int)
	for _, s := range summary.ActiveSets {
		setsByExercise[s.ExerciseIndex]++
	}

	fmt.Printf("\n=== EXERCISES: %d ===\n", len(summary.Titles))
	ew := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(ew, "#\tName\tSets")
	fmt.Fprintln(ew, "-\t----\t----")
	for _, t := range summary.Titles {
		fmt.Fprintf(ew, "%d\t%s\t%d\n", t.MessageIndex+1, t.Name, setsByExercise[t.MessageIndex])
	}
	ew.Flush()

	fmt.Printf("\n=== SETS: %d active, %d rest ===\n", len(summary.ActiveSets), len(summary.RestSets))
	if *showSets {
		tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "#\tExercise\tStart\tDuration\tReps\tWeight")
		fmt.Fprintln(tw, "-\t--------\t-----\t--------\t----\t------")
		for i, s := range summary.ActiveSets {
			name := titleByIndex[s.ExerciseIndex]
			fmt.Fprintf(tw, "%d\t%s\t%s\t%.0fs\t%d\t%.1f kg\n",
				i+1, name, s.StartTime.Format("15:04:05"), s.DurationSeconds, s.Repetitions, s.WeightKg)
		}
		tw.Flush()
	}

	if len(summary.HeartRates) > 0 {
		minHR, maxHR := summary.HeartRates[0], summary.HeartRates[0]
		for _, bpm := range summary.HeartRates {
			if bpm < minHR {
				minHR = bpm
			}
			if bpm > maxHR {
				maxHR = bpm
			}
		}
		fmt.Printf("\n=== HEART RATE: %d records ===\n", len(summary.HeartRates))
		fmt.Printf("Min %d  Max %d  Avg %.1f\n", minHR, maxHR, heartrate.Mean(summary.HeartRates))
	} else {
		fmt.Printf("\n=== HEART RATE: no records ===\n")
	}

	fmt.Printf("\nTimer events: %d  Sessions: %d\n", len(summary.Timers), summary.Sessions)
}

func formatDuration(seconds float64) string {
	mins := int(seconds) / 60
	secs := int(seconds) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}
