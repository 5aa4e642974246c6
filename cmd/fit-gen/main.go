package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/liftsync/server/pkg/config"
	"github.com/liftsync/server/pkg/domain/file_generators"
	"github.com/liftsync/server/pkg/domain/heartrate"
	"github.com/liftsync/server/pkg/domain/workout"
)

func main() {
	inputFile := flag.String("input", "", "Path to workout JSON file")
	outputFile := flag.String("output", "output.fit", "Path to output FIT file")
	hrFile := flag.String("hr", "", "Path to heart-rate samples file, one BPM per line")
	flatBPM := flag.Int("bpm", 0, "Flat heart rate to embed when no samples file is given")
	configFile := flag.String("config", "", "Path to config file for subject and timing settings")
	flag.Parse()

	if *inputFile == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	data, err := os.ReadFile(*inputFile)
	if err != nil {
		log.Fatalf("Failed to read input file: %v", err)
	}

	w, err := workout.Parse(data)
	if err != nil {
		log.Fatalf("Failed to parse workout: %v", err)
	}

	samples, source, err := resolveSamples(*hrFile, *flatBPM, cfg)
	if err != nil {
		log.Fatalf("Failed to load heart-rate samples: %v", err)
	}
	fmt.Printf("Embedding %d heart rate samples (%s)\n", len(samples), source)

	fitData, summary, err := file_generators.BuildFitFile(w, samples, cfg.GeneratorOptions())
	if err != nil {
		log.Fatalf("Failed to generate FIT file: %v", err)
	}

	if err := os.WriteFile(*outputFile, fitData, 0644); err != nil {
		log.Fatalf("Failed to write output file: %v", err)
	}

	avg := 0
	if summary.AvgHR != nil {
		avg = *summary.AvgHR
	}
	fmt.Printf("Successfully wrote FIT file to %s (%d bytes)\n", *outputFile, len(fitData))
	fmt.Printf("  %d exercises, %d sets, %.0fs, %d kcal, avg HR %d\n",
		summary.Exercises, summary.TotalSets, summary.DurationSeconds, summary.Calories, avg)
}

// resolveSamples picks the heart-rate stream to embed: a samples file, a
// flat override, or the resolver's static fallback.
func resolveSamples(hrFile string, flatBPM int, cfg *config.Config) ([]int, string, error) {
	if hrFile != "" {
		samples, err := readSamples(hrFile)
		if err != nil {
			return nil, "", err
		}
		return samples, "file", nil
	}

	rcfg := cfg.ResolverConfig()
	if flatBPM > 0 {
		rcfg.DefaultBPM = flatBPM
	}
	res := heartrate.Resolve(nil, nil, rcfg)
	return res.Samples, res.Source, nil
}

// readSamples reads one BPM integer per line. Blank lines and #-comments
// are skipped.
func readSamples(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var samples []int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		bpm, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("bad sample %q: %w", line, err)
		}
		samples = append(samples, bpm)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("no samples in %s", path)
	}
	return samples, nil
}
