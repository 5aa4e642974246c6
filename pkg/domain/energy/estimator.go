// Package energy estimates kilocalorie expenditure from heart-rate samples
// using the Keytel et al. 2005 regression (male, VO2max-aware variant).
package energy

import "math"

// Profile holds the subject constants the regression needs. These are
// external configuration, never derived by the estimator.
type Profile struct {
	WeightKg  float64
	BirthYear int
	VO2Max    float64

	// FallbackBPM substitutes a single sample when none are supplied, so
	// the regression always has at least one data point.
	FallbackBPM int
}

// DefaultProfile returns the built-in subject profile.
func DefaultProfile() Profile {
	return Profile{
		WeightKg:    80.5,
		BirthYear:   1994,
		VO2Max:      50.0,
		FallbackBPM: 90,
	}
}

// Estimate integrates the Keytel per-minute burn rate over the workout.
// Each sample covers an equal time slice of durationSeconds. Negative raw
// rates are clamped to zero; the regression goes negative for heart rates
// below its crossing point, which is not meaningful as negative burn.
// The result is the rounded total in kilocalories.
func Estimate(samples []int, durationSeconds float64, p Profile, workoutYear int) int {
	age := float64(workoutYear - p.BirthYear)
	if len(samples) == 0 {
		samples = []int{p.FallbackBPM}
	}

	sliceMinutes := (durationSeconds / float64(len(samples))) / 60.0
	total := 0.0
	for _, hr := range samples {
		// kcal/min; the 4.184 divisor converts the regression's kJ output.
		perMinute := (-95.7735 + 0.634*float64(hr) + 0.404*p.VO2Max +
			0.394*p.WeightKg + 0.271*age) / 4.184
		if perMinute < 0 {
			perMinute = 0
		}
		total += perMinute * sliceMinutes
	}
	return int(math.Round(total))
}
