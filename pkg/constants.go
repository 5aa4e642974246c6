package shared

const (
	PlatformHevy      = "hevy"
	PlatformGarmin    = "garmin"
	PlatformStrava    = "strava"
	PlatformIntervals = "intervals"

	// Activity type used for routing strength workouts; rules may carry
	// RuleWildcard to match any type.
	ActivityStrength = "strength"
	RuleWildcard     = "*"

	// Strava's sport_type value for strength workouts.
	SportWeightTraining = "WeightTraining"

	SyncStatusSent     = "sent"
	SyncStatusExternal = "external"
	SyncStatusError    = "error"

	RunStatusRunning = "running"
	RunStatusSuccess = "success"
	RunStatusError   = "error"

	TriggerManual   = "manual"
	TriggerSchedule = "schedule"
	TriggerAPI      = "api"
)
