// Package config loads LiftSync configuration from a YAML file with
// environment-variable overrides. Every tunable has a default, so a missing
// config file is not an error; env vars alone can configure a deployment.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/liftsync/server/pkg/domain/energy"
	"github.com/liftsync/server/pkg/domain/file_generators"
	"github.com/liftsync/server/pkg/domain/heartrate"
	"github.com/liftsync/server/pkg/domain/timeline"
)

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	State     StateConfig     `yaml:"state"`
	Artifacts ArtifactsConfig `yaml:"artifacts"`
	Hevy      HevyConfig      `yaml:"hevy"`
	Garmin    GarminConfig    `yaml:"garmin"`
	Strava    StravaConfig    `yaml:"strava"`
	Intervals IntervalsConfig `yaml:"intervals"`
	Telegram  TelegramConfig  `yaml:"telegram"`
	Sentry    SentryConfig    `yaml:"sentry"`
	Sync      SyncConfig      `yaml:"sync"`
	Subject   SubjectConfig   `yaml:"subject"`
	Timing    TimingConfig    `yaml:"timing"`
	HeartRate HeartRateConfig `yaml:"heart_rate"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`

	// APIKey guards the manual-trigger endpoint when set. Read endpoints
	// stay open; deployments binding beyond localhost should set it.
	APIKey string `yaml:"api_key"`
}

// Addr returns the listen address for the status server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`

	// MigrationsPath is the directory holding schema migrations.
	MigrationsPath string `yaml:"migrations_path"`
}

// DSN returns a PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, sslmode)
}

type StateConfig struct {
	// Path of the SQLite artifact manifest.
	Path string `yaml:"path"`
}

type ArtifactsConfig struct {
	// Dir receives generated FIT files.
	Dir string `yaml:"dir"`
}

type HevyConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

type GarminConfig struct {
	Token   string `yaml:"token"`
	BaseURL string `yaml:"base_url"`
}

type StravaConfig struct {
	AccessToken string `yaml:"access_token"`
	BaseURL     string `yaml:"base_url"`

	// Upload status polling after a file upload.
	PollAttempts        int `yaml:"poll_attempts"`
	PollIntervalSeconds int `yaml:"poll_interval_seconds"`
}

type IntervalsConfig struct {
	AthleteID string `yaml:"athlete_id"`
	APIKey    string `yaml:"api_key"`
	BaseURL   string `yaml:"base_url"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type SentryConfig struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
	Release     string `yaml:"release"`
}

type SyncConfig struct {
	// Schedule is a cron expression for the daemon.
	Schedule string `yaml:"schedule"`

	// LookbackDays bounds how far back workout and daily-health fetches go.
	LookbackDays int `yaml:"lookback_days"`

	// ReconcileWindowSeconds is the start-time tolerance when matching
	// externally-synced activities to raw workouts.
	ReconcileWindowSeconds int `yaml:"reconcile_window_seconds"`
}

type SubjectConfig struct {
	WeightKg   float64 `yaml:"weight_kg"`
	BirthYear  int     `yaml:"birth_year"`
	VO2Max     float64 `yaml:"vo2max"`
	DefaultBPM int     `yaml:"default_bpm"`
}

type TimingConfig struct {
	WorkingSetSeconds    float64 `yaml:"working_set_seconds"`
	WarmupSetSeconds     float64 `yaml:"warmup_set_seconds"`
	RestBetweenSets      float64 `yaml:"rest_between_sets"`
	RestBetweenExercises float64 `yaml:"rest_between_exercises"`
	MinScale             float64 `yaml:"min_scale"`
	MaxScale             float64 `yaml:"max_scale"`
}

type HeartRateConfig struct {
	MinExerciseBPM   float64 `yaml:"min_exercise_bpm"`
	SyntheticSamples int     `yaml:"synthetic_samples"`
	HistoryWindow    int     `yaml:"history_window"`
}

type LogConfig struct {
	// File enables rotated file logging when set; empty means stdout only.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Database: DatabaseConfig{
			Host:           "localhost",
			Port:           5432,
			Name:           "liftsync",
			User:           "liftsync",
			MigrationsPath: "migrations",
		},
		State:     StateConfig{Path: "state/liftsync.db"},
		Artifacts: ArtifactsConfig{Dir: "fit_output"},
		Hevy:      HevyConfig{BaseURL: "https://api.hevyapp.com/v1"},
		Garmin:    GarminConfig{BaseURL: "https://connectapi.garmin.com"},
		Strava: StravaConfig{
			BaseURL:             "https://www.strava.com/api/v3",
			PollAttempts:        5,
			PollIntervalSeconds: 3,
		},
		Intervals: IntervalsConfig{BaseURL: "https://intervals.icu/api/v1"},
		Sentry:    SentryConfig{Environment: "production"},
		Sync: SyncConfig{
			Schedule:               "*/30 * * * *",
			LookbackDays:           7,
			ReconcileWindowSeconds: 120,
		},
		Subject: SubjectConfig{
			WeightKg:   80.5,
			BirthYear:  1994,
			VO2Max:     50.0,
			DefaultBPM: 90,
		},
		Timing: TimingConfig{
			WorkingSetSeconds:    40,
			WarmupSetSeconds:     25,
			RestBetweenSets:      75,
			RestBetweenExercises: 120,
			MinScale:             0.3,
			MaxScale:             2.0,
		},
		HeartRate: HeartRateConfig{
			MinExerciseBPM:   65,
			SyntheticSamples: 30,
			HistoryWindow:    10,
		},
		Log: LogConfig{MaxSizeMB: 50, MaxBackups: 3},
	}
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment overrides, in that order. A missing file at the given path is
// not an error; an unreadable or invalid one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults plus env only.
		case err != nil:
			return nil, fmt.Errorf("reading config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// Env vars use the prefix LIFTSYNC_ and underscore-separated paths, e.g.
// LIFTSYNC_DB_HOST, LIFTSYNC_HEVY_API_KEY, LIFTSYNC_TELEGRAM_CHAT_ID.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LIFTSYNC_SERVER_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := os.Getenv("LIFTSYNC_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LIFTSYNC_SERVER_API_KEY"); v != "" {
		cfg.Server.APIKey = v
	}
	if v := os.Getenv("LIFTSYNC_DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("LIFTSYNC_DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("LIFTSYNC_DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("LIFTSYNC_DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("LIFTSYNC_DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("LIFTSYNC_DB_SSLMODE"); v != "" {
		cfg.Database.SSLMode = v
	}
	if v := os.Getenv("LIFTSYNC_STATE_PATH"); v != "" {
		cfg.State.Path = v
	}
	if v := os.Getenv("LIFTSYNC_ARTIFACTS_DIR"); v != "" {
		cfg.Artifacts.Dir = v
	}
	if v := os.Getenv("LIFTSYNC_HEVY_API_KEY"); v != "" {
		cfg.Hevy.APIKey = v
	}
	if v := os.Getenv("LIFTSYNC_HEVY_BASE_URL"); v != "" {
		cfg.Hevy.BaseURL = v
	}
	if v := os.Getenv("LIFTSYNC_GARMIN_TOKEN"); v != "" {
		cfg.Garmin.Token = v
	}
	if v := os.Getenv("LIFTSYNC_GARMIN_BASE_URL"); v != "" {
		cfg.Garmin.BaseURL = v
	}
	if v := os.Getenv("LIFTSYNC_STRAVA_ACCESS_TOKEN"); v != "" {
		cfg.Strava.AccessToken = v
	}
	if v := os.Getenv("LIFTSYNC_STRAVA_BASE_URL"); v != "" {
		cfg.Strava.BaseURL = v
	}
	if v := os.Getenv("LIFTSYNC_INTERVALS_ATHLETE_ID"); v != "" {
		cfg.Intervals.AthleteID = v
	}
	if v := os.Getenv("LIFTSYNC_INTERVALS_API_KEY"); v != "" {
		cfg.Intervals.APIKey = v
	}
	if v := os.Getenv("LIFTSYNC_TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("LIFTSYNC_TELEGRAM_CHAT_ID"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Telegram.ChatID = id
		}
	}
	if v := os.Getenv("LIFTSYNC_SENTRY_DSN"); v != "" {
		cfg.Sentry.DSN = v
	}
	if v := os.Getenv("LIFTSYNC_SENTRY_ENVIRONMENT"); v != "" {
		cfg.Sentry.Environment = v
	}
	if v := os.Getenv("LIFTSYNC_SYNC_SCHEDULE"); v != "" {
		cfg.Sync.Schedule = v
	}
	if v := os.Getenv("LIFTSYNC_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
}

func (c *Config) validate() error {
	if c.Server.Port == 0 {
		return fmt.Errorf("server.port is required")
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port == 0 {
		return fmt.Errorf("database.port is required")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database.user is required")
	}
	if c.State.Path == "" {
		return fmt.Errorf("state.path is required")
	}
	if c.Artifacts.Dir == "" {
		return fmt.Errorf("artifacts.dir is required")
	}
	if c.Timing.MinScale <= 0 {
		return fmt.Errorf("timing.min_scale must be positive")
	}
	if c.Timing.MaxScale < c.Timing.MinScale {
		return fmt.Errorf("timing.max_scale must be >= timing.min_scale")
	}
	if c.HeartRate.SyntheticSamples <= 0 {
		return fmt.Errorf("heart_rate.synthetic_samples must be positive")
	}
	if c.Sync.LookbackDays <= 0 {
		return fmt.Errorf("sync.lookback_days must be positive")
	}
	return nil
}

// TimelineConfig bridges the timing section into the domain type.
func (c *Config) TimelineConfig() timeline.Config {
	return timeline.Config{
		WorkingSetSeconds:    c.Timing.WorkingSetSeconds,
		WarmupSetSeconds:     c.Timing.WarmupSetSeconds,
		RestBetweenSets:      c.Timing.RestBetweenSets,
		RestBetweenExercises: c.Timing.RestBetweenExercises,
		MinScale:             c.Timing.MinScale,
		MaxScale:             c.Timing.MaxScale,
	}
}

// ResolverConfig bridges the heart_rate section into the domain type.
func (c *Config) ResolverConfig() heartrate.Config {
	return heartrate.Config{
		MinExerciseBPM:   c.HeartRate.MinExerciseBPM,
		DefaultBPM:       c.Subject.DefaultBPM,
		SyntheticSamples: c.HeartRate.SyntheticSamples,
		HistoryWindow:    c.HeartRate.HistoryWindow,
	}
}

// Profile bridges the subject section into the domain type.
func (c *Config) Profile() energy.Profile {
	return energy.Profile{
		WeightKg:    c.Subject.WeightKg,
		BirthYear:   c.Subject.BirthYear,
		VO2Max:      c.Subject.VO2Max,
		FallbackBPM: c.Subject.DefaultBPM,
	}
}

// GeneratorOptions bundles the domain configs for file generation.
func (c *Config) GeneratorOptions() file_generators.Options {
	return file_generators.Options{
		Timeline: c.TimelineConfig(),
		Profile:  c.Profile(),
	}
}
