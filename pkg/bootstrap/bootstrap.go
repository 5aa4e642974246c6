// Package bootstrap wires the shared infrastructure for the sync binaries:
// structured logging and the Service dependency container.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	shared "github.com/liftsync/server/pkg"
	"github.com/liftsync/server/pkg/config"
	"github.com/liftsync/server/pkg/infrastructure/database"
	"github.com/liftsync/server/pkg/infrastructure/notifications"
	"github.com/liftsync/server/pkg/infrastructure/sentry"
	"github.com/liftsync/server/pkg/infrastructure/state"
	"github.com/liftsync/server/pkg/infrastructure/storage"
	"github.com/liftsync/server/pkg/integrations/garmin"
	"github.com/liftsync/server/pkg/integrations/hevy"
	"github.com/liftsync/server/pkg/integrations/intervals"
	"github.com/liftsync/server/pkg/integrations/strava"
)

// Service holds initialized dependencies. Integration clients are nil when
// their credentials are not configured; the pipeline skips those stages.
type Service struct {
	DB       shared.Database
	State    shared.StateStore
	Store    shared.ArtifactStore
	Notifier shared.Notifier

	Hevy      *hevy.Client
	Garmin    *garmin.Client
	Strava    *strava.Client
	Intervals *intervals.Client

	Config *config.Config
}

// GetSlogHandlerOptions returns the standard handler options: message and
// severity keys instead of slog's defaults.
func GetSlogHandlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.MessageKey {
				return slog.Attr{Key: "message", Value: a.Value}
			}
			if a.Key == slog.LevelKey {
				return slog.Attr{Key: "severity", Value: a.Value}
			}
			return a
		},
	}
}

// ComponentHandler wraps a slog.Handler to prepend [component] to the message
type ComponentHandler struct {
	slog.Handler
	component string
}

// WithGroup implements slog.Handler
func (h *ComponentHandler) WithGroup(name string) slog.Handler {
	return &ComponentHandler{
		Handler:   h.Handler.WithGroup(name),
		component: h.component,
	}
}

// WithAttrs implements slog.Handler
func (h *ComponentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newComp := h.component
	for _, a := range attrs {
		if a.Key == "component" {
			newComp = a.Value.String()
		}
	}
	return &ComponentHandler{
		Handler:   h.Handler.WithAttrs(attrs),
		component: newComp,
	}
}

// Handle implements slog.Handler
func (h *ComponentHandler) Handle(ctx context.Context, r slog.Record) error {
	comp := h.component

	// A component attribute on the record itself wins.
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "component" {
			comp = a.Value.String()
			return false
		}
		return true
	})

	if comp != "" {
		newMsg := fmt.Sprintf("[%s] %s", comp, r.Message)
		newRecord := slog.NewRecord(r.Time, r.Level, newMsg, r.PC)

		// Keep the component attribute in the structured payload too.
		r.Attrs(func(a slog.Attr) bool {
			newRecord.AddAttrs(a)
			return true
		})
		r = newRecord
	}

	return h.Handler.Handle(ctx, r)
}

// InitLogger configures the default logger with the standard key schema.
func InitLogger() {
	opts := GetSlogHandlerOptions(slog.LevelInfo)
	handler := slog.NewJSONHandler(os.Stdout, opts)
	logger := slog.New(&ComponentHandler{Handler: handler})
	slog.SetDefault(logger)
}

// NewLogger creates a configured logger instance writing to stdout.
func NewLogger(serviceName string) *slog.Logger {
	return NewLoggerTo(os.Stdout, serviceName)
}

// NewLoggerTo creates a configured logger instance writing to w. The level
// comes from the LOG_LEVEL environment variable, defaulting to info.
func NewLoggerTo(w io.Writer, serviceName string) *slog.Logger {
	logLevelStr := os.Getenv("LOG_LEVEL")
	var level slog.Level
	switch strings.ToLower(logLevelStr) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := GetSlogHandlerOptions(level)
	handler := slog.NewJSONHandler(w, opts)
	return slog.New(&ComponentHandler{Handler: handler}).With("service", serviceName)
}

// LogWriter returns stdout, teed into a size-rotated log file when one is
// configured. The daemon uses this; one-shot commands log to stdout only.
func LogWriter(cfg config.LogConfig) io.Writer {
	if cfg.File == "" {
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		LocalTime:  false,
		Compress:   true,
	})
}

// NewService initializes all standard dependencies from the configuration.
func NewService(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Service, error) {
	if err := sentry.Init(sentry.Config{
		DSN:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		Release:     cfg.Sentry.Release,
	}, logger); err != nil {
		return nil, fmt.Errorf("sentry init: %w", err)
	}

	db, err := database.New(ctx, cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("database init: %w", err)
	}

	manifest, err := state.Open(cfg.State.Path)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("state init: %w", err)
	}

	svc := &Service{
		DB:     db,
		State:  manifest,
		Store:  storage.NewLocalStore(cfg.Artifacts.Dir),
		Config: cfg,
	}

	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != 0 {
		notifier, err := notifications.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			svc.Close()
			return nil, fmt.Errorf("telegram init: %w", err)
		}
		svc.Notifier = notifier
	} else {
		logger.Info("Telegram not configured, notifications disabled")
		svc.Notifier = notifications.NoopNotifier{}
	}

	if cfg.Hevy.APIKey != "" {
		svc.Hevy = hevy.NewClient(cfg.Hevy.BaseURL, cfg.Hevy.APIKey, logger)
	} else {
		logger.Info("Hevy not configured, workout fetch disabled")
	}

	if cfg.Garmin.Token != "" {
		svc.Garmin = garmin.NewClient(cfg.Garmin.BaseURL, cfg.Garmin.Token, logger)
	} else {
		logger.Info("Garmin not configured, daily health fetch disabled")
	}

	if cfg.Strava.AccessToken != "" {
		svc.Strava = strava.NewClient(cfg.Strava.BaseURL, cfg.Strava.AccessToken, logger)
		svc.Strava.PollAttempts = cfg.Strava.PollAttempts
		svc.Strava.PollInterval = time.Duration(cfg.Strava.PollIntervalSeconds) * time.Second
	} else {
		logger.Info("Strava not configured, uploads disabled")
	}

	if cfg.Intervals.AthleteID != "" && cfg.Intervals.APIKey != "" {
		svc.Intervals = intervals.NewClient(cfg.Intervals.BaseURL, cfg.Intervals.AthleteID, cfg.Intervals.APIKey, logger)
	}

	return svc, nil
}

// Close releases the service's persistent resources.
func (s *Service) Close() {
	if s.State != nil {
		s.State.Close()
	}
	if s.DB != nil {
		s.DB.Close()
	}
}
