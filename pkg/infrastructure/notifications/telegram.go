// Package notifications delivers pipeline run summaries to a Telegram chat.
package notifications

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	shared "github.com/liftsync/server/pkg"
)

// TelegramNotifier sends messages to a fixed chat.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *TelegramNotifier) Send(ctx context.Context, text string) error {
	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = "Markdown"
	if _, err := n.bot.Send(msg); err != nil {
		return fmt.Errorf("sending telegram message: %w", err)
	}
	return nil
}

// NoopNotifier stands in when Telegram is not configured.
type NoopNotifier struct{}

func (NoopNotifier) Send(ctx context.Context, text string) error {
	return nil
}

// FormatRunSummary renders a pipeline run as a Markdown message.
func FormatRunSummary(run *shared.SyncRun) string {
	var b strings.Builder

	switch run.Status {
	case shared.RunStatusSuccess:
		b.WriteString("*LiftSync run complete*\n")
	default:
		fmt.Fprintf(&b, "*LiftSync run %s*\n", run.Status)
	}

	s := run.Stats
	fmt.Fprintf(&b, "Workouts: %d fetched, %d synced", s.WorkoutsFetched, s.WorkoutsSynced)
	if s.WorkoutsSkipped > 0 {
		fmt.Fprintf(&b, ", %d skipped", s.WorkoutsSkipped)
	}
	if s.WorkoutsFailed > 0 {
		fmt.Fprintf(&b, ", %d failed", s.WorkoutsFailed)
	}
	b.WriteString("\n")

	if s.Calories > 0 {
		fmt.Fprintf(&b, "Calories: %s\n", formatWithCommas(float64(s.Calories), " kcal"))
	}
	if len(s.HRSources) > 0 {
		fmt.Fprintf(&b, "Heart rate: %s\n", formatSourceMix(s.HRSources))
	}
	if s.Reconciled > 0 {
		fmt.Fprintf(&b, "Reconciled: %d external\n", s.Reconciled)
	}
	if run.Error != "" {
		fmt.Fprintf(&b, "Error: %s\n", run.Error)
	}

	return strings.TrimRight(b.String(), "\n")
}

// formatWithCommas formats a number with thousand separators and appends a unit
func formatWithCommas(n float64, unit string) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%.0f%s", n, unit)
}

func formatSourceMix(sources map[string]int) string {
	keys := make([]string, 0, len(sources))
	for k := range sources {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s ×%d", k, sources[k])
	}
	return strings.Join(parts, ", ")
}
