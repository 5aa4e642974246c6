// Package hevy is a read-only client for the Hevy API v1, used to pull
// logged workouts for syncing.
package hevy

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	shared "github.com/liftsync/server/pkg"
	"github.com/liftsync/server/pkg/domain/workout"
	httputil "github.com/liftsync/server/pkg/infrastructure/http"
)

// DefaultPageSize matches the page size used for incremental syncs: the
// scheduled run only looks at the most recent page of workouts.
const DefaultPageSize = 10

// Client talks to the Hevy API. All endpoints require the account API key
// sent in the api-key header.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewClient creates a Hevy API client.
func NewClient(baseURL, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    httputil.NewClientWithErrorLogging(logger, "hevy", 30*time.Second),
	}
}

// WorkoutPage is one page of the workouts listing. Workouts are kept as raw
// JSON so the exact payload can be stored and parsed later.
type WorkoutPage struct {
	PageCount int               `json:"page_count"`
	Workouts  []json.RawMessage `json:"workouts"`
}

// WorkoutEvent is an entry from the workout events feed. Type is "updated"
// or "deleted"; only updated events carry a workout body.
type WorkoutEvent struct {
	Type    string          `json:"type"`
	Workout json.RawMessage `json:"workout"`
}

// WorkoutCount returns the total number of workouts on the account.
func (c *Client) WorkoutCount(ctx context.Context) (int, error) {
	var out struct {
		WorkoutCount int `json:"workout_count"`
	}
	if err := c.get(ctx, "/workouts/count", nil, &out); err != nil {
		return 0, err
	}
	return out.WorkoutCount, nil
}

// Workouts fetches one page of workouts, most recent first.
func (c *Client) Workouts(ctx context.Context, page, pageSize int) (*WorkoutPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(pageSize))

	var out WorkoutPage
	if err := c.get(ctx, "/workouts", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// WorkoutEvents fetches one page of the events feed for incremental sync.
// Returns the events plus the total page count.
func (c *Client) WorkoutEvents(ctx context.Context, since time.Time, page, pageSize int) ([]WorkoutEvent, int, error) {
	params := url.Values{}
	params.Set("since", since.UTC().Format(time.RFC3339))
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(pageSize))

	var out struct {
		PageCount int            `json:"page_count"`
		Events    []WorkoutEvent `json:"events"`
	}
	if err := c.get(ctx, "/workouts/events", params, &out); err != nil {
		return nil, 0, err
	}
	return out.Events, out.PageCount, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("Hevy API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return httputil.WrapResponseError(resp, "Hevy API error")
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode Hevy response: %w", err)
	}
	return nil
}

// DecodeWorkout wraps a raw Hevy workout JSON body into a shared.RawWorkout
// envelope, pulling out the fields the sync pipeline filters on.
func DecodeWorkout(raw json.RawMessage) (*shared.RawWorkout, error) {
	var head struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	}
	if err := json.Unmarshal(raw, &head); err != nil {
		return nil, fmt.Errorf("failed to decode workout envelope: %w", err)
	}
	if head.ID == "" {
		return nil, fmt.Errorf("workout has no id")
	}

	start, err := workout.ParseTimestamp(head.StartTime)
	if err != nil {
		return nil, fmt.Errorf("workout %s: %w", head.ID, err)
	}
	end, err := workout.ParseTimestamp(head.EndTime)
	if err != nil {
		return nil, fmt.Errorf("workout %s: %w", head.ID, err)
	}

	return &shared.RawWorkout{
		Source:    shared.PlatformHevy,
		SourceID:  head.ID,
		Title:     head.Title,
		StartTime: start,
		EndTime:   end,
		Payload:   raw,
		FetchedAt: time.Now().UTC(),
	}, nil
}
