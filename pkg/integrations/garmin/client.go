// Package garmin fetches daily wellness data from Garmin Connect.
package garmin

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/liftsync/server/pkg/domain/heartrate"
	httputil "github.com/liftsync/server/pkg/infrastructure/http"
)

// Client talks to the Garmin Connect API with a pre-issued access token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a Garmin Connect client.
func NewClient(baseURL, token string, logger *slog.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    httputil.NewClientWithErrorLogging(logger, "garmin", 30*time.Second),
	}
}

// DailyHeartRate fetches the watch-recorded heart-rate series for one
// calendar day. The wire format is pairs of [epochMillis, bpm]; entries with
// a null or non-positive reading are dropped.
func (c *Client) DailyHeartRate(ctx context.Context, day time.Time) ([]heartrate.Sample, error) {
	reqURL := fmt.Sprintf("%s/wellness-service/wellness/dailyHeartRate?date=%s", c.baseURL, day.Format("2006-01-02"))

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Garmin API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, httputil.WrapResponseError(resp, "Garmin API error")
	}

	var out struct {
		HeartRateValues [][2]*float64 `json:"heartRateValues"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode Garmin response: %w", err)
	}

	samples := make([]heartrate.Sample, 0, len(out.HeartRateValues))
	for _, entry := range out.HeartRateValues {
		if entry[0] == nil || entry[1] == nil {
			continue
		}
		bpm := int(*entry[1])
		if bpm <= 0 {
			continue
		}
		samples = append(samples, heartrate.Sample{
			Timestamp: time.UnixMilli(int64(*entry[0])).UTC(),
			BPM:       bpm,
		})
	}
	return samples, nil
}
