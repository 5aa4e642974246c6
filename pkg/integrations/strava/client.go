// Package strava uploads generated FIT files to Strava and lists athlete
// activities for reconciliation.
package strava

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"

	shared "github.com/liftsync/server/pkg"
	httputil "github.com/liftsync/server/pkg/infrastructure/http"
)

// Client talks to the Strava API v3. Auth uses a pre-issued access token;
// uploads are processed asynchronously so Upload polls for the result.
type Client struct {
	// PollAttempts and PollInterval bound the upload status poll loop.
	PollAttempts int
	PollInterval time.Duration

	baseURL string
	http    *http.Client
}

// NewClient creates a Strava client authenticating with a static token.
func NewClient(baseURL, accessToken string, logger *slog.Logger) *Client {
	base := httputil.NewClientWithErrorLogging(logger, "strava", 60*time.Second)
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	tokenSource := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})

	httpClient := oauth2.NewClient(ctx, tokenSource)
	httpClient.Timeout = 60 * time.Second

	return &Client{
		PollAttempts: 5,
		PollInterval: 3 * time.Second,
		baseURL:      baseURL,
		http:         httpClient,
	}
}

// Name implements shared.Uploader.
func (c *Client) Name() string {
	return shared.PlatformStrava
}

// UploadStatus is Strava's record of an asynchronous upload.
type UploadStatus struct {
	ID         int64  `json:"id"`
	ExternalID string `json:"external_id"`
	ActivityID int64  `json:"activity_id"`
	Status     string `json:"status"`
	Error      string `json:"error"`
}

// Activity is the subset of a Strava activity the reconciler matches on.
type Activity struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	SportType string    `json:"sport_type"`
	StartDate time.Time `json:"start_date"`
}

// Upload sends a FIT file to Strava and polls until processing yields an
// activity ID or an error. Returns the activity ID as a string, or empty if
// processing had not finished within the allotted poll attempts.
func (c *Client) Upload(ctx context.Context, fitData []byte, meta shared.UploadMeta) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "activity.fit")
	part.Write(fitData)
	writer.WriteField("data_type", "fit")
	if meta.Title != "" {
		writer.WriteField("name", meta.Title)
	}
	if meta.SportType != "" {
		writer.WriteField("sport_type", meta.SportType)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/uploads", body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("Strava API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", httputil.WrapResponseError(resp, "Strava upload failed")
	}

	var status UploadStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return "", fmt.Errorf("failed to decode Strava response: %w", err)
	}

	for attempt := 0; status.ActivityID == 0 && status.Error == ""; attempt++ {
		if attempt >= c.PollAttempts {
			return "", nil
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(c.PollInterval):
		}

		polled, err := c.uploadStatus(ctx, status.ID)
		if err != nil {
			return "", err
		}
		status = *polled
	}

	if status.Error != "" {
		return "", fmt.Errorf("strava rejected upload %d: %s", status.ID, status.Error)
	}
	return strconv.FormatInt(status.ActivityID, 10), nil
}

func (c *Client) uploadStatus(ctx context.Context, uploadID int64) (*UploadStatus, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s/uploads/%d", c.baseURL, uploadID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Strava API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, httputil.WrapResponseError(resp, "Strava upload status failed")
	}

	var status UploadStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode Strava response: %w", err)
	}
	return &status, nil
}

// ListActivities fetches one page of the athlete's activities started after
// the given time, oldest first per the Strava API contract.
func (c *Client) ListActivities(ctx context.Context, after time.Time, perPage int) ([]Activity, error) {
	params := url.Values{}
	params.Set("after", strconv.FormatInt(after.Unix(), 10))
	params.Set("per_page", strconv.Itoa(perPage))

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/athlete/activities?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Strava API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, httputil.WrapResponseError(resp, "Strava activity list failed")
	}

	var activities []Activity
	if err := json.NewDecoder(resp.Body).Decode(&activities); err != nil {
		return nil, fmt.Errorf("failed to decode Strava response: %w", err)
	}
	return activities, nil
}
