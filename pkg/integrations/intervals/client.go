// Package intervals uploads generated FIT files to intervals.icu.
package intervals

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	shared "github.com/liftsync/server/pkg"
	httputil "github.com/liftsync/server/pkg/infrastructure/http"
)

// Client talks to the intervals.icu API. Auth is HTTP basic with the
// literal username API_KEY and the athlete's key as the password.
type Client struct {
	baseURL   string
	athleteID string
	apiKey    string
	http      *http.Client
}

// NewClient creates an intervals.icu client for one athlete.
func NewClient(baseURL, athleteID, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		baseURL:   baseURL,
		athleteID: athleteID,
		apiKey:    apiKey,
		http:      httputil.NewClientWithErrorLogging(logger, "intervals", 60*time.Second),
	}
}

// Name implements shared.Uploader.
func (c *Client) Name() string {
	return shared.PlatformIntervals
}

// Upload sends a FIT file to intervals.icu. Unlike Strava the upload is
// processed synchronously, so the created activity ID comes straight back.
func (c *Client) Upload(ctx context.Context, fitData []byte, meta shared.UploadMeta) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", "activity.fit")
	part.Write(fitData)
	if meta.Title != "" {
		writer.WriteField("name", meta.Title)
	}
	writer.Close()

	url := fmt.Sprintf("%s/athlete/%s/activities", c.baseURL, c.athleteID)
	req, err := http.NewRequestWithContext(ctx, "POST", url, body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.SetBasicAuth("API_KEY", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("intervals.icu request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", httputil.WrapResponseError(resp, "intervals.icu upload failed")
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("failed to decode intervals.icu response: %w", err)
	}
	if created.ID == "" {
		return "", fmt.Errorf("intervals.icu returned no activity id")
	}
	return created.ID, nil
}
