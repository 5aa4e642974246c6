package httputil

import (
	"log/slog"
	"net/http"
	"time"
)

// ErrorLoggingTransport is an http.RoundTripper that logs failed requests
// before handing the response back to the caller. Service names the API
// being called so log lines from different integrations stay distinguishable.
type ErrorLoggingTransport struct {
	// Base is the RoundTripper used to make the actual HTTP requests.
	// If nil, http.DefaultTransport is used.
	Base http.RoundTripper

	Logger  *slog.Logger
	Service string
}

func (t *ErrorLoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	resp, err := base.RoundTrip(req)
	if err != nil {
		if t.Logger != nil {
			t.Logger.Error("HTTP request failed", "service", t.Service, "method", req.Method, "url", req.URL.String(), "error", err)
		}
		return nil, err
	}

	if resp.StatusCode >= 400 && t.Logger != nil {
		t.Logger.Warn("HTTP request returned error status", "service", t.Service, "method", req.Method, "url", req.URL.String(), "status", resp.StatusCode)
	}

	return resp, nil
}

// NewClientWithErrorLogging creates an HTTP client whose transport logs
// request failures and error statuses for the named service.
func NewClientWithErrorLogging(logger *slog.Logger, service string, timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &ErrorLoggingTransport{
			Logger:  logger,
			Service: service,
		},
	}
}
