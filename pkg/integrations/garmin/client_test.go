package garmin

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDailyHeartRate(t *testing.T) {
	var gotAuth, gotDate string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotDate = r.URL.Query().Get("date")
		w.Write([]byte(`{
			"calendarDate": "2026-03-10",
			"heartRateValues": [
				[1772989200000, 62],
				[1772989320000, null],
				[1772989440000, 0],
				[1772989560000, 118]
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "garmin-token", nil)
	samples, err := client.DailyHeartRate(context.Background(), time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("DailyHeartRate failed: %v", err)
	}

	if gotAuth != "Bearer garmin-token" {
		t.Errorf("Expected bearer auth header, got %q", gotAuth)
	}
	if gotDate != "2026-03-10" {
		t.Errorf("Expected date param 2026-03-10, got %q", gotDate)
	}

	if len(samples) != 2 {
		t.Fatalf("Expected 2 samples (null and zero dropped), got %d", len(samples))
	}
	if samples[0].BPM != 62 || samples[1].BPM != 118 {
		t.Errorf("Unexpected BPM values: %d, %d", samples[0].BPM, samples[1].BPM)
	}
	want := time.UnixMilli(1772989200000).UTC()
	if !samples[0].Timestamp.Equal(want) {
		t.Errorf("Expected timestamp %v, got %v", want, samples[0].Timestamp)
	}
}

func TestDailyHeartRateEmptyDay(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"heartRateValues": null}`))
	}))
	defer server.Close()

	samples, err := NewClient(server.URL, "t", nil).DailyHeartRate(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("Expected empty day to succeed, got: %v", err)
	}
	if len(samples) != 0 {
		t.Errorf("Expected no samples, got %d", len(samples))
	}
}

func TestDailyHeartRateErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("token expired"))
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "t", nil).DailyHeartRate(context.Background(), time.Now())
	if err == nil {
		t.Fatal("Expected error for 403 response")
	}
}
