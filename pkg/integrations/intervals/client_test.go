package intervals

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	shared "github.com/liftsync/server/pkg"
)

var fitHeader = []byte{0x0e, 0x10, 0x8e, 0x28, 0x00, 0x00, 0x00, 0x00, '.', 'F', 'I', 'T'}

func TestUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/athlete/i42/activities" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "API_KEY" || pass != "test-key" {
			t.Errorf("Expected basic auth API_KEY/test-key, got %q/%q", user, pass)
		}

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("Failed to parse multipart form: %v", err)
		}
		if got := r.FormValue("name"); got != "Push Day" {
			t.Errorf("Expected name='Push Day', got %q", got)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("Expected file part: %v", err)
		}
		data, _ := io.ReadAll(file)
		if string(data[8:12]) != ".FIT" {
			t.Errorf("Expected FIT payload, got header %q", data[8:12])
		}

		w.Write([]byte(`{"id": "i9000123", "name": "Push Day"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "i42", "test-key", nil)
	id, err := client.Upload(context.Background(), fitHeader, shared.UploadMeta{Title: "Push Day"})
	if err != nil {
		t.Fatalf("Upload failed: %v", err)
	}
	if id != "i9000123" {
		t.Errorf("Expected activity ID i9000123, got %s", id)
	}
}

func TestUploadRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error": "Activity already exists"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "i42", "test-key", nil)
	_, err := client.Upload(context.Background(), fitHeader, shared.UploadMeta{})
	if err == nil {
		t.Fatal("Expected error for rejected upload")
	}
	if !strings.Contains(err.Error(), "422") {
		t.Errorf("Expected status in error, got: %v", err)
	}
}

func TestUploadMissingID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "i42", "test-key", nil)
	_, err := client.Upload(context.Background(), fitHeader, shared.UploadMeta{})
	if err == nil || !strings.Contains(err.Error(), "no activity id") {
		t.Errorf("Expected missing-id error, got: %v", err)
	}
}

func TestNameIsIntervalsPlatform(t *testing.T) {
	if got := NewClient("", "", "", nil).Name(); got != shared.PlatformIntervals {
		t.Errorf("Expected %q, got %q", shared.PlatformIntervals, got)
	}
}
