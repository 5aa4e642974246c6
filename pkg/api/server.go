// Package api serves the LiftSync status endpoints: recent runs, recent
// sync-log entries, and a manual run trigger.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	shared "github.com/liftsync/server/pkg"
	"github.com/liftsync/server/pkg/pipeline"
)

// maxListLimit caps the ?limit= query parameter on listing endpoints.
const maxListLimit = 100

// Store is the slice of the database the status endpoints read.
type Store interface {
	RecentRuns(ctx context.Context, limit int) ([]*shared.SyncRun, error)
	RecentSyncs(ctx context.Context, limit int) ([]*shared.ActivitySync, error)
}

// Runner triggers a pipeline run.
type Runner interface {
	Run(ctx context.Context, triggeredBy string) (*pipeline.RunReport, error)
}

// Server holds dependencies for the HTTP handlers.
type Server struct {
	store  Store
	runner Runner
	apiKey string
	logger *slog.Logger
	router chi.Router

	runMu sync.Mutex
}

// New creates a Server with all routes configured. An empty apiKey leaves
// the trigger endpoint open, which suits localhost deployments.
func New(store Store, runner Runner, apiKey string, logger *slog.Logger) *Server {
	s := &Server{
		store:  store,
		runner: runner,
		apiKey: apiKey,
		logger: logger,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.logger))

	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/api/runs", s.handleRuns)
	s.router.Get("/api/syncs", s.handleSyncs)

	s.router.Group(func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(APIKeyAuth(s.apiKey))
		}
		r.Post("/api/sync", s.handleTriggerSync)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.store.RecentRuns(r.Context(), limitParam(r, 20))
	if err != nil {
		s.logger.Error("Listing runs failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if runs == nil {
		runs = []*shared.SyncRun{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleSyncs(w http.ResponseWriter, r *http.Request) {
	syncs, err := s.store.RecentSyncs(r.Context(), limitParam(r, 50))
	if err != nil {
		s.logger.Error("Listing syncs failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if syncs == nil {
		syncs = []*shared.ActivitySync{}
	}
	writeJSON(w, http.StatusOK, syncs)
}

type runResponse struct {
	RunID   string          `json:"run_id,omitempty"`
	Skipped bool            `json:"skipped"`
	Stats   shared.RunStats `json:"stats"`
	Errors  []string        `json:"errors,omitempty"`
}

// handleTriggerSync runs the pipeline inline and returns its report. A
// second trigger while one is in flight gets 409 rather than queueing. The
// run keeps the request's values but not its cancelation, so a dropped
// client connection does not abandon a half-finished run.
func (s *Server) handleTriggerSync(w http.ResponseWriter, r *http.Request) {
	if s.runner == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "sync trigger not configured"})
		return
	}
	if !s.runMu.TryLock() {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "a sync run is already in progress"})
		return
	}
	defer s.runMu.Unlock()

	report, err := s.runner.Run(context.WithoutCancel(r.Context()), shared.TriggerAPI)
	if err != nil {
		s.logger.Error("Triggered run failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, runResponse{
		RunID:   report.RunID,
		Skipped: report.Skipped,
		Stats:   report.Stats,
		Errors:  report.Errors,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// limitParam reads ?limit= with a default. Non-numeric or non-positive
// values fall back to the default.
func limitParam(r *http.Request, def int) int {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	if n > maxListLimit {
		return maxListLimit
	}
	return n
}
