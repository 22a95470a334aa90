package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/Mordokay/StreamSound/pkg/extractor"
	"github.com/Mordokay/StreamSound/pkg/models"
	"github.com/Mordokay/StreamSound/pkg/resolver"
)

// Resolver is the single operation the server fronts.
type Resolver interface {
	Resolve(ctx context.Context, req resolver.Request) (*models.ResolveResponse, error)
}

type Server struct {
	Port     int
	Resolver Resolver
	// Limiter admits requests to /resolve; nil disables limiting.
	Limiter *rate.Limiter
	// ProbeDefault applies when a request carries no probe parameter.
	ProbeDefault bool

	started time.Time
}

// Handler builds the route table. It is exposed separately from Start so
// the CGI entrypoint and tests can serve requests without binding a port.
func (s *Server) Handler(enableWeb bool) http.Handler {
	if s.started.IsZero() {
		s.started = time.Now()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/resolve", s.rateLimit(s.handleResolve))
	mux.HandleFunc("/healthz", s.handleHealth)

	if enableWeb {
		mux.HandleFunc("/", s.handleWebIndex)
	}

	return mux
}

func (s *Server) Start(enableWeb bool) error {
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("Starting API server", "addr", fmt.Sprintf("http://localhost:%d", s.Port), "web_ui", enableWeb)
	return http.ListenAndServe(addr, s.Handler(enableWeb))
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	allowCORS(w)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	q := r.URL.Query()
	rawURL := q.Get("url")
	if rawURL == "" {
		s.respondError(w, http.StatusBadRequest, "Missing required query parameter: url")
		return
	}

	preferHLS := truthy(q.Get("prefer_hls"))
	probe := s.ProbeDefault
	if v := q.Get("probe"); v != "" {
		probe = truthy(v)
	}

	requestID := uuid.NewString()
	slog.Info("resolve request", "request_id", requestID, "url", rawURL, "prefer_hls", preferHLS, "remote", r.RemoteAddr)

	resp, err := s.Resolver.Resolve(r.Context(), resolver.Request{
		URL:       rawURL,
		PreferHLS: preferHLS,
		Probe:     probe,
	})
	if err != nil {
		status := statusForError(err)
		slog.Error("resolve failed", "request_id", requestID, "status", status, "err", err)
		s.respondError(w, status, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	allowCORS(w)
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(s.started).Round(time.Second).String(),
	})
}

// statusForError maps the extractor's error taxonomy to HTTP statuses.
// A tool that ran and said no is a bad gateway; everything else on the
// server side of the contract is a plain 500.
func statusForError(err error) int {
	var execErr *extractor.ExecError
	if errors.As(err, &execErr) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// truthy matches exactly the accepted flag spellings; "TRUE" or "on" are
// deliberately false.
func truthy(v string) bool {
	return v == "1" || v == "true" || v == "yes"
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	allowCORS(w)
	s.respondJSON(w, status, models.ErrorResponse{OK: false, Error: msg})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if jerr := json.NewEncoder(w).Encode(data); jerr != nil {
		slog.Error("JSON encoding failed", "error", jerr)
	}
}
