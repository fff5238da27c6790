// Package server is a simulated report backend: it streams scripted progress
// over a websocket and serves fixture reports over REST.
package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/cloudy-poro/scout/internal/fixtures"
	"github.com/cloudy-poro/scout/internal/progress"
)

// Options configures a Server. Zero values fall back to defaults.
type Options struct {
	// Script is streamed to every report client. Defaults to progress.DefaultScript.
	Script progress.Script
	// AnalysisDelay holds REST responses to mimic backend latency.
	AnalysisDelay time.Duration
	// AllowedOrigins restricts websocket origins. Empty allows same-host and loopback.
	AllowedOrigins []string
	// Now stamps generated reports.
	Now func() time.Time
}

type Server struct {
	log            logr.Logger
	script         progress.Script
	reports        *fixtures.Fetcher
	allowedOrigins map[string]bool
	allowedHosts   map[string]bool
}

func New(log logr.Logger, opts Options) *Server {
	s := &Server{
		log:            log.WithName("server"),
		script:         opts.Script,
		reports:        fixtures.NewFetcher(opts.AnalysisDelay),
		allowedOrigins: make(map[string]bool),
		allowedHosts:   make(map[string]bool),
	}
	if s.script == nil {
		s.script = progress.DefaultScript()
	}
	if opts.Now != nil {
		s.reports.Now = opts.Now
	}

	for _, origin := range opts.AllowedOrigins {
		trimmed := strings.TrimSpace(origin)
		if trimmed == "" {
			continue
		}
		s.allowedOrigins[trimmed] = true
		if parsed, err := url.Parse(trimmed); err == nil && parsed.Host != "" {
			s.allowedHosts[parsed.Host] = true
		}
	}
	return s
}

// Handler returns the routed handler with request ids attached.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.SetupRoutes(mux)
	return s.withRequestID(mux)
}

func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /ws/report", s.handleReportWS)
	mux.HandleFunc("GET /api/teams/{id}/analysis", s.handleAnalysis)
	mux.HandleFunc("GET /healthz", s.handleHealth)
}

const requestIDHeader = "X-Request-Id"

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		s.log.V(1).Info("request", "method", r.Method, "path", r.URL.Path, "request", id)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	parsed, err := url.Parse(origin)
	if err != nil || parsed.Host == "" {
		return false
	}
	if len(s.allowedOrigins) > 0 {
		return s.allowedOrigins[origin] || s.allowedHosts[parsed.Host]
	}

	host := parsed.Host
	if host == r.Host {
		return true
	}
	switch parsed.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
