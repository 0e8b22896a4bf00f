// Package api serves the tracker to the browser map UI: the JSON endpoints
// the render layer polls, the WebSocket event stream, prometheus metrics,
// and the static UI bundle.
package api

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RomanDataLab/Brazil-flightradar/internal/app"
	"github.com/RomanDataLab/Brazil-flightradar/internal/domain"
	"github.com/RomanDataLab/Brazil-flightradar/internal/metrics"
	"github.com/RomanDataLab/Brazil-flightradar/internal/ports"
	"github.com/RomanDataLab/Brazil-flightradar/internal/ws"
)

// Tracker is the server's view of the running tracker.
type Tracker interface {
	// Current returns the view the last refresh cycle settled on.
	Current() domain.RenderView

	// Status assembles the operational status.
	Status(ctx context.Context) (app.TrackerStatus, error)

	// RefreshNow runs one refresh cycle immediately. Returns
	// domain.ErrAlreadyRunning when a cycle is already in flight.
	RefreshNow(ctx context.Context) error
}

// Config holds the serving knobs.
type Config struct {
	// WebDir is the directory holding the built map UI. Static serving is
	// disabled when the directory does not exist.
	WebDir string

	// AllowedOrigins lists origins accepted for WebSocket upgrades besides
	// same-host requests.
	AllowedOrigins []string
}

// Server exposes the tracker over HTTP.
type Server struct {
	config  Config
	tracker Tracker
	hub     *ws.Hub
	logger  ports.Logger
}

// NewServer creates a server. hub may be nil, in which case the event
// stream endpoint reports unavailable.
func NewServer(config Config, tracker Tracker, hub *ws.Hub, logger ports.Logger) *Server {
	return &Server{
		config:  config,
		tracker: tracker,
		hub:     hub,
		logger:  logger,
	}
}

// Router assembles the HTTP handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// The event stream stays outside the metrics group: the wrapped
		// response writer would break the connection hijack.
		r.Group(func(r chi.Router) {
			r.Use(requestMetrics)
			r.Get("/aircraft", s.handleAircraft)
			r.Get("/status", s.handleStatus)
			r.Post("/refresh", s.handleRefresh)
		})
		r.Get("/events", s.handleEvents)
	})

	if s.staticEnabled() {
		r.Get("/*", s.serveStaticOrIndex)
	}

	return r
}

func (s *Server) staticEnabled() bool {
	if s.config.WebDir == "" {
		return false
	}
	info, err := os.Stat(s.config.WebDir)
	if err != nil || !info.IsDir() {
		s.logger.Warn("web dir not found, static serving disabled",
			ports.String("web_dir", s.config.WebDir))
		return false
	}
	return true
}

// requestMetrics records method, endpoint and status for the JSON API.
func requestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.RecordAPIRequest(r.Method, r.URL.Path, status, time.Since(start))
	})
}
