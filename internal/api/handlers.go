package api

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"github.com/RomanDataLab/Brazil-flightradar/internal/domain"
	"github.com/RomanDataLab/Brazil-flightradar/internal/ports"
	"github.com/RomanDataLab/Brazil-flightradar/internal/ws"
)

// aircraftResponse is the wire shape of GET /api/v1/aircraft.
type aircraftResponse struct {
	Source     domain.Source        `json:"source"`
	CapturedAt int64                `json:"captured_at,omitempty"`
	AgeSeconds *int64               `json:"age_seconds"`
	Reason     string               `json:"reason,omitempty"`
	Count      int                  `json:"count"`
	States     []domain.StateVector `json:"states"`
}

// statusResponse is the wire shape of GET /api/v1/status.
type statusResponse struct {
	State                  string        `json:"state"`
	Authenticated          bool          `json:"authenticated"`
	ConsecutiveFailures    int           `json:"consecutive_failures"`
	FreshnessWindowSeconds int64         `json:"freshness_window_seconds"`
	PollIntervalSeconds    int64         `json:"poll_interval_seconds"`
	SnapshotSavedAt        string        `json:"snapshot_saved_at,omitempty"`
	LastCycle              *cycleSummary `json:"last_cycle,omitempty"`
}

type cycleSummary struct {
	Source      string `json:"source"`
	Entries     int    `json:"entries"`
	Reason      string `json:"reason,omitempty"`
	NoUpdate    bool   `json:"no_update,omitempty"`
	DurationMS  int64  `json:"duration_ms"`
	CompletedAt string `json:"completed_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", ports.Err(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAircraft(w http.ResponseWriter, r *http.Request) {
	view := s.tracker.Current()
	s.writeJSON(w, http.StatusOK, aircraftResponse{
		Source:     view.Source,
		CapturedAt: view.CapturedAt,
		AgeSeconds: view.AgeSeconds,
		Reason:     view.Reason,
		Count:      view.Len(),
		States:     view.States,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.tracker.Status(r.Context())
	if err != nil {
		s.logger.Error("assemble status", ports.Err(err))
		s.writeError(w, http.StatusInternalServerError, "status unavailable")
		return
	}

	resp := statusResponse{
		State:                  status.State,
		Authenticated:          status.Authenticated,
		ConsecutiveFailures:    status.ConsecutiveFailures,
		FreshnessWindowSeconds: int64(status.FreshnessWindow.Seconds()),
		PollIntervalSeconds:    int64(status.PollInterval.Seconds()),
	}
	if !status.SnapshotSavedAt.IsZero() {
		resp.SnapshotSavedAt = status.SnapshotSavedAt.UTC().Format(time.RFC3339)
	}
	if status.LastCycle != nil {
		resp.LastCycle = &cycleSummary{
			Source:      string(status.LastCycle.Source),
			Entries:     status.LastCycle.Entries,
			Reason:      status.LastCycle.Reason,
			NoUpdate:    status.LastCycle.NoUpdate,
			DurationMS:  status.LastCycle.Duration.Milliseconds(),
			CompletedAt: status.LastCycle.CompletedAt.UTC().Format(time.RFC3339),
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleRefresh triggers a cycle on demand. The cycle runs within the
// request; 202 still fits since the result is published out of band.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	err := s.tracker.RefreshNow(r.Context())
	switch {
	case errors.Is(err, domain.ErrAlreadyRunning):
		s.writeError(w, http.StatusConflict, "refresh already in flight")
	case err != nil:
		s.logger.Error("manual refresh", ports.Err(err))
		s.writeError(w, http.StatusInternalServerError, "refresh failed")
	default:
		s.writeJSON(w, http.StatusAccepted, map[string]string{"status": "refreshed"})
	}
}

func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		s.writeError(w, http.StatusServiceUnavailable, "event stream unavailable")
		return
	}

	upgrader := s.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the error response.
		s.logger.Warn("websocket upgrade failed", ports.Err(err))
		return
	}

	client := ws.NewClient(s.hub, conn, s.logger)
	client.Start()
}

func (s *Server) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      s.checkOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkOrigin accepts same-host upgrades and the configured extra origins.
// Browser WebSockets always carry an Origin header; requests without one
// are rejected rather than waved through.
func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		s.logger.Warn("websocket rejected: missing origin header")
		return false
	}

	if u, err := url.Parse(origin); err == nil && strings.EqualFold(u.Host, r.Host) {
		return true
	}

	for _, allowed := range s.config.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}

	s.logger.Warn("websocket rejected: origin not allowed", ports.String("origin", origin))
	return false
}
