package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Refresh cycle metrics
	RefreshCycles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refresh_cycles_total",
			Help: "Total number of refresh cycles by the source that ended up on screen",
		},
		[]string{"source"}, // "live", "local_cache", "remote_mirror", "static", "empty"
	)

	RefreshFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "refresh_failures_total",
			Help: "Total number of failed live fetches by reason",
		},
		[]string{"reason"}, // "rate_limited", "unauthorized", "malformed", "upstream"
	)

	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "refresh_duration_seconds",
			Help:    "Duration of full refresh cycles in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	ConsecutiveFailures = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "consecutive_failures",
			Help: "Current number of consecutive live fetch failures",
		},
	)

	LastLiveSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "last_live_success_timestamp",
			Help: "Unix timestamp of the last live fetch that yielded data",
		},
	)

	// Rendered snapshot metrics
	SnapshotEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_entries",
			Help: "Number of state vectors in the currently rendered snapshot",
		},
	)

	SnapshotAge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "snapshot_age_seconds",
			Help: "Age of the rendered snapshot in seconds; -1 when age does not apply (static or empty view)",
		},
	)

	// Mirror metrics
	MirrorPushes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mirror_pushes_total",
			Help: "Total number of snapshot pushes to the remote mirror",
		},
		[]string{"result"}, // "success", "failure"
	)

	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "endpoint"},
	)

	// WebSocket metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	// Lifecycle metrics
	TrackerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tracker_state",
			Help: "Tracker lifecycle state (0=stopped, 1=starting, 2=running, 3=stopping, 4=crashed)",
		},
	)
)

// RecordCycle records one finished refresh cycle.
func RecordCycle(source string, duration time.Duration) {
	RefreshCycles.WithLabelValues(source).Inc()
	RefreshDuration.Observe(duration.Seconds())
}

// RecordLiveSuccess marks a live fetch that yielded data.
func RecordLiveSuccess() {
	LastLiveSuccess.Set(float64(time.Now().Unix()))
	ConsecutiveFailures.Set(0)
}

// RecordFailure records a failed live fetch and the running failure count.
func RecordFailure(reason string, consecutive int) {
	RefreshFailures.WithLabelValues(reason).Inc()
	ConsecutiveFailures.Set(float64(consecutive))
}

// SetSnapshot updates the rendered snapshot gauges. Pass a negative age when
// the view has no meaningful age.
func SetSnapshot(entries int, ageSeconds float64) {
	SnapshotEntries.Set(float64(entries))
	SnapshotAge.Set(ageSeconds)
}

// RecordMirrorPush records the outcome of one mirror push.
func RecordMirrorPush(err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	MirrorPushes.WithLabelValues(result).Inc()
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackWSConnection tracks WebSocket connects and disconnects.
func TrackWSConnection(connected bool) {
	if connected {
		WSConnections.Inc()
	} else {
		WSConnections.Dec()
	}
}

// RecordWSBroadcast records a broadcast fanned out to n clients.
func RecordWSBroadcast(clients int) {
	WSMessagesSent.Add(float64(clients))
}

// SetTrackerState updates the lifecycle state gauge.
func SetTrackerState(state int) {
	TrackerState.Set(float64(state))
}
