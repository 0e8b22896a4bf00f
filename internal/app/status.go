package app

import (
	"time"

	"github.com/RomanDataLab/Brazil-flightradar/internal/domain"
)

// TrackerStatus is the assembled operational status of a running tracker,
// as reported to operators and the status endpoint.
type TrackerStatus struct {
	// State is the lifecycle state name ("Running", "Crashed", ...).
	State string

	// Authenticated reports whether upstream credentials are configured.
	Authenticated bool

	// ConsecutiveFailures is the persisted failure count.
	ConsecutiveFailures int

	// FreshnessWindow is the cache acceptance window currently in effect
	// for that failure count.
	FreshnessWindow time.Duration

	// PollInterval is the configured cycle cadence.
	PollInterval time.Duration

	// SnapshotSavedAt is when the persisted snapshot was saved; zero when
	// nothing is persisted.
	SnapshotSavedAt time.Time

	// LastCycle summarizes the most recent completed refresh cycle; nil
	// before the first cycle finishes.
	LastCycle *CycleSummary
}

// CycleSummary condenses a CycleOutcome for status reporting.
type CycleSummary struct {
	// Source is the tier the cycle settled on.
	Source domain.Source

	// Entries is the number of state vectors in the settled view.
	Entries int

	// Reason is the failure reason when the live fetch failed, empty on
	// success.
	Reason string

	// NoUpdate marks a successful fetch that carried zero entries.
	NoUpdate bool

	// Duration is the wall time of the cycle.
	Duration time.Duration

	// CompletedAt is when the cycle finished.
	CompletedAt time.Time
}

// Summarize condenses an outcome and its completion time for status
// reporting.
func Summarize(outcome CycleOutcome, completedAt time.Time) *CycleSummary {
	summary := &CycleSummary{
		Source:      outcome.View.Source,
		Entries:     outcome.View.Len(),
		NoUpdate:    outcome.NoUpdate,
		Duration:    outcome.Duration,
		CompletedAt: completedAt,
	}
	if outcome.Err != nil {
		summary.Reason = domain.FailureReason(outcome.Err)
	}
	return summary
}
