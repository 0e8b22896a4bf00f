package domain

import "time"

// TrackerState is the persisted slot that survives restarts: the most recent
// successfully-fetched snapshot, when it was saved locally, and how many
// consecutive fetch failures have been recorded since that save.
type TrackerState struct {
	// Snapshot is the last saved snapshot; nil until the first successful
	// save or after a Clear.
	Snapshot *Snapshot `json:"snapshot,omitempty"`

	// SavedAt is the local wall-clock time of the save. It drives freshness
	// decisions and is distinct from Snapshot.CapturedAt, which is the
	// upstream capture time.
	SavedAt time.Time `json:"saved_at,omitempty"`

	// ConsecutiveFailures counts fetch failures recorded since the last
	// successful save. Reset to zero by every save; incremented by every
	// recorded failure; untouched by reads and by Clear.
	ConsecutiveFailures int `json:"consecutive_failures"`
}

// HasSnapshot reports whether a snapshot was ever saved and not cleared.
func (s TrackerState) HasSnapshot() bool {
	return s.Snapshot != nil && !s.SavedAt.IsZero()
}

// Age returns how long ago the snapshot was saved, relative to now.
// Meaningless when HasSnapshot is false.
func (s TrackerState) Age(now time.Time) time.Duration {
	return now.Sub(s.SavedAt)
}

// Cached pairs a snapshot with its age at read time, as handed to callers by
// the state repository.
type Cached struct {
	Snapshot *Snapshot
	Age      time.Duration
}
