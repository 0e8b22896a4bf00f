package ports

import (
	"context"

	"github.com/RomanDataLab/Brazil-flightradar/internal/domain"
)

// StateRepository persists the last good snapshot and the consecutive-failure
// counter across restarts. Implementations write atomically (temp file, then
// rename) so a crash never leaves a half-written slot, and apply the
// freshness policy on Load.
type StateRepository interface {
	// Save persists the snapshot and resets the failure counter to zero.
	// Empty snapshots are ignored: the previous slot (and its failure
	// count) stays untouched and Save returns nil. When storage is full
	// the implementation clears its own slot and retries once before
	// giving up.
	Save(ctx context.Context, snap *domain.Snapshot) error

	// Load returns the saved snapshot if it is inside the freshness window
	// for the currently recorded failure count. Returns (nil, nil) when no
	// snapshot is stored or the stored one is too old. Returns an error
	// only for actual read failures.
	Load(ctx context.Context) (*domain.Cached, error)

	// LoadEmergency returns the saved snapshot regardless of age.
	// Returns (nil, nil) when nothing is stored.
	LoadEmergency(ctx context.Context) (*domain.Cached, error)

	// Clear removes the saved snapshot but keeps the failure counter.
	Clear(ctx context.Context) error

	// RecordFailure increments the persisted failure counter and returns
	// the new count. The incremented count is visible to any Load issued
	// afterwards, including within the same refresh cycle.
	RecordFailure(ctx context.Context) (int, error)

	// State returns the raw persisted state for status reporting.
	State(ctx context.Context) (domain.TrackerState, error)
}
