package fs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/goccy/go-json"

	"github.com/RomanDataLab/Brazil-flightradar/internal/domain"
	"github.com/RomanDataLab/Brazil-flightradar/internal/ports"
)

const stateFileName = "snapshot.json"

// StateFileRepository implements ports.StateRepository using a single JSON
// slot on disk. Every mutation is a read-modify-write under a lock and lands
// via temp file plus rename, so a crash never leaves a torn slot.
type StateFileRepository struct {
	dir    string
	policy domain.FreshnessPolicy
	logger ports.Logger

	mu sync.Mutex

	// writeFile is swapped by tests to simulate a full medium.
	writeFile func(name string, data []byte, perm os.FileMode) error
}

// NewStateFileRepository creates a repository rooted at dir. The directory is
// created on first save.
func NewStateFileRepository(dir string, policy domain.FreshnessPolicy, logger ports.Logger) *StateFileRepository {
	return &StateFileRepository{
		dir:       dir,
		policy:    policy,
		logger:    logger,
		writeFile: os.WriteFile,
	}
}

// Save persists the snapshot with the current wall-clock time and a zeroed
// failure counter. Empty snapshots are skipped so a quiet upstream never
// evicts the last useful data. When the medium is full the slot is cleared
// and the write retried once.
func (r *StateFileRepository) Save(ctx context.Context, snap *domain.Snapshot) error {
	if snap.Empty() {
		r.logger.Debug("skipping save of empty snapshot")
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	state := domain.TrackerState{
		Snapshot: snap,
		SavedAt:  time.Now().UTC(),
	}

	err := r.writeState(state)
	if err != nil && errors.Is(err, syscall.ENOSPC) {
		r.logger.Warn("storage full, clearing slot and retrying save", ports.Err(err))
		if rmErr := os.Remove(r.Path()); rmErr != nil && !os.IsNotExist(rmErr) {
			return err
		}
		_ = os.Remove(r.Path() + ".tmp")
		err = r.writeState(state)
	}
	if err != nil {
		return err
	}

	r.logger.Debug("snapshot saved",
		ports.Int("entries", snap.Len()),
		ports.Int64("captured_at", snap.CapturedAt))
	return nil
}

// Load returns the saved snapshot when it is still inside the freshness
// window for the recorded failure count, (nil, nil) otherwise.
func (r *StateFileRepository) Load(ctx context.Context) (*domain.Cached, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, err := r.readState()
	if err != nil {
		return nil, err
	}
	if !state.HasSnapshot() {
		return nil, nil
	}

	age := state.Age(time.Now())
	if !r.policy.Fresh(age, state.ConsecutiveFailures) {
		r.logger.Debug("cached snapshot outside freshness window",
			ports.Duration("age", age),
			ports.Int("failures", state.ConsecutiveFailures))
		return nil, nil
	}

	return &domain.Cached{Snapshot: state.Snapshot, Age: age}, nil
}

// LoadEmergency returns the saved snapshot regardless of its age.
func (r *StateFileRepository) LoadEmergency(ctx context.Context) (*domain.Cached, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, err := r.readState()
	if err != nil {
		return nil, err
	}
	if !state.HasSnapshot() {
		return nil, nil
	}

	return &domain.Cached{Snapshot: state.Snapshot, Age: state.Age(time.Now())}, nil
}

// Clear drops the snapshot but keeps the failure counter, so freshness
// decisions after a clear still reflect upstream health.
func (r *StateFileRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, err := r.readState()
	if err != nil {
		return err
	}
	if !state.HasSnapshot() && state.ConsecutiveFailures == 0 {
		return nil
	}

	return r.writeState(domain.TrackerState{ConsecutiveFailures: state.ConsecutiveFailures})
}

// RecordFailure increments the persisted failure counter and returns the new
// count. The stored snapshot and its save time are untouched.
func (r *StateFileRepository) RecordFailure(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, err := r.readState()
	if err != nil {
		return 0, err
	}

	state.ConsecutiveFailures++
	if err := r.writeState(state); err != nil {
		return 0, err
	}

	return state.ConsecutiveFailures, nil
}

// State returns the raw persisted state for status reporting.
func (r *StateFileRepository) State(ctx context.Context) (domain.TrackerState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readState()
}

// Path returns the full path of the state file.
func (r *StateFileRepository) Path() string {
	return filepath.Join(r.dir, stateFileName)
}

// readState loads the slot from disk. A missing file is an empty state, not
// an error.
func (r *StateFileRepository) readState() (domain.TrackerState, error) {
	data, err := os.ReadFile(r.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return domain.TrackerState{}, nil
		}
		return domain.TrackerState{}, err
	}

	var state domain.TrackerState
	if err := json.Unmarshal(data, &state); err != nil {
		return domain.TrackerState{}, err
	}

	return state, nil
}

// writeState persists the slot atomically: temp file in the same directory,
// then rename.
func (r *StateFileRepository) writeState(state domain.TrackerState) error {
	if err := os.MkdirAll(r.dir, 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	tmp := r.Path() + ".tmp"
	if err := r.writeFile(tmp, data, 0o600); err != nil {
		return err
	}

	return os.Rename(tmp, r.Path())
}
