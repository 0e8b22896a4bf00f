package ports

import (
	"context"

	"github.com/RomanDataLab/Brazil-flightradar/internal/domain"
)

// Mirror is the shared remote snapshot copy that other clients keep warm.
// It is best-effort in both directions: pushes are fire-and-forget and a
// failed pull is treated by callers the same as an absent mirror.
type Mirror interface {
	// Push uploads the snapshot to the mirror. Callers invoke it in the
	// background and only log the returned error.
	Push(ctx context.Context, snap *domain.Snapshot) error

	// Pull downloads the mirror's current snapshot together with its age.
	// Returns (nil, nil) when the mirror has nothing. Transport and decode
	// failures are returned as errors; callers fall through as if the
	// mirror were empty.
	Pull(ctx context.Context) (*domain.Cached, error)
}
