package ports

import (
	"context"

	"github.com/RomanDataLab/Brazil-flightradar/internal/domain"
)

// SnapshotSource fetches the current aircraft state vectors from the live
// upstream API. Implementations handle the wire format, authentication and
// the mapping of transport failures onto the domain error taxonomy.
type SnapshotSource interface {
	// Fetch retrieves the current snapshot.
	// A successful response with zero state vectors is returned as a
	// non-nil empty snapshot, not an error. Failures are reported as (or
	// wrap) domain.ErrRateLimited, domain.ErrUnauthorized,
	// domain.ErrMalformed or domain.ErrUpstream.
	Fetch(ctx context.Context) (*domain.Snapshot, error)
}
