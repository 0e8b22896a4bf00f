package flightradar

import "github.com/RomanDataLab/Brazil-flightradar/internal/domain"

// Errors returned by the public API, re-exported so embedders can match them
// with errors.Is. The fetch errors also surface in CycleEvent.Err.
var (
	// ErrAlreadyRunning is returned by Start on a running tracker and by
	// RefreshNow while a cycle is in flight.
	ErrAlreadyRunning = domain.ErrAlreadyRunning

	// ErrNotRunning is returned by Stop on a stopped tracker.
	ErrNotRunning = domain.ErrNotRunning

	// ErrShutdownTimeout is returned by Stop when workers do not finish
	// within the shutdown window.
	ErrShutdownTimeout = domain.ErrShutdownTimeout

	// ErrInvalidConfig is returned by New for a configuration that fails
	// validation.
	ErrInvalidConfig = domain.ErrInvalidConfig

	// ErrRateLimited marks a fetch rejected on request quota.
	ErrRateLimited = domain.ErrRateLimited

	// ErrUnauthorized marks a fetch rejected on credentials.
	ErrUnauthorized = domain.ErrUnauthorized

	// ErrUpstream marks an unreachable or unusable upstream.
	ErrUpstream = domain.ErrUpstream

	// ErrMalformed marks an upstream response that did not decode.
	ErrMalformed = domain.ErrMalformed
)
