package domain

import "errors"

// Domain errors returned by the public API and the fetch path. Fetch errors
// form the failure taxonomy: the cache reacts to all of them identically
// (record failure, walk the fallback chain) but they are kept distinct so
// logs, metrics and the UI can tell a quota problem from a broken credential.
var (
	// ErrRateLimited means the upstream rejected the fetch due to request
	// quota. Never retried faster than the normal cycle.
	ErrRateLimited = errors.New("flightradar: upstream rate limited")

	// ErrUnauthorized means the upstream rejected the configured credentials.
	ErrUnauthorized = errors.New("flightradar: upstream unauthorized")

	// ErrUpstream covers transport failures and unexpected upstream status
	// codes: the API could not be reached or did not answer usefully.
	ErrUpstream = errors.New("flightradar: upstream unavailable")

	// ErrMalformed means the upstream answered 200 but the payload is
	// missing the expected shape. Distinct from a successful response with
	// zero state vectors, which is not an error.
	ErrMalformed = errors.New("flightradar: malformed upstream response")

	// ErrAlreadyRunning is returned when Start() is called on a running
	// tracker.
	ErrAlreadyRunning = errors.New("flightradar: already running")

	// ErrNotRunning is returned when Stop() is called on a stopped tracker.
	ErrNotRunning = errors.New("flightradar: not running")

	// ErrShutdownTimeout is returned when graceful shutdown times out.
	ErrShutdownTimeout = errors.New("flightradar: shutdown timeout")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("flightradar: invalid configuration")
)

// FailureReason labels a fetch error for logs, metrics and cycle events.
// Unknown errors are labeled "upstream" since from the cache's point of view
// every unclassified failure is just an unusable upstream.
func FailureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrMalformed):
		return "malformed"
	default:
		return "upstream"
	}
}
