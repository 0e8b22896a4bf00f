package domain

import "time"

// Freshness window defaults. While the upstream is healthy the cache is
// trusted only briefly so the map stays current; once the upstream has failed
// repeatedly (rate-limited or down) stale data is trusted for much longer
// rather than rendering an empty map or hammering a throttled API.
const (
	DefaultShortWindow      = 5 * time.Minute
	DefaultLongWindow       = 24 * time.Hour
	DefaultFailureThreshold = 3
)

// FreshnessPolicy maps a consecutive-failure count to the maximum age at
// which a persisted snapshot is still offered as valid. It is a single step
// function: short window up to and including FailureThreshold failures, long
// window above it. Deliberately no gradual backoff and no other inputs.
type FreshnessPolicy struct {
	// ShortWindow is the acceptance window while the upstream is healthy.
	ShortWindow time.Duration

	// LongWindow is the acceptance window once failures exceed the threshold.
	LongWindow time.Duration

	// FailureThreshold is the highest failure count that still uses the
	// short window.
	FailureThreshold int
}

// DefaultFreshnessPolicy returns the policy with the stock 5m/24h windows.
func DefaultFreshnessPolicy() FreshnessPolicy {
	return FreshnessPolicy{
		ShortWindow:      DefaultShortWindow,
		LongWindow:       DefaultLongWindow,
		FailureThreshold: DefaultFailureThreshold,
	}
}

// WindowFor returns the acceptance window for the given consecutive-failure
// count.
func (p FreshnessPolicy) WindowFor(failures int) time.Duration {
	if failures > p.FailureThreshold {
		return p.LongWindow
	}
	return p.ShortWindow
}

// Fresh reports whether a snapshot of the given age is inside the acceptance
// window for the given failure count.
func (p FreshnessPolicy) Fresh(age time.Duration, failures int) bool {
	return age <= p.WindowFor(failures)
}
