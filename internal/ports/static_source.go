package ports

import "github.com/RomanDataLab/Brazil-flightradar/internal/domain"

// StaticSource supplies the snapshot bundled into the binary at build time,
// the last rung of the fallback ladder. It is never subject to freshness
// checks.
type StaticSource interface {
	// Static returns the bundled snapshot. An error means the bundle is
	// unusable and the fallback chain ends with an empty view.
	Static() (*domain.Snapshot, error)
}
