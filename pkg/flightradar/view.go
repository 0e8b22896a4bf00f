package flightradar

import "github.com/RomanDataLab/Brazil-flightradar/internal/domain"

// Render-layer types, aliased from the internal domain so embedders can
// construct and inspect them directly.
type (
	// View is the renderable snapshot a refresh cycle settles on.
	View = domain.RenderView

	// StateVector is a single aircraft state record.
	StateVector = domain.StateVector

	// Source identifies the tier a view came from.
	Source = domain.Source

	// BoundingBox is the WGS-84 rectangle queried upstream.
	BoundingBox = domain.BoundingBox

	// FreshnessPolicy maps consecutive fetch failures to the cache
	// acceptance window.
	FreshnessPolicy = domain.FreshnessPolicy
)

// Source values a View can carry.
const (
	SourceLive       = domain.SourceLive
	SourceLocalCache = domain.SourceLocalCache
	SourceMirror     = domain.SourceMirror
	SourceStatic     = domain.SourceStatic
	SourceEmpty      = domain.SourceEmpty
)

// BrazilBoundingBox returns the default tracked region.
func BrazilBoundingBox() BoundingBox {
	return domain.BrazilBoundingBox()
}
