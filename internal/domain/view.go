package domain

// Source identifies which tier produced the snapshot currently offered to the
// render layer.
type Source string

const (
	// SourceLive is a snapshot fetched from the upstream API this cycle.
	SourceLive Source = "live"

	// SourceLocalCache is the locally persisted snapshot.
	SourceLocalCache Source = "local_cache"

	// SourceMirror is the shared remote mirror copy.
	SourceMirror Source = "remote_mirror"

	// SourceStatic is the build-time bundled snapshot.
	SourceStatic Source = "static"

	// SourceEmpty means no tier yielded data; nothing to render.
	SourceEmpty Source = "empty"
)

// RenderView is what the render layer consumes: the state vectors to draw,
// the tier they came from, and staleness information where it applies.
type RenderView struct {
	// States are the vectors to render; empty for SourceEmpty.
	States []StateVector `json:"states"`

	// Source is the tier that produced the data.
	Source Source `json:"source"`

	// CapturedAt is the upstream capture time in Unix seconds; zero when
	// unknown (empty view).
	CapturedAt int64 `json:"captured_at,omitempty"`

	// AgeSeconds is how long ago the data was saved locally (local cache)
	// or on the mirror. Zero for live data; nil when age has no meaning
	// (static and empty views).
	AgeSeconds *int64 `json:"age_seconds"`

	// Reason carries the failure reason when the live fetch did not supply
	// the data, so the UI can explain a stale or empty map.
	Reason string `json:"reason,omitempty"`
}

// Len returns the number of renderable state vectors.
func (v RenderView) Len() int { return len(v.States) }

// EmptyView builds the nothing-to-render view with a surfaced reason.
func EmptyView(reason string) RenderView {
	return RenderView{States: []StateVector{}, Source: SourceEmpty, Reason: reason}
}

// AgeOf is a convenience for populating RenderView.AgeSeconds.
func AgeOf(seconds int64) *int64 { return &seconds }
