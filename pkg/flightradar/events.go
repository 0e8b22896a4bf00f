package flightradar

import "time"

// State represents the lifecycle state of a Tracker.
type State int

const (
	// StateStopped means the tracker is not running.
	StateStopped State = iota

	// StateStarting means Start was called and plugins are initializing.
	StateStarting

	// StateRunning means the refresh loop is active.
	StateRunning

	// StateStopping means Stop was called and workers are draining.
	StateStopping

	// StateCrashed means the tracker hit an unrecoverable error.
	StateCrashed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// CanStart reports whether Start is valid from this state.
func (s State) CanStart() bool {
	return s == StateStopped || s == StateCrashed
}

// CanStop reports whether Stop is valid from this state.
func (s State) CanStop() bool {
	return s == StateRunning || s == StateStarting
}

// IsRunning reports whether the refresh loop is active.
func (s State) IsRunning() bool {
	return s == StateRunning
}

// StateChangeEvent is emitted on lifecycle transitions.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// CacheRenderEvent is emitted when a cycle renders the local cache
// optimistically, before the live fetch resolves. The cycle's completion
// event always supersedes it.
type CacheRenderEvent struct {
	View View
}

// CycleEvent is emitted when a refresh cycle completes.
type CycleEvent struct {
	// View is the render view the cycle settled on.
	View View

	// Err is the live fetch error, nil on success.
	Err error

	// Reason labels Err for display and metrics ("rate_limited",
	// "unauthorized", "malformed", "upstream"); empty on success.
	Reason string

	// Failures is the consecutive failure count after the cycle.
	Failures int

	// NoUpdate marks a successful fetch with zero entries; the previous
	// view stayed in place.
	NoUpdate bool

	// Duration is the wall time of the cycle.
	Duration time.Duration
}

// MirrorPushEvent reports the result of a detached mirror push.
type MirrorPushEvent struct {
	Err error
}

// EventHandler receives tracker events. All methods are called synchronously
// from tracker goroutines; implementations should return quickly.
type EventHandler interface {
	// OnStateChange is called on lifecycle transitions.
	OnStateChange(event StateChangeEvent)

	// OnCacheRender is called when a cycle optimistically renders the
	// local cache.
	OnCacheRender(event CacheRenderEvent)

	// OnCycleComplete is called when a refresh cycle finishes.
	OnCycleComplete(event CycleEvent)

	// OnMirrorPush is called when a detached mirror push finishes.
	OnMirrorPush(event MirrorPushEvent)
}

// BaseEventHandler provides no-op implementations of all EventHandler
// methods. Embed it to handle only the events you care about.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(StateChangeEvent) {}
func (BaseEventHandler) OnCacheRender(CacheRenderEvent) {}
func (BaseEventHandler) OnCycleComplete(CycleEvent)     {}
func (BaseEventHandler) OnMirrorPush(MirrorPushEvent)   {}
