package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/RomanDataLab/Brazil-flightradar/internal/domain"
	"github.com/RomanDataLab/Brazil-flightradar/internal/ports"
)

// Default cycle parameters. The poll cadence is deliberately fixed: failure
// escalation widens the cache acceptance window but never slows polling, so
// recovery is noticed within one interval.
const (
	DefaultPollInterval  = 5 * time.Minute
	DefaultMirrorTimeout = 10 * time.Second
)

// RefresherConfig contains configuration for the refresh loop.
type RefresherConfig struct {
	PollInterval  time.Duration
	MirrorTimeout time.Duration
	Once          bool
}

// CycleOutcome describes one finished refresh cycle.
type CycleOutcome struct {
	// View is the render view the cycle settled on.
	View domain.RenderView

	// Err is the live fetch error, nil on success.
	Err error

	// Failures is the consecutive failure count after the cycle.
	Failures int

	// NoUpdate marks a successful fetch with zero entries, which leaves
	// the previous view in place.
	NoUpdate bool

	// Duration is the wall time of the whole cycle.
	Duration time.Duration
}

// CycleEventEmitter receives ordered render events from the refresher: at
// most one optimistic cache render, then exactly one cycle outcome. Mirror
// push results arrive whenever the detached push finishes.
type CycleEventEmitter interface {
	OnCacheRender(view domain.RenderView)
	OnCycleComplete(outcome CycleOutcome)
	OnMirrorPush(err error)
}

// Refresher drives the periodic fetch cycle: optimistic render from the
// local cache, live fetch, and on failure the fallback chain local cache,
// mirror, static bundle, then the local cache at any age.
type Refresher struct {
	config  RefresherConfig
	source  ports.SnapshotSource
	repo    ports.StateRepository
	mirror  ports.Mirror
	static  ports.StaticSource
	logger  ports.Logger
	emitter CycleEventEmitter

	mu       sync.RWMutex
	current  domain.RenderView
	last     CycleOutcome
	lastAt   time.Time
	hasCycle bool

	inFlight atomic.Bool
	pushWG   sync.WaitGroup
}

// NewRefresher creates a refresher with the given dependencies. mirror may
// be nil when no mirror is configured; the mirror tier is then skipped.
func NewRefresher(
	config RefresherConfig,
	source ports.SnapshotSource,
	repo ports.StateRepository,
	mirror ports.Mirror,
	static ports.StaticSource,
	logger ports.Logger,
	emitter CycleEventEmitter,
) *Refresher {
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultPollInterval
	}
	if config.MirrorTimeout <= 0 {
		config.MirrorTimeout = DefaultMirrorTimeout
	}
	return &Refresher{
		config:  config,
		source:  source,
		repo:    repo,
		mirror:  mirror,
		static:  static,
		logger:  logger,
		emitter: emitter,
		current: domain.EmptyView(""),
	}
}

// Current returns the view the last cycle settled on. Before the first
// cycle completes it is the empty view.
func (r *Refresher) Current() domain.RenderView {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// LastOutcome returns the most recent cycle outcome and when it completed.
// ok is false until the first cycle has finished.
func (r *Refresher) LastOutcome() (outcome CycleOutcome, completedAt time.Time, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.last, r.lastAt, r.hasCycle
}

// Run executes the refresh loop: one cycle immediately, then one per poll
// interval until the context is canceled. Outstanding mirror pushes are
// awaited before returning; each push carries its own timeout so this wait
// is bounded.
func (r *Refresher) Run(ctx context.Context) error {
	defer r.pushWG.Wait()

	for {
		if err := r.TryRefresh(ctx); err != nil {
			// Only a manual refresh racing the loop trips this.
			r.logger.Debug("cycle already in flight, skipping")
		}

		if r.config.Once {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.config.PollInterval):
		}
	}
}

// TryRefresh runs a single refresh cycle unless one is already in flight,
// in which case it returns domain.ErrAlreadyRunning and does nothing. This
// is the entry point for manual refresh triggers.
func (r *Refresher) TryRefresh(ctx context.Context) error {
	if !r.inFlight.CompareAndSwap(false, true) {
		return domain.ErrAlreadyRunning
	}
	defer r.inFlight.Store(false)

	r.cycle(ctx)
	return nil
}

// cycle is one pass of the refresh state machine.
func (r *Refresher) cycle(ctx context.Context) {
	start := time.Now()

	// Optimistic render: show the cached snapshot while the fetch is out.
	// The cycle outcome below always supersedes this within the same cycle.
	if cached, err := r.repo.Load(ctx); err != nil {
		r.logger.Error("load cached snapshot", ports.Err(err))
	} else if cached != nil && !cached.Snapshot.Empty() {
		view := viewFromCached(cached, domain.SourceLocalCache, "")
		r.setCurrent(view)
		if r.emitter != nil {
			r.emitter.OnCacheRender(view)
		}
	}

	snap, err := r.source.Fetch(ctx)
	if err != nil {
		r.failureCycle(ctx, err, start)
		return
	}

	if snap.Empty() {
		// "No aircraft" is no update, not an eviction: keep the current
		// view and leave the store and failure count untouched.
		r.logger.Info("live fetch returned zero entries, keeping current view")
		r.finish(CycleOutcome{View: r.Current(), NoUpdate: true, Duration: time.Since(start)})
		return
	}

	if err := r.repo.Save(ctx, snap); err != nil {
		// Rendering still proceeds; only durability is lost.
		r.logger.Error("save snapshot", ports.Err(err))
	}
	r.pushAsync(snap)

	view := domain.RenderView{
		States:     snap.States,
		Source:     domain.SourceLive,
		CapturedAt: snap.CapturedAt,
		AgeSeconds: domain.AgeOf(0),
	}
	r.setCurrent(view)
	r.finish(CycleOutcome{View: view, Duration: time.Since(start)})
}

// failureCycle records the failure first, so every fallback read below sees
// the escalated failure count, then walks the chain.
func (r *Refresher) failureCycle(ctx context.Context, fetchErr error, start time.Time) {
	reason := domain.FailureReason(fetchErr)

	failures, err := r.repo.RecordFailure(ctx)
	if err != nil {
		r.logger.Error("record failure", ports.Err(err))
	}

	r.logger.Warn("live fetch failed",
		ports.Err(fetchErr),
		ports.String("reason", reason),
		ports.Int("consecutive_failures", failures),
	)

	view := r.fallback(ctx, reason)
	r.setCurrent(view)
	r.finish(CycleOutcome{
		View:     view,
		Err:      fetchErr,
		Failures: failures,
		Duration: time.Since(start),
	})
}

// fallback returns the first tier that yields at least one entry: local
// cache inside the (escalated) window, mirror, static bundle, then the
// local cache at any age as the true last data-bearing resort, and finally
// the empty view carrying the failure reason.
func (r *Refresher) fallback(ctx context.Context, reason string) domain.RenderView {
	if cached, err := r.repo.Load(ctx); err != nil {
		r.logger.Error("load cached snapshot", ports.Err(err))
	} else if cached != nil && !cached.Snapshot.Empty() {
		return viewFromCached(cached, domain.SourceLocalCache, reason)
	}

	if r.mirror != nil {
		pullCtx, cancel := context.WithTimeout(ctx, r.config.MirrorTimeout)
		pulled, err := r.mirror.Pull(pullCtx)
		cancel()
		if err != nil {
			// Mirror errors are indistinguishable from an absent mirror.
			r.logger.Warn("mirror pull failed", ports.Err(err))
		} else if pulled != nil && !pulled.Snapshot.Empty() {
			return viewFromCached(pulled, domain.SourceMirror, reason)
		}
	}

	if snap, err := r.static.Static(); err != nil {
		r.logger.Error("static snapshot", ports.Err(err))
	} else if !snap.Empty() {
		return domain.RenderView{
			States:     snap.States,
			Source:     domain.SourceStatic,
			CapturedAt: snap.CapturedAt,
			Reason:     reason,
		}
	}

	if cached, err := r.repo.LoadEmergency(ctx); err != nil {
		r.logger.Error("emergency load", ports.Err(err))
	} else if cached != nil && !cached.Snapshot.Empty() {
		r.logger.Warn("serving cached snapshot beyond freshness window",
			ports.Duration("age", cached.Age))
		return viewFromCached(cached, domain.SourceLocalCache, reason)
	}

	return domain.EmptyView(reason)
}

// pushAsync hands the snapshot to the mirror without blocking the cycle.
// Push failures are logged and reported to the emitter, never to the cycle.
func (r *Refresher) pushAsync(snap *domain.Snapshot) {
	if r.mirror == nil {
		return
	}

	r.pushWG.Add(1)
	go func() {
		defer r.pushWG.Done()

		ctx, cancel := context.WithTimeout(context.Background(), r.config.MirrorTimeout)
		defer cancel()

		err := r.mirror.Push(ctx, snap)
		if err != nil {
			r.logger.Warn("mirror push failed", ports.Err(err))
		}
		if r.emitter != nil {
			r.emitter.OnMirrorPush(err)
		}
	}()
}

func (r *Refresher) setCurrent(view domain.RenderView) {
	r.mu.Lock()
	r.current = view
	r.mu.Unlock()
}

func (r *Refresher) finish(outcome CycleOutcome) {
	r.mu.Lock()
	r.last = outcome
	r.lastAt = time.Now()
	r.hasCycle = true
	r.mu.Unlock()

	r.logger.Info("refresh cycle complete",
		ports.String("source", string(outcome.View.Source)),
		ports.Int("entries", outcome.View.Len()),
		ports.Duration("duration", outcome.Duration),
	)
	if r.emitter != nil {
		r.emitter.OnCycleComplete(outcome)
	}
}

// viewFromCached builds the render view for a cache or mirror hit.
func viewFromCached(cached *domain.Cached, source domain.Source, reason string) domain.RenderView {
	return domain.RenderView{
		States:     cached.Snapshot.States,
		Source:     source,
		CapturedAt: cached.Snapshot.CapturedAt,
		AgeSeconds: domain.AgeOf(int64(cached.Age.Seconds())),
		Reason:     reason,
	}
}
