package flightradar

import (
	"context"
	"net/http"
	"sync"

	"github.com/RomanDataLab/Brazil-flightradar/internal/adapters/auth"
	"github.com/RomanDataLab/Brazil-flightradar/internal/adapters/fs"
	httpAdapter "github.com/RomanDataLab/Brazil-flightradar/internal/adapters/http"
	logAdapter "github.com/RomanDataLab/Brazil-flightradar/internal/adapters/log"
	"github.com/RomanDataLab/Brazil-flightradar/internal/adapters/static"
	"github.com/RomanDataLab/Brazil-flightradar/internal/app"
	"github.com/RomanDataLab/Brazil-flightradar/internal/domain"
	"github.com/RomanDataLab/Brazil-flightradar/internal/ports"
)

// Status is the assembled operational status of a tracker.
type Status = app.TrackerStatus

// CycleSummary condenses the last completed cycle for status reporting.
type CycleSummary = app.CycleSummary

// Tracker is an embeddable aircraft tracker: it polls an OpenSky-compatible
// upstream on a fixed cadence and keeps a renderable view available through
// a chain of fallbacks. Use New() to create an instance, then Start() to
// begin polling.
type Tracker struct {
	config    Config
	opts      options
	lifecycle *app.Lifecycle
	refresher *app.Refresher
	repo      ports.StateRepository
	source    ports.SnapshotSource
	mirror    ports.Mirror
	auth      *auth.Provider
	logger    ports.Logger

	// Plugin support
	plugins []Plugin

	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new Tracker with the given configuration.
// The instance is created in StateStopped; call Start() to begin polling.
// Returns an error if the configuration is invalid.
func New(cfg Config, opts ...Option) (*Tracker, error) {
	// Set defaults
	cfg.SetDefaults()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Apply options
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	o := defaultOptions(httpClient)
	for _, opt := range opts {
		opt(&o)
	}

	// Create logger
	var logger ports.Logger
	if o.logger != nil {
		logger = o.logger
	} else {
		logger = logAdapter.NewNoopLogger()
	}

	// Create event emitter wrapper
	var emitter eventEmitterWrapper
	if o.eventHandler != nil {
		emitter = eventEmitterWrapper{handler: o.eventHandler}
	}

	// Create lifecycle manager
	lifecycle := app.NewLifecycle(logger, &emitter)

	// Create the credential provider
	var authProvider *auth.Provider
	if cfg.CredentialsFile != "" {
		p, err := auth.NewFileProvider(cfg.CredentialsFile, logger)
		if err != nil {
			return nil, err
		}
		authProvider = p
	} else {
		authProvider = auth.NewProvider(auth.Credentials{}, logger)
	}

	// Create adapters
	repo := fs.NewStateFileRepository(cfg.StateDir, cfg.Freshness, logger)
	source := httpAdapter.NewLiveSource(cfg.UpstreamURL, cfg.BoundingBox, o.httpClient, authProvider, logger)

	var mirror ports.Mirror
	if cfg.MirrorURL != "" {
		mirror = httpAdapter.NewSnapshotMirror(cfg.MirrorURL, o.httpClient, logger)
	}

	// Create the refresher
	refresherCfg := app.RefresherConfig{
		PollInterval:  cfg.PollInterval,
		MirrorTimeout: cfg.MirrorTimeout,
		Once:          cfg.Once,
	}
	refresher := app.NewRefresher(refresherCfg, source, repo, mirror, static.NewSource(), logger, &emitter)

	return &Tracker{
		config:    cfg,
		opts:      o,
		lifecycle: lifecycle,
		refresher: refresher,
		repo:      repo,
		source:    source,
		mirror:    mirror,
		auth:      authProvider,
		logger:    logger,
		plugins:   o.plugins,
	}, nil
}

// Start begins polling in the background.
// Returns immediately after starting the refresh goroutine.
// Returns an error if already running or if a plugin fails to initialize.
// The provided context is used for the lifetime of the polling operation.
func (t *Tracker) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.lifecycle.CanStart() {
		return domain.ErrAlreadyRunning
	}

	// Transition to starting
	if err := t.lifecycle.TransitionTo(app.StateStarting, "Start() called"); err != nil {
		return err
	}

	// Create cancellable context
	runCtx, cancel := context.WithCancel(ctx)
	t.ctx = runCtx
	t.cancel = cancel
	t.lifecycle.SetCancel(cancel)

	// Initialize plugins
	pluginCfg := PluginConfig{
		StateDir:          t.config.StateDir,
		CredentialsFile:   t.config.CredentialsFile,
		UpstreamURL:       t.config.UpstreamURL,
		MirrorURL:         t.config.MirrorURL,
		Logger:            t.logger,
		ReloadCredentials: t.auth.Reload,
	}
	for _, p := range t.plugins {
		if err := p.Initialize(runCtx, pluginCfg); err != nil {
			t.logger.Error("plugin initialization failed",
				ports.String("plugin", p.Name()),
				ports.Err(err))
			cancel()
			_ = t.lifecycle.TransitionTo(app.StateCrashed, "plugin init failed: "+p.Name())
			return err
		}
		t.logger.Info("plugin initialized", ports.String("plugin", p.Name()))
	}

	// Start the refresher in a goroutine
	t.lifecycle.AddWorker()
	go func() {
		defer t.lifecycle.WorkerDone()

		// Transition to running
		if err := t.lifecycle.TransitionTo(app.StateRunning, "refresher starting"); err != nil {
			t.logger.Error("failed to transition to running", ports.Err(err))
			return
		}

		// Run the refresh loop
		err := t.refresher.Run(runCtx)

		// Handle completion
		if err != nil && err != context.Canceled {
			t.logger.Error("refresher error", ports.Err(err))
			_ = t.lifecycle.TransitionTo(app.StateCrashed, err.Error())
		}
	}()

	return nil
}

// Stop gracefully shuts down the tracker.
// Outstanding mirror pushes are awaited and plugins are shut down.
// Waits up to 30 seconds before forcing shutdown.
// Returns nil on graceful shutdown, ErrShutdownTimeout if forced.
func (t *Tracker) Stop() error {
	t.mu.Lock()

	if !t.lifecycle.CanStop() {
		t.mu.Unlock()
		return domain.ErrNotRunning
	}

	// Transition to stopping
	if err := t.lifecycle.TransitionTo(app.StateStopping, "Stop() called"); err != nil {
		t.mu.Unlock()
		return err
	}

	// Cancel the context
	if t.cancel != nil {
		t.cancel()
	}

	t.mu.Unlock()

	// Wait for workers with timeout
	err := t.lifecycle.WaitWithTimeout(app.ShutdownTimeout)

	// Shutdown plugins (in reverse order)
	shutdownCtx := context.Background()
	for i := len(t.plugins) - 1; i >= 0; i-- {
		p := t.plugins[i]
		if shutdownErr := p.Shutdown(shutdownCtx); shutdownErr != nil {
			t.logger.Error("plugin shutdown failed",
				ports.String("plugin", p.Name()),
				ports.Err(shutdownErr))
		} else {
			t.logger.Info("plugin shutdown complete", ports.String("plugin", p.Name()))
		}
	}

	// Transition to stopped
	if err != nil {
		_ = t.lifecycle.TransitionTo(app.StateCrashed, "shutdown timeout")
	} else {
		_ = t.lifecycle.TransitionTo(app.StateStopped, "graceful shutdown")
	}

	return err
}

// State returns the current lifecycle state.
// Safe to call concurrently from any goroutine.
func (t *Tracker) State() State {
	return convertState(t.lifecycle.State())
}

// Current returns the view the last refresh cycle settled on. Before the
// first cycle completes it is the empty view.
func (t *Tracker) Current() View {
	return t.refresher.Current()
}

// RefreshNow runs a single refresh cycle immediately, independent of the
// poll loop. Returns ErrAlreadyRunning when a cycle is already in flight.
func (t *Tracker) RefreshNow(ctx context.Context) error {
	return t.refresher.TryRefresh(ctx)
}

// Status assembles the tracker's operational status: lifecycle state,
// credentials, persisted failure count, the freshness window in effect, and
// the last completed cycle.
func (t *Tracker) Status(ctx context.Context) (Status, error) {
	state, err := t.repo.State(ctx)
	if err != nil {
		return Status{}, err
	}

	_, authenticated := t.auth.Authorization()

	status := Status{
		State:               t.lifecycle.State().String(),
		Authenticated:       authenticated,
		ConsecutiveFailures: state.ConsecutiveFailures,
		FreshnessWindow:     t.config.Freshness.WindowFor(state.ConsecutiveFailures),
		PollInterval:        t.config.PollInterval,
	}
	if state.HasSnapshot() {
		status.SnapshotSavedAt = state.SavedAt
	}
	if outcome, completedAt, ok := t.refresher.LastOutcome(); ok {
		status.LastCycle = app.Summarize(outcome, completedAt)
	}
	return status, nil
}

// eventEmitterWrapper adapts EventHandler to the internal emitter interfaces.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: convertState(previous),
		Current:  convertState(current),
		Reason:   reason,
	})
}

func (e *eventEmitterWrapper) OnCacheRender(view domain.RenderView) {
	if e.handler == nil {
		return
	}
	e.handler.OnCacheRender(CacheRenderEvent{View: view})
}

func (e *eventEmitterWrapper) OnCycleComplete(outcome app.CycleOutcome) {
	if e.handler == nil {
		return
	}
	e.handler.OnCycleComplete(CycleEvent{
		View:     outcome.View,
		Err:      outcome.Err,
		Reason:   domain.FailureReason(outcome.Err),
		Failures: outcome.Failures,
		NoUpdate: outcome.NoUpdate,
		Duration: outcome.Duration,
	})
}

func (e *eventEmitterWrapper) OnMirrorPush(err error) {
	if e.handler == nil {
		return
	}
	e.handler.OnMirrorPush(MirrorPushEvent{Err: err})
}

func convertState(s app.State) State {
	switch s {
	case app.StateStopped:
		return StateStopped
	case app.StateStarting:
		return StateStarting
	case app.StateRunning:
		return StateRunning
	case app.StateStopping:
		return StateStopping
	case app.StateCrashed:
		return StateCrashed
	default:
		return StateStopped
	}
}
