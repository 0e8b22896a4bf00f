// Package credwatcher provides credentials file monitoring for flightradar.
// When enabled, it watches the credentials file for changes and reloads it
// into the running tracker, so upstream credentials can be rotated without a
// restart.
package credwatcher

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/RomanDataLab/Brazil-flightradar/pkg/flightradar"
)

// Plugin implements credentials file watching.
// It monitors the configured credentials file and reloads it into the
// tracker's credential provider when it changes.
type Plugin struct {
	mu sync.RWMutex

	// Configuration
	retryInterval time.Duration
	debounceDelay time.Duration

	// Runtime state
	credentialsFile string
	reload          func() error
	logger          flightradar.Logger
	cancel          context.CancelFunc
	wg              sync.WaitGroup
	debounce        *time.Timer
}

// Config holds configuration options for the credentials watcher plugin.
type Config struct {
	// RetryInterval is the delay between retries when a reload fails,
	// typically because the file was caught mid-write.
	// Default: 5 seconds
	RetryInterval time.Duration

	// DebounceDelay is the delay to wait after a file change before
	// reloading, so editor write-then-rename sequences coalesce.
	// Default: 100 milliseconds
	DebounceDelay time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		RetryInterval: 5 * time.Second,
		DebounceDelay: 100 * time.Millisecond,
	}
}

// New creates a new credentials watcher plugin with the given configuration.
func New(cfg Config) *Plugin {
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 5 * time.Second
	}
	if cfg.DebounceDelay <= 0 {
		cfg.DebounceDelay = 100 * time.Millisecond
	}

	return &Plugin{
		retryInterval: cfg.RetryInterval,
		debounceDelay: cfg.DebounceDelay,
	}
}

// Name returns the plugin identifier.
func (p *Plugin) Name() string {
	return "credwatcher"
}

// Initialize sets up the plugin and starts the credentials watcher.
func (p *Plugin) Initialize(ctx context.Context, cfg flightradar.PluginConfig) error {
	p.mu.Lock()
	p.credentialsFile = cfg.CredentialsFile
	p.reload = cfg.ReloadCredentials
	p.logger = cfg.Logger
	p.mu.Unlock()

	if p.credentialsFile == "" || p.reload == nil {
		p.logger.Warn("Credentials watcher disabled: no credentials file configured")
		return nil
	}

	// Create cancellable context for the watcher loop
	watchCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.logger.Info("Credentials watcher plugin initialized")

	// Start watcher loop
	p.wg.Add(1)
	go p.watchLoop(watchCtx)

	return nil
}

// Shutdown stops the credentials watcher.
func (p *Plugin) Shutdown(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	return nil
}

// watchLoop watches the credentials file's directory for changes. The
// directory is watched rather than the file so replace-by-rename edits keep
// working.
func (p *Plugin) watchLoop(ctx context.Context) {
	defer p.wg.Done()

	credDir := filepath.Dir(p.credentialsFile)
	credName := filepath.Base(p.credentialsFile)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		p.logger.Error("Credentials watcher: failed to create watcher")
		return
	}
	defer watcher.Close()

	if err := watcher.Add(credDir); err != nil {
		p.logger.Error("Credentials watcher: failed to watch directory")
		// Still pick up a file that appeared since startup
		p.reloadWithRetry(ctx)
		return
	}

	// Pick up a file that appeared since startup
	p.reloadWithRetry(ctx)

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != credName {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			p.debounceReload(ctx, p.debounceDelay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			_ = err // logged as generic error
			p.logger.Error("Credentials watcher: watcher error")
		}
	}
}

func (p *Plugin) debounceReload(ctx context.Context, delay time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.debounce != nil {
		p.debounce.Stop()
	}

	p.debounce = time.AfterFunc(delay, func() {
		p.reloadWithRetry(ctx)
	})
}

// reloadWithRetry retries until success or context cancellation. A reload
// typically fails when the file was caught mid-write; the next retry sees the
// complete file.
func (p *Plugin) reloadWithRetry(ctx context.Context) {
	retryCount := 0

	for {
		err := p.reload()
		if err == nil {
			if retryCount > 0 {
				p.logger.Info("Credentials watcher: reloaded credentials after retries")
			} else {
				p.logger.Info("Credentials watcher: reloaded credentials")
			}
			return
		}

		// An absent file needs no retry loop: the create event triggers a
		// reload when it appears.
		if errors.Is(err, fs.ErrNotExist) {
			p.logger.Warn("Credentials watcher: credentials file not present")
			return
		}

		// Failure - log and retry
		retryCount++
		p.logger.Error("Credentials watcher: reload failed")

		select {
		case <-ctx.Done():
			p.logger.Info("Credentials watcher: stopping retry due to context cancellation")
			return
		case <-time.After(p.retryInterval):
			// Continue to next retry
		}
	}
}

// Ensure Plugin implements flightradar.Plugin.
var _ flightradar.Plugin = (*Plugin)(nil)
