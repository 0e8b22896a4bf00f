// Package flightradar provides a convenience entry point for running the
// aircraft tracker without the HTTP serving layer. Embedders that need the
// full lifecycle API, event handlers, or plugins should use
// pkg/flightradar directly.
//
// Example usage:
//
//	cfg := flightradar.DefaultConfig()
//	cfg.StateDir = "/var/lib/flightradar/state"
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	if err := flightradar.Run(context.Background(), cfg); err != nil {
//	    log.Fatal(err)
//	}
package flightradar

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/RomanDataLab/Brazil-flightradar/internal/cliconfig"
	tracker "github.com/RomanDataLab/Brazil-flightradar/pkg/flightradar"
	logAdapter "github.com/RomanDataLab/Brazil-flightradar/pkg/log"
)

// Config holds the full tracker configuration, including the fields the CLI
// exposes. Use DefaultConfig() to get a Config with sensible defaults.
type Config = cliconfig.Config

// Run starts the tracker with the given configuration and blocks until the
// context is cancelled. With cfg.Once set it returns after the first refresh
// cycle completes instead.
func Run(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := logAdapter.NewZerologAdapterWithLogger(cliconfig.Logger().Level(level))

	handler := &runHandler{done: make(chan struct{})}

	t, err := tracker.New(tracker.Config{
		StateDir:        cfg.StateDir,
		UpstreamURL:     cfg.UpstreamURL,
		MirrorURL:       cfg.MirrorURL,
		CredentialsFile: cfg.CredentialsFile,
		BoundingBox:     cfg.Bounds(),
		PollInterval:    cfg.PollInterval,
		HTTPTimeout:     cfg.HTTPTimeout,
		MirrorTimeout:   cfg.MirrorTimeout,
		Once:            cfg.Once,
	},
		tracker.WithLogger(logger),
		tracker.WithEventHandler(handler),
	)
	if err != nil {
		return err
	}

	if err := t.Start(ctx); err != nil {
		return err
	}

	// A single-cycle tracker stays Running after its cycle; the cycle event
	// is the completion signal.
	if cfg.Once {
		select {
		case <-handler.done:
		case <-ctx.Done():
		}
	} else {
		<-ctx.Done()
	}

	return t.Stop()
}

// DefaultConfig returns a Config with sensible default values covering the
// Brazilian airspace. At minimum, set StateDir before calling Run.
func DefaultConfig() Config {
	return cliconfig.DefaultConfig()
}

// DiscoverCredentialsFile fills cfg.CredentialsFile from well-known locations
// when it is unset. Finding nothing leaves the tracker unauthenticated.
func DiscoverCredentialsFile(cfg *Config) {
	cliconfig.DiscoverCredentialsFile(cfg)
}

// Logger returns the package-level zerolog logger used by the tracker.
func Logger() zerolog.Logger {
	return cliconfig.Logger()
}

// DefaultUpstreamURL is the default OpenSky-compatible API root.
const DefaultUpstreamURL = cliconfig.DefaultUpstreamURL

type runHandler struct {
	tracker.BaseEventHandler

	once sync.Once
	done chan struct{}
}

func (h *runHandler) OnCycleComplete(tracker.CycleEvent) {
	h.once.Do(func() { close(h.done) })
}
