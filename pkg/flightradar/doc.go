// Package flightradar provides an embeddable aircraft tracker for
// OpenSky-compatible APIs.
//
// The tracker polls the upstream states endpoint on a fixed cadence and
// always keeps a renderable view available: live data when the upstream
// cooperates, and otherwise the freshest of the local snapshot cache, a
// shared remote mirror, a bundled static snapshot, or the local cache at any
// age. It can be used through the flightradar CLI or embedded as a library
// in other Go programs.
//
// # Basic Usage
//
// To embed the tracker in your application:
//
//	cfg := flightradar.Config{
//	    StateDir: "/var/lib/flightradar",
//	}
//
//	tracker, err := flightradar.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if err := tracker.Start(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	// ... serve tracker.Current() to your render layer ...
//
//	if err := tracker.Stop(); err != nil {
//	    log.Printf("shutdown error: %v", err)
//	}
//
// # Configuration
//
// Create a [Config] with at minimum StateDir. All other fields have
// sensible defaults set via [Config.SetDefaults]: the public OpenSky API,
// the Brazilian bounding box, a five minute cadence and the stock freshness
// policy.
//
// # Event Handling
//
// To observe refresh cycles, implement [EventHandler] and pass it via
// [WithEventHandler]:
//
//	handler := &myEventHandler{}
//	tracker, err := flightradar.New(cfg, flightradar.WithEventHandler(handler))
//
// Events are called synchronously from tracker goroutines. Implementations
// should return quickly to avoid blocking the refresh cycle.
//
// # Dependency Injection
//
// For testing, you can inject custom implementations of external
// dependencies:
//
//	tracker, err := flightradar.New(cfg,
//	    flightradar.WithHTTPClient(mockClient),
//	    flightradar.WithLogger(customLogger),
//	)
//
// # Lifecycle States
//
// A Tracker can be in one of five states: [StateStopped], [StateStarting],
// [StateRunning], [StateStopping], or [StateCrashed]. Use [Tracker.State]
// to query the current state and [Tracker.Status] for the full operational
// status.
//
// # Plugins
//
// Optional plugins extend the tracker:
//
//	import "github.com/RomanDataLab/Brazil-flightradar/plugins/credwatcher"
//
//	tracker, err := flightradar.New(cfg,
//	    credwatcher.WithCredentialsWatcher(credwatcher.DefaultConfig()),
//	)
package flightradar
