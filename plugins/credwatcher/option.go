package credwatcher

import "github.com/RomanDataLab/Brazil-flightradar/pkg/flightradar"

// WithCredentialsWatcher returns a flightradar Option that enables
// credentials file watching. When enabled, the plugin monitors the configured
// credentials file and reloads it on changes.
//
// Usage:
//
//	tracker, err := flightradar.New(cfg,
//	    credwatcher.WithCredentialsWatcher(credwatcher.Config{
//	        RetryInterval: 5 * time.Second,
//	        DebounceDelay: 100 * time.Millisecond,
//	    }),
//	)
func WithCredentialsWatcher(cfg Config) flightradar.Option {
	plugin := New(cfg)
	return flightradar.WithPlugin(plugin)
}

// WithDefaultCredentialsWatcher returns a flightradar Option that enables
// credentials watching with default settings (retry every 5s, debounce 100ms).
//
// Usage:
//
//	tracker, err := flightradar.New(cfg, credwatcher.WithDefaultCredentialsWatcher())
func WithDefaultCredentialsWatcher() flightradar.Option {
	return WithCredentialsWatcher(DefaultConfig())
}
