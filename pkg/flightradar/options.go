package flightradar

import (
	"net/http"

	"github.com/RomanDataLab/Brazil-flightradar/internal/ports"
	"github.com/RomanDataLab/Brazil-flightradar/pkg/log"
)

// HTTPClient is the transport used for upstream and mirror requests.
// *http.Client satisfies this interface.
type HTTPClient = ports.HTTPClient

// Logger is the structured logging contract from pkg/log.
type Logger = log.Logger

// LogField is a structured log field.
type LogField = log.Field

// Option configures optional behavior of a Tracker.
type Option func(*options)

// options holds the optional configuration for a Tracker instance.
type options struct {
	httpClient   ports.HTTPClient
	logger       ports.Logger
	eventHandler EventHandler
	plugins      []Plugin
}

// defaultOptions returns options with sensible defaults. The logger stays
// nil here; New substitutes the no-op implementation.
func defaultOptions(client *http.Client) options {
	return options{
		httpClient: client,
	}
}

// WithHTTPClient sets a custom HTTP client for upstream and mirror requests.
// If not provided, a default client with the configured timeout is used.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, log output is discarded.
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithEventHandler sets a handler for tracker events.
// Events are called synchronously from tracker goroutines.
// If not provided, no events are emitted.
func WithEventHandler(handler EventHandler) Option {
	return func(o *options) {
		o.eventHandler = handler
	}
}

// WithPlugin registers a plugin to be initialized when the tracker starts.
// Plugins are initialized in registration order and shut down in reverse
// order. Built-in plugins ship their own options, like
// credwatcher.WithCredentialsWatcher.
func WithPlugin(plugin Plugin) Option {
	return func(o *options) {
		o.plugins = append(o.plugins, plugin)
	}
}
