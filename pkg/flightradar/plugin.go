package flightradar

import "context"

// Plugin extends a Tracker with optional functionality. Plugins are
// initialized during Start in registration order and shut down during Stop
// in reverse order.
type Plugin interface {
	// Name identifies the plugin in logs.
	Name() string

	// Initialize is called during Start. The context is canceled when the
	// tracker stops; long-running plugin work should watch it.
	Initialize(ctx context.Context, cfg PluginConfig) error

	// Shutdown is called during Stop.
	Shutdown(ctx context.Context) error
}

// PluginConfig carries the tracker's effective configuration and the hooks
// plugins act through.
type PluginConfig struct {
	// StateDir is the directory holding the persisted snapshot slot.
	StateDir string

	// CredentialsFile is the configured credentials file path; empty when
	// running anonymously.
	CredentialsFile string

	// UpstreamURL is the effective upstream API root.
	UpstreamURL string

	// MirrorURL is the configured mirror root; empty when disabled.
	MirrorURL string

	// Logger is the tracker's logger.
	Logger Logger

	// ReloadCredentials re-reads the credentials file and swaps the
	// Authorization header. On failure the previous credentials stay in
	// effect.
	ReloadCredentials func() error
}

// BasePlugin provides no-op implementations of the Plugin methods. Embed it
// and override what the plugin needs.
type BasePlugin struct {
	name string
}

// NewBasePlugin creates a BasePlugin with the given name.
func NewBasePlugin(name string) BasePlugin {
	return BasePlugin{name: name}
}

// Name returns the plugin name.
func (p BasePlugin) Name() string { return p.name }

// Initialize is a no-op.
func (p BasePlugin) Initialize(ctx context.Context, cfg PluginConfig) error { return nil }

// Shutdown is a no-op.
func (p BasePlugin) Shutdown(ctx context.Context) error { return nil }
