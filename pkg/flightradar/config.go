package flightradar

import (
	"fmt"
	"net/url"
	"time"

	"github.com/RomanDataLab/Brazil-flightradar/internal/app"
	"github.com/RomanDataLab/Brazil-flightradar/internal/domain"
)

// Configuration defaults.
const (
	// DefaultUpstreamURL is the public OpenSky-compatible API root.
	DefaultUpstreamURL = "https://opensky-network.org"

	// DefaultHTTPTimeout bounds a single upstream request.
	DefaultHTTPTimeout = 15 * time.Second
)

// Config holds the configuration for a Tracker. The zero value plus a
// StateDir is a working configuration; SetDefaults fills the rest.
type Config struct {
	// StateDir is the directory holding the persisted snapshot slot.
	// Required.
	StateDir string

	// UpstreamURL is the OpenSky-compatible API root, without the states
	// path. Default: DefaultUpstreamURL.
	UpstreamURL string

	// MirrorURL is the shared snapshot mirror root. Empty disables the
	// mirror tier: nothing is pushed and the fallback chain skips it.
	MirrorURL string

	// CredentialsFile is a TOML file holding upstream credentials. Empty
	// means anonymous access. A missing file is tolerated; requests go
	// unauthenticated until a reload picks it up.
	CredentialsFile string

	// BoundingBox limits upstream queries to a region.
	// Default: Brazilian airspace.
	BoundingBox BoundingBox

	// Freshness maps consecutive fetch failures to the cache acceptance
	// window. Zero fields take the 5m/24h/3 defaults.
	Freshness FreshnessPolicy

	// PollInterval is the refresh cadence. It stays fixed regardless of
	// upstream failures. Default: 5 minutes.
	PollInterval time.Duration

	// HTTPTimeout bounds each upstream request. Default: 15 seconds.
	HTTPTimeout time.Duration

	// MirrorTimeout bounds mirror pushes and pulls. Default: 10 seconds.
	MirrorTimeout time.Duration

	// Once makes the run loop perform a single refresh cycle and return.
	Once bool
}

// SetDefaults fills unset fields with default values.
func (c *Config) SetDefaults() {
	if c.UpstreamURL == "" {
		c.UpstreamURL = DefaultUpstreamURL
	}
	if c.BoundingBox == (BoundingBox{}) {
		c.BoundingBox = domain.BrazilBoundingBox()
	}
	if c.Freshness.ShortWindow <= 0 {
		c.Freshness.ShortWindow = domain.DefaultShortWindow
	}
	if c.Freshness.LongWindow <= 0 {
		c.Freshness.LongWindow = domain.DefaultLongWindow
	}
	if c.Freshness.FailureThreshold <= 0 {
		c.Freshness.FailureThreshold = domain.DefaultFailureThreshold
	}
	if c.PollInterval <= 0 {
		c.PollInterval = app.DefaultPollInterval
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = DefaultHTTPTimeout
	}
	if c.MirrorTimeout <= 0 {
		c.MirrorTimeout = app.DefaultMirrorTimeout
	}
}

// Validate checks the configuration. Call SetDefaults first.
func (c Config) Validate() error {
	if c.StateDir == "" {
		return fmt.Errorf("%w: StateDir is required", domain.ErrInvalidConfig)
	}
	if err := validateURL("UpstreamURL", c.UpstreamURL); err != nil {
		return err
	}
	if c.MirrorURL != "" {
		if err := validateURL("MirrorURL", c.MirrorURL); err != nil {
			return err
		}
	}
	return c.BoundingBox.Validate()
}

func validateURL(name, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", domain.ErrInvalidConfig, name, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %s must be an http(s) URL", domain.ErrInvalidConfig, name)
	}
	return nil
}
