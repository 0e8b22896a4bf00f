package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/RomanDataLab/Brazil-flightradar/internal/domain"
)

// DefaultUpstreamURL is the default endpoint for live state vectors.
const DefaultUpstreamURL = "https://opensky-network.org"

// DefaultListenAddr is the default bind address for the HTTP server.
const DefaultListenAddr = ":8090"

// Config holds CLI configuration for flightradar.
type Config struct {
	StateDir string
	WebDir   string

	ListenAddr string

	UpstreamURL     string
	MirrorURL       string
	CredentialsFile string

	PollInterval  time.Duration
	HTTPTimeout   time.Duration
	MirrorTimeout time.Duration

	LatMin float64
	LonMin float64
	LatMax float64
	LonMax float64

	Once     bool
	LogLevel string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	bbox := domain.BrazilBoundingBox()
	return Config{
		StateDir:      "", // Derived from the user home during Validate
		WebDir:        "web",
		ListenAddr:    DefaultListenAddr,
		UpstreamURL:   DefaultUpstreamURL,
		PollInterval:  5 * time.Minute,
		HTTPTimeout:   15 * time.Second,
		MirrorTimeout: 10 * time.Second,
		LatMin:        bbox.LatMin,
		LonMin:        bbox.LonMin,
		LatMax:        bbox.LatMax,
		LonMax:        bbox.LonMax,
		LogLevel:      "info",
	}
}

// Bounds assembles the four coordinate fields into a bounding box.
func (c *Config) Bounds() domain.BoundingBox {
	return domain.BoundingBox{
		LatMin: c.LatMin,
		LonMin: c.LonMin,
		LatMax: c.LatMax,
		LonMax: c.LonMax,
	}
}

// Validate checks the configuration for errors and sets derived defaults.
func (c *Config) Validate() error {
	if c.StateDir == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("state-dir is required")
		}
		c.StateDir = filepath.Join(h, ".flightradar", "state")
	}

	if c.UpstreamURL == "" {
		c.UpstreamURL = DefaultUpstreamURL
	}

	// Ensure no trailing slash
	if len(c.UpstreamURL) > 0 && c.UpstreamURL[len(c.UpstreamURL)-1] == '/' {
		c.UpstreamURL = c.UpstreamURL[:len(c.UpstreamURL)-1]
	}
	if len(c.MirrorURL) > 0 && c.MirrorURL[len(c.MirrorURL)-1] == '/' {
		c.MirrorURL = c.MirrorURL[:len(c.MirrorURL)-1]
	}

	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}

	if c.PollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive")
	}
	if c.MirrorTimeout <= 0 {
		return fmt.Errorf("mirror timeout must be positive")
	}

	if err := c.Bounds().Validate(); err != nil {
		return err
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("parse log-level: %w", err)
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setCoord sets a coordinate from a pointer if not nil and flag not changed.
// Coordinates are signed, so presence is the pointer, not the sign.
func (s *configSetter) setCoord(flag string, value *float64, dst *float64) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setCoordFromString parses a string to a coordinate and sets the destination.
// Used for environment variables that come as strings.
func (s *configSetter) setCoordFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = f
	return nil
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
// Used for environment variables that come as strings.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
