package cliconfig

import (
	"strings"
	"testing"
	"time"

	"github.com/RomanDataLab/Brazil-flightradar/internal/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ListenAddr != DefaultListenAddr {
		t.Errorf("ListenAddr = %v, want %v", cfg.ListenAddr, DefaultListenAddr)
	}
	if cfg.UpstreamURL != DefaultUpstreamURL {
		t.Errorf("UpstreamURL = %v, want %v", cfg.UpstreamURL, DefaultUpstreamURL)
	}
	if cfg.PollInterval != 5*time.Minute {
		t.Errorf("PollInterval = %v, want 5m", cfg.PollInterval)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.Bounds() != domain.BrazilBoundingBox() {
		t.Errorf("Bounds() = %+v, want Brazil defaults", cfg.Bounds())
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name            string
		config          Config
		wantErr         bool
		wantUpstreamURL string
	}{
		{
			name: "valid minimal config",
			config: Config{
				StateDir:      "/tmp/state",
				UpstreamURL:   "http://localhost:8080",
				PollInterval:  time.Second,
				HTTPTimeout:   time.Second,
				MirrorTimeout: time.Second,
				LatMin:        -34.0, LonMin: -74.5, LatMax: 5.5, LonMax: -28.5,
				LogLevel: "info",
			},
			wantErr: false,
		},
		{
			name: "upstream url defaults when omitted",
			config: Config{
				StateDir:      "/tmp/state",
				PollInterval:  time.Second,
				HTTPTimeout:   time.Second,
				MirrorTimeout: time.Second,
				LatMin:        -34.0, LonMin: -74.5, LatMax: 5.5, LonMax: -28.5,
				LogLevel: "info",
			},
			wantErr:         false,
			wantUpstreamURL: DefaultUpstreamURL,
		},
		{
			name: "invalid poll interval",
			config: Config{
				StateDir:      "/tmp/state",
				UpstreamURL:   "http://localhost:8080",
				PollInterval:  -1,
				HTTPTimeout:   time.Second,
				MirrorTimeout: time.Second,
				LatMin:        -34.0, LonMin: -74.5, LatMax: 5.5, LonMax: -28.5,
				LogLevel: "info",
			},
			wantErr: true,
		},
		{
			name: "missing http timeout",
			config: Config{
				StateDir:      "/tmp/state",
				UpstreamURL:   "http://localhost:8080",
				PollInterval:  time.Second,
				MirrorTimeout: time.Second,
				LatMin:        -34.0, LonMin: -74.5, LatMax: 5.5, LonMax: -28.5,
				LogLevel: "info",
			},
			wantErr: true,
		},
		{
			name: "inverted bounding box",
			config: Config{
				StateDir:      "/tmp/state",
				UpstreamURL:   "http://localhost:8080",
				PollInterval:  time.Second,
				HTTPTimeout:   time.Second,
				MirrorTimeout: time.Second,
				LatMin:        5.5, LonMin: -74.5, LatMax: -34.0, LonMax: -28.5,
				LogLevel: "info",
			},
			wantErr: true,
		},
		{
			name: "unknown log level",
			config: Config{
				StateDir:      "/tmp/state",
				UpstreamURL:   "http://localhost:8080",
				PollInterval:  time.Second,
				HTTPTimeout:   time.Second,
				MirrorTimeout: time.Second,
				LatMin:        -34.0, LonMin: -74.5, LatMax: 5.5, LonMax: -28.5,
				LogLevel: "loud",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && tt.wantUpstreamURL != "" && tt.config.UpstreamURL != tt.wantUpstreamURL {
				t.Errorf("UpstreamURL = %v, want %v", tt.config.UpstreamURL, tt.wantUpstreamURL)
			}
		})
	}
}

func TestConfig_Validate_Derivations(t *testing.T) {
	// StateDir is derived from the user home when omitted
	t.Setenv("HOME", t.TempDir())
	c1 := Config{
		UpstreamURL:   "http://example.com",
		PollInterval:  time.Second,
		HTTPTimeout:   time.Second,
		MirrorTimeout: time.Second,
		LatMin:        -34.0, LonMin: -74.5, LatMax: 5.5, LonMax: -28.5,
		LogLevel: "info",
	}
	if err := c1.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if !strings.HasSuffix(c1.StateDir, "/.flightradar/state") {
		t.Errorf("StateDir = %v, want ~/.flightradar/state", c1.StateDir)
	}

	// Trailing slashes are trimmed from both URLs
	c2 := Config{
		StateDir:      "/tmp/state",
		UpstreamURL:   "http://api.example.com/",
		MirrorURL:     "http://mirror.example.com/",
		PollInterval:  time.Second,
		HTTPTimeout:   time.Second,
		MirrorTimeout: time.Second,
		LatMin:        -34.0, LonMin: -74.5, LatMax: 5.5, LonMax: -28.5,
		LogLevel: "info",
	}
	if err := c2.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if c2.UpstreamURL != "http://api.example.com" {
		t.Errorf("UpstreamURL = %v, want http://api.example.com", c2.UpstreamURL)
	}
	if c2.MirrorURL != "http://mirror.example.com" {
		t.Errorf("MirrorURL = %v, want http://mirror.example.com", c2.MirrorURL)
	}

	// Explicit StateDir is respected
	c3 := Config{
		StateDir:      "/custom/state",
		UpstreamURL:   "http://example.com",
		PollInterval:  time.Second,
		HTTPTimeout:   time.Second,
		MirrorTimeout: time.Second,
		LatMin:        -34.0, LonMin: -74.5, LatMax: 5.5, LonMax: -28.5,
		LogLevel: "info",
	}
	if err := c3.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if c3.StateDir != "/custom/state" {
		t.Errorf("StateDir = %v, want /custom/state", c3.StateDir)
	}
}
