package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations and pointers for
// coordinates to make TOML friendly.
type FileConfig struct {
	StateDir        string   `toml:"state_dir"`
	WebDir          string   `toml:"web_dir"`
	ListenAddr      string   `toml:"listen_addr"`
	UpstreamURL     string   `toml:"upstream_url"`
	MirrorURL       string   `toml:"mirror_url"`
	CredentialsFile string   `toml:"credentials_file"`
	PollInterval    string   `toml:"poll_interval"`
	HTTPTimeout     string   `toml:"http_timeout"`
	MirrorTimeout   string   `toml:"mirror_timeout"`
	LatMin          *float64 `toml:"lat_min"`
	LonMin          *float64 `toml:"lon_min"`
	LatMax          *float64 `toml:"lat_max"`
	LonMax          *float64 `toml:"lon_max"`
	Once            *bool    `toml:"once"`
	LogLevel        string   `toml:"log_level"`
}

// LoadFileConfig reads and parses a TOML config file from the given path.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// DefaultConfigPath returns the default configuration file path.
// Returns ~/.flightradar/config.toml if user home directory is accessible.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".flightradar", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("state-dir", fc.StateDir, &cfg.StateDir)
	s.setString("web-dir", fc.WebDir, &cfg.WebDir)
	s.setString("listen", fc.ListenAddr, &cfg.ListenAddr)
	s.setString("upstream-url", fc.UpstreamURL, &cfg.UpstreamURL)
	s.setString("mirror-url", fc.MirrorURL, &cfg.MirrorURL)
	s.setString("credentials", fc.CredentialsFile, &cfg.CredentialsFile)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("poll", fc.PollInterval, &cfg.PollInterval); err != nil {
		return err
	}
	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("mirror-timeout", fc.MirrorTimeout, &cfg.MirrorTimeout); err != nil {
		return err
	}

	s.setCoord("lat-min", fc.LatMin, &cfg.LatMin)
	s.setCoord("lon-min", fc.LonMin, &cfg.LonMin)
	s.setCoord("lat-max", fc.LatMax, &cfg.LatMax)
	s.setCoord("lon-max", fc.LonMax, &cfg.LonMax)

	s.setBool("once", fc.Once, &cfg.Once)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
