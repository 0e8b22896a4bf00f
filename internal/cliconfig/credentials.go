package cliconfig

import (
	"os"
	"path/filepath"
)

const (
	// DefaultConfigDirName is the per-user configuration directory.
	DefaultConfigDirName = ".flightradar"

	// DefaultCredentialsName is the credentials file name inside it.
	DefaultCredentialsName = "credentials.toml"

	// systemCredentialsPath is the machine-wide fallback location.
	systemCredentialsPath = "/etc/flightradar/credentials.toml"
)

// DiscoverCredentialsFile fills in CredentialsFile from well-known locations
// when it is not already set. Finding nothing is not an error: the tracker
// then runs unauthenticated at the anonymous rate limit.
func DiscoverCredentialsFile(cfg *Config) {
	if cfg.CredentialsFile != "" {
		return
	}
	for _, p := range credentialCandidates() {
		if FileExists(p) {
			cfg.CredentialsFile = p
			return
		}
	}
}

// credentialCandidates lists probe locations in precedence order.
func credentialCandidates() []string {
	var candidates []string
	if h, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(h, DefaultConfigDirName, DefaultCredentialsName))
	}
	return append(candidates, systemCredentialsPath)
}
