package auth

import (
	"encoding/base64"
	"fmt"
	"os"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/RomanDataLab/Brazil-flightradar/internal/ports"
)

var _ ports.AuthProvider = (*Provider)(nil)

// Credentials is the upstream credential set. A token wins over a
// username/password pair when both are present.
type Credentials struct {
	Username string `toml:"username" json:"username"`
	Password string `toml:"password" json:"password"`
	Token    string `toml:"token" json:"token"`
}

// headerValue renders the Authorization header for the credential set.
func (c Credentials) headerValue() (string, bool) {
	if c.Token != "" {
		return "Bearer " + c.Token, true
	}
	if c.Username != "" {
		basic := base64.StdEncoding.EncodeToString([]byte(c.Username + ":" + c.Password))
		return "Basic " + basic, true
	}
	return "", false
}

// Provider implements ports.AuthProvider with credentials that can be
// replaced at runtime. When backed by a file, Reload re-reads it; the
// credentials watcher plugin calls Reload on file changes.
type Provider struct {
	mu     sync.RWMutex
	creds  Credentials
	path   string
	logger ports.Logger
}

// NewProvider creates a provider with fixed credentials.
func NewProvider(creds Credentials, logger ports.Logger) *Provider {
	return &Provider{creds: creds, logger: logger}
}

// NewFileProvider creates a provider backed by a TOML credentials file.
// A missing file is not an error: requests go unauthenticated until the file
// appears and a reload picks it up.
func NewFileProvider(path string, logger ports.Logger) (*Provider, error) {
	p := &Provider{path: path, logger: logger}
	if err := p.Reload(); err != nil {
		if os.IsNotExist(err) {
			logger.Warn("credentials file not found, starting unauthenticated",
				ports.String("path", path))
			return p, nil
		}
		return nil, err
	}
	return p, nil
}

// Authorization returns the current header value.
func (p *Provider) Authorization() (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.creds.headerValue()
}

// Reload re-reads the backing file. On failure the previous credentials stay
// in effect. A provider without a backing file reloads to itself.
func (p *Provider) Reload() error {
	if p.path == "" {
		return nil
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return err
	}

	var creds Credentials
	if err := toml.Unmarshal(data, &creds); err != nil {
		return fmt.Errorf("parse credentials file: %w", err)
	}

	p.mu.Lock()
	p.creds = creds
	p.mu.Unlock()

	p.logger.Info("credentials reloaded", ports.String("path", p.path))
	return nil
}

// Path returns the backing file path, empty for fixed credentials.
func (p *Provider) Path() string {
	return p.path
}
