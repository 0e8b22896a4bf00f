package auth

import (
	"os"
	"path/filepath"
	"testing"

	adlog "github.com/RomanDataLab/Brazil-flightradar/internal/adapters/log"
)

func TestProvider_Authorization(t *testing.T) {
	tests := []struct {
		name      string
		creds     Credentials
		wantValue string
		wantOK    bool
	}{
		{"none", Credentials{}, "", false},
		{"basic", Credentials{Username: "user", Password: "pass"}, "Basic dXNlcjpwYXNz", true},
		{"token", Credentials{Token: "tok123"}, "Bearer tok123", true},
		{"token wins over basic", Credentials{Username: "user", Password: "pass", Token: "tok123"}, "Bearer tok123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProvider(tt.creds, adlog.NewNoopLogger())
			value, ok := p.Authorization()
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}
			if value != tt.wantValue {
				t.Errorf("value = %q, want %q", value, tt.wantValue)
			}
		})
	}
}

func TestNewFileProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.toml")
	if err := os.WriteFile(path, []byte("username = \"user\"\npassword = \"pass\"\n"), 0o600); err != nil {
		t.Fatalf("write credentials: %v", err)
	}

	p, err := NewFileProvider(path, adlog.NewNoopLogger())
	if err != nil {
		t.Fatalf("NewFileProvider() = %v", err)
	}

	value, ok := p.Authorization()
	if !ok {
		t.Fatal("Authorization() not ok after loading file")
	}
	if value != "Basic dXNlcjpwYXNz" {
		t.Errorf("value = %q, want basic header", value)
	}
}

func TestNewFileProvider_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.toml")

	p, err := NewFileProvider(path, adlog.NewNoopLogger())
	if err != nil {
		t.Fatalf("NewFileProvider() = %v, want missing file tolerated", err)
	}
	if _, ok := p.Authorization(); ok {
		t.Error("Authorization() ok without a credentials file")
	}

	// File appears later; a reload picks it up.
	if err := os.WriteFile(path, []byte("token = \"tok123\"\n"), 0o600); err != nil {
		t.Fatalf("write credentials: %v", err)
	}
	if err := p.Reload(); err != nil {
		t.Fatalf("Reload() = %v", err)
	}
	value, ok := p.Authorization()
	if !ok || value != "Bearer tok123" {
		t.Errorf("Authorization() = %q, %v, want bearer token", value, ok)
	}
}

func TestProvider_ReloadKeepsOldOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.toml")
	if err := os.WriteFile(path, []byte("token = \"tok123\"\n"), 0o600); err != nil {
		t.Fatalf("write credentials: %v", err)
	}

	p, err := NewFileProvider(path, adlog.NewNoopLogger())
	if err != nil {
		t.Fatalf("NewFileProvider() = %v", err)
	}

	if err := os.WriteFile(path, []byte("token = [broken\n"), 0o600); err != nil {
		t.Fatalf("write broken credentials: %v", err)
	}
	if err := p.Reload(); err == nil {
		t.Fatal("Reload() = nil, want parse error")
	}

	value, ok := p.Authorization()
	if !ok || value != "Bearer tok123" {
		t.Errorf("Authorization() = %q, %v, want previous credentials kept", value, ok)
	}
}

func TestProvider_ReloadWithoutFile(t *testing.T) {
	p := NewProvider(Credentials{Token: "tok123"}, adlog.NewNoopLogger())
	if err := p.Reload(); err != nil {
		t.Errorf("Reload() = %v, want nil for fixed credentials", err)
	}
	if value, _ := p.Authorization(); value != "Bearer tok123" {
		t.Errorf("Authorization() = %q, want unchanged", value)
	}
}
