package cliconfig

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDiscoverCredentialsFile_ExplicitWins(t *testing.T) {
	cfg := Config{CredentialsFile: "/explicit/credentials.toml"}
	DiscoverCredentialsFile(&cfg)

	if cfg.CredentialsFile != "/explicit/credentials.toml" {
		t.Errorf("CredentialsFile = %v, want explicit path kept", cfg.CredentialsFile)
	}
}

func TestDiscoverCredentialsFile_FromHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	credPath := filepath.Join(home, DefaultConfigDirName, DefaultCredentialsName)
	if err := os.MkdirAll(filepath.Dir(credPath), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(credPath, []byte("username = \"anon\"\n"), 0600); err != nil {
		t.Fatalf("write credentials: %v", err)
	}

	cfg := Config{}
	DiscoverCredentialsFile(&cfg)

	if cfg.CredentialsFile != credPath {
		t.Errorf("CredentialsFile = %v, want %v", cfg.CredentialsFile, credPath)
	}
}

func TestDiscoverCredentialsFile_NothingFound(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg := Config{}
	DiscoverCredentialsFile(&cfg)

	if cfg.CredentialsFile != "" {
		t.Errorf("CredentialsFile = %v, want empty when nothing found", cfg.CredentialsFile)
	}
}
