package credwatcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/RomanDataLab/Brazil-flightradar/pkg/flightradar"
)

// reloadRecorder counts reload calls and can fail the first N of them.
type reloadRecorder struct {
	mu        sync.Mutex
	calls     int
	failFirst int
	err       error
}

func (r *reloadRecorder) fn() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.calls <= r.failFirst {
		return r.err
	}
	return nil
}

func (r *reloadRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func (r *reloadRecorder) awaitCalls(t *testing.T, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if r.count() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("reload calls = %d, want at least %d", r.count(), want)
}

func writeCredentials(t *testing.T, path, username string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("username = \""+username+"\"\n"), 0600); err != nil {
		t.Fatalf("write credentials: %v", err)
	}
}

func TestPlugin_Name(t *testing.T) {
	plugin := New(DefaultConfig())
	if plugin.Name() != "credwatcher" {
		t.Errorf("Name() = %v, want credwatcher", plugin.Name())
	}
}

func TestPlugin_ReloadsOnWrite(t *testing.T) {
	tmpDir := t.TempDir()
	credPath := filepath.Join(tmpDir, "credentials.toml")
	writeCredentials(t, credPath, "before")

	rec := &reloadRecorder{}

	plugin := New(Config{
		RetryInterval: 50 * time.Millisecond,
		DebounceDelay: 10 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := plugin.Initialize(ctx, flightradar.PluginConfig{
		CredentialsFile:   credPath,
		ReloadCredentials: rec.fn,
		Logger:            &noopLogger{},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	// Initial reload picks up the file present at startup
	rec.awaitCalls(t, 1)

	writeCredentials(t, credPath, "after")
	rec.awaitCalls(t, 2)

	if err := plugin.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

func TestPlugin_ReloadsWhenFileAppears(t *testing.T) {
	tmpDir := t.TempDir()
	credPath := filepath.Join(tmpDir, "credentials.toml")
	// File does not exist yet

	rec := &reloadRecorder{}

	plugin := New(Config{
		RetryInterval: 50 * time.Millisecond,
		DebounceDelay: 10 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := plugin.Initialize(ctx, flightradar.PluginConfig{
		CredentialsFile:   credPath,
		ReloadCredentials: rec.fn,
		Logger:            &noopLogger{},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	// Give the watcher time to attach before creating the file
	time.Sleep(100 * time.Millisecond)

	writeCredentials(t, credPath, "fresh")
	rec.awaitCalls(t, 2)

	if err := plugin.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

func TestPlugin_RetriesFailedReload(t *testing.T) {
	tmpDir := t.TempDir()
	credPath := filepath.Join(tmpDir, "credentials.toml")
	writeCredentials(t, credPath, "partial")

	rec := &reloadRecorder{
		failFirst: 1,
		err:       errors.New("parse credentials file: incomplete"),
	}

	plugin := New(Config{
		RetryInterval: 20 * time.Millisecond,
		DebounceDelay: 10 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := plugin.Initialize(ctx, flightradar.PluginConfig{
		CredentialsFile:   credPath,
		ReloadCredentials: rec.fn,
		Logger:            &noopLogger{},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	// First attempt fails, the retry succeeds
	rec.awaitCalls(t, 2)

	if err := plugin.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

func TestPlugin_IgnoresOtherFiles(t *testing.T) {
	tmpDir := t.TempDir()
	credPath := filepath.Join(tmpDir, "credentials.toml")
	writeCredentials(t, credPath, "stable")

	rec := &reloadRecorder{}

	plugin := New(Config{
		RetryInterval: 50 * time.Millisecond,
		DebounceDelay: 10 * time.Millisecond,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	err := plugin.Initialize(ctx, flightradar.PluginConfig{
		CredentialsFile:   credPath,
		ReloadCredentials: rec.fn,
		Logger:            &noopLogger{},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	rec.awaitCalls(t, 1)

	// A sibling file in the watched directory must not trigger a reload
	if err := os.WriteFile(filepath.Join(tmpDir, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write sibling: %v", err)
	}
	time.Sleep(150 * time.Millisecond)

	if got := rec.count(); got != 1 {
		t.Errorf("reload calls = %d, want 1 after unrelated write", got)
	}

	if err := plugin.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

func TestPlugin_DisabledWithoutCredentialsFile(t *testing.T) {
	rec := &reloadRecorder{}

	plugin := New(DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize with empty CredentialsFile - should be disabled
	err := plugin.Initialize(ctx, flightradar.PluginConfig{
		CredentialsFile:   "", // Empty
		ReloadCredentials: rec.fn,
		Logger:            &noopLogger{},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	if got := rec.count(); got != 0 {
		t.Errorf("Expected 0 reloads when disabled, got %d", got)
	}

	if err := plugin.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}

// noopLogger implements flightradar.Logger for testing
type noopLogger struct{}

func (noopLogger) Debug(msg string, fields ...flightradar.LogField) {}
func (noopLogger) Info(msg string, fields ...flightradar.LogField)  {}
func (noopLogger) Warn(msg string, fields ...flightradar.LogField)  {}
func (noopLogger) Error(msg string, fields ...flightradar.LogField) {}
