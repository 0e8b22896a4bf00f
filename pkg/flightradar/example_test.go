package flightradar_test

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/RomanDataLab/Brazil-flightradar/pkg/flightradar"
)

// ExampleNew demonstrates how to embed the tracker in your application.
func ExampleNew() {
	// Create configuration
	cfg := flightradar.Config{
		StateDir: "/var/lib/flightradar",
	}

	// Create tracker instance
	tracker, err := flightradar.New(cfg)
	if err != nil {
		fmt.Printf("failed to create tracker: %v\n", err)
		return
	}

	// Start polling (non-blocking)
	ctx := context.Background()
	if err := tracker.Start(ctx); err != nil {
		fmt.Printf("failed to start: %v\n", err)
		return
	}

	// Check state (may be Starting or Running depending on timing)
	state := tracker.State()
	fmt.Printf("State is valid: %v\n", state == flightradar.StateStarting || state == flightradar.StateRunning)

	// Stop gracefully (awaits outstanding mirror pushes)
	_ = tracker.Stop()

	// Output: State is valid: true
}

// Example_withEventHandler demonstrates how to receive tracker events.
func Example_withEventHandler() {
	// Custom event handler
	handler := &myEventHandler{}

	cfg := flightradar.Config{
		StateDir: "/var/lib/flightradar",
	}

	// Create with event handler
	tracker, err := flightradar.New(cfg, flightradar.WithEventHandler(handler))
	if err != nil {
		fmt.Printf("failed to create tracker: %v\n", err)
		return
	}

	_ = tracker // Use tracker instance...
}

// myEventHandler implements flightradar.EventHandler for event notifications.
type myEventHandler struct {
	flightradar.BaseEventHandler // Embed for no-op defaults
}

func (h *myEventHandler) OnStateChange(event flightradar.StateChangeEvent) {
	fmt.Printf("State changed: %s -> %s (reason: %s)\n",
		event.Previous, event.Current, event.Reason)
}

func (h *myEventHandler) OnCycleComplete(event flightradar.CycleEvent) {
	fmt.Printf("Cycle done: %s, %d aircraft in %v\n",
		event.View.Source, event.View.Len(), event.Duration)
}

func (h *myEventHandler) OnMirrorPush(event flightradar.MirrorPushEvent) {
	fmt.Printf("Mirror push error: %v\n", event.Err)
}

// Example_withMockHTTPClient demonstrates dependency injection for testing.
func Example_withMockHTTPClient() {
	// Create a mock HTTP client for testing
	mockClient := &mockHTTPClient{
		responses: make(chan *http.Response, 10),
	}

	cfg := flightradar.Config{
		StateDir: "/tmp/flightradar-test",
	}

	// Inject mock HTTP client
	tracker, err := flightradar.New(cfg, flightradar.WithHTTPClient(mockClient))
	if err != nil {
		fmt.Printf("failed to create tracker: %v\n", err)
		return
	}

	_ = tracker // Use in tests...
}

// mockHTTPClient implements flightradar.HTTPClient for testing.
type mockHTTPClient struct {
	responses chan *http.Response
	requests  []*http.Request
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	m.requests = append(m.requests, req)
	select {
	case resp := <-m.responses:
		return resp, nil
	default:
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       http.NoBody,
		}, nil
	}
}

// Example_withCustomLogger demonstrates injecting a custom logger.
func Example_withCustomLogger() {
	logger := &customLogger{}

	cfg := flightradar.Config{
		StateDir: "/var/lib/flightradar",
	}

	// Inject custom logger
	tracker, err := flightradar.New(cfg, flightradar.WithLogger(logger))
	if err != nil {
		fmt.Printf("failed to create tracker: %v\n", err)
		return
	}

	_ = tracker // Use tracker instance...
}

// customLogger implements flightradar.Logger.
type customLogger struct{}

func (l *customLogger) Debug(msg string, fields ...flightradar.LogField) {
	fmt.Printf("[DEBUG] %s\n", msg)
}

func (l *customLogger) Info(msg string, fields ...flightradar.LogField) {
	fmt.Printf("[INFO] %s\n", msg)
}

func (l *customLogger) Warn(msg string, fields ...flightradar.LogField) {
	fmt.Printf("[WARN] %s\n", msg)
}

func (l *customLogger) Error(msg string, fields ...flightradar.LogField) {
	fmt.Printf("[ERROR] %s\n", msg)
}

// Example_withPlugins demonstrates using optional plugins.
func Example_withPlugins() {
	cfg := flightradar.Config{
		StateDir:        "/var/lib/flightradar",
		CredentialsFile: "/etc/flightradar/credentials.toml",
	}

	// Import plugins from:
	//   "github.com/RomanDataLab/Brazil-flightradar/plugins/credwatcher"
	//
	// Then create with plugins:
	//
	//   tracker, err := flightradar.New(cfg,
	//       credwatcher.WithCredentialsWatcher(credwatcher.DefaultConfig()),
	//   )
	//
	// Plugins are initialized on Start() and shut down on Stop().

	tracker, err := flightradar.New(cfg)
	if err != nil {
		fmt.Printf("failed to create tracker: %v\n", err)
		return
	}

	_ = tracker // Use tracker instance...
}

// ExampleTracker_State demonstrates controlling the tracker lifecycle.
func ExampleTracker_State() {
	cfg := flightradar.Config{
		StateDir: "/var/lib/flightradar",
	}

	tracker, _ := flightradar.New(cfg)

	// Initial state is Stopped
	fmt.Printf("Initial state is Stopped: %v\n", tracker.State() == flightradar.StateStopped)

	// Create a cancellable context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start polling
	_ = tracker.Start(ctx)

	// After Start, state is either Starting or Running
	state := tracker.State()
	validStartState := state == flightradar.StateStarting || state == flightradar.StateRunning
	fmt.Printf("After Start is Starting/Running: %v\n", validStartState)

	// Stop explicitly
	_ = tracker.Stop()
	time.Sleep(50 * time.Millisecond) // Brief wait for state transition

	// Output:
	// Initial state is Stopped: true
	// After Start is Starting/Running: true
}
