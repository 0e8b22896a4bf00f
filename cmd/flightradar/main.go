package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/RomanDataLab/Brazil-flightradar/internal/api"
	"github.com/RomanDataLab/Brazil-flightradar/internal/cliconfig"
	"github.com/RomanDataLab/Brazil-flightradar/internal/ws"
	"github.com/RomanDataLab/Brazil-flightradar/pkg/flightradar"
	logAdapter "github.com/RomanDataLab/Brazil-flightradar/pkg/log"
	"github.com/RomanDataLab/Brazil-flightradar/plugins/credwatcher"
)

const helpDescription = `
Track aircraft over Brazil and keep the map warm when the upstream API is not.

Highlights:
  - Polls an OpenSky-compatible API on a fixed cadence within a bounding box.
  - Falls back through the local cache, a shared mirror, and a bundled
    snapshot, so the map always has something to draw.
  - Serves the map UI, a JSON API, live WebSocket events, and Prometheus
    metrics from one listener.
  - Configure via file, environment, or flags; credentials reload without a
    restart.
`

var longHelp = strings.TrimSpace(helpDescription)

var exampleUsage = strings.TrimSpace(`
  flightradar --web-dir ./web --listen :8090
  flightradar --config $HOME/.flightradar/config.toml --once
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger()

	root := &cobra.Command{
		Use:     "flightradar",
		Short:   "Track aircraft over Brazil and keep the map warm when the upstream API is not",
		Long:    longHelp,
		Example: exampleUsage,
		Version: fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load config file first (default $HOME/.flightradar/config.toml), then apply flag overrides
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// Apply environment variables (FLIGHTRADAR_*)
			// These override file config but are overridden by flags (checked via changed map)
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			// Probe well-known locations when no credentials file is set
			cliconfig.DiscoverCredentialsFile(&cfg)

			// Validate and set derived defaults
			if err := cfg.Validate(); err != nil {
				return err
			}

			// Validate already vetted the level string.
			level, _ := zerolog.ParseLevel(cfg.LogLevel)
			log = log.Level(level)

			log.Info().Interface("config", cfg).Msg("configuration")

			libCfg := flightradar.Config{
				StateDir:        cfg.StateDir,
				UpstreamURL:     cfg.UpstreamURL,
				MirrorURL:       cfg.MirrorURL,
				CredentialsFile: cfg.CredentialsFile,
				BoundingBox:     cfg.Bounds(),
				PollInterval:    cfg.PollInterval,
				HTTPTimeout:     cfg.HTTPTimeout,
				MirrorTimeout:   cfg.MirrorTimeout,
				Once:            cfg.Once,
			}

			// One zerolog adapter serves the library, the hub, and the API server
			zerologAdapter := logAdapter.NewZerologAdapterWithLogger(log)

			hub := ws.NewHub(zerologAdapter)
			bridge := newEventBridge(hub)

			tracker, err := flightradar.New(libCfg,
				flightradar.WithLogger(zerologAdapter),
				flightradar.WithEventHandler(bridge),
				// Reload upstream credentials when the file changes
				credwatcher.WithCredentialsWatcher(credwatcher.DefaultConfig()),
			)
			if err != nil {
				return fmt.Errorf("create tracker: %w", err)
			}

			// Setup signal handling for graceful shutdown
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			go hub.RunWithContext(ctx)

			if err := tracker.Start(ctx); err != nil {
				return fmt.Errorf("start tracker: %w", err)
			}

			// Serve HTTP unless this is a single-cycle run
			var httpSrv *http.Server
			serverErr := make(chan error, 1)
			if !cfg.Once {
				server := api.NewServer(api.Config{WebDir: cfg.WebDir}, tracker, hub, zerologAdapter)
				httpSrv = &http.Server{
					Addr:    cfg.ListenAddr,
					Handler: server.Router(),
					// No Read/WriteTimeout: they would sever the WebSocket
					// stream. The client pumps enforce their own deadlines.
					ReadHeaderTimeout: 5 * time.Second,
					IdleTimeout:       60 * time.Second,
				}
				go func() {
					log.Info().Str("addr", cfg.ListenAddr).Msg("http server listening")
					if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						serverErr <- err
					}
				}()
			}

			// The tracker stays Running after a single cycle, so completion is
			// detected through the event bridge rather than by polling state.
			var firstCycle <-chan struct{}
			if cfg.Once {
				firstCycle = bridge.FirstCycleDone()
			}

			select {
			case <-sigCh:
				log.Info().Msg("received signal, stopping...")
			case err := <-serverErr:
				log.Error().Err(err).Msg("http server failed")
			case <-firstCycle:
				log.Info().Msg("single cycle complete")
			}

			// Graceful shutdown: drain HTTP first so /api/v1 keeps answering
			// while in-flight requests finish, then stop the tracker.
			if httpSrv != nil {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
				if err := httpSrv.Shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("http server shutdown")
				}
				shutdownCancel()
			}

			if err := tracker.Stop(); err != nil {
				return fmt.Errorf("stop tracker: %w", err)
			}
			return nil
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.flightradar/config.toml)")
	root.Flags().StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "directory for cached snapshots (default: $HOME/.flightradar/state)")
	root.Flags().StringVar(&cfg.WebDir, "web-dir", cfg.WebDir, "directory with the built map UI (static serving is disabled when missing)")
	root.Flags().StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "HTTP listen address")

	root.Flags().StringVar(&cfg.UpstreamURL, "upstream-url", cfg.UpstreamURL, fmt.Sprintf("OpenSky-compatible base URL (defaults to %s)", cliconfig.DefaultUpstreamURL))
	root.Flags().StringVar(&cfg.MirrorURL, "mirror-url", cfg.MirrorURL, "shared snapshot mirror base URL (optional)")
	root.Flags().StringVar(&cfg.CredentialsFile, "credentials", cfg.CredentialsFile, "TOML file with upstream API credentials (optional)")

	root.Flags().DurationVar(&cfg.PollInterval, "poll", cfg.PollInterval, "upstream poll interval")
	root.Flags().DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout for upstream fetches")
	root.Flags().DurationVar(&cfg.MirrorTimeout, "mirror-timeout", cfg.MirrorTimeout, "time budget for mirror pulls during fallback")

	root.Flags().Float64Var(&cfg.LatMin, "lat-min", cfg.LatMin, "bounding box minimum latitude")
	root.Flags().Float64Var(&cfg.LonMin, "lon-min", cfg.LonMin, "bounding box minimum longitude")
	root.Flags().Float64Var(&cfg.LatMax, "lat-max", cfg.LatMax, "bounding box maximum latitude")
	root.Flags().Float64Var(&cfg.LonMax, "lon-max", cfg.LonMax, "bounding box maximum longitude")

	root.Flags().BoolVar(&cfg.Once, "once", cfg.Once, "run a single refresh cycle and exit")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error)")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("flightradar")
		os.Exit(1)
	}
}
