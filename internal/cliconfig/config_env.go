package cliconfig

import "os"

// ApplyEnvConfig applies FLIGHTRADAR_* environment variables to the Config.
// It respects flags that have been explicitly set (changed map), so the
// precedence order is flags over environment over file.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("state-dir", os.Getenv("FLIGHTRADAR_STATE_DIR"), &cfg.StateDir)
	s.setString("web-dir", os.Getenv("FLIGHTRADAR_WEB_DIR"), &cfg.WebDir)
	s.setString("listen", os.Getenv("FLIGHTRADAR_LISTEN_ADDR"), &cfg.ListenAddr)
	s.setString("upstream-url", os.Getenv("FLIGHTRADAR_UPSTREAM_URL"), &cfg.UpstreamURL)
	s.setString("mirror-url", os.Getenv("FLIGHTRADAR_MIRROR_URL"), &cfg.MirrorURL)
	s.setString("credentials", os.Getenv("FLIGHTRADAR_CREDENTIALS_FILE"), &cfg.CredentialsFile)
	s.setString("log-level", os.Getenv("FLIGHTRADAR_LOG_LEVEL"), &cfg.LogLevel)

	if err := s.setDuration("poll", os.Getenv("FLIGHTRADAR_POLL_INTERVAL"), &cfg.PollInterval); err != nil {
		return err
	}
	if err := s.setDuration("timeout", os.Getenv("FLIGHTRADAR_HTTP_TIMEOUT"), &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("mirror-timeout", os.Getenv("FLIGHTRADAR_MIRROR_TIMEOUT"), &cfg.MirrorTimeout); err != nil {
		return err
	}

	if err := s.setCoordFromString("lat-min", os.Getenv("FLIGHTRADAR_LAT_MIN"), &cfg.LatMin); err != nil {
		return err
	}
	if err := s.setCoordFromString("lon-min", os.Getenv("FLIGHTRADAR_LON_MIN"), &cfg.LonMin); err != nil {
		return err
	}
	if err := s.setCoordFromString("lat-max", os.Getenv("FLIGHTRADAR_LAT_MAX"), &cfg.LatMax); err != nil {
		return err
	}
	if err := s.setCoordFromString("lon-max", os.Getenv("FLIGHTRADAR_LON_MAX"), &cfg.LonMax); err != nil {
		return err
	}

	s.setBoolFromString("once", os.Getenv("FLIGHTRADAR_ONCE"), &cfg.Once)

	return nil
}
