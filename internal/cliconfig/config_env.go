package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (ADDRCHECK_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("log-level", os.Getenv(EnvPrefix+"LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", os.Getenv(EnvPrefix+"LOG_FORMAT"), &cfg.LogFormat)
	s.setString("format", os.Getenv(EnvPrefix+"FORMAT"), &cfg.Format)
	s.setString("metrics-addr", os.Getenv(EnvPrefix+"METRICS_ADDR"), &cfg.MetricsAddr)

	if err := s.setIntFromString("workers", os.Getenv(EnvPrefix+"WORKERS"), &cfg.Workers); err != nil {
		return err
	}
	if err := s.setDuration("debounce", os.Getenv(EnvPrefix+"DEBOUNCE"), &cfg.Debounce); err != nil {
		return err
	}

	s.setBoolFromString("fancy", os.Getenv(EnvPrefix+"FANCY"), &cfg.Fancy)

	floats := []struct {
		flag, env string
		dst       *float64
	}{
		{"mass1", "MASS1", &cfg.Mass1},
		{"mass2", "MASS2", &cfg.Mass2},
		{"gravity-constant", "GRAVITY_CONSTANT", &cfg.GravityConstant},
		{"distance-start", "DISTANCE_START", &cfg.DistanceStart},
		{"distance-stop", "DISTANCE_STOP", &cfg.DistanceStop},
		{"distance-step", "DISTANCE_STEP", &cfg.DistanceStep},
	}
	for _, f := range floats {
		if err := s.setFloatFromString(f.flag, os.Getenv(EnvPrefix+f.env), f.dst); err != nil {
			return err
		}
	}

	return nil
}
