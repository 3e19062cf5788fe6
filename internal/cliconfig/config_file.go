package cliconfig

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config but uses strings for durations to make TOML friendly.
type FileConfig struct {
	LogLevel        string  `toml:"log_level"`
	LogFormat       string  `toml:"log_format"`
	Format          string  `toml:"format"`
	Workers         int     `toml:"workers"`
	Debounce        string  `toml:"debounce"`
	MetricsAddr     string  `toml:"metrics_addr"`
	Fancy           *bool   `toml:"fancy"`
	Mass1           float64 `toml:"mass1"`
	Mass2           float64 `toml:"mass2"`
	GravityConstant float64 `toml:"gravity_constant"`
	DistanceStart   float64 `toml:"distance_start"`
	DistanceStop    float64 `toml:"distance_stop"`
	DistanceStep    float64 `toml:"distance_step"`
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

// DefaultConfigPath returns ~/.addrcheck/config.toml, or "" if the home
// directory cannot be determined.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".addrcheck", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-format", fc.LogFormat, &cfg.LogFormat)
	s.setString("format", fc.Format, &cfg.Format)
	s.setString("metrics-addr", fc.MetricsAddr, &cfg.MetricsAddr)

	s.setInt("workers", fc.Workers, &cfg.Workers)

	if err := s.setDuration("debounce", fc.Debounce, &cfg.Debounce); err != nil {
		return err
	}

	s.setBool("fancy", fc.Fancy, &cfg.Fancy)

	s.setFloat("mass1", fc.Mass1, &cfg.Mass1)
	s.setFloat("mass2", fc.Mass2, &cfg.Mass2)
	s.setFloat("gravity-constant", fc.GravityConstant, &cfg.GravityConstant)
	s.setFloat("distance-start", fc.DistanceStart, &cfg.DistanceStart)
	s.setFloat("distance-stop", fc.DistanceStop, &cfg.DistanceStop)
	s.setFloat("distance-step", fc.DistanceStep, &cfg.DistanceStep)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
