package cliconfig

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bft-labs/addrcheck/internal/batch"
	"github.com/bft-labs/addrcheck/internal/domain"
	"github.com/bft-labs/addrcheck/internal/gravity"
	"github.com/bft-labs/addrcheck/internal/watch"
	"github.com/bft-labs/addrcheck/pkg/log"
)

// EnvPrefix prefixes every environment variable read by ApplyEnvConfig.
const EnvPrefix = "ADDRCHECK_"

// Config holds CLI configuration for addrcheck.
type Config struct {
	LogLevel  string
	LogFormat string

	// Format is the batch report format.
	Format  string
	Workers int

	Debounce    time.Duration
	MetricsAddr string

	// Fancy switches the interactive menu to promptui.
	Fancy bool

	Mass1           float64
	Mass2           float64
	GravityConstant float64
	DistanceStart   float64
	DistanceStop    float64
	DistanceStep    float64
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	g := gravity.DefaultParams()
	return Config{
		LogLevel:        "info",
		LogFormat:       log.FormatConsole,
		Format:          batch.FormatText,
		Workers:         0, // runtime.NumCPU()
		Debounce:        watch.DefaultDebounce,
		Mass1:           g.M1,
		Mass2:           g.M2,
		GravityConstant: g.G,
		DistanceStart:   g.Start,
		DistanceStop:    g.Stop,
		DistanceStep:    g.Step,
	}
}

// Validate checks the configuration for errors and normalizes case.
func (c *Config) Validate() error {
	c.LogFormat = strings.ToLower(c.LogFormat)
	c.Format = strings.ToLower(c.Format)

	if c.LogFormat != log.FormatConsole && c.LogFormat != log.FormatJSON {
		return fmt.Errorf("%w: log-format must be %q or %q", domain.ErrInvalidConfig, log.FormatConsole, log.FormatJSON)
	}
	if !batch.ValidFormat(c.Format) {
		return fmt.Errorf("%w: format must be one of %s", domain.ErrInvalidConfig, strings.Join(batch.Formats(), ", "))
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative", domain.ErrInvalidConfig)
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("%w: debounce must be positive", domain.ErrInvalidConfig)
	}
	if c.Mass1 <= 0 || c.Mass2 <= 0 {
		return fmt.Errorf("%w: masses must be positive", domain.ErrInvalidConfig)
	}
	if c.GravityConstant <= 0 {
		return fmt.Errorf("%w: gravity constant must be positive", domain.ErrInvalidConfig)
	}
	if c.DistanceStart <= 0 || c.DistanceStep <= 0 {
		return fmt.Errorf("%w: distance start and step must be positive", domain.ErrInvalidConfig)
	}
	if c.DistanceStop < c.DistanceStart {
		return fmt.Errorf("%w: distance stop must not be below start", domain.ErrInvalidConfig)
	}
	return nil
}

// Gravity returns the force table parameters.
func (c Config) Gravity() gravity.Params {
	return gravity.Params{
		M1:    c.Mass1,
		M2:    c.Mass2,
		G:     c.GravityConstant,
		Start: c.DistanceStart,
		Stop:  c.DistanceStop,
		Step:  c.DistanceStep,
	}
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setFloat sets a float64 value if positive and flag not changed.
func (s *configSetter) setFloat(flag string, value float64, dst *float64) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if positive.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}

// setFloatFromString parses a string to float64 and sets the destination if positive.
func (s *configSetter) setFloatFromString(flag, value string, dst *float64) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if f <= 0 {
		return nil
	}
	*dst = f
	return nil
}

// setBoolFromString accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
