// Package cliconfig resolves touchpipe CLI configuration from defaults, a
// TOML config file, TOUCHPIPE_* environment variables, and command-line
// flags, in increasing order of precedence.
package cliconfig

import (
	"fmt"
	"strconv"
	"time"
)

// Config holds CLI configuration for touchpipe.
type Config struct {
	// RecordingPath is the input trace to replay. "-" reads stdin.
	RecordingPath string

	// OutputPath receives delivered events as a trace. "-" writes stdout.
	OutputPath string

	// Magnifier enables the screen magnification stage.
	Magnifier bool

	// TouchExploration enables the touch exploration stage.
	TouchExploration bool

	// RefreshRate is the display refresh rate in Hz used for frame pacing.
	RefreshRate float64

	// Realtime paces the replay against the wall clock instead of
	// stepping frames deterministically from event timestamps.
	Realtime bool

	// Watch reloads feature flags from the config file on change.
	Watch bool

	// PoolCapacity bounds the batch-node free list.
	PoolCapacity int

	// MaxHistorySamples caps samples per merged batch. Zero is unlimited.
	MaxHistorySamples int
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		OutputPath:        "-",
		RefreshRate:       60,
		PoolCapacity:      32,
		MaxHistorySamples: 128,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.RecordingPath == "" {
		return fmt.Errorf("recording is required")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output is required")
	}
	if c.RefreshRate <= 0 {
		return fmt.Errorf("refresh rate must be positive")
	}
	if c.PoolCapacity <= 0 {
		return fmt.Errorf("pool capacity must be positive")
	}
	if c.MaxHistorySamples < 0 {
		return fmt.Errorf("max history samples must not be negative")
	}
	return nil
}

// FrameInterval returns the duration of one display frame.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(float64(time.Second) / c.RefreshRate)
}

// configSetter helps apply configuration values while respecting flag
// precedence. It only applies values when the corresponding flag has not
// been explicitly set.
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

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables, which arrive as strings.
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

// setFloatFromString parses a string to float64 and sets the destination if
// valid. Used for environment variables, which arrive as strings.
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

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true" and "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
