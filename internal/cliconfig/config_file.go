package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config for the TOML config file. Booleans are pointers
// so an absent key is distinguishable from an explicit false.
type FileConfig struct {
	Recording         string  `toml:"recording"`
	Output            string  `toml:"output"`
	Magnifier         *bool   `toml:"magnifier"`
	TouchExploration  *bool   `toml:"touch_exploration"`
	RefreshRate       float64 `toml:"refresh_rate"`
	Realtime          *bool   `toml:"realtime"`
	Watch             *bool   `toml:"watch"`
	PoolCapacity      int     `toml:"pool_capacity"`
	MaxHistorySamples int     `toml:"max_history_samples"`
}

// LoadFileConfig reads and parses a TOML config file.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config file: %w", err)
	}
	return fc, nil
}

// DefaultConfigPath returns $HOME/.touchpipe/config.toml, or empty when the
// home directory cannot be determined.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".touchpipe", "config.toml")
}

// ApplyFileConfig merges file values into cfg, skipping any setting whose
// flag was passed explicitly.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("recording", fc.Recording, &cfg.RecordingPath)
	s.setString("output", fc.Output, &cfg.OutputPath)

	s.setBool("magnifier", fc.Magnifier, &cfg.Magnifier)
	s.setBool("touch-exploration", fc.TouchExploration, &cfg.TouchExploration)
	s.setBool("realtime", fc.Realtime, &cfg.Realtime)
	s.setBool("watch", fc.Watch, &cfg.Watch)

	s.setFloat("refresh-rate", fc.RefreshRate, &cfg.RefreshRate)

	s.setInt("pool-capacity", fc.PoolCapacity, &cfg.PoolCapacity)
	s.setInt("max-history", fc.MaxHistorySamples, &cfg.MaxHistorySamples)

	return nil
}

// FileExists reports whether p exists and is not a directory.
func FileExists(p string) bool {
	info, err := os.Stat(p)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
