package cliconfig

import (
	"testing"
	"time"
)

func TestDefaultConfigValidatesWithRecording(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RecordingPath = "events.jsonl"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config with recording should validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing recording", func(c *Config) { c.RecordingPath = "" }},
		{"missing output", func(c *Config) { c.OutputPath = "" }},
		{"zero refresh rate", func(c *Config) { c.RefreshRate = 0 }},
		{"zero pool capacity", func(c *Config) { c.PoolCapacity = 0 }},
		{"negative history", func(c *Config) { c.MaxHistorySamples = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.RecordingPath = "events.jsonl"
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestFrameInterval(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.FrameInterval(); got != time.Second/60 {
		t.Fatalf("expected %v, got %v", time.Second/60, got)
	}
	cfg.RefreshRate = 120
	if got := cfg.FrameInterval(); got != time.Second/120 {
		t.Fatalf("expected %v, got %v", time.Second/120, got)
	}
}
