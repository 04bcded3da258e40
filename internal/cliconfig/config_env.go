package cliconfig

import "os"

// ApplyEnvConfig merges TOUCHPIPE_* environment variables into cfg. Env
// values override the config file but lose to explicitly passed flags.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("recording", os.Getenv("TOUCHPIPE_RECORDING"), &cfg.RecordingPath)
	s.setString("output", os.Getenv("TOUCHPIPE_OUTPUT"), &cfg.OutputPath)

	if err := s.setFloatFromString("refresh-rate", os.Getenv("TOUCHPIPE_REFRESH_RATE"), &cfg.RefreshRate); err != nil {
		return err
	}
	if err := s.setIntFromString("pool-capacity", os.Getenv("TOUCHPIPE_POOL_CAPACITY"), &cfg.PoolCapacity); err != nil {
		return err
	}
	if err := s.setIntFromString("max-history", os.Getenv("TOUCHPIPE_MAX_HISTORY_SAMPLES"), &cfg.MaxHistorySamples); err != nil {
		return err
	}

	s.setBoolFromString("magnifier", os.Getenv("TOUCHPIPE_MAGNIFIER"), &cfg.Magnifier)
	s.setBoolFromString("touch-exploration", os.Getenv("TOUCHPIPE_TOUCH_EXPLORATION"), &cfg.TouchExploration)
	s.setBoolFromString("realtime", os.Getenv("TOUCHPIPE_REALTIME"), &cfg.Realtime)
	s.setBoolFromString("watch", os.Getenv("TOUCHPIPE_WATCH"), &cfg.Watch)

	return nil
}
