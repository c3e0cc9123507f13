package config

import (
	_ "embed"
)

//go:embed defaults/voiceflap.yaml
var defaultYAML []byte

// DefaultHostConfig returns the built-in configuration.
func DefaultHostConfig() HostConfig {
	return HostConfig{
		Game: GameConfig{
			TickRate: 60,
			Seed:     0,
			Player:   "guest",
		},
		Audio: AudioConfig{
			Source:       "none",
			SampleRate:   44100,
			FrameSamples: 0,
			ClapEvery:    45,
		},
		Storage: StorageConfig{},
		Log: LogConfig{
			Level: "info",
		},
	}
}
