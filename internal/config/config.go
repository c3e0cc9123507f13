// Package config provides YAML-based host configuration loading for
// voiceflap: frame rate, seed, audio source, score database and logging.
package config

import (
	"errors"
	"fmt"
)

// HostConfig contains everything the host needs to run a session. Engine
// rules are fixed constants and are not configurable here.
type HostConfig struct {
	Game    GameConfig    `yaml:"game"`
	Audio   AudioConfig   `yaml:"audio"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// GameConfig defines how the host drives the simulation.
type GameConfig struct {
	TickRate int    `yaml:"tick_rate"` // Frames per second
	Seed     int64  `yaml:"seed"`      // 0 picks a time-based seed
	Player   string `yaml:"player"`
}

// AudioConfig selects the microphone feed.
type AudioConfig struct {
	Source       string `yaml:"source"` // "none", "wav", "pcm" or "clap"
	Path         string `yaml:"path"`
	SampleRate   int    `yaml:"sample_rate"`
	FrameSamples int    `yaml:"frame_samples"` // 0 derives it from sample_rate and tick_rate
	ClapEvery    int    `yaml:"clap_every"`    // Frames between synthetic claps
}

// StorageConfig defines where scores are kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path"` // Empty uses ~/.voiceflap/scores.db
}

// LogConfig controls the diagnostic logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
	File  string `yaml:"file"`  // Empty logs to stderr
}

var validSources = map[string]bool{
	"none": true,
	"wav":  true,
	"pcm":  true,
	"clap": true,
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Validate checks the config for values the host cannot run with.
func (c HostConfig) Validate() error {
	if c.Game.TickRate <= 0 {
		return fmt.Errorf("%w: game.tick_rate must be positive, got %d", ErrInvalid, c.Game.TickRate)
	}
	if c.Audio.SampleRate <= 0 {
		return fmt.Errorf("%w: audio.sample_rate must be positive, got %d", ErrInvalid, c.Audio.SampleRate)
	}
	if c.Audio.FrameSamples < 0 {
		return fmt.Errorf("%w: audio.frame_samples must not be negative, got %d", ErrInvalid, c.Audio.FrameSamples)
	}
	if c.Audio.ClapEvery < 0 {
		return fmt.Errorf("%w: audio.clap_every must not be negative, got %d", ErrInvalid, c.Audio.ClapEvery)
	}
	if !validSources[c.Audio.Source] {
		return fmt.Errorf("%w: unknown audio.source %q", ErrInvalid, c.Audio.Source)
	}
	if c.Audio.Source == "wav" && c.Audio.Path == "" {
		return fmt.Errorf("%w: audio.path is required for wav sources", ErrInvalid)
	}
	if !validLevels[c.Log.Level] {
		return fmt.Errorf("%w: unknown log.level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}
