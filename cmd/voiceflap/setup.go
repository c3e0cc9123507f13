package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/voiceflap/internal/audio"
	"github.com/vovakirdan/voiceflap/internal/config"
)

// loadConfig reads the config file and applies global flags the user set
// explicitly on top of it.
func loadConfig(cmd *cobra.Command) (config.HostConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Game.TickRate = flagFPS
	}
	if flags.Changed("seed") {
		cfg.Game.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = strings.ToLower(flagLogLevel)
	}
	if flags.Changed("log-file") {
		cfg.Log.File = flagLogFile
	}

	return cfg, cfg.Validate()
}

// newLogger builds the root logger. fallback is used when no log file is
// configured; pass nil to log to stderr. The returned cleanup closes the
// log file, if one was opened.
func newLogger(cfg config.HostConfig, fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level %q: %w", cfg.Log.Level, err)
	}

	var w io.Writer = os.Stderr
	cleanup := func() {}
	switch {
	case cfg.Log.File != "":
		if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		cleanup = func() { f.Close() }
	case fallback != nil:
		w = fallback
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "voiceflap",
		Level:           level,
	})
	return logger, cleanup, nil
}

// audioOptions maps the config onto audio source options.
func audioOptions(cfg config.HostConfig) audio.Options {
	return audio.Options{
		Kind:       cfg.Audio.Source,
		Path:       cfg.Audio.Path,
		SampleRate: cfg.Audio.SampleRate,
		TickRate:   cfg.Game.TickRate,
		ClapEvery:  cfg.Audio.ClapEvery,
	}
}

// frameSamples returns the configured frame size, or the one implied by
// the sample and tick rates.
func frameSamples(cfg config.HostConfig) int {
	if cfg.Audio.FrameSamples > 0 {
		return cfg.Audio.FrameSamples
	}
	return audioOptions(cfg).FrameSamples()
}

// applyAudioFlag sets the audio source from an --audio value: "-" reads
// raw PCM from stdin, *.wav files are decoded, anything else is raw PCM.
func applyAudioFlag(cfg *config.HostConfig, value string) {
	switch {
	case value == "":
		return
	case value == "-":
		cfg.Audio.Source = audio.KindPCM
		cfg.Audio.Path = "-"
	case strings.EqualFold(filepath.Ext(value), ".wav"):
		cfg.Audio.Source = audio.KindWAV
		cfg.Audio.Path = value
	default:
		cfg.Audio.Source = audio.KindPCM
		cfg.Audio.Path = value
	}
}
