package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/voiceflap/internal/audio"
	"github.com/vovakirdan/voiceflap/internal/config"
	"github.com/vovakirdan/voiceflap/internal/core"
	"github.com/vovakirdan/voiceflap/internal/games/flappy"
	"github.com/vovakirdan/voiceflap/internal/platform/tui"
	"github.com/vovakirdan/voiceflap/internal/storage"
)

var (
	flagAudio     string
	flagClapEvery int
	flagName      string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a run in the terminal.

Controls:
  Space/W/Up - Flap
  P/Esc      - Pause
  R          - Restart (after the run ends)
  B/Tab      - Scoreboard (when paused or finished)
  Ctrl+S     - Save a text screenshot
  Q/Ctrl+C   - Quit

Audio:
  --audio -          Raw signed 16-bit little-endian mono PCM on stdin
  --audio FILE.wav   Decode a WAV file, one frame per tick
  --audio FILE       Raw PCM file
  --clap-every N     Synthetic clap every N frames (demo mode)

Keyboard input keeps working when PCM is piped in; it is read from the
terminal instead of stdin.

Examples:
  voiceflap play
  arecord -f S16_LE -c 1 -r 44100 -t raw | voiceflap play --audio -
  voiceflap play --audio ./clap.wav
  voiceflap play --clap-every 45 --name ann`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagAudio, "audio", "", `Audio input: "-" for PCM on stdin, a .wav file, or a raw PCM file`)
	playCmd.Flags().IntVar(&flagClapEvery, "clap-every", 0, "Use a synthetic clap every N frames as audio input")
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name for the leaderboard")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyAudioFlag(&cfg, flagAudio)
	if flagClapEvery > 0 {
		cfg.Audio.Source = audio.KindClap
		cfg.Audio.ClapEvery = flagClapEvery
	}
	if flagName != "" {
		cfg.Game.Player = flagName
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The terminal belongs to the game, so logs go to a file.
	if cfg.Log.File == "" {
		if dir := config.UserDir(); dir != "" {
			cfg.Log.File = filepath.Join(dir, "voiceflap.log")
		}
	}
	logger, closeLog, err := newLogger(cfg, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	rc := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	if cfg.Game.TickRate > 0 {
		rc.TickRate = cfg.Game.TickRate
	}
	rc.Seed = cfg.Game.Seed
	if cfg.Game.Player != "" {
		rc.Player = cfg.Game.Player
	}

	opts := audioOptions(cfg)
	src, err := audio.Open(opts)
	if err != nil {
		return err
	}
	if src != nil {
		defer src.Close()
		logger.Info("audio input", "source", opts.Kind, "path", opts.Path, "frame", frameSamples(cfg))
	}

	store, err := storage.Open(cfg.DBPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	var screenshots string
	if dir := config.UserDir(); dir != "" {
		screenshots = filepath.Join(dir, "screenshots")
	}

	err = tui.Run(flappy.New(logger), rc, tui.Options{
		Store:         store,
		Logger:        logger,
		Audio:         src,
		AudioLive:     opts.Live(),
		FrameSamples:  frameSamples(cfg),
		ScreenshotDir: screenshots,
	})
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
