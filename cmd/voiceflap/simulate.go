package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/voiceflap/internal/audio"
	"github.com/vovakirdan/voiceflap/internal/engine"
	"github.com/vovakirdan/voiceflap/internal/storage"
)

var (
	flagFrames       int
	flagSimAudio     string
	flagSimClapEvery int
	flagSave         bool
	flagSimName      string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the simulation without a screen",
	Long: `Run the engine for a number of frames and print the final status.

Audio is fed one frame per simulated tick, from a WAV file, a raw PCM
file, or a synthetic clap track. Without audio the bird only falls.

The status vector is printed as [score, timeLeft, gameOver, victory, health].

Examples:
  voiceflap simulate --frames 600 --seed 1
  voiceflap simulate --frames 11250 --seed 42 --clap-every 30
  voiceflap simulate --audio clap.wav --save --name bot`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagFrames, "frames", 600, "Number of frames to simulate")
	simulateCmd.Flags().StringVar(&flagSimAudio, "audio", "", "Audio input: a .wav file or raw PCM file")
	simulateCmd.Flags().IntVar(&flagSimClapEvery, "clap-every", 0, "Use a synthetic clap every N frames as audio input")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Store the run in the scores database")
	simulateCmd.Flags().StringVar(&flagSimName, "name", "sim", "Player name for a saved run")
}

// simResult summarizes a headless run.
type simResult struct {
	Status     engine.Status
	Frames     int
	AudioFlaps int
	Hits       int
	Passed     int
}

// simulate drives sess for up to frames frames, feeding one audio frame per
// tick while src lasts. It stops early once the run ends.
func simulate(sess *engine.Session, src audio.Source, frameSize, frames int, logger *log.Logger) (simResult, error) {
	var res simResult
	var buf []int16
	if src != nil {
		buf = make([]int16, frameSize)
	}

	for i := 0; i < frames && !sess.Status().Terminal(); i++ {
		if src != nil {
			n, err := src.ReadFrame(buf)
			if n > 0 && sess.SubmitAudio(buf[:n]) {
				res.AudioFlaps++
			}
			if errors.Is(err, io.EOF) {
				logger.Debug("audio exhausted", "frame", sess.Frame())
				src = nil
			} else if err != nil {
				return res, fmt.Errorf("read audio: %w", err)
			}
		}

		step := sess.Step()
		for _, ev := range step.Events {
			switch ev.Kind {
			case engine.EventHit:
				res.Hits++
			case engine.EventPassed:
				res.Passed++
			}
		}
	}

	res.Status = sess.Status()
	res.Frames = sess.Frame()
	return res, nil
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if flagFrames <= 0 {
		return fmt.Errorf("--frames must be positive, got %d", flagFrames)
	}
	if flagSimAudio == "-" {
		return errors.New("simulate cannot read audio from stdin; pass a file")
	}
	applyAudioFlag(&cfg, flagSimAudio)
	if flagSimClapEvery > 0 {
		cfg.Audio.Source = audio.KindClap
		cfg.Audio.ClapEvery = flagSimClapEvery
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg, nil)
	if err != nil {
		return err
	}
	defer closeLog()

	seed := cfg.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	src, err := audio.Open(audioOptions(cfg))
	if err != nil {
		return err
	}
	if src != nil {
		defer src.Close()
	}

	sess := engine.New(engine.WithSeed(seed), engine.WithLogger(logger))
	res, err := simulate(sess, src, frameSamples(cfg), flagFrames, logger)
	if err != nil {
		return err
	}

	printSimResult(os.Stdout, seed, res)

	if !flagSave {
		return nil
	}

	store, err := storage.Open(cfg.DBPath())
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.SaveRun(storage.Run{
		Player:  flagSimName,
		Score:   res.Status.Score,
		Health:  res.Status.Health,
		Frames:  res.Frames,
		Victory: res.Status.Victory,
	})
	if err != nil {
		return err
	}
	if _, err := store.RecordBest(flagSimName, res.Status.Score); err != nil {
		logger.Warn("could not update personal best", "player", flagSimName, "error", err)
	}
	fmt.Printf("Saved run %s\n", id)
	return nil
}

func printSimResult(w io.Writer, seed int64, res simResult) {
	st := res.Status
	outcome := "running"
	switch {
	case st.Victory:
		outcome = "victory"
	case st.GameOver:
		outcome = "game over"
	}

	fmt.Fprintf(w, "Seed:        %d\n", seed)
	fmt.Fprintf(w, "Frames:      %d\n", res.Frames)
	fmt.Fprintf(w, "Outcome:     %s\n", outcome)
	fmt.Fprintf(w, "Score:       %d\n", st.Score)
	fmt.Fprintf(w, "Health:      %d\n", st.Health)
	fmt.Fprintf(w, "Time left:   %.2fs\n", st.TimeLeft)
	fmt.Fprintf(w, "Audio flaps: %d\n", res.AudioFlaps)
	fmt.Fprintf(w, "Hits:        %d\n", res.Hits)
	fmt.Fprintf(w, "Passed:      %d\n", res.Passed)
	fmt.Fprintf(w, "Status:      %v\n", st.Vector())
}
