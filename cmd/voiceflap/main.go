// voiceflap is a voice-controlled flappy game for the terminal. Shout, clap
// or press space to flap through the pipes until the clock runs out.
//
// Usage:
//
//	voiceflap play              - Play in the terminal
//	voiceflap simulate          - Run the engine headless and print the result
//	voiceflap scores            - Show the leaderboard
//	voiceflap serve             - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: from config, 60)
//	--seed <value>      - Set RNG seed for reproducible obstacles
//	--db <path>         - Set database path (default: ~/.voiceflap/scores.db)
//	--config <path>     - Use a specific config file
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "voiceflap",
	Short: "Voice Flap - flap through pipes with your voice",
	Long: `Voice Flap is a flappy game you steer with sound. Every loud enough
microphone frame lifts the bird; keys work too. Survive three minutes to win.

Available commands:
  play      - Play in the terminal
  simulate  - Run the simulation without a screen
  scores    - View the leaderboard
  serve     - Start SSH server for remote play

Examples:
  voiceflap play
  arecord -f S16_LE -c 1 -r 44100 -t raw | voiceflap play --audio -
  voiceflap play --clap-every 40
  voiceflap simulate --frames 3600 --seed 42 --audio clap.wav
  voiceflap scores --limit 20
  voiceflap serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (default ~/.voiceflap/scores.db)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}
