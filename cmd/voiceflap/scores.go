package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/voiceflap/internal/platform/tui"
	"github.com/vovakirdan/voiceflap/internal/storage"
)

var (
	flagLimit      int
	flagScoresTUI  bool
	flagScoresName string
	flagClear      bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top runs and personal bests.

Examples:
  voiceflap scores
  voiceflap scores --limit 20
  voiceflap scores --tui --name ann
  voiceflap scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Browse scores interactively")
	scoresCmd.Flags().StringVar(&flagScoresName, "name", "", "Player whose runs the interactive view lists")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs and personal bests")
}

func runScores(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.DBPath())
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		return clearScores(store, os.Stdout)
	}

	if flagScoresTUI {
		player := cfg.Game.Player
		if flagScoresName != "" {
			player = flagScoresName
		}
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, player, width, height)
	}

	runs, err := store.TopRuns(flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Println("High Scores - Voice Flap")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'voiceflap play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-6s  %-4s  %-8s  %s\n", "Rank", "Player", "Score", "HP", "Result", "Date")
	fmt.Printf("  %-4s  %-16s  %-6s  %-4s  %-8s  %s\n", "----", "------", "-----", "--", "------", "----")

	for i, r := range runs {
		result := "crashed"
		if r.Victory {
			result = "survived"
		}
		fmt.Printf("  %-4d  %-16s  %-6d  %-4d  %-8s  %s\n",
			i+1, r.Player, r.Score, r.Health, result, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	bests, err := store.Bests(flagLimit)
	if err == nil && len(bests) > 0 {
		fmt.Println()
		fmt.Println("Personal Bests")
		for _, b := range bests {
			fmt.Printf("  %-16s  %d\n", b.Player, b.Score)
		}
	}

	if stats, err := store.GetStats(); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Survived: %d  Best: %d  Average: %.1f\n",
			stats.Runs, stats.Victories, stats.HighScore, stats.AvgScore)
	}
	return nil
}

// clearScores wipes the leaderboard and reports how many runs were removed.
func clearScores(store *storage.Store, w io.Writer) error {
	stats, err := store.GetStats()
	if err != nil {
		return fmt.Errorf("reading scores: %w", err)
	}
	if err := store.ClearRuns(); err != nil {
		return fmt.Errorf("clearing scores: %w", err)
	}
	fmt.Fprintf(w, "Cleared %d runs and all personal bests.\n", stats.Runs)
	return nil
}
