package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/wrapsnake/internal/platform/tui"
	"github.com/vovakirdan/wrapsnake/internal/registry"
	"github.com/vovakirdan/wrapsnake/internal/storage"
)

var (
	flagScoresTUI   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show high scores",
	Long: `Display the top 10 scores for a variant (default "snake").

Examples:
  snake scores
  snake scores snake_classic
  snake scores --tui
  snake scores snake --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagScoresTUI, "tui", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all scores for the variant")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := variantArg(args)
	info, ok := registry.Lookup(gameID)
	if !ok {
		return fmt.Errorf("unknown variant %q; run 'snake list' to see variants", gameID)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		logger.Info("scores cleared", "variant", gameID)
		return nil
	}

	if flagScoresTUI {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		_, err := tui.RunScoreboard(store, gameID, width, height)
		return err
	}

	scores, err := store.TopScores(gameID, storage.DefaultTopLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "High Scores - %s\n\n", info.Title)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintf(out, "Play 'snake play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-6s  %-6s  %-7s  %-8s  %s\n", "Rank", "Score", "Length", "Board", "Outcome", "Date")
	fmt.Fprintf(out, "  %-4s  %-6s  %-6s  %-7s  %-8s  %s\n", "----", "-----", "------", "-----", "-------", "----")
	for i, e := range scores {
		fmt.Fprintf(out, "  %-4d  %-6d  %-6d  %-7s  %-8s  %s\n",
			i+1, e.Score, e.Length, fmt.Sprintf("%dx%d", e.GridSize, e.GridSize),
			e.Outcome, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GameStats(gameID); err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Games: %d  Best: %d  Average: %.1f  Wins: %d\n",
			stats.GamesCount, stats.HighScore, stats.AvgScore, stats.Wins)
	}
	return nil
}
