package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blast/internal/platform/tui"
	"github.com/vovakirdan/tui-blast/internal/registry"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Print the best results for a mode. Without a mode the interactive
scoreboard opens.

Examples:
  blast scores
  blast scores blast
  blast scores blast_zen --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of results to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		cfg := runtimeConfig()
		_, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	mode := args[0]
	game, err := registry.Create(mode)
	if err != nil {
		return fmt.Errorf("unknown mode %q (see 'blast list')", mode)
	}
	results, err := store.TopResults(mode, flagScoresLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "High Scores - %s\n\n", game.Title())
	if len(results) == 0 {
		fmt.Fprintf(out, "No results yet. Run 'blast play %s' to set one.\n", mode)
		return nil
	}

	t := cliTable("#", "Score", "Player", "Moves", "Pieces", "Bricks", "Result", "Date")
	for i, r := range results {
		outcome := "lost"
		if r.Won {
			outcome = "won"
		}
		t.Row(strconv.Itoa(i+1), strconv.Itoa(r.Score), truncate(r.Player, 12),
			strconv.Itoa(r.MovesUsed), strconv.Itoa(r.PiecesCleared),
			strconv.Itoa(r.BlockersDestroyed), outcome, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(out, t)

	if stats, err := store.GetGameStats(mode); err == nil {
		fmt.Fprintf(out, "\nBest: %d  Games: %d  Wins: %d  Avg: %.0f\n",
			stats.HighScore, stats.GamesCount, stats.Wins, stats.AvgScore)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// cliTable is the plain bordered table used for command output.
func cliTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("240"))).
		Headers(headers...)
}
