package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blast/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		modes := registry.List()
		if len(modes) == 0 {
			return fmt.Errorf("no modes registered")
		}

		store := optionalResults()
		if store != nil {
			defer store.Close()
		}

		t := cliTable("ID", "Title", "Best")
		for _, m := range modes {
			best := "-"
			if store != nil {
				if score, err := store.HighScore(m.ID); err == nil && score > 0 {
					best = strconv.Itoa(score)
				}
			}
			t.Row(m.ID, m.Title, best)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, t)
		fmt.Fprintln(out, "Run 'blast play <id>' to play a mode.")
		return nil
	},
}
