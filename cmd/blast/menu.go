package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blast/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode and difficulty interactively",
	Long: `Open the mode picker. Finished games return here so you can play again.

Controls:
  Up/Down/j/k     - Choose a mode
  Left/Right/h/l  - Choose a difficulty
  Enter/Space     - Play
  Tab             - High scores
  Q               - Quit`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := optionalResults()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()
	player := playerName()
	for {
		choice, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}
		cfg = choice.Config

		switch {
		case choice.Quit:
			return nil
		case choice.WantsScoreboard:
			back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !back {
				return nil
			}
			continue
		}

		game, err := newGame(choice.GameID, choice.Difficulty)
		if err != nil {
			return err
		}
		cfg.Seed = gameSeed()
		err = tui.Run(game, cfg, tui.ModelOptions{
			Store:  store,
			Player: player,
			Source: "local",
			Logger: logger,
		})
		if err != nil {
			return fmt.Errorf("run game: %w", err)
		}
	}
}
