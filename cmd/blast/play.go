package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/platform/tui"
	"github.com/vovakirdan/tui-blast/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the given mode. Without a mode the picker menu opens.

Controls:
  Arrows/WASD/hjkl  - Move the cursor
  Space/Enter       - Tap the cell under the cursor
  Mouse click       - Tap a cell
  ?                 - Show a hint
  P                 - Pause
  R                 - Restart
  Esc/B             - Back to menu (paused or game over)
  Q/Ctrl+C          - Quit
  Ctrl+S            - Save a screenshot

Difficulty options:
  easy   - 250 moves, unlimited bombs and chain items
  normal - 200 moves
  hard   - 120 moves, at most 5 bombs and 2 chain items
  fixed  - Use the config file as is

Examples:
  blast play
  blast play blast --difficulty hard
  blast play blast_zen --seed 7
  blast play blast --config ./my-blast.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return runMenu(cmd, args)
	}
	if !registry.Exists(args[0]) {
		return fmt.Errorf("unknown mode %q (see 'blast list')", args[0])
	}

	game, err := newGame(args[0], "")
	if err != nil {
		return err
	}

	store := optionalResults()
	if store != nil {
		defer store.Close()
	}
	return tui.Run(game, runtimeConfig(), tui.ModelOptions{
		Store:  store,
		Player: playerName(),
		Source: "local",
		Logger: logger,
	})
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     gameSeed(),
	}
}

func playerName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
