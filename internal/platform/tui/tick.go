// Package tui runs Blast in a terminal with Bubble Tea: the local and SSH
// game loops, the mode picker, the scoreboard and mouse/keyboard mapping.
//
// Ticks drive the game clock. Each tick advances the board's cascade
// scheduler by one frame, so animations play at the configured rate while
// the engine itself stays free of timers.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-blast/internal/core"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// tickCmd schedules the next frame. The period matches the game's own
// clock, so cascades play at the rate the game expects.
func tickCmd(cfg core.RuntimeConfig) tea.Cmd {
	return tea.Tick(cfg.TickDuration(), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
