package blast

import "github.com/vovakirdan/tui-blast/internal/games/blast/engine"

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StateResolving   GameStateType = "resolving"
	StateWon         GameStateType = "won"
	StateOutOfMoves  GameStateType = "out_of_moves"
	StateStuck       GameStateType = "stuck"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game for determinism tests and the remote API.
type Snapshot struct {
	Mode         string          `json:"mode"`
	Tick         uint64          `json:"tick"`
	State        GameStateType   `json:"state"`
	Score        int             `json:"score"`
	MovesLeft    int             `json:"movesLeft"` // -1 when unlimited
	MovesUsed    int             `json:"movesUsed"`
	BlockersLeft int             `json:"blockersLeft"`
	Palette      []string        `json:"palette"`
	Board        engine.Snapshot `json:"board"`
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.eng.IsLocked():
		state = StateResolving
	case g.session.Won():
		state = StateWon
	case g.session.Lost():
		state = StateOutOfMoves
	case g.eng.Stuck():
		state = StateStuck
	}

	palette := make([]string, len(g.settings.Colors))
	for i, c := range g.settings.Colors {
		palette[i] = c.String()
	}

	return Snapshot{
		Mode:         string(g.mode),
		Tick:         g.tick,
		State:        state,
		Score:        g.Score(),
		MovesLeft:    g.session.MovesLeft(),
		MovesUsed:    g.session.MovesUsed(),
		BlockersLeft: g.session.BlockersLeft(),
		Palette:      palette,
		Board:        g.eng.Snapshot(),
	}
}
