// Package room keeps the boards played through the remote API. Each room owns
// one Blast game and serializes taps on it.
package room

import (
	"sync"
	"time"

	"github.com/vovakirdan/tui-blast/internal/games/blast"
	"github.com/vovakirdan/tui-blast/internal/games/blast/engine"
)

// Room is one remotely played game.
type Room struct {
	ID         string
	Mode       blast.Mode
	Difficulty string
	Player     string
	Seed       int64
	CreatedAt  time.Time

	mu       sync.Mutex
	game     *blast.Game
	resultID string
}

// View is the JSON form of a room.
type View struct {
	ID         string         `json:"id"`
	Mode       string         `json:"mode"`
	Difficulty string         `json:"difficulty"`
	Player     string         `json:"player,omitempty"`
	Seed       int64          `json:"seed"`
	CreatedAt  time.Time      `json:"createdAt"`
	ResultID   string         `json:"resultId,omitempty"`
	Game       blast.Snapshot `json:"game"`
}

// SpawnView describes a reward item created by a tap.
type SpawnView struct {
	At    engine.Coord `json:"at"`
	Kind  string       `json:"kind"`
	Color int          `json:"color"`
}

// TapResult is the settled outcome of one tap.
type TapResult struct {
	Outcome  string         `json:"outcome"`
	Tapped   engine.Coord   `json:"tapped"`
	Match    string         `json:"match,omitempty"`
	Trigger  string         `json:"trigger,omitempty"`
	Target   int            `json:"target"`
	Cells    []engine.Coord `json:"cells"`
	Blockers []engine.Coord `json:"blockers"`
	Spawn    *SpawnView     `json:"spawn,omitempty"`
	Events   []engine.Event `json:"events"`
	GameOver bool           `json:"gameOver"`
	ResultID string         `json:"resultId,omitempty"`
	Game     blast.Snapshot `json:"game"`
}

// HintView is the suggested cell, if the board has one.
type HintView struct {
	Found bool `json:"found"`
	Row   int  `json:"row"`
	Col   int  `json:"col"`
}

// View returns a consistent copy of the room.
func (r *Room) View() View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewLocked()
}

func (r *Room) viewLocked() View {
	return View{
		ID:         r.ID,
		Mode:       string(r.Mode),
		Difficulty: r.Difficulty,
		Player:     r.Player,
		Seed:       r.Seed,
		CreatedAt:  r.CreatedAt,
		ResultID:   r.resultID,
		Game:       r.game.Snapshot(),
	}
}

// Hint returns the cell the engine would suggest.
func (r *Room) Hint() HintView {
	r.mu.Lock()
	defer r.mu.Unlock()
	at, ok := r.game.Hint()
	if !ok {
		return HintView{}
	}
	return HintView{Found: true, Row: at.Row, Col: at.Col}
}

// Over reports whether the game has ended.
func (r *Room) Over() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.State().GameOver
}

func newTapResult(res engine.TurnResult) TapResult {
	out := TapResult{
		Outcome:  res.Outcome.String(),
		Tapped:   res.Tapped,
		Target:   res.Target,
		Cells:    res.Cells,
		Blockers: res.Blockers,
	}
	switch res.Outcome {
	case engine.OutcomeCleared:
		out.Match = res.Match.String()
	case engine.OutcomeSpecial:
		out.Trigger = res.Trigger.String()
	}
	if res.Spawn != nil {
		out.Spawn = &SpawnView{
			At:    res.Spawn.At,
			Kind:  res.Spawn.Piece.Kind.String(),
			Color: res.Spawn.Piece.Color,
		}
	}
	if out.Cells == nil {
		out.Cells = []engine.Coord{}
	}
	if out.Blockers == nil {
		out.Blockers = []engine.Coord{}
	}
	return out
}
