package blast

import (
	"fmt"

	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast/engine"
)

// Settings is a resolved configuration ready to build engines from.
type Settings struct {
	Engine engine.Config
	Layout *engine.Board // nil unless the config carries an ASCII level
	Colors []core.Color
	Moves  int
	Bombs  int // cap, 0 = unlimited
	Chains int // cap, 0 = unlimited
	Points Points
}

// Points are the scoring weights.
type Points struct {
	Blocker int
	Move    int
}

// Resolve converts a loaded config into engine settings.
func Resolve(cfg config.BlastConfig, seed int64) (Settings, error) {
	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}
	colors, err := cfg.Colors()
	if err != nil {
		return Settings{}, err
	}

	ec := engine.Config{
		Rows:         cfg.Board.Rows,
		Cols:         cfg.Board.Cols,
		ActiveRows:   cfg.Board.ActiveRows,
		ActiveCols:   cfg.Board.ActiveCols,
		Colors:       len(colors),
		SpawnQueue:   append([]int(nil), cfg.SpawnQueue...),
		BombEnabled:  cfg.Specials.BombEnabled,
		ChainEnabled: cfg.Specials.ChainEnabled,
		Timings: engine.Timings{
			Clear:        cfg.Timings.Clear,
			SpecialSpawn: cfg.Timings.SpecialSpawn,
			Bomb:         cfg.Timings.Bomb,
			Chain:        cfg.Timings.Chain,
			Fall:         cfg.Timings.Fall,
			SpawnStagger: cfg.Timings.SpawnStagger,
			Settle:       cfg.Timings.Settle,
			Shuffle:      cfg.Timings.Shuffle,
		},
		ShuffleAttempts: cfg.Shuffle.MaxAttempts,
		Seed:            seed,
	}

	s := Settings{
		Engine: ec,
		Colors: colors,
		Moves:  cfg.Session.Moves,
		Bombs:  cfg.Specials.MaxBombs,
		Chains: cfg.Specials.MaxChains,
		Points: Points{Blocker: cfg.Session.BlockerPoints, Move: cfg.Session.MovePoints},
	}

	if len(cfg.Board.Layout) > 0 {
		b, err := engine.ParseBoard(cfg.Board.Layout...)
		if err != nil {
			return Settings{}, fmt.Errorf("config: board layout: %w", err)
		}
		for _, at := range b.Coords(engine.CellPiece) {
			if c := b.GetAt(at).Piece.Color; c >= len(colors) {
				return Settings{}, fmt.Errorf("config: board layout: colour %d at %v outside palette of %d", c, at, len(colors))
			}
		}
		s.Layout = b
	}
	return s, nil
}

// NewEngine builds an engine from the settings. Layout boards are cloned so
// the settings can be reused across restarts.
func (s Settings) NewEngine(opts ...engine.Option) *engine.Engine {
	if s.Layout != nil {
		return engine.NewWithBoard(s.Engine, s.Layout.Clone(), opts...)
	}
	return engine.New(s.Engine, opts...)
}

// ColorOf maps a piece colour index to a screen colour.
func (s Settings) ColorOf(idx int) core.Color {
	if idx < 0 || idx >= len(s.Colors) {
		return core.ColorWhite
	}
	return s.Colors[idx]
}
