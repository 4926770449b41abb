// Package config provides YAML-based game configuration loading and
// difficulty presets for Blast.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/tui-blast/internal/core"
)

// BlastConfig contains all configuration for a Blast board.
type BlastConfig struct {
	Board      BlastBoard    `yaml:"board"`
	Palette    []string      `yaml:"palette"`
	SpawnQueue []int         `yaml:"spawn_queue"`
	Specials   BlastSpecials `yaml:"specials"`
	Session    BlastSession  `yaml:"session"`
	Timings    BlastTimings  `yaml:"timings"`
	Shuffle    BlastShuffle  `yaml:"shuffle"`
}

// BlastBoard defines the grid. When Layout is set it replaces the
// rows/cols/active region with an explicit ASCII level.
type BlastBoard struct {
	Rows       int      `yaml:"rows"`
	Cols       int      `yaml:"cols"`
	ActiveRows int      `yaml:"active_rows"`
	ActiveCols int      `yaml:"active_cols"`
	Layout     []string `yaml:"layout"`
}

// BlastSpecials switches reward items on and caps how many a game may create.
type BlastSpecials struct {
	BombEnabled  bool `yaml:"bomb_enabled"`
	ChainEnabled bool `yaml:"chain_enabled"`
	MaxBombs     int  `yaml:"max_bombs"`  // 0 = unlimited
	MaxChains    int  `yaml:"max_chains"` // 0 = unlimited
}

// BlastSession defines the move budget and scoring.
type BlastSession struct {
	Moves         int `yaml:"moves"` // 0 = unlimited
	BlockerPoints int `yaml:"blocker_points"`
	MovePoints    int `yaml:"move_points"` // bonus per unused move on a win
}

// BlastTimings are the effect durations, written as Go durations ("80ms").
type BlastTimings struct {
	Clear        time.Duration `yaml:"clear"`
	SpecialSpawn time.Duration `yaml:"special_spawn"`
	Bomb         time.Duration `yaml:"bomb"`
	Chain        time.Duration `yaml:"chain"`
	Fall         time.Duration `yaml:"fall"`
	SpawnStagger time.Duration `yaml:"spawn_stagger"`
	Settle       time.Duration `yaml:"settle"`
	Shuffle      time.Duration `yaml:"shuffle"`
}

// BlastShuffle bounds deadlock reshuffles.
type BlastShuffle struct {
	MaxAttempts int `yaml:"max_attempts"`
}

// Colors resolves the palette names. Unknown names are reported; an empty
// palette degrades to a single default color.
func (c BlastConfig) Colors() ([]core.Color, error) {
	if len(c.Palette) == 0 {
		return []core.Color{core.ColorBlue}, nil
	}
	colors := make([]core.Color, 0, len(c.Palette))
	for _, name := range c.Palette {
		col, err := core.ParseColor(name)
		if err != nil {
			return nil, fmt.Errorf("config: palette: %w", err)
		}
		colors = append(colors, col)
	}
	return colors, nil
}

// Validate reports every invalid field.
func (c BlastConfig) Validate() error {
	var errs []error
	if len(c.Board.Layout) == 0 {
		if c.Board.Rows <= 0 || c.Board.Cols <= 0 {
			errs = append(errs, fmt.Errorf("config: board: dimensions must be positive, got %dx%d", c.Board.Rows, c.Board.Cols))
		}
		if c.Board.ActiveRows > c.Board.Rows || c.Board.ActiveCols > c.Board.Cols {
			errs = append(errs, fmt.Errorf("config: board: active region %dx%d exceeds board", c.Board.ActiveRows, c.Board.ActiveCols))
		}
	}
	if _, err := c.Colors(); err != nil {
		errs = append(errs, err)
	}
	size := len(c.Palette)
	for i, idx := range c.SpawnQueue {
		if idx < 0 || (size > 0 && idx >= size) {
			errs = append(errs, fmt.Errorf("config: spawn_queue[%d]: colour %d outside palette of %d", i, idx, size))
		}
	}
	if c.Session.Moves < 0 {
		errs = append(errs, errors.New("config: session: moves must not be negative"))
	}
	if c.Specials.MaxBombs < 0 || c.Specials.MaxChains < 0 {
		errs = append(errs, errors.New("config: specials: caps must not be negative"))
	}
	for name, d := range c.Timings.byName() {
		if d < 0 {
			errs = append(errs, fmt.Errorf("config: timings: %s must not be negative", name))
		}
	}
	return errors.Join(errs...)
}

func (t BlastTimings) byName() map[string]time.Duration {
	return map[string]time.Duration{
		"clear":         t.Clear,
		"special_spawn": t.SpecialSpawn,
		"bomb":          t.Bomb,
		"chain":         t.Chain,
		"fall":          t.Fall,
		"spawn_stagger": t.SpawnStagger,
		"settle":        t.Settle,
		"shuffle":       t.Shuffle,
	}
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset resolves a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(name)); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
	}
}

// ApplyBlastPreset adjusts the move budget and special caps. The fixed preset
// keeps the loaded values untouched.
func ApplyBlastPreset(cfg *BlastConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Session.Moves = 250
		cfg.Specials.MaxBombs = 0
		cfg.Specials.MaxChains = 0
	case DifficultyNormal:
		cfg.Session.Moves = 200
	case DifficultyHard:
		cfg.Session.Moves = 120
		cfg.Specials.MaxBombs = 5
		cfg.Specials.MaxChains = 2
	}
}
