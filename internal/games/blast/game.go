// Package blast registers the Blast tile-popping puzzle with the game
// registry. The simulation lives in the engine subpackage; this package adds
// the session rules, input mapping and rendering.
package blast

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast/engine"
	"github.com/vovakirdan/tui-blast/internal/registry"
)

// Mode represents the game mode.
type Mode string

const (
	ModeClassic Mode = "blast"     // move budget, win by clearing every brick
	ModeZen     Mode = "blast_zen" // no move limit
)

// Cell footprint on screen.
const (
	cellWidth  = 3
	cellHeight = 1
	flashTicks = 6
)

// Package-level defaults for games created through the registry.
var (
	defaultsMu    sync.RWMutex
	defaultConfig = config.DefaultBlastConfig()
	defaultLogger = log.New(io.Discard)
)

// SetConfig sets the configuration used by games created afterwards.
func SetConfig(cfg config.BlastConfig) {
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaultConfig = cfg
}

// SetLogger sets the logger handed to games created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		return
	}
	defaultsMu.Lock()
	defer defaultsMu.Unlock()
	defaultLogger = l
}

// Game implements registry.Game for Blast.
type Game struct {
	mode   Mode
	cfg    config.BlastConfig
	logger *log.Logger

	settings Settings
	eng      *engine.Engine
	sched    *engine.ManualScheduler
	session  *Session
	events   []engine.Event
	flash    map[engine.Coord]int

	cursor   engine.Coord
	showHint bool
	tick     uint64
	tickDur  time.Duration

	// Screen layout
	screenW int
	screenH int
	grid    core.Grid

	paused    bool
	tooSmall  bool
	configErr error
}

// New creates a classic game with the package defaults.
func New() *Game {
	return newWithDefaults(ModeClassic)
}

// NewZen creates a game without a move limit.
func NewZen() *Game {
	return newWithDefaults(ModeZen)
}

func newWithDefaults(mode Mode) *Game {
	defaultsMu.RLock()
	defer defaultsMu.RUnlock()
	return NewWithConfig(mode, defaultConfig, defaultLogger)
}

// NewWithConfig creates a game with an explicit configuration and logger.
func NewWithConfig(mode Mode, cfg config.BlastConfig, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		mode:   mode,
		cfg:    cfg,
		logger: logger.WithPrefix(string(mode)),
	}
}

func init() {
	registry.Register(string(ModeClassic), func() registry.Game {
		return New()
	})
	registry.Register(string(ModeZen), func() registry.Game {
		return NewZen()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return string(g.mode)
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeZen {
		return "Blast (Zen)"
	}
	return "Blast"
}

// Reset builds a fresh board and starts the opening fill.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	settings, err := Resolve(g.cfg, cfg.Seed)
	g.configErr = err
	if err != nil {
		g.logger.Error("invalid blast config, using defaults", "err", err)
		settings, _ = Resolve(config.DefaultBlastConfig(), cfg.Seed)
	}
	g.settings = settings

	moves := settings.Moves
	if g.mode == ModeZen {
		moves = 0
	}
	g.session = NewSession(moves, 0)
	g.session.SetCaps(settings.Bombs, settings.Chains)

	g.sched = engine.NewManualScheduler()
	g.events = nil
	g.flash = make(map[engine.Coord]int)
	g.eng = settings.NewEngine(
		engine.WithLogger(g.logger),
		engine.WithSession(g.session),
		engine.WithScheduler(g.sched),
		engine.WithEffects(engine.EffectsFunc(g.onEvent)),
	)
	g.session.blockersTotal = g.eng.Board().Count(engine.CellBlocker)
	g.eng.Start()

	g.tick = 0
	g.tickDur = cfg.TickDuration()
	g.paused = false
	g.showHint = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.layout()

	g.cursor = engine.At(0, 0)
	if at, ok := engine.FindHint(g.eng.Board()); ok {
		g.cursor = at
	}
}

// layout centres the board and checks the screen is large enough.
func (g *Game) layout() {
	b := g.eng.Board()
	boardW := b.Cols()*cellWidth + 2
	boardH := b.Rows()*cellHeight + 2
	minW := max(boardW, 34)
	minH := boardH + hudHeight + footerHeight

	g.tooSmall = g.screenW < minW || g.screenH < minH
	originX := (g.screenW-boardW)/2 + 1
	g.grid = core.Grid{
		Origin: core.Point{X: originX, Y: hudHeight + 1},
		Rows:   b.Rows(),
		Cols:   b.Cols(),
		CellW:  cellWidth,
		CellH:  cellHeight,
	}
}

// Resize re-centres the board for a new screen size without resetting.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	if g.eng != nil {
		g.layout()
	}
}

func (g *Game) onEvent(ev engine.Event) {
	g.events = append(g.events, ev)
	switch ev.Phase {
	case engine.PhaseSpawn:
		if ev.Kind.IsSpecial() {
			g.session.RegisterSpawn(ev.Kind)
		}
	case engine.PhaseMatch, engine.PhaseSpecialBlast, engine.PhaseBlockerDestroyed:
		g.flash[ev.At] = flashTicks
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++

	if g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.sched.Advance(g.tickDur)
	for at, n := range g.flash {
		if n <= 1 {
			delete(g.flash, at)
		} else {
			g.flash[at] = n - 1
		}
	}

	if g.session.IsGameOver() || g.eng.Stuck() {
		return core.StepResult{State: g.State()}
	}

	g.moveCursor(in)
	if in.Has(core.ActionHint) {
		g.showHint = true
	}
	if in.Click != nil {
		if row, col, ok := g.grid.CellAt(*in.Click); ok {
			g.cursor = engine.At(row, col)
			g.Tap(row, col)
		}
	} else if in.Has(core.ActionConfirm) {
		g.Tap(g.cursor.Row, g.cursor.Col)
	}

	return core.StepResult{State: g.State()}
}

func (g *Game) moveCursor(in core.InputFrame) {
	b := g.eng.Board()
	switch {
	case in.Has(core.ActionUp):
		g.cursor.Row--
	case in.Has(core.ActionDown):
		g.cursor.Row++
	case in.Has(core.ActionLeft):
		g.cursor.Col--
	case in.Has(core.ActionRight):
		g.cursor.Col++
	}
	g.cursor.Row = core.Clamp(g.cursor.Row, 0, b.Rows()-1)
	g.cursor.Col = core.Clamp(g.cursor.Col, 0, b.Cols()-1)
}

// Tap plays the cell at (row, col). Cascades resolve as ticks advance the
// scheduler; call Settle to resolve them at once.
func (g *Game) Tap(row, col int) engine.TurnResult {
	res := g.eng.HandleTap(row, col)
	if res.Outcome == engine.OutcomeNoOp {
		return res
	}
	g.showHint = false
	if g.session.Won() {
		g.logger.Info("board cleared", "moves", g.session.MovesUsed(), "score", g.Score())
	} else if g.session.Lost() {
		g.logger.Info("out of moves", "bricks", g.session.BlockersLeft(), "score", g.Score())
	}
	return res
}

// Settle runs every pending phase so the board is idle again.
func (g *Game) Settle() {
	g.sched.Flush()
}

// DrainEvents returns the events emitted since the last call.
func (g *Game) DrainEvents() []engine.Event {
	out := g.events
	g.events = nil
	return out
}

// Hint returns the suggested cell, if any.
func (g *Game) Hint() (engine.Coord, bool) {
	return g.eng.Hint()
}

// Engine exposes the underlying engine.
func (g *Game) Engine() *engine.Engine { return g.eng }

// Session exposes the move and brick counters.
func (g *Game) Session() *Session { return g.session }

// ConfigError returns the validation error that forced the defaults, if any.
func (g *Game) ConfigError() error { return g.configErr }

// Score is pieces popped, plus points per brick, plus a bonus per unused
// move when the board is cleared.
func (g *Game) Score() int {
	stats := g.eng.Stats()
	score := stats.PiecesCleared + g.session.BlockersDestroyed()*g.settings.Points.Blocker
	if g.session.Won() {
		score += max(g.session.MovesLeft(), 0) * g.settings.Points.Move
	}
	return score
}

// State returns the current game state. The game only reports game over once
// the final cascade has resolved.
func (g *Game) State() core.GameState {
	busy := g.eng.IsLocked()
	over := !busy && (g.session.IsGameOver() || g.eng.Stuck())
	return core.GameState{
		Score:    g.Score(),
		GameOver: over,
		Won:      over && g.session.Won(),
		Paused:   g.paused,
		Busy:     busy,
	}
}

// Summary reports the finished game for the score store.
func (g *Game) Summary() core.Summary {
	return core.Summary{
		MovesUsed:         g.session.MovesUsed(),
		PiecesCleared:     g.eng.Stats().PiecesCleared,
		BlockersDestroyed: g.session.BlockersDestroyed(),
		Won:               g.session.Won(),
	}
}
