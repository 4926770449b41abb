package engine

import (
	"errors"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// TurnState is the input gate of the engine.
type TurnState uint8

const (
	StateIdle   TurnState = iota // accepting taps
	StateLocked                  // a cascade is resolving; taps are ignored
)

// String returns the string representation of a turn state.
func (s TurnState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLocked:
		return "locked"
	default:
		return "unknown"
	}
}

// Outcome classifies the result of a tap.
type Outcome uint8

const (
	OutcomeNoOp    Outcome = iota // nothing happened and nothing was charged
	OutcomeCleared                // a normal group was cleared
	OutcomeSpecial                // a bomb or chain item was triggered
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeNoOp:
		return "noop"
	case OutcomeCleared:
		return "cleared"
	case OutcomeSpecial:
		return "special"
	default:
		return "unknown"
	}
}

// TurnResult describes the immediate, logical effect of a tap. Cascade
// phases (gravity, refill, shuffle) are reported through Effects.
type TurnResult struct {
	Outcome Outcome
	Tapped  Coord
	// Match is the size class of a cleared group.
	Match MatchKind
	// Trigger is the kind of special item that was activated.
	Trigger Kind
	// Target is the colour a chain item destroyed, or NoColor.
	Target   int
	Cells    []Coord
	Blockers []Coord
	// Spawn is the reward item created at the tapped cell, if any.
	Spawn *Spawn
}

// Stats accumulates counters across the engine lifetime.
type Stats struct {
	Turns             int `json:"turns"`
	PiecesCleared     int `json:"piecesCleared"`
	BlockersDestroyed int `json:"blockersDestroyed"`
	BombsSpawned      int `json:"bombsSpawned"`
	ChainsSpawned     int `json:"chainsSpawned"`
	BombsUsed         int `json:"bombsUsed"`
	ChainsUsed        int `json:"chainsUsed"`
	Refilled          int `json:"refilled"`
	Shuffles          int `json:"shuffles"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithSession sets the session collaborator. The default is NopSession.
func WithSession(s Session) Option {
	return func(e *Engine) {
		if s != nil {
			e.session = s
		}
	}
}

// WithEffects sets the event sink.
func WithEffects(fx Effects) Option {
	return func(e *Engine) {
		if fx != nil {
			e.effects = fx
		}
	}
}

// WithScheduler sets the scheduler that paces phases. The default is
// Immediate, which resolves a whole cascade inside HandleTap.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) {
		if s != nil {
			e.sched = s
		}
	}
}

// WithRand overrides the random source. By default it is seeded from
// Config.Seed.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithSettled registers a callback that runs each time a cascade fully
// resolves and the engine returns to StateIdle.
func WithSettled(fn func()) Option {
	return func(e *Engine) {
		e.onSettled = fn
	}
}

// Engine owns the board and drives turns through their phases. It is not
// safe for concurrent use; callers serialise HandleTap with the scheduler.
type Engine struct {
	cfg     Config
	board   *Board
	rng     *rand.Rand
	palette *Palette

	session   Session
	effects   Effects
	sched     Scheduler
	logger    *log.Logger
	onSettled func()

	state   TurnState
	stuck   bool
	started bool
	stats   Stats
}

// New creates an engine with an empty active region. Call Start to fill it.
// An invalid config is normalised rather than rejected.
func New(cfg Config, opts ...Option) *Engine {
	cfg = cfg.normalized()
	e := &Engine{
		cfg:     cfg,
		board:   NewBoard(cfg.Rows, cfg.Cols, cfg.ActiveRows, cfg.ActiveCols),
		rng:     rand.New(rand.NewSource(cfg.Seed)),
		session: NopSession{},
		effects: nopEffects{},
		sched:   Immediate{},
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.palette = &Palette{
		Size:  cfg.Colors,
		Queue: NewSpawnQueue(cfg.SpawnQueue),
		Rng:   e.rng,
	}
	return e
}

// NewWithBoard creates an engine around an existing board, for restoring
// saved games and for tests. The spawn queue is not used.
func NewWithBoard(cfg Config, b *Board, opts ...Option) *Engine {
	cfg.SpawnQueue = nil
	e := New(cfg, opts...)
	e.board = b
	e.cfg.Rows, e.cfg.Cols = b.Rows(), b.Cols()
	e.started = true
	return e
}

// Start runs the opening refill and deadlock check. It locks the engine
// until the fill resolves. Returns false if the engine was already started.
func (e *Engine) Start() bool {
	if e.started {
		return false
	}
	e.started = true
	e.state = StateLocked
	e.logger.Info("board start",
		"rows", e.cfg.Rows, "cols", e.cfg.Cols,
		"active", e.board.Count(CellEmpty),
		"blockers", e.board.Count(CellBlocker))
	e.refillPhase()
	return true
}

// Board returns the live board. Callers must not mutate it.
func (e *Engine) Board() *Board { return e.board }

// Config returns the normalised configuration.
func (e *Engine) Config() Config { return e.cfg }

// State returns the current turn state.
func (e *Engine) State() TurnState { return e.state }

// IsLocked reports whether a cascade is resolving.
func (e *Engine) IsLocked() bool { return e.state == StateLocked }

// Stuck reports whether the board has no adjacent piece cells and can never
// produce a move again.
func (e *Engine) Stuck() bool { return e.stuck }

// Stats returns the accumulated counters.
func (e *Engine) Stats() Stats { return e.stats }

// Hint suggests a cell to tap, or false while locked or when nothing is
// playable.
func (e *Engine) Hint() (Coord, bool) {
	if e.IsLocked() {
		return Coord{}, false
	}
	return FindHint(e.board)
}

// HandleTap plays the cell at (row, col). Taps on empty cells, blockers,
// out-of-range cells, lone pieces, or while locked return OutcomeNoOp with
// no side effects. A consumed tap locks the engine until the cascade
// resolves.
func (e *Engine) HandleTap(row, col int) TurnResult {
	at := At(row, col)
	noop := TurnResult{Outcome: OutcomeNoOp, Tapped: at, Target: NoColor}

	if e.state == StateLocked {
		e.logger.Debug("tap ignored", "at", at, "reason", "locked")
		return noop
	}
	if e.stuck {
		e.logger.Debug("tap ignored", "at", at, "reason", "stuck")
		return noop
	}
	if r, ok := e.session.(GameOverReporter); ok && r.IsGameOver() {
		e.logger.Debug("tap ignored", "at", at, "reason", "game over")
		return noop
	}

	cell := e.board.GetAt(at)
	if !cell.IsPiece() {
		return noop
	}

	switch cell.Piece.Kind {
	case KindBomb, KindChain:
		return e.triggerSpecial(at, cell.Piece)
	default:
		return e.clearGroup(at, cell.Piece)
	}
}

func (e *Engine) clearGroup(at Coord, tapped Piece) TurnResult {
	matches := FindMatches(e.board, at)
	kind := ClassifyMatch(len(matches))
	if kind == MatchNone {
		return TurnResult{Outcome: OutcomeNoOp, Tapped: at, Target: NoColor}
	}

	e.beginTurn()
	cl := ClearMatches(e.board, matches)
	e.emit(cl.Events)
	e.stats.PiecesCleared += len(cl.Cleared)

	res := TurnResult{
		Outcome:  OutcomeCleared,
		Tapped:   at,
		Match:    kind,
		Target:   NoColor,
		Cells:    cl.Cleared,
		Blockers: cl.Blockers,
	}

	delay := e.cfg.Timings.Clear
	if reward, ok := e.reward(kind); ok {
		color := NoColor
		if reward == KindChain {
			color = tapped.Color
		}
		p := e.board.Place(at.Row, at.Col, reward, color)
		res.Spawn = &Spawn{At: at, Piece: p}
		e.emit([]Event{pieceEvent(PhaseSpawn, at, p)})
		if reward == KindBomb {
			e.stats.BombsSpawned++
		} else {
			e.stats.ChainsSpawned++
		}
		delay += e.cfg.Timings.SpecialSpawn
	}

	e.logger.Debug("group cleared",
		"at", at, "color", tapped.Color, "size", len(cl.Cleared),
		"blockers", len(cl.Blockers), "match", kind)
	e.sched.After(delay, e.gravityPhase)
	return res
}

func (e *Engine) triggerSpecial(at Coord, item Piece) TurnResult {
	e.beginTurn()
	if pr, ok := e.session.(PowerupRecorder); ok {
		pr.RegisterPowerupUsed(item.Kind)
	}

	res := TurnResult{Outcome: OutcomeSpecial, Tapped: at, Trigger: item.Kind, Target: NoColor}
	var cl Clearance
	var delay time.Duration
	switch item.Kind {
	case KindBomb:
		cl = DetonateBomb(e.board, at)
		e.stats.BombsUsed++
		delay = e.cfg.Timings.Bomb
	case KindChain:
		cl, res.Target = DetonateChain(e.board, at)
		e.stats.ChainsUsed++
		delay = e.cfg.Timings.Chain
	}
	e.emit(cl.Events)
	e.stats.PiecesCleared += len(cl.Cleared)
	res.Cells = cl.Cleared
	res.Blockers = cl.Blockers

	e.logger.Debug("special triggered",
		"at", at, "kind", item.Kind, "target", res.Target,
		"cleared", len(cl.Cleared), "blockers", len(cl.Blockers))
	e.sched.After(delay, e.gravityPhase)
	return res
}

// beginTurn locks input and charges the move.
func (e *Engine) beginTurn() {
	e.state = StateLocked
	e.stats.Turns++
	e.session.DecrementMoves()
}

// reward decides which special item a match of the given size earns, after
// consulting the config and the session caps.
func (e *Engine) reward(kind MatchKind) (Kind, bool) {
	switch kind {
	case MatchBomb:
		if e.cfg.BombEnabled && e.session.CanSpawnBomb() {
			return KindBomb, true
		}
	case MatchChain:
		if e.cfg.ChainEnabled && e.session.CanSpawnChainItem() {
			return KindChain, true
		}
	}
	return KindNormal, false
}

func (e *Engine) gravityPhase() {
	falls := ApplyGravity(e.board)
	events := make([]Event, 0, len(falls))
	for _, f := range falls {
		ev := pieceEvent(PhaseFall, f.To, f.Piece)
		ev.From = f.From
		events = append(events, ev)
	}
	e.emit(events)

	var delay time.Duration
	if len(falls) > 0 {
		delay = e.cfg.Timings.Fall
	}
	e.sched.After(delay, e.refillPhase)
}

func (e *Engine) refillPhase() {
	spawns := Refill(e.board, e.palette)
	// The queue only shapes the opening fill; later refills are random.
	e.palette.Queue = nil
	events := make([]Event, 0, len(spawns))
	for _, s := range spawns {
		events = append(events, pieceEvent(PhaseSpawn, s.At, s.Piece))
	}
	e.emit(events)
	e.stats.Refilled += len(spawns)

	delay := e.cfg.Timings.Settle
	if len(spawns) > 0 {
		delay += time.Duration(len(spawns)-1) * e.cfg.Timings.SpawnStagger
	}
	e.sched.After(delay, e.settlePhase)
}

func (e *Engine) settlePhase() {
	if HasValidMove(e.board) {
		e.unlock()
		return
	}

	res, err := Shuffle(e.board, e.rng, e.cfg.ShuffleAttempts)
	if err != nil {
		if errors.Is(err, ErrUnsolvableBoard) {
			e.stuck = true
		}
		e.logger.Error("deadlock unresolved", "err", err, "pieces", e.board.Count(CellPiece))
		e.unlock()
		return
	}

	e.stats.Shuffles++
	events := make([]Event, 0, len(res.Moves))
	for _, m := range res.Moves {
		ev := pieceEvent(PhaseShuffle, m.To, m.Piece)
		ev.From = m.From
		events = append(events, ev)
	}
	e.emit(events)
	if res.Fallback != FallbackNone {
		e.logger.Warn("shuffle fallback", "kind", res.Fallback, "attempts", res.Attempts)
	} else {
		e.logger.Info("board shuffled", "attempts", res.Attempts, "moved", len(res.Moves))
	}
	e.sched.After(e.cfg.Timings.Shuffle, e.refillPhase)
}

func (e *Engine) unlock() {
	e.state = StateIdle
	if e.onSettled != nil {
		e.onSettled()
	}
}

func (e *Engine) emit(events []Event) {
	for _, ev := range events {
		if ev.Phase == PhaseBlockerDestroyed {
			e.stats.BlockersDestroyed++
			e.session.RegisterBlockerDestroyed()
		}
		e.effects.OnEvent(ev)
	}
}
