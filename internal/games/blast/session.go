package blast

import "github.com/vovakirdan/tui-blast/internal/games/blast/engine"

// Session tracks the rules around the board: the move budget, the bricks
// left to destroy, power-up usage and the per-game caps on reward items.
// It implements engine.Session.
type Session struct {
	maxMoves int // 0 = unlimited
	used     int

	blockersTotal int
	destroyed     int

	maxBombs  int // 0 = unlimited
	maxChains int // 0 = unlimited
	bombs     int
	chains    int

	powerups map[engine.Kind]int
}

// NewSession creates a session with the given move budget and brick count.
func NewSession(moves, blockers int) *Session {
	return &Session{
		maxMoves:      moves,
		blockersTotal: blockers,
		powerups:      make(map[engine.Kind]int),
	}
}

// SetCaps limits how many bombs and chain items a game may create.
// Zero means unlimited.
func (s *Session) SetCaps(maxBombs, maxChains int) {
	s.maxBombs = maxBombs
	s.maxChains = maxChains
}

// DecrementMoves charges one move.
func (s *Session) DecrementMoves() {
	s.used++
}

// RegisterBlockerDestroyed counts one destroyed brick.
func (s *Session) RegisterBlockerDestroyed() {
	if s.destroyed < s.blockersTotal {
		s.destroyed++
	}
}

// CanSpawnBomb reports whether the bomb cap allows another bomb.
func (s *Session) CanSpawnBomb() bool {
	return s.maxBombs == 0 || s.bombs < s.maxBombs
}

// CanSpawnChainItem reports whether the chain cap allows another chain item.
func (s *Session) CanSpawnChainItem() bool {
	return s.maxChains == 0 || s.chains < s.maxChains
}

// RegisterSpawn counts a reward item placed on the board.
func (s *Session) RegisterSpawn(kind engine.Kind) {
	switch kind {
	case engine.KindBomb:
		s.bombs++
	case engine.KindChain:
		s.chains++
	}
}

// RegisterPowerupUsed counts an activated special item.
func (s *Session) RegisterPowerupUsed(kind engine.Kind) {
	s.powerups[kind]++
}

// PowerupsUsed returns how many items of the given kind were activated.
func (s *Session) PowerupsUsed(kind engine.Kind) int {
	return s.powerups[kind]
}

// MovesUsed returns the number of charged moves.
func (s *Session) MovesUsed() int { return s.used }

// MovesLeft returns the remaining budget, or -1 when unlimited.
func (s *Session) MovesLeft() int {
	if s.maxMoves == 0 {
		return -1
	}
	return max(s.maxMoves-s.used, 0)
}

// BlockersLeft returns the bricks still on the board.
func (s *Session) BlockersLeft() int {
	return s.blockersTotal - s.destroyed
}

// BlockersDestroyed returns the bricks destroyed so far.
func (s *Session) BlockersDestroyed() int { return s.destroyed }

// Won reports whether every brick has been destroyed. A board without
// bricks has no win condition.
func (s *Session) Won() bool {
	return s.blockersTotal > 0 && s.destroyed >= s.blockersTotal
}

// Lost reports whether the move budget ran out with bricks remaining.
func (s *Session) Lost() bool {
	return !s.Won() && s.MovesLeft() == 0
}

// IsGameOver reports whether the game has ended either way.
func (s *Session) IsGameOver() bool {
	return s.Won() || s.Lost()
}
