package engine

// Session is the game-session collaborator that owns the move budget and the
// blocker counter. The engine calls each method exactly once per logical event.
type Session interface {
	DecrementMoves()
	RegisterBlockerDestroyed()
	CanSpawnBomb() bool
	CanSpawnChainItem() bool
}

// PowerupRecorder is implemented by sessions that track power-up usage.
type PowerupRecorder interface {
	RegisterPowerupUsed(kind Kind)
}

// GameOverReporter is implemented by sessions that can end the game.
// Taps are ignored once IsGameOver returns true.
type GameOverReporter interface {
	IsGameOver() bool
}

// NopSession is an uncapped session that ignores all counters.
type NopSession struct{}

func (NopSession) DecrementMoves()           {}
func (NopSession) RegisterBlockerDestroyed() {}
func (NopSession) CanSpawnBomb() bool        { return true }
func (NopSession) CanSpawnChainItem() bool   { return true }
