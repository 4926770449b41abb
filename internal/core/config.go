package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// MaxTickRate is the highest tick rate honoured from --fps.
const MaxTickRate = 240

// TickDuration returns the wall time covered by one simulation tick. Rates
// are clamped to (0, MaxTickRate]; non-positive rates mean 60.
func (c RuntimeConfig) TickDuration() time.Duration {
	rate := c.TickRate
	switch {
	case rate <= 0:
		rate = 60
	case rate > MaxTickRate:
		rate = MaxTickRate
	}
	return time.Second / time.Duration(rate)
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Won      bool // Whether the game ended with the goal met
	Paused   bool // Whether the game is paused
	Busy     bool // Whether the game is resolving and ignoring input
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State GameState
}

// Summary describes a finished game for the score store.
// Games that can report more than a score implement
// interface{ Summary() Summary }.
type Summary struct {
	MovesUsed         int
	PiecesCleared     int
	BlockersDestroyed int
	Won               bool
}
