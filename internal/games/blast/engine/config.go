package engine

import (
	"errors"
	"fmt"
	"time"
)

// Timings are the effect durations that pace each phase. They only decide
// when the next phase starts; board mutations are always immediate.
type Timings struct {
	Clear        time.Duration // pop of matched pieces
	SpecialSpawn time.Duration // reward item growing in
	Bomb         time.Duration // bomb fuse and blast
	Chain        time.Duration // chain item pulse
	Fall         time.Duration // gravity drop
	SpawnStagger time.Duration // delay between successive refill spawns
	Settle       time.Duration // wait after the last spawn before validating
	Shuffle      time.Duration // reshuffle slide
}

// DefaultTimings returns the stock effect durations.
func DefaultTimings() Timings {
	return Timings{
		Clear:        80 * time.Millisecond,
		SpecialSpawn: 200 * time.Millisecond,
		Bomb:         1100 * time.Millisecond,
		Chain:        300 * time.Millisecond,
		Fall:         250 * time.Millisecond,
		SpawnStagger: 50 * time.Millisecond,
		Settle:       400 * time.Millisecond,
		Shuffle:      600 * time.Millisecond,
	}
}

// Config describes a board and its rules.
type Config struct {
	Rows       int
	Cols       int
	ActiveRows int
	ActiveCols int

	// Colors is the palette size; pieces take colours 0..Colors-1.
	Colors int

	// SpawnQueue biases the opening fill; consumed FIFO while non-empty.
	SpawnQueue []int

	// BombEnabled and ChainEnabled switch the reward items on. With an item
	// disabled, the matching match size clears normally.
	BombEnabled  bool
	ChainEnabled bool

	Timings         Timings
	ShuffleAttempts int
	Seed            int64
}

// DefaultConfig returns the 9×9 board with a 5×3 playable corner.
func DefaultConfig() Config {
	return Config{
		Rows:            9,
		Cols:            9,
		ActiveRows:      5,
		ActiveCols:      3,
		Colors:          4,
		SpawnQueue:      DefaultSpawnQueue(),
		BombEnabled:     true,
		ChainEnabled:    true,
		Timings:         DefaultTimings(),
		ShuffleAttempts: DefaultShuffleAttempts,
	}
}

// DefaultSpawnQueue is the opening colour pattern of the stock level.
func DefaultSpawnQueue() []int {
	return []int{0, 0, 0, 1, 1, 1, 2, 2, 0, 0, 0, 0, 1, 1, 1}
}

// ConfigError describes an invalid configuration field.
type ConfigError struct {
	Field   string
	Message string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Field, e.Message)
}

// Validate reports every problem with the configuration. The engine still
// runs with an invalid config by normalising it; Validate lets callers
// refuse bad input up front.
func (c Config) Validate() error {
	var errs []error
	if c.Rows <= 0 || c.Cols <= 0 {
		errs = append(errs, ConfigError{Field: "board", Message: fmt.Sprintf("dimensions must be positive, got %dx%d", c.Rows, c.Cols)})
	}
	if c.ActiveRows <= 0 || c.ActiveCols <= 0 {
		errs = append(errs, ConfigError{Field: "active", Message: "active region must be positive"})
	}
	if c.ActiveRows > c.Rows || c.ActiveCols > c.Cols {
		errs = append(errs, ConfigError{Field: "active", Message: fmt.Sprintf("active region %dx%d exceeds board %dx%d", c.ActiveRows, c.ActiveCols, c.Rows, c.Cols)})
	}
	if c.Colors <= 0 {
		errs = append(errs, ConfigError{Field: "palette", Message: "palette is empty"})
	}
	for i, idx := range c.SpawnQueue {
		if idx < 0 || (c.Colors > 0 && idx >= c.Colors) {
			errs = append(errs, ConfigError{Field: "spawn_queue", Message: fmt.Sprintf("entry %d: colour %d outside palette", i, idx)})
		}
	}
	if c.ShuffleAttempts < 0 {
		errs = append(errs, ConfigError{Field: "shuffle", Message: "attempts must not be negative"})
	}
	return errors.Join(errs...)
}

// normalized returns a copy that the engine can always run with.
func (c Config) normalized() Config {
	if c.Rows < 0 {
		c.Rows = 0
	}
	if c.Cols < 0 {
		c.Cols = 0
	}
	if c.Colors < 1 {
		c.Colors = 1
	}
	if c.ShuffleAttempts <= 0 {
		c.ShuffleAttempts = DefaultShuffleAttempts
	}
	return c
}
