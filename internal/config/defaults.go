package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/blast.yaml
var defaultBlastYAML []byte

// DefaultBlastConfig returns the default Blast configuration.
func DefaultBlastConfig() BlastConfig {
	return BlastConfig{
		Board: BlastBoard{
			Rows:       9,
			Cols:       9,
			ActiveRows: 5,
			ActiveCols: 3,
		},
		Palette:    []string{"blue", "red", "green", "yellow"},
		SpawnQueue: []int{0, 0, 0, 1, 1, 1, 2, 2, 0, 0, 0, 0, 1, 1, 1},
		Specials: BlastSpecials{
			BombEnabled:  true,
			ChainEnabled: true,
		},
		Session: BlastSession{
			Moves:         200,
			BlockerPoints: 10,
			MovePoints:    5,
		},
		Timings: BlastTimings{
			Clear:        80 * time.Millisecond,
			SpecialSpawn: 200 * time.Millisecond,
			Bomb:         1100 * time.Millisecond,
			Chain:        300 * time.Millisecond,
			Fall:         250 * time.Millisecond,
			SpawnStagger: 50 * time.Millisecond,
			Settle:       400 * time.Millisecond,
			Shuffle:      600 * time.Millisecond,
		},
		Shuffle: BlastShuffle{
			MaxAttempts: 100,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "blast", "blast_zen":
		return defaultBlastYAML
	default:
		return nil
	}
}
