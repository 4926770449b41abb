package engine

import (
	"math/rand"
	"testing"
)

func TestApplyGravity(t *testing.T) {
	tests := []struct {
		name  string
		board []string
		want  string
		falls int
	}{
		{
			name:  "piece stops on piece above blocker",
			board: []string{"1", ".", "2", "#", "."},
			want:  ".|1|2|#|.",
			falls: 1,
		},
		{
			name:  "stack drops together",
			board: []string{"1", "2", ".", "."},
			want:  ".|.|1|2",
			falls: 2,
		},
		{
			name:  "blocker holds pieces above it",
			board: []string{"1", "#", "."},
			want:  "1|#|.",
			falls: 0,
		},
		{
			name:  "specials fall like pieces",
			board: []string{"*A", "..", "1."},
			want:  "..|*.|1A",
			falls: 2,
		},
		{
			name:  "settled board",
			board: []string{"12", "34"},
			want:  "12|34",
			falls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := MustParseBoard(tt.board...)
			falls := ApplyGravity(b)
			if got := joinLines(b); got != tt.want {
				t.Errorf("board = %s, want %s", got, tt.want)
			}
			if len(falls) != tt.falls {
				t.Errorf("falls = %d, want %d", len(falls), tt.falls)
			}
		})
	}
}

func TestApplyGravityIsIdempotent(t *testing.T) {
	b := MustParseBoard("1.2", ".#.", "3..")
	ApplyGravity(b)
	snapshot := b.Clone()
	if falls := ApplyGravity(b); len(falls) != 0 {
		t.Errorf("second pass moved %d pieces", len(falls))
	}
	if !b.Equal(snapshot) {
		t.Error("second pass changed the board")
	}
}

func TestApplyGravityKeepsPieceIdentity(t *testing.T) {
	b := MustParseBoard("1", ".")
	id := b.Get(0, 0).Piece.ID
	falls := ApplyGravity(b)
	if len(falls) != 1 || falls[0].Piece.ID != id {
		t.Fatalf("falls = %+v", falls)
	}
	if got := b.Get(1, 0).Piece.ID; got != id {
		t.Errorf("piece id after fall = %d, want %d", got, id)
	}
}

type fixedColors struct {
	colors []int
}

func (f *fixedColors) NextColor() int {
	c := f.colors[0]
	f.colors = f.colors[1:]
	return c
}

func TestRefill(t *testing.T) {
	b := MustParseBoard(
		"..",
		"#.",
	)
	spawns := Refill(b, &fixedColors{colors: []int{2, 1, 0}})

	if len(spawns) != 3 {
		t.Fatalf("spawns = %d, want 3", len(spawns))
	}
	if got := joinLines(b); got != "21|#0" {
		t.Errorf("board = %s, want 21|#0", got)
	}
	if spawns[0].At != At(0, 0) || spawns[2].At != At(1, 1) {
		t.Errorf("spawn order = %v, want column by column top to bottom", spawns)
	}
}

func TestRefillSkipsCellsBelowBlockers(t *testing.T) {
	b := MustParseBoard(
		".#",
		"..",
		"#.",
	)
	spawns := Refill(b, &Palette{Size: 1})

	if len(spawns) != 2 {
		t.Fatalf("spawns = %d, want 2", len(spawns))
	}
	if got := joinLines(b); got != "0#|0.|#." {
		t.Errorf("board = %s, want 0#|0.|#.", got)
	}
}

func TestRefillIsIdempotent(t *testing.T) {
	b := NewBoard(4, 4, 3, 3)
	pal := &Palette{Size: 3, Rng: rand.New(rand.NewSource(1))}
	if got := len(Refill(b, pal)); got != 9 {
		t.Fatalf("first refill = %d, want 9", got)
	}
	if got := len(Refill(b, pal)); got != 0 {
		t.Errorf("second refill = %d, want 0", got)
	}
}

func TestPaletteQueueThenRandom(t *testing.T) {
	pal := &Palette{
		Size:  3,
		Queue: NewSpawnQueue([]int{2, 7, -1, 1}),
		Rng:   rand.New(rand.NewSource(42)),
	}

	want := []int{2, 0, 0, 1}
	for i, w := range want {
		if got := pal.NextColor(); got != w {
			t.Errorf("colour %d = %d, want %d", i, got, w)
		}
	}
	if pal.Queue.Len() != 0 {
		t.Fatalf("queue should be drained, has %d", pal.Queue.Len())
	}
	for i := 0; i < 50; i++ {
		if got := pal.NextColor(); got < 0 || got >= 3 {
			t.Fatalf("random colour %d outside palette", got)
		}
	}
}

func TestSpawnQueueCopiesPattern(t *testing.T) {
	pattern := []int{1, 2}
	q := NewSpawnQueue(pattern)
	pattern[0] = 9
	if got, _ := q.Pop(); got != 1 {
		t.Errorf("Pop = %d, want 1", got)
	}

	var empty *SpawnQueue
	if _, ok := empty.Pop(); ok {
		t.Error("nil queue should be empty")
	}
}
