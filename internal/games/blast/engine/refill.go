package engine

import "math/rand"

// Spawn describes a piece created by refill.
type Spawn struct {
	At    Coord
	Piece Piece
}

// ColorSource picks the colour of each refilled piece.
type ColorSource interface {
	NextColor() int
}

// SpawnQueue is a FIFO of palette indices used to bias the opening board.
type SpawnQueue struct {
	items []int
}

// NewSpawnQueue creates a queue holding a copy of pattern.
func NewSpawnQueue(pattern []int) *SpawnQueue {
	items := make([]int, len(pattern))
	copy(items, pattern)
	return &SpawnQueue{items: items}
}

// Len returns the number of queued colours.
func (q *SpawnQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Pop removes and returns the next colour. ok is false when the queue is empty.
func (q *SpawnQueue) Pop() (color int, ok bool) {
	if q.Len() == 0 {
		return 0, false
	}
	color = q.items[0]
	q.items = q.items[1:]
	return color, true
}

// Palette draws colours from a queue while it lasts and uniformly at random
// afterwards.
type Palette struct {
	Size  int
	Queue *SpawnQueue
	Rng   *rand.Rand
}

// NextColor returns the next spawn colour. Queued indices outside
// [0, Size) fall back to colour 0.
func (p *Palette) NextColor() int {
	size := p.Size
	if size < 1 {
		size = 1
	}
	if color, ok := p.Queue.Pop(); ok {
		if color < 0 || color >= size {
			return 0
		}
		return color
	}
	if p.Rng == nil {
		return 0
	}
	return p.Rng.Intn(size)
}

// Refill spawns a normal piece into every reachable empty cell. A cell is
// reachable when no blocker sits above it in its column, so each column is
// scanned top to bottom and abandoned at the first blocker.
func Refill(b *Board, src ColorSource) []Spawn {
	var spawns []Spawn
	for c := 0; c < b.cols; c++ {
		for r := 0; r < b.rows; r++ {
			cell := b.Get(r, c)
			if cell.IsBlocker() {
				break
			}
			if !cell.IsEmpty() {
				continue
			}
			p := b.Place(r, c, KindNormal, src.NextColor())
			spawns = append(spawns, Spawn{At: At(r, c), Piece: p})
		}
	}
	return spawns
}
