package engine

// MatchKind classifies a successful flood-fill match.
type MatchKind uint8

const (
	MatchNone  MatchKind = iota // fewer than two pieces
	MatchClear                  // two pieces
	MatchBomb                   // three pieces, earns a bomb
	MatchChain                  // four or more pieces, earns a chain item
)

// String returns the string representation of a match kind.
func (m MatchKind) String() string {
	switch m {
	case MatchNone:
		return "none"
	case MatchClear:
		return "clear"
	case MatchBomb:
		return "bomb"
	case MatchChain:
		return "chain"
	default:
		return "unknown"
	}
}

// Match thresholds.
const (
	MinMatch   = 2
	BombMatch  = 3
	ChainMatch = 4
)

// ClassifyMatch maps a match size to its outcome.
func ClassifyMatch(n int) MatchKind {
	switch {
	case n < MinMatch:
		return MatchNone
	case n == BombMatch:
		return MatchBomb
	case n >= ChainMatch:
		return MatchChain
	default:
		return MatchClear
	}
}

// FindMatches returns every normal piece connected to seed through
// orthogonal neighbours of the same colour, seed first, in BFS order.
// Returns nil if the seed is not a normal piece.
func FindMatches(b *Board, seed Coord) []Coord {
	start := b.GetAt(seed)
	if !start.IsNormal() {
		return nil
	}
	color := start.Piece.Color

	visited := make([]bool, b.rows*b.cols)
	visited[b.index(seed.Row, seed.Col)] = true
	queue := []Coord{seed}
	matches := make([]Coord, 0, 8)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		matches = append(matches, cur)

		for _, d := range orthogonal {
			next := cur.Add(d[0], d[1])
			if !b.InBounds(next.Row, next.Col) {
				continue
			}
			idx := b.index(next.Row, next.Col)
			if visited[idx] {
				continue
			}
			cell := b.cells[idx]
			if cell.IsNormal() && cell.Piece.Color == color {
				visited[idx] = true
				queue = append(queue, next)
			}
		}
	}
	return matches
}

// adjacentBlockers returns the blockers orthogonally adjacent to at.
func adjacentBlockers(b *Board, at Coord) []Coord {
	var out []Coord
	for _, d := range orthogonal {
		n := at.Add(d[0], d[1])
		if b.GetAt(n).IsBlocker() {
			out = append(out, n)
		}
	}
	return out
}

// Clearance is the logical result of removing cells from the board.
// Events are in the order the removals happened.
type Clearance struct {
	Cleared  []Coord
	Blockers []Coord
	Events   []Event
}

func (cl *Clearance) removePiece(b *Board, at Coord, phase Phase) {
	cell := b.GetAt(at)
	if !cell.IsPiece() {
		return
	}
	b.SetAt(at, EmptyCell())
	cl.Cleared = append(cl.Cleared, at)
	cl.Events = append(cl.Events, pieceEvent(phase, at, cell.Piece))
}

func (cl *Clearance) removeBlocker(b *Board, at Coord) {
	if !b.GetAt(at).IsBlocker() {
		return
	}
	b.SetAt(at, EmptyCell())
	cl.Blockers = append(cl.Blockers, at)
	cl.Events = append(cl.Events, blockerEvent(at))
}

// ClearMatches removes the matched pieces. Before each piece is removed, any
// blocker orthogonally adjacent to it is destroyed; a blocker shared by two
// matched cells is destroyed once.
func ClearMatches(b *Board, matches []Coord) Clearance {
	var cl Clearance
	for _, at := range matches {
		for _, n := range adjacentBlockers(b, at) {
			cl.removeBlocker(b, n)
		}
		cl.removePiece(b, at, PhaseMatch)
	}
	return cl
}
