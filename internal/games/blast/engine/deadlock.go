package engine

import (
	"errors"
	"math/rand"
)

// ErrUnsolvableBoard is returned when no arrangement of the pieces can
// produce a valid move, because no two piece cells are adjacent.
var ErrUnsolvableBoard = errors.New("engine: board has no adjacent piece cells")

// DefaultShuffleAttempts bounds random reshuffles before the deterministic
// fallback is used.
const DefaultShuffleAttempts = 100

// HasValidMove reports whether the player can act: any special item is on
// the board, or two same-coloured normal pieces are orthogonally adjacent.
// Only right and down neighbours are checked; that covers every pair.
func HasValidMove(b *Board) bool {
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			cell := b.Get(r, c)
			if !cell.IsPiece() {
				continue
			}
			if cell.Piece.Kind.IsSpecial() {
				return true
			}
			if right := b.Get(r, c+1); right.IsNormal() && right.Piece.Color == cell.Piece.Color {
				return true
			}
			if down := b.Get(r+1, c); down.IsNormal() && down.Piece.Color == cell.Piece.Color {
				return true
			}
		}
	}
	return false
}

// Fallback identifies how a shuffle reached a valid board.
type Fallback uint8

const (
	FallbackNone    Fallback = iota // a random permutation was valid
	FallbackPair                    // a same-colour pair was placed deterministically
	FallbackRecolor                 // no colour had two pieces; one piece was recoloured
)

// String returns the string representation of a fallback.
func (f Fallback) String() string {
	switch f {
	case FallbackNone:
		return "none"
	case FallbackPair:
		return "pair"
	case FallbackRecolor:
		return "recolor"
	default:
		return "unknown"
	}
}

// Relocation describes a piece moved (or recoloured) by a shuffle.
type Relocation struct {
	From  Coord
	To    Coord
	Piece Piece
}

// ShuffleResult reports what a shuffle did.
type ShuffleResult struct {
	Moves    []Relocation
	Attempts int
	Fallback Fallback
}

// Shuffle permutes every piece over the cells the pieces occupy (blockers
// and empty cells never change) until HasValidMove holds. After maxAttempts
// random permutations it falls back to placing a same-colour pair on the
// first adjacent pair of piece cells, recolouring one piece if no colour has
// two pieces. Returns ErrUnsolvableBoard, leaving the board unchanged, when
// no two piece cells are adjacent.
func Shuffle(b *Board, rng *rand.Rand, maxAttempts int) (ShuffleResult, error) {
	var res ShuffleResult
	if HasValidMove(b) {
		return res, nil
	}

	positions := b.Coords(CellPiece)
	p, q, ok := firstAdjacentPair(b, positions)
	if !ok {
		return res, ErrUnsolvableBoard
	}

	pieces := make([]Piece, len(positions))
	origin := make(map[uint64]Coord, len(positions))
	for i, at := range positions {
		pieces[i] = b.GetAt(at).Piece
		origin[pieces[i].ID] = at
	}

	if maxAttempts < 0 {
		maxAttempts = 0
	}
	for res.Attempts < maxAttempts {
		res.Attempts++
		rng.Shuffle(len(pieces), func(i, j int) {
			pieces[i], pieces[j] = pieces[j], pieces[i]
		})
		assign(b, positions, pieces)
		if HasValidMove(b) {
			res.Moves = relocations(positions, pieces, origin)
			return res, nil
		}
	}

	ip, iq := indexOf(positions, p), indexOf(positions, q)
	if ia, ib, found := sameColorPair(pieces); found {
		res.Fallback = FallbackPair
		idB := pieces[ib].ID
		pieces[ip], pieces[ia] = pieces[ia], pieces[ip]
		for i := range pieces {
			if pieces[i].ID == idB {
				ib = i
				break
			}
		}
		pieces[iq], pieces[ib] = pieces[ib], pieces[iq]
	} else {
		res.Fallback = FallbackRecolor
		pieces[iq].Color = pieces[ip].Color
	}
	assign(b, positions, pieces)
	res.Moves = relocations(positions, pieces, origin)
	if res.Fallback == FallbackRecolor {
		res.Moves = appendRecolor(res.Moves, positions[iq], pieces[iq], origin)
	}
	return res, nil
}

func assign(b *Board, positions []Coord, pieces []Piece) {
	for i, at := range positions {
		b.SetAt(at, PieceCell(pieces[i]))
	}
}

func relocations(positions []Coord, pieces []Piece, origin map[uint64]Coord) []Relocation {
	var moves []Relocation
	for i, at := range positions {
		from := origin[pieces[i].ID]
		if from != at {
			moves = append(moves, Relocation{From: from, To: at, Piece: pieces[i]})
		}
	}
	return moves
}

// appendRecolor makes sure a recoloured piece is reported even if it did
// not move.
func appendRecolor(moves []Relocation, at Coord, p Piece, origin map[uint64]Coord) []Relocation {
	for i := range moves {
		if moves[i].Piece.ID == p.ID {
			moves[i].Piece = p
			return moves
		}
	}
	return append(moves, Relocation{From: origin[p.ID], To: at, Piece: p})
}

// firstAdjacentPair finds, in row-major order, a piece cell whose right or
// lower neighbour is also a piece cell.
func firstAdjacentPair(b *Board, positions []Coord) (Coord, Coord, bool) {
	for _, at := range positions {
		if right := at.Add(0, 1); b.GetAt(right).IsPiece() {
			return at, right, true
		}
		if down := at.Add(1, 0); b.GetAt(down).IsPiece() {
			return at, down, true
		}
	}
	return Coord{}, Coord{}, false
}

// sameColorPair returns the indices of the first two normal pieces sharing
// a colour.
func sameColorPair(pieces []Piece) (int, int, bool) {
	seen := make(map[int]int)
	for i, p := range pieces {
		if p.Kind != KindNormal {
			continue
		}
		if j, ok := seen[p.Color]; ok {
			return j, i, true
		}
		seen[p.Color] = i
	}
	return 0, 0, false
}

func indexOf(coords []Coord, at Coord) int {
	for i, c := range coords {
		if c == at {
			return i
		}
	}
	return -1
}
