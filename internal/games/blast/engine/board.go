// Package engine provides the core simulation for the Blast tile-popping
// puzzle: board state, matching, special items, gravity, refill, deadlock
// detection and the turn state machine.
// This package is UI-agnostic and deterministic for a given seed.
package engine

import "fmt"

// Kind identifies the type of a piece.
type Kind uint8

const (
	KindNormal Kind = iota
	KindBomb
	KindChain
)

// String returns the string representation of a kind.
func (k Kind) String() string {
	switch k {
	case KindNormal:
		return "normal"
	case KindBomb:
		return "bomb"
	case KindChain:
		return "chain"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "normal":
		*k = KindNormal
	case "bomb":
		*k = KindBomb
	case "chain":
		*k = KindChain
	default:
		return fmt.Errorf("engine: unknown kind %q", text)
	}
	return nil
}

// IsSpecial reports whether the kind is a power-up.
func (k Kind) IsSpecial() bool {
	return k == KindBomb || k == KindChain
}

// NoColor marks a piece without a palette colour (bombs, untagged chain items).
const NoColor = -1

// Piece is a movable token occupying one cell.
// Color is a palette index, valid for normal pieces; a chain item may carry
// its target colour or NoColor.
type Piece struct {
	ID    uint64
	Kind  Kind
	Color int
}

// CellType describes what occupies a cell.
type CellType uint8

const (
	CellEmpty CellType = iota
	CellBlocker
	CellPiece
	CellOutOfBounds
)

// String returns the string representation of a cell type.
func (t CellType) String() string {
	switch t {
	case CellEmpty:
		return "empty"
	case CellBlocker:
		return "blocker"
	case CellPiece:
		return "piece"
	case CellOutOfBounds:
		return "out-of-bounds"
	default:
		return "unknown"
	}
}

// Cell is a single board slot. Piece is meaningful only when Type is CellPiece.
type Cell struct {
	Type  CellType
	Piece Piece
}

// EmptyCell returns an empty cell.
func EmptyCell() Cell {
	return Cell{Type: CellEmpty}
}

// BlockerCell returns a blocker cell.
func BlockerCell() Cell {
	return Cell{Type: CellBlocker}
}

// PieceCell returns a cell holding the given piece.
func PieceCell(p Piece) Cell {
	return Cell{Type: CellPiece, Piece: p}
}

// IsEmpty reports whether the cell is empty.
func (c Cell) IsEmpty() bool { return c.Type == CellEmpty }

// IsBlocker reports whether the cell is a blocker.
func (c Cell) IsBlocker() bool { return c.Type == CellBlocker }

// IsPiece reports whether the cell holds a piece.
func (c Cell) IsPiece() bool { return c.Type == CellPiece }

// IsNormal reports whether the cell holds a normal coloured piece.
func (c Cell) IsNormal() bool { return c.Type == CellPiece && c.Piece.Kind == KindNormal }

// Coord is a board position. Row 0 is the top row.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// At is a convenience constructor for Coord.
func At(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add returns the coordinate offset by (dr, dc).
func (c Coord) Add(dr, dc int) Coord {
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// orthogonal lists the four neighbour offsets used by matching and
// blocker adjacency: down, up, right, left.
var orthogonal = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Board is the rows × cols grid. Cells are stored in row-major order.
type Board struct {
	rows   int
	cols   int
	cells  []Cell
	nextID uint64
}

// NewBoard creates a board whose top-left activeRows × activeCols region is
// empty and playable; every other cell is a blocker.
func NewBoard(rows, cols, activeRows, activeCols int) *Board {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	activeRows = clamp(activeRows, 0, rows)
	activeCols = clamp(activeCols, 0, cols)

	b := &Board{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if r < activeRows && c < activeCols {
				b.cells[b.index(r, c)] = EmptyCell()
			} else {
				b.cells[b.index(r, c)] = BlockerCell()
			}
		}
	}
	return b
}

// Rows returns the number of rows.
func (b *Board) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b *Board) Cols() int { return b.cols }

func (b *Board) index(r, c int) int {
	return r*b.cols + c
}

// InBounds reports whether (r, c) lies on the board.
func (b *Board) InBounds(r, c int) bool {
	return r >= 0 && r < b.rows && c >= 0 && c < b.cols
}

// Get returns the cell at (r, c), or a CellOutOfBounds sentinel.
func (b *Board) Get(r, c int) Cell {
	if !b.InBounds(r, c) {
		return Cell{Type: CellOutOfBounds}
	}
	return b.cells[b.index(r, c)]
}

// GetAt is Get for a Coord.
func (b *Board) GetAt(at Coord) Cell {
	return b.Get(at.Row, at.Col)
}

// Set stores a cell at (r, c). Out-of-range writes are ignored.
func (b *Board) Set(r, c int, cell Cell) {
	if !b.InBounds(r, c) || cell.Type == CellOutOfBounds {
		return
	}
	b.cells[b.index(r, c)] = cell
}

// SetAt is Set for a Coord.
func (b *Board) SetAt(at Coord, cell Cell) {
	b.Set(at.Row, at.Col, cell)
}

// Clear empties the cell at (r, c).
func (b *Board) Clear(r, c int) {
	b.Set(r, c, EmptyCell())
}

// NewPiece allocates a piece with a fresh identity. The piece is not placed.
func (b *Board) NewPiece(kind Kind, color int) Piece {
	b.nextID++
	return Piece{ID: b.nextID, Kind: kind, Color: color}
}

// Place allocates a piece and puts it at (r, c).
func (b *Board) Place(r, c int, kind Kind, color int) Piece {
	p := b.NewPiece(kind, color)
	b.Set(r, c, PieceCell(p))
	return p
}

// Count returns the number of cells of the given type.
func (b *Board) Count(t CellType) int {
	n := 0
	for _, cell := range b.cells {
		if cell.Type == t {
			n++
		}
	}
	return n
}

// CountKind returns the number of pieces of the given kind.
func (b *Board) CountKind(k Kind) int {
	n := 0
	for _, cell := range b.cells {
		if cell.Type == CellPiece && cell.Piece.Kind == k {
			n++
		}
	}
	return n
}

// Coords returns the coordinates of every cell of the given type in
// row-major order.
func (b *Board) Coords(t CellType) []Coord {
	coords := make([]Coord, 0)
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			if b.cells[b.index(r, c)].Type == t {
				coords = append(coords, At(r, c))
			}
		}
	}
	return coords
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		rows:   b.rows,
		cols:   b.cols,
		cells:  cells,
		nextID: b.nextID,
	}
}

// Equal reports whether two boards have the same layout, kinds and colours.
// Piece identities are ignored.
func (b *Board) Equal(other *Board) bool {
	if b.rows != other.rows || b.cols != other.cols {
		return false
	}
	for i, cell := range b.cells {
		o := other.cells[i]
		if cell.Type != o.Type {
			return false
		}
		if cell.Type == CellPiece && (cell.Piece.Kind != o.Piece.Kind || cell.Piece.Color != o.Piece.Color) {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
