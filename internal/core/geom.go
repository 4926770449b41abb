// Package core provides the platform-neutral types shared by games and
// front ends: screen buffers, colours, input frames and layout geometry.
// It contains no external dependencies (especially no Bubble Tea) to keep
// game logic pure and testable.
package core

// Point is a terminal cell position, X to the right and Y down.
type Point struct {
	X, Y int
}

// Rect is an axis-aligned area of the screen, used for layout and for
// mapping pointer clicks back onto board cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Grid lays out rows × cols cells of cellW × cellH characters starting at
// Origin. It converts between board coordinates and screen positions.
type Grid struct {
	Origin Point
	Rows   int
	Cols   int
	CellW  int
	CellH  int
}

// Bounds returns the screen area covered by the grid.
func (g Grid) Bounds() Rect {
	return NewRect(g.Origin.X, g.Origin.Y, g.Cols*g.CellW, g.Rows*g.CellH)
}

// CellRect returns the screen area of the cell at (row, col).
func (g Grid) CellRect(row, col int) Rect {
	return NewRect(g.Origin.X+col*g.CellW, g.Origin.Y+row*g.CellH, g.CellW, g.CellH)
}

// CellAt maps a screen position to the cell under it.
// ok is false when the position is outside the grid.
func (g Grid) CellAt(p Point) (row, col int, ok bool) {
	if g.CellW <= 0 || g.CellH <= 0 || !g.Bounds().Contains(p.X, p.Y) {
		return 0, 0, false
	}
	return (p.Y - g.Origin.Y) / g.CellH, (p.X - g.Origin.X) / g.CellW, true
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
