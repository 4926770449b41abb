package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"last cell", 29, 24, true},
		{"left of rect", 9, 15, false},
		{"above rect", 15, 9, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestGridCellAt(t *testing.T) {
	g := Grid{Origin: Point{X: 2, Y: 1}, Rows: 3, Cols: 4, CellW: 3, CellH: 1}

	tests := []struct {
		name string
		p    Point
		row  int
		col  int
		ok   bool
	}{
		{name: "first cell", p: Point{X: 2, Y: 1}, row: 0, col: 0, ok: true},
		{name: "inside wide cell", p: Point{X: 4, Y: 1}, row: 0, col: 0, ok: true},
		{name: "next column", p: Point{X: 5, Y: 2}, row: 1, col: 1, ok: true},
		{name: "last cell", p: Point{X: 13, Y: 3}, row: 2, col: 3, ok: true},
		{name: "left of grid", p: Point{X: 1, Y: 1}, ok: false},
		{name: "below grid", p: Point{X: 2, Y: 4}, ok: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			row, col, ok := g.CellAt(tc.p)
			if ok != tc.ok {
				t.Fatalf("CellAt(%v) ok = %v, expected %v", tc.p, ok, tc.ok)
			}
			if ok && (row != tc.row || col != tc.col) {
				t.Errorf("CellAt(%v) = (%d, %d), expected (%d, %d)", tc.p, row, col, tc.row, tc.col)
			}
		})
	}
}

func TestGridCellRectRoundTrip(t *testing.T) {
	g := Grid{Origin: Point{X: 1, Y: 2}, Rows: 5, Cols: 3, CellW: 2, CellH: 1}
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			rect := g.CellRect(r, c)
			row, col, ok := g.CellAt(Point{X: rect.X, Y: rect.Y})
			if !ok || row != r || col != c {
				t.Errorf("cell (%d, %d) maps back to (%d, %d, %v)", r, c, row, col, ok)
			}
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(3, 7) != 3 || Min(7, 3) != 3 {
		t.Error("Min returned the wrong value")
	}
	if Max(3, 7) != 7 || Max(7, 3) != 7 {
		t.Error("Max returned the wrong value")
	}
}
