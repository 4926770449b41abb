package engine

// Fall describes a piece moved down by gravity.
type Fall struct {
	From  Coord
	To    Coord
	Piece Piece
}

// ApplyGravity compacts every column towards the floor. Columns are scanned
// bottom to top; the fall distance grows on each empty cell and resets on a
// blocker, so pieces never pass through blockers. Returns the moves in
// column order, bottom-most piece first.
func ApplyGravity(b *Board) []Fall {
	var falls []Fall
	for c := 0; c < b.cols; c++ {
		gap := 0
		for r := b.rows - 1; r >= 0; r-- {
			cell := b.Get(r, c)
			switch cell.Type {
			case CellBlocker:
				gap = 0
			case CellEmpty:
				gap++
			case CellPiece:
				if gap == 0 {
					continue
				}
				b.Set(r+gap, c, cell)
				b.Clear(r, c)
				falls = append(falls, Fall{From: At(r, c), To: At(r+gap, c), Piece: cell.Piece})
			}
		}
	}
	return falls
}
