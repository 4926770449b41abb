package engine

// FindHint suggests a cell to tap. Preference order: the first special item,
// then the first piece that has a same-coloured neighbour and touches a
// blocker, then any piece with a same-coloured neighbour.
func FindHint(b *Board) (Coord, bool) {
	var fallback *Coord
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			cell := b.Get(r, c)
			if cell.IsPiece() && cell.Piece.Kind.IsSpecial() {
				return At(r, c), true
			}
		}
	}

	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			cell := b.Get(r, c)
			if !cell.IsNormal() {
				continue
			}
			hasMatch, touchesBlocker := false, false
			for _, d := range orthogonal {
				n := b.Get(r+d[0], c+d[1])
				if n.IsNormal() && n.Piece.Color == cell.Piece.Color {
					hasMatch = true
				}
				if n.IsBlocker() {
					touchesBlocker = true
				}
			}
			if hasMatch && touchesBlocker {
				return At(r, c), true
			}
			if hasMatch && fallback == nil {
				at := At(r, c)
				fallback = &at
			}
		}
	}

	if fallback != nil {
		return *fallback, true
	}
	return Coord{}, false
}
