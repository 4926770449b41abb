package engine

// DetonateBomb removes the bomb at at and everything in its 3×3
// neighbourhood. Pieces of any kind are removed without triggering them;
// blockers in the area are destroyed. Cells outside the board are skipped.
func DetonateBomb(b *Board, at Coord) Clearance {
	var cl Clearance
	cell := b.GetAt(at)
	if !cell.IsPiece() || cell.Piece.Kind != KindBomb {
		return cl
	}

	cl.removePiece(b, at, PhaseSpecialBlast)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := at.Add(dr, dc)
			switch target := b.GetAt(n); {
			case target.IsPiece():
				cl.removePiece(b, n, PhaseSpecialBlast)
			case target.IsBlocker():
				cl.removeBlocker(b, n)
			}
		}
	}
	return cl
}

// ChainTarget returns the colour a chain item at at would destroy: its own
// tag if set, otherwise the first normal piece colour in row-major order.
// Returns NoColor when there is nothing to target.
func ChainTarget(b *Board, at Coord) int {
	cell := b.GetAt(at)
	if cell.IsPiece() && cell.Piece.Kind == KindChain && cell.Piece.Color != NoColor {
		return cell.Piece.Color
	}
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			if n := b.Get(r, c); n.IsNormal() {
				return n.Piece.Color
			}
		}
	}
	return NoColor
}

// DetonateChain removes the chain item at at and every normal piece on the
// board sharing its target colour. Blockers, bombs and other chain items are
// left in place.
func DetonateChain(b *Board, at Coord) (Clearance, int) {
	var cl Clearance
	cell := b.GetAt(at)
	if !cell.IsPiece() || cell.Piece.Kind != KindChain {
		return cl, NoColor
	}

	target := ChainTarget(b, at)
	cl.removePiece(b, at, PhaseSpecialBlast)
	if target == NoColor {
		return cl, NoColor
	}

	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.cols; c++ {
			if n := b.Get(r, c); n.IsNormal() && n.Piece.Color == target {
				cl.removePiece(b, At(r, c), PhaseSpecialBlast)
			}
		}
	}
	return cl, target
}
