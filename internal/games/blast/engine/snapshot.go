package engine

// CellView is the serialisable form of a cell.
type CellView struct {
	Type  string `json:"type"`
	Kind  string `json:"kind,omitempty"`
	Color int    `json:"color"`
	ID    uint64 `json:"id,omitempty"`
}

// Snapshot is a read-only copy of the engine state.
type Snapshot struct {
	Rows   int          `json:"rows"`
	Cols   int          `json:"cols"`
	Cells  [][]CellView `json:"cells"`
	Lines  []string     `json:"lines"`
	State  string       `json:"state"`
	Stuck  bool         `json:"stuck"`
	Stats  Stats        `json:"stats"`
	Hint   *Coord       `json:"hint,omitempty"`
	Pieces int          `json:"pieces"`
	Bombs  int          `json:"bombs"`
	Chains int          `json:"chains"`
}

// Snapshot copies the current board and counters.
func (e *Engine) Snapshot() Snapshot {
	b := e.board
	s := Snapshot{
		Rows:   b.Rows(),
		Cols:   b.Cols(),
		Cells:  make([][]CellView, b.Rows()),
		Lines:  b.Lines(),
		State:  e.state.String(),
		Stuck:  e.stuck,
		Stats:  e.stats,
		Pieces: b.Count(CellPiece),
		Bombs:  b.CountKind(KindBomb),
		Chains: b.CountKind(KindChain),
	}
	for r := 0; r < b.Rows(); r++ {
		row := make([]CellView, b.Cols())
		for c := 0; c < b.Cols(); c++ {
			row[c] = viewOf(b.Get(r, c))
		}
		s.Cells[r] = row
	}
	if at, ok := e.Hint(); ok {
		s.Hint = &at
	}
	return s
}

func viewOf(cell Cell) CellView {
	v := CellView{Type: cell.Type.String(), Color: NoColor}
	if cell.IsPiece() {
		v.Kind = cell.Piece.Kind.String()
		v.Color = cell.Piece.Color
		v.ID = cell.Piece.ID
	}
	return v
}
