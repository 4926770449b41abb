package engine

import (
	"fmt"
	"strings"
)

// ASCII board notation, one rune per cell (spaces are ignored):
//
//	#      blocker
//	.      empty
//	0-9    normal piece of that palette colour
//	*      bomb
//	@      chain item without a target colour
//	A-J    chain item targeting colour 0-9
const (
	runeBlocker = '#'
	runeEmpty   = '.'
	runeBomb    = '*'
	runeChain   = '@'
)

// ParseBoard builds a board from ASCII rows. All rows must have the same
// number of cells.
func ParseBoard(lines ...string) (*Board, error) {
	rows := make([][]rune, 0, len(lines))
	for _, line := range lines {
		row := []rune(strings.ReplaceAll(line, " ", ""))
		if len(row) == 0 {
			continue
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return NewBoard(0, 0, 0, 0), nil
	}

	cols := len(rows[0])
	b := NewBoard(len(rows), cols, 0, 0)
	for r, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("engine: row %d has %d cells, want %d", r, len(row), cols)
		}
		for c, ch := range row {
			switch {
			case ch == runeBlocker:
				b.Set(r, c, BlockerCell())
			case ch == runeEmpty:
				b.Set(r, c, EmptyCell())
			case ch >= '0' && ch <= '9':
				b.Place(r, c, KindNormal, int(ch-'0'))
			case ch == runeBomb:
				b.Place(r, c, KindBomb, NoColor)
			case ch == runeChain:
				b.Place(r, c, KindChain, NoColor)
			case ch >= 'A' && ch <= 'J':
				b.Place(r, c, KindChain, int(ch-'A'))
			default:
				return nil, fmt.Errorf("engine: unknown cell %q at %s", ch, At(r, c))
			}
		}
	}
	return b, nil
}

// MustParseBoard is ParseBoard that panics on malformed input.
func MustParseBoard(lines ...string) *Board {
	b, err := ParseBoard(lines...)
	if err != nil {
		panic(err)
	}
	return b
}

// Rune returns the ASCII notation for a cell.
func (c Cell) Rune() rune {
	switch c.Type {
	case CellEmpty:
		return runeEmpty
	case CellBlocker:
		return runeBlocker
	case CellPiece:
		switch c.Piece.Kind {
		case KindBomb:
			return runeBomb
		case KindChain:
			if c.Piece.Color >= 0 && c.Piece.Color <= 9 {
				return rune('A' + c.Piece.Color)
			}
			return runeChain
		default:
			if c.Piece.Color >= 0 && c.Piece.Color <= 9 {
				return rune('0' + c.Piece.Color)
			}
			return '?'
		}
	default:
		return ' '
	}
}

// Lines returns the board in ASCII notation, one string per row.
func (b *Board) Lines() []string {
	lines := make([]string, b.rows)
	for r := 0; r < b.rows; r++ {
		var sb strings.Builder
		for c := 0; c < b.cols; c++ {
			sb.WriteRune(b.Get(r, c).Rune())
		}
		lines[r] = sb.String()
	}
	return lines
}

// String returns the board in ASCII notation.
func (b *Board) String() string {
	return strings.Join(b.Lines(), "\n")
}
