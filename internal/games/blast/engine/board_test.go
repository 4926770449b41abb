package engine

import (
	"strings"
	"testing"
)

func TestNewBoardLayout(t *testing.T) {
	b := NewBoard(9, 9, 5, 3)

	if got := b.Count(CellEmpty); got != 15 {
		t.Errorf("empty cells = %d, want 15", got)
	}
	if got := b.Count(CellBlocker); got != 66 {
		t.Errorf("blockers = %d, want 66", got)
	}
	if !b.Get(4, 2).IsEmpty() {
		t.Error("(4,2) should be inside the active region")
	}
	if !b.Get(5, 0).IsBlocker() || !b.Get(0, 3).IsBlocker() {
		t.Error("cells outside the active region should be blockers")
	}
}

func TestNewBoardClampsActiveRegion(t *testing.T) {
	b := NewBoard(2, 2, 5, -1)
	if got := b.Count(CellBlocker); got != 4 {
		t.Errorf("blockers = %d, want 4", got)
	}
}

func TestBoardOutOfBounds(t *testing.T) {
	b := NewBoard(3, 3, 3, 3)

	coords := []Coord{At(-1, 0), At(0, -1), At(3, 0), At(0, 3)}
	for _, at := range coords {
		if got := b.GetAt(at).Type; got != CellOutOfBounds {
			t.Errorf("GetAt(%s) = %s, want out-of-bounds", at, got)
		}
		b.SetAt(at, BlockerCell())
	}
	if got := b.Count(CellBlocker); got != 0 {
		t.Errorf("out-of-range writes changed the board: %d blockers", got)
	}
}

func TestPlaceAssignsUniqueIDs(t *testing.T) {
	b := NewBoard(1, 3, 1, 3)
	seen := make(map[uint64]bool)
	for c := 0; c < 3; c++ {
		p := b.Place(0, c, KindNormal, c)
		if p.ID == 0 || seen[p.ID] {
			t.Fatalf("piece id %d not unique", p.ID)
		}
		seen[p.ID] = true
	}
	if got := b.CountKind(KindNormal); got != 3 {
		t.Errorf("normal pieces = %d, want 3", got)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	b := MustParseBoard("12", "#.")
	clone := b.Clone()
	clone.Clear(0, 0)

	if !b.Get(0, 0).IsPiece() {
		t.Error("clearing the clone changed the original")
	}
	if b.Equal(clone) {
		t.Error("boards should differ after clearing the clone")
	}
}

func TestParseBoardRoundTrip(t *testing.T) {
	lines := []string{
		"#.01",
		"*@A9",
		"####",
	}
	b, err := ParseBoard(lines...)
	if err != nil {
		t.Fatalf("ParseBoard: %v", err)
	}
	if got := strings.Join(b.Lines(), "|"); got != strings.Join(lines, "|") {
		t.Errorf("Lines() = %q, want %q", got, strings.Join(lines, "|"))
	}

	chain := b.Get(1, 2)
	if chain.Piece.Kind != KindChain || chain.Piece.Color != 0 {
		t.Errorf("A should be a chain item targeting colour 0, got %+v", chain.Piece)
	}
	if untagged := b.Get(1, 1); untagged.Piece.Color != NoColor {
		t.Errorf("@ should have no colour, got %d", untagged.Piece.Color)
	}
}

func TestParseBoardIgnoresSpaces(t *testing.T) {
	a := MustParseBoard("1 2 #", ". . 3")
	b := MustParseBoard("12#", "..3")
	if !a.Equal(b) {
		t.Errorf("spaced board\n%s\nshould equal\n%s", a, b)
	}
}

func TestParseBoardErrors(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{name: "ragged rows", lines: []string{"123", "12"}},
		{name: "unknown rune", lines: []string{"1x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseBoard(tt.lines...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestKindText(t *testing.T) {
	for _, k := range []Kind{KindNormal, KindBomb, KindChain} {
		text, err := k.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%s): %v", k, err)
		}
		var got Kind
		if err := got.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q): %v", text, err)
		}
		if got != k {
			t.Errorf("kind %s decoded as %s", k, got)
		}
	}

	var k Kind
	if err := k.UnmarshalText([]byte("rocket")); err == nil {
		t.Error("expected error for unknown kind")
	}
}
