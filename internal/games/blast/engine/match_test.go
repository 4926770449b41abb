package engine

import (
	"testing"
)

func TestClassifyMatch(t *testing.T) {
	tests := []struct {
		size int
		want MatchKind
	}{
		{0, MatchNone},
		{1, MatchNone},
		{2, MatchClear},
		{3, MatchBomb},
		{4, MatchChain},
		{9, MatchChain},
	}

	for _, tt := range tests {
		if got := ClassifyMatch(tt.size); got != tt.want {
			t.Errorf("ClassifyMatch(%d) = %s, want %s", tt.size, got, tt.want)
		}
	}
}

func TestFindMatches(t *testing.T) {
	tests := []struct {
		name  string
		board []string
		seed  Coord
		want  int
	}{
		{
			name:  "L shaped group",
			board: []string{"110", "100", "222"},
			seed:  At(0, 0),
			want:  3,
		},
		{
			name:  "second colour group",
			board: []string{"110", "100", "222"},
			seed:  At(0, 2),
			want:  3,
		},
		{
			name:  "single isolated piece",
			board: []string{"121", "212"},
			seed:  At(0, 0),
			want:  1,
		},
		{
			name:  "blocker separates",
			board: []string{"1#1"},
			seed:  At(0, 0),
			want:  1,
		},
		{
			name:  "specials are not part of a group",
			board: []string{"1*1", "111"},
			seed:  At(0, 0),
			want:  5,
		},
		{
			name:  "no diagonal connection",
			board: []string{"12", "21"},
			seed:  At(0, 0),
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := MustParseBoard(tt.board...)
			got := FindMatches(b, tt.seed)
			if len(got) != tt.want {
				t.Fatalf("FindMatches size = %d, want %d (%v)", len(got), tt.want, got)
			}
			if got[0] != tt.seed {
				t.Errorf("first match = %s, want seed %s", got[0], tt.seed)
			}
		})
	}
}

func TestFindMatchesRejectsNonNormalSeed(t *testing.T) {
	b := MustParseBoard("*.#A")
	for c := 0; c < 4; c++ {
		if got := FindMatches(b, At(0, c)); got != nil {
			t.Errorf("FindMatches at col %d = %v, want nil", c, got)
		}
	}
}

func TestClearMatchesDestroysAdjacentBlockers(t *testing.T) {
	b := MustParseBoard(
		"#1#",
		"#1#",
		"###",
	)
	cl := ClearMatches(b, FindMatches(b, At(0, 1)))

	if len(cl.Cleared) != 2 {
		t.Errorf("cleared = %d, want 2", len(cl.Cleared))
	}
	if len(cl.Blockers) != 5 {
		t.Errorf("blockers destroyed = %d, want 5", len(cl.Blockers))
	}
	want := "...|...|#.#"
	if got := joinLines(b); got != want {
		t.Errorf("board = %s, want %s", got, want)
	}
}

func TestClearMatchesSharedBlockerOnce(t *testing.T) {
	b := MustParseBoard(
		"1#",
		"11",
	)
	cl := ClearMatches(b, FindMatches(b, At(0, 0)))

	if len(cl.Blockers) != 1 {
		t.Errorf("blockers destroyed = %d, want 1", len(cl.Blockers))
	}
	blockerEvents := 0
	for _, ev := range cl.Events {
		if ev.Phase == PhaseBlockerDestroyed {
			blockerEvents++
		}
	}
	if blockerEvents != 1 {
		t.Errorf("blocker events = %d, want 1", blockerEvents)
	}
}

func TestDetonateBomb(t *testing.T) {
	tests := []struct {
		name     string
		board    []string
		at       Coord
		cleared  int
		blockers int
		want     string
	}{
		{
			name:     "full neighbourhood",
			board:    []string{"123", "#*#", "456"},
			at:       At(1, 1),
			cleared:  7,
			blockers: 2,
			want:     "...|...|...",
		},
		{
			name:     "corner clips to board",
			board:    []string{"*1", "1#", "22"},
			at:       At(0, 0),
			cleared:  3,
			blockers: 1,
			want:     "..|..|22",
		},
		{
			name:     "neighbouring bomb is removed not triggered",
			board:    []string{"**.", "..1"},
			at:       At(0, 0),
			cleared:  2,
			blockers: 0,
			want:     "...|..1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := MustParseBoard(tt.board...)
			cl := DetonateBomb(b, tt.at)
			if len(cl.Cleared) != tt.cleared {
				t.Errorf("cleared = %d, want %d", len(cl.Cleared), tt.cleared)
			}
			if len(cl.Blockers) != tt.blockers {
				t.Errorf("blockers = %d, want %d", len(cl.Blockers), tt.blockers)
			}
			if got := joinLines(b); got != tt.want {
				t.Errorf("board = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestDetonateBombIgnoresNonBomb(t *testing.T) {
	b := MustParseBoard("11")
	if cl := DetonateBomb(b, At(0, 0)); len(cl.Cleared) != 0 {
		t.Errorf("detonating a normal piece cleared %d cells", len(cl.Cleared))
	}
}

func TestDetonateChain(t *testing.T) {
	tests := []struct {
		name    string
		board   []string
		at      Coord
		target  int
		cleared int
		want    string
	}{
		{
			name:    "tagged colour",
			board:   []string{"B01", "1*1"},
			at:      At(0, 0),
			target:  1,
			cleared: 4,
			want:    ".0.|.*.",
		},
		{
			name:    "untagged takes first colour in row-major order",
			board:   []string{"@2", "32"},
			at:      At(0, 0),
			target:  2,
			cleared: 3,
			want:    "..|3.",
		},
		{
			name:    "nothing to target",
			board:   []string{"@*"},
			at:      At(0, 0),
			target:  NoColor,
			cleared: 1,
			want:    ".*",
		},
		{
			name:    "blockers survive",
			board:   []string{"A#", "0#"},
			at:      At(0, 0),
			target:  0,
			cleared: 2,
			want:    ".#|.#",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := MustParseBoard(tt.board...)
			cl, target := DetonateChain(b, tt.at)
			if target != tt.target {
				t.Errorf("target = %d, want %d", target, tt.target)
			}
			if len(cl.Cleared) != tt.cleared {
				t.Errorf("cleared = %d, want %d", len(cl.Cleared), tt.cleared)
			}
			if len(cl.Blockers) != 0 {
				t.Errorf("chain destroyed %d blockers", len(cl.Blockers))
			}
			if got := joinLines(b); got != tt.want {
				t.Errorf("board = %s, want %s", got, tt.want)
			}
		})
	}
}

func joinLines(b *Board) string {
	out := ""
	for i, line := range b.Lines() {
		if i > 0 {
			out += "|"
		}
		out += line
	}
	return out
}
