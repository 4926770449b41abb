package registry

import (
	"testing"

	"github.com/vovakirdan/tui-blast/internal/core"
)

type stubGame struct {
	id    string
	title string
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return g.title }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterAndCreate(t *testing.T) {
	Register("zz_stub", func() Game { return &stubGame{id: "zz_stub", title: "Stub"} })

	if !Exists("zz_stub") {
		t.Fatal("registered game not found")
	}
	g, err := Create("zz_stub")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.ID() != "zz_stub" {
		t.Errorf("ID() = %q", g.ID())
	}

	var found bool
	list := List()
	for i, info := range list {
		if info.ID == "zz_stub" {
			found = info.Title == "Stub"
		}
		if i > 0 && list[i-1].ID > info.ID {
			t.Error("List() not sorted by ID")
		}
	}
	if !found {
		t.Error("List() missing the stub with its title")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no_such_game"); err == nil {
		t.Error("expected error for unknown game")
	}
	if Exists("no_such_game") {
		t.Error("Exists() true for unknown game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("zz_dup", func() Game { return &stubGame{id: "zz_dup"} })
}

func TestIsolatedRegistry(t *testing.T) {
	r := New()
	if len(r.List()) != 0 {
		t.Fatal("new registry should be empty")
	}

	r.Register("b", func() Game { return &stubGame{id: "b", title: "B"} })
	r.Register("a", func() Game { return &stubGame{id: "a", title: "A"} })

	list := r.List()
	if len(list) != 2 || list[0].ID != "a" || list[1].Title != "B" {
		t.Errorf("List() = %+v", list)
	}
	if Exists("a") {
		t.Error("isolated registrations must not leak into the default registry")
	}

	g1, _ := r.Create("a")
	g2, _ := r.Create("a")
	if g1 == g2 {
		t.Error("Create should return a fresh instance each time")
	}
}

func TestRegisterMismatchedIDPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic when the factory reports another ID")
		}
	}()
	New().Register("wanted", func() Game { return &stubGame{id: "other"} })
}
