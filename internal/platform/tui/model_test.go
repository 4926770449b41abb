package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast"
	"github.com/vovakirdan/tui-blast/internal/registry"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3}
}

func winnableGame() *blast.Game {
	cfg := config.DefaultBlastConfig()
	cfg.Board.Layout = []string{"00", "##"}
	return blast.NewWithConfig(blast.ModeClassic, cfg, nil)
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestModelSavesResultOnce(t *testing.T) {
	store := openStore(t)
	game := winnableGame()
	m := NewModel(game, testRuntime(), ModelOptions{Store: store, Player: "tester"})
	m.Init()

	game.Tap(0, 0)
	game.Settle()

	m = update(t, m, TickMsg{})
	m = update(t, m, TickMsg{})
	if !m.gameState.GameOver || !m.gameState.Won {
		t.Fatalf("state = %+v, want won", m.gameState)
	}

	results, err := store.TopResults("blast", 10)
	if err != nil {
		t.Fatalf("TopResults: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("saved %d results, want 1", len(results))
	}
	r := results[0]
	if r.Player != "tester" || r.Source != "local" || !r.Won || r.MovesUsed != 1 || r.BlockersDestroyed != 2 {
		t.Errorf("saved result = %+v", r)
	}
	if r.Score != game.State().Score {
		t.Errorf("saved score = %d, want %d", r.Score, game.State().Score)
	}
}

func TestModelMouseClickTaps(t *testing.T) {
	game := winnableGame()
	m := NewModel(game, testRuntime(), ModelOptions{})
	m.Init()

	// Board of 2 columns is centred: (80-8)/2+1 = 37 is column 0, row 0 is y=3.
	m = update(t, m, tea.MouseMsg{X: 38, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m = update(t, m, TickMsg{})

	if game.Session().MovesUsed() != 1 {
		t.Errorf("moves used = %d, want 1 after click", game.Session().MovesUsed())
	}
}

func TestModelQuitAndBack(t *testing.T) {
	m := NewModel(winnableGame(), testRuntime(), ModelOptions{})
	m.Init()

	quit := update(t, m, runeKey("q"))
	if !quit.IsQuitting() {
		t.Error("q should quit")
	}

	back := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if back.BackToMenu() {
		t.Error("back is only allowed when paused or over")
	}

	m = update(t, m, runeKey("p"))
	m = update(t, m, TickMsg{})
	if !m.gameState.Paused {
		t.Fatal("expected paused")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Error("esc while paused should go back to menu")
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	game := winnableGame()
	m := NewModel(game, testRuntime(), ModelOptions{})
	m.Init()
	game.Tap(0, 0)

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if game.Session().MovesUsed() != 1 {
		t.Error("resize must not reset the board")
	}
	if !strings.Contains(m.View(), "BLAST") {
		t.Error("view should render the game")
	}
}

func TestMenuSelectionAndDifficulty(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())
	if m.Difficulty() != "normal" {
		t.Errorf("default difficulty = %q", m.Difficulty())
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(MenuModel)
	if m.Difficulty() != "hard" {
		t.Errorf("difficulty = %q, want hard", m.Difficulty())
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	res := m.Result()
	if res.Quit || res.GameID == "" {
		t.Fatalf("result = %+v, want a selected game", res)
	}
	if res.Difficulty != "hard" {
		t.Errorf("result difficulty = %q", res.Difficulty)
	}
}

func TestMenuScoreboard(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if res := next.(MenuModel).Result(); !res.WantsScoreboard {
		t.Errorf("result = %+v, want scoreboard", res)
	}
}

func TestSessionModelFlow(t *testing.T) {
	store := openStore(t)
	var gotDifficulty string
	s := NewSessionModel(SessionOptions{
		Store:    store,
		Config:   testRuntime(),
		Username: "ssh-user",
		NewGame: func(_, difficulty string) (registry.Game, error) {
			gotDifficulty = difficulty
			return winnableGame(), nil
		},
	})

	next, _ := s.Update(tea.KeyMsg{Type: tea.KeyEnter})
	s = next.(SessionModel)
	if s.view != viewGame || s.gameModel == nil {
		t.Fatal("enter should start a game")
	}
	if gotDifficulty != "normal" {
		t.Errorf("factory difficulty = %q", gotDifficulty)
	}

	next, _ = s.Update(runeKey("p"))
	s = next.(SessionModel)
	next, _ = s.Update(TickMsg{})
	s = next.(SessionModel)
	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	if s.view != viewMenu {
		t.Fatal("esc while paused should return to the menu")
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyTab})
	s = next.(SessionModel)
	if s.view != viewScores {
		t.Fatal("tab should open the scoreboard")
	}
	if !strings.Contains(s.View(), "HIGH SCORES") {
		t.Error("scoreboard view missing title")
	}

	next, _ = s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	s = next.(SessionModel)
	if s.view != viewMenu {
		t.Error("esc should leave the scoreboard")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawTextColored(0, 0, "hi", core.ColorRed)
	s.DrawText(0, 1, "there")
	out := RenderScreen(s)
	if !strings.Contains(out, "hi") || !strings.Contains(out, "there") {
		t.Errorf("RenderScreen lost text: %q", out)
	}
}

func TestRenderRowTrimsTrailingBlanks(t *testing.T) {
	s := core.NewScreen(12, 1)
	s.DrawText(0, 0, "ab")
	s.SetColored(4, 0, '●', core.ColorBlue)

	out := RenderScreen(s)
	if strings.HasSuffix(out, " ") {
		t.Errorf("trailing blanks kept: %q", out)
	}
	if !strings.Contains(out, "ab") || !strings.Contains(out, "●") {
		t.Errorf("content lost: %q", out)
	}
	if got := RenderScreen(core.NewScreen(5, 2)); got != "\n" {
		t.Errorf("blank screen = %q, want one newline", got)
	}
}
