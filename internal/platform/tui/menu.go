package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blast/internal/config"
	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/registry"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

// Difficulties lists the presets offered by the menu, in display order.
var Difficulties = []string{"easy", "normal", "hard"}

var (
	logoStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
)

// MenuItem is a playable mode and its best stored score.
type MenuItem struct {
	GameID string
	Title  string
	Best   int
}

// MenuModel picks a mode and a difficulty preset.
type MenuModel struct {
	items      []MenuItem
	cursor     int
	difficulty int
	width      int
	height     int
	config     core.RuntimeConfig
	keyMapper  *KeyMapper

	quitting       bool
	chosen         bool
	openScoreboard bool
}

// NewMenuModel lists the registered modes. Best scores are read from store
// when it is not nil.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	modes := registry.List()
	items := make([]MenuItem, len(modes))
	for i, g := range modes {
		items[i] = MenuItem{GameID: g.ID, Title: g.Title}
		if store != nil {
			if best, err := store.HighScore(g.ID); err == nil {
				items[i].Best = best
			}
		}
	}

	return MenuModel{
		items:      items,
		difficulty: 1,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
	}
}

func (m MenuModel) Init() tea.Cmd { return nil }

func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = max(m.cursor-1, 0)
	case MenuActionDown:
		m.cursor = max(min(m.cursor+1, len(m.items)-1), 0)
	case MenuActionLeft:
		m.difficulty = max(m.difficulty-1, 0)
	case MenuActionRight:
		m.difficulty = min(m.difficulty+1, len(Difficulties)-1)
	case MenuActionSelect:
		if len(m.items) > 0 {
			m.chosen = true
			return m, tea.Quit
		}
	case MenuActionScoreboard:
		m.openScoreboard = true
		return m, tea.Quit
	}
	return m, nil
}

func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	lines := []string{
		"",
		logoStyle.Render("  B L A S T  "),
		"",
		"Pop groups of two or more. Clear every brick.",
		"",
	}
	for i, item := range m.items {
		label := item.Title
		if item.Best > 0 {
			label = fmt.Sprintf("%-12s best %d", item.Title, item.Best)
		}
		if i == m.cursor {
			lines = append(lines, selectedStyle.Render("> "+label))
		} else {
			lines = append(lines, "  "+label)
		}
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Difficulty: < %s >", m.Difficulty()),
		presetSummary(m.Difficulty()),
		"",
		"↑/↓ mode  ←/→ difficulty  enter play  tab scores  q quit",
	)

	var b strings.Builder
	for _, line := range lines {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}
	return b.String()
}

// presetSummary describes what a preset does to the stock board.
func presetSummary(name string) string {
	preset, err := config.ParsePreset(name)
	if err != nil {
		return ""
	}
	cfg := config.DefaultBlastConfig()
	config.ApplyBlastPreset(&cfg, preset)

	caps := "unlimited specials"
	if cfg.Specials.MaxBombs > 0 || cfg.Specials.MaxChains > 0 {
		caps = fmt.Sprintf("%d bombs, %d chains", cfg.Specials.MaxBombs, cfg.Specials.MaxChains)
	}
	return fmt.Sprintf("%d moves, %s", cfg.Session.Moves, caps)
}

// Difficulty returns the chosen preset name.
func (m MenuModel) Difficulty() string {
	return Difficulties[m.difficulty]
}

// IsQuitting reports whether the user asked to quit.
func (m MenuModel) IsQuitting() bool { return m.quitting }

// Config returns the runtime config, resized if the window changed.
func (m MenuModel) Config() core.RuntimeConfig { return m.config }

func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult is what the menu was closed with.
type MenuResult struct {
	GameID          string
	Difficulty      string
	Config          core.RuntimeConfig
	WantsScoreboard bool
	Quit            bool
}

// Result summarizes the menu's final state.
func (m MenuModel) Result() MenuResult {
	res := MenuResult{Config: m.config, Difficulty: m.Difficulty()}
	switch {
	case m.openScoreboard:
		res.WantsScoreboard = true
	case m.quitting, !m.chosen:
		res.Quit = true
	default:
		res.GameID = m.items[m.cursor].GameID
	}
	return res
}

// RunMenu shows the menu as its own program.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig) (MenuResult, error) {
	final, err := tea.NewProgram(NewMenuModel(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}
	m, ok := final.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}
	return m.Result(), nil
}
