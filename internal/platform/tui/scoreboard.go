package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blast/internal/registry"
	"github.com/vovakirdan/tui-blast/internal/storage"
)

const scoreboardLimit = 100

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).Padding(0, 1)
	statsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	frameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardKeyMap holds the scoreboard bindings.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextMode key.Binding
	PrevMode key.Binding
	WinsOnly key.Binding
	Back     key.Binding
	Quit     key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextMode, k.WinsOnly, k.Back}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.NextMode, k.PrevMode}, {k.WinsOnly, k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns the default scoreboard bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextMode: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next mode")),
		PrevMode: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("S-tab", "prev mode")),
		WinsOnly: key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "wins only")),
		Back:     key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel lists stored results per mode with a stats strip on top.
type ScoreboardModel struct {
	modes    []registry.GameInfo
	mode     int
	store    *storage.Store
	results  []storage.Result
	stats    *storage.GameStats
	winsOnly bool

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates a scoreboard showing the first registered mode.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		modes:  registry.List(),
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = newScoreTable(width, height)
	m.reload()
	return m
}

func newScoreTable(width, height int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Score", Width: 7},
		{Title: "Player", Width: 10},
		{Title: "Moves", Width: 5},
		{Title: "Pieces", Width: 6},
		{Title: "Bricks", Width: 6},
		{Title: "Result", Width: 7},
		{Title: "When", Width: 12},
	}
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if spare := width - 6 - used; spare > 0 {
		columns[2].Width += min(spare, 14)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(height-10, 3)),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).BorderBottom(true).Bold(true)
	s.Selected = s.Selected.Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).Bold(false)
	t.SetStyles(s)
	return t
}

func (m *ScoreboardModel) currentMode() (registry.GameInfo, bool) {
	if len(m.modes) == 0 {
		return registry.GameInfo{}, false
	}
	return m.modes[m.mode], true
}

// reload fetches results and stats for the selected mode.
func (m *ScoreboardModel) reload() {
	m.results, m.stats = nil, nil
	mode, ok := m.currentMode()
	if ok && m.store != nil {
		if results, err := m.store.TopResults(mode.ID, scoreboardLimit); err == nil {
			m.results = results
		}
		if stats, err := m.store.GetGameStats(mode.ID); err == nil {
			m.stats = stats
		}
	}
	m.refreshRows()
}

func (m *ScoreboardModel) refreshRows() {
	rows := make([]table.Row, 0, len(m.results))
	for _, r := range m.visibleResults() {
		rows = append(rows, resultRow(len(rows)+1, r))
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m ScoreboardModel) visibleResults() []storage.Result {
	if !m.winsOnly {
		return m.results
	}
	var won []storage.Result
	for _, r := range m.results {
		if r.Won {
			won = append(won, r)
		}
	}
	return won
}

func (m *ScoreboardModel) stepMode(delta int) {
	if len(m.modes) == 0 {
		return
	}
	m.mode = (m.mode + delta + len(m.modes)) % len(m.modes)
	m.reload()
}

func (m ScoreboardModel) Init() tea.Cmd { return nil }

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextMode):
			m.stepMode(1)
			return m, nil
		case key.Matches(msg, m.keys.PrevMode):
			m.stepMode(-1)
			return m, nil
		case key.Matches(msg, m.keys.WinsOnly):
			m.winsOnly = !m.winsOnly
			m.refreshRows()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.table = newScoreTable(m.width, m.height)
		m.refreshRows()
		m.help.Width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString(centerText(boardTitleStyle.Render("HIGH SCORES"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(statsStyle.Render(m.statsLine()), m.width))
	b.WriteString("\n\n")

	body := m.table.View()
	if len(m.visibleResults()) == 0 {
		body = mutedStyle.Italic(true).Padding(1, 4).Render(m.emptyMessage())
	}
	b.WriteString(centerText(frameStyle.Render(body), m.width))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) tabs() string {
	tabs := make([]string, len(m.modes))
	for i, g := range m.modes {
		if i == m.mode {
			tabs[i] = activeTabStyle.Render(g.Title)
		} else {
			tabs[i] = tabStyle.Render(g.Title)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m ScoreboardModel) statsLine() string {
	filter := ""
	if m.winsOnly {
		filter = "  [wins only]"
	}
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "no games played" + filter
	}
	s := m.stats
	return fmt.Sprintf("played %d  won %d  best %d  avg %.0f  bricks %d%s",
		s.GamesCount, s.Wins, s.HighScore, s.AvgScore, s.BlockersDestroyed, filter)
}

func (m ScoreboardModel) emptyMessage() string {
	switch {
	case m.store == nil:
		return "Scores are not being recorded."
	case m.winsOnly && len(m.results) > 0:
		return "No winning boards yet."
	default:
		return "No scores recorded yet.\nClear a board to set one!"
	}
}

// resultRow formats one stored result for the table.
func resultRow(rank int, r storage.Result) table.Row {
	player := r.Player
	if player == "" {
		player = "-"
	}
	outcome := "lost"
	if r.Won {
		outcome = "cleared"
	}
	return table.Row{
		strconv.Itoa(rank),
		strconv.Itoa(r.Score),
		player,
		strconv.Itoa(r.MovesUsed),
		strconv.Itoa(r.PiecesCleared),
		strconv.Itoa(r.BlockersDestroyed),
		outcome,
		r.CreatedAt.Format("Jan 02 15:04"),
	}
}

// IsGoingBack reports whether the user asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool { return m.goingBack }

// IsQuitting reports whether the user asked to quit.
func (m ScoreboardModel) IsQuitting() bool { return m.quitting }

// RunScoreboard runs the scoreboard as its own program and reports whether
// the user went back rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
