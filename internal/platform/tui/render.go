package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blast/internal/core"
)

// ansiCodes maps palette colors to terminal color codes.
var ansiCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
}

var cellStyles = func() map[core.Color]lipgloss.Style {
	styles := make(map[core.Color]lipgloss.Style, len(ansiCodes)+1)
	styles[core.ColorDefault] = lipgloss.NewStyle()
	for c, code := range ansiCodes {
		styles[c] = lipgloss.NewStyle().Foreground(lipgloss.Color(code))
	}
	return styles
}()

func styleFor(c core.Color) lipgloss.Style {
	if s, ok := cellStyles[c]; ok {
		return s
	}
	return cellStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to styled text. Runs of cells sharing
// a color are styled together and trailing blanks are dropped from each row.
func RenderScreen(s *core.Screen) string {
	rows := make([]string, s.Height())
	for y := range rows {
		rows[y] = renderRow(s, y)
	}
	return strings.Join(rows, "\n")
}

func renderRow(s *core.Screen, y int) string {
	end := s.Width()
	for end > 0 && s.GetCell(end-1, y).Rune == ' ' {
		end--
	}

	var sb strings.Builder
	var run []rune
	color := core.ColorDefault
	flush := func() {
		if len(run) > 0 {
			sb.WriteString(styleFor(color).Render(string(run)))
			run = run[:0]
		}
	}

	for x := 0; x < end; x++ {
		cell := s.GetCell(x, y)
		// Spaces take whatever color the run already has.
		if cell.Color != color && cell.Rune != ' ' {
			flush()
			color = cell.Color
		}
		run = append(run, cell.Rune)
	}
	flush()
	return sb.String()
}
