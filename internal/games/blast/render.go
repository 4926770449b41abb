package blast

import (
	"fmt"

	"github.com/vovakirdan/tui-blast/internal/core"
	"github.com/vovakirdan/tui-blast/internal/games/blast/engine"
)

const (
	hudHeight    = 2
	footerHeight = 3
)

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	g.renderBoard(dst)
	g.renderFooter(dst)
	g.renderOverlay(dst)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func (g *Game) renderHUD(dst *core.Screen) {
	title := "BLAST"
	if g.mode == ModeZen {
		title = "BLAST ZEN"
	}
	dst.DrawTextCenteredColored(0, title, core.ColorBrightYellow)

	moves := "∞"
	if left := g.session.MovesLeft(); left >= 0 {
		moves = fmt.Sprintf("%d", left)
	}
	info := fmt.Sprintf("Score: %d  Moves: %s  Bricks: %d", g.Score(), moves, g.session.BlockersLeft())
	dst.DrawTextCentered(1, info)
}

func (g *Game) renderBoard(dst *core.Screen) {
	bounds := g.grid.Bounds()
	dst.DrawBox(core.NewRect(bounds.X-1, bounds.Y-1, bounds.W+2, bounds.H+2), core.ColorGray)

	b := g.eng.Board()
	hint, hasHint := engine.Coord{}, false
	if g.showHint {
		hint, hasHint = g.eng.Hint()
	}

	for r := 0; r < b.Rows(); r++ {
		for c := 0; c < b.Cols(); c++ {
			at := engine.At(r, c)
			rect := g.grid.CellRect(r, c)
			glyph, color := g.glyph(b.GetAt(at))
			if _, ok := g.flash[at]; ok && b.GetAt(at).IsEmpty() {
				glyph, color = '✶', core.ColorBrightWhite
			}
			x, y := rect.Center()
			dst.SetColored(x, y, glyph, color)

			switch {
			case at == g.cursor:
				dst.SetColored(rect.X, y, '[', core.ColorBrightWhite)
				dst.SetColored(rect.Right()-1, y, ']', core.ColorBrightWhite)
			case hasHint && at == hint:
				dst.SetColored(rect.X, y, '>', core.ColorBrightCyan)
				dst.SetColored(rect.Right()-1, y, '<', core.ColorBrightCyan)
			}
		}
	}
}

func (g *Game) glyph(cell engine.Cell) (rune, core.Color) {
	switch cell.Type {
	case engine.CellBlocker:
		return '▓', core.ColorGray
	case engine.CellPiece:
		switch cell.Piece.Kind {
		case engine.KindBomb:
			return '✹', core.ColorOrange
		case engine.KindChain:
			if cell.Piece.Color == engine.NoColor {
				return '◎', core.ColorBrightWhite
			}
			return '◎', g.settings.ColorOf(cell.Piece.Color)
		default:
			return '●', g.settings.ColorOf(cell.Piece.Color)
		}
	default:
		return ' ', core.ColorDefault
	}
}

func (g *Game) renderFooter(dst *core.Screen) {
	y := g.grid.Bounds().Bottom() + 2
	dst.DrawTextCenteredColored(y, "arrows: move  space: tap  ?: hint  p: pause  q: quit", core.ColorGray)
	if g.configErr != nil {
		dst.DrawTextCenteredColored(y+1, "config invalid, playing defaults", core.ColorRed)
	}
}

func (g *Game) renderOverlay(dst *core.Screen) {
	bounds := g.grid.Bounds()
	_, cy := bounds.Center()
	state := g.State()

	switch {
	case g.paused:
		dst.DrawTextCenteredColored(cy, " PAUSED ", core.ColorBrightWhite)
		dst.DrawTextCentered(cy+1, " P to resume ")
	case state.Won:
		dst.DrawTextCenteredColored(cy, " BOARD CLEARED! ", core.ColorBrightGreen)
		dst.DrawTextCentered(cy+1, fmt.Sprintf(" Score: %d ", state.Score))
		dst.DrawTextCentered(cy+2, " R to restart ")
	case state.GameOver && g.eng.Stuck():
		dst.DrawTextCenteredColored(cy, " NO MOVES LEFT ", core.ColorBrightRed)
		dst.DrawTextCentered(cy+1, " R to restart ")
	case state.GameOver:
		dst.DrawTextCenteredColored(cy, " OUT OF MOVES ", core.ColorBrightRed)
		dst.DrawTextCentered(cy+1, fmt.Sprintf(" Score: %d ", state.Score))
		dst.DrawTextCentered(cy+2, " R to restart ")
	}
}
