package snake

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/wrapsnake/internal/core"
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.renderHUD(dst)

	switch {
	case g.setupErr != nil:
		g.renderOverlay(dst, "Cannot start", g.setupErr.Error())
		return
	case g.world == nil:
		return
	case g.tooSmall:
		g.renderOverlay(dst, "Window too small", "Resize to continue")
		return
	}

	g.renderBoard(dst)

	switch g.Status() {
	case StatusNotStarted:
		g.renderOverlay(dst, g.Title(), "Press an arrow key to start")
	case StatusWon:
		g.renderOverlay(dst, "You filled the board!", fmt.Sprintf("Score: %d  R to restart", g.Score()))
	case StatusLost:
		g.renderOverlay(dst, "Game Over", fmt.Sprintf("Score: %d  R to restart", g.Score()))
	default:
		if g.paused {
			g.renderOverlay(dst, "Paused", "Press P to continue")
		}
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s — Score: %d", g.Title(), g.Score())
	if g.world != nil {
		hud += fmt.Sprintf("  Length: %d  Board: %dx%d", g.world.SnakeLen(), g.world.Width(), g.world.Height())
	}
	dst.DrawText(0, 0, hud)
	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// renderBoard draws the border, the reward and the snake.
func (g *Game) renderBoard(dst *core.Screen) {
	w := g.world
	border := core.NewRect(g.boardX, g.boardY, w.Width()*cellWidth+2, w.Height()+2)
	g.drawBorder(dst, border)

	grid := w.Grid()
	if w.HasReward() {
		g.drawCell(dst, grid, w.RewardCell(), "()", g.palette.Reward)
	}

	cells := w.SnakeCells()
	// Tail first so the head is drawn on top of any overlap.
	for i := len(cells) - 1; i >= 1; i-- {
		g.drawCell(dst, grid, cells[i], "██", g.palette.Body)
	}
	g.drawCell(dst, grid, cells[0], "██", g.palette.Head)
}

func (g *Game) drawBorder(dst *core.Screen, r core.Rect) {
	for x := r.X; x < r.Right(); x++ {
		dst.SetColored(x, r.Y, '─', g.palette.Border)
		dst.SetColored(x, r.Bottom()-1, '─', g.palette.Border)
	}
	for y := r.Y; y < r.Bottom(); y++ {
		dst.SetColored(r.X, y, '│', g.palette.Border)
		dst.SetColored(r.Right()-1, y, '│', g.palette.Border)
	}
	dst.SetColored(r.X, r.Y, '┌', g.palette.Border)
	dst.SetColored(r.Right()-1, r.Y, '┐', g.palette.Border)
	dst.SetColored(r.X, r.Bottom()-1, '└', g.palette.Border)
	dst.SetColored(r.Right()-1, r.Bottom()-1, '┘', g.palette.Border)
}

func (g *Game) drawCell(dst *core.Screen, grid Grid, index int, glyph string, c core.Color) {
	row, col := grid.RowCol(index)
	x := g.boardX + 1 + col*cellWidth
	y := g.boardY + 1 + row
	dst.DrawTextColored(x, y, glyph, c)
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	width := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.NewRect(0, 0, dst.Width(), dst.Height()).Centered(width, 5)
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}

// String renders the world as text: H head, o body, * reward, . empty.
func (w *World) String() string {
	marks := make([]byte, w.Capacity())
	for i := range marks {
		marks[i] = '.'
	}
	if w.HasReward() {
		marks[w.RewardCell()] = '*'
	}
	for _, c := range w.SnakeCells()[1:] {
		marks[c] = 'o'
	}
	marks[w.SnakeHeadIndex()] = 'H'

	var sb strings.Builder
	size := w.Width()
	for row := range size {
		if row > 0 {
			sb.WriteByte('\n')
		}
		sb.Write(marks[row*size : (row+1)*size])
	}
	return sb.String()
}
