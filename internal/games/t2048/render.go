package t2048

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vovakirdan/tui-2048/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3
)

// boardSize returns the drawn board dimensions for a sides x sides grid.
func boardSize(sides int) (w, h int) {
	return sides*cellWidth + 1, sides*cellHeight + 1
}

// tileColor picks a color per tile value.
func tileColor(v int) core.Color {
	switch v {
	case 2:
		return core.ColorWhite
	case 4:
		return core.ColorBrightWhite
	case 8:
		return core.ColorOrange
	case 16:
		return core.ColorBrightRed
	case 32:
		return core.ColorRed
	case 64:
		return core.ColorBrightMagenta
	case 128:
		return core.ColorYellow
	case 256:
		return core.ColorBrightYellow
	case 512:
		return core.ColorGreen
	case 1024:
		return core.ColorBrightGreen
	case 2048:
		return core.ColorBrightCyan
	default:
		return core.ColorBrightBlue // Beyond the target
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	boardW, boardH := boardSize(g.variant.Sides)
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderGrid(dst, boardX, boardY)
	g.renderTiles(dst, boardX, boardY)
	g.renderOverlays(dst, core.NewRect(boardX, boardY, boardW, boardH))

	hint := g.Controls()
	dst.DrawTextColor((g.screenW-len(hint))/2, boardY+boardH+1, hint, core.ColorGray)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws the title, score and best.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := g.Title()
	dst.DrawTextColor(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightYellow)

	score := g.session.Score()
	dst.DrawText(boardX, 1, fmt.Sprintf("Score: %d", score.Current))

	bestStr := fmt.Sprintf("Best: %d", score.Best)
	dst.DrawText(max(boardX, boardX+boardW-len(bestStr)), 1, bestStr)

	maxStr := fmt.Sprintf("Max tile: %d", g.session.grid.MaxTile())
	dst.DrawTextColor(boardX+(boardW-len(maxStr))/2, 2, maxStr, core.ColorGray)
}

// renderGrid draws the cell borders.
func (g *Game) renderGrid(dst *core.Screen, boardX, boardY int) {
	n := g.variant.Sides
	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == n:
				corner = '┐'
			case y == n && x == 0:
				corner = '└'
			case y == n && x == n:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == n:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == n:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.Set(px, py, corner)

			if x < n {
				for i := 1; i < cellWidth; i++ {
					dst.Set(px+i, py, '─')
				}
			}
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.Set(px, py+i, '│')
				}
			}
		}
	}
}

// renderTiles draws settled tiles, then any tiles still sliding.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	grid := g.session.grid
	for i := range grid.Sides() {
		for j := range grid.Sides() {
			c := Coord{I: i, J: j}
			t, ok := grid.Get(i, j)
			if !ok || g.anim.hides(c) {
				continue
			}
			color := tileColor(t.Value)
			if g.anim.popping(c) {
				color = core.ColorGray
			}
			drawTile(dst, boardX, boardY, float64(i), float64(j), t.Value, color)
		}
	}

	if g.anim.phase != PhaseSlide {
		return
	}
	for _, t := range g.anim.mergeTargets() {
		drawTile(dst, boardX, boardY, float64(t.To.I), float64(t.To.J), t.Value, tileColor(t.Value))
	}
	for i := range g.anim.tiles {
		t := &g.anim.tiles[i]
		x, y := t.position()
		drawTile(dst, boardX, boardY, x, y, t.Value, tileColor(t.Value))
	}
}

// drawTile writes a value centered in the cell at fractional position (x, y).
func drawTile(dst *core.Screen, boardX, boardY int, x, y float64, value int, color core.Color) {
	cellX := boardX + int(math.Round(x*cellWidth)) + 1
	cellY := boardY + int(math.Round(y*cellHeight)) + 1

	valStr := strconv.Itoa(value)
	padLeft := max(0, (cellWidth-1-len(valStr))/2)
	dst.DrawTextColor(cellX+padLeft, cellY, valStr, color)
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, board core.Rect) {
	switch {
	case g.session.IsLoss():
		maxStr := fmt.Sprintf("Max tile: %d", g.session.grid.MaxTile())
		drawOverlay(dst, board, "GAME OVER", maxStr, "Press R to restart")
	case g.paused:
		drawOverlay(dst, board, "PAUSED", "Press P to resume")
	case g.winBanner:
		drawOverlay(dst, board, "YOU WIN!", fmt.Sprintf("%d reached", WinTarget), "Move to keep going")
	}
}

// drawOverlay draws a centered boxed message over the board.
func drawOverlay(dst *core.Screen, board core.Rect, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := board.Centered(maxLen+4, len(lines)+2)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	centerX, _ := box.Center()
	for i, line := range lines {
		dst.DrawTextColor(centerX-len(line)/2, box.Y+1+i, line, core.ColorBrightWhite)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD/hjkl: Move | P: Pause | R: New game | B: Menu | Q: Quit"
}
