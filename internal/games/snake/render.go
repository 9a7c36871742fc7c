package snake

import (
	"fmt"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/engine"
)

const (
	hudHeight = 1
	cellWidth = 2 // Grid cells are two columns wide to look square
)

// glyph is the two-column look of one grid cell.
type glyph struct {
	text  string
	color core.Color
}

var (
	glyphHead  = glyph{"██", core.ColorBrightGreen}
	glyphBody  = glyph{"▓▓", core.ColorGreen}
	glyphFood  = glyph{"<>", core.ColorBrightRed}
	glyphHuman = glyph{"{}", core.ColorBrightYellow}
	glyphEmpty = glyph{". ", core.ColorGray}

	obstacleGlyphs = map[engine.ObstacleKind]glyph{
		engine.ObstacleKnife: {"††", core.ColorWhite},
		engine.ObstacleHouse: {"##", core.ColorBrown},
		engine.ObstacleTree:  {"^^", core.ColorGreen},
		engine.ObstacleWell:  {"()", core.ColorCyan},
	}
)

// fits reports whether the grid, its frame and the HUD fit the screen.
func (g *Game) fits(w, h int) bool {
	size := g.gridSize()
	return w >= size*cellWidth+2 && h >= size+2+hudHeight
}

func (g *Game) gridSize() int {
	if g.cfg.Grid.Size > 0 {
		return g.cfg.Grid.Size
	}
	return config.DefaultFor(g.id).Grid.Size
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	g.tooSmall = !g.fits(dst.Width(), dst.Height())

	if g.state == nil {
		dst.DrawTextCentered(dst.Height()/2, RecoveryMessage, core.ColorBrightRed)
		return
	}
	snap := g.state.Snapshot()

	g.renderHUD(dst, snap)

	if g.tooSmall {
		need := fmt.Sprintf("Need %dx%d", snap.GridSize*cellWidth+2, snap.GridSize+2+hudHeight)
		g.renderOverlay(dst, "Window too small", need, core.ColorYellow)
		return
	}

	frame := core.NewRect(0, hudHeight, snap.GridSize*cellWidth+2, snap.GridSize+2)
	frame.X = (dst.Width() - frame.W) / 2
	dst.DrawBox(frame, core.ColorGray)
	if g.message != "" {
		dst.DrawTextCentered(frame.Y, " "+g.message+" ", core.ColorBrightRed)
	}
	g.renderGrid(dst, snap, frame.X+1, frame.Y+1)

	switch snap.Status {
	case engine.StatusWin:
		sub := fmt.Sprintf("Final Score: %d", snap.Score)
		if !snap.HasTarget {
			sub = fmt.Sprintf("Board full! Score: %d", snap.Score)
		}
		g.renderOverlay(dst, "You Win!", sub, core.ColorBrightGreen)
	case engine.StatusGameOver:
		g.renderOverlay(dst, "Game Over", "Press R to restart", core.ColorBrightRed)
	case engine.StatusPaused:
		g.renderOverlay(dst, "Paused", "Press P to continue", core.ColorBrightYellow)
	}
}

// renderHUD draws the status line.
func (g *Game) renderHUD(dst *core.Screen, snap engine.Snapshot) {
	score := fmt.Sprintf("Score: %d", snap.Score)
	if snap.WinScore > 0 {
		score = fmt.Sprintf("Score: %d/%d", snap.Score, snap.WinScore)
	}
	hud := fmt.Sprintf(" %s | %s | Length: %d", g.title, score, len(snap.Snake))
	if g.difficulty != nil && g.difficulty.IsEnabled() {
		interval := g.difficulty.Interval(g.cfg.Snake.MoveInterval(), snap.Score)
		hud += fmt.Sprintf(" | Step: %dms", interval.Milliseconds())
	}
	dst.DrawTextColor(0, 0, hud, core.ColorBrightWhite)
}

// renderGrid draws every cell with its top-left corner at (ox, oy).
func (g *Game) renderGrid(dst *core.Screen, snap engine.Snapshot, ox, oy int) {
	cells := make(map[engine.Position]glyph, len(snap.Obstacles)+len(snap.Snake)+1)
	for _, o := range snap.Obstacles {
		cells[o.Pos] = obstacleGlyphs[o.Kind]
	}
	if snap.HasTarget {
		if snap.TargetKind == engine.TargetHuman {
			cells[snap.Target] = glyphHuman
		} else {
			cells[snap.Target] = glyphFood
		}
	}
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			cells[snap.Snake[i]] = glyphHead
		} else {
			cells[snap.Snake[i]] = glyphBody
		}
	}

	for y := 0; y < snap.GridSize; y++ {
		for x := 0; x < snap.GridSize; x++ {
			gl, ok := cells[engine.Position{X: x, Y: y}]
			if !ok {
				gl = glyphEmpty
			}
			dst.DrawTextColor(ox+x*cellWidth, oy+y, gl.text, gl.color)
		}
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string, c core.Color) {
	width := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := dst.Bounds().Centered(width, 5)

	dst.FillRect(box, ' ')
	dst.DrawBox(box, c)
	dst.DrawTextCentered(box.Y+1, line1, c)
	dst.DrawTextCentered(box.Y+3, line2, core.ColorDefault)
}
