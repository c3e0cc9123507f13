package flappy

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/voiceflap/internal/core"
	"github.com/vovakirdan/voiceflap/internal/engine"
)

// Visual characters for rendering
const (
	PipeChar      = '█'
	PipeCapTop    = '▀'
	PipeCapBottom = '▄'
	GroundChar    = '═'
	ActorChar     = '●'
	ActorBeak     = '▶'
	healthBarLen  = 10
)

// hudRows is the number of rows reserved above the playfield.
const hudRows = 1

// viewport fits the world height between the HUD and the ground line.
func viewport(dst *core.Screen) core.Viewport {
	rows := dst.Height() - hudRows - 1
	return core.NewViewport(engine.FloorY+engine.ActorRadius, rows, hudRows)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	vp := viewport(dst)
	groundY := dst.Height() - 1
	dst.DrawHLine(0, groundY, dst.Width(), GroundChar, core.ColorYellow)

	for _, o := range g.session.Obstacles() {
		g.drawPipe(dst, vp, o)
	}
	g.drawActor(dst, vp)
	g.drawHUD(dst)

	st := g.State()
	switch {
	case st.Victory:
		g.drawCenteredMessage(dst, "TIME UP - YOU SURVIVED", fmt.Sprintf("Score: %d  |  Press R to play again", st.Score))
	case st.GameOver:
		g.drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", st.Score))
	case st.Paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

// drawPipe renders a single obstacle: a top column down to the gap and a
// bottom column from the gap to the ground, each with a cap facing the gap.
func (g *Game) drawPipe(dst *core.Screen, vp core.Viewport, o engine.Obstacle) {
	left := vp.Col(o.X)
	right := vp.Col(o.Right())
	if right <= left {
		right = left + 1
	}
	gapTop := vp.Row(o.GapTop())
	gapBottom := vp.Row(o.GapBottom())
	groundY := dst.Height() - 1

	color := core.ColorGreen
	if o.Collided {
		color = core.ColorOrange
	}

	for x := left; x < right; x++ {
		for y := hudRows; y < gapTop; y++ {
			dst.SetColor(x, y, PipeChar, color)
		}
		if gapTop > hudRows {
			dst.SetColor(x, gapTop-1, PipeCapTop, core.ColorBrightGreen)
		}
		for y := gapBottom + 1; y < groundY; y++ {
			dst.SetColor(x, y, PipeChar, color)
		}
		if gapBottom+1 < groundY {
			dst.SetColor(x, gapBottom+1, PipeCapBottom, core.ColorBrightGreen)
		}
	}
}

func (g *Game) drawActor(dst *core.Screen, vp core.Viewport) {
	a := g.session.Actor()
	x := vp.Col(engine.ActorX)
	y := vp.Row(a.Y)

	color := core.ColorBrightYellow
	if g.flash > 0 {
		color = core.ColorBrightRed
	}
	dst.SetColor(x-1, y, ActorChar, color)
	dst.SetColor(x, y, ActorBeak, color)
}

// drawHUD writes score, countdown, and a health bar on the top row.
func (g *Game) drawHUD(dst *core.Screen) {
	st := g.State()

	left := fmt.Sprintf(" Score: %d  Time: %3.0fs ", st.Score, st.TimeLeft)
	dst.DrawTextColor(1, 0, left, core.ColorWhite)

	filled := core.Clamp(st.Health*healthBarLen/engine.MaxHealth, 0, healthBarLen)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", healthBarLen-filled)
	barColor := core.ColorBrightGreen
	if st.Health < engine.MaxHealth*3/10 {
		barColor = core.ColorBrightRed
	}

	label := fmt.Sprintf(" HP %3d ", st.Health)
	x := dst.Width() - len(label) - healthBarLen - 1
	dst.DrawTextColor(x, 0, label, core.ColorWhite)
	dst.DrawTextColor(x+len(label), 0, bar, barColor)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorCyan)

	dst.DrawTextColor(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
