package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Glyphs and colors for the terminal rendering.
const (
	ActorChar    = '●'
	PipeChar     = '█'
	PipeCapChar  = '▀'
	GroundChar   = '═'
	SkyChar      = ' '
	GameOverText = "Game Over"
	RestartText  = "Press SPACE to Restart"
)

var (
	skyCell  = core.Cell{Rune: SkyChar, Bg: core.ColorCyan}
	pipeCell = core.Cell{Rune: PipeChar, Color: core.ColorGreen, Bg: core.ColorCyan}
)

// Render draws snap into dst, scaling the pixel playfield to the screen.
// The bottom row of dst is the ground line; the playfield maps onto the rows above it.
func Render(dst *core.Screen, snap Snapshot) {
	dst.FillCell(skyCell)

	w, h := dst.Width(), dst.Height()-1
	if w <= 0 || h <= 0 || snap.PlayfieldW <= 0 || snap.PlayfieldH <= 0 {
		return
	}
	sc := scaler{cellsW: w, cellsH: h, pixelsW: snap.PlayfieldW, pixelsH: snap.PlayfieldH}

	dst.DrawHLine(0, h, w, GroundChar, core.ColorGreen)

	for i, r := range snap.Obstacles {
		cells := sc.rect(r)
		dst.DrawRect(cells, pipeCell)
		// Odd entries are bottom segments; cap their upper edge
		if i%2 == 1 && !cells.Empty() {
			dst.DrawHLine(cells.X, cells.Y, cells.W, PipeCapChar, core.ColorBrightGreen)
		}
	}

	box := sc.rect(snap.ActorBox)
	for y := box.Y; y < box.Bottom(); y++ {
		for x := box.X; x < box.Right(); x++ {
			dst.SetColored(x, y, ActorChar, core.ColorBrightYellow)
		}
	}

	if !snap.Running {
		drawOverlay(dst, GameOverText, RestartText)
	}
}

// drawOverlay draws the two-line game over message in a centered box.
func drawOverlay(dst *core.Screen, title, subtitle string) {
	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	frame := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(frame, core.Cell{Rune: ' '})
	dst.DrawBox(frame, core.ColorBrightRed)

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightRed)
	dst.DrawTextColored(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle, core.ColorRed)
}

// scaler maps playfield pixels onto screen cells.
type scaler struct {
	cellsW, cellsH   int
	pixelsW, pixelsH int
}

// rect returns the cells covered by r. A non-empty pixel rect covers at
// least one cell along each axis so thin shapes stay visible.
func (s scaler) rect(r core.Rect) core.Rect {
	if r.Empty() {
		return core.Rect{}
	}
	x0 := floorDiv(r.X*s.cellsW, s.pixelsW)
	y0 := floorDiv(r.Y*s.cellsH, s.pixelsH)
	x1 := ceilDiv(r.Right()*s.cellsW, s.pixelsW)
	y1 := ceilDiv(r.Bottom()*s.cellsH, s.pixelsH)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
