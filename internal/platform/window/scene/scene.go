// Package scene lays out a flappy snapshot as window drawing primitives.
package scene

import (
	"image/color"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// Scene colors.
var (
	SkyColor      = color.RGBA{R: 0, G: 255, B: 255, A: 255}
	ActorColor    = color.RGBA{R: 255, G: 255, B: 0, A: 255}
	ObstacleColor = color.RGBA{R: 0, G: 200, B: 0, A: 255}
	OverlayColor  = color.RGBA{R: 255, G: 0, B: 0, A: 255}
)

// Text sizes in pixels for the overlay.
const (
	TitleSize    = 40
	SubtitleSize = 16
)

type Circle struct {
	X, Y, R float32
	Color   color.Color
}

type Rect struct {
	X, Y, W, H float32
	Color      color.Color
}

type Label struct {
	Text  string
	X, Y  float64 // Center of the line's top edge
	Size  float64
	Color color.Color
}

// Scene is everything one frame draws, in draw order. It has no ebiten
// types so it can be built and checked without a window.
type Scene struct {
	Background color.Color
	Rects      []Rect
	Actor      Circle
	Labels     []Label
}

// Build lays out a snapshot in playfield pixels.
func Build(snap flappy.Snapshot) Scene {
	sc := Scene{Background: SkyColor}

	for _, r := range snap.Obstacles {
		if r.Empty() {
			continue
		}
		sc.Rects = append(sc.Rects, Rect{
			X: float32(r.X), Y: float32(r.Y),
			W: float32(r.W), H: float32(r.H),
			Color: ObstacleColor,
		})
	}

	box := snap.ActorBox
	cx, cy := box.Center()
	sc.Actor = Circle{X: float32(cx), Y: float32(cy), R: float32(box.W) / 2, Color: ActorColor}

	if !snap.Running {
		mid := float64(snap.PlayfieldW) / 2
		top := float64(snap.PlayfieldH)/2 - TitleSize
		sc.Labels = []Label{
			{Text: flappy.GameOverText, X: mid, Y: top, Size: TitleSize, Color: OverlayColor},
			{Text: flappy.RestartText, X: mid, Y: top + TitleSize + SubtitleSize, Size: SubtitleSize, Color: OverlayColor},
		}
	}

	return sc
}
