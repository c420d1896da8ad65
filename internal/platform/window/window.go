// Package window is the ebiten host. It draws the playfield in its own
// pixel coordinates with a filled circle for the actor.
package window

import (
	"bytes"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/examples/resources/fonts"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/tui-flappy/internal/platform/window/scene"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/session"
)

func init() {
	registry.Register("window", func() registry.Host { return Host{} })
}

var flapKeys = []ebiten.Key{ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW}

// Host runs a driver in a desktop window.
type Host struct{}

func (Host) ID() string    { return "window" }
func (Host) Title() string { return "Window (Ebitengine)" }

// Run opens the window and blocks until it is closed or the driver is done.
func (Host) Run(d session.Driver, opts registry.Options) error {
	face, err := text.NewGoTextFaceSource(bytes.NewReader(fonts.PressStart2P_ttf))
	if err != nil {
		return fmt.Errorf("window: cannot load font: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	snap := d.Snapshot()
	g := &game{
		driver: d,
		music:  opts.Music,
		face:   face,
		logger: logger,
		width:  snap.PlayfieldW,
		height: snap.PlayfieldH,
	}

	if opts.Music != nil {
		if err := opts.Music.Start(); err != nil {
			logger.Warn("music disabled", "error", err)
		}
		defer opts.Music.Stop()
	}

	if opts.TickRate > 0 {
		ebiten.SetTPS(opts.TickRate)
	}
	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle(opts.Caption)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	return nil
}

// game implements ebiten.Game on top of a driver.
type game struct {
	driver session.Driver
	music  registry.Music
	face   *text.GoTextFaceSource
	logger *log.Logger
	width  int
	height int
}

// Update runs once per tick: input first, then the simulation step.
func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) && g.music != nil {
		g.logger.Debug("music toggled", "muted", g.music.ToggleMute())
	}
	for _, k := range flapKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.driver.Press()
			break
		}
	}

	g.driver.Tick()
	if g.driver.Done() {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	sc := scene.Build(g.driver.Snapshot())

	screen.Fill(sc.Background)
	for _, r := range sc.Rects {
		vector.DrawFilledRect(screen, r.X, r.Y, r.W, r.H, r.Color, false)
	}
	vector.DrawFilledCircle(screen, sc.Actor.X, sc.Actor.Y, sc.Actor.R, sc.Actor.Color, true)

	for _, l := range sc.Labels {
		op := &text.DrawOptions{}
		op.GeoM.Translate(l.X, l.Y)
		op.ColorScale.ScaleWithColor(l.Color)
		op.PrimaryAlign = text.AlignCenter
		text.Draw(screen, l.Text, &text.GoTextFace{
			Source: g.face,
			Size:   l.Size,
		}, op)
	}
}

// Layout keeps the playfield's own resolution; ebiten scales the window.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
