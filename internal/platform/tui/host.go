package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/session"
)

func init() {
	registry.Register("tui", func() registry.Host { return Host{} })
}

// Host runs a driver in the terminal's alternate screen.
type Host struct{}

func (Host) ID() string    { return "tui" }
func (Host) Title() string { return "Terminal (Bubble Tea)" }

// Run blocks until the user quits or the driver is done.
func (Host) Run(d session.Driver, opts registry.Options) error {
	w, h := TerminalSize()

	if opts.Music != nil {
		if err := opts.Music.Start(); err != nil && opts.Logger != nil {
			opts.Logger.Warn("music disabled", "error", err)
		}
		defer opts.Music.Stop()
	}

	p := tea.NewProgram(
		NewModel(d, w, h, opts),
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}

// TerminalSize returns the size of stdout, or the default 80x24.
func TerminalSize() (int, int) {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return cfg.ScreenW, cfg.ScreenH
}
