package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/registry"
	"github.com/vovakirdan/tui-flappy/internal/session"
)

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
)

// Model is the Bubble Tea model for a running session or replay.
type Model struct {
	driver   session.Driver
	screen   *core.Screen
	opts     registry.Options
	logger   *log.Logger
	keys     KeyMap
	help     help.Model
	notice   string // One-line message shown in the status bar
	muted    bool
	quitting bool
}

// NewModel creates a model drawing into a width x height terminal.
// The last row is the status bar.
func NewModel(d session.Driver, width, height int, opts registry.Options) Model {
	if opts.TickRate <= 0 {
		opts.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	h := help.New()
	h.Width = width

	return Model{
		driver: d,
		screen: core.NewScreen(width, core.Max(height-1, 1)),
		opts:   opts,
		logger: logger,
		keys:   DefaultKeyMap(),
		help:   h,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.opts.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, core.Max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.notice = m.saveScreenshot()
		return m, nil
	}

	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionJump:
		m.driver.Press()
	case core.ActionMute:
		if m.opts.Music != nil {
			m.muted = m.opts.Music.ToggleMute()
		}
	}

	return m, nil
}

// handleTick advances the driver by one step.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	m.driver.Tick()
	if m.driver.Done() {
		m.quitting = true
		return m, tea.Quit
	}

	// Continue ticking
	return m, tickCmd(m.opts.TickRate)
}

// saveScreenshot writes the current frame as plain text and returns a notice.
func (m *Model) saveScreenshot() string {
	flappy.Render(m.screen, m.driver.Snapshot())

	dir := filepath.Join(os.Getenv("HOME"), ".flappy", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return "screenshot failed"
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("flappy_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "path", path, "error", err)
		return "screenshot failed"
	}
	m.logger.Info("screenshot saved", "path", path)
	return "saved " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.driver.Snapshot()
	flappy.Render(m.screen, snap)

	return RenderScreen(m.screen) + "\n" + m.statusLine(snap)
}

// statusLine shows the caption, episode and either a notice or key help.
func (m Model) statusLine(snap flappy.Snapshot) string {
	status := fmt.Sprintf("%s  episode %d  ", m.opts.Caption, snap.Episode)
	if m.muted {
		status += "[muted]  "
	}
	if m.notice != "" {
		return statusStyle.Render(status) + noticeStyle.Render(m.notice)
	}
	return statusStyle.Render(status + m.help.View(m.keys))
}
