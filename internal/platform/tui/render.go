package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// palette maps core.Color to terminal color codes.
var palette = map[core.Color]lipgloss.Color{
	core.ColorRed:          lipgloss.Color("1"),
	core.ColorGreen:        lipgloss.Color("2"),
	core.ColorYellow:       lipgloss.Color("3"),
	core.ColorBlue:         lipgloss.Color("4"),
	core.ColorCyan:         lipgloss.Color("6"),
	core.ColorWhite:        lipgloss.Color("7"),
	core.ColorBrightRed:    lipgloss.Color("9"),
	core.ColorBrightGreen:  lipgloss.Color("10"),
	core.ColorBrightYellow: lipgloss.Color("11"),
	core.ColorGray:         lipgloss.Color("245"),
}

type cellStyle struct {
	fg, bg core.Color
}

// styleFor builds the lipgloss style for a foreground/background pair.
// ColorDefault leaves the terminal's own color.
func styleFor(cs cellStyle) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c, ok := palette[cs.fg]; ok {
		style = style.Foreground(c)
	}
	if c, ok := palette[cs.bg]; ok {
		style = style.Background(c)
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	styles := make(map[cellStyle]lipgloss.Style)

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			start := cellStyle{cell.Color, cell.Bg}

			// Collect consecutive cells with the same colors
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if (cellStyle{cell.Color, cell.Bg}) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := styles[start]
			if !ok {
				style = styleFor(start)
				styles[start] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
