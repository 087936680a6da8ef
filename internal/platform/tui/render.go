package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/rps-arena/internal/config"
	"github.com/vovakirdan/rps-arena/internal/core"
	"github.com/vovakirdan/rps-arena/internal/sim"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorRed:         lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:        lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:     lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:        lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:       lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightWhite: lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorDarkGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// DrawArena draws a bordered arena with every entity of snap into dst.
// dst must be sized to the arena in cells plus one cell of border per side.
// Entities are placed by the cell containing their center; later entities
// overwrite earlier ones sharing a cell.
func DrawArena(dst *core.Screen, snap sim.Snapshot, vc config.ViewportConfig, theme Theme) {
	dst.Clear()
	frame := core.NewRect(0, 0, dst.Width(), dst.Height())
	dst.DrawBox(frame, theme.Border)

	inner := frame.Inset(1)
	if inner.W == 0 || inner.H == 0 {
		return
	}

	for _, e := range snap.Entities {
		col, row := vc.ToCell(e.X, e.Y)
		col = core.Clamp(col, 0, inner.W-1)
		row = core.Clamp(row, 0, inner.H-1)
		r, c := theme.glyph(e.Kind)
		dst.SetColored(inner.X+col, inner.Y+row, r, c)
	}

	if msg := bannerText(snap); msg != "" {
		dst.DrawTextCentered(inner.Y+inner.H/2, msg, theme.Banner)
	}
}

// bannerText returns the overlay message for the arena, if any.
func bannerText(snap sim.Snapshot) string {
	switch snap.State {
	case sim.StateTerminal:
		return " " + strings.ToUpper(snap.Winner.String()) + " WINS! "
	case sim.StateIdle:
		if snap.Tick == 0 {
			return " PRESS SPACE TO START "
		}
		return " PAUSED "
	}
	return ""
}

// RenderHUD renders the counts line shown above the arena.
func RenderHUD(stats sim.Stats, title string, theme Theme) string {
	sep := theme.HUDSeparator.Render(" │ ")

	parts := make([]string, 0, len(sim.Kinds))
	for _, k := range sim.Kinds {
		r, _ := theme.glyph(k)
		label := fmt.Sprintf("%c %s", r, strings.ToUpper(k.String()))
		parts = append(parts, theme.HUDTitle.Render(label)+" "+theme.HUDValue.Render(fmt.Sprintf("%d", stats.Of(k))))
	}

	hud := strings.Join(parts, sep)
	if title != "" {
		hud = theme.HUDControls.Render(title) + sep + hud
	}
	return hud
}
