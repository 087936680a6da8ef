package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/rps-arena/internal/core"
	"github.com/vovakirdan/rps-arena/internal/sim"
)

// Theme contains the configurable look of the arena.
type Theme struct {
	// Entity glyphs and colors, indexed by kind
	Glyphs map[sim.Kind]rune
	Colors map[sim.Kind]core.Color

	// Arena frame
	Border core.Color
	Banner core.Color

	// HUD styles
	HUDTitle     lipgloss.Style
	HUDValue     lipgloss.Style
	HUDSeparator lipgloss.Style
	HUDControls  lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Glyphs: map[sim.Kind]rune{
			sim.Rock:     '●',
			sim.Paper:    '■',
			sim.Scissors: '✕',
		},
		Colors: map[sim.Kind]core.Color{
			sim.Rock:     core.ColorOrange,
			sim.Paper:    core.ColorBrightWhite,
			sim.Scissors: core.ColorCyan,
		},
		Border: core.ColorGray,
		Banner: core.ColorYellow,

		HUDTitle:     lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		HUDValue:     lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		HUDControls:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// LetterTheme uses plain R/P/S glyphs for terminals without good unicode fonts.
func LetterTheme() Theme {
	theme := DefaultTheme()
	theme.Glyphs = map[sim.Kind]rune{
		sim.Rock:     'R',
		sim.Paper:    'P',
		sim.Scissors: 'S',
	}
	return theme
}

// MonochromeTheme returns a colorless theme that tells kinds apart by glyph.
func MonochromeTheme() Theme {
	theme := LetterTheme()
	theme.Colors = map[sim.Kind]core.Color{
		sim.Rock:     core.ColorDefault,
		sim.Paper:    core.ColorDefault,
		sim.Scissors: core.ColorDefault,
	}
	theme.Border = core.ColorDefault
	theme.Banner = core.ColorDefault
	theme.HUDTitle = lipgloss.NewStyle().Bold(true)
	theme.HUDValue = lipgloss.NewStyle()
	return theme
}

// ThemeNames lists the names accepted by ThemeByName.
var ThemeNames = []string{"default", "letters", "mono"}

// ThemeByName returns a built-in theme.
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "", "default":
		return DefaultTheme(), nil
	case "letters":
		return LetterTheme(), nil
	case "mono":
		return MonochromeTheme(), nil
	}
	return DefaultTheme(), fmt.Errorf("tui: unknown theme %q", name)
}

// glyph returns the glyph and color for kind k.
func (t Theme) glyph(k sim.Kind) (rune, core.Color) {
	r, ok := t.Glyphs[k]
	if !ok {
		r = '?'
	}
	return r, t.Colors[k]
}
