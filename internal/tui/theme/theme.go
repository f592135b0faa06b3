package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme holds the styles shared by the clock page.
type Theme struct {
	background color.Color
	readout    lipgloss.Style
	muted      lipgloss.Style
	accent     lipgloss.Style
}

func New() Theme {
	return Theme{
		background: ColorBgDark,
		readout:    lipgloss.NewStyle().Foreground(ColorWhite).Bold(true),
		muted:      lipgloss.NewStyle().Foreground(ColorDim),
		accent:     lipgloss.NewStyle().Foreground(ColorCrimson),
	}
}

// Readout styles the server time itself.
func (t Theme) Readout() lipgloss.Style {
	return t.readout
}

// Muted styles dates, hints and the time source line.
func (t Theme) Muted() lipgloss.Style {
	return t.muted
}

func (t Theme) TextAccent() lipgloss.Style {
	return t.accent
}

func (t Theme) Background() color.Color {
	return t.background
}
