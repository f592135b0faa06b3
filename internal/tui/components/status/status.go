package status

import (
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/sugang/internal/tui/theme"
)

const statusDot = "●"

// Indicator shows whether auto login will run at the next boundary.
type Indicator struct {
	Checked   bool
	Saved     bool
	AutoLogin bool
}

func (i Indicator) Render() string {
	if !i.Checked {
		return lipgloss.NewStyle().
			Foreground(theme.ColorBgLight).
			Render(statusDot + " checking...")
	}

	switch {
	case !i.Saved:
		return lipgloss.NewStyle().
			Foreground(theme.ColorMissing).
			Render(statusDot + " no credentials")
	case i.AutoLogin:
		return lipgloss.NewStyle().
			Foreground(theme.ColorOn).
			Render(statusDot + " auto login on")
	default:
		return lipgloss.NewStyle().
			Foreground(theme.ColorOff).
			Render(statusDot + " auto login off")
	}
}
