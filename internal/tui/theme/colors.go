package theme

import "charm.land/lipgloss/v2"

var (
	ColorBlack = lipgloss.Color("#000000")
	ColorWhite = lipgloss.Color("#FFFFFF")
	ColorDim   = lipgloss.Color("#666666")
)

var (
	ColorCrimson = lipgloss.Color("#C8102E") // accent, countdown arc
	ColorOn      = lipgloss.Color("#16EC06") // auto login armed
	ColorOff     = lipgloss.Color("#FFDE00") // saved, auto login disabled
	ColorMissing = lipgloss.Color("#FF0026") // nothing saved
	ColorFinal   = lipgloss.Color("#FF7A00") // inside the clicker lead
)

var (
	ColorBgDark  = lipgloss.Color("#101518") // Darker end of gradient
	ColorBgLight = lipgloss.Color("#283339") // Lighter end of gradient
)
