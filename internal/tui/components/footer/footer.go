package footer

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/sugang/internal/tui/theme"
)

const hintSeparator = " · "

var hintStyle = lipgloss.NewStyle().Foreground(theme.ColorDim)

// Footer lays key hints out on the left and status on the right of a
// single padded line.
type Footer struct {
	hints   []string
	right   string
	width   int
	padding int
}

func New(right string, width int, hints ...string) Footer {
	return Footer{
		hints:   hints,
		right:   right,
		width:   width,
		padding: 2,
	}
}

func (f Footer) Render() string {
	left := f.left()

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(f.right)
	spacer := strings.Repeat(" ", max(f.width-leftWidth-rightWidth-(f.padding*2), 1))

	return lipgloss.NewStyle().
		PaddingLeft(f.padding).
		PaddingRight(f.padding).
		PaddingBottom(1).
		Render(left + spacer + f.right)
}

func (f Footer) left() string {
	parts := make([]string, 0, len(f.hints)+1)
	for _, h := range f.hints {
		if h != "" {
			parts = append(parts, h)
		}
	}
	if v := f.leftContent(); v != "" {
		parts = append(parts, v)
	}
	return hintStyle.Render(strings.Join(parts, hintSeparator))
}
