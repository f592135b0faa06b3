package gauge

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	drawille "github.com/exrook/drawille-go"

	"github.com/garrettladley/sugang/internal/tui/theme"
)

// Gauge is a circular dial filled clockwise from 12 o'clock, with a short
// text stamped in its hollow centre and a label underneath.
type Gauge struct {
	Value     *float64 // nil renders an empty dial
	Max       float64
	Label     string
	Text      string // replaces the percentage when set
	Ticks     int    // evenly spaced gaps in the ring
	Color     color.Color
	BgColor   color.Color
	TextColor color.Color
}

type Option func(*Gauge)

func WithText(text string) Option {
	return func(g *Gauge) {
		g.Text = text
	}
}

func WithTicks(n int) Option {
	return func(g *Gauge) {
		g.Ticks = n
	}
}

func New(value *float64, max float64, label string, c color.Color, opts ...Option) Gauge {
	g := Gauge{
		Value:     value,
		Max:       max,
		Label:     label,
		Color:     c,
		BgColor:   theme.ColorBgLight,
		TextColor: theme.ColorWhite,
	}
	for _, opt := range opts {
		opt(&g)
	}
	return g
}

// Fraction is Value/Max clamped to [0, 1].
func (g Gauge) Fraction() float64 {
	if g.Value == nil || g.Max <= 0 {
		return 0
	}
	return min(max(*g.Value/g.Max, 0), 1)
}

func (g Gauge) Render() string {
	track := drawille.NewCanvas()
	ring(&track, 360, g.Ticks)

	fill := drawille.NewCanvas()
	if f := g.Fraction(); f > 0 {
		ring(&fill, f*360, g.Ticks)
	}

	dial := paint(frame(&track), frame(&fill),
		lipgloss.NewStyle().Foreground(g.BgColor),
		lipgloss.NewStyle().Foreground(g.Color),
	)

	text := lipgloss.NewStyle().Foreground(g.TextColor).Bold(true).Render(g.text())
	dial = stamp(dial, text)

	label := lipgloss.NewStyle().
		Foreground(g.TextColor).
		Bold(true).
		Width(dotsWidth / 2).
		Align(lipgloss.Center).
		Render(g.Label)

	return lipgloss.JoinVertical(lipgloss.Center, strings.Join(dial, "\n"), label)
}

func (g Gauge) text() string {
	switch {
	case g.Text != "":
		return g.Text
	case g.Value == nil:
		return "--"
	default:
		return fmt.Sprintf("%.0f%%", g.Fraction()*100)
	}
}

// paint merges the fill over the track cell by cell. A cell holding any fill
// dots takes the fill colour and the union of both patterns.
func paint(track, fill []string, trackStyle, fillStyle lipgloss.Style) []string {
	out := make([]string, len(track))
	for i, row := range track {
		var f []rune
		if i < len(fill) {
			f = []rune(fill[i])
		}

		var b strings.Builder
		for j, t := range []rune(row) {
			var fd rune
			if j < len(f) {
				fd = dots(f[j])
			}
			switch td := dots(t); {
			case fd != 0:
				b.WriteString(fillStyle.Render(string(blank + (td | fd))))
			case td != 0:
				b.WriteString(trackStyle.Render(string(t)))
			default:
				b.WriteByte(' ')
			}
		}
		out[i] = b.String()
	}
	return out
}

// stamp centres text over the middle row of rows, keeping the styled cells
// either side of it.
func stamp(rows []string, text string) []string {
	if len(rows) == 0 {
		return rows
	}
	mid := len(rows) / 2
	row := rows[mid]

	width := ansi.StringWidth(row)
	textWidth := ansi.StringWidth(text)
	if textWidth >= width {
		rows[mid] = text
		return rows
	}

	left := (width - textWidth) / 2
	rows[mid] = ansi.Truncate(row, left, "") + text + ansi.TruncateLeft(row, left+textWidth, "")
	return rows
}
