package gauge

import (
	"math"
	"strings"

	drawille "github.com/exrook/drawille-go"
)

const (
	// dial size in braille dots; one cell is 2 dots wide and 4 tall
	dotsWidth  = 52
	dotsHeight = 52

	ringThickness = 5.0
	tickGap       = 2.5 // degrees left blank either side of a tick
)

// ring rasterizes the annulus of the dial, keeping only dots whose clockwise
// angle from 12 o'clock is below sweep and not inside a tick gap.
func ring(canvas *drawille.Canvas, sweep float64, ticks int) {
	var (
		cx     = float64(dotsWidth) / 2
		cy     = float64(dotsHeight) / 2
		radius = float64(dotsWidth)/2 - 1
		inner  = radius - ringThickness
	)

	for y := range dotsHeight {
		for x := range dotsWidth {
			dx, dy := float64(x)-cx, float64(y)-cy
			if d := math.Hypot(dx, dy); d > radius || d <= inner {
				continue
			}
			deg := bearing(dx, dy)
			if deg >= sweep || onTick(deg, ticks) {
				continue
			}
			canvas.Set(x, y)
		}
	}
}

// bearing is the clockwise angle of (dx, dy) from straight up, in [0, 360).
// screen y grows downward.
func bearing(dx, dy float64) float64 {
	deg := math.Atan2(dx, -dy) * 180 / math.Pi
	if deg < 0 {
		deg += 360
	}
	return deg
}

func onTick(deg float64, ticks int) bool {
	if ticks <= 0 {
		return false
	}
	step := 360 / float64(ticks)
	off := math.Mod(deg, step)
	return off < tickGap || step-off < tickGap
}

// frame returns the canvas as exactly dotsHeight/4 rows of dotsWidth/2 cells.
func frame(canvas *drawille.Canvas) []string {
	var (
		cols = dotsWidth / 2
		rows = canvas.Rows(0, 0, dotsWidth, dotsHeight)
		out  = make([]string, dotsHeight/4)
	)
	for i := range out {
		var line []rune
		if i < len(rows) {
			line = []rune(rows[i])
		}
		if len(line) > cols {
			line = line[:cols]
		}
		out[i] = string(line) + strings.Repeat(" ", cols-len(line))
	}
	return out
}

const blank rune = '⠀'

// dots is the braille dot pattern of r, zero for anything else.
func dots(r rune) rune {
	if r < blank || r > blank+0xFF {
		return 0
	}
	return r - blank
}
