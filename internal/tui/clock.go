package tui

import (
	"fmt"
	"image/color"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/garrettladley/sugang/internal/clock"
	"github.com/garrettladley/sugang/internal/scheduler"
	"github.com/garrettladley/sugang/internal/tui/components/gauge"
	"github.com/garrettladley/sugang/internal/tui/components/status"
	"github.com/garrettladley/sugang/internal/tui/theme"
)

// one tick every five minutes of the period
const countdownTicks = 6

type ClockState struct {
	Status status.Indicator

	Now    time.Time // local time of the last tick
	Offset time.Duration
	Source string
}

// Server is the current server time.
func (s ClockState) Server() time.Time {
	return s.Now.Add(s.Offset)
}

func (m *Model) ClockView() string {
	var (
		server    = m.state.clock.Server()
		target    = clock.NextBoundary(server)
		remaining = target.Sub(server)
		elapsed   = (clock.Period - remaining).Seconds()
	)

	countdown := gauge.New(
		&elapsed,
		clock.Period.Seconds(),
		"NEXT "+target.Format("15:04"),
		countdownColor(remaining),
		gauge.WithText(FormatCountdown(remaining)),
		gauge.WithTicks(countdownTicks),
	)

	readout := lipgloss.JoinVertical(
		lipgloss.Center,
		m.theme.Readout().Render(server.Format("15:04:05.000")),
		m.theme.Muted().Render(server.Format("2006.01.02")),
	)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		countdown.Render(),
		"",
		readout,
	)
}

func (m *Model) StatusView() string {
	return m.state.clock.Status.Render()
}

func (m *Model) SourceView() string {
	if m.state.clock.Source == "" {
		return ""
	}
	return m.theme.Muted().
		Render(fmt.Sprintf("source: %s (%+dms)", m.state.clock.Source, m.state.clock.Offset.Milliseconds()))
}

// FormatCountdown renders d as MM:SS, truncated to whole seconds.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func countdownColor(remaining time.Duration) color.Color {
	if remaining <= scheduler.ClickerLead {
		return theme.ColorFinal
	}
	return theme.ColorCrimson
}
