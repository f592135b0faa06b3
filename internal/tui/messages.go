package tui

import (
	"time"

	"github.com/garrettladley/sugang/internal/timesource"
)

const (
	splashDuration = 1500 * time.Millisecond
	tickInterval   = 50 * time.Millisecond
)

type SplashTickMsg struct{}

type TickMsg struct {
	Now time.Time
}

type SampleMsg struct {
	Sample timesource.Sample
}

type RefreshMsg struct{}

type StatusMsg struct {
	Saved     bool
	AutoLogin bool
	Err       error
}
