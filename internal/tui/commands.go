package tui

import (
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/garrettladley/sugang/internal/storage"
)

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg{Now: t}
	})
}

func refreshCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return RefreshMsg{}
	})
}

func sampleCmd(deps Deps) tea.Cmd {
	return func() tea.Msg {
		return SampleMsg{Sample: deps.Time.ServerTime(deps.Ctx)}
	}
}

func statusCmd(deps Deps) tea.Cmd {
	return func() tea.Msg {
		creds, err := deps.Credentials.Get(deps.Ctx)
		if errors.Is(err, storage.ErrNotFound) {
			return StatusMsg{}
		}
		if err != nil {
			return StatusMsg{Err: err}
		}
		return StatusMsg{Saved: true, AutoLogin: creds.AutoLogin}
	}
}
