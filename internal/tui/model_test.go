package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/garrettladley/sugang/internal/clock"
	"github.com/garrettladley/sugang/internal/credential"
	"github.com/garrettladley/sugang/internal/storage"
	"github.com/garrettladley/sugang/internal/timesource"
)

type offsetSource struct{ offset time.Duration }

func (s offsetSource) ServerTime(context.Context) timesource.Sample {
	now := time.Date(2025, 2, 10, 9, 0, 0, 0, time.Local)
	return timesource.Sample{Server: now.Add(s.offset), FetchedAt: now, Source: timesource.SourceService}
}

func newModel(t *testing.T, now time.Time) (*Model, *clock.Fake, *storage.MemoryBackend) {
	t.Helper()

	fake := clock.NewFake(now)
	backend := storage.NewMemoryBackend()
	m := New(Deps{
		Ctx:         context.Background(),
		Clock:       fake,
		Time:        offsetSource{offset: 2 * time.Second},
		Credentials: backend,
		Refresh:     30 * time.Second,
	})
	return &m, fake, backend
}

func TestFormatCountdown(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   time.Duration
		want string
	}{
		{in: 30 * time.Minute, want: "30:00"},
		{in: 12*time.Minute + 15*time.Second, want: "12:15"},
		{in: 90 * time.Second, want: "01:30"},
		{in: 999 * time.Millisecond, want: "00:00"},
		{in: -time.Second, want: "00:00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()
			if got := FormatCountdown(tt.in); got != tt.want {
				t.Errorf("FormatCountdown(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUpdateAppliesSampleAndTick(t *testing.T) {
	t.Parallel()

	start := time.Date(2025, 2, 10, 12, 17, 45, 0, time.Local)
	m, fake, _ := newModel(t, start)

	msg := sampleCmd(m.deps)()
	if _, cmd := m.Update(msg); cmd == nil {
		t.Error("Update(SampleMsg) returned no refresh command")
	}
	if m.state.clock.Offset != 2*time.Second || m.state.clock.Source != timesource.SourceService {
		t.Errorf("clock state = %+v, want 2s offset from service", m.state.clock)
	}

	fake.Advance(time.Second)
	m.Update(TickMsg{})
	want := start.Add(3 * time.Second)
	if got := m.state.clock.Server(); !got.Equal(want) {
		t.Errorf("Server() = %v, want %v", got, want)
	}
}

func TestUpdateStatus(t *testing.T) {
	t.Parallel()

	m, _, backend := newModel(t, time.Now())

	m.Update(statusCmd(m.deps)())
	if s := m.state.clock.Status; !s.Checked || s.Saved {
		t.Errorf("status = %+v, want checked and unsaved", s)
	}

	if err := backend.Set(context.Background(), credential.Credentials{Username: "a", Password: "b", AutoLogin: true}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	m.Update(statusCmd(m.deps)())
	if s := m.state.clock.Status; !s.Saved || !s.AutoLogin {
		t.Errorf("status = %+v, want saved with auto login", s)
	}
	if !strings.Contains(m.StatusView(), "auto login on") {
		t.Errorf("StatusView() = %q", m.StatusView())
	}
}

func TestClockViewShowsNextBoundary(t *testing.T) {
	t.Parallel()

	m, _, _ := newModel(t, time.Date(2025, 2, 10, 12, 17, 45, 0, time.Local))
	m.Update(SplashTickMsg{})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})

	view := stripANSI(m.ClockView())
	for _, want := range []string{"NEXT 12:30", "12:15", "12:17:45.000", "2025.02.10"} {
		if !strings.Contains(view, want) {
			t.Errorf("ClockView() missing %q:\n%s", want, view)
		}
	}
	if m.page != clockPage {
		t.Errorf("page = %d, want clock page", m.page)
	}
}

func TestQuitKeys(t *testing.T) {
	t.Parallel()

	m, _, _ := newModel(t, time.Now())
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	if cmd == nil {
		t.Fatal("Update(q) returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Update(q) did not quit")
	}
}

// stripANSI keeps the rendered runes only.
func stripANSI(s string) string {
	var (
		b        strings.Builder
		inEscape bool
	)
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
