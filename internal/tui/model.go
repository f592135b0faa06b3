package tui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/garrettladley/sugang/internal/tui/components/footer"
	"github.com/garrettladley/sugang/internal/tui/theme"
)

var _ tea.Model = (*Model)(nil)

type page uint

const (
	splashPage page = iota
	clockPage
)

type state struct {
	clock ClockState
}

type Model struct {
	ready          bool
	page           page
	viewportWidth  int
	viewportHeight int
	theme          theme.Theme
	state          state
	deps           Deps
}

func New(deps Deps) Model {
	return Model{
		page:  splashPage,
		theme: theme.New(),
		deps:  deps,
		state: state{
			clock: ClockState{Now: deps.Clock.Now()},
		},
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		tea.Tick(splashDuration, func(t time.Time) tea.Msg {
			return SplashTickMsg{}
		}),
		tickCmd(),
		sampleCmd(m.deps),
		statusCmd(m.deps),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.viewportWidth = msg.Width
		m.viewportHeight = msg.Height
		m.ready = true

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, tea.Batch(sampleCmd(m.deps), statusCmd(m.deps))
		}

	// splash timer expired - transition to clock
	case SplashTickMsg:
		m.page = clockPage

	case TickMsg:
		m.state.clock.Now = m.deps.Clock.Now()
		return m, tickCmd()

	case SampleMsg:
		m.state.clock.Offset = msg.Sample.Offset()
		m.state.clock.Source = msg.Sample.Source
		return m, refreshCmd(m.deps.Refresh)

	case RefreshMsg:
		return m, tea.Batch(sampleCmd(m.deps), statusCmd(m.deps))

	case StatusMsg:
		m.state.clock.Status.Checked = true
		if msg.Err == nil {
			m.state.clock.Status.Saved = msg.Saved
			m.state.clock.Status.AutoLogin = msg.AutoLogin
		}
	}

	return m, nil
}

func (m *Model) View() tea.View {
	view := tea.NewView("")
	view.AltScreen = true

	// splash uses pure black BG, everything else uses default dark
	if m.page == splashPage {
		view.BackgroundColor = theme.ColorBlack
	} else {
		view.BackgroundColor = m.theme.Background()
	}

	if !m.ready {
		return view
	}

	var content string
	switch m.page {
	case splashPage:
		content = lipgloss.Place(
			m.viewportWidth,
			m.viewportHeight,
			lipgloss.Center,
			lipgloss.Center,
			m.LogoView(),
		)
	case clockPage:
		clockView := lipgloss.Place(
			m.viewportWidth,
			m.viewportHeight,
			lipgloss.Center,
			lipgloss.Center,
			m.ClockView(),
		)

		bottom := lipgloss.Place(
			m.viewportWidth,
			m.viewportHeight,
			lipgloss.Left,
			lipgloss.Bottom,
			footer.New(m.StatusView()+"  "+m.SourceView(), m.viewportWidth, "q quit", "r resync").Render(),
		)

		content = m.overlayStrings(clockView, bottom)
	}

	view.SetContent(content)
	return view
}

func (m *Model) overlayStrings(base, overlay string) string {
	baseLines := splitLines(base)
	overlayLines := splitLines(overlay)

	maxLines := max(len(baseLines), len(overlayLines))

	result := make([]string, maxLines)
	for i := range maxLines {
		var baseLine, overlayLine string
		if i < len(baseLines) {
			baseLine = baseLines[i]
		}
		if i < len(overlayLines) {
			overlayLine = overlayLines[i]
		}

		// lines carrying styling cannot be merged rune by rune
		if strings.TrimSpace(overlayLine) != "" {
			result[i] = overlayLine
		} else {
			result[i] = baseLine
		}
	}

	return strings.Join(result, "\n")
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
