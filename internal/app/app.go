package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"

	"github.com/cloudy-poro/scout/internal/client"
	"github.com/cloudy-poro/scout/internal/fixtures"
	"github.com/cloudy-poro/scout/internal/progress"
	"github.com/cloudy-poro/scout/internal/theme"
	"github.com/cloudy-poro/scout/internal/views/debug"
	"github.com/cloudy-poro/scout/internal/views/loading"
	"github.com/cloudy-poro/scout/internal/views/report"
	"github.com/cloudy-poro/scout/internal/views/status"
)

// reportDelay is the pause between a completed update and the report fetch,
// so the full bar stays on screen briefly.
const reportDelay = 500 * time.Millisecond

// Screen identifies the main view.
type Screen int

const (
	ScreenSearch Screen = iota
	ScreenLoading
	ScreenReport
	ScreenError
)

// Tracker is the report progress source. *progress.Client implements it.
type Tracker interface {
	Connect(team string) error
	Disconnect()
	OnProgress(cb progress.Callback)
}

// Fetcher loads finished reports. *client.HTTPClient implements it.
type Fetcher interface {
	FetchTeamAnalysis(ctx context.Context, req client.TeamAnalysisRequest) (*client.TeamAnalysisReport, error)
}

// progressMsg carries an update from the tracker's goroutine into Update.
// gen ties it to the attempt that registered the callback.
type progressMsg struct {
	gen int
	p   progress.ReportProgress
}

type fetchDueMsg struct{ gen int }

type reportMsg struct {
	gen    int
	report *client.TeamAnalysisReport
	err    error
}

// Model is the root Bubble Tea model.
type Model struct {
	tracker Tracker
	fetcher Fetcher
	log     logr.Logger
	ctx     context.Context
	cancel  context.CancelFunc
	updates chan progressMsg

	keys   KeyMap
	width  int
	height int

	screen    Screen
	showDebug bool
	team      string
	gen       int
	errText   string

	search    textinput.Model
	statusBar status.Model
	loading   loading.Model
	report    report.Model
	debug     debug.Model
}

// Option configures a Model.
type Option func(*Model)

// WithStyle sets the report's glamour style ("dark" or "light").
func WithStyle(style string) Option {
	return func(m *Model) { m.report.SetStyle(style) }
}

// New creates the root model. cfg only feeds the status bar.
func New(tracker Tracker, fetcher Fetcher, cfg progress.Config, log logr.Logger, opts ...Option) Model {
	ctx, cancel := context.WithCancel(context.Background())

	search := textinput.New()
	search.Placeholder = "Team name, e.g. Karmine Corp"
	search.CharLimit = 64
	search.Width = 40
	search.Focus()

	m := Model{
		tracker:   tracker,
		fetcher:   fetcher,
		log:       log.WithName("app"),
		ctx:       ctx,
		cancel:    cancel,
		updates:   make(chan progressMsg, 64),
		keys:      DefaultKeyMap(),
		search:    search,
		statusBar: status.New(cfg),
		loading:   loading.New(),
		report:    report.New("dark"),
		debug:     debug.New(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init starts the cursor blink and the progress listener.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.listen())
}

// listen waits for the next bridged update. It is re-issued after each one.
func (m Model) listen() tea.Cmd {
	updates, ctx := m.updates, m.ctx
	return func() tea.Msg {
		select {
		case msg := <-updates:
			return msg
		case <-ctx.Done():
			return nil
		}
	}
}

// bridge returns a callback that forwards updates for attempt gen into the
// channel. It blocks the session goroutine rather than drop an update.
func (m Model) bridge(gen int) progress.Callback {
	updates, ctx := m.updates, m.ctx
	return func(p progress.ReportProgress) {
		select {
		case updates <- progressMsg{gen: gen, p: p}:
		case <-ctx.Done():
		}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.statusBar.Width = msg.Width
		m.loading.Width = msg.Width
		m.report.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case progressMsg:
		return m.handleProgress(msg)

	case fetchDueMsg:
		if msg.gen != m.gen || m.screen != ScreenLoading {
			return m, nil
		}
		m.debug.Add(debug.KindAPI, "fetching report for "+m.team)
		return m, m.fetch(msg.gen, m.team)

	case reportMsg:
		if msg.gen != m.gen || m.screen != ScreenLoading {
			return m, nil
		}
		if msg.err != nil {
			m.log.Error(msg.err, "fetch report", "team", m.team)
			m.debug.Add(debug.KindErr, msg.err.Error())
			return m.fail(reportError(msg.err)), nil
		}
		m.screen = ScreenReport
		m.debug.Add(debug.KindNav, "report ready")
		return m, m.report.SetReport(msg.report)
	}

	var cmd tea.Cmd
	switch m.screen {
	case ScreenSearch:
		m.search, cmd = m.search.Update(msg)
	case ScreenLoading:
		m.loading, cmd = m.loading.Update(msg)
	case ScreenReport:
		m.report, cmd = m.report.Update(msg)
	}
	return m, cmd
}

func (m Model) handleProgress(msg progressMsg) (tea.Model, tea.Cmd) {
	next := m.listen()
	if msg.gen != m.gen || m.screen != ScreenLoading {
		return m, next
	}

	m.log.V(1).Info("progress", "team", m.team, "status", msg.p.Status, "progress", msg.p.Progress)
	m.loading.Apply(msg.p)
	m.statusBar.Track(m.team, msg.p)
	m.debug.AddProgress(msg.p)

	switch msg.p.Status {
	case progress.StatusCompleted:
		m.statusBar.Active = false
		gen := m.gen
		return m, tea.Batch(next, tea.Tick(reportDelay, func(time.Time) tea.Msg { return fetchDueMsg{gen: gen} }))
	case progress.StatusError:
		m.statusBar.Active = false
		return m.fail(msg.p.Message), next
	}
	return m, next
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m.quit()
	}

	if m.showDebug {
		switch {
		case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Debug):
			m.showDebug = false
		case key.Matches(msg, m.keys.Up):
			m.debug.ScrollUp(1)
		case key.Matches(msg, m.keys.Down):
			m.debug.ScrollDown(1)
		}
		return m, nil
	}

	switch m.screen {
	case ScreenSearch:
		if key.Matches(msg, m.keys.Submit) {
			team := strings.TrimSpace(m.search.Value())
			if team == "" {
				return m, nil
			}
			return m.start(team)
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd

	case ScreenLoading:
		switch {
		case key.Matches(msg, m.keys.Back):
			m.debug.Add(debug.KindNav, "cancelled "+m.team)
			return m.toSearch()
		case key.Matches(msg, m.keys.Debug):
			m.showDebug = true
		case key.Matches(msg, m.keys.Exit):
			return m.quit()
		}
		return m, nil

	case ScreenError:
		switch {
		case key.Matches(msg, m.keys.Retry):
			return m.start(m.team)
		case key.Matches(msg, m.keys.Back):
			return m.toSearch()
		case key.Matches(msg, m.keys.Debug):
			m.showDebug = true
		case key.Matches(msg, m.keys.Exit):
			return m.quit()
		}
		return m, nil

	case ScreenReport:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m.toSearch()
		case key.Matches(msg, m.keys.Debug):
			m.showDebug = true
			return m, nil
		case key.Matches(msg, m.keys.Theme):
			style := "light"
			if m.report.Style() == "light" {
				style = "dark"
			}
			m.report.SetStyle(style)
			m.debug.Add(debug.KindNav, "theme "+style)
			return m, nil
		case key.Matches(msg, m.keys.Exit):
			return m.quit()
		}
		var cmd tea.Cmd
		m.report, cmd = m.report.Update(msg)
		return m, cmd
	}
	return m, nil
}

// start opens a new attempt for team. Updates from earlier attempts are
// ignored by generation.
func (m Model) start(team string) (tea.Model, tea.Cmd) {
	m.tracker.Disconnect()
	m.gen++
	m.team = team
	m.errText = ""
	m.screen = ScreenLoading
	m.statusBar.Reset()
	m.statusBar.Team = team
	m.statusBar.Active = true
	m.debug.Add(debug.KindNav, "scouting "+team)
	cmd := m.loading.Start(team)

	m.tracker.OnProgress(m.bridge(m.gen))
	if err := m.tracker.Connect(team); err != nil {
		m.log.Error(err, "connect", "team", team)
		m.debug.Add(debug.KindErr, err.Error())
		m.statusBar.Active = false
		return m.fail(err.Error()), nil
	}
	return m, cmd
}

func (m Model) fetch(gen int, team string) tea.Cmd {
	fetcher, ctx := m.fetcher, m.ctx
	return func() tea.Msg {
		r, err := fetcher.FetchTeamAnalysis(ctx, client.TeamAnalysisRequest{TeamID: fixtures.Slug(team)})
		return reportMsg{gen: gen, report: r, err: err}
	}
}

func (m Model) fail(text string) Model {
	m.screen = ScreenError
	m.errText = text
	return m
}

func (m Model) toSearch() (tea.Model, tea.Cmd) {
	m.tracker.Disconnect()
	m.gen++
	m.screen = ScreenSearch
	m.statusBar.Reset()
	m.search.SetValue(m.team)
	return m, m.search.Focus()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.tracker.Disconnect()
	m.cancel()
	return m, tea.Quit
}

func reportError(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var body, help string
	switch {
	case m.showDebug:
		body = m.debug.View(m.width, m.height-4)
		help = "j/k:scroll  esc:close"
	case m.screen == ScreenSearch:
		body = theme.StyleBorder.Padding(1, 3).Render(lipgloss.JoinVertical(lipgloss.Left,
			theme.StyleHeader.Render("Scout an opponent"), "", m.search.View()))
		help = "enter:scout  ctrl+c:quit"
	case m.screen == ScreenLoading:
		body = m.loading.View()
		help = "esc:cancel  d:event log  q:quit"
	case m.screen == ScreenReport:
		body = m.report.View()
		help = "↑/↓:scroll  t:light/dark  esc:new search  d:event log  q:quit"
	case m.screen == ScreenError:
		body = theme.StyleBorder.BorderForeground(theme.ColorDanger).Padding(1, 3).Render(lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Bold(true).Foreground(theme.ColorDanger).Render("Could not scout "+m.team),
			"", m.errText))
		help = "r:retry  esc:new search  d:event log  q:quit"
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.statusBar.View(),
		body,
		theme.StyleDimmed.Render("  "+help),
	)
}

// Screen returns the active screen.
func (m Model) Screen() Screen { return m.screen }
