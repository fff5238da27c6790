package app

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-logr/logr"

	"github.com/cloudy-poro/scout/internal/client"
	"github.com/cloudy-poro/scout/internal/fixtures"
	"github.com/cloudy-poro/scout/internal/progress"
)

type fakeTracker struct {
	mu          sync.Mutex
	cb          progress.Callback
	connects    []string
	disconnects int
	connectErr  error
}

func (f *fakeTracker) Connect(team string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connects = append(f.connects, team)
	return f.connectErr
}

func (f *fakeTracker) Disconnect() {
	f.mu.Lock()
	f.disconnects++
	f.mu.Unlock()
}

func (f *fakeTracker) OnProgress(cb progress.Callback) {
	f.mu.Lock()
	f.cb = cb
	f.mu.Unlock()
}

func (f *fakeTracker) emit(p progress.ReportProgress) {
	f.mu.Lock()
	cb := f.cb
	f.mu.Unlock()
	cb(p)
}

type fakeFetcher struct {
	err error
	ids []string
}

func (f *fakeFetcher) FetchTeamAnalysis(_ context.Context, req client.TeamAnalysisRequest) (*client.TeamAnalysisReport, error) {
	f.ids = append(f.ids, req.TeamID)
	if f.err != nil {
		return nil, f.err
	}
	return fixtures.TeamAnalysis(req.TeamID, "", time.Now()), nil
}

func newTestModel(tr *fakeTracker, fe *fakeFetcher) Model {
	m := New(tr, fe, progress.Config{Simulate: true, ContextTeamName: "Cloud9"}, logr.Discard())
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return mm.(Model)
}

func update(m Model, msg tea.Msg) (Model, tea.Cmd) {
	mm, cmd := m.Update(msg)
	return mm.(Model), cmd
}

func submit(t *testing.T, m Model, team string) Model {
	t.Helper()
	m.search.SetValue(team)
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Screen() != ScreenLoading {
		t.Fatalf("expected loading screen, got %v", m.Screen())
	}
	return m
}

// deliver emits p through the tracker and feeds the bridged message back in.
func deliver(t *testing.T, m Model, tr *fakeTracker, p progress.ReportProgress) (Model, tea.Cmd) {
	t.Helper()
	tr.emit(p)
	msg := m.listen()()
	if _, ok := msg.(progressMsg); !ok {
		t.Fatalf("expected progressMsg, got %T", msg)
	}
	return update(m, msg)
}

func TestInitializingView(t *testing.T) {
	m := New(&fakeTracker{}, &fakeFetcher{}, progress.Config{}, logr.Discard())
	if v := m.View(); v != "Initializing..." {
		t.Errorf("View() = %q, want Initializing...", v)
	}
}

func TestEmptySearchIgnored(t *testing.T) {
	tr := &fakeTracker{}
	m := newTestModel(tr, &fakeFetcher{})
	m.search.SetValue("   ")
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Screen() != ScreenSearch || len(tr.connects) != 0 {
		t.Errorf("blank search should not connect (screen %v, connects %v)", m.Screen(), tr.connects)
	}
}

func TestHappyPath(t *testing.T) {
	tr := &fakeTracker{}
	fe := &fakeFetcher{}
	m := submit(t, newTestModel(tr, fe), " Karmine Corp ")

	if len(tr.connects) != 1 || tr.connects[0] != "Karmine Corp" {
		t.Fatalf("connects = %v", tr.connects)
	}

	for _, p := range progress.DefaultScript().Render("Karmine Corp")[:9] {
		m, _ = deliver(t, m, tr, p)
	}
	if !strings.Contains(m.View(), "Almost done...") {
		t.Error("loading view should show the latest message")
	}

	m, cmd := deliver(t, m, tr, progress.ReportProgress{Status: progress.StatusCompleted, Progress: 100, Message: "Report ready!"})
	if cmd == nil {
		t.Fatal("completed should schedule the report fetch")
	}
	if m.Screen() != ScreenLoading {
		t.Fatal("report should not show before the fetch delay")
	}

	m, cmd = update(m, fetchDueMsg{gen: m.gen})
	if cmd == nil {
		t.Fatal("fetchDueMsg should start the fetch")
	}
	m, _ = update(m, cmd())

	if m.Screen() != ScreenReport {
		t.Fatalf("expected report screen, got %v", m.Screen())
	}
	if len(fe.ids) != 1 || fe.ids[0] != "karmine-corp" {
		t.Errorf("fetched ids = %v", fe.ids)
	}
	if !strings.Contains(m.View(), "Karmine Corp") {
		t.Error("report view should show the team")
	}
	if len(m.debug.Entries) < 10 {
		t.Errorf("event log should hold every update, got %d entries", len(m.debug.Entries))
	}
}

func TestErrorShownVerbatimAndRetry(t *testing.T) {
	tr := &fakeTracker{}
	m := submit(t, newTestModel(tr, &fakeFetcher{}), "T1")

	m, _ = deliver(t, m, tr, progress.ReportProgress{Status: progress.StatusError, Message: "Team not found in database"})
	if m.Screen() != ScreenError {
		t.Fatalf("expected error screen, got %v", m.Screen())
	}
	if !strings.Contains(m.View(), "Team not found in database") {
		t.Error("error message should be shown verbatim")
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if m.Screen() != ScreenLoading || len(tr.connects) != 2 {
		t.Errorf("retry should reconnect (screen %v, connects %v)", m.Screen(), tr.connects)
	}
}

func TestConnectErrorShown(t *testing.T) {
	tr := &fakeTracker{connectErr: progress.ErrMissingEndpoint}
	m := newTestModel(tr, &fakeFetcher{})
	m.search.SetValue("T1")
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.Screen() != ScreenError {
		t.Fatalf("expected error screen, got %v", m.Screen())
	}
	if !strings.Contains(m.errText, "endpoint is required") {
		t.Errorf("errText = %q", m.errText)
	}
}

func TestCancelDisconnectsAndIgnoresLateEvents(t *testing.T) {
	tr := &fakeTracker{}
	m := submit(t, newTestModel(tr, &fakeFetcher{}), "T1")
	before := tr.disconnects
	oldGen := m.gen

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.Screen() != ScreenSearch {
		t.Fatalf("esc should return to search, got %v", m.Screen())
	}
	if tr.disconnects != before+1 {
		t.Error("leaving the loading screen should disconnect")
	}

	m, _ = update(m, progressMsg{gen: oldGen, p: progress.ReportProgress{Status: progress.StatusCompleted, Progress: 100}})
	m, cmd := update(m, fetchDueMsg{gen: oldGen})
	if cmd != nil || m.Screen() != ScreenSearch {
		t.Error("events from a cancelled attempt should be ignored")
	}
}

func TestFetchErrorUsesAPIMessage(t *testing.T) {
	tr := &fakeTracker{}
	fe := &fakeFetcher{err: &client.APIError{Status: 404, Code: "TEAM_NOT_FOUND", Message: "Team with ID 't1' not found"}}
	m := submit(t, newTestModel(tr, fe), "T1")

	m, _ = deliver(t, m, tr, progress.ReportProgress{Status: progress.StatusCompleted, Progress: 100})
	m, cmd := update(m, fetchDueMsg{gen: m.gen})
	m, _ = update(m, cmd())

	if m.Screen() != ScreenError || m.errText != "Team with ID 't1' not found" {
		t.Errorf("screen %v, errText %q", m.Screen(), m.errText)
	}
}

func TestDebugOverlay(t *testing.T) {
	tr := &fakeTracker{}
	m := submit(t, newTestModel(tr, &fakeFetcher{}), "T1")
	m, _ = deliver(t, m, tr, progress.ReportProgress{Status: progress.StatusProcessing, Progress: 10, Message: "Connecting to data sources..."})

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if !m.showDebug {
		t.Fatal("d should open the event log")
	}
	if !strings.Contains(m.View(), "Connecting to data sources...") {
		t.Error("event log should list progress updates")
	}
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showDebug || m.Screen() != ScreenLoading {
		t.Error("esc should close the overlay without leaving the screen")
	}
}

func TestQuitDisconnects(t *testing.T) {
	tr := &fakeTracker{}
	m := submit(t, newTestModel(tr, &fakeFetcher{}), "T1")
	before := tr.disconnects

	_, cmd := update(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if tr.disconnects != before+1 {
		t.Error("quit should disconnect")
	}
	if err := m.ctx.Err(); !errors.Is(err, context.Canceled) {
		t.Errorf("quit should cancel the listener context, got %v", err)
	}
}

func TestThemeToggleOnReport(t *testing.T) {
	tr := &fakeTracker{}
	m := New(tr, &fakeFetcher{}, progress.Config{Simulate: true}, logr.Discard(), WithStyle("light"))
	if got := m.report.Style(); got != "light" {
		t.Fatalf("initial style = %q, want light", got)
	}
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = submit(t, mm.(Model), "T1")
	m, _ = update(m, reportMsg{gen: m.gen, report: fixtures.TeamAnalysis("t1", "T1", time.Now())})
	if m.Screen() != ScreenReport {
		t.Fatalf("expected report screen, got %v", m.Screen())
	}

	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	if got := m.report.Style(); got != "dark" {
		t.Errorf("after toggle style = %q, want dark", got)
	}
	m, _ = update(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	if got := m.report.Style(); got != "light" {
		t.Errorf("after second toggle style = %q, want light", got)
	}
}
