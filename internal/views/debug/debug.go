// Package debug keeps a bounded log of progress updates and app events and
// renders it as a scrollable overlay.
package debug

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/cloudy-poro/scout/internal/progress"
	"github.com/cloudy-poro/scout/internal/theme"
)

const maxEntries = 200

// Entry kinds.
const (
	KindProgress = "prog"
	KindNav      = "nav"
	KindAPI      = "api"
	KindErr      = "err"
)

// Entry is one log line. Status is set only for progress entries.
type Entry struct {
	Time    time.Time
	Kind    string
	Status  progress.Status
	Message string
}

// Model holds debug log state.
type Model struct {
	Entries []Entry
	Offset  int // lines scrolled up from the bottom
	now     func() time.Time
}

func New() Model {
	return Model{now: time.Now}
}

// Add appends an event and drops the oldest beyond maxEntries.
func (m *Model) Add(kind, message string) {
	m.push(Entry{Kind: kind, Message: message})
}

// AddProgress records a progress update as delivered.
func (m *Model) AddProgress(p progress.ReportProgress) {
	m.push(Entry{
		Kind:    KindProgress,
		Status:  p.Status,
		Message: fmt.Sprintf("%-10s %3d%% %s", p.Status, p.Progress, p.Message),
	})
}

func (m *Model) push(e Entry) {
	if m.now == nil {
		m.now = time.Now
	}
	e.Time = m.now()
	m.Entries = append(m.Entries, e)
	if len(m.Entries) > maxEntries {
		m.Entries = m.Entries[len(m.Entries)-maxEntries:]
	}
	m.Offset = 0
}

func (m *Model) ScrollUp(n int) {
	m.Offset = min(m.Offset+n, max(len(m.Entries)-1, 0))
}

func (m *Model) ScrollDown(n int) {
	m.Offset = max(m.Offset-n, 0)
}

// View renders the log as an overlay panel of the given size.
func (m Model) View(width, height int) string {
	innerW := max(width-4, 20)
	visible := max(height-6, 3)

	title := theme.StyleHeader.Render(" EVENT LOG ")
	help := theme.StyleDimmed.Render(fmt.Sprintf("j/k:scroll  esc:close  %d entries", len(m.Entries)))

	panel := lipgloss.NewStyle().
		Width(innerW).
		Padding(1, 2).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder)

	if len(m.Entries) == 0 {
		body := theme.StyleDimmed.Render("  No events recorded yet.")
		return panel.Render(lipgloss.JoinVertical(lipgloss.Left, title, "", body, "", help))
	}

	end := max(len(m.Entries)-m.Offset, 0)
	start := max(end-visible, 0)

	lines := make([]string, 0, end-start)
	for _, e := range m.Entries[start:end] {
		ts := theme.StyleDimmed.Render(e.Time.Format("15:04:05.000"))
		kind := lipgloss.NewStyle().Foreground(e.color()).Width(4).Render(e.Kind)
		msg := e.Message
		if limit := innerW - 23; innerW > 20 && len(msg) > limit+3 {
			msg = msg[:limit] + "..."
		}
		lines = append(lines, fmt.Sprintf("%s %s %s", ts, kind, msg))
	}

	more := ""
	if m.Offset > 0 {
		more = theme.StyleDimmed.Render(fmt.Sprintf(" ↓ %d more", m.Offset))
	}
	return panel.Render(lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n"), more, help))
}

func (e Entry) color() lipgloss.Color {
	switch e.Kind {
	case KindProgress:
		return theme.StatusColor(e.Status)
	case KindErr:
		return theme.ColorDanger
	case KindNav:
		return theme.ColorHighlight
	case KindAPI:
		return theme.ColorWarning
	default:
		return theme.ColorMuted
	}
}
