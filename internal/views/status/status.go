// Package status renders the one-line bar showing the connection mode and
// the state of the current report session.
package status

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/cloudy-poro/scout/internal/progress"
	"github.com/cloudy-poro/scout/internal/theme"
)

// Model holds the status bar state.
type Model struct {
	Simulated bool
	Endpoint  string
	OurTeam   string
	Team      string
	Last      *progress.ReportProgress
	Active    bool
	Width     int
}

// New creates a status bar for the given connection settings.
func New(cfg progress.Config) Model {
	return Model{
		Simulated: cfg.Simulate,
		Endpoint:  cfg.Endpoint,
		OurTeam:   cfg.ContextTeamName,
	}
}

// Track records the latest update for team.
func (m *Model) Track(team string, p progress.ReportProgress) {
	m.Team = team
	m.Last = &p
}

// Reset clears session state.
func (m *Model) Reset() {
	m.Team = ""
	m.Last = nil
	m.Active = false
}

func (m Model) View() string {
	width := max(m.Width, 40)
	sep := lipgloss.NewStyle().Foreground(theme.ColorBorder).Render(" | ")

	var mode string
	if m.Simulated {
		mode = lipgloss.NewStyle().Foreground(theme.ColorWarning).Render("◌ Simulated")
	} else {
		mode = lipgloss.NewStyle().Foreground(theme.ColorAccent).Render("● " + m.Endpoint)
	}

	content := mode
	if m.OurTeam != "" {
		content += sep + theme.StyleDimmed.Render("as "+m.OurTeam)
	}

	switch {
	case m.Last != nil:
		st := lipgloss.NewStyle().Foreground(theme.StatusColor(m.Last.Status)).
			Render(fmt.Sprintf("%s %s %d%%", theme.StatusGlyph(m.Last.Status), m.Last.Status, m.Last.Progress))
		content += sep + m.Team + " " + st
	case m.Active:
		content += sep + m.Team + " " + theme.StyleDimmed.Render("starting...")
	default:
		content += sep + theme.StyleDimmed.Render("idle")
	}

	return lipgloss.NewStyle().
		Width(width).
		Padding(0, 1).
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(theme.ColorBorder).
		Render(content)
}
