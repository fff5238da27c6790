// Package loading renders the report generation screen: a spinner, a bar,
// and the latest progress message.
package loading

import (
	"fmt"

	bar "github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cloudy-poro/scout/internal/progress"
	"github.com/cloudy-poro/scout/internal/theme"
)

const barWidth = 50

type Model struct {
	Team    string
	Last    progress.ReportProgress
	Updates int
	Width   int

	spinner spinner.Model
	bar     bar.Model
}

func New() Model {
	return Model{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.ColorAccent)),
		),
		bar: bar.New(bar.WithDefaultGradient(), bar.WithWidth(barWidth)),
	}
}

// Start resets the screen for team and returns the spinner's first tick.
func (m *Model) Start(team string) tea.Cmd {
	m.Team = team
	m.Last = progress.ReportProgress{Status: progress.StatusConnecting}
	m.Updates = 0
	return m.spinner.Tick
}

// Apply shows p as delivered. Out-of-range percentages are only clamped
// when drawing the bar.
func (m *Model) Apply(p progress.ReportProgress) {
	m.Last = p
	m.Updates++
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); !ok {
		return m, nil
	}
	if m.Last.Status.Terminal() {
		return m, nil
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

// Fraction is the bar fill in [0,1].
func (m Model) Fraction() float64 {
	return min(max(float64(m.Last.Progress)/100, 0), 1)
}

func (m Model) View() string {
	title := theme.StyleHeader.Render(fmt.Sprintf("Scouting %s", m.Team))

	var glyph string
	if m.Last.Status.Terminal() {
		glyph = lipgloss.NewStyle().Foreground(theme.StatusColor(m.Last.Status)).Render(theme.StatusGlyph(m.Last.Status))
	} else {
		glyph = m.spinner.View()
	}
	msg := m.Last.Message
	if msg == "" {
		msg = string(m.Last.Status) + "..."
	}
	line := fmt.Sprintf("%s %s", glyph, msg)

	status := lipgloss.NewStyle().Foreground(theme.StatusColor(m.Last.Status)).Render(string(m.Last.Status))
	footer := theme.StyleDimmed.Render(fmt.Sprintf("%d updates  ", m.Updates)) + status +
		theme.StyleDimmed.Render("  esc:cancel")

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.bar.ViewAs(m.Fraction()), "", line, "", footer)
	box := theme.StyleBorder.Padding(1, 3).Render(content)
	if m.Width > 0 {
		return lipgloss.PlaceHorizontal(m.Width, lipgloss.Center, box)
	}
	return box
}
