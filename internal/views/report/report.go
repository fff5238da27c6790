// Package report renders a finished scouting report: headline stats that
// count up on arrival, then a scrollable body of analysis sections.
package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"

	"github.com/cloudy-poro/scout/internal/client"
	"github.com/cloudy-poro/scout/internal/theme"
)

const (
	fps           = 60
	headerHeight  = 6
	settleEpsilon = 0.05
)

type frameMsg struct{ id int }

// counter eases a displayed value toward its target.
type counter struct {
	label  string
	unit   string
	target float64
	pos    float64
	vel    float64
	color  lipgloss.Color
}

func (c *counter) step(s harmonica.Spring) bool {
	c.pos, c.vel = s.Update(c.pos, c.vel, c.target)
	if math.Abs(c.target-c.pos) < settleEpsilon && math.Abs(c.vel) < settleEpsilon {
		c.pos, c.vel = c.target, 0
		return true
	}
	return false
}

type Model struct {
	Report *client.TeamAnalysisReport

	style    string
	width    int
	height   int
	viewport viewport.Model

	spring    harmonica.Spring
	counters  []counter
	animating bool
	anim      int
}

// New creates an empty report view. style names a glamour standard style
// ("dark", "light", "ascii", "notty").
func New(style string) Model {
	if style == "" {
		style = "dark"
	}
	return Model{
		style:    style,
		viewport: viewport.New(80, 20),
		spring:   harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// SetReport shows r and starts the count-up animation.
func (m *Model) SetReport(r *client.TeamAnalysisReport) tea.Cmd {
	m.Report = r
	info := r.ReportInfo
	m.counters = []counter{
		{label: "games", target: float64(info.GamesAnalyzed), color: theme.ColorAccent},
		{label: "winrate", unit: "%", target: info.OpponentWinrate, color: theme.RateColor(info.OpponentWinrate)},
		{label: "randomness", unit: "%", target: r.Overview.RandomnessScore * 100, color: theme.ScoreColor(r.Overview.RandomnessScore)},
	}
	m.anim++
	m.animating = true
	m.refresh()
	m.viewport.GotoTop()
	return m.frame()
}

// SetSize fits the view to the terminal.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.viewport.Width = width
	m.viewport.Height = max(height-headerHeight, 3)
	m.refresh()
}

// Style returns the glamour style used for markdown sections.
func (m Model) Style() string { return m.style }

// SetStyle switches the glamour style and re-renders the loaded report.
func (m *Model) SetStyle(style string) {
	if style == "" || style == m.style {
		return
	}
	m.style = style
	m.refresh()
}

// Animating reports whether the headline counters are still moving.
func (m Model) Animating() bool { return m.animating }

func (m Model) frame() tea.Cmd {
	id := m.anim
	return tea.Tick(time.Second/fps, func(time.Time) tea.Msg { return frameMsg{id: id} })
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if msg.id != m.anim || !m.animating {
			return m, nil
		}
		settled := true
		for i := range m.counters {
			if !m.counters[i].step(m.spring) {
				settled = false
			}
		}
		if settled {
			m.animating = false
			return m, nil
		}
		return m, m.frame()
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.Report == nil {
		return theme.StyleDimmed.Render("No report loaded.")
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.header(), m.viewport.View())
}

func (m Model) header() string {
	info := m.Report.ReportInfo
	title := theme.StyleHeader.Render(info.TeamName) + theme.StyleDimmed.Render(
		fmt.Sprintf("  %s to %s  patch %s", info.Timeframe.StartDate, info.Timeframe.EndDate, orDash(info.Timeframe.PatchVersion)))

	stats := make([]string, 0, len(m.counters)+1)
	for _, c := range m.counters {
		v := lipgloss.NewStyle().Bold(true).Foreground(c.color).Render(fmt.Sprintf("%.0f%s", c.pos, c.unit))
		stats = append(stats, v+" "+theme.StyleDimmed.Render(c.label))
	}
	stats = append(stats, theme.StyleDimmed.Render(fmt.Sprintf("K/D %.1f/%.1f", info.AverageKills, info.AverageDeaths)))

	level := lipgloss.NewStyle().Foreground(theme.ScoreColor(m.Report.Overview.RandomnessScore)).
		Render(strings.ToUpper(string(m.Report.Overview.Randomness)))

	return theme.StyleBorder.Width(max(m.width-2, 40)).Padding(0, 1).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(stats, "   ")+"   "+level))
}

// refresh re-renders the scrollable body.
func (m *Model) refresh() {
	if m.Report == nil {
		return
	}
	m.viewport.SetContent(m.body())
}

func (m Model) body() string {
	r := m.Report
	sections := []string{
		m.insights(),
		draftPlan(r.DraftPlan),
		priorityPicks(r.DraftTendencies),
		stablePicks(r.StablePicks),
		scenarios(r.Scenarios),
	}
	if len(r.PlayerAnalysis) > 0 {
		sections = append(sections, players(r.PlayerAnalysis))
	}
	return strings.Join(sections, "\n\n")
}

func (m Model) insights() string {
	var md strings.Builder
	md.WriteString("## Strategic insights\n\n")
	for _, s := range m.Report.Overview.StrategicInsights {
		md.WriteString("- " + s + "\n")
	}
	out, err := renderMarkdown(md.String(), m.style, max(m.width-4, 40))
	if err != nil {
		return theme.StyleSection.Render("Strategic insights") + "\n" + bullets(m.Report.Overview.StrategicInsights)
	}
	return strings.TrimRight(out, "\n")
}

func renderMarkdown(md, style string, wrap int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

func draftPlan(p client.DraftPlan) string {
	var b strings.Builder
	b.WriteString(theme.StyleSection.Render("Draft plan") + "\n")
	b.WriteString(fmt.Sprintf("  Bans:     %s\n", strings.Join(p.BanPlan, ", ")))
	b.WriteString(fmt.Sprintf("  Priority: %s\n", p.DraftPriority))
	for _, c := range p.CounterPicks {
		b.WriteString(fmt.Sprintf("  %-10s -> %s\n", c.TargetChampion, strings.Join(c.SuggestedCounters, ", ")))
	}
	if len(p.StrategicNotes) > 0 {
		b.WriteString(bullets(p.StrategicNotes))
	}
	return strings.TrimRight(b.String(), "\n")
}

func priorityPicks(t client.DraftTendencies) string {
	lines := []string{theme.StyleSection.Render("Priority picks")}
	for _, p := range t.PriorityPicks {
		lines = append(lines, fmt.Sprintf("  %2d. %-10s pick %3.0f%%  ban %3.0f%%", p.Priority, p.ChampionID, p.PickRate, p.BanRate))
	}
	return strings.Join(lines, "\n")
}

func stablePicks(roles []client.StablePicksByRole) string {
	lines := []string{theme.StyleSection.Render("Stable picks")}
	for _, r := range roles {
		picks := make([]string, 0, len(r.Picks))
		for _, p := range r.Picks {
			s := fmt.Sprintf("%s %s", p.ChampionID, lipgloss.NewStyle().Foreground(theme.RateColor(p.Winrate)).
				Render(fmt.Sprintf("%.0f%%", p.Winrate)))
			if p.IsSignaturePick {
				s = lipgloss.NewStyle().Foreground(theme.ColorHighlight).Render("★") + s
			}
			picks = append(picks, s)
		}
		lines = append(lines, fmt.Sprintf("  %-8s %s", r.Role, strings.Join(picks, "  ")))
	}
	return strings.Join(lines, "\n")
}

func scenarios(cards []client.ScenarioCard) string {
	lines := []string{theme.StyleSection.Render("Scenarios")}
	for _, c := range cards {
		lines = append(lines, fmt.Sprintf("  %-18s %3.0f%% likely  %s",
			c.Name, c.Likelihood,
			lipgloss.NewStyle().Foreground(theme.RateColor(c.Winrate)).Render(fmt.Sprintf("%.0f%% WR", c.Winrate))))
		lines = append(lines, theme.StyleDimmed.Render(fmt.Sprintf("      %s: %s", c.PunishStrategy.Action, c.PunishStrategy.Description)))
	}
	return strings.Join(lines, "\n")
}

func players(ps []client.PlayerAnalysis) string {
	lines := []string{theme.StyleSection.Render("Players")}
	for _, p := range ps {
		var comfort []string
		for _, c := range p.ChampionPool {
			if c.IsComfort {
				comfort = append(comfort, c.ChampionID)
			}
		}
		entropy := lipgloss.NewStyle().Foreground(theme.ScoreColor(p.Entropy)).Render(fmt.Sprintf("%.2f", p.Entropy))
		lines = append(lines, fmt.Sprintf("  %-10s %-8s entropy %s  comfort %s",
			p.Nickname, p.Role, entropy, orDash(strings.Join(comfort, ", "))))
	}
	return strings.Join(lines, "\n")
}

func bullets(items []string) string {
	var b strings.Builder
	for _, s := range items {
		b.WriteString("  • " + s + "\n")
	}
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
