package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudy-poro/scout/internal/fixtures"
)

func loaded(t *testing.T) Model {
	t.Helper()
	m := New("ascii")
	m.SetSize(120, 40)
	cmd := m.SetReport(fixtures.TeamAnalysis("karmine-corp", "Karmine Corp", time.Now()))
	require.NotNil(t, cmd, "SetReport should start the animation")
	return m
}

func settle(t *testing.T, m Model) Model {
	t.Helper()
	for i := 0; i < 5000 && m.Animating(); i++ {
		m, _ = m.Update(frameMsg{id: m.anim})
	}
	require.False(t, m.Animating(), "counters never settled")
	return m
}

func TestCountUpSettlesOnTargets(t *testing.T) {
	m := loaded(t)
	for _, c := range m.counters {
		assert.Zero(t, c.pos, "%s should start at zero", c.label)
	}

	m, _ = m.Update(frameMsg{id: m.anim})
	assert.Greater(t, m.counters[0].pos, 0.0, "first frame should move the counter")

	m = settle(t, m)
	assert.Equal(t, 20.0, m.counters[0].pos)
	assert.Equal(t, 40.0, m.counters[1].pos)
	assert.InDelta(t, 78.0, m.counters[2].pos, 1e-9)

	header := m.header()
	for _, want := range []string{"Karmine Corp", "20", "40%", "78%", "CHAOTIC", "patch 14.5"} {
		assert.Contains(t, header, want)
	}
}

func TestStaleFrameIgnored(t *testing.T) {
	m := loaded(t)
	stale := frameMsg{id: m.anim}
	m.SetReport(fixtures.TeamAnalysis("t1", "T1", time.Now()))

	m, cmd := m.Update(stale)
	assert.Nil(t, cmd)
	assert.Zero(t, m.counters[0].pos)
}

func TestBodySections(t *testing.T) {
	m := loaded(t)
	body := m.body()

	for _, want := range []string{
		"Strategic insights",
		"Prioritize comfort denial.",
		"Draft plan",
		"Sejuani, Gnar, Rakan, LeeSin, Orianna",
		"Priority picks",
		"Stable picks",
		"Teamfight Heavy",
		"Ban Gnar, Maokai to deny engage frontline",
		"Players",
		"Closer",
	} {
		assert.Contains(t, body, want)
	}
}

func TestBodyWithoutPlayers(t *testing.T) {
	m := New("ascii")
	r := fixtures.TeamAnalysis("t1", "T1", time.Now())
	r.PlayerAnalysis = nil
	m.SetReport(r)
	assert.False(t, strings.Contains(m.body(), "Players"))
}

func TestEmptyView(t *testing.T) {
	assert.Contains(t, New("").View(), "No report loaded")
}

func TestSetStyleRerendersBody(t *testing.T) {
	m := settle(t, loaded(t))
	before := m.viewport.View()

	m.SetStyle("notty")
	assert.Equal(t, "notty", m.Style())
	assert.Contains(t, m.viewport.View(), "Strategic insights")

	m.SetStyle("")
	assert.Equal(t, "notty", m.Style(), "empty style keeps the current one")
	assert.NotEmpty(t, before)
}
