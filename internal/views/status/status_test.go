package status

import (
	"strings"
	"testing"

	"github.com/cloudy-poro/scout/internal/progress"
)

func TestViewModes(t *testing.T) {
	sim := New(progress.Config{Simulate: true, ContextTeamName: "Cloud9"})
	sim.Width = 100
	v := sim.View()
	for _, want := range []string{"Simulated", "as Cloud9", "idle"} {
		if !strings.Contains(v, want) {
			t.Errorf("simulated view missing %q", want)
		}
	}

	live := New(progress.Config{Endpoint: "ws://localhost:8000/ws/report"})
	live.Width = 100
	if !strings.Contains(live.View(), "ws://localhost:8000/ws/report") {
		t.Error("real mode view should show the endpoint")
	}
}

func TestTrackAndReset(t *testing.T) {
	m := New(progress.Config{Simulate: true})
	m.Width = 100
	m.Track("T1", progress.ReportProgress{Status: progress.StatusProcessing, Progress: 65})

	if v := m.View(); !strings.Contains(v, "T1") || !strings.Contains(v, "65%") {
		t.Errorf("tracked view missing session state:\n%s", v)
	}

	m.Reset()
	if m.Last != nil || m.Team != "" {
		t.Error("Reset should clear session state")
	}
}
