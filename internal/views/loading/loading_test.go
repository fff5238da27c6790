package loading

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/cloudy-poro/scout/internal/progress"
)

func TestStartResets(t *testing.T) {
	m := New()
	m.Apply(progress.ReportProgress{Status: progress.StatusCompleted, Progress: 100})

	if cmd := m.Start("T1"); cmd == nil {
		t.Error("Start should return a spinner tick")
	}
	if m.Team != "T1" || m.Updates != 0 || m.Last.Status != progress.StatusConnecting {
		t.Errorf("unexpected state after Start: %+v", m)
	}
}

func TestFractionClamps(t *testing.T) {
	tests := []struct {
		progress int
		want     float64
	}{
		{0, 0},
		{45, 0.45},
		{100, 1},
		{130, 1},
		{-5, 0},
	}
	m := New()
	for _, tt := range tests {
		m.Apply(progress.ReportProgress{Status: progress.StatusProcessing, Progress: tt.progress})
		if got := m.Fraction(); got != tt.want {
			t.Errorf("Fraction() at %d = %v, want %v", tt.progress, got, tt.want)
		}
		if m.Last.Progress != tt.progress {
			t.Errorf("stored progress altered: %d", m.Last.Progress)
		}
	}
}

func TestViewShowsMessage(t *testing.T) {
	m := New()
	m.Start("T1")
	m.Apply(progress.ReportProgress{Status: progress.StatusProcessing, Progress: 80, Message: "Generating AI analysis for T1..."})

	v := m.View()
	for _, want := range []string{"Scouting T1", "Generating AI analysis for T1...", "1 updates", "processing"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q:\n%s", want, v)
		}
	}
}

func TestSpinnerStopsOnTerminal(t *testing.T) {
	m := New()
	m.Start("T1")
	m.Apply(progress.ReportProgress{Status: progress.StatusError, Message: "Connection failed"})

	_, cmd := m.Update(spinner.TickMsg{})
	if cmd != nil {
		t.Error("spinner should stop ticking after a terminal update")
	}
	if !strings.Contains(m.View(), "Connection failed") {
		t.Error("error message should be shown verbatim")
	}
}
