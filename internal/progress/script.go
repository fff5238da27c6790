package progress

import (
	"strings"
	"time"
)

// teamPlaceholder is replaced with the requested team name when a step is rendered.
const teamPlaceholder = "{team}"

// Step is one scripted update. Delay is the wait before the step fires,
// measured from the previous step.
type Step struct {
	Status   Status
	Progress int
	Message  string
	Delay    time.Duration
}

// Script is an ordered, non-branching sequence of steps.
type Script []Step

// DefaultScript returns the demo sequence: ten updates over 4.5s ending in
// a completed report. The pause at 80% stands in for the AI analysis wait.
func DefaultScript() Script {
	return Script{
		{StatusConnecting, 0, "Initializing...", 0},
		{StatusProcessing, 10, "Connecting to data sources...", 300 * time.Millisecond},
		{StatusProcessing, 25, "Fetching match history...", 200 * time.Millisecond},
		{StatusProcessing, 45, "Analyzing draft patterns...", 400 * time.Millisecond},
		{StatusProcessing, 65, "Processing player statistics...", 500 * time.Millisecond},
		{StatusProcessing, 80, "Generating insights...", 400 * time.Millisecond},
		{StatusProcessing, 80, "Generating AI analysis for " + teamPlaceholder + "...", 300 * time.Millisecond},
		{StatusProcessing, 90, "Finalizing report...", 1500 * time.Millisecond},
		{StatusProcessing, 95, "Almost done...", 500 * time.Millisecond},
		{StatusCompleted, 100, "Report ready!", 400 * time.Millisecond},
	}
}

// Scale returns a copy with every delay multiplied by f.
func (s Script) Scale(f float64) Script {
	out := make(Script, len(s))
	for i, st := range s {
		st.Delay = time.Duration(float64(st.Delay) * f)
		out[i] = st
	}
	return out
}

// Total is the time from the first to the last step.
func (s Script) Total() time.Duration {
	var d time.Duration
	for _, st := range s {
		d += st.Delay
	}
	return d
}

// Render returns the updates the script emits for team, in order.
func (s Script) Render(team string) []ReportProgress {
	out := make([]ReportProgress, len(s))
	for i, st := range s {
		out[i] = st.render(team)
	}
	return out
}

func (st Step) render(team string) ReportProgress {
	return ReportProgress{
		Status:   st.Status,
		Progress: st.Progress,
		Message:  strings.ReplaceAll(st.Message, teamPlaceholder, team),
	}
}
