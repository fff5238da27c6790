package fixtures

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cloudy-poro/scout/internal/client"
)

// CodeTeamNotFound is the error code for an unknown team id.
const CodeTeamNotFound = "TEAM_NOT_FOUND"

// Fetcher serves fixture reports in place of the REST backend. It backs the
// simulated server and the dashboard's offline mock mode.
type Fetcher struct {
	// Delay is waited before every answer, mimicking backend latency.
	Delay time.Duration
	Now   func() time.Time
}

// NewFetcher returns a Fetcher that answers after delay.
func NewFetcher(delay time.Duration) *Fetcher {
	return &Fetcher{Delay: delay, Now: time.Now}
}

// FetchTeamAnalysis returns the fixture report for req.TeamID, or a 404
// *client.APIError for NotFoundID. It returns ctx.Err() if ctx ends first.
func (f *Fetcher) FetchTeamAnalysis(ctx context.Context, req client.TeamAnalysisRequest) (*client.TeamAnalysisReport, error) {
	if req.TeamID == "" {
		return nil, fmt.Errorf("team id is required")
	}
	if f.Delay > 0 {
		t := time.NewTimer(f.Delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if req.TeamID == NotFoundID {
		return nil, &client.APIError{
			Status:  http.StatusNotFound,
			Code:    CodeTeamNotFound,
			Message: fmt.Sprintf("Team with ID '%s' not found", req.TeamID),
			Details: map[string]any{},
		}
	}

	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	report := TeamAnalysis(req.TeamID, "", now())
	if tf := req.Timeframe; tf != nil {
		if tf.StartDate != "" || tf.EndDate != "" {
			report.ReportInfo.Timeframe.StartDate = tf.StartDate
			report.ReportInfo.Timeframe.EndDate = tf.EndDate
		}
		if tf.PatchVersion != "" {
			report.ReportInfo.Timeframe.PatchVersion = tf.PatchVersion
		}
	}
	if req.IncludePlayerAnalysis != nil && !*req.IncludePlayerAnalysis {
		report.PlayerAnalysis = []client.PlayerAnalysis{}
	}
	return report, nil
}
