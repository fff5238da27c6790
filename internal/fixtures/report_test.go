package fixtures

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudy-poro/scout/internal/client"
)

func TestTeamAnalysisRebrands(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	r := TeamAnalysis("t1", "T1", now)

	assert.Equal(t, "t1", r.ReportInfo.TeamID)
	assert.Equal(t, "T1", r.ReportInfo.TeamName)
	assert.Equal(t, now.UTC(), r.ReportInfo.GeneratedAt)
}

func TestTeamAnalysisDerivesName(t *testing.T) {
	r := TeamAnalysis("karmine-corp", "", time.Now())
	assert.Equal(t, "Karmine Corp", r.ReportInfo.TeamName)
}

func TestTeamAnalysisIndependentCopies(t *testing.T) {
	a := TeamAnalysis("a", "A", time.Now())
	a.DraftPlan.BanPlan[0] = "Teemo"
	b := TeamAnalysis("b", "B", time.Now())
	assert.Equal(t, "Sejuani", b.DraftPlan.BanPlan[0])
}

func TestTeamAnalysisShape(t *testing.T) {
	r := TeamAnalysis("x", "X", time.Now())

	require.Len(t, r.StablePicks, len(client.Roles))
	for i, role := range client.Roles {
		assert.Equal(t, role, r.StablePicks[i].Role)
	}

	var total float64
	for _, s := range r.Scenarios {
		total += s.Likelihood
	}
	assert.InDelta(t, 100, total, 0.001)

	for i, p := range r.DraftTendencies.PriorityPicks {
		assert.Equal(t, i+1, p.Priority)
	}
	assert.Equal(t, client.RandomnessChaotic, r.Overview.Randomness)
}

func TestDisplayNameAndSlug(t *testing.T) {
	tests := []struct {
		slug, name string
	}{
		{"karmine-corp", "Karmine Corp"},
		{"t1", "T1"},
		{"g2-esports", "G2 Esports"},
		{"équipe-rouge", "Équipe Rouge"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, DisplayName(tt.slug))
		assert.True(t, utf8.ValidString(DisplayName(tt.slug)), "%q", tt.slug)
		assert.Equal(t, tt.slug, Slug(tt.name))
	}
	assert.Equal(t, "", DisplayName(""))
}
