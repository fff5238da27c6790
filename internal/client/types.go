// Package client fetches finished scouting reports from the analysis backend.
// Types mirror the backend report contract without importing backend packages.
package client

import "time"

// Role is a game position.
type Role string

const (
	RoleTop     Role = "top"
	RoleJungle  Role = "jungle"
	RoleMid     Role = "mid"
	RoleADC     Role = "adc"
	RoleSupport Role = "support"
)

// Roles lists positions in display order.
var Roles = []Role{RoleTop, RoleJungle, RoleMid, RoleADC, RoleSupport}

// RandomnessLevel summarises how predictable a team's drafts are.
type RandomnessLevel string

const (
	RandomnessPredictable RandomnessLevel = "predictable"
	RandomnessModerate    RandomnessLevel = "moderate"
	RandomnessChaotic     RandomnessLevel = "chaotic"
)

// TeamAnalysisReport is the full response of /api/teams/{id}/analysis.
type TeamAnalysisReport struct {
	ReportInfo      ReportInfo          `json:"reportInfo"`
	Overview        OverviewAnalysis    `json:"overview"`
	DraftPlan       DraftPlan           `json:"draftPlan"`
	DraftTendencies DraftTendencies     `json:"draftTendencies"`
	StablePicks     []StablePicksByRole `json:"stablePicks"`
	Scenarios       []ScenarioCard      `json:"scenarios"`
	PlayerAnalysis  []PlayerAnalysis    `json:"playerAnalysis"`
}

type ReportInfo struct {
	TeamID          string          `json:"teamId"`
	TeamName        string          `json:"teamName"`
	GamesAnalyzed   int             `json:"gamesAnalyzed"`
	OpponentWinrate float64         `json:"opponentWinrate"`
	AverageKills    float64         `json:"averageKills"`
	AverageDeaths   float64         `json:"averageDeaths"`
	Players         []PlayerSummary `json:"players"`
	Timeframe       TimeframeInfo   `json:"timeframe"`
	GeneratedAt     time.Time       `json:"generatedAt"`
}

type PlayerSummary struct {
	PlayerID string `json:"playerId"`
	Nickname string `json:"nickname"`
	Role     Role   `json:"role"`
}

type TimeframeInfo struct {
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	PatchVersion string `json:"patchVersion,omitempty"`
}

type OverviewAnalysis struct {
	Randomness        RandomnessLevel `json:"randomness"`
	RandomnessScore   float64         `json:"randomnessScore"` // 0-1, higher = more chaotic
	StrategicInsights []string        `json:"strategicInsights"`
}

type DraftPlan struct {
	BanPlan        []string              `json:"banPlan"`
	DraftPriority  string                `json:"draftPriority"`
	CounterPicks   []CounterPickStrategy `json:"counterPicks"`
	StrategicNotes []string              `json:"strategicNotes"`
}

type CounterPickStrategy struct {
	TargetChampion    string   `json:"targetChampion"`
	SuggestedCounters []string `json:"suggestedCounters"`
}

type DraftTendencies struct {
	PriorityPicks []ChampionPriority `json:"priorityPicks"`
}

type ChampionPriority struct {
	ChampionID string  `json:"championId"`
	PickRate   float64 `json:"pickRate"`
	BanRate    float64 `json:"banRate"`
	Priority   int     `json:"priority"` // 1 = highest
}

type StablePick struct {
	ChampionID      string  `json:"championId"`
	Role            Role    `json:"role"`
	GamesPlayed     int     `json:"gamesPlayed"`
	Winrate         float64 `json:"winrate"`
	KDA             float64 `json:"kda"`
	IsSignaturePick bool    `json:"isSignaturePick"`
}

type StablePicksByRole struct {
	Role  Role         `json:"role"`
	Picks []StablePick `json:"picks"`
}

// ScenarioCard describes one predicted game plan. Stats values are 0-1 and
// the key set is open-ended.
type ScenarioCard struct {
	ScenarioID     string             `json:"scenarioId"`
	Name           string             `json:"name"`
	Description    string             `json:"description,omitempty"`
	Likelihood     float64            `json:"likelihood"`
	Winrate        float64            `json:"winrate"`
	Stats          map[string]float64 `json:"stats"`
	PunishStrategy PunishStrategy     `json:"punishStrategy"`
}

type PunishStrategy struct {
	Action      string   `json:"action"` // ban, pick, counter, playstyle
	Targets     []string `json:"targets"`
	Description string   `json:"description"`
}

type PlayerAnalysis struct {
	PlayerID     string              `json:"playerId"`
	Nickname     string              `json:"nickname"`
	Role         Role                `json:"role"`
	Entropy      float64             `json:"entropy"` // 0-1, higher = wider pool
	ChampionPool []ChampionPoolEntry `json:"championPool"`
	Tendencies   PlayerTendencies    `json:"tendencies"`
}

type ChampionPoolEntry struct {
	ChampionID  string  `json:"championId"`
	GamesPlayed int     `json:"gamesPlayed"`
	Winrate     float64 `json:"winrate"`
	IsComfort   bool    `json:"isComfort"`
}

type PlayerTendencies struct {
	EarlyGameAggression    float64 `json:"earlyGameAggression"`
	TeamfightParticipation float64 `json:"teamfightParticipation"`
	SoloKillRate           float64 `json:"soloKillRate"`
	VisionScore            float64 `json:"visionScore"`
}

// Timeframe narrows the games a report is built from.
type Timeframe struct {
	StartDate    string
	EndDate      string
	PatchVersion string
	LastNGames   int
}

// TeamAnalysisRequest selects a report.
type TeamAnalysisRequest struct {
	TeamID                string
	Timeframe             *Timeframe
	IncludePlayerAnalysis *bool
}
