// Package fixtures holds the canned scouting report served by the simulated
// backend and used by view tests.
package fixtures

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/cloudy-poro/scout/internal/client"
)

// NotFoundID is the team id the simulated backend answers with 404.
const NotFoundID = "not-found"

// TeamAnalysis returns the fixture report for teamID. An empty teamName is
// derived from the id ("karmine-corp" -> "Karmine Corp").
func TeamAnalysis(teamID, teamName string, now time.Time) *client.TeamAnalysisReport {
	if teamName == "" {
		teamName = DisplayName(teamID)
	}
	r := baseReport()
	r.ReportInfo.TeamID = teamID
	r.ReportInfo.TeamName = teamName
	r.ReportInfo.GeneratedAt = now.UTC()
	return r
}

// DisplayName turns a slug into a title-cased name.
func DisplayName(id string) string {
	words := strings.FieldsFunc(id, func(r rune) bool { return r == '-' || r == '_' || r == ' ' })
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Slug is the inverse of DisplayName, used to build report ids from names.
func Slug(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

func baseReport() *client.TeamAnalysisReport {
	return &client.TeamAnalysisReport{
		ReportInfo: client.ReportInfo{
			GamesAnalyzed:   20,
			OpponentWinrate: 40,
			AverageKills:    11.9,
			AverageDeaths:   12.3,
			Players: []client.PlayerSummary{
				{PlayerID: "p1", Nickname: "Cabochard", Role: client.RoleTop},
				{PlayerID: "p2", Nickname: "Closer", Role: client.RoleJungle},
				{PlayerID: "p3", Nickname: "SAKEN", Role: client.RoleMid},
				{PlayerID: "p4", Nickname: "Upset", Role: client.RoleADC},
				{PlayerID: "p5", Nickname: "Targamas", Role: client.RoleSupport},
			},
			Timeframe: client.TimeframeInfo{
				StartDate:    "2024-01-01",
				EndDate:      "2024-03-15",
				PatchVersion: "14.5",
			},
		},
		Overview: client.OverviewAnalysis{
			Randomness:      client.RandomnessChaotic,
			RandomnessScore: 0.78,
			StrategicInsights: []string{
				"Prepare principles and flexible answers.",
				"Prioritize comfort denial.",
				"Keep answers ready for Sejuani, Gnar, Rakan, Azir, Rumble",
				"Focus on denying engage supports and stable jungle picks if available",
				"Expect multiple styles; prioritize adaptable comps over single hard reads",
			},
		},
		DraftPlan: client.DraftPlan{
			BanPlan:       []string{"Sejuani", "Gnar", "Rakan", "LeeSin", "Orianna"},
			DraftPriority: "flexibility",
			CounterPicks: []client.CounterPickStrategy{
				{TargetChampion: "Sejuani", SuggestedCounters: []string{"Lillia", "Kindred"}},
				{TargetChampion: "Gnar", SuggestedCounters: []string{"Camille", "Irelia"}},
				{TargetChampion: "Rakan", SuggestedCounters: []string{"Alistar", "Nautilus"}},
			},
			StrategicNotes: []string{},
		},
		DraftTendencies: client.DraftTendencies{
			PriorityPicks: []client.ChampionPriority{
				{ChampionID: "Sejuani", PickRate: 65, BanRate: 45, Priority: 1},
				{ChampionID: "Gnar", PickRate: 55, BanRate: 40, Priority: 2},
				{ChampionID: "Rakan", PickRate: 50, BanRate: 35, Priority: 3},
				{ChampionID: "Azir", PickRate: 45, BanRate: 30, Priority: 4},
				{ChampionID: "Rumble", PickRate: 40, BanRate: 25, Priority: 5},
				{ChampionID: "Jayce", PickRate: 38, BanRate: 20, Priority: 6},
				{ChampionID: "Maokai", PickRate: 35, BanRate: 28, Priority: 7},
				{ChampionID: "Skarner", PickRate: 32, BanRate: 22, Priority: 8},
				{ChampionID: "Jhin", PickRate: 30, BanRate: 15, Priority: 9},
				{ChampionID: "Zeri", PickRate: 28, BanRate: 32, Priority: 10},
			},
		},
		StablePicks: []client.StablePicksByRole{
			{Role: client.RoleTop, Picks: []client.StablePick{
				{ChampionID: "Gnar", Role: client.RoleTop, GamesPlayed: 8, Winrate: 62.5, KDA: 3.2, IsSignaturePick: true},
				{ChampionID: "Jayce", Role: client.RoleTop, GamesPlayed: 5, Winrate: 60.0, KDA: 2.8, IsSignaturePick: true},
				{ChampionID: "Rumble", Role: client.RoleTop, GamesPlayed: 4, Winrate: 50.0, KDA: 2.5},
			}},
			{Role: client.RoleJungle, Picks: []client.StablePick{
				{ChampionID: "Sejuani", Role: client.RoleJungle, GamesPlayed: 10, Winrate: 70.0, KDA: 4.1, IsSignaturePick: true},
				{ChampionID: "Maokai", Role: client.RoleJungle, GamesPlayed: 6, Winrate: 50.0, KDA: 3.5},
				{ChampionID: "Skarner", Role: client.RoleJungle, GamesPlayed: 4, Winrate: 75.0, KDA: 3.8},
			}},
			{Role: client.RoleMid, Picks: []client.StablePick{
				{ChampionID: "Azir", Role: client.RoleMid, GamesPlayed: 7, Winrate: 57.1, KDA: 3.4, IsSignaturePick: true},
				{ChampionID: "Orianna", Role: client.RoleMid, GamesPlayed: 5, Winrate: 40.0, KDA: 2.9},
				{ChampionID: "Syndra", Role: client.RoleMid, GamesPlayed: 4, Winrate: 50.0, KDA: 3.1},
			}},
			{Role: client.RoleADC, Picks: []client.StablePick{
				{ChampionID: "Jhin", Role: client.RoleADC, GamesPlayed: 8, Winrate: 62.5, KDA: 4.2, IsSignaturePick: true},
				{ChampionID: "Zeri", Role: client.RoleADC, GamesPlayed: 6, Winrate: 33.3, KDA: 2.8},
				{ChampionID: "Varus", Role: client.RoleADC, GamesPlayed: 4, Winrate: 50.0, KDA: 3.5},
			}},
			{Role: client.RoleSupport, Picks: []client.StablePick{
				{ChampionID: "Rakan", Role: client.RoleSupport, GamesPlayed: 9, Winrate: 55.6, KDA: 3.8, IsSignaturePick: true},
				{ChampionID: "Nautilus", Role: client.RoleSupport, GamesPlayed: 5, Winrate: 60.0, KDA: 3.2},
				{ChampionID: "Thresh", Role: client.RoleSupport, GamesPlayed: 4, Winrate: 50.0, KDA: 3.0},
			}},
		},
		Scenarios: []client.ScenarioCard{
			{
				ScenarioID: "teamfight-heavy", Name: "Teamfight Heavy", Description: "Strong 5v5 with AOE engage",
				Likelihood: 45, Winrate: 52,
				Stats: map[string]float64{"teamfightiness": 0.85, "earlyAggression": 0.30, "draftVolatility": 0.40, "macro": 0.55},
				PunishStrategy: client.PunishStrategy{Action: "ban", Targets: []string{"Gnar", "Maokai"},
					Description: "Ban Gnar, Maokai to deny engage frontline"},
			},
			{
				ScenarioID: "early-skirmish", Name: "Early Skirmish", Description: "Aggressive early with jungle priority",
				Likelihood: 30, Winrate: 48,
				Stats: map[string]float64{"teamfightiness": 0.50, "earlyAggression": 0.85, "draftVolatility": 0.55, "macro": 0.40},
				PunishStrategy: client.PunishStrategy{Action: "pick", Targets: []string{"Skarner", "Maokai"},
					Description: "Pick scaling jungle, concede early"},
			},
			{
				ScenarioID: "split-macro", Name: "Split & Macro", Description: "Side lane pressure with global threat",
				Likelihood: 15, Winrate: 58,
				Stats: map[string]float64{"teamfightiness": 0.25, "earlyAggression": 0.45, "draftVolatility": 0.70, "macro": 0.90},
				PunishStrategy: client.PunishStrategy{Action: "counter", Targets: []string{"Jayce", "Fiora"},
					Description: "Prepare Camille/Jax answers for split"},
			},
			{
				ScenarioID: "protect-carry", Name: "Protect the Carry", Description: "Hyper-carry focused with peel",
				Likelihood: 7, Winrate: 45,
				Stats: map[string]float64{"teamfightiness": 0.75, "earlyAggression": 0.20, "draftVolatility": 0.30, "macro": 0.60},
				PunishStrategy: client.PunishStrategy{Action: "pick", Targets: []string{"Zed", "Nocturne"},
					Description: "Draft assassin threat for backline"},
			},
			{
				ScenarioID: "chaos-flex", Name: "Chaos Flex", Description: "Unpredictable multi-flex draft",
				Likelihood: 3, Winrate: 35,
				Stats: map[string]float64{"teamfightiness": 0.50, "earlyAggression": 0.60, "draftVolatility": 0.95, "macro": 0.45},
				PunishStrategy: client.PunishStrategy{Action: "playstyle", Targets: []string{},
					Description: "Stay calm, execute fundamentals"},
			},
		},
		PlayerAnalysis: []client.PlayerAnalysis{
			player("p2", "Closer", client.RoleJungle, 0.82, client.PlayerTendencies{EarlyGameAggression: 0.75, TeamfightParticipation: 0.82, SoloKillRate: 0.45, VisionScore: 0.68},
				pool("Sejuani", 6, 66.7, true), pool("Maokai", 4, 50.0, false), pool("LeeSin", 3, 66.7, true)),
			player("p1", "Cabochard", client.RoleTop, 0.75, client.PlayerTendencies{EarlyGameAggression: 0.65, TeamfightParticipation: 0.78, SoloKillRate: 0.52, VisionScore: 0.45},
				pool("Gnar", 8, 62.5, true), pool("Jayce", 5, 60.0, true), pool("Rumble", 4, 50.0, false)),
			player("p3", "SAKEN", client.RoleMid, 0.68, client.PlayerTendencies{EarlyGameAggression: 0.50, TeamfightParticipation: 0.85, SoloKillRate: 0.38, VisionScore: 0.62},
				pool("Azir", 7, 57.1, true), pool("Orianna", 5, 40.0, false), pool("Syndra", 4, 50.0, false)),
			player("p10", "Targamas", client.RoleSupport, 0.52, client.PlayerTendencies{EarlyGameAggression: 0.55, TeamfightParticipation: 0.88, SoloKillRate: 0.10, VisionScore: 0.90},
				pool("Thresh", 6, 50.0, true), pool("Nautilus", 5, 60.0, true)),
			player("p4", "Upset", client.RoleADC, 0.48, client.PlayerTendencies{EarlyGameAggression: 0.40, TeamfightParticipation: 0.92, SoloKillRate: 0.28, VisionScore: 0.58},
				pool("Jhin", 8, 62.5, true), pool("Zeri", 6, 33.3, false), pool("Varus", 4, 50.0, false)),
		},
	}
}

func player(id, nick string, role client.Role, entropy float64, t client.PlayerTendencies, champs ...client.ChampionPoolEntry) client.PlayerAnalysis {
	return client.PlayerAnalysis{
		PlayerID:     id,
		Nickname:     nick,
		Role:         role,
		Entropy:      entropy,
		ChampionPool: champs,
		Tendencies:   t,
	}
}

func pool(champ string, games int, winrate float64, comfort bool) client.ChampionPoolEntry {
	return client.ChampionPoolEntry{ChampionID: champ, GamesPlayed: games, Winrate: winrate, IsComfort: comfort}
}
