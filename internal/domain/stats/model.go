// Package stats holds the derived structures computed on demand from the
// match archive. Nothing here is persisted; every value is recomputed per
// request.
package stats

import "github.com/openpadel/padel-tracker/internal/domain/match"

type PartnerStat struct {
	Name    string  `json:"name"`
	Matches int     `json:"matches"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"winRate"`
}

type PlayerStats struct {
	Wins            int           `json:"wins"`
	Losses          int           `json:"losses"`
	WinRate         float64       `json:"winRate"`
	Titles          int           `json:"titles"`
	Finals          int           `json:"finals"`
	TotalMatches    int           `json:"totalMatches"`
	Partners        []PartnerStat `json:"partners"`
	CurrentStreak   int           `json:"currentStreak"`
	RecentMatches   []match.Match `json:"recentMatches"`
	ThreeSetWinRate float64       `json:"threeSetWinRate"`
	TiebreakWinRate float64       `json:"tiebreakWinRate"`
	ClutchScore     float64       `json:"clutchScore"`
	GoldenSetsWon   int           `json:"goldenSetsWon"`
	GoldenSetsLost  int           `json:"goldenSetsLost"`
}

type WinTally struct {
	Team1Wins    int `json:"team1Wins"`
	Team2Wins    int `json:"team2Wins"`
	TotalMatches int `json:"totalMatches"`
}

type GamesTally struct {
	Team1Games int `json:"team1Games"`
	Team2Games int `json:"team2Games"`
}

type MatchLength struct {
	AvgSets  float64 `json:"avgSets"`
	AvgGames float64 `json:"avgGames"`
}

type H2HResult struct {
	WinTally
	Matches            []match.Match `json:"matches"`
	BigMatchStats      WinTally      `json:"bigMatchStats"`
	TotalGamesStats    GamesTally    `json:"totalGamesStats"`
	AverageMatchLength MatchLength   `json:"averageMatchLength"`
}

type CommonOpponentStat struct {
	Opponent     []string `json:"opponent"`
	Team1Wins    int      `json:"team1Wins"`
	Team1Losses  int      `json:"team1Losses"`
	Team2Wins    int      `json:"team2Wins"`
	Team2Losses  int      `json:"team2Losses"`
}

// MatchStats is the per-match point-by-point table from the live-scoring
// widget.
type MatchStats struct {
	Team1Name string    `json:"team1Name"`
	Team2Name string    `json:"team2Name"`
	Rows      []StatRow `json:"rows"`
}

type StatRow struct {
	Label      string `json:"label"`
	Team1Value string `json:"team1Value"`
	Team2Value string `json:"team2Value"`
}

const (
	PredictionBasisH2HAndRank = "h2h+rank"
	PredictionBasisH2H        = "h2h"
	PredictionBasisRank       = "rank"
	PredictionBasisNone       = "none"
)

// Prediction is a simple outcome estimate. FavoredTeam is empty and
// Confidence zero when neither head-to-head history nor ranks are available.
type Prediction struct {
	FavoredTeam []string `json:"favoredTeam,omitempty"`
	Confidence  float64  `json:"confidence"`
	Basis       string   `json:"basis"`
}
