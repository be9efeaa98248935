package usecase

import (
	"context"

	"github.com/openpadel/padel-tracker/internal/domain/match"
	"github.com/openpadel/padel-tracker/internal/domain/player"
	"github.com/openpadel/padel-tracker/internal/domain/stats"
	"github.com/openpadel/padel-tracker/internal/domain/tournament"
)

// Scrape-side collaborators. The services never touch HTML; everything
// arrives through these already normalized.

type TournamentSource interface {
	FetchTournaments(ctx context.Context) ([]tournament.Tournament, error)
}

type MatchSource interface {
	FetchMatches(ctx context.Context, item tournament.Tournament) ([]match.Match, error)
}

type RankingSource interface {
	FetchRankings(ctx context.Context) (player.Rankings, error)
}

type ProfileSource interface {
	FetchPlayerProfile(ctx context.Context, name string) (player.Player, error)
}

type MatchStatsSource interface {
	FetchMatchStats(ctx context.Context, org string, year int, eventID, matchID string) (stats.MatchStats, error)
}
