package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openpadel/padel-tracker/internal/domain/match"
	"github.com/openpadel/padel-tracker/internal/domain/player"
	"github.com/openpadel/padel-tracker/internal/infrastructure/repository/memory"
	"github.com/openpadel/padel-tracker/internal/platform/logging"
)

func archiveDate(day int) *time.Time {
	d := time.Date(2026, time.March, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func seededArchive() *memory.ArchiveRepository {
	return memory.NewArchiveRepository(
		match.Match{
			Team1:      []string{"Alejandro Galan", "Federico Chingotto"},
			Team2:      []string{"Agustin Tapia", "Arturo Coello"},
			Score:      []string{"6-4", "3-6", "6-2"},
			Round:      "Final",
			Category:   match.CategoryMen,
			Tournament: &match.Ref{Name: "Qatar Major", ID: "481"},
			Year:       2026,
			Date:       archiveDate(14),
		},
		match.Match{
			Team1:      []string{"Alejandro Galan", "Federico Chingotto"},
			Team2:      []string{"Franco Stupaczuk", "Martin Di Nenno"},
			Score:      []string{"7-6", "6-3"},
			Round:      "Semifinal",
			Category:   match.CategoryMen,
			Tournament: &match.Ref{Name: "Qatar Major", ID: "481"},
			Year:       2026,
			Date:       archiveDate(13),
		},
		match.Match{
			Team1:      []string{"Agustin Tapia", "Arturo Coello"},
			Team2:      []string{"Franco Stupaczuk", "Martin Di Nenno"},
			Score:      []string{"6-3", "6-4"},
			Round:      "Final",
			Category:   match.CategoryMen,
			Tournament: &match.Ref{Name: "Milano P1", ID: "377"},
			Year:       2025,
			Date:       archiveDate(2),
		},
		match.Match{
			Team1:      []string{"Agustin Tapia", "Arturo Coello"},
			Team2:      []string{"Alejandro Galan", "Juan Lebron"},
			Score:      []string{"6-4", "6-3"},
			Round:      "Quarterfinal",
			Category:   match.CategoryMen,
			Tournament: &match.Ref{Name: "Milano P1", ID: "377"},
			Year:       2025,
			Date:       archiveDate(1),
		},
	)
}

func newTestStatsService() *StatsService {
	return NewStatsService(seededArchive(), player.NewIdentityResolver(nil), logging.NewNop())
}

func TestStatsService_FullNameQueryOverSurnameArchive(t *testing.T) {
	archive := memory.NewArchiveRepository(
		match.Match{
			Team1:      []string{"Galan", "Chingotto"},
			Team2:      []string{"Tapia", "Coello"},
			Score:      []string{"6-4", "3-6", "6-2"},
			Round:      "Final",
			Category:   match.CategoryMen,
			Tournament: &match.Ref{Name: "Qatar Major", ID: "481"},
			Year:       2026,
			Date:       archiveDate(14),
		},
	)
	svc := NewStatsService(archive, player.NewIdentityResolver(nil), logging.NewNop())
	ctx := context.Background()

	got, err := svc.PlayerStats(ctx, "Alejandro Galan", YearAll)
	require.NoError(t, err)
	require.Equal(t, 1, got.TotalMatches)
	require.Equal(t, 1, got.Wins)
	require.Equal(t, 1, got.Titles)
	require.Len(t, got.Partners, 1)
	require.Equal(t, "Chingotto", got.Partners[0].Name)

	h2h, err := svc.HeadToHead(ctx,
		[]string{"Alejandro Galan", "Federico Chingotto"},
		[]string{"Agustin Tapia", "Arturo Coello"}, YearAll)
	require.NoError(t, err)
	require.Equal(t, 1, h2h.TotalMatches)
	require.Equal(t, 1, h2h.Team1Wins)
}

func TestStatsService_HeadToHead(t *testing.T) {
	svc := newTestStatsService()
	ctx := context.Background()

	team1 := []string{"Galan", "Chingotto"}
	team2 := []string{"Tapia", "Coello"}

	t.Run("major final counts for team1", func(t *testing.T) {
		got, err := svc.HeadToHead(ctx, team1, team2, "2026")
		require.NoError(t, err)
		require.Equal(t, 1, got.TotalMatches)
		require.Equal(t, 1, got.Team1Wins)
		require.Equal(t, 0, got.Team2Wins)
		require.Equal(t, 1, got.BigMatchStats.TotalMatches)
		require.Equal(t, 1, got.BigMatchStats.Team1Wins)
		require.Equal(t, 0, got.BigMatchStats.Team2Wins)
		require.Equal(t, 15, got.TotalGamesStats.Team1Games)
		require.Equal(t, 12, got.TotalGamesStats.Team2Games)
		require.InDelta(t, 3.0, got.AverageMatchLength.AvgSets, 1e-9)
		require.Len(t, got.Matches, 1)
	})

	t.Run("swapping the teams mirrors the tally", func(t *testing.T) {
		straight, err := svc.HeadToHead(ctx, team1, team2, YearAll)
		require.NoError(t, err)
		mirrored, err := svc.HeadToHead(ctx, team2, team1, YearAll)
		require.NoError(t, err)

		require.Equal(t, straight.TotalMatches, mirrored.TotalMatches)
		require.Equal(t, straight.Team1Wins, mirrored.Team2Wins)
		require.Equal(t, straight.Team2Wins, mirrored.Team1Wins)
		require.Equal(t, straight.TotalGamesStats.Team1Games, mirrored.TotalGamesStats.Team2Games)
	})

	t.Run("member order within a team does not matter", func(t *testing.T) {
		got, err := svc.HeadToHead(ctx, []string{"Chingotto", "Galan"}, team2, YearAll)
		require.NoError(t, err)
		require.Equal(t, 1, got.TotalMatches)
		require.Equal(t, 1, got.Team1Wins)
	})

	t.Run("year filter excludes other seasons", func(t *testing.T) {
		got, err := svc.HeadToHead(ctx, []string{"Tapia", "Coello"}, []string{"Galan", "Lebron"}, "2026")
		require.NoError(t, err)
		require.Zero(t, got.TotalMatches)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := svc.HeadToHead(ctx, nil, team2, YearAll)
		require.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.HeadToHead(ctx, team1, team2, "next year")
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestStatsService_CommonOpponents(t *testing.T) {
	svc := newTestStatsService()

	got, err := svc.CommonOpponents(context.Background(),
		[]string{"Galan", "Chingotto"},
		[]string{"Stupaczuk", "Di Nenno"},
	)
	require.NoError(t, err)
	require.Len(t, got, 1)

	shared := got[0]
	require.True(t, player.NewIdentityResolver(nil).TeamsEqual(shared.Opponent, []string{"Agustin Tapia", "Arturo Coello"}))
	require.Equal(t, 1, shared.Team1Wins)
	require.Equal(t, 0, shared.Team1Losses)
	require.Equal(t, 0, shared.Team2Wins)
	require.Equal(t, 1, shared.Team2Losses)
}

func TestStatsService_PlayerStats(t *testing.T) {
	svc := newTestStatsService()
	ctx := context.Background()

	t.Run("career aggregation", func(t *testing.T) {
		got, err := svc.PlayerStats(ctx, "Galan", YearAll)
		require.NoError(t, err)

		require.Equal(t, 3, got.TotalMatches)
		require.Equal(t, 2, got.Wins)
		require.Equal(t, 1, got.Losses)
		require.InDelta(t, 200.0/3.0, got.WinRate, 1e-9)
		require.Equal(t, 1, got.Titles)
		require.Equal(t, 1, got.Finals)
		require.Equal(t, 2, got.CurrentStreak)

		require.Len(t, got.Partners, 2)
		require.Equal(t, "Federico Chingotto", got.Partners[0].Name)
		require.Equal(t, 2, got.Partners[0].Matches)
		require.InDelta(t, 100.0, got.Partners[0].WinRate, 1e-9)
		require.Equal(t, "Juan Lebron", got.Partners[1].Name)
		require.Equal(t, 1, got.Partners[1].Matches)

		// One three-setter, one tiebreak set, both won.
		require.InDelta(t, 100.0, got.ThreeSetWinRate, 1e-9)
		require.InDelta(t, 100.0, got.TiebreakWinRate, 1e-9)
		require.InDelta(t, 100.0, got.ClutchScore, 1e-9)
		require.GreaterOrEqual(t, got.ClutchScore, 0.0)
		require.LessOrEqual(t, got.ClutchScore, 100.0)

		require.Len(t, got.RecentMatches, 3)
		require.Equal(t, "Final", got.RecentMatches[0].Round)
	})

	t.Run("year filter", func(t *testing.T) {
		got, err := svc.PlayerStats(ctx, "Galan", "2025")
		require.NoError(t, err)
		require.Equal(t, 1, got.TotalMatches)
		require.Equal(t, 0, got.Wins)
		require.Equal(t, 1, got.Losses)
		require.Equal(t, -1, got.CurrentStreak)
	})

	t.Run("unknown player yields zero stats without error", func(t *testing.T) {
		got, err := svc.PlayerStats(ctx, "Somebody Else", YearAll)
		require.NoError(t, err)
		require.Zero(t, got.TotalMatches)
		require.Zero(t, got.Wins)
		require.Zero(t, got.ClutchScore)
		require.Empty(t, got.Partners)
	})

	t.Run("blank name is invalid", func(t *testing.T) {
		_, err := svc.PlayerStats(ctx, "   ", YearAll)
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestStatsService_Partners_Ordering(t *testing.T) {
	// Coello has identical match counts with nobody; Tapia has three matches
	// with Coello only. Give Stupaczuk two partners with equal counts to
	// exercise the win-rate tiebreak.
	archive := memory.NewArchiveRepository(
		match.Match{
			Team1: []string{"Franco Stupaczuk", "Martin Di Nenno"},
			Team2: []string{"Agustin Tapia", "Arturo Coello"},
			Score: []string{"6-4", "6-4"},
			Round: "Semifinal",
			Year:  2026,
			Date:  archiveDate(10),
		},
		match.Match{
			Team1: []string{"Franco Stupaczuk", "Juan Lebron"},
			Team2: []string{"Agustin Tapia", "Arturo Coello"},
			Score: []string{"4-6", "4-6"},
			Round: "Final",
			Year:  2026,
			Date:  archiveDate(11),
		},
	)
	svc := NewStatsService(archive, player.NewIdentityResolver(nil), logging.NewNop())

	partners, err := svc.Partners(context.Background(), "Stupaczuk")
	require.NoError(t, err)
	require.Len(t, partners, 2)
	require.Equal(t, "Martin Di Nenno", partners[0].Name)
	require.Equal(t, "Juan Lebron", partners[1].Name)
}

func TestStatsService_AllArchivedMatches(t *testing.T) {
	svc := newTestStatsService()

	got, err := svc.AllArchivedMatches(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 4)
	require.Equal(t, "Final", got[0].Round)
	require.True(t, got[0].Archived)
}
