package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openpadel/padel-tracker/internal/domain/match"
	"github.com/openpadel/padel-tracker/internal/domain/player"
	"github.com/openpadel/padel-tracker/internal/domain/stats"
	"github.com/openpadel/padel-tracker/internal/domain/tournament"
	"github.com/openpadel/padel-tracker/internal/platform/cache"
	"github.com/openpadel/padel-tracker/internal/platform/logging"
)

type fakeMatchSource struct {
	byURL map[string][]match.Match
}

func (f *fakeMatchSource) FetchMatches(_ context.Context, item tournament.Tournament) ([]match.Match, error) {
	matches, ok := f.byURL[item.URL]
	if !ok {
		return nil, fmt.Errorf("%w: widget not found for %s", ErrResolution, item.URL)
	}
	return matches, nil
}

type fakeMatchStatsSource struct {
	calls int
	table stats.MatchStats
	err   error
}

func (f *fakeMatchStatsSource) FetchMatchStats(context.Context, string, int, string, string) (stats.MatchStats, error) {
	f.calls++
	if f.err != nil {
		return stats.MatchStats{}, f.err
	}
	return f.table, nil
}

func newTestMatchService(matchSource MatchSource, statsSource MatchStatsSource, listing []tournament.Tournament) *MatchService {
	store := cache.NewStore()
	tournaments := NewTournamentService(&fakeTournamentSource{items: listing}, store, time.Minute, logging.NewNop())
	return NewMatchService(
		matchSource,
		statsSource,
		tournaments,
		player.NewIdentityResolver(nil),
		store,
		time.Minute,
		time.Minute,
		logging.NewNop(),
	)
}

func TestMatchService_SearchMatchesByPlayers(t *testing.T) {
	listing := []tournament.Tournament{
		{ID: "482", Name: "Riyadh P1", URL: "https://example.com/riyadh", Status: tournament.StatusLive},
		{ID: "483", Name: "Broken Open", URL: "https://example.com/broken", Status: tournament.StatusLive},
		{ID: "400", Name: "Milano P1", URL: "https://example.com/milano", Status: tournament.StatusFinished},
	}
	galanMatch := match.Match{
		Team1: []string{"Alejandro Galan", "Federico Chingotto"},
		Team2: []string{"Agustin Tapia", "Arturo Coello"},
		Round: "Final",
	}
	otherMatch := match.Match{
		Team1: []string{"Franco Stupaczuk", "Martin Di Nenno"},
		Team2: []string{"Juan Lebron", "Ale Ruiz"},
		Round: "Semifinal",
	}
	source := &fakeMatchSource{byURL: map[string][]match.Match{
		"https://example.com/riyadh": {galanMatch, otherMatch},
	}}
	svc := newTestMatchService(source, &fakeMatchStatsSource{}, listing)
	ctx := context.Background()

	t.Run("a broken tournament does not fail the search", func(t *testing.T) {
		got, err := svc.SearchMatchesByPlayers(ctx, []string{"Galan"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "Final", got[0].Round)
	})

	t.Run("matches any of the requested players", func(t *testing.T) {
		got, err := svc.SearchMatchesByPlayers(ctx, []string{"Nobody", "Stupaczuk"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, "Semifinal", got[0].Round)
	})

	t.Run("finished tournaments are skipped", func(t *testing.T) {
		// Milano's URL is absent from the fake source; a fetch attempt would
		// surface in the result count via the broken-tournament path only.
		got, err := svc.SearchMatchesByPlayers(ctx, []string{"Galan", "Stupaczuk", "Lebron"})
		require.NoError(t, err)
		require.Len(t, got, 2)
	})

	t.Run("requires at least one name", func(t *testing.T) {
		_, err := svc.SearchMatchesByPlayers(ctx, []string{"  ", ""})
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestMatchService_ListMatches(t *testing.T) {
	source := &fakeMatchSource{byURL: map[string][]match.Match{
		"https://example.com/riyadh": {{Team1: []string{"A", "B"}, Team2: []string{"C", "D"}}},
	}}
	svc := newTestMatchService(source, &fakeMatchStatsSource{}, nil)
	ctx := context.Background()

	got, err := svc.ListMatches(ctx, "https://example.com/riyadh")
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = svc.ListMatches(ctx, "  ")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestMatchService_MatchStats(t *testing.T) {
	statsSource := &fakeMatchStatsSource{table: stats.MatchStats{
		Team1Name: "Galan / Chingotto",
		Team2Name: "Tapia / Coello",
		Rows:      []stats.StatRow{{Label: "Aces", Team1Value: "3", Team2Value: "1"}},
	}}
	svc := newTestMatchService(&fakeMatchSource{}, statsSource, nil)
	ctx := context.Background()

	got, err := svc.MatchStats(ctx, "12045", 2026, "482", "FIP")
	require.NoError(t, err)
	require.Equal(t, "Galan / Chingotto", got.Team1Name)
	require.Len(t, got.Rows, 1)

	// Cached on repeat.
	_, err = svc.MatchStats(ctx, "12045", 2026, "482", "FIP")
	require.NoError(t, err)
	require.Equal(t, 1, statsSource.calls)

	_, err = svc.MatchStats(ctx, "", 2026, "482", "FIP")
	require.ErrorIs(t, err, ErrInvalidInput)
}
