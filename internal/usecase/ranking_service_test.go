package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openpadel/padel-tracker/internal/domain/player"
	"github.com/openpadel/padel-tracker/internal/platform/cache"
	"github.com/openpadel/padel-tracker/internal/platform/logging"
)

type fakeRankingSource struct {
	calls    int
	rankings player.Rankings
	err      error
}

func (f *fakeRankingSource) FetchRankings(context.Context) (player.Rankings, error) {
	f.calls++
	if f.err != nil {
		return player.Rankings{}, f.err
	}
	return f.rankings, nil
}

type fakeProfileSource struct {
	profiles map[string]player.Player
}

func (f *fakeProfileSource) FetchPlayerProfile(_ context.Context, name string) (player.Player, error) {
	profile, ok := f.profiles[name]
	if !ok {
		return player.Player{}, fmt.Errorf("%w: player %q", ErrNotFound, name)
	}
	return profile, nil
}

func newTestRankingService(rankings *fakeRankingSource, profiles *fakeProfileSource) *RankingService {
	return NewRankingService(
		rankings,
		profiles,
		seededArchive(),
		player.NewIdentityResolver(nil),
		cache.NewStore(),
		time.Minute,
		logging.NewNop(),
	)
}

func TestRankingService_Rankings_Cached(t *testing.T) {
	source := &fakeRankingSource{rankings: player.Rankings{
		Men: []player.Player{{Name: "Agustin Tapia", Rank: "1", Points: "11500"}},
	}}
	svc := newTestRankingService(source, &fakeProfileSource{})
	ctx := context.Background()

	first, err := svc.Rankings(ctx)
	require.NoError(t, err)
	require.Len(t, first.Men, 1)

	_, err = svc.Rankings(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, source.calls)
}

func TestRankingService_PlayerProfile(t *testing.T) {
	rankings := &fakeRankingSource{rankings: player.Rankings{
		Men: []player.Player{
			{Name: "Agustin Tapia", Rank: "1", Points: "11500", Country: "Argentina"},
			{Name: "Alejandro Galan", Rank: "3", Points: "9800", Country: "Spain"},
		},
	}}
	profiles := &fakeProfileSource{profiles: map[string]player.Player{
		"Agustin Tapia": {Name: "Agustin Tapia", Country: "Argentina", ImageURL: "https://example.com/tapia.jpg"},
	}}
	svc := newTestRankingService(rankings, profiles)
	ctx := context.Background()

	t.Run("profile page plus ranking plus archive", func(t *testing.T) {
		got, err := svc.PlayerProfile(ctx, "Agustin Tapia")
		require.NoError(t, err)
		require.Equal(t, "1", got.Rank)
		require.Equal(t, "11500", got.Points)
		require.Equal(t, "https://example.com/tapia.jpg", got.ImageURL)
		require.NotEmpty(t, got.RecentResults)
	})

	t.Run("missing profile page degrades to ranking data", func(t *testing.T) {
		got, err := svc.PlayerProfile(ctx, "Galan")
		require.NoError(t, err)
		require.Equal(t, "3", got.Rank)
		require.Equal(t, "Spain", got.Country)
		require.NotEmpty(t, got.RecentResults)
	})

	t.Run("unknown everywhere is a not-found", func(t *testing.T) {
		_, err := svc.PlayerProfile(ctx, "Nobody At All")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("blank name is invalid", func(t *testing.T) {
		_, err := svc.PlayerProfile(ctx, " ")
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}
