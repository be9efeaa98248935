package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openpadel/padel-tracker/internal/domain/player"
	"github.com/openpadel/padel-tracker/internal/domain/stats"
	"github.com/openpadel/padel-tracker/internal/platform/logging"
)

func newTestPredictionService() *PredictionService {
	statsService := NewStatsService(seededArchive(), player.NewIdentityResolver(nil), logging.NewNop())
	return NewPredictionService(statsService, logging.NewNop())
}

func TestPredictionService_Predict(t *testing.T) {
	svc := newTestPredictionService()
	ctx := context.Background()

	team1 := []string{"Galan", "Chingotto"}
	team2 := []string{"Tapia", "Coello"}

	t.Run("history and ranks combine", func(t *testing.T) {
		got, err := svc.Predict(ctx, team1, team2, 1, 2)
		require.NoError(t, err)
		require.Equal(t, stats.PredictionBasisH2HAndRank, got.Basis)
		require.Equal(t, team1, got.FavoredTeam)
		// 0.7 * 1.0 wins share + 0.3 * (2 / 3) rank share.
		require.InDelta(t, 90.0, got.Confidence, 1e-9)
	})

	t.Run("history alone", func(t *testing.T) {
		got, err := svc.Predict(ctx, team1, team2, 0, 0)
		require.NoError(t, err)
		require.Equal(t, stats.PredictionBasisH2H, got.Basis)
		require.Equal(t, team1, got.FavoredTeam)
		require.InDelta(t, 100.0, got.Confidence, 1e-9)
	})

	t.Run("ranks alone for unseen teams", func(t *testing.T) {
		stranger1 := []string{"Nobody One", "Nobody Two"}
		stranger2 := []string{"Nobody Three", "Nobody Four"}

		got, err := svc.Predict(ctx, stranger1, stranger2, 3, 1)
		require.NoError(t, err)
		require.Equal(t, stats.PredictionBasisRank, got.Basis)
		require.Equal(t, stranger2, got.FavoredTeam)
		require.InDelta(t, 75.0, got.Confidence, 1e-9)
	})

	t.Run("nothing known yields a neutral answer", func(t *testing.T) {
		got, err := svc.Predict(ctx,
			[]string{"Nobody One", "Nobody Two"},
			[]string{"Nobody Three", "Nobody Four"},
			0, 0,
		)
		require.NoError(t, err)
		require.Equal(t, stats.PredictionBasisNone, got.Basis)
		require.Empty(t, got.FavoredTeam)
		require.Zero(t, got.Confidence)
	})

	t.Run("rejects empty teams", func(t *testing.T) {
		_, err := svc.Predict(ctx, nil, team2, 1, 2)
		require.ErrorIs(t, err, ErrInvalidInput)
	})
}
