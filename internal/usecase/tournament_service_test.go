package usecase

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/openpadel/padel-tracker/internal/domain/tournament"
	"github.com/openpadel/padel-tracker/internal/platform/cache"
	"github.com/openpadel/padel-tracker/internal/platform/logging"
)

type fakeTournamentSource struct {
	calls int32
	items []tournament.Tournament
	err   error
}

func (f *fakeTournamentSource) FetchTournaments(context.Context) ([]tournament.Tournament, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]tournament.Tournament, len(f.items))
	copy(out, f.items)
	return out, nil
}

func tournamentStart(day int) *time.Time {
	d := time.Date(2026, time.April, day, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestTournamentService_ListTournaments(t *testing.T) {
	source := &fakeTournamentSource{items: []tournament.Tournament{
		{ID: "400", Name: "Milano P1", Status: tournament.StatusFinished},
		{ID: "481", Name: "Qatar Major", Status: tournament.StatusUpcoming, ParsedDate: tournamentStart(20)},
		{ID: "479", Name: "Asuncion P2", Status: tournament.StatusUpcoming, ParsedDate: tournamentStart(6)},
		{ID: "482", Name: "Riyadh P1", Status: tournament.StatusLive},
	}}
	svc := NewTournamentService(source, cache.NewStore(), time.Minute, logging.NewNop())
	ctx := context.Background()

	got, err := svc.ListTournaments(ctx)
	require.NoError(t, err)
	require.Len(t, got, 4)
	require.Equal(t, "482", got[0].ID)
	require.Equal(t, "479", got[1].ID)
	require.Equal(t, "481", got[2].ID)
	require.Equal(t, "400", got[3].ID)

	// Second call is served from cache; the source is hit once.
	again, err := svc.ListTournaments(ctx)
	require.NoError(t, err)
	require.Equal(t, got, again)
	require.Equal(t, int32(1), atomic.LoadInt32(&source.calls))
}

func TestTournamentService_FailureNotCached(t *testing.T) {
	source := &fakeTournamentSource{err: context.DeadlineExceeded}
	svc := NewTournamentService(source, cache.NewStore(), time.Minute, logging.NewNop())
	ctx := context.Background()

	_, err := svc.ListTournaments(ctx)
	require.Error(t, err)

	source.err = nil
	source.items = []tournament.Tournament{{ID: "482", Name: "Riyadh P1", Status: tournament.StatusLive}}

	got, err := svc.ListTournaments(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, int32(2), atomic.LoadInt32(&source.calls))
}
