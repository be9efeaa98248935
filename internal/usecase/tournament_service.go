package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/openpadel/padel-tracker/internal/domain/tournament"
	"github.com/openpadel/padel-tracker/internal/platform/cache"
	"github.com/openpadel/padel-tracker/internal/platform/logging"
)

const tournamentsCacheKey = "tournaments"

type TournamentService struct {
	source TournamentSource
	cache  *cache.Store
	ttl    time.Duration
	logger *logging.Logger
}

func NewTournamentService(source TournamentSource, store *cache.Store, ttl time.Duration, logger *logging.Logger) *TournamentService {
	if logger == nil {
		logger = logging.Default()
	}
	return &TournamentService{source: source, cache: store, ttl: ttl, logger: logger}
}

// ListTournaments returns the current listing, cached. Live tournaments
// sort first, then upcoming by soonest start, then finished.
func (s *TournamentService) ListTournaments(ctx context.Context) ([]tournament.Tournament, error) {
	ctx, span := startUsecaseSpan(ctx, "TournamentService.ListTournaments")
	defer span.End()

	out, err := s.cache.GetOrLoad(ctx, tournamentsCacheKey, s.ttl, func(ctx context.Context) (any, error) {
		items, err := s.source.FetchTournaments(ctx)
		if err != nil {
			return nil, err
		}
		sortTournaments(items)
		return items, nil
	})
	if err != nil {
		return nil, err
	}

	items, ok := out.([]tournament.Tournament)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload type %T", out)
	}
	return items, nil
}

func sortTournaments(items []tournament.Tournament) {
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := tournament.StatusRank(items[i].Status), tournament.StatusRank(items[j].Status)
		if ri != rj {
			return ri < rj
		}
		di, dj := items[i].ParsedDate, items[j].ParsedDate
		switch {
		case di == nil && dj == nil:
			return items[i].Name < items[j].Name
		case dj == nil:
			return true
		case di == nil:
			return false
		case !di.Equal(*dj):
			return di.Before(*dj)
		default:
			return items[i].Name < items[j].Name
		}
	})
}
