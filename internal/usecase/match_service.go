package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/openpadel/padel-tracker/internal/domain/match"
	"github.com/openpadel/padel-tracker/internal/domain/player"
	"github.com/openpadel/padel-tracker/internal/domain/stats"
	"github.com/openpadel/padel-tracker/internal/domain/tournament"
	"github.com/openpadel/padel-tracker/internal/platform/cache"
	"github.com/openpadel/padel-tracker/internal/platform/logging"
)

const searchFanOutLimit = 4

type MatchService struct {
	source      MatchSource
	statsSource MatchStatsSource
	tournaments *TournamentService
	identity    *player.IdentityResolver
	cache       *cache.Store
	matchTTL    time.Duration
	statsTTL    time.Duration
	logger      *logging.Logger
}

func NewMatchService(
	source MatchSource,
	statsSource MatchStatsSource,
	tournaments *TournamentService,
	identity *player.IdentityResolver,
	store *cache.Store,
	matchTTL, statsTTL time.Duration,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &MatchService{
		source:      source,
		statsSource: statsSource,
		tournaments: tournaments,
		identity:    identity,
		cache:       store,
		matchTTL:    matchTTL,
		statsTTL:    statsTTL,
		logger:      logger,
	}
}

// ListMatches scrapes (or serves from cache) every match of the tournament
// behind the given listing URL.
func (s *MatchService) ListMatches(ctx context.Context, tournamentURL string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.ListMatches")
	defer span.End()

	tournamentURL = strings.TrimSpace(tournamentURL)
	if tournamentURL == "" {
		return nil, fmt.Errorf("%w: tournament url is required", ErrInvalidInput)
	}

	out, err := s.cache.GetOrLoad(ctx, "matches:"+tournamentURL, s.matchTTL, func(ctx context.Context) (any, error) {
		return s.source.FetchMatches(ctx, tournament.Tournament{URL: tournamentURL})
	})
	if err != nil {
		return nil, err
	}

	items, ok := out.([]match.Match)
	if !ok {
		return nil, fmt.Errorf("unexpected cache payload type %T", out)
	}
	return items, nil
}

// SearchMatchesByPlayers fans out across the current tournament listing and
// keeps matches featuring any of the given players. A tournament that fails
// to resolve or fetch is logged and skipped; the search never fails as a
// whole because one page broke.
func (s *MatchService) SearchMatchesByPlayers(ctx context.Context, players []string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.SearchMatchesByPlayers")
	defer span.End()

	names := make([]string, 0, len(players))
	for _, name := range players {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: at least one player name is required", ErrInvalidInput)
	}

	tournaments, err := s.tournaments.ListTournaments(ctx)
	if err != nil {
		return nil, err
	}

	p := pool.NewWithResults[[]match.Match]().WithContext(ctx).WithMaxGoroutines(searchFanOutLimit)
	for _, item := range tournaments {
		if item.Status == tournament.StatusFinished {
			continue
		}
		item := item
		p.Go(func(ctx context.Context) ([]match.Match, error) {
			matches, err := s.ListMatches(ctx, item.URL)
			if err != nil {
				s.logger.WarnContext(ctx, "skip tournament in player search", "tournament", item.ID, "error", err)
				return nil, nil
			}
			return s.filterByPlayers(matches, names), nil
		})
	}

	results, err := p.Wait()
	if err != nil {
		return nil, err
	}

	out := make([]match.Match, 0, 8)
	for _, chunk := range results {
		out = append(out, chunk...)
	}
	return out, nil
}

func (s *MatchService) filterByPlayers(matches []match.Match, names []string) []match.Match {
	out := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		for _, name := range names {
			if s.identity.TeamContains(m.Team1, name) || s.identity.TeamContains(m.Team2, name) {
				out = append(out, m)
				break
			}
		}
	}
	return out
}

// MatchStats loads the widget's per-match statistics table. Unlike the
// aggregation paths this propagates typed failures so callers can show an
// explicit error state for a single match.
func (s *MatchService) MatchStats(ctx context.Context, matchID string, year int, tournamentID, organization string) (stats.MatchStats, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.MatchStats")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	tournamentID = strings.TrimSpace(tournamentID)
	if matchID == "" || tournamentID == "" {
		return stats.MatchStats{}, fmt.Errorf("%w: match id and tournament id are required", ErrInvalidInput)
	}
	if year <= 0 {
		year = time.Now().UTC().Year()
	}

	key := fmt.Sprintf("matchstats:%s:%d:%s:%s", organization, year, tournamentID, matchID)
	out, err := s.cache.GetOrLoad(ctx, key, s.statsTTL, func(ctx context.Context) (any, error) {
		return s.statsSource.FetchMatchStats(ctx, organization, year, tournamentID, matchID)
	})
	if err != nil {
		return stats.MatchStats{}, err
	}

	table, ok := out.(stats.MatchStats)
	if !ok {
		return stats.MatchStats{}, fmt.Errorf("unexpected cache payload type %T", out)
	}
	return table, nil
}
