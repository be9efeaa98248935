package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openpadel/padel-tracker/internal/domain/match"
	"github.com/openpadel/padel-tracker/internal/domain/player"
	"github.com/openpadel/padel-tracker/internal/platform/cache"
	"github.com/openpadel/padel-tracker/internal/platform/logging"
)

const (
	rankingsCacheKey  = "rankings"
	recentResultLimit = 10
)

type RankingService struct {
	source   RankingSource
	profiles ProfileSource
	archive  match.ArchiveRepository
	identity *player.IdentityResolver
	cache    *cache.Store
	ttl      time.Duration
	logger   *logging.Logger
}

func NewRankingService(
	source RankingSource,
	profiles ProfileSource,
	archive match.ArchiveRepository,
	identity *player.IdentityResolver,
	store *cache.Store,
	ttl time.Duration,
	logger *logging.Logger,
) *RankingService {
	if logger == nil {
		logger = logging.Default()
	}
	return &RankingService{
		source:   source,
		profiles: profiles,
		archive:  archive,
		identity: identity,
		cache:    store,
		ttl:      ttl,
		logger:   logger,
	}
}

// Rankings returns both scraped ranking tables, cached.
func (s *RankingService) Rankings(ctx context.Context) (player.Rankings, error) {
	ctx, span := startUsecaseSpan(ctx, "RankingService.Rankings")
	defer span.End()

	out, err := s.cache.GetOrLoad(ctx, rankingsCacheKey, s.ttl, func(ctx context.Context) (any, error) {
		return s.source.FetchRankings(ctx)
	})
	if err != nil {
		return player.Rankings{}, err
	}

	rankings, ok := out.(player.Rankings)
	if !ok {
		return player.Rankings{}, fmt.Errorf("unexpected cache payload type %T", out)
	}
	return rankings, nil
}

// PlayerProfile assembles the extended view of one player: the scraped
// profile page, the ranking entry matched fuzzily against both tables, and
// recent archived results. The profile degrades: a missing page still
// yields ranking and archive data, and only a player unknown to all three
// sources is a not-found.
func (s *RankingService) PlayerProfile(ctx context.Context, name string) (player.ExtendedProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "RankingService.PlayerProfile")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return player.ExtendedProfile{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	out := player.ExtendedProfile{Player: player.Player{Name: name}}
	found := false

	profile, err := s.profiles.FetchPlayerProfile(ctx, name)
	switch {
	case err == nil:
		out.Player = profile
		found = true
	case errors.Is(err, ErrNotFound):
		s.logger.DebugContext(ctx, "no profile page, continuing with ranking data", "player", name)
	default:
		return player.ExtendedProfile{}, err
	}

	if rankings, err := s.Rankings(ctx); err == nil {
		if entry, ok := s.lookupRanking(rankings, name); ok {
			out.Rank = entry.Rank
			out.Points = entry.Points
			if out.Country == "" {
				out.Country = entry.Country
			}
			if out.ImageURL == "" {
				out.ImageURL = entry.ImageURL
			}
			found = true
		}
	} else {
		s.logger.WarnContext(ctx, "rankings unavailable for profile", "player", name, "error", err)
	}

	recent, err := s.archive.ListByPlayer(ctx, name)
	if err != nil {
		return player.ExtendedProfile{}, err
	}
	for _, m := range recent {
		if !s.identity.TeamContains(m.Team1, name) && !s.identity.TeamContains(m.Team2, name) {
			continue
		}
		out.RecentResults = append(out.RecentResults, m)
		if len(out.RecentResults) == recentResultLimit {
			break
		}
	}
	if len(out.RecentResults) > 0 {
		found = true
	}

	if !found {
		return player.ExtendedProfile{}, fmt.Errorf("%w: player %q", ErrNotFound, name)
	}
	return out, nil
}

func (s *RankingService) lookupRanking(rankings player.Rankings, name string) (player.Player, bool) {
	for _, table := range [][]player.Player{rankings.Men, rankings.Women} {
		for _, entry := range table {
			if s.identity.Same(entry.Name, name) {
				return entry, true
			}
		}
	}
	return player.Player{}, false
}
