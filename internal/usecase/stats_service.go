package usecase

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/openpadel/padel-tracker/internal/domain/match"
	"github.com/openpadel/padel-tracker/internal/domain/player"
	"github.com/openpadel/padel-tracker/internal/domain/stats"
	"github.com/openpadel/padel-tracker/internal/domain/tournament"
	"github.com/openpadel/padel-tracker/internal/platform/logging"
)

// YearAll selects the whole archive instead of a single season.
const YearAll = "all"

// Clutch score weighting: the three-set rate dominates, tiebreaks refine.
// Both inputs are percentages, so the composite stays within [0,100] and
// grows with either rate.
const (
	clutchThreeSetWeight = 0.6
	clutchTiebreakWeight = 0.4
	neutralRate          = 50.0
)

// StatsService derives every aggregate from the archive on demand. It only
// reads the archive; nothing here is persisted.
type StatsService struct {
	archive  match.ArchiveRepository
	identity *player.IdentityResolver
	logger   *logging.Logger
}

func NewStatsService(archive match.ArchiveRepository, identity *player.IdentityResolver, logger *logging.Logger) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}
	return &StatsService{archive: archive, identity: identity, logger: logger}
}

// HeadToHead tallies every archived meeting of the two teams, in either
// orientation, reported from team1's perspective. Swapping the arguments
// swaps the win counts.
func (s *StatsService) HeadToHead(ctx context.Context, team1, team2 []string, year string) (stats.H2HResult, error) {
	ctx, span := startUsecaseSpan(ctx, "StatsService.HeadToHead")
	defer span.End()

	if len(team1) == 0 || len(team2) == 0 {
		return stats.H2HResult{}, fmt.Errorf("%w: both teams are required", ErrInvalidInput)
	}
	yearFilter, err := parseYearFilter(year)
	if err != nil {
		return stats.H2HResult{}, err
	}

	// Every queried player must appear on some team of a meeting, so the
	// repository's per-player prefilter narrows the scan; the resolver
	// still decides actual team equality below.
	everyone := make([]string, 0, len(team1)+len(team2))
	everyone = append(everyone, team1...)
	everyone = append(everyone, team2...)
	rows, err := s.archive.ListByTeams(ctx, everyone)
	if err != nil {
		return stats.H2HResult{}, err
	}

	out := stats.H2HResult{Matches: []match.Match{}}
	setSum, gameSum, lengthSamples := 0, 0, 0

	for _, m := range rows {
		if yearFilter != 0 && m.Year != yearFilter {
			continue
		}

		straight := s.identity.TeamsEqual(m.Team1, team1) && s.identity.TeamsEqual(m.Team2, team2)
		swapped := !straight && s.identity.TeamsEqual(m.Team1, team2) && s.identity.TeamsEqual(m.Team2, team1)
		if !straight && !swapped {
			continue
		}

		out.TotalMatches++
		out.Matches = append(out.Matches, m)

		winner := m.Winner()
		if swapped && winner != 0 {
			winner = 3 - winner
		}

		big := m.Tournament != nil && tournament.IsBigTier(m.Tournament.Name)
		if big {
			out.BigMatchStats.TotalMatches++
		}
		switch winner {
		case 1:
			out.Team1Wins++
			if big {
				out.BigMatchStats.Team1Wins++
			}
		case 2:
			out.Team2Wins++
			if big {
				out.BigMatchStats.Team2Wins++
			}
		}

		g1, g2 := m.TotalGames()
		if swapped {
			g1, g2 = g2, g1
		}
		out.TotalGamesStats.Team1Games += g1
		out.TotalGamesStats.Team2Games += g2

		if sets := len(m.SetScores()); sets > 0 {
			setSum += sets
			gameSum += g1 + g2
			lengthSamples++
		}
	}

	if lengthSamples > 0 {
		out.AverageMatchLength.AvgSets = float64(setSum) / float64(lengthSamples)
		out.AverageMatchLength.AvgGames = float64(gameSum) / float64(lengthSamples)
	}
	return out, nil
}

type opponentTally struct {
	opponent []string
	wins     int
	losses   int
}

// CommonOpponents reports every team both query teams have faced, with each
// side's win/loss record against it.
func (s *StatsService) CommonOpponents(ctx context.Context, team1, team2 []string) ([]stats.CommonOpponentStat, error) {
	ctx, span := startUsecaseSpan(ctx, "StatsService.CommonOpponents")
	defer span.End()

	if len(team1) == 0 || len(team2) == 0 {
		return nil, fmt.Errorf("%w: both teams are required", ErrInvalidInput)
	}

	rows, err := s.archive.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	team1Opponents := s.collectOpponents(rows, team1)
	team2Opponents := s.collectOpponents(rows, team2)

	out := make([]stats.CommonOpponentStat, 0, len(team1Opponents))
	for key, first := range team1Opponents {
		second, shared := team2Opponents[key]
		if !shared {
			continue
		}
		out = append(out, stats.CommonOpponentStat{
			Opponent:    first.opponent,
			Team1Wins:   first.wins,
			Team1Losses: first.losses,
			Team2Wins:   second.wins,
			Team2Losses: second.losses,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		ei := out[i].Team1Wins + out[i].Team1Losses + out[i].Team2Wins + out[i].Team2Losses
		ej := out[j].Team1Wins + out[j].Team1Losses + out[j].Team2Wins + out[j].Team2Losses
		if ei != ej {
			return ei > ej
		}
		return teamKey(out[i].Opponent) < teamKey(out[j].Opponent)
	})
	return out, nil
}

func (s *StatsService) collectOpponents(rows []match.Match, team []string) map[string]*opponentTally {
	out := make(map[string]*opponentTally, 16)
	for _, m := range rows {
		var opponent []string
		var won, decided bool

		switch {
		case s.identity.TeamsEqual(m.Team1, team):
			opponent = m.Team2
			won = m.Winner() == 1
			decided = m.Winner() != 0
		case s.identity.TeamsEqual(m.Team2, team):
			opponent = m.Team1
			won = m.Winner() == 2
			decided = m.Winner() != 0
		default:
			continue
		}
		if !decided {
			continue
		}

		key := teamKey(opponent)
		tally, ok := out[key]
		if !ok {
			tally = &opponentTally{opponent: opponent}
			out[key] = tally
		}
		if won {
			tally.wins++
		} else {
			tally.losses++
		}
	}
	return out
}

// teamKey is an order-insensitive identity for a pair of names.
func teamKey(team []string) string {
	normalized := make([]string, 0, len(team))
	for _, name := range team {
		normalized = append(normalized, player.Normalize(name))
	}
	sort.Strings(normalized)
	return strings.Join(normalized, "|")
}

// PlayerStats aggregates one player's archived record. An unknown player
// yields the zero value, not an error.
func (s *StatsService) PlayerStats(ctx context.Context, name, year string) (stats.PlayerStats, error) {
	ctx, span := startUsecaseSpan(ctx, "StatsService.PlayerStats")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return stats.PlayerStats{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}
	yearFilter, err := parseYearFilter(year)
	if err != nil {
		return stats.PlayerStats{}, err
	}

	rows, err := s.archive.ListByPlayer(ctx, name)
	if err != nil {
		return stats.PlayerStats{}, err
	}

	out := stats.PlayerStats{Partners: []stats.PartnerStat{}, RecentMatches: []match.Match{}}
	partnerTallies := make(map[string]*stats.PartnerStat, 8)
	threeSetWins, threeSetTotal := 0, 0
	tiebreakWins, tiebreakTotal := 0, 0
	streakDone := false

	for _, m := range rows {
		if yearFilter != 0 && m.Year != yearFilter {
			continue
		}

		onTeam1 := s.identity.TeamContains(m.Team1, name)
		onTeam2 := !onTeam1 && s.identity.TeamContains(m.Team2, name)
		if !onTeam1 && !onTeam2 {
			continue
		}

		out.TotalMatches++
		if len(out.RecentMatches) < recentResultLimit {
			out.RecentMatches = append(out.RecentMatches, m)
		}

		team := m.Team1
		if onTeam2 {
			team = m.Team2
		}
		if partner, ok := s.identity.Partner(team, name); ok {
			key := player.Normalize(partner)
			tally, exists := partnerTallies[key]
			if !exists {
				tally = &stats.PartnerStat{Name: partner}
				partnerTallies[key] = tally
			}
			tally.Matches++
		}

		winner := m.Winner()
		decided := winner != 0
		won := (winner == 1 && onTeam1) || (winner == 2 && onTeam2)

		g1, g2 := m.GoldenSets()
		if onTeam2 {
			g1, g2 = g2, g1
		}
		out.GoldenSetsWon += g1
		out.GoldenSetsLost += g2

		if m.IsFinal() {
			out.Finals++
			if won {
				out.Titles++
			}
		}

		if !decided {
			continue
		}
		if won {
			out.Wins++
			if partner, ok := s.identity.Partner(team, name); ok {
				partnerTallies[player.Normalize(partner)].Wins++
			}
		} else {
			out.Losses++
		}

		// Rows arrive newest first, so the streak is the run of identical
		// outcomes at the front.
		if !streakDone {
			switch {
			case out.CurrentStreak == 0:
				if won {
					out.CurrentStreak = 1
				} else {
					out.CurrentStreak = -1
				}
			case out.CurrentStreak > 0 && won:
				out.CurrentStreak++
			case out.CurrentStreak < 0 && !won:
				out.CurrentStreak--
			default:
				streakDone = true
			}
		}

		if m.IsThreeSetter() {
			threeSetTotal++
			if won {
				threeSetWins++
			}
		}
		if m.HasTiebreak() {
			tiebreakTotal++
			if won {
				tiebreakWins++
			}
		}
	}

	if out.TotalMatches == 0 {
		return stats.PlayerStats{}, nil
	}

	if decided := out.Wins + out.Losses; decided > 0 {
		out.WinRate = percent(out.Wins, decided)
	}
	out.ThreeSetWinRate = percent(threeSetWins, threeSetTotal)
	out.TiebreakWinRate = percent(tiebreakWins, tiebreakTotal)
	out.ClutchScore = clutchScore(threeSetWins, threeSetTotal, tiebreakWins, tiebreakTotal)

	for _, tally := range partnerTallies {
		if tally.Matches > 0 {
			tally.WinRate = percent(tally.Wins, tally.Matches)
		}
		out.Partners = append(out.Partners, *tally)
	}
	sort.SliceStable(out.Partners, func(i, j int) bool {
		if out.Partners[i].Matches != out.Partners[j].Matches {
			return out.Partners[i].Matches > out.Partners[j].Matches
		}
		if out.Partners[i].WinRate != out.Partners[j].WinRate {
			return out.Partners[i].WinRate > out.Partners[j].WinRate
		}
		return out.Partners[i].Name < out.Partners[j].Name
	})

	return out, nil
}

// Partners returns the player's teammate breakdown, most-played first.
func (s *StatsService) Partners(ctx context.Context, name string) ([]stats.PartnerStat, error) {
	playerStats, err := s.PlayerStats(ctx, name, YearAll)
	if err != nil {
		return nil, err
	}
	return playerStats.Partners, nil
}

// AllArchivedMatches exposes the raw archive, newest first.
func (s *StatsService) AllArchivedMatches(ctx context.Context) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "StatsService.AllArchivedMatches")
	defer span.End()
	return s.archive.ListAll(ctx)
}

func parseYearFilter(year string) (int, error) {
	year = strings.ToLower(strings.TrimSpace(year))
	if year == "" || year == YearAll {
		return 0, nil
	}
	numeric, err := strconv.Atoi(year)
	if err != nil {
		return 0, fmt.Errorf("%w: year must be a number or %q", ErrInvalidInput, YearAll)
	}
	return numeric, nil
}

func percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// clutchScore blends the two pressure rates. A missing sample contributes a
// neutral rate so a player with no tiebreaks is not punished for it.
func clutchScore(threeSetWins, threeSetTotal, tiebreakWins, tiebreakTotal int) float64 {
	threeSetRate := neutralRate
	if threeSetTotal > 0 {
		threeSetRate = percent(threeSetWins, threeSetTotal)
	}
	tiebreakRate := neutralRate
	if tiebreakTotal > 0 {
		tiebreakRate = percent(tiebreakWins, tiebreakTotal)
	}
	return clutchThreeSetWeight*threeSetRate + clutchTiebreakWeight*tiebreakRate
}
