package usecase

import (
	"context"
	"fmt"

	"github.com/openpadel/padel-tracker/internal/domain/stats"
	"github.com/openpadel/padel-tracker/internal/platform/logging"
)

// Signal weights for the combined estimate. History outweighs the current
// rank because rank lags form.
const (
	predictionH2HWeight  = 0.7
	predictionRankWeight = 0.3
)

// PredictionService estimates the outcome of a hypothetical meeting. It
// degrades through a fixed ladder: head-to-head plus ranks, head-to-head
// alone, ranks alone, and finally a neutral answer when nothing is known.
type PredictionService struct {
	stats  *StatsService
	logger *logging.Logger
}

func NewPredictionService(statsService *StatsService, logger *logging.Logger) *PredictionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PredictionService{stats: statsService, logger: logger}
}

// Predict combines archived head-to-head history with team ranks. Ranks are
// optional; pass zero (or negative) when unknown.
func (s *PredictionService) Predict(ctx context.Context, team1, team2 []string, rank1, rank2 int) (stats.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "PredictionService.Predict")
	defer span.End()

	if len(team1) == 0 || len(team2) == 0 {
		return stats.Prediction{}, fmt.Errorf("%w: both teams are required", ErrInvalidInput)
	}

	h2h, err := s.stats.HeadToHead(ctx, team1, team2, YearAll)
	if err != nil {
		return stats.Prediction{}, err
	}

	decided := h2h.Team1Wins + h2h.Team2Wins
	hasH2H := decided > 0
	hasRanks := rank1 > 0 && rank2 > 0

	var team1Signal float64
	var basis string
	switch {
	case hasH2H && hasRanks:
		basis = stats.PredictionBasisH2HAndRank
		team1Signal = predictionH2HWeight*h2hRatio(h2h.Team1Wins, decided) + predictionRankWeight*rankSignal(rank1, rank2)
	case hasH2H:
		basis = stats.PredictionBasisH2H
		team1Signal = h2hRatio(h2h.Team1Wins, decided)
	case hasRanks:
		basis = stats.PredictionBasisRank
		team1Signal = rankSignal(rank1, rank2)
	default:
		return stats.Prediction{Basis: stats.PredictionBasisNone}, nil
	}

	out := stats.Prediction{Basis: basis}
	switch {
	case team1Signal > 0.5:
		out.FavoredTeam = team1
		out.Confidence = team1Signal * 100
	case team1Signal < 0.5:
		out.FavoredTeam = team2
		out.Confidence = (1 - team1Signal) * 100
	default:
		// A dead-even signal still names a favorite so callers always get
		// one when a basis exists; lower rank breaks the tie.
		out.FavoredTeam = team1
		if hasRanks && rank2 < rank1 {
			out.FavoredTeam = team2
		}
		out.Confidence = 50
	}
	return out, nil
}

func h2hRatio(wins, decided int) float64 {
	return float64(wins) / float64(decided)
}

// rankSignal maps two ranks onto team1's share of the combined strength. A
// lower rank means a stronger team, so team1's share is rank2's portion.
func rankSignal(rank1, rank2 int) float64 {
	return float64(rank2) / float64(rank1+rank2)
}
