package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/openpadel/padel-tracker/internal/platform/cache"
	"github.com/openpadel/padel-tracker/internal/platform/logging"
	"github.com/openpadel/padel-tracker/internal/usecase"
)

type Handler struct {
	tournamentService *usecase.TournamentService
	matchService      *usecase.MatchService
	rankingService    *usecase.RankingService
	statsService      *usecase.StatsService
	predictionService *usecase.PredictionService
	store             *cache.Store
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	tournamentService *usecase.TournamentService,
	matchService *usecase.MatchService,
	rankingService *usecase.RankingService,
	statsService *usecase.StatsService,
	predictionService *usecase.PredictionService,
	store *cache.Store,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		tournamentService: tournamentService,
		matchService:      matchService,
		rankingService:    rankingService,
		statsService:      statsService,
		predictionService: predictionService,
		store:             store,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	cached := 0
	if h.store != nil {
		cached = h.store.Len()
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"status":       "ok",
		"cacheEntries": cached,
	})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// queryList splits a comma-separated query value into trimmed names.
func queryList(r *http.Request, key string) []string {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// intQuery parses an optional integer query value; absent returns zero.
func intQuery(r *http.Request, key string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return value, nil
}
