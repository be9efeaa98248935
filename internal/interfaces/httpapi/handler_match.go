package httpapi

import (
	"net/http"
	"strings"
)

type matchStatsRequest struct {
	MatchID      string `validate:"required"`
	TournamentID string `validate:"required"`
	Year         int    `validate:"omitempty,gte=2000,lte=2100"`
}

func (h *Handler) MatchStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MatchStats")
	defer span.End()

	matchID := strings.TrimSpace(r.URL.Query().Get("matchId"))
	tournamentID := strings.TrimSpace(r.URL.Query().Get("tournamentId"))
	organization := strings.TrimSpace(r.URL.Query().Get("organization"))
	year, err := intQuery(r, "year")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, matchStatsRequest{MatchID: matchID, TournamentID: tournamentID, Year: year}); err != nil {
		writeError(ctx, w, err)
		return
	}

	table, err := h.matchService.MatchStats(ctx, matchID, year, tournamentID, organization)
	if err != nil {
		h.logger.WarnContext(ctx, "match stats failed", "match_id", matchID, "tournament_id", tournamentID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, table)
}
