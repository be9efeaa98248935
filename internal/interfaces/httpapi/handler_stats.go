package httpapi

import (
	"net/http"
)

type headToHeadRequest struct {
	Team1 []string `validate:"required,min=1,max=2,dive,required"`
	Team2 []string `validate:"required,min=1,max=2,dive,required"`
}

func (h *Handler) HeadToHead(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.HeadToHead")
	defer span.End()

	team1 := queryList(r, "team1")
	team2 := queryList(r, "team2")
	if err := h.validateRequest(ctx, headToHeadRequest{Team1: team1, Team2: team2}); err != nil {
		writeError(ctx, w, err)
		return
	}

	year := r.URL.Query().Get("year")
	result, err := h.statsService.HeadToHead(ctx, team1, team2, year)
	if err != nil {
		h.logger.WarnContext(ctx, "head to head failed", "year", year, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) CommonOpponents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CommonOpponents")
	defer span.End()

	team1 := queryList(r, "team1")
	team2 := queryList(r, "team2")
	if err := h.validateRequest(ctx, headToHeadRequest{Team1: team1, Team2: team2}); err != nil {
		writeError(ctx, w, err)
		return
	}

	shared, err := h.statsService.CommonOpponents(ctx, team1, team2)
	if err != nil {
		h.logger.WarnContext(ctx, "common opponents failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, shared)
}

func (h *Handler) ArchivedMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ArchivedMatches")
	defer span.End()

	matches, err := h.statsService.AllArchivedMatches(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "archive listing failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matches)
}
