package httpapi

import (
	"net/http"
	"strings"
)

type tournamentMatchesRequest struct {
	URL string `validate:"required,url"`
}

type playerSearchRequest struct {
	Players []string `validate:"required,min=1,dive,required"`
}

func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournaments")
	defer span.End()

	items, err := h.tournamentService.ListTournaments(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list tournaments failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTournamentMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTournamentMatches")
	defer span.End()

	tournamentURL := strings.TrimSpace(r.URL.Query().Get("url"))
	if err := h.validateRequest(ctx, tournamentMatchesRequest{URL: tournamentURL}); err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.matchService.ListMatches(ctx, tournamentURL)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "url", tournamentURL, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matches)
}

func (h *Handler) SearchMatchesByPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchMatchesByPlayers")
	defer span.End()

	players := queryList(r, "players")
	if err := h.validateRequest(ctx, playerSearchRequest{Players: players}); err != nil {
		writeError(ctx, w, err)
		return
	}

	matches, err := h.matchService.SearchMatchesByPlayers(ctx, players)
	if err != nil {
		h.logger.WarnContext(ctx, "player search failed", "players", strings.Join(players, ","), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matches)
}
