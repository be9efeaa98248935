package httpapi

import (
	"net/http"
	"strings"
)

type playerNameRequest struct {
	Name string `validate:"required,max=120"`
}

func (h *Handler) Rankings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Rankings")
	defer span.End()

	rankings, err := h.rankingService.Rankings(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "rankings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rankings)
}

func (h *Handler) PlayerProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlayerProfile")
	defer span.End()

	name := strings.TrimSpace(r.PathValue("name"))
	if err := h.validateRequest(ctx, playerNameRequest{Name: name}); err != nil {
		writeError(ctx, w, err)
		return
	}

	profile, err := h.rankingService.PlayerProfile(ctx, name)
	if err != nil {
		h.logger.WarnContext(ctx, "player profile failed", "player", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profile)
}

func (h *Handler) PlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlayerStats")
	defer span.End()

	name := strings.TrimSpace(r.PathValue("name"))
	if err := h.validateRequest(ctx, playerNameRequest{Name: name}); err != nil {
		writeError(ctx, w, err)
		return
	}

	year := r.URL.Query().Get("year")
	playerStats, err := h.statsService.PlayerStats(ctx, name, year)
	if err != nil {
		h.logger.WarnContext(ctx, "player stats failed", "player", name, "year", year, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerStats)
}

func (h *Handler) PlayerPartners(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlayerPartners")
	defer span.End()

	name := strings.TrimSpace(r.PathValue("name"))
	if err := h.validateRequest(ctx, playerNameRequest{Name: name}); err != nil {
		writeError(ctx, w, err)
		return
	}

	partners, err := h.statsService.Partners(ctx, name)
	if err != nil {
		h.logger.WarnContext(ctx, "player partners failed", "player", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, partners)
}
