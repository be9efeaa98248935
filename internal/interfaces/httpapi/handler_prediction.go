package httpapi

import (
	"net/http"
)

type predictionRequest struct {
	Team1 []string `validate:"required,min=1,max=2,dive,required"`
	Team2 []string `validate:"required,min=1,max=2,dive,required"`
	Rank1 int      `validate:"gte=0"`
	Rank2 int      `validate:"gte=0"`
}

func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Predict")
	defer span.End()

	team1 := queryList(r, "team1")
	team2 := queryList(r, "team2")
	rank1, err := intQuery(r, "rank1")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	rank2, err := intQuery(r, "rank2")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, predictionRequest{Team1: team1, Team2: team2, Rank1: rank1, Rank2: rank2}); err != nil {
		writeError(ctx, w, err)
		return
	}

	prediction, err := h.predictionService.Predict(ctx, team1, team2, rank1, rank2)
	if err != nil {
		h.logger.WarnContext(ctx, "prediction failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, prediction)
}
