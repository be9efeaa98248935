package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/tournaments", handler.ListTournaments)
	mux.HandleFunc("GET /v1/tournaments/matches", handler.ListTournamentMatches)
	mux.HandleFunc("GET /v1/tournaments/search", handler.SearchMatchesByPlayers)

	mux.HandleFunc("GET /v1/rankings", handler.Rankings)
	mux.HandleFunc("GET /v1/players/{name}", handler.PlayerProfile)
	mux.HandleFunc("GET /v1/players/{name}/stats", handler.PlayerStats)
	mux.HandleFunc("GET /v1/players/{name}/partners", handler.PlayerPartners)

	mux.HandleFunc("GET /v1/matches/stats", handler.MatchStats)

	mux.HandleFunc("GET /v1/stats/head-to-head", handler.HeadToHead)
	mux.HandleFunc("GET /v1/stats/common-opponents", handler.CommonOpponents)
	mux.HandleFunc("GET /v1/archive/matches", handler.ArchivedMatches)

	mux.HandleFunc("GET /v1/predictions", handler.Predict)
}
