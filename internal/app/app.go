// Package app assembles the service: scrape clients, archive storage, the
// usecase services, and the HTTP server.
package app

import (
	"fmt"
	"net/http"

	"github.com/openpadel/padel-tracker/external/padelfip"
	"github.com/openpadel/padel-tracker/external/scorewidget"
	"github.com/openpadel/padel-tracker/internal/config"
	"github.com/openpadel/padel-tracker/internal/domain/match"
	"github.com/openpadel/padel-tracker/internal/domain/player"
	"github.com/openpadel/padel-tracker/internal/infrastructure/repository/sqlite"
	"github.com/openpadel/padel-tracker/internal/interfaces/httpapi"
	"github.com/openpadel/padel-tracker/internal/platform/cache"
	"github.com/openpadel/padel-tracker/internal/platform/logging"
	"github.com/openpadel/padel-tracker/internal/platform/resilience"
	"github.com/openpadel/padel-tracker/internal/usecase"
)

// NewHTTPServer wires the full stack and returns the server plus a cleanup
// function releasing the archive database.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	db, err := sqlite.Open(cfg.ArchiveDBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open archive db: %w", err)
	}
	closeArchive := db.Close
	archive := sqlite.NewArchiveRepository(db)

	source := padelfip.NewClient(padelfip.ClientConfig{
		BaseURL:   cfg.SourceBaseURL,
		UserAgent: cfg.SourceUserAgent,
		Timeout:   cfg.SourceTimeout,
		Logger:    logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ScrapeCircuitEnabled,
			FailureThreshold: cfg.ScrapeCircuitFailureCount,
			OpenTimeout:      cfg.ScrapeCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ScrapeCircuitHalfOpenMaxReq,
		},
	})
	widget := scorewidget.NewClient(scorewidget.ClientConfig{
		Host:    cfg.WidgetHost,
		Fetcher: source,
		Logger:  logger,
	})
	resolver := scorewidget.NewResolver(widget, logger)

	store := cache.NewStore()
	identity := player.NewIdentityResolver(cfg.PlayerAliases)

	tournamentService := usecase.NewTournamentService(source, store, cfg.TournamentCacheTTL, logger)
	matchService := usecase.NewMatchService(
		resolver,
		widget,
		tournamentService,
		identity,
		store,
		cfg.MatchCacheTTL,
		cfg.MatchStatsCacheTTL,
		logger,
	)
	rankingService := usecase.NewRankingService(source, source, archive, identity, store, cfg.RankingCacheTTL, logger)
	statsService := usecase.NewStatsService(archive, identity, logger)
	predictionService := usecase.NewPredictionService(statsService, logger)

	handler := httpapi.NewHandler(
		tournamentService,
		matchService,
		rankingService,
		statsService,
		predictionService,
		store,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		_ = closeArchive()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, closeArchive, nil
}

var _ match.ArchiveRepository = (*sqlite.ArchiveRepository)(nil)
