// archive-sync scrapes the current tournaments and writes their concluded
// matches into the local archive database.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/openpadel/padel-tracker/external/padelfip"
	"github.com/openpadel/padel-tracker/external/scorewidget"
	"github.com/openpadel/padel-tracker/internal/config"
	"github.com/openpadel/padel-tracker/internal/infrastructure/repository/sqlite"
	"github.com/openpadel/padel-tracker/internal/platform/cache"
	"github.com/openpadel/padel-tracker/internal/platform/logging"
	"github.com/openpadel/padel-tracker/internal/platform/resilience"
	"github.com/openpadel/padel-tracker/internal/usecase"
)

func main() {
	var (
		year    = flag.Int("year", 0, "season year stamped on archived rows (default: current year)")
		dbPath  = flag.String("db", "", "archive sqlite path (default: ARCHIVE_DB_PATH or padel-archive.db)")
		dryRun  = flag.Bool("dry-run", false, "scrape and report without writing to the archive")
		workers = flag.Int("workers", 0, "concurrent tournament workers (default: 4)")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if *dbPath != "" {
		cfg.ArchiveDBPath = *dbPath
	}

	logger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.ArchiveDBPath)
	if err != nil {
		logger.Error("open archive db", "path", cfg.ArchiveDBPath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()
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
	tournaments := usecase.NewTournamentService(source, store, cfg.TournamentCacheTTL, logger)
	sync := usecase.NewArchiveSyncService(tournaments, resolver, archive, logger)

	result, err := sync.Run(ctx, usecase.ArchiveSyncInput{
		Year:       *year,
		DryRun:     *dryRun,
		MaxWorkers: *workers,
	})
	if err != nil {
		logger.Error("archive sync failed", "error", err)
		os.Exit(1)
	}

	for _, task := range result.Tasks {
		logger.Info("tournament synced",
			"tournament", task.TournamentID,
			"name", task.TournamentName,
			"status", task.Status,
			"matches", task.Matches,
			"durationMs", task.DurationMs,
			"message", task.Message,
		)
	}
	logger.Info("archive sync finished",
		"tournaments", result.TournamentCount,
		"workers", result.WorkerCount,
		"success", result.SuccessCount,
		"skipped", result.SkippedCount,
		"failed", result.FailedCount,
		"matchesUpserted", result.MatchesUpserted,
		"dryRun", result.DryRun,
	)

	if result.FailedCount > 0 && result.SuccessCount == 0 {
		os.Exit(1)
	}
}
