package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/openpadel/padel-tracker/internal/domain/match"
	"github.com/openpadel/padel-tracker/internal/domain/tournament"
	"github.com/openpadel/padel-tracker/internal/platform/logging"
)

const (
	archiveSyncStatusSuccess = "success"
	archiveSyncStatusSkipped = "skipped"
	archiveSyncStatusFailed  = "failed"

	defaultArchiveSyncWorkers = 4
)

type ArchiveSyncInput struct {
	// Year stamps archived rows; zero means the current year.
	Year       int
	DryRun     bool
	MaxWorkers int
}

type ArchiveSyncTaskResult struct {
	TournamentID   string `json:"tournamentId"`
	TournamentName string `json:"tournamentName"`
	Matches        int    `json:"matches"`
	Status         string `json:"status"`
	Message        string `json:"message,omitempty"`
	DurationMs     int64  `json:"durationMs"`
}

type ArchiveSyncResult struct {
	TournamentCount int                     `json:"tournamentCount"`
	WorkerCount     int                     `json:"workerCount"`
	SuccessCount    int                     `json:"successCount"`
	SkippedCount    int                     `json:"skippedCount"`
	FailedCount     int                     `json:"failedCount"`
	MatchesUpserted int                     `json:"matchesUpserted"`
	DryRun          bool                    `json:"dryRun"`
	Tasks           []ArchiveSyncTaskResult `json:"tasks"`
}

// ArchiveSyncService scrapes every current tournament and writes its
// concluded matches into the archive. One tournament failing never stops
// the run; it is reported in the per-task results instead.
type ArchiveSyncService struct {
	tournaments *TournamentService
	source      MatchSource
	writer      match.ArchiveWriter
	logger      *logging.Logger
}

func NewArchiveSyncService(
	tournaments *TournamentService,
	source MatchSource,
	writer match.ArchiveWriter,
	logger *logging.Logger,
) *ArchiveSyncService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ArchiveSyncService{
		tournaments: tournaments,
		source:      source,
		writer:      writer,
		logger:      logger,
	}
}

func (s *ArchiveSyncService) Run(ctx context.Context, input ArchiveSyncInput) (ArchiveSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "ArchiveSyncService.Run")
	defer span.End()

	year := input.Year
	if year <= 0 {
		year = time.Now().UTC().Year()
	}

	targets, err := s.tournaments.ListTournaments(ctx)
	if err != nil {
		return ArchiveSyncResult{}, err
	}

	workerCount := normalizeArchiveSyncWorkers(input.MaxWorkers, len(targets))
	result := ArchiveSyncResult{
		TournamentCount: len(targets),
		WorkerCount:     workerCount,
		DryRun:          input.DryRun,
		Tasks:           make([]ArchiveSyncTaskResult, 0, len(targets)),
	}
	if len(targets) == 0 {
		return result, nil
	}

	rows := make(chan ArchiveSyncTaskResult, len(targets))

	var successCount atomic.Int32
	var skippedCount atomic.Int32
	var failedCount atomic.Int32
	var upsertedCount atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return ArchiveSyncResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, target := range targets {
		target := target
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := s.syncTournament(ctx, target, year, input.DryRun)
			row.DurationMs = time.Since(start).Milliseconds()

			switch row.Status {
			case archiveSyncStatusSuccess:
				successCount.Add(1)
				upsertedCount.Add(int32(row.Matches))
			case archiveSyncStatusSkipped:
				skippedCount.Add(1)
			default:
				failedCount.Add(1)
			}

			rows <- row
		}); err != nil {
			workers.Done()
			return ArchiveSyncResult{}, fmt.Errorf("submit tournament to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Tasks = append(result.Tasks, row)
	}
	sort.SliceStable(result.Tasks, func(i, j int) bool {
		return result.Tasks[i].TournamentID < result.Tasks[j].TournamentID
	})

	result.SuccessCount = int(successCount.Load())
	result.SkippedCount = int(skippedCount.Load())
	result.FailedCount = int(failedCount.Load())
	result.MatchesUpserted = int(upsertedCount.Load())
	return result, nil
}

func (s *ArchiveSyncService) syncTournament(ctx context.Context, target tournament.Tournament, year int, dryRun bool) ArchiveSyncTaskResult {
	row := ArchiveSyncTaskResult{TournamentID: target.ID, TournamentName: target.Name}

	matches, err := s.source.FetchMatches(ctx, target)
	if err != nil {
		s.logger.WarnContext(ctx, "archive sync tournament failed", "tournament", target.ID, "error", err)
		row.Status = archiveSyncStatusFailed
		row.Message = err.Error()
		return row
	}

	concluded := concludedMatches(matches, target, year)
	row.Matches = len(concluded)
	if len(concluded) == 0 {
		row.Status = archiveSyncStatusSkipped
		row.Message = "no concluded matches"
		return row
	}

	if dryRun {
		row.Status = archiveSyncStatusSuccess
		row.Message = "dry run"
		return row
	}

	if err := s.writer.UpsertMatches(ctx, concluded); err != nil {
		s.logger.WarnContext(ctx, "archive sync upsert failed", "tournament", target.ID, "error", err)
		row.Status = archiveSyncStatusFailed
		row.Message = err.Error()
		return row
	}

	row.Status = archiveSyncStatusSuccess
	return row
}

// concludedMatches keeps only decided results and stamps the archive
// identity fields.
func concludedMatches(matches []match.Match, target tournament.Tournament, year int) []match.Match {
	out := make([]match.Match, 0, len(matches))
	for _, m := range matches {
		if m.Upcoming || m.Winner() == 0 {
			continue
		}
		if m.Year == 0 {
			m.Year = year
		}
		if m.Tournament == nil {
			m.Tournament = &match.Ref{Name: target.Name, ID: target.ID}
		}
		if m.Date == nil {
			m.Date = target.ParsedDate
		}
		m.Archived = true
		out = append(out, m)
	}
	return out
}

func normalizeArchiveSyncWorkers(requested, taskCount int) int {
	workers := requested
	if workers <= 0 {
		workers = defaultArchiveSyncWorkers
	}
	if taskCount > 0 && workers > taskCount {
		workers = taskCount
	}
	return workers
}
