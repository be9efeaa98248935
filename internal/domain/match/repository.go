package match

import "context"

// ArchiveRepository exposes the durable archive of concluded matches. The
// core only reads it; writes happen in the archive-sync ingestion binary.
//
// ListByPlayer and ListByTeams are coarse prefilters (case-insensitive
// containment on stored names); callers still apply fuzzy identity
// resolution on the returned rows.
type ArchiveRepository interface {
	ListAll(ctx context.Context) ([]Match, error)
	ListByYear(ctx context.Context, year int) ([]Match, error)
	ListByPlayer(ctx context.Context, name string) ([]Match, error)
	ListByTeams(ctx context.Context, players []string) ([]Match, error)
}

// ArchiveWriter is the ingestion-side contract. Kept separate so read paths
// cannot accidentally mutate the archive.
type ArchiveWriter interface {
	UpsertMatches(ctx context.Context, items []Match) error
}
