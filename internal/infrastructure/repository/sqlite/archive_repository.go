// Package sqlite implements the archive store on a local sqlite database
// through the pure-Go driver.
package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/openpadel/padel-tracker/internal/domain/match"
	"github.com/openpadel/padel-tracker/internal/domain/player"
	qb "github.com/openpadel/padel-tracker/internal/platform/querybuilder"
)

const archivedMatchesTable = "archived_matches"

// Open connects to the archive database file, creating it when absent.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open archive db path=%s: %w", path, err)
	}
	// The driver serializes writes anyway; one connection avoids busy errors.
	db.SetMaxOpenConns(1)
	return db, nil
}

type ArchiveRepository struct {
	db *sqlx.DB
}

func NewArchiveRepository(db *sqlx.DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

var archiveColumns = []string{
	"id", "year", "tournament_id", "tournament_name",
	"team1", "team2", "score", "round", "category", "date", "updated_at",
}

func (r *ArchiveRepository) list(ctx context.Context, conditions ...qb.Condition) ([]match.Match, error) {
	query, args, err := qb.Select(archiveColumns...).From(archivedMatchesTable).
		Where(conditions...).
		OrderBy("date DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select archived matches query: %w", err)
	}

	var rows []archivedMatchModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select archived matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *ArchiveRepository) ListAll(ctx context.Context) ([]match.Match, error) {
	return r.list(ctx)
}

func (r *ArchiveRepository) ListByYear(ctx context.Context, year int) ([]match.Match, error) {
	return r.list(ctx, qb.Eq("year", year))
}

// ListByPlayer is a coarse prefilter: case-insensitive containment in
// either direction per team member. Fuzzy identity resolution stays with
// the caller.
func (r *ArchiveRepository) ListByPlayer(ctx context.Context, name string) ([]match.Match, error) {
	return r.list(ctx, teamContains(player.Normalize(name)))
}

// ListByTeams returns rows mentioning every given player on either side.
func (r *ArchiveRepository) ListByTeams(ctx context.Context, players []string) ([]match.Match, error) {
	conditions := make([]qb.Condition, 0, len(players))
	for _, name := range players {
		conditions = append(conditions, teamContains(player.Normalize(name)))
	}
	return r.list(ctx, conditions...)
}

// teamContains matches a player against either team column with the same
// bidirectional containment the identity resolver uses: the query inside a
// stored name, or a stored name inside the query. Team columns are JSON
// arrays, so each member is compared on its own through json_each.
func teamContains(name string) qb.Condition {
	pattern := "%" + name + "%"
	const memberMatch = "(SELECT 1 FROM json_each(%s) WHERE lower(json_each.value) LIKE ? OR instr(?, lower(json_each.value)) > 0)"
	clause := "(EXISTS " + fmt.Sprintf(memberMatch, "team1") +
		" OR EXISTS " + fmt.Sprintf(memberMatch, "team2") + ")"
	return qb.Expr(clause, pattern, name, pattern, name)
}

// UpsertMatches writes scraped results, keyed by (year, tournament,
// opponents, round). Replays of the same tournament refresh score and date
// instead of duplicating rows.
func (r *ArchiveRepository) UpsertMatches(ctx context.Context, items []match.Match) error {
	if len(items) == 0 {
		return nil
	}

	now := time.Now()
	for _, item := range items {
		row, err := toArchivedModel(item, now)
		if err != nil {
			return fmt.Errorf("encode archived match: %w", err)
		}

		query, args, err := qb.InsertInto(archivedMatchesTable).
			Columns("year", "tournament_id", "tournament_name", "team1", "team2", "score", "round", "category", "date", "updated_at").
			Values(row.Year, row.TournamentID, row.TournamentName, row.Team1, row.Team2, row.Score, row.Round, row.Category, row.Date, row.UpdatedAt).
			Suffix("ON CONFLICT (year, tournament_id, team1, team2, round) DO UPDATE SET score = excluded.score, category = excluded.category, date = excluded.date, updated_at = excluded.updated_at").
			ToSQL()
		if err != nil {
			return fmt.Errorf("build upsert archived match query: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert archived match: %w", err)
		}
	}
	return nil
}
