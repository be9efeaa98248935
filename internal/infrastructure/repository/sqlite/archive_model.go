package sqlite

import (
	"database/sql"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/openpadel/padel-tracker/internal/domain/match"
)

// archivedMatchModel is the table row. Team and score lists are stored as
// JSON text columns; sqlite has no array type and the lists are only ever
// read back whole.
type archivedMatchModel struct {
	ID             int64        `db:"id"`
	Year           int          `db:"year"`
	TournamentID   string       `db:"tournament_id"`
	TournamentName string       `db:"tournament_name"`
	Team1          string       `db:"team1"`
	Team2          string       `db:"team2"`
	Score          string       `db:"score"`
	Round          string       `db:"round"`
	Category       string       `db:"category"`
	Date           sql.NullTime `db:"date"`
	UpdatedAt      time.Time    `db:"updated_at"`
}

func toArchivedModel(m match.Match, now time.Time) (archivedMatchModel, error) {
	team1, err := sonic.MarshalString(m.Team1)
	if err != nil {
		return archivedMatchModel{}, err
	}
	team2, err := sonic.MarshalString(m.Team2)
	if err != nil {
		return archivedMatchModel{}, err
	}
	score, err := sonic.MarshalString(m.Score)
	if err != nil {
		return archivedMatchModel{}, err
	}

	row := archivedMatchModel{
		Year:      m.Year,
		Team1:     team1,
		Team2:     team2,
		Score:     score,
		Round:     strings.TrimSpace(m.Round),
		Category:  m.Category,
		UpdatedAt: now.UTC(),
	}
	if m.Tournament != nil {
		row.TournamentID = m.Tournament.ID
		row.TournamentName = m.Tournament.Name
	}
	if m.Date != nil {
		row.Date = sql.NullTime{Time: m.Date.UTC(), Valid: true}
	}
	return row, nil
}

func (r archivedMatchModel) toDomain() match.Match {
	out := match.Match{
		Year:     r.Year,
		Round:    r.Round,
		Category: r.Category,
		Archived: true,
	}
	// Decode failures leave the affected list empty; a half-readable row
	// beats dropping the archive read.
	_ = sonic.UnmarshalString(r.Team1, &out.Team1)
	_ = sonic.UnmarshalString(r.Team2, &out.Team2)
	_ = sonic.UnmarshalString(r.Score, &out.Score)

	if r.TournamentID != "" || r.TournamentName != "" {
		out.Tournament = &match.Ref{ID: r.TournamentID, Name: r.TournamentName}
	}
	if r.Date.Valid {
		date := r.Date.Time.UTC()
		out.Date = &date
	}
	return out
}
