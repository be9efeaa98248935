// Package memory provides an in-memory archive store mirroring the sqlite
// repository's semantics. Used by tests and for running without a database
// file.
package memory

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/openpadel/padel-tracker/internal/domain/match"
	"github.com/openpadel/padel-tracker/internal/domain/player"
)

type ArchiveRepository struct {
	mu    sync.RWMutex
	items []match.Match
}

func NewArchiveRepository(seed ...match.Match) *ArchiveRepository {
	r := &ArchiveRepository{}
	for _, item := range seed {
		item.Archived = true
		r.items = append(r.items, item)
	}
	return r
}

func (r *ArchiveRepository) ListAll(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedCopy(r.items, nil), nil
}

func (r *ArchiveRepository) ListByYear(_ context.Context, year int) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedCopy(r.items, func(m match.Match) bool { return m.Year == year }), nil
}

func (r *ArchiveRepository) ListByPlayer(_ context.Context, name string) ([]match.Match, error) {
	normalized := player.Normalize(name)
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedCopy(r.items, func(m match.Match) bool {
		return mentionsPlayer(m, normalized)
	}), nil
}

func (r *ArchiveRepository) ListByTeams(_ context.Context, players []string) ([]match.Match, error) {
	normalized := make([]string, 0, len(players))
	for _, name := range players {
		normalized = append(normalized, player.Normalize(name))
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedCopy(r.items, func(m match.Match) bool {
		for _, name := range normalized {
			if !mentionsPlayer(m, name) {
				return false
			}
		}
		return true
	}), nil
}

// UpsertMatches mirrors the sqlite conflict key: (year, tournament,
// opponents, round).
func (r *ArchiveRepository) UpsertMatches(_ context.Context, items []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range items {
		item.Archived = true
		replaced := false
		for i, existing := range r.items {
			if upsertKey(existing) == upsertKey(item) {
				r.items[i] = item
				replaced = true
				break
			}
		}
		if !replaced {
			r.items = append(r.items, item)
		}
	}
	return nil
}

func upsertKey(m match.Match) string {
	tournamentID := ""
	if m.Tournament != nil {
		tournamentID = m.Tournament.ID
	}
	parts := []string{
		player.Normalize(strings.Join(m.Team1, "/")),
		player.Normalize(strings.Join(m.Team2, "/")),
	}
	return tournamentID + "|" + strings.Join(parts, "|") + "|" + strings.ToLower(m.Round) + "|" + strconv.Itoa(m.Year)
}

// mentionsPlayer mirrors the resolver's bidirectional containment so a
// full-name query still finds rows archived under a surname alone.
func mentionsPlayer(m match.Match, normalized string) bool {
	for _, team := range [][]string{m.Team1, m.Team2} {
		for _, member := range team {
			candidate := player.Normalize(member)
			if candidate == "" {
				continue
			}
			if strings.Contains(candidate, normalized) || strings.Contains(normalized, candidate) {
				return true
			}
		}
	}
	return false
}

// sortedCopy filters and orders by date descending, newest first, matching
// the sqlite repository's ordering.
func sortedCopy(items []match.Match, keep func(match.Match) bool) []match.Match {
	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		if keep == nil || keep(item) {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := out[i].Date, out[j].Date
		switch {
		case di == nil && dj == nil:
			return false
		case dj == nil:
			return true
		case di == nil:
			return false
		default:
			return di.After(*dj)
		}
	})
	return out
}
