package memory

import (
	"context"
	"testing"
	"time"

	"github.com/openpadel/padel-tracker/internal/domain/match"
)

func date(y int, m time.Month, d int) *time.Time {
	v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &v
}

func TestArchiveRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewArchiveRepository(
		match.Match{
			Team1: []string{"Alejandro Galan", "Federico Chingotto"},
			Team2: []string{"Agustin Tapia", "Arturo Coello"},
			Score: []string{"6-4", "3-6", "6-2"},
			Round: "Final", Year: 2026, Date: date(2026, time.March, 14),
			Tournament: &match.Ref{ID: "482", Name: "Riyadh P1"},
		},
		match.Match{
			Team1: []string{"Alejandro Galan", "Federico Chingotto"},
			Team2: []string{"Juan Lebron", "Paquito Navarro"},
			Score: []string{"6-3", "6-3"},
			Round: "Final", Year: 2025, Date: date(2025, time.November, 2),
			Tournament: &match.Ref{ID: "377", Name: "Milano Major"},
		},
	)

	t.Run("lists newest first and marks archived", func(t *testing.T) {
		all, err := repo.ListAll(ctx)
		if err != nil {
			t.Fatalf("ListAll: %v", err)
		}
		if len(all) != 2 || all[0].Year != 2026 {
			t.Fatalf("all = %+v", all)
		}
		if !all[0].Archived {
			t.Fatal("expected archived flag")
		}
	})

	t.Run("filters by year and player", func(t *testing.T) {
		byYear, err := repo.ListByYear(ctx, 2025)
		if err != nil || len(byYear) != 1 {
			t.Fatalf("byYear = %v err=%v", byYear, err)
		}
		byPlayer, err := repo.ListByPlayer(ctx, "lebron")
		if err != nil || len(byPlayer) != 1 {
			t.Fatalf("byPlayer = %v err=%v", byPlayer, err)
		}
	})

	t.Run("full-name query finds full-name rows", func(t *testing.T) {
		byPlayer, err := repo.ListByPlayer(ctx, "Juan Lebron")
		if err != nil || len(byPlayer) != 1 {
			t.Fatalf("byPlayer = %v err=%v", byPlayer, err)
		}
	})

	t.Run("upsert replaces by identity key", func(t *testing.T) {
		updated := match.Match{
			Team1: []string{"Alejandro Galan", "Federico Chingotto"},
			Team2: []string{"Agustin Tapia", "Arturo Coello"},
			Score: []string{"6-4", "3-6", "7-6"},
			Round: "Final", Year: 2026, Date: date(2026, time.March, 14),
			Tournament: &match.Ref{ID: "482", Name: "Riyadh P1"},
		}
		if err := repo.UpsertMatches(ctx, []match.Match{updated}); err != nil {
			t.Fatalf("UpsertMatches: %v", err)
		}
		all, _ := repo.ListAll(ctx)
		if len(all) != 2 {
			t.Fatalf("got %d rows after upsert, want 2", len(all))
		}
		if all[0].Score[2] != "7-6" {
			t.Fatalf("score = %v, want refreshed", all[0].Score)
		}
	})
}

func TestArchiveRepository_FullNameQueryMatchesSurnameRows(t *testing.T) {
	ctx := context.Background()
	repo := NewArchiveRepository(
		match.Match{
			Team1: []string{"Galan", "Chingotto"},
			Team2: []string{"Tapia", "Coello"},
			Score: []string{"6-2", "6-2"},
			Round: "Final", Year: 2024, Date: date(2024, time.June, 1),
			Tournament: &match.Ref{ID: "101", Name: "Madrid P1"},
		},
	)

	byPlayer, err := repo.ListByPlayer(ctx, "Alejandro Galan")
	if err != nil || len(byPlayer) != 1 {
		t.Fatalf("byPlayer = %v err=%v", byPlayer, err)
	}

	byTeams, err := repo.ListByTeams(ctx, []string{"Alejandro Galan", "Agustin Tapia"})
	if err != nil || len(byTeams) != 1 {
		t.Fatalf("byTeams = %v err=%v", byTeams, err)
	}
}
