package match

import "testing"

func TestParseSet(t *testing.T) {
	t.Run("round trips a valid set", func(t *testing.T) {
		set, ok := ParseSet("6-4")
		if !ok {
			t.Fatal("expected 6-4 to parse")
		}
		if set.Games1 != 6 || set.Games2 != 4 {
			t.Fatalf("unexpected set %+v", set)
		}
		if got := set.String(); got != "6-4" {
			t.Fatalf("re-serialized as %q, want 6-4", got)
		}
	})

	t.Run("malformed strings pass through unparsed", func(t *testing.T) {
		for _, raw := range []string{"W/O", "ret.", "", "6-", "-4", "a-b", "6–4"} {
			if _, ok := ParseSet(raw); ok {
				t.Fatalf("expected %q not to parse", raw)
			}
		}
	})
}

func TestMatch_Winner(t *testing.T) {
	m := Match{Score: []string{"6-4", "3-6", "6-2"}}
	if got := m.Winner(); got != 1 {
		t.Fatalf("winner = %d, want 1", got)
	}

	m = Match{Score: []string{"4-6", "6-7"}}
	if got := m.Winner(); got != 2 {
		t.Fatalf("winner = %d, want 2", got)
	}

	m = Match{Score: []string{"W/O"}}
	if got := m.Winner(); got != 0 {
		t.Fatalf("winner = %d, want 0 for unparseable score", got)
	}
}

func TestMatch_AggregatesSkipMalformedSets(t *testing.T) {
	m := Match{Score: []string{"6-4", "W/O", "7-6"}}

	if got := len(m.SetScores()); got != 2 {
		t.Fatalf("parsed %d sets, want 2", got)
	}

	g1, g2 := m.TotalGames()
	if g1 != 13 || g2 != 10 {
		t.Fatalf("total games = %d-%d, want 13-10", g1, g2)
	}

	if !m.HasTiebreak() {
		t.Fatal("expected 7-6 to count as a tiebreak set")
	}
}

func TestMatch_GoldenSets(t *testing.T) {
	m := Match{Score: []string{"6-0", "0-6", "6-0"}}
	won1, won2 := m.GoldenSets()
	if won1 != 2 || won2 != 1 {
		t.Fatalf("golden sets = %d/%d, want 2/1", won1, won2)
	}
}

func TestNormalizeCategory(t *testing.T) {
	cases := map[string]string{
		"men":      CategoryMen,
		"WOMEN":    CategoryWomen,
		"Mixed":    CategoryMixed,
		"doubles?": CategoryUnknown,
		"":         CategoryUnknown,
	}
	for raw, want := range cases {
		if got := NormalizeCategory(raw); got != want {
			t.Fatalf("NormalizeCategory(%q) = %q, want %q", raw, got, want)
		}
	}
}
