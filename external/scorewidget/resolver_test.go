package scorewidget

import (
	"context"
	"errors"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"

	"github.com/openpadel/padel-tracker/internal/domain/tournament"
	"github.com/openpadel/padel-tracker/internal/platform/logging"
	"github.com/openpadel/padel-tracker/internal/usecase"
)

type fakeFetcher struct {
	pages  map[string]string
	probes map[string]bool
}

func (f *fakeFetcher) FetchHTML(_ context.Context, url string) (string, error) {
	if page, ok := f.pages[url]; ok {
		return page, nil
	}
	return "", errors.New("no such page: " + url)
}

func (f *fakeFetcher) ProbeURL(_ context.Context, url string) (bool, error) {
	return f.probes[url], nil
}

func newTestResolver(fetcher *fakeFetcher) *Resolver {
	widget := NewClient(ClientConfig{Host: "https://widget.test", Fetcher: fetcher, Logger: logging.NewNop()})
	r := NewResolver(widget, logging.NewNop())
	r.now = func() time.Time { return time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC) }
	return r
}

func TestClient_URLs(t *testing.T) {
	widget := NewClient(ClientConfig{Host: "https://widget.test/"})

	day := widget.DayURL("", 2026, "482", 1)
	if day != "https://widget.test/screen/oopbyday/FIP-2026-482/1?t=tol" {
		t.Fatalf("day url = %q", day)
	}

	statsURL := widget.MatchStatsURL("fip", 2026, "482", "901")
	if statsURL != "https://widget.test/screen/matchstats/FIP-2026-482/901?t=tol" {
		t.Fatalf("stats url = %q", statsURL)
	}
}

func TestResolver_Resolve(t *testing.T) {
	tour := tournament.Tournament{ID: "riyadh-p1", Name: "Riyadh P1", URL: "https://site.test/en/tournament/riyadh-p1/"}

	t.Run("walks listing to day index", func(t *testing.T) {
		fetcher := &fakeFetcher{pages: map[string]string{
			tour.URL: `<div class="idEvent_100"></div><div class="card idEvent_482"></div>`,
			"https://widget.test/screen/oopbyday/FIP-2026-482/1?t=tol": `
				<a href="/screen/oopbyday/FIP-2026-482/1?t=tol">Day 1</a>
				<a href="/screen/oopbyday/FIP-2026-482/2?t=tol">Day 2</a>`,
		}}

		resolved, err := newTestResolver(fetcher).Resolve(context.Background(), tour)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if resolved.EventID != "482" {
			t.Fatalf("event id = %q, want last idEvent occurrence", resolved.EventID)
		}
		if resolved.Year != 2026 {
			t.Fatalf("year = %d", resolved.Year)
		}
		if len(resolved.DayURLs) != 2 {
			t.Fatalf("day urls = %v", resolved.DayURLs)
		}
		if resolved.DayURLs[1] != "https://widget.test/screen/oopbyday/FIP-2026-482/2?t=tol" {
			t.Fatalf("day 2 url = %q, want relative href resolved against widget host", resolved.DayURLs[1])
		}
	})

	t.Run("unreachable tournament page is a resolution failure", func(t *testing.T) {
		_, err := newTestResolver(&fakeFetcher{}).Resolve(context.Background(), tour)
		if err == nil || !crerr.Is(err, usecase.ErrResolution) {
			t.Fatalf("err = %v, want resolution-marked", err)
		}
	})

	t.Run("page without event id is a resolution failure", func(t *testing.T) {
		fetcher := &fakeFetcher{pages: map[string]string{tour.URL: `<div class="plain"></div>`}}
		_, err := newTestResolver(fetcher).Resolve(context.Background(), tour)
		if err == nil || !crerr.Is(err, usecase.ErrResolution) {
			t.Fatalf("err = %v, want resolution-marked", err)
		}
	})

	t.Run("day index without links is a resolution failure", func(t *testing.T) {
		fetcher := &fakeFetcher{pages: map[string]string{
			tour.URL: `<div class="idEvent_482"></div>`,
			"https://widget.test/screen/oopbyday/FIP-2026-482/1?t=tol": `<p>draw not published</p>`,
		}}
		_, err := newTestResolver(fetcher).Resolve(context.Background(), tour)
		if err == nil || !crerr.Is(err, usecase.ErrResolution) {
			t.Fatalf("err = %v, want resolution-marked", err)
		}
	})
}

func TestResolver_FetchMatches_SkipsBrokenDays(t *testing.T) {
	tour := tournament.Tournament{ID: "riyadh-p1", Name: "Riyadh P1", URL: "https://site.test/en/tournament/riyadh-p1/"}
	fetcher := &fakeFetcher{pages: map[string]string{
		tour.URL: `<div class="idEvent_482"></div>`,
		"https://widget.test/screen/oopbyday/FIP-2026-482/1?t=tol": `
			<a href="/screen/oopbyday/FIP-2026-482/1?t=tol">Day 1</a>
			<a href="/screen/oopbyday/FIP-2026-482/2?t=tol">Day 2</a>` + dayPageFixture,
		// Day 2 page intentionally missing; it must be skipped, not fatal.
	}}

	matches, err := newTestResolver(fetcher).FetchMatches(context.Background(), tour)
	if err != nil {
		t.Fatalf("FetchMatches: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("got %d matches, want 2 from the reachable day", len(matches))
	}
}
