package scorewidget

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"

	"github.com/openpadel/padel-tracker/external/padelfip"
	"github.com/openpadel/padel-tracker/internal/domain/match"
	"github.com/openpadel/padel-tracker/internal/domain/tournament"
	"github.com/openpadel/padel-tracker/internal/platform/logging"
	"github.com/openpadel/padel-tracker/internal/usecase"
)

// Resolver walks a tournament from its listing entry to its widget day
// index: fetch the tournament page, scan the event id, build the day-1
// widget URL, enumerate day links. Each step can fail; a failure aborts
// resolution for that tournament only and callers continue with the rest.
type Resolver struct {
	widget *Client
	logger *logging.Logger

	// now feeds the current-year component of widget URLs. Tournaments
	// spanning a year boundary or archived under another year will not
	// resolve; a known limitation of the URL scheme, not corrected here.
	now func() time.Time
}

func NewResolver(widget *Client, logger *logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.Default()
	}
	return &Resolver{widget: widget, logger: logger, now: time.Now}
}

// Resolved is a tournament with its widget identity discovered.
type Resolved struct {
	Tournament tournament.Tournament
	EventID    string
	Year       int
	// DayURLs is the ordered day index, one entry per tournament day.
	DayURLs []string
}

// Resolve runs the id and day discovery for one tournament.
func (r *Resolver) Resolve(ctx context.Context, item tournament.Tournament) (Resolved, error) {
	eventID, err := r.resolveEventID(ctx, item)
	if err != nil {
		return Resolved{}, err
	}

	year := r.now().UTC().Year()
	dayURLs, err := r.enumerateDays(ctx, eventID, year)
	if err != nil {
		return Resolved{}, err
	}

	return Resolved{Tournament: item, EventID: eventID, Year: year, DayURLs: dayURLs}, nil
}

func (r *Resolver) resolveEventID(ctx context.Context, item tournament.Tournament) (string, error) {
	html, err := r.widget.fetcher.FetchHTML(ctx, item.URL)
	if err != nil {
		return "", crerr.Mark(crerr.Wrapf(err, "tournament page id=%s", item.ID), usecase.ErrResolution)
	}

	doc, err := padelfip.ParseDocument(html)
	if err != nil {
		return "", crerr.Mark(crerr.Wrapf(err, "tournament page id=%s", item.ID), usecase.ErrResolution)
	}

	eventID, ok := padelfip.ScanEventID(doc)
	if !ok {
		return "", crerr.Mark(crerr.Newf("no event id on page id=%s url=%s", item.ID, item.URL), usecase.ErrResolution)
	}
	return eventID, nil
}

// enumerateDays fetches the day-1 page and collects every order-of-play
// anchor in document order.
func (r *Resolver) enumerateDays(ctx context.Context, eventID string, year int) ([]string, error) {
	dayOneURL := r.widget.DayURL(DefaultOrganization, year, eventID, 1)
	html, err := r.widget.fetch(ctx, dayOneURL)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "widget day index event=%s", eventID), usecase.ErrResolution)
	}

	doc, err := padelfip.ParseDocument(html)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "widget day index event=%s", eventID), usecase.ErrResolution)
	}

	urls := make([]string, 0, 8)
	doc.Find("a[href*=oopbyday]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		if resolved := r.widget.resolveHref(href); resolved != "" {
			urls = append(urls, resolved)
		}
	})

	if len(urls) == 0 {
		// A widget page with no day links usually means the event id did
		// not resolve to a published draw yet.
		return nil, crerr.Mark(crerr.Newf("no day links event=%s url=%s", eventID, dayOneURL), usecase.ErrResolution)
	}
	return urls, nil
}

// FetchMatches resolves the tournament and scrapes every day page. Failed
// day fetches are logged and skipped so one broken day never hides the rest.
func (r *Resolver) FetchMatches(ctx context.Context, item tournament.Tournament) ([]match.Match, error) {
	resolved, err := r.Resolve(ctx, item)
	if err != nil {
		return nil, err
	}

	out := make([]match.Match, 0, 16)
	for _, dayURL := range resolved.DayURLs {
		html, err := r.widget.fetch(ctx, dayURL)
		if err != nil {
			r.logger.WarnContext(ctx, "day page fetch failed, skipping day", "tournament", item.ID, "url", dayURL, "error", err)
			continue
		}
		doc, err := padelfip.ParseDocument(html)
		if err != nil {
			r.logger.WarnContext(ctx, "day page parse failed, skipping day", "tournament", item.ID, "url", dayURL, "error", err)
			continue
		}
		out = append(out, ExtractDayMatches(doc, resolved)...)
	}
	return out, nil
}

// tournamentRef builds the back-reference attached to every scraped match.
func tournamentRef(resolved Resolved) *match.Ref {
	name := strings.TrimSpace(resolved.Tournament.Name)
	if name == "" && resolved.EventID == "" {
		return nil
	}
	return &match.Ref{Name: name, ID: resolved.EventID}
}
