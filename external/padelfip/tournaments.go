package padelfip

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	crerr "github.com/cockroachdb/errors"

	"github.com/openpadel/padel-tracker/internal/domain/tournament"
	"github.com/openpadel/padel-tracker/internal/usecase"
)

const tournamentsPath = "/en/calendar/"

// Card containers tried in order; the first selector that yields nodes wins.
// The site is WordPress and reshuffles wrapper classes between redesigns.
var tournamentCardSelectors = []string{
	"div.tournament-item",
	"article[class*=tournament]",
	"div[class*=event-item]",
}

var tournamentNameRule = FieldRule{
	Selectors: []string{".tournament-name", "h3", "h2", ".title"},
}

var tournamentDateRule = FieldRule{
	Selectors:   []string{".tournament-date", ".date", "time"},
	TextPattern: dateRangePattern,
}

var tournamentStatusRule = FieldRule{
	Selectors: []string{".tournament-status", ".status", ".badge"},
}

// FetchTournaments scrapes the calendar listing into normalized records.
func (c *Client) FetchTournaments(ctx context.Context) ([]tournament.Tournament, error) {
	html, err := c.FetchHTML(ctx, c.baseURL+tournamentsPath)
	if err != nil {
		return nil, err
	}
	doc, err := ParseDocument(html)
	if err != nil {
		return nil, err
	}
	return ExtractTournaments(doc, c.baseURL, time.Now().UTC()), nil
}

// ExtractTournaments normalizes every tournament card in the listing. Cards
// with no resolvable URL are skipped; everything else degrades field by
// field. IDs are deduplicated within a single listing, first card wins.
func ExtractTournaments(doc *goquery.Document, baseURL string, now time.Time) []tournament.Tournament {
	cards := findFirst(doc, tournamentCardSelectors)
	out := make([]tournament.Tournament, 0, cards.Length())
	seen := make(map[string]struct{}, cards.Length())

	cards.Each(func(_ int, card *goquery.Selection) {
		href, _ := card.Find("a[href]").First().Attr("href")
		pageURL := resolveHref(baseURL, href)
		if pageURL == "" {
			return
		}

		id := slugFromURL(pageURL)
		if id == "" {
			return
		}
		if _, dup := seen[id]; dup {
			return
		}
		seen[id] = struct{}{}

		name := tournamentNameRule.Extract(card)
		if name == "" {
			name = cellText(card.Find("a[href]").First())
		}

		item := tournament.Tournament{
			ID:       id,
			Name:     name,
			URL:      pageURL,
			ImageURL: tournamentImage(doc, card),
		}

		rawDate := tournamentDateRule.Extract(card)
		start, end, month := parseDateRange(rawDate, now)
		item.Month = month
		if start != nil {
			item.DateStart = start.Format("2006-01-02")
			item.ParsedDate = start
		}
		if end != nil {
			item.DateEnd = end.Format("2006-01-02")
		}

		item.Status = tournament.NormalizeStatus(tournamentStatusRule.Extract(card))
		if item.Status == tournament.StatusUnknown {
			item.Status = tournament.DeriveStatus(start, end, now)
		}

		out = append(out, item)
	})

	return out
}

func tournamentImage(doc *goquery.Document, card *goquery.Selection) string {
	if url := ImageURL(card.Find("img[class*=event-cover]").First()); url != "" {
		return url
	}
	return DocumentImage(doc, card)
}

func findFirst(doc *goquery.Document, selectors []string) *goquery.Selection {
	for _, selector := range selectors {
		if found := doc.Find(selector); found.Length() > 0 {
			return found
		}
	}
	return doc.Find(selectors[len(selectors)-1])
}

// ParseDocument turns raw page HTML into a queryable document.
func ParseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "parse html"), usecase.ErrParse)
	}
	return doc, nil
}

func resolveHref(baseURL, href string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "" || strings.HasPrefix(href, "#"):
		return ""
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	default:
		return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(href, "/")
	}
}

// slugFromURL takes the last non-empty path segment as the tournament id.
func slugFromURL(pageURL string) string {
	trimmed := strings.TrimRight(pageURL, "/")
	if i := strings.IndexAny(trimmed, "?#"); i >= 0 {
		trimmed = trimmed[:i]
	}
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		trimmed = trimmed[i+1:]
	}
	if strings.Contains(trimmed, ".") || strings.HasPrefix(trimmed, "http") {
		return ""
	}
	return strings.ToLower(trimmed)
}

// dateRangePattern recognizes the listing's date labels: "21-27 Apr 2025",
// "28 Apr - 4 May 2025", or a bare "21 Apr".
var dateRangePattern = regexp.MustCompile(`\d{1,2}\s*(?:[-\x{2013}]\s*\d{1,2})?\s+[A-Za-z]{3,}`)

var (
	sameMonthRangePattern  = regexp.MustCompile(`(\d{1,2})\s*[-\x{2013}]\s*(\d{1,2})\s+([A-Za-z]{3,})\.?\s*(\d{4})?`)
	crossMonthRangePattern = regexp.MustCompile(`(\d{1,2})\s+([A-Za-z]{3,})\.?\s*[-\x{2013}]\s*(\d{1,2})\s+([A-Za-z]{3,})\.?\s*(\d{4})?`)
	singleDatePattern      = regexp.MustCompile(`(\d{1,2})\s+([A-Za-z]{3,})\.?\s*(\d{4})?`)
	monthNamePattern       = regexp.MustCompile(`[A-Za-z]{3,}`)
)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

func monthFromName(name string) (time.Month, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) < 3 {
		return 0, false
	}
	month, ok := monthsByPrefix[name[:3]]
	return month, ok
}

// parseDateRange extracts start/end dates from a listing label. The year
// defaults to the current one when omitted, which is how the site renders
// the in-season calendar. When no full date parses, only a month display
// label is returned.
func parseDateRange(raw string, now time.Time) (start, end *time.Time, month string) {
	raw = collapseWhitespace(raw)
	if raw == "" {
		return nil, nil, ""
	}

	if m := crossMonthRangePattern.FindStringSubmatch(raw); m != nil {
		startMonth, ok1 := monthFromName(m[2])
		endMonth, ok2 := monthFromName(m[4])
		if ok1 && ok2 {
			year := yearOrDefault(m[5], now)
			s := date(year, startMonth, atoiDay(m[1]))
			endYear := year
			if endMonth < startMonth {
				endYear++
			}
			e := date(endYear, endMonth, atoiDay(m[3]))
			return &s, &e, m[2]
		}
	}

	if m := sameMonthRangePattern.FindStringSubmatch(raw); m != nil {
		if monthName, ok := monthFromName(m[3]); ok {
			year := yearOrDefault(m[4], now)
			s := date(year, monthName, atoiDay(m[1]))
			e := date(year, monthName, atoiDay(m[2]))
			return &s, &e, m[3]
		}
	}

	if m := singleDatePattern.FindStringSubmatch(raw); m != nil {
		if monthName, ok := monthFromName(m[2]); ok {
			year := yearOrDefault(m[3], now)
			s := date(year, monthName, atoiDay(m[1]))
			return &s, nil, m[2]
		}
	}

	if m := monthNamePattern.FindString(raw); m != "" {
		if _, ok := monthFromName(m); ok {
			return nil, nil, m
		}
	}
	return nil, nil, ""
}

func yearOrDefault(raw string, now time.Time) int {
	if raw == "" {
		return now.Year()
	}
	year := 0
	for _, r := range raw {
		year = year*10 + int(r-'0')
	}
	return year
}

func atoiDay(raw string) int {
	day := 0
	for _, r := range raw {
		day = day*10 + int(r-'0')
	}
	return day
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
