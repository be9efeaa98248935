package scorewidget

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/openpadel/padel-tracker/internal/domain/match"
)

var (
	timePattern = regexp.MustCompile(`\b\d{1,2}:\d{2}\b`)
	seedPattern = regexp.MustCompile(`\((\d{1,2})\)`)
)

// dayRow is one parsed table row of an order-of-play page.
type dayRow struct {
	names     []string
	games     []string
	seed      string
	statsLink bool
	timeText  string
	text      string
}

func (r dayRow) isTeamRow() bool {
	return len(r.names) > 0
}

// ExtractDayMatches groups a day page's table rows into matches using a
// three-row window: the row carrying the "MATCH STATS" link is the anchor,
// its immediate predecessor is team 2's row, and that row's predecessor is
// team 1's. A window anchored by a bare time row instead of a stats link is
// an unplayed match; it gets the scanned HH:MM and no score.
func ExtractDayMatches(doc *goquery.Document, resolved Resolved) []match.Match {
	trs := doc.Find("tr")
	rows := make([]dayRow, 0, trs.Length())
	trs.Each(func(_ int, tr *goquery.Selection) {
		rows = append(rows, parseDayRow(tr))
	})

	ref := tournamentRef(resolved)
	out := make([]match.Match, 0, len(rows)/3)
	// The cursor sits on the candidate anchor row. A matched window
	// consumes all three rows; anything else slides the cursor by one.
	for i := 2; i < len(rows); {
		anchor := rows[i]
		team2, team1 := rows[i-1], rows[i-2]
		if !team1.isTeamRow() || !team2.isTeamRow() {
			i++
			continue
		}

		switch {
		case anchor.statsLink:
			m := buildMatch(team1, team2, anchor, ref, resolved.Year)
			m.Score = zipScores(team1.games, team2.games)
			out = append(out, m)
			i += 3
		case anchor.timeText != "" && !anchor.isTeamRow():
			m := buildMatch(team1, team2, anchor, ref, resolved.Year)
			m.Upcoming = true
			m.Time = anchor.timeText
			out = append(out, m)
			i += 3
		default:
			i++
		}
	}
	return out
}

func buildMatch(team1, team2, anchor dayRow, ref *match.Ref, year int) match.Match {
	return match.Match{
		Team1:      team1.names,
		Team2:      team2.names,
		Seed1:      team1.seed,
		Seed2:      team2.seed,
		Round:      roundFromText(anchor.text),
		Category:   categoryFromText(anchor.text),
		Time:       anchor.timeText,
		Tournament: ref,
		Year:       year,
	}
}

func parseDayRow(tr *goquery.Selection) dayRow {
	row := dayRow{text: collapseWhitespace(tr.Text())}
	row.timeText = timePattern.FindString(row.text)

	tr.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		if strings.Contains(strings.ToUpper(a.Text()), "MATCH STATS") {
			row.statsLink = true
			return false
		}
		return true
	})

	tr.Find("td").Each(func(_ int, td *goquery.Selection) {
		text := collapseWhitespace(td.Text())
		if text == "" {
			return
		}
		switch {
		case isGameCount(text):
			row.games = append(row.games, text)
		case row.names == nil && looksLikeNames(text):
			names, seed := splitTeamCell(text)
			row.names = names
			row.seed = seed
		}
	})

	return row
}

// zipScores pairs per-team game counts into set strings. Rows with uneven
// set counts keep only the sets both rows report.
func zipScores(games1, games2 []string) []string {
	n := len(games1)
	if len(games2) < n {
		n = len(games2)
	}
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, games1[i]+"-"+games2[i])
	}
	return out
}

// splitTeamCell splits "A. Galan / F. Chingotto (1)" into names and seed.
func splitTeamCell(text string) ([]string, string) {
	seed := ""
	if m := seedPattern.FindStringSubmatch(text); m != nil {
		seed = m[1]
		text = strings.TrimSpace(seedPattern.ReplaceAllString(text, ""))
	}

	parts := strings.Split(text, "/")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := collapseWhitespace(part); name != "" {
			names = append(names, name)
		}
	}
	return names, seed
}

func isGameCount(text string) bool {
	v, err := strconv.Atoi(text)
	return err == nil && v >= 0 && v <= 20
}

func looksLikeNames(text string) bool {
	if timePattern.MatchString(text) {
		return false
	}
	letters := 0
	for _, r := range text {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			letters++
		}
	}
	return letters >= 3
}

// Longer markers first so "semifinal" or "Semi Final" never reports as
// "final".
var roundMarkers = []string{
	"quarterfinal", "quarter-final", "quarter final",
	"semifinal", "semi-final", "semi final",
	"round of 32", "round of 16", "qualification",
	"final", "r32", "r16",
}

func roundFromText(text string) string {
	lowered := strings.ToLower(text)
	for _, marker := range roundMarkers {
		if idx := strings.Index(lowered, marker); idx >= 0 {
			return collapseWhitespace(text[idx : idx+len(marker)])
		}
	}
	return ""
}

func categoryFromText(text string) string {
	lowered := strings.ToLower(text)
	switch {
	case strings.Contains(lowered, "mixed"):
		return match.CategoryMixed
	case strings.Contains(lowered, "women") || strings.Contains(lowered, "female"):
		return match.CategoryWomen
	case strings.Contains(lowered, "men") || strings.Contains(lowered, "male"):
		return match.CategoryMen
	default:
		return ""
	}
}

func collapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
