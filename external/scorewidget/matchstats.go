package scorewidget

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/openpadel/padel-tracker/external/padelfip"
	"github.com/openpadel/padel-tracker/internal/domain/stats"
	"github.com/openpadel/padel-tracker/internal/usecase"
)

// FetchMatchStats loads the per-match statistics table. A widget page that
// does not exist is a not-found; the caller shows an explicit error state
// rather than a degraded record.
func (c *Client) FetchMatchStats(ctx context.Context, org string, year int, eventID, matchID string) (stats.MatchStats, error) {
	if strings.TrimSpace(eventID) == "" || strings.TrimSpace(matchID) == "" {
		return stats.MatchStats{}, fmt.Errorf("%w: event id and match id are required", usecase.ErrInvalidInput)
	}

	statsURL := c.MatchStatsURL(org, year, eventID, matchID)
	exists, err := c.fetcher.ProbeURL(ctx, statsURL)
	if err != nil {
		return stats.MatchStats{}, err
	}
	if !exists {
		return stats.MatchStats{}, fmt.Errorf("%w: no stats page for match %s", usecase.ErrNotFound, matchID)
	}

	html, err := c.fetch(ctx, statsURL)
	if err != nil {
		return stats.MatchStats{}, err
	}
	doc, err := padelfip.ParseDocument(html)
	if err != nil {
		return stats.MatchStats{}, err
	}

	out := ExtractMatchStats(doc)
	if len(out.Rows) == 0 {
		return stats.MatchStats{}, fmt.Errorf("%w: stats table empty for match %s", usecase.ErrNotFound, matchID)
	}
	return out, nil
}

// ExtractMatchStats reads the widget's three-column stat table: team 1's
// value, the metric label, team 2's value. Team names come from the header
// elements when present.
func ExtractMatchStats(doc *goquery.Document) stats.MatchStats {
	out := stats.MatchStats{}

	teams := doc.Find("[class*=team-name], th[class*=team]")
	if teams.Length() >= 2 {
		out.Team1Name = collapseWhitespace(teams.Eq(0).Text())
		out.Team2Name = collapseWhitespace(teams.Eq(1).Text())
	}

	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		cells := tr.Find("td")
		if cells.Length() != 3 {
			return
		}
		row := stats.StatRow{
			Team1Value: collapseWhitespace(cells.Eq(0).Text()),
			Label:      collapseWhitespace(cells.Eq(1).Text()),
			Team2Value: collapseWhitespace(cells.Eq(2).Text()),
		}
		if row.Label == "" {
			return
		}
		out.Rows = append(out.Rows, row)
	})

	return out
}
