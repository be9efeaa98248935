package padelfip

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/openpadel/padel-tracker/internal/domain/player"
)

const rankingsPath = "/en/rankings/"

// FetchRankings scrapes both ranking tables.
func (c *Client) FetchRankings(ctx context.Context) (player.Rankings, error) {
	html, err := c.FetchHTML(ctx, c.baseURL+rankingsPath)
	if err != nil {
		return player.Rankings{}, err
	}
	doc, err := ParseDocument(html)
	if err != nil {
		return player.Rankings{}, err
	}
	return ExtractRankings(doc), nil
}

// ExtractRankings walks every table on the page and assigns each populated
// one to the men's or women's list. A table is classified by its own
// class/id or a nearby heading; when neither says anything, document order
// decides (men's table renders first on the site).
func ExtractRankings(doc *goquery.Document) player.Rankings {
	var out player.Rankings

	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := extractRankingRows(table)
		if len(rows) == 0 {
			return
		}
		switch {
		case isWomenTable(table) && out.Women == nil:
			out.Women = rows
		case out.Men == nil:
			out.Men = rows
		case out.Women == nil:
			out.Women = rows
		}
	})

	return out
}

func isWomenTable(table *goquery.Selection) bool {
	marker := func(value string) bool {
		value = strings.ToLower(value)
		return strings.Contains(value, "women") || strings.Contains(value, "female") || strings.Contains(value, "femenin")
	}

	if class, ok := table.Attr("class"); ok && marker(class) {
		return true
	}
	if id, ok := table.Attr("id"); ok && marker(id) {
		return true
	}
	heading := table.Closest("section, div").Find("h1, h2, h3, h4").First()
	return marker(heading.Text())
}

// extractRankingRows reads (rank, player, points) off each body row. The
// player cell usually nests an <img> before the name; cellText flattens it.
func extractRankingRows(table *goquery.Selection) []player.Player {
	rows := table.Find("tbody tr")
	if rows.Length() == 0 {
		rows = table.Find("tr")
	}

	out := make([]player.Player, 0, rows.Length())
	rows.Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 2 {
			return
		}

		entry := player.Player{
			Rank: cellText(cells.Eq(0)),
		}

		nameCell := cells.Eq(1)
		if withImg := cells.FilterFunction(func(_ int, c *goquery.Selection) bool {
			return c.Find("img").Length() > 0
		}); withImg.Length() > 0 {
			nameCell = withImg.First()
		}
		entry.Name = cellText(nameCell)
		entry.ImageURL = ImageURL(nameCell.Find("img").First())

		if cells.Length() > 2 {
			entry.Points = cellText(cells.Eq(cells.Length() - 1))
		}
		if countryCell := row.Find("td[class*=country]"); countryCell.Length() > 0 {
			entry.Country = cellText(countryCell.First())
		} else if alt, ok := row.Find("img[class*=flag]").First().Attr("alt"); ok {
			entry.Country = strings.TrimSpace(alt)
		}

		if entry.Name == "" {
			return
		}
		out = append(out, entry)
	})

	return out
}
