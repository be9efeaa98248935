package padelfip

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/openpadel/padel-tracker/internal/domain/player"
	"github.com/openpadel/padel-tracker/internal/usecase"
)

const playerPathPrefix = "/en/player/"

var playerCountryRule = FieldRule{
	Selectors: []string{".player-country", ".country", "[class*=nationality]"},
}

var playerRankRule = FieldRule{
	Selectors: []string{".player-rank", ".ranking-position", "[class*=rank]"},
}

var playerPointsRule = FieldRule{
	Selectors: []string{".player-points", "[class*=points]"},
}

// PlayerSlug converts a display name into the site's profile URL segment.
func PlayerSlug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '\t':
			b.WriteByte('-')
		}
	}
	return strings.Trim(strings.ReplaceAll(b.String(), "--", "-"), "-")
}

func (c *Client) PlayerURL(name string) string {
	return c.baseURL + playerPathPrefix + PlayerSlug(name) + "/"
}

// FetchPlayerProfile probes for the player's profile page and scrapes it.
// A missing page is a not-found, not a fetch failure.
func (c *Client) FetchPlayerProfile(ctx context.Context, name string) (player.Player, error) {
	if strings.TrimSpace(name) == "" {
		return player.Player{}, fmt.Errorf("%w: player name is required", usecase.ErrInvalidInput)
	}

	profileURL := c.PlayerURL(name)
	exists, err := c.ProbeURL(ctx, profileURL)
	if err != nil {
		return player.Player{}, err
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: no profile page for %q", usecase.ErrNotFound, name)
	}

	html, err := c.FetchHTML(ctx, profileURL)
	if err != nil {
		return player.Player{}, err
	}
	doc, err := ParseDocument(html)
	if err != nil {
		return player.Player{}, err
	}
	return ExtractPlayerProfile(doc, name), nil
}

// ExtractPlayerProfile normalizes a profile page. Every field degrades
// independently; the given name is kept when the page has no usable h1.
func ExtractPlayerProfile(doc *goquery.Document, fallbackName string) player.Player {
	root := doc.Selection

	out := player.Player{
		Name:     cellText(doc.Find("h1").First()),
		Country:  playerCountryRule.Extract(root),
		Rank:     playerRankRule.Extract(root),
		Points:   playerPointsRule.Extract(root),
		ImageURL: DocumentImage(doc, doc.Find("[class*=player-profile], [class*=player-header], body").First()),
	}
	if out.Name == "" {
		out.Name = collapseWhitespace(fallbackName)
	}
	return out
}
