// Package scorewidget talks to the live-scoring widget embedded on the
// source site. The widget is a separate host with its own URL scheme keyed
// by organization, year, and the event id discovered on the source page.
package scorewidget

import (
	"context"
	"fmt"
	"strings"

	"github.com/openpadel/padel-tracker/internal/platform/logging"
)

const (
	defaultHost = "https://widget.matchscorerlive.com"

	// DefaultOrganization is the tour code baked into widget URLs.
	DefaultOrganization = "FIP"
)

// PageFetcher is the transport the widget client rides on; the source-site
// client satisfies it so both hosts share one browser identity, breaker,
// and in-flight deduplication.
type PageFetcher interface {
	FetchHTML(ctx context.Context, url string) (string, error)
	ProbeURL(ctx context.Context, url string) (bool, error)
}

type ClientConfig struct {
	Host    string
	Fetcher PageFetcher
	Logger  *logging.Logger
}

type Client struct {
	host    string
	fetcher PageFetcher
	logger  *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	host := strings.TrimRight(strings.TrimSpace(cfg.Host), "/")
	if host == "" {
		host = defaultHost
	}
	return &Client{host: host, fetcher: cfg.Fetcher, logger: logger}
}

func (c *Client) Host() string {
	return c.host
}

// DayURL builds the order-of-play page URL for one tournament day.
func (c *Client) DayURL(org string, year int, eventID string, day int) string {
	return fmt.Sprintf("%s/screen/oopbyday/%s-%d-%s/%d?t=tol", c.host, orgOrDefault(org), year, eventID, day)
}

// MatchStatsURL builds the per-match statistics page URL.
func (c *Client) MatchStatsURL(org string, year int, eventID, matchID string) string {
	return fmt.Sprintf("%s/screen/matchstats/%s-%d-%s/%s?t=tol", c.host, orgOrDefault(org), year, eventID, matchID)
}

func (c *Client) fetch(ctx context.Context, url string) (string, error) {
	return c.fetcher.FetchHTML(ctx, url)
}

func orgOrDefault(org string) string {
	org = strings.ToUpper(strings.TrimSpace(org))
	if org == "" {
		return DefaultOrganization
	}
	return org
}

// resolveHref normalizes a widget anchor href against the widget host.
func (c *Client) resolveHref(href string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "" || strings.HasPrefix(href, "#"):
		return ""
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	case strings.HasPrefix(href, "//"):
		return "https:" + href
	default:
		return c.host + "/" + strings.TrimLeft(href, "/")
	}
}
