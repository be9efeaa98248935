// Package padelfip scrapes the FIP tour website: tournament listings,
// ranking tables, and player profiles. The site has no API; everything here
// works off structural heuristics over its HTML and is written to degrade
// to partial records when markup shifts.
package padelfip

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/openpadel/padel-tracker/internal/platform/logging"
	"github.com/openpadel/padel-tracker/internal/platform/resilience"
	"github.com/openpadel/padel-tracker/internal/usecase"
)

const (
	defaultBaseURL = "https://www.padelfip.com"

	// The source site rejects default client identities, so every request
	// carries a pinned desktop browser User-Agent.
	BrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	maxBodyBytes = 6 << 20
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches raw HTML from the source site. No caching and no retries
// happen at this layer; callers own both policies.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	userAgent      string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}
	if _, ok := httpClient.Transport.(*otelhttp.Transport); !ok {
		base := httpClient.Transport
		if base == nil {
			base = http.DefaultTransport
		}
		httpClient.Transport = otelhttp.NewTransport(base)
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = BrowserUserAgent
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		userAgent:      userAgent,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// BaseURL returns the configured site root, without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchHTML GETs a page and returns its body. Concurrent calls for the same
// URL share one in-flight request. Non-2xx statuses and transport failures
// both surface as fetch-marked errors carrying the URL.
func (c *Client) FetchHTML(ctx context.Context, pageURL string) (string, error) {
	if strings.TrimSpace(pageURL) == "" {
		return "", fmt.Errorf("%w: page url is required", usecase.ErrInvalidInput)
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "source site circuit breaker rejected request", "state", c.breaker.State())
			return "", fmt.Errorf("%w: source site is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	out, err, _ := c.flight.Do(pageURL, func() (any, error) {
		body, reqErr := c.executeRequest(ctx, pageURL)
		if c.circuitEnabled {
			if reqErr != nil {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return body, reqErr
	})
	if err != nil {
		return "", err
	}

	body, ok := out.(string)
	if !ok {
		return "", fmt.Errorf("unexpected response payload type %T", out)
	}
	return body, nil
}

func (c *Client) executeRequest(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", crerr.Mark(crerr.Wrapf(err, "build request url=%s", pageURL), usecase.ErrFetch)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.WarnContext(ctx, "source site request failed", "url", pageURL, "error", err)
		return "", crerr.Mark(crerr.Wrapf(err, "fetch url=%s", pageURL), usecase.ErrFetch)
	}
	defer func() { _ = resp.Body.Close() }()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(http.MaxBytesReader(nil, resp.Body, maxBodyBytes)); err != nil {
		return "", crerr.Mark(crerr.Wrapf(err, "read body url=%s", pageURL), usecase.ErrFetch)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.WarnContext(ctx, "source site returned non-2xx", "url", pageURL, "status", resp.StatusCode)
		return "", crerr.Mark(crerr.Newf("fetch url=%s: status=%d", pageURL, resp.StatusCode), usecase.ErrFetch)
	}

	return buf.String(), nil
}

// ProbeURL issues a HEAD request to test whether a page exists. Any HTTP
// status is accepted and reported via the boolean; only transport failures
// return an error.
func (c *Client) ProbeURL(ctx context.Context, pageURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, pageURL, nil)
	if err != nil {
		return false, crerr.Mark(crerr.Wrapf(err, "build probe url=%s", pageURL), usecase.ErrFetch)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, crerr.Mark(crerr.Wrapf(err, "probe url=%s", pageURL), usecase.ErrFetch)
	}
	_ = resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 400, nil
}
