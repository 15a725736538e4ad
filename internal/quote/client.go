// Package quote fetches financial statements and market snapshots from the
// Yahoo Finance public endpoints.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/oracle-cli/internal/cache"
	"github.com/sells-group/oracle-cli/internal/resilience"
)

const (
	defaultBaseURL   = "https://query1.finance.yahoo.com"
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36"
)

// ErrSymbolNotFound marks a ticker the provider does not know. Callers map
// this to a user-facing "check the symbol" message rather than a retry.
var ErrSymbolNotFound = eris.New("symbol not found")

// Client talks to the quote provider with rate limiting and retry on
// transient failures.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	retry      resilience.RetryConfig
	store      cache.Store
	ttl        time.Duration
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the provider base URL. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithCache enables read-through caching of statement sets with the given
// TTL. A nil store disables caching.
func WithCache(s cache.Store, ttl time.Duration) Option {
	return func(c *Client) {
		c.store = s
		c.ttl = ttl
	}
}

// WithRateLimit replaces the default request rate limiter.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) { c.limiter = rate.NewLimiter(rate.Limit(rps), burst) }
}

// WithRetry replaces the default retry policy.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(c *Client) { c.retry = cfg }
}

// NewClient builds a Client with provider-friendly defaults: 2 req/s,
// exponential backoff on transient failures, no cache.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(2, 4),
		retry:      resilience.DefaultRetryConfig(),
		ttl:        cache.DefaultTTL,
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getJSON performs one rate-limited, retried GET and decodes the body into
// dst. 404 maps to ErrSymbolNotFound; 429 and 5xx are retried.
func (c *Client) getJSON(ctx context.Context, url string, dst any) error {
	body, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) ([]byte, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "quote: rate limiter")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, eris.Wrap(err, "quote: build request")
		}
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, resilience.NewTransientError(eris.Wrap(err, "quote: request"), 0)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return nil, ErrSymbolNotFound
		case resilience.IsTransientHTTPStatus(resp.StatusCode):
			return nil, resilience.NewTransientError(
				fmt.Errorf("quote: provider returned %d", resp.StatusCode), resp.StatusCode)
		case resp.StatusCode != http.StatusOK:
			return nil, eris.Errorf("quote: provider returned %d", resp.StatusCode)
		}

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, resilience.NewTransientError(eris.Wrap(err, "quote: read body"), 0)
		}
		return b, nil
	})
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return eris.Wrap(err, "quote: decode response")
	}
	zap.L().Debug("quote: fetched", zap.String("url", url), zap.Int("bytes", len(body)))
	return nil
}
