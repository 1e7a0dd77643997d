// Package googlenews discovers URLs through the keyless Google News RSS
// search feed. It is the default backend when no search API credentials are
// configured.
package googlenews

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/leofalp/firmenrich/internal/utils"
)

const defaultBaseURL = "https://news.google.com/rss/search"

// DefaultTimeout bounds one feed fetch.
const DefaultTimeout = 10 * time.Second

// Client fetches and parses the news search feed. Construct with [New].
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
	parser  *gofeed.Parser
}

// Option configures a [Client].
type Option func(*Client)

// WithLogger sets the logger used for failure reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeout overrides the per-call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.client.Timeout = timeout
		}
	}
}

// WithBaseURL overrides the feed endpoint. Used in tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// New returns a Google News RSS search client.
func New(options ...Option) *Client {
	client := &Client{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
		logger:  slog.Default(),
		parser:  gofeed.NewParser(),
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// Search returns up to limit article URLs from the news feed for query.
// Feed-level failures are logged and yield an empty slice.
func (c *Client) Search(ctx context.Context, query string, limit int) []string {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Add("q", query)
	params.Add("hl", "en-US")
	params.Add("gl", "US")
	params.Add("ceid", "US:en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		c.logger.Warn("google news request creation failed", "error", err.Error())
		return nil
	}
	req.Header.Set("User-Agent", "firmenrich-bot/1.0")
	req.Header.Set("Accept", "application/rss+xml, application/xml;q=0.9, text/xml;q=0.8")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("google news fetch failed", "query", query, "error", err.Error())
		return nil
	}
	defer utils.CloseWithLog(resp.Body)

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("google news non-200 status", "query", query, "status", resp.StatusCode)
		return nil
	}

	feed, err := c.parser.Parse(resp.Body)
	if err != nil {
		c.logger.Warn("google news feed unparsable", "query", query, "error", err.Error())
		return nil
	}

	urls := make([]string, 0, limit)
	for _, item := range feed.Items {
		if item == nil || item.Link == "" {
			continue
		}
		urls = append(urls, item.Link)
		if len(urls) >= limit {
			break
		}
	}
	return urls
}

// String identifies the provider in logs.
func (c *Client) String() string {
	return fmt.Sprintf("googlenews(%s)", c.baseURL)
}
