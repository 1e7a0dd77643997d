// Package duckduckgo discovers URLs through the free DuckDuckGo Instant
// Answer API. The API surfaces encyclopedic results rather than news, so
// this backend is only selected when explicitly configured.
package duckduckgo

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/leofalp/firmenrich/internal/jsonx"
	"github.com/leofalp/firmenrich/internal/utils"
)

const defaultBaseURL = "https://api.duckduckgo.com/"

// DefaultTimeout bounds one API call.
const DefaultTimeout = 10 * time.Second

// Client queries the Instant Answer API. Construct with [New].
type Client struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
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

// WithBaseURL overrides the API endpoint. Used in tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// New returns an Instant Answer API client.
func New(options ...Option) *Client {
	client := &Client{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
		logger:  slog.Default(),
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// apiResponse is the subset of the Instant Answer response we consume: the
// abstract source plus the FirstURL of each result and related topic.
type apiResponse struct {
	AbstractURL   string     `json:"AbstractURL"`
	Results       []linkItem `json:"Results"`
	RelatedTopics []linkItem `json:"RelatedTopics"`
}

type linkItem struct {
	FirstURL string `json:"FirstURL"`
}

// Search returns up to limit URLs collected from the abstract source, the
// result links, and the related-topic links, in that order. Failures are
// logged and yield an empty slice.
func (c *Client) Search(ctx context.Context, query string, limit int) []string {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Add("q", query)
	params.Add("format", "json")
	params.Add("no_html", "1")
	params.Add("skip_disambig", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		c.logger.Warn("duckduckgo request creation failed", "error", err.Error())
		return nil
	}
	req.Header.Set("User-Agent", "firmenrich-bot/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("duckduckgo search failed", "query", query, "error", err.Error())
		return nil
	}
	defer utils.CloseWithLog(resp.Body)

	// The Instant Answer API responds 202 for some query classes.
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		c.logger.Warn("duckduckgo non-success status", "query", query, "status", resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("duckduckgo response unreadable", "query", query, "error", err.Error())
		return nil
	}

	response, err := jsonx.DecodeLenient[apiResponse](body)
	if err != nil {
		c.logger.Warn("duckduckgo response undecodable", "query", query, "error", err.Error())
		return nil
	}

	var urls []string
	seen := make(map[string]bool)
	add := func(candidate string) {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" || seen[candidate] || len(urls) >= limit {
			return
		}
		seen[candidate] = true
		urls = append(urls, candidate)
	}

	add(response.AbstractURL)
	for _, item := range response.Results {
		add(item.FirstURL)
	}
	for _, item := range response.RelatedTopics {
		add(item.FirstURL)
	}
	return urls
}
