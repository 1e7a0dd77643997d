// Package serpapi discovers URLs through SerpAPI's Google engine. It
// requires an API key.
package serpapi

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/leofalp/firmenrich/internal/jsonx"
	"github.com/leofalp/firmenrich/internal/utils"
)

const defaultBaseURL = "https://serpapi.com/search.json"

// DefaultTimeout bounds one API call.
const DefaultTimeout = 10 * time.Second

// Client queries SerpAPI. Construct with [New].
type Client struct {
	apiKey  string
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

// New returns a SerpAPI client for the given key.
func New(apiKey string, options ...Option) *Client {
	client := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
		logger:  slog.Default(),
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// apiResponse is the subset of the SerpAPI response we consume.
type apiResponse struct {
	OrganicResults []struct {
		Link string `json:"link"`
	} `json:"organic_results"`
}

// Search returns up to limit organic-result URLs for query. Any failure is
// logged and yields an empty slice, per the provider contract.
func (c *Client) Search(ctx context.Context, query string, limit int) []string {
	if c.apiKey == "" {
		c.logger.Debug("serpapi key not configured, returning no results")
		return nil
	}
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Add("engine", "google")
	params.Add("q", query)
	params.Add("num", fmt.Sprintf("%d", limit))
	params.Add("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		c.logger.Warn("serpapi request creation failed", "error", err.Error())
		return nil
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("serpapi search failed", "query", query, "error", err.Error())
		return nil
	}
	defer utils.CloseWithLog(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Warn("serpapi response unreadable", "query", query, "error", err.Error())
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("serpapi non-200 status", "query", query, "status", resp.StatusCode, "body", utils.TruncateString(string(body), 200))
		return nil
	}

	response, err := jsonx.DecodeLenient[apiResponse](body)
	if err != nil {
		c.logger.Warn("serpapi response undecodable", "query", query, "error", err.Error())
		return nil
	}

	urls := make([]string, 0, len(response.OrganicResults))
	for _, result := range response.OrganicResults {
		if result.Link == "" {
			continue
		}
		urls = append(urls, result.Link)
		if len(urls) >= limit {
			break
		}
	}
	return urls
}
