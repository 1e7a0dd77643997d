// Package googlecse discovers URLs through the Google Custom Search JSON
// API. It requires an API key and a search-engine identifier (cx).
package googlecse

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

const defaultBaseURL = "https://www.googleapis.com/customsearch/v1"

// DefaultTimeout bounds one API call.
const DefaultTimeout = 10 * time.Second

// Client queries the Custom Search API. Construct with [New].
type Client struct {
	apiKey  string
	cx      string
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

// New returns a Custom Search client for the given credentials.
func New(apiKey, cx string, options ...Option) *Client {
	client := &Client{
		apiKey:  apiKey,
		cx:      cx,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: DefaultTimeout},
		logger:  slog.Default(),
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// apiResponse is the subset of the Custom Search response we consume.
type apiResponse struct {
	Items []struct {
		Link string `json:"link"`
	} `json:"items"`
}

// Search returns up to limit result URLs for query. Any failure (missing
// credentials, transport error, non-200 status, undecodable body) is logged
// and yields an empty slice.
func (c *Client) Search(ctx context.Context, query string, limit int) []string {
	if c.apiKey == "" || c.cx == "" {
		c.logger.Debug("google cse credentials not configured, returning no results")
		return nil
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 10 {
		// The API returns at most 10 results per request.
		limit = 10
	}

	params := url.Values{}
	params.Add("key", c.apiKey)
	params.Add("cx", c.cx)
	params.Add("q", query)
	params.Add("num", fmt.Sprintf("%d", limit))

	body, err := c.get(ctx, c.baseURL+"?"+params.Encode())
	if err != nil {
		c.logger.Warn("google cse search failed", "query", query, "error", err.Error())
		return nil
	}

	response, err := jsonx.DecodeLenient[apiResponse](body)
	if err != nil {
		c.logger.Warn("google cse response undecodable", "query", query, "error", err.Error())
		return nil
	}

	urls := make([]string, 0, len(response.Items))
	for _, item := range response.Items {
		if item.Link == "" {
			continue
		}
		urls = append(urls, item.Link)
		if len(urls) >= limit {
			break
		}
	}
	return urls
}

func (c *Client) get(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	defer utils.CloseWithLog(resp.Body)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, utils.TruncateString(string(body), 200))
	}
	return body, nil
}
