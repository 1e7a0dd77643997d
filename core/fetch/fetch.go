package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"github.com/leofalp/firmenrich/internal/utils"
)

const (
	// DefaultTimeout is the default per-request timeout.
	DefaultTimeout = 8 * time.Second
	// DefaultUserAgent identifies the enrichment client to origin servers.
	DefaultUserAgent = "firmenrich-bot/1.0"
	// MaxBodySize is the maximum response body size (10MB)
	MaxBodySize = 10 * 1024 * 1024
	// DialTimeout is the maximum time to wait for a TCP connection
	DialTimeout = 10 * time.Second
	// TLSHandshakeTimeout is the maximum time to wait for TLS handshake
	TLSHandshakeTimeout = 10 * time.Second
	// ResponseHeaderTimeout is the maximum time to wait for response headers
	ResponseHeaderTimeout = 10 * time.Second
	// IdleConnTimeout is the maximum time an idle connection can be reused
	IdleConnTimeout = 90 * time.Second
)

// ErrKind categorises how a fetch failed. The pipeline treats every kind as
// "no usable content" but logs the cause.
type ErrKind string

const (
	KindNone    ErrKind = ""
	KindBadURL  ErrKind = "bad_url"
	KindRequest ErrKind = "request"
	KindStatus  ErrKind = "status"
	KindRead    ErrKind = "read"
	KindParse   ErrKind = "parse"
)

// Result is the outcome of fetching one URL. Blocks is non-empty only when
// Kind is [KindNone] and the page yielded text that passed the quality gates.
type Result struct {
	URL    string
	Blocks []string
	Kind   ErrKind
	Err    error
}

// OK reports whether the fetch itself succeeded. A successful fetch may still
// carry zero blocks when no content passed the gates.
func (r Result) OK() bool {
	return r.Kind == KindNone
}

// Page is a raw fetched page for consumers that need more than gated text
// blocks: the site scraper walks the HTML and the HTTP service returns the
// Markdown rendering as a preview.
type Page struct {
	URL      string `json:"url"`
	HTML     string `json:"html"`
	Markdown string `json:"markdown"`
}

// Fetcher performs bounded single-GET page retrievals. The zero value is not
// usable; construct with [New].
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a [Fetcher].
type Option func(*Fetcher)

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(f *Fetcher) {
		if timeout > 0 {
			f.timeout = timeout
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(f *Fetcher) {
		if userAgent != "" {
			f.userAgent = userAgent
		}
	}
}

// New returns a [Fetcher] with a fully timeout-configured HTTP transport so
// a slow or unresponsive origin cannot block a pipeline run indefinitely.
//
// Example:
//
//	fetcher := fetch.New(fetch.WithTimeout(5 * time.Second))
//	result := fetcher.Fetch(ctx, "https://example.com/press/acme-deal")
func New(options ...Option) *Fetcher {
	fetcher := &Fetcher{
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, option := range options {
		option(fetcher)
	}

	fetcher.client = &http.Client{
		Timeout: fetcher.timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   TLSHandshakeTimeout,
			ResponseHeaderTimeout: ResponseHeaderTimeout,
			IdleConnTimeout:       IdleConnTimeout,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   10,
			ForceAttemptHTTP2:     true,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			// Allow up to 10 redirects
			if len(via) >= 10 {
				return fmt.Errorf("too many redirects (>10)")
			}
			return nil
		},
	}
	return fetcher
}

// Fetch retrieves rawURL and extracts quality-gated text blocks from it.
// It never returns an error: failures are recorded in [Result.Kind] and
// [Result.Err], and a page with no qualifying content yields an OK result
// with zero blocks.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) Result {
	html, result := f.get(ctx, rawURL)
	if !result.OK() {
		return result
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		result.Kind = KindParse
		result.Err = fmt.Errorf("failed to parse HTML: %w", err)
		return result
	}

	result.Blocks = ExtractBlocks(doc)
	return result
}

// FetchPage retrieves rawURL and returns the raw HTML together with a
// Markdown rendering. Unlike [Fetcher.Fetch] it reports failures as errors,
// since its callers (site scraping, page preview) treat a failed fetch as
// fatal for their operation.
func (f *Fetcher) FetchPage(ctx context.Context, rawURL string) (Page, error) {
	html, result := f.get(ctx, rawURL)
	if !result.OK() {
		return Page{}, result.Err
	}

	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return Page{}, fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}

	return Page{URL: result.URL, HTML: html, Markdown: markdown}, nil
}

// get performs the single bounded GET and returns the body. The returned
// Result carries the final URL after redirects and, on failure, the kind and
// cause.
func (f *Fetcher) get(ctx context.Context, rawURL string) (string, Result) {
	result := Result{URL: rawURL}

	url := strings.TrimSpace(rawURL)
	if url == "" {
		result.Kind = KindBadURL
		result.Err = fmt.Errorf("URL cannot be empty")
		return "", result
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		url = "https://" + url
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctxWithTimeout, http.MethodGet, url, nil)
	if err != nil {
		result.Kind = KindBadURL
		result.Err = fmt.Errorf("failed to create request: %w", err)
		return "", result
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		result.Kind = KindRequest
		if ctxWithTimeout.Err() != nil {
			result.Err = fmt.Errorf("request timeout or canceled: %w", err)
		} else {
			result.Err = fmt.Errorf("failed to fetch URL: %w", err)
		}
		return "", result
	}
	defer utils.CloseWithLog(resp.Body)

	if resp.StatusCode != http.StatusOK {
		result.Kind = KindStatus
		result.Err = fmt.Errorf("unexpected status code: %d %s", resp.StatusCode, resp.Status)
		return "", result
	}

	// Read in a goroutine so context cancellation is honoured even during
	// slow body reads.
	limitedReader := io.LimitReader(resp.Body, MaxBodySize)

	type readResult struct {
		data []byte
		err  error
	}

	readChan := make(chan readResult, 1)
	go func() {
		data, err := io.ReadAll(limitedReader)
		readChan <- readResult{data: data, err: err}
	}()

	var body []byte
	select {
	case <-ctxWithTimeout.Done():
		result.Kind = KindRead
		result.Err = fmt.Errorf("timeout while reading response body: %w", ctxWithTimeout.Err())
		return "", result
	case read := <-readChan:
		if read.err != nil {
			result.Kind = KindRead
			result.Err = fmt.Errorf("failed to read response body: %w", read.err)
			return "", result
		}
		body = read.data
	}

	if len(body) == MaxBodySize {
		result.Kind = KindRead
		result.Err = fmt.Errorf("response body exceeds maximum size of %d bytes", MaxBodySize)
		return "", result
	}

	result.URL = resp.Request.URL.String()
	return string(body), result
}
