// Package search defines the pluggable URL-discovery contract used by the
// evidence pipeline, and selects a concrete backend from configuration.
//
// Providers return candidate URLs only; they never return errors. A backend
// that is unreachable, rate-limited, or missing credentials yields an empty
// slice, and failures are reported through the provider's logger.
package search

import (
	"context"
	"log/slog"

	"github.com/leofalp/firmenrich/internal/config"
	"github.com/leofalp/firmenrich/providers/search/duckduckgo"
	"github.com/leofalp/firmenrich/providers/search/googlecse"
	"github.com/leofalp/firmenrich/providers/search/googlenews"
	"github.com/leofalp/firmenrich/providers/search/serpapi"
)

// Provider discovers candidate URLs for a query.
type Provider interface {
	// Search returns up to limit URLs ordered by backend relevance.
	// Failures of any kind yield an empty slice, never an error.
	Search(ctx context.Context, query string, limit int) []string
}

// FromConfig selects a backend. An explicit cfg.SearchProvider wins;
// otherwise the best-configured one is chosen: Google Custom Search when
// both key and cx are present, SerpAPI when its key is present, and the
// keyless Google News RSS feed as the fallback.
func FromConfig(cfg config.Config, logger *slog.Logger) Provider {
	switch cfg.SearchProvider {
	case "googlecse":
		return googlecse.New(cfg.GoogleCSEKey, cfg.GoogleCSECX, googlecse.WithLogger(logger), googlecse.WithTimeout(cfg.SearchTimeout))
	case "serpapi":
		return serpapi.New(cfg.SerpAPIKey, serpapi.WithLogger(logger), serpapi.WithTimeout(cfg.SearchTimeout))
	case "googlenews":
		return googlenews.New(googlenews.WithLogger(logger), googlenews.WithTimeout(cfg.SearchTimeout))
	case "duckduckgo":
		return duckduckgo.New(duckduckgo.WithLogger(logger), duckduckgo.WithTimeout(cfg.SearchTimeout))
	}

	switch {
	case cfg.GoogleCSEKey != "" && cfg.GoogleCSECX != "":
		return googlecse.New(cfg.GoogleCSEKey, cfg.GoogleCSECX, googlecse.WithLogger(logger), googlecse.WithTimeout(cfg.SearchTimeout))
	case cfg.SerpAPIKey != "":
		return serpapi.New(cfg.SerpAPIKey, serpapi.WithLogger(logger), serpapi.WithTimeout(cfg.SearchTimeout))
	default:
		return googlenews.New(googlenews.WithLogger(logger), googlenews.WithTimeout(cfg.SearchTimeout))
	}
}
