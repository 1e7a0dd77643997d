package pipeline

import (
	"context"
	"io"
	"log/slog"

	"github.com/leofalp/firmenrich/core/fetch"
	"github.com/leofalp/firmenrich/core/policy"
	"github.com/leofalp/firmenrich/core/scan"
	"github.com/leofalp/firmenrich/core/synthesize"
	"github.com/leofalp/firmenrich/providers/search"
)

// maxProvenance caps how many evidence items are recorded as provenance for
// a successful result.
const maxProvenance = 2

// DefaultSearchLimit is the per-query URL cap used when no limit is set.
const DefaultSearchLimit = 8

// PageFetcher is the fetching dependency of the pipeline. *fetch.Fetcher
// satisfies it; tests substitute a canned implementation.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) fetch.Result
}

// ProvenanceEntry records one scanned sentence supporting a returned snippet.
type ProvenanceEntry struct {
	URL     string `json:"url"`
	Excerpt string `json:"excerpt"`
	Date    string `json:"date,omitempty"`
}

// Result is the JSON-serializable outcome of one pipeline run.
//
// Invariant: Snippet is non-empty exactly when Confidence is
// [synthesize.High]. Provenance entries always reference sentences that were
// actually scanned.
type Result struct {
	Snippet    string                `json:"snippet,omitempty"`
	Confidence synthesize.Confidence `json:"confidence"`
	SourceType policy.Classification `json:"source_type,omitempty"`
	Provenance []ProvenanceEntry     `json:"provenance"`
}

// Pipeline runs evidence extraction. Construct with [New]; the zero value is
// not usable.
type Pipeline struct {
	search   search.Provider
	fetcher  PageFetcher
	limit    int
	fallback synthesize.FallbackMode
	logger   *slog.Logger
}

// Option configures a [Pipeline].
type Option func(*Pipeline)

// WithLimit sets the per-query URL cap passed to the search provider.
func WithLimit(limit int) Option {
	return func(p *Pipeline) {
		if limit > 0 {
			p.limit = limit
		}
	}
}

// WithFallbackMode sets the synthesis behaviour for evidence sentences with
// no matched verb form.
func WithFallbackMode(mode synthesize.FallbackMode) Option {
	return func(p *Pipeline) {
		p.fallback = mode
	}
}

// WithLogger sets the logger for stage and per-URL reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New returns a [Pipeline] using the given search provider and fetcher.
//
// Example:
//
//	pipe := pipeline.New(provider, fetch.New(),
//	    pipeline.WithFallbackMode(synthesize.FallbackSkip),
//	)
//	result := pipe.Run(ctx, "Acme Capital", []string{"acmecapital.com"})
func New(provider search.Provider, fetcher PageFetcher, options ...Option) *Pipeline {
	pipeline := &Pipeline{
		search:   provider,
		fetcher:  fetcher,
		limit:    DefaultSearchLimit,
		fallback: synthesize.FallbackGeneric,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, option := range options {
		option(pipeline)
	}
	return pipeline
}

// candidate is a discovered URL that survived policy filtering.
type candidate struct {
	url   string
	class policy.Classification
}

// Run executes the full extraction for firmName. It never returns an error:
// every failure mode degrades the confidence tier instead. An empty firm
// name simply degrades to a no-evidence result.
func (p *Pipeline) Run(ctx context.Context, firmName string, officialDomains []string) Result {
	// Discovering: union of all query results, deduplicated in
	// first-discovery order so "first success wins" is reproducible.
	var discovered []string
	seen := make(map[string]bool)
	for _, query := range BuildQueries(firmName) {
		p.logger.Debug("discovering", "firm", firmName, "query", query)
		for _, url := range p.search.Search(ctx, query, p.limit) {
			if url == "" || seen[url] {
				continue
			}
			seen[url] = true
			discovered = append(discovered, url)
		}
	}
	p.logger.Info("discovery complete", "firm", firmName, "urls", len(discovered))

	// Filtering: drop blocked URLs before any network access.
	var candidates []candidate
	for _, url := range discovered {
		class := policy.Classify(url, officialDomains)
		if class == policy.Blocked {
			p.logger.Debug("filtered blocked url", "url", url)
			continue
		}
		candidates = append(candidates, candidate{url: url, class: class})
	}
	p.logger.Info("filtering complete", "firm", firmName, "candidates", len(candidates))

	// Fetching, Scanning, Synthesizing: strictly sequential, first
	// synthesized sentence wins, no retries.
	sawEvidence := false
	for _, cand := range candidates {
		result := p.fetcher.Fetch(ctx, cand.url)
		if !result.OK() {
			p.logger.Debug("fetch failed", "url", cand.url, "kind", string(result.Kind), "error", result.Err)
			continue
		}
		if len(result.Blocks) == 0 {
			p.logger.Debug("no usable content", "url", cand.url)
			continue
		}

		items := scan.Scan(result.Blocks, firmName)
		if len(items) == 0 {
			p.logger.Debug("no evidence in page", "url", cand.url)
			continue
		}
		sawEvidence = true

		sentence, confidence := synthesize.Synthesize(firmName, items, p.fallback)
		if sentence == "" {
			p.logger.Debug("evidence unusable", "url", cand.url, "items", len(items))
			continue
		}

		provenance := make([]ProvenanceEntry, 0, maxProvenance)
		for i, item := range items {
			if i >= maxProvenance {
				break
			}
			provenance = append(provenance, ProvenanceEntry{
				URL:     cand.url,
				Excerpt: item.Sentence,
				Date:    item.Date,
			})
		}

		p.logger.Info("synthesis succeeded", "firm", firmName, "url", cand.url, "confidence", string(confidence))
		return Result{
			Snippet:    sentence,
			Confidence: confidence,
			SourceType: cand.class,
			Provenance: provenance,
		}
	}

	// Done without a sentence: low when evidence existed but was unusable,
	// none otherwise.
	confidence := synthesize.None
	if sawEvidence {
		confidence = synthesize.Low
	}
	p.logger.Info("extraction exhausted", "firm", firmName, "confidence", string(confidence))
	return Result{Confidence: confidence, Provenance: []ProvenanceEntry{}}
}
