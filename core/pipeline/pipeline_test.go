package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/leofalp/firmenrich/core/fetch"
	"github.com/leofalp/firmenrich/core/policy"
	"github.com/leofalp/firmenrich/core/synthesize"
)

// stubSearch returns the same URL list for every query.
type stubSearch struct {
	byQuery map[string][]string
	all     []string
}

func (s stubSearch) Search(_ context.Context, query string, _ int) []string {
	if s.byQuery != nil {
		return s.byQuery[query]
	}
	return s.all
}

// stubFetcher serves canned blocks per URL and records the fetch order.
// URLs absent from pages fail with a request error.
type stubFetcher struct {
	pages map[string][]string
	calls []string
}

func (f *stubFetcher) Fetch(_ context.Context, url string) fetch.Result {
	f.calls = append(f.calls, url)
	blocks, ok := f.pages[url]
	if !ok {
		return fetch.Result{URL: url, Kind: fetch.KindRequest, Err: errors.New("no route to host")}
	}
	return fetch.Result{URL: url, Blocks: blocks}
}

// TestRun_ScenarioA: a single page with a passive-voice acquisition sentence
// produces that sentence back with high confidence.
func TestRun_ScenarioA(t *testing.T) {
	url := "https://news.example/acme-globalco"
	fetcher := &stubFetcher{pages: map[string][]string{
		url: {"Acme Capital was acquired by GlobalCo in 2021."},
	}}
	pipe := New(stubSearch{all: []string{url}}, fetcher)

	result := pipe.Run(context.Background(), "Acme Capital", nil)

	if result.Snippet != "Acme Capital was acquired by GlobalCo in 2021." {
		t.Errorf("Snippet = %q", result.Snippet)
	}
	if result.Confidence != synthesize.High {
		t.Errorf("Confidence = %q, want high", result.Confidence)
	}
	if result.SourceType != policy.PublicNews {
		t.Errorf("SourceType = %q, want public_news", result.SourceType)
	}
	if len(result.Provenance) != 1 {
		t.Fatalf("Provenance = %#v, want one entry", result.Provenance)
	}
	if result.Provenance[0].URL != url || result.Provenance[0].Date != "2021" {
		t.Errorf("Provenance[0] = %#v", result.Provenance[0])
	}
}

// TestRun_ScenarioB: a hedged sentence ("exploring") yields no evidence and
// the run terminates with confidence none.
func TestRun_ScenarioB(t *testing.T) {
	url := "https://news.example/acme-rumor"
	fetcher := &stubFetcher{pages: map[string][]string{
		url: {"Acme Capital is exploring a possible merger with GlobalCo."},
	}}
	pipe := New(stubSearch{all: []string{url}}, fetcher)

	result := pipe.Run(context.Background(), "Acme Capital", nil)

	if result.Snippet != "" || result.Confidence != synthesize.None {
		t.Errorf("result = (%q, %q), want (\"\", none)", result.Snippet, result.Confidence)
	}
	if len(result.Provenance) != 0 {
		t.Errorf("Provenance = %#v, want empty", result.Provenance)
	}
}

// TestRun_ScenarioC: when every discovered URL is blocked, zero fetches are
// performed and the run returns none with empty provenance.
func TestRun_ScenarioC(t *testing.T) {
	fetcher := &stubFetcher{}
	pipe := New(stubSearch{all: []string{
		"https://www.bloomberg.com/news/acme",
		"https://pitchbook.com/profiles/acme",
	}}, fetcher)

	result := pipe.Run(context.Background(), "Acme Capital", nil)

	if len(fetcher.calls) != 0 {
		t.Errorf("fetch calls = %#v, want none for blocked URLs", fetcher.calls)
	}
	if result.Snippet != "" || result.Confidence != synthesize.None {
		t.Errorf("result = (%q, %q), want (\"\", none)", result.Snippet, result.Confidence)
	}
	if len(result.Provenance) != 0 {
		t.Errorf("Provenance = %#v, want empty", result.Provenance)
	}
}

// TestRun_ScenarioD: a merger sentence without a date composes the
// merged-with template with no trailing date clause.
func TestRun_ScenarioD(t *testing.T) {
	url := "https://news.example/acme-betafund"
	fetcher := &stubFetcher{pages: map[string][]string{
		url: {"Acme Capital merged with BetaFund."},
	}}
	pipe := New(stubSearch{all: []string{url}}, fetcher)

	result := pipe.Run(context.Background(), "Acme Capital", nil)

	if result.Snippet != "Acme Capital merged with BetaFund." {
		t.Errorf("Snippet = %q", result.Snippet)
	}
	if result.Confidence != synthesize.High {
		t.Errorf("Confidence = %q, want high", result.Confidence)
	}
}

// TestRun_OfficialSource verifies the winning URL's classification is carried
// into the result.
func TestRun_OfficialSource(t *testing.T) {
	url := "https://ir.acmecapital.com/press/deal"
	fetcher := &stubFetcher{pages: map[string][]string{
		url: {"Acme Capital acquired BetaFund."},
	}}
	pipe := New(stubSearch{all: []string{url}}, fetcher)

	result := pipe.Run(context.Background(), "Acme Capital", []string{"acmecapital.com"})

	if result.SourceType != policy.Official {
		t.Errorf("SourceType = %q, want official", result.SourceType)
	}
}

// TestRun_OrderedDedup verifies URLs are visited in first-discovery order
// with duplicates across queries collapsed.
func TestRun_OrderedDedup(t *testing.T) {
	queries := BuildQueries("Acme Capital")
	byQuery := map[string][]string{
		queries[0]: {"https://a.example", "https://b.example"},
		queries[1]: {"https://b.example", "https://c.example"},
		queries[2]: {"https://a.example"},
	}
	fetcher := &stubFetcher{} // every fetch fails
	pipe := New(stubSearch{byQuery: byQuery}, fetcher)

	pipe.Run(context.Background(), "Acme Capital", nil)

	want := []string{"https://a.example", "https://b.example", "https://c.example"}
	if !reflect.DeepEqual(fetcher.calls, want) {
		t.Errorf("fetch order = %#v, want %#v", fetcher.calls, want)
	}
}

// TestRun_FirstSuccessWins verifies the loop stops at the first synthesized
// sentence and later candidates are never fetched.
func TestRun_FirstSuccessWins(t *testing.T) {
	first := "https://a.example/deal"
	second := "https://b.example/deal"
	fetcher := &stubFetcher{pages: map[string][]string{
		first:  {"Acme Capital acquired BetaFund."},
		second: {"Acme Capital merged with GammaCo."},
	}}
	pipe := New(stubSearch{all: []string{first, second}}, fetcher)

	result := pipe.Run(context.Background(), "Acme Capital", nil)

	if len(fetcher.calls) != 1 || fetcher.calls[0] != first {
		t.Errorf("fetch calls = %#v, want only the first URL", fetcher.calls)
	}
	if result.Snippet != "Acme Capital acquired BetaFund." {
		t.Errorf("Snippet = %q", result.Snippet)
	}
}

// TestRun_FailedFetchContinues verifies a fetch failure is a permanent
// verdict for that URL only and the loop moves on.
func TestRun_FailedFetchContinues(t *testing.T) {
	dead := "https://dead.example"
	live := "https://live.example"
	fetcher := &stubFetcher{pages: map[string][]string{
		live: {"Acme Capital acquired BetaFund."},
	}}
	pipe := New(stubSearch{all: []string{dead, live}}, fetcher)

	result := pipe.Run(context.Background(), "Acme Capital", nil)

	if result.Confidence != synthesize.High {
		t.Errorf("Confidence = %q, want high after recovering from failed fetch", result.Confidence)
	}
	if !reflect.DeepEqual(fetcher.calls, []string{dead, live}) {
		t.Errorf("fetch calls = %#v", fetcher.calls)
	}
}

// TestRun_UnusableEvidenceDegradesToLow verifies evidence without a
// counterparty yields low confidence at the end of the run.
func TestRun_UnusableEvidenceDegradesToLow(t *testing.T) {
	url := "https://news.example/vague"
	fetcher := &stubFetcher{pages: map[string][]string{
		url: {"Acme Capital completed the acquisition of a regional rival."},
	}}
	pipe := New(stubSearch{all: []string{url}}, fetcher)

	result := pipe.Run(context.Background(), "Acme Capital", nil)

	if result.Snippet != "" || result.Confidence != synthesize.Low {
		t.Errorf("result = (%q, %q), want (\"\", low)", result.Snippet, result.Confidence)
	}
}

// TestRun_FallbackModes verifies the configured synthesis fallback reaches
// the synthesizer: a verb-less evidence sentence succeeds in generic mode
// and degrades to low in skip mode.
func TestRun_FallbackModes(t *testing.T) {
	url := "https://news.example/notice"
	pages := map[string][]string{
		url: {"BetaFund announced the acquisition alongside Acme Capital."},
	}

	t.Run("generic", func(t *testing.T) {
		fetcher := &stubFetcher{pages: pages}
		pipe := New(stubSearch{all: []string{url}}, fetcher, WithFallbackMode(synthesize.FallbackGeneric))

		result := pipe.Run(context.Background(), "Acme Capital", nil)

		want := "Acme Capital was involved in a merger or acquisition with BetaFund."
		if result.Snippet != want {
			t.Errorf("Snippet = %q, want %q", result.Snippet, want)
		}
	})

	t.Run("skip", func(t *testing.T) {
		fetcher := &stubFetcher{pages: pages}
		pipe := New(stubSearch{all: []string{url}}, fetcher, WithFallbackMode(synthesize.FallbackSkip))

		result := pipe.Run(context.Background(), "Acme Capital", nil)

		if result.Snippet != "" || result.Confidence != synthesize.Low {
			t.Errorf("result = (%q, %q), want (\"\", low)", result.Snippet, result.Confidence)
		}
	})
}

// TestRun_Idempotent verifies two runs over identical canned inputs produce
// byte-identical JSON results.
func TestRun_Idempotent(t *testing.T) {
	url := "https://news.example/acme"
	pages := map[string][]string{
		url: {"Acme Capital was acquired by GlobalCo in 2021. Analysts praised the deal."},
	}

	run := func() []byte {
		fetcher := &stubFetcher{pages: pages}
		pipe := New(stubSearch{all: []string{url}}, fetcher)
		result := pipe.Run(context.Background(), "Acme Capital", nil)
		encoded, err := json.Marshal(result)
		if err != nil {
			t.Fatalf("marshal failed: %v", err)
		}
		return encoded
	}

	first := run()
	second := run()
	if string(first) != string(second) {
		t.Errorf("runs differ:\n%s\n%s", first, second)
	}
}

// TestRun_EmptyFirmName verifies the pipeline executes and degrades rather
// than failing on empty input.
func TestRun_EmptyFirmName(t *testing.T) {
	fetcher := &stubFetcher{}
	pipe := New(stubSearch{}, fetcher)

	result := pipe.Run(context.Background(), "", nil)

	if result.Confidence != synthesize.None {
		t.Errorf("Confidence = %q, want none", result.Confidence)
	}
}

// TestBuildQueries verifies one query per template with the firm name quoted.
func TestBuildQueries(t *testing.T) {
	queries := BuildQueries("Acme Capital")

	if len(queries) != len(queryTemplates) {
		t.Fatalf("BuildQueries() returned %d queries, want %d", len(queries), len(queryTemplates))
	}
	if queries[0] != `"Acme Capital" acquired` {
		t.Errorf("queries[0] = %q", queries[0])
	}
	for _, query := range queries {
		if query[0] != '"' {
			t.Errorf("query %q does not quote the firm name", query)
		}
	}
}
