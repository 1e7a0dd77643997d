// Package enrich assembles complete firm records: parsed and reformatted
// addresses, display phone and fax numbers, inferred currency, a templated
// about paragraph, offices scraped from the firm's own website, and the M&A
// status snippet produced by the extraction pipeline.
package enrich

import (
	"context"
	"io"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/leofalp/firmenrich/core/fetch"
	"github.com/leofalp/firmenrich/core/pipeline"
	"github.com/leofalp/firmenrich/enrich/about"
	"github.com/leofalp/firmenrich/enrich/address"
	"github.com/leofalp/firmenrich/enrich/country"
	"github.com/leofalp/firmenrich/enrich/phone"
	"github.com/leofalp/firmenrich/enrich/sitescrape"
)

// Office is one office as supplied by the caller, unparsed.
type Office struct {
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Fax     string `json:"fax,omitempty"`
	Website string `json:"website,omitempty"`
	Email   string `json:"email,omitempty"`
}

// Input is one enrichment request.
type Input struct {
	FirmName        string   `json:"firm_name,omitempty"`
	FirmType        string   `json:"firm_type,omitempty"`
	HQ              Office   `json:"hq"`
	AltOffices      []Office `json:"alt_offices,omitempty"`
	ServicesOffered []string `json:"services_offered,omitempty"`
	FundsServiced   []string `json:"funds_serviced,omitempty"`
	Currency        string   `json:"currency,omitempty"`
	OfficialDomains []string `json:"official_domains,omitempty"`
}

// OfficeRecord is one office after parsing and formatting.
type OfficeRecord struct {
	InputAddress     string         `json:"input_address,omitempty"`
	FormattedAddress string         `json:"formatted_address,omitempty"`
	Parsed           address.Parsed `json:"parsed"`
	FormattedPhone   string         `json:"formatted_phone,omitempty"`
	PhoneValid       bool           `json:"phone_valid"`
	FormattedFax     string         `json:"formatted_fax,omitempty"`
	FaxValid         bool           `json:"fax_valid"`
	Website          string         `json:"website,omitempty"`
	Email            string         `json:"email,omitempty"`
	CountryISO       string         `json:"country_iso,omitempty"`
}

// Record is the enriched firm record. The HQ's formatted fields are lifted
// to the top level; Offices holds the HQ and every alternate office.
type Record struct {
	FormattedPhone   string           `json:"formatted_phone,omitempty"`
	PhoneValid       bool             `json:"phone_valid"`
	FormattedFax     string           `json:"formatted_fax,omitempty"`
	FaxValid         bool             `json:"fax_valid"`
	FormattedAddress string           `json:"formatted_address,omitempty"`
	CountryISO       string           `json:"country_iso,omitempty"`
	Currency         string           `json:"currency,omitempty"`
	About            string           `json:"about,omitempty"`
	Offices          []OfficeRecord   `json:"offices"`
	MA               *pipeline.Result `json:"ma,omitempty"`
}

// PageFetcher fetches one page for office scraping. *fetch.Fetcher
// satisfies it.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) (fetch.Page, error)
}

// Enricher performs enrichment. Construct with [New]; the zero value is not
// usable.
type Enricher struct {
	pipe    *pipeline.Pipeline
	fetcher PageFetcher
	logger  *slog.Logger
}

// Option configures an [Enricher].
type Option func(*Enricher)

// WithPipeline enables M&A status extraction on [Enricher.Enrich].
func WithPipeline(pipe *pipeline.Pipeline) Option {
	return func(e *Enricher) {
		e.pipe = pipe
	}
}

// WithFetcher enables office scraping via [Enricher.ScrapeOffices].
func WithFetcher(fetcher PageFetcher) Option {
	return func(e *Enricher) {
		e.fetcher = fetcher
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Enricher) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New returns an [Enricher]. Without options it formats addresses, phones,
// currency and the about paragraph; add [WithPipeline] and [WithFetcher] for
// M&A extraction and website scraping.
func New(options ...Option) *Enricher {
	enricher := &Enricher{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, option := range options {
		option(enricher)
	}
	return enricher
}

// Enrich builds the full [Record] for input. The HQ's country drives phone
// formatting for offices whose own address has no recognizable country, and
// currency inference when the caller supplied none.
func (e *Enricher) Enrich(ctx context.Context, input Input) Record {
	hqParsed := address.Parse(input.HQ.Address)
	hqPhone, hqPhoneValid := phone.Format(input.HQ.Phone, hqParsed.CountryISO, hqParsed.City)
	hqFax, hqFaxValid := phone.Format(input.HQ.Fax, hqParsed.CountryISO, hqParsed.City)

	offices := []OfficeRecord{e.enrichOffice(input.HQ, hqParsed.CountryISO)}
	for _, alt := range input.AltOffices {
		offices = append(offices, e.enrichOffice(alt, hqParsed.CountryISO))
	}

	currency := input.Currency
	if currency == "" && hqParsed.Country != "" {
		currency = country.Currency(hqParsed.Country)
	}

	location := hqParsed.State
	if location == "" {
		location = hqParsed.City
	}
	if location == "" {
		location = hqParsed.Country
	}

	record := Record{
		FormattedPhone:   hqPhone,
		PhoneValid:       hqPhoneValid,
		FormattedFax:     hqFax,
		FaxValid:         hqFaxValid,
		FormattedAddress: address.Assemble(hqParsed),
		CountryISO:       hqParsed.CountryISO,
		Currency:         currency,
		About:            about.Generate(input.FirmName, input.FirmType, location, input.ServicesOffered, input.FundsServiced),
		Offices:          offices,
	}

	if e.pipe != nil && strings.TrimSpace(input.FirmName) != "" {
		result := e.pipe.Run(ctx, input.FirmName, input.OfficialDomains)
		record.MA = &result
	}

	return record
}

// enrichOffice parses and formats one office, falling back to the HQ's
// country for phone formatting when the office address has none.
func (e *Enricher) enrichOffice(office Office, fallbackISO string) OfficeRecord {
	parsed := address.Parse(office.Address)
	iso := parsed.CountryISO
	if iso == "" {
		iso = fallbackISO
	}
	formattedPhone, phoneValid := phone.Format(office.Phone, iso, parsed.City)
	formattedFax, faxValid := phone.Format(office.Fax, iso, parsed.City)
	return OfficeRecord{
		InputAddress:     office.Address,
		FormattedAddress: address.Assemble(parsed),
		Parsed:           parsed,
		FormattedPhone:   formattedPhone,
		PhoneValid:       phoneValid,
		FormattedFax:     formattedFax,
		FaxValid:         faxValid,
		Website:          office.Website,
		Email:            office.Email,
		CountryISO:       parsed.CountryISO,
	}
}

// ScrapeOffices fetches website, runs the site-specific scraper registered
// for its host (generic extraction when none matches or it finds nothing)
// and normalizes the raw offices. Returns nil when the fetch fails or no
// fetcher is configured.
func (e *Enricher) ScrapeOffices(ctx context.Context, website string) []OfficeRecord {
	if e.fetcher == nil {
		e.logger.Warn("scrape requested without a page fetcher", "website", website)
		return nil
	}

	page, err := e.fetcher.FetchPage(ctx, website)
	if err != nil {
		e.logger.Debug("scrape fetch failed", "website", website, "error", err.Error())
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		e.logger.Debug("scrape parse failed", "website", website, "error", err.Error())
		return nil
	}

	var raw []sitescrape.Office
	if scraper := sitescrape.Lookup(hostOf(website)); scraper != nil {
		raw = scraper(doc, website)
	}
	if len(raw) == 0 {
		raw = sitescrape.Scrape(doc, website)
	}

	records := make([]OfficeRecord, 0, len(raw))
	for _, office := range raw {
		records = append(records, e.enrichOffice(Office{
			Address: office.Address,
			Phone:   office.Phone,
			Fax:     office.Fax,
			Website: office.Website,
			Email:   office.Email,
		}, ""))
	}
	e.logger.Info("scrape complete", "website", website, "offices", len(records))
	return records
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return rawURL
	}
	return strings.ToLower(parsed.Hostname())
}
