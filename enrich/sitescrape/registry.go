package sitescrape

import (
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// Scraper extracts raw office records from a parsed page. Implementations
// should be conservative and return only entries they are confident in; an
// empty result falls back to the generic [Scrape].
type Scraper func(doc *goquery.Document, pageURL string) []Office

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Scraper)
)

// Register binds a site-specific scraper to a hostname. Registering the bare
// host also covers its "www." form via [Lookup].
func Register(host string, scraper Scraper) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(host)] = scraper
}

// Lookup returns the scraper registered for host, trying the exact host
// first and then the host with a leading "www." stripped. Returns nil when
// no scraper matches.
func Lookup(host string) Scraper {
	registryMu.RLock()
	defer registryMu.RUnlock()
	host = strings.ToLower(host)
	if scraper, ok := registry[host]; ok {
		return scraper
	}
	if scraper, ok := registry[strings.TrimPrefix(host, "www.")]; ok {
		return scraper
	}
	return nil
}
