package policy

import (
	"net/url"
	"strings"
)

// Classification is the trust label a URL receives before fetching.
type Classification string

const (
	// Blocked URLs must never be fetched.
	Blocked Classification = "blocked"
	// Official URLs belong to one of the firm's own domains.
	Official Classification = "official"
	// PublicNews is every URL that is neither blocked nor official.
	PublicNews Classification = "public_news"
)

// Classify labels rawURL against the fixed blocklist and the caller-supplied
// official domains. The decision order is:
//
//  1. Host contains a blocklist entry as a substring: [Blocked]. This is
//     checked first and wins even when the host would also match an official
//     domain.
//  2. Host equals an official domain, or is a subdomain of one: [Official].
//  3. Anything else, including malformed URLs with no parsable host:
//     [PublicNews].
//
// Classify is a pure function: no network access, no side effects, never
// panics on malformed input.
func Classify(rawURL string, officialDomains []string) Classification {
	host := hostOf(rawURL)

	for _, blocked := range blockedDomains {
		if strings.Contains(host, blocked) {
			return Blocked
		}
	}

	for _, domain := range officialDomains {
		domain = strings.ToLower(strings.TrimSpace(domain))
		if domain == "" {
			continue
		}
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return Official
		}
	}

	return PublicNews
}

// hostOf extracts the lowercased host (without port) from rawURL.
// Malformed URLs yield an empty host.
func hostOf(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}
