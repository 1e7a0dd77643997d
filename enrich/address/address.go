// Package address parses free-form office addresses into structured parts
// and reassembles them into a standard display form. Parsing is heuristic:
// comma tokens, per-country postcode shapes, and a country lookup on the
// trailing token.
package address

import (
	"regexp"
	"strings"

	"github.com/leofalp/firmenrich/enrich/country"
)

// Parsed holds the structured parts of one address. Any field may be empty.
type Parsed struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Postcode   string `json:"postcode,omitempty"`
	Country    string `json:"country,omitempty"`
	CountryISO string `json:"country_iso,omitempty"`
}

// Parse splits raw on commas and assigns tokens to street, city, state and
// country. The trailing token is tried as a country name; the postcode is
// extracted with that country's shape and removed from the remaining tokens.
// With three or more tokens left, the last two become state and city and the
// rest join back into the street.
func Parse(raw string) Parsed {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Parsed{}
	}

	var tokens []string
	for _, token := range strings.Split(raw, ",") {
		if token = strings.TrimSpace(token); token != "" {
			tokens = append(tokens, token)
		}
	}
	if len(tokens) == 0 {
		return Parsed{}
	}

	countryToken := tokens[len(tokens)-1]
	parsed := Parsed{Postcode: ExtractPostcode(raw, countryToken)}

	if parsed.Postcode != "" {
		tokens = removePostcode(tokens, parsed.Postcode)
	}

	if name := country.CanonicalName(countryToken); name != "" {
		parsed.Country = name
		parsed.CountryISO = country.ISO2(countryToken)
		if len(tokens) > 0 && strings.EqualFold(tokens[len(tokens)-1], countryToken) {
			tokens = tokens[:len(tokens)-1]
		}
	} else {
		// Keep the raw token as country but leave it in place for the
		// street/city split.
		parsed.Country = countryToken
	}

	switch {
	case len(tokens) == 1:
		parsed.Street = tokens[0]
	case len(tokens) == 2:
		parsed.Street, parsed.City = tokens[0], tokens[1]
	case len(tokens) >= 3:
		parsed.Street = strings.Join(tokens[:len(tokens)-2], ", ")
		parsed.City = tokens[len(tokens)-2]
		parsed.State = tokens[len(tokens)-1]
	}

	if parsed.City != "" && strings.EqualFold(parsed.City, parsed.Country) {
		parsed.City = ""
	}
	if parsed.State != "" && strings.EqualFold(parsed.State, parsed.Country) {
		parsed.State = ""
	}

	return parsed
}

// removePostcode strips postcode occurrences from each token, dropping
// tokens that become empty.
func removePostcode(tokens []string, postcode string) []string {
	pattern, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(postcode))
	if err != nil {
		return tokens
	}
	var kept []string
	for _, token := range tokens {
		if token = strings.TrimSpace(pattern.ReplaceAllString(token, "")); token != "" {
			kept = append(kept, token)
		}
	}
	return kept
}

// Assemble renders a [Parsed] address as newline-separated display lines in
// street, city, state, postcode, country order. A city equal to the country
// is dropped, as are consecutive duplicate lines.
func Assemble(parsed Parsed) string {
	var parts []string
	if parsed.Street != "" {
		parts = append(parts, parsed.Street)
	}
	if parsed.City != "" && !strings.EqualFold(parsed.City, parsed.Country) {
		parts = append(parts, parsed.City)
	}
	if parsed.State != "" {
		parts = append(parts, parsed.State)
	}
	if parsed.Postcode != "" {
		parts = append(parts, parsed.Postcode)
	}
	if parsed.Country != "" {
		parts = append(parts, parsed.Country)
	}

	var lines []string
	previous := ""
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" || strings.EqualFold(part, previous) {
			continue
		}
		lines = append(lines, part)
		previous = part
	}
	return strings.Join(lines, "\n")
}
