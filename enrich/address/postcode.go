package address

import (
	"regexp"
	"strings"

	"github.com/leofalp/firmenrich/enrich/country"
)

// postcodePatterns holds per-country postcode shapes, keyed by ISO-2 code.
// Countries absent here fall back to the generic pattern.
var postcodePatterns = map[string]*regexp.Regexp{
	"GB": regexp.MustCompile(`(?i)([A-Z]{1,2}\d[A-Z\d]?\s*\d[A-Z]{2})`),
	"US": regexp.MustCompile(`(\d{5}(?:-\d{4})?)`),
	"DE": regexp.MustCompile(`(\d{5})`),
	"CN": regexp.MustCompile(`(\d{6})`),
	"JP": regexp.MustCompile(`(\d{3}-\d{4}|\d{7})`),
	"SG": regexp.MustCompile(`(\d{6})`),
	"IN": regexp.MustCompile(`(\d{6})`),
	"FR": regexp.MustCompile(`(\d{5})`),
	"ES": regexp.MustCompile(`(\d{5})`),
	"SE": regexp.MustCompile(`(\d{3}\s*\d{2}|\d{5})`),
	"CH": regexp.MustCompile(`(\d{4})`),
	"TW": regexp.MustCompile(`(\d{3}-\d{3}|\d{6})`),
}

// genericPostcodePattern matches short numeric codes and UK-style
// alphanumeric codes when no country-specific pattern applies.
var genericPostcodePattern = regexp.MustCompile(`(?i)\b[0-9]{3,6}\b|[A-Z]{1,2}[0-9R][0-9A-Z]?\s?[0-9][A-Z]{2}\b`)

// ExtractPostcode finds the first postcode in raw. When countryHint resolves
// to a country with a known postcode shape, that shape is preferred; UK
// matches are normalized to the "outward inward" form. Returns "" when
// nothing matches.
func ExtractPostcode(raw, countryHint string) string {
	if raw == "" {
		return ""
	}
	if iso := country.ISO2(countryHint); iso != "" {
		if pattern, ok := postcodePatterns[iso]; ok {
			if match := pattern.FindStringSubmatch(raw); len(match) > 1 {
				if iso == "GB" {
					return NormalizeUKPostcode(match[1])
				}
				return strings.TrimSpace(match[1])
			}
		}
	}
	return strings.TrimSpace(genericPostcodePattern.FindString(raw))
}

// NormalizeUKPostcode uppercases a UK postcode and inserts the single space
// before the three-character inward code.
func NormalizeUKPostcode(postcode string) string {
	s := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(postcode)), " ", "")
	if s == "" {
		return ""
	}
	if len(s) > 3 {
		return s[:len(s)-3] + " " + s[len(s)-3:]
	}
	return s
}
