// Package country resolves free-form country names to ISO codes and
// currencies. Lookups tolerate the spellings that appear in firm catalogs
// ("UK", "United States", "PRC") rather than requiring canonical names.
package country

import (
	"strings"
	"sync"

	"github.com/biter777/countries"
)

// currencyFallback covers countries whose currency mapping is missing or
// ambiguous in the upstream dataset, keyed by ISO-2 code.
var currencyFallback = map[string]string{
	"IN": "INR",
	"GB": "GBP",
	"US": "USD",
	"JP": "JPY",
	"CA": "CAD",
	"AU": "AUD",
	"SG": "SGD",
	"CN": "CNY",
	"DE": "EUR",
	"IE": "EUR",
	"FR": "EUR",
	"ES": "EUR",
	"IT": "EUR",
	"NL": "EUR",
}

// ISO2 resolves a country name (or code) to its ISO-2 code, or "" when the
// name is not recognized.
func ISO2(name string) string {
	code := lookup(name)
	if code == countries.Unknown {
		return ""
	}
	return code.Alpha2()
}

// CanonicalName resolves a country name (or code) to its canonical English
// name, or "" when not recognized.
func CanonicalName(name string) string {
	code := lookup(name)
	if code == countries.Unknown {
		return ""
	}
	return code.String()
}

// Currency infers the ISO 4217 currency code for a country name, or ""
// when the country or its currency is unknown.
func Currency(name string) string {
	code := lookup(name)
	if code == countries.Unknown {
		return ""
	}
	if currency := code.Currency(); currency.IsValid() {
		return currency.Alpha()
	}
	return currencyFallback[code.Alpha2()]
}

func lookup(name string) countries.CountryCode {
	name = strings.TrimSpace(name)
	if name == "" {
		return countries.Unknown
	}
	return countries.ByName(name)
}

var (
	namesOnce sync.Once
	names     []string
)

// Names returns the canonical English name of every known country. The
// slice is shared; callers must not modify it.
func Names() []string {
	namesOnce.Do(func() {
		for _, code := range countries.All() {
			if name := code.String(); name != "" {
				names = append(names, name)
			}
		}
	})
	return names
}
