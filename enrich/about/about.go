// Package about composes a short descriptive paragraph for a firm from its
// catalog fields. The output is deterministic templating, not generation:
// missing parts degrade to neutral phrasing instead of being dropped.
package about

import (
	"fmt"
	"strings"
)

const (
	maxServices  = 5
	maxFundTypes = 4
)

// Generate renders the "about" paragraph for a firm. firmType gets an a/an
// article; location, services and fundTypes may be empty and fall back to
// generic phrasing.
func Generate(firmName, firmType, location string, services, fundTypes []string) string {
	subject := strings.TrimSpace(firmName)
	if subject == "" {
		subject = "The firm"
	}

	kind := strings.TrimSpace(firmType)
	if kind == "" {
		kind = "firm"
	}

	servicesPart := "its services"
	if list := sentenceCaseList(services, maxServices); len(list) > 0 {
		servicesPart = strings.Join(list, ", ")
	}

	fundsPart := "its funds"
	if list := sentenceCaseList(fundTypes, maxFundTypes); len(list) > 0 {
		fundsPart = strings.Join(list, ", ")
	}

	locationPhrase := ""
	if location = strings.TrimSpace(location); location != "" {
		locationPhrase = " headquartered in " + location
	}

	return fmt.Sprintf(
		"%s is %s %s%s. It provides services including %s, and more. The fund types advised by the firm are %s, among others.",
		subject, article(kind), kind, locationPhrase, servicesPart, fundsPart,
	)
}

// article picks "a" or "an" by the leading vowel of word.
func article(word string) string {
	if word != "" && strings.ContainsRune("aeiou", rune(strings.ToLower(word)[0])) {
		return "an"
	}
	return "a"
}

// sentenceCaseList capitalizes the first letter of up to limit non-empty
// items.
func sentenceCaseList(items []string, limit int) []string {
	var out []string
	for _, item := range items {
		if len(out) >= limit {
			break
		}
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, strings.ToUpper(item[:1])+item[1:])
	}
	return out
}
