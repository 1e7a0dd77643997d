// Package phone formats phone and fax numbers for display. Numbers with an
// international prefix go through the phonenumbers library; otherwise a
// curated per-country template is filled from the raw digits, with the
// library as fallback for countries without a template.
package phone

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var (
	digitsPattern     = regexp.MustCompile(`\d`)
	nonDigitPattern   = regexp.MustCompile(`\D`)
	nonDialRunPattern = regexp.MustCompile(`[^\d+]`)
)

// Format renders raw as a display number for the given ISO-2 country. City
// selects a regional template where one exists.
//
// Resolution order: leading "+" numbers are parsed and formatted by the
// phonenumbers library; otherwise the country's template is filled with the
// raw digits (last six as the local part, the rest as area); otherwise the
// library parses with the country as region hint; as a last resort the bare
// digits are returned with a "+" prefix. The boolean reports whether the
// result looks like a usable number.
func Format(raw, countryISO, city string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	dialDigits := nonDialRunPattern.ReplaceAllString(raw, "")
	if strings.HasPrefix(dialDigits, "+") {
		if number, err := phonenumbers.Parse(dialDigits, ""); err == nil {
			return phonenumbers.Format(number, phonenumbers.INTERNATIONAL), phonenumbers.IsValidNumber(number)
		}
	}

	countryISO = strings.ToUpper(strings.TrimSpace(countryISO))
	if template := templateFor(countryISO, city); template != "" {
		digits := nonDigitPattern.ReplaceAllString(raw, "")
		area, local := splitAreaLocal(digits)
		formatted := strings.NewReplacer("{area}", area, "{local}", local).Replace(template)
		valid := len(digitsPattern.FindAllString(formatted, -1)) >= 6
		return formatted, valid
	}

	if number, err := phonenumbers.Parse(raw, countryISO); err == nil {
		return phonenumbers.Format(number, phonenumbers.INTERNATIONAL), phonenumbers.IsValidNumber(number)
	}

	digits := nonDigitPattern.ReplaceAllString(raw, "")
	if digits == "" {
		return "", false
	}
	return "+" + digits, len(digits) >= 6
}

func templateFor(countryISO, city string) string {
	entry, ok := dialTemplates[countryISO]
	if !ok {
		return ""
	}
	if strings.TrimSpace(city) != "" && entry.regional != "" {
		return entry.regional
	}
	return entry.national
}

// splitAreaLocal treats the last six digits as the local number and the rest
// as the area code. Numbers shorter than six digits are all local.
func splitAreaLocal(digits string) (area, local string) {
	if len(digits) >= 6 {
		return digits[:len(digits)-6], digits[len(digits)-6:]
	}
	return "", digits
}
