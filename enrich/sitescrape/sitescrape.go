// Package sitescrape extracts office contact records from a firm's official
// website. A generic heuristic scraper covers unknown sites; site-specific
// scrapers can be registered per hostname for layouts the heuristics cannot
// read.
package sitescrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/leofalp/firmenrich/enrich/country"
)

// maxOffices caps how many office records one page can produce.
const maxOffices = 10

// Office is one raw office record scraped from a page. Fields are unparsed
// and unformatted; normalization happens downstream.
type Office struct {
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Fax     string `json:"fax,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
}

var (
	phonePattern = regexp.MustCompile(`(?:\+?\d{1,3}[\s\-(]?)?(?:\(?\d{2,4}\)?[\s\-)]?){1,4}\d{3,4}`)
	faxHint      = regexp.MustCompile(`(?i)\bfax\b|facsimile`)

	// address-ish class/id attribute keywords
	addressKeywords = []string{"address", "office", "location", "branch"}
)

// Scrape runs the generic office extraction over doc: address candidates
// from <address> tags, address-ish class/id containers and country-name
// lines; phones from text and tel: links (fax-labelled links kept apart);
// emails from mailto: links. Candidates become [Office] records with phones,
// faxes and a page-level email paired in.
func Scrape(doc *goquery.Document, pageURL string) []Office {
	telPhones, telFaxes := telLinks(doc)
	emails := mailtoEmails(doc)
	candidates := addressCandidates(doc)

	var offices []Office
	for _, addr := range candidates {
		if len(offices) >= maxOffices {
			break
		}
		office := Office{Address: addr, Website: pageURL}
		if phones := phonePattern.FindAllString(addr, -1); len(phones) > 0 {
			office.Phone = strings.TrimSpace(phones[0])
			if len(phones) > 1 {
				office.Fax = strings.TrimSpace(phones[1])
			}
		}
		offices = append(offices, office)
	}

	// Pair unclaimed tel: numbers with offices by position.
	for i := range offices {
		if offices[i].Phone == "" && i < len(telPhones) {
			offices[i].Phone = telPhones[i]
		}
		if offices[i].Fax == "" && i < len(telFaxes) {
			offices[i].Fax = telFaxes[i]
		}
	}

	// No address candidates: fall back to tel: links whose surrounding text
	// names a country.
	if len(offices) == 0 {
		doc.Find(`a[href^="tel:"]`).EachWithBreak(func(_ int, link *goquery.Selection) bool {
			parent := collapseText(link.Parent())
			if parent == "" || !containsCountryName(parent) {
				return true
			}
			href, _ := link.Attr("href")
			offices = append(offices, Office{
				Address: parent,
				Phone:   strings.TrimSpace(strings.TrimPrefix(href, "tel:")),
				Website: pageURL,
			})
			return len(offices) < maxOffices
		})
	}

	// Fill missing emails with the page's primary mailto address.
	if len(emails) > 0 {
		for i := range offices {
			if offices[i].Email == "" {
				offices[i].Email = emails[0]
			}
		}
	}

	return offices
}

// telLinks collects tel: link numbers, split into phones and fax numbers by
// the link text.
func telLinks(doc *goquery.Document) (phones, faxes []string) {
	doc.Find(`a[href^="tel:"]`).Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		number := strings.TrimSpace(strings.TrimPrefix(href, "tel:"))
		if number == "" {
			return
		}
		if faxHint.MatchString(link.Text()) {
			faxes = append(faxes, number)
		} else {
			phones = append(phones, number)
		}
	})
	return phones, faxes
}

// mailtoEmails collects mailto: addresses in document order, deduplicated.
func mailtoEmails(doc *goquery.Document) []string {
	var emails []string
	seen := make(map[string]bool)
	doc.Find(`a[href^="mailto:"]`).Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		email := strings.TrimPrefix(href, "mailto:")
		if i := strings.IndexByte(email, '?'); i >= 0 {
			email = email[:i]
		}
		email = strings.TrimSpace(email)
		if email == "" || seen[email] {
			return
		}
		seen[email] = true
		emails = append(emails, email)
	})
	return emails
}

// addressCandidates collects address-like text blocks: <address> elements,
// elements whose class or id mentions an office keyword, and body lines that
// name a country and contain a comma.
func addressCandidates(doc *goquery.Document) []string {
	var candidates []string

	doc.Find("address").Each(func(_ int, tag *goquery.Selection) {
		if text := collapseText(tag); text != "" {
			candidates = append(candidates, text)
		}
	})

	doc.Find("[class]").Each(func(_ int, tag *goquery.Selection) {
		class, _ := tag.Attr("class")
		if hasAddressKeyword(class) {
			if text := collapseText(tag); text != "" {
				candidates = append(candidates, text)
			}
		}
	})

	doc.Find("[id]").Each(func(_ int, tag *goquery.Selection) {
		id, _ := tag.Attr("id")
		if hasAddressKeyword(id) {
			if text := collapseText(tag); text != "" {
				candidates = append(candidates, text)
			}
		}
	})

	for _, line := range strings.Split(doc.Find("body").Text(), "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 10 || !strings.Contains(line, ",") {
			continue
		}
		if containsCountryName(line) {
			candidates = append(candidates, normalizeWhitespace(line))
		}
	}

	// Dedup on collapsed whitespace, preserving first-seen order.
	seen := make(map[string]bool)
	var out []string
	for _, candidate := range candidates {
		norm := normalizeWhitespace(candidate)
		if norm == "" || seen[norm] {
			continue
		}
		seen[norm] = true
		out = append(out, norm)
	}
	return out
}

func hasAddressKeyword(attr string) bool {
	attr = strings.ToLower(attr)
	for _, keyword := range addressKeywords {
		if strings.Contains(attr, keyword) {
			return true
		}
	}
	return false
}

func containsCountryName(line string) bool {
	lower := strings.ToLower(line)
	for _, name := range country.Names() {
		if strings.Contains(lower, strings.ToLower(name)) {
			return true
		}
	}
	return false
}

// collapseText joins the non-empty text lines of a selection with ", " so
// multi-line address markup becomes one parseable string.
func collapseText(s *goquery.Selection) string {
	var parts []string
	for _, line := range strings.Split(s.Text(), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, ", ")
}

func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
