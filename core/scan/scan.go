package scan

import (
	"strings"
)

// Evidence is one sentence judged relevant to an M&A event.
type Evidence struct {
	// Sentence is the matched sentence, whitespace-trimmed.
	Sentence string `json:"sentence"`

	// OtherParties holds candidate counterparty names in extraction order,
	// with the firm's own name excluded. May be empty; such items cannot
	// yield a high-confidence synthesis but are still recorded.
	OtherParties []string `json:"other_parties"`

	// Date is the first date pattern match in the sentence, empty when none.
	Date string `json:"date,omitempty"`
}

// Scan examines each text block for sentences describing an M&A event
// involving firmName and returns one [Evidence] per qualifying sentence, in
// document order.
//
// A sentence qualifies when it contains a positive M&A keyword and no
// negation keyword; negation always overrides a positive match. Counterparty
// candidates are capitalized multi-word spans, excluding any span that
// contains the firm's own name (case-insensitive).
func Scan(blocks []string, firmName string) []Evidence {
	var items []Evidence
	for _, block := range blocks {
		for _, sentence := range SplitSentences(block) {
			if !keywordPattern.MatchString(sentence) {
				continue
			}
			if negationPattern.MatchString(sentence) {
				continue
			}
			items = append(items, Evidence{
				Sentence:     sentence,
				OtherParties: extractParties(sentence, firmName),
				Date:         extractDate(sentence),
			})
		}
	}
	return items
}

// SplitSentences splits text on sentence-terminator punctuation followed by
// whitespace. The terminator stays with its sentence, and every returned
// sentence is whitespace-trimmed and non-empty.
func SplitSentences(text string) []string {
	var sentences []string
	start := 0
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if !strings.ContainsRune(sentenceTerminators, runes[i]) {
			continue
		}
		// Split only when the terminator is followed by whitespace or ends
		// the text, so decimals and abbreviations mid-token stay intact.
		if i+1 < len(runes) && !isSpace(runes[i+1]) {
			continue
		}
		if sentence := strings.TrimSpace(string(runes[start : i+1])); sentence != "" {
			sentences = append(sentences, sentence)
		}
		start = i + 1
	}
	if sentence := strings.TrimSpace(string(runes[start:])); sentence != "" {
		sentences = append(sentences, sentence)
	}
	return sentences
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

// extractParties returns capitalized entity spans from sentence, excluding
// any span containing firmName (case-insensitive) and collapsing duplicates
// while preserving first-seen order.
func extractParties(sentence, firmName string) []string {
	firmLower := strings.ToLower(strings.TrimSpace(firmName))

	var parties []string
	seen := make(map[string]bool)
	for _, match := range entityPattern.FindAllString(sentence, -1) {
		candidate := strings.TrimSpace(match)
		if candidate == "" {
			continue
		}
		if firmLower != "" && strings.Contains(strings.ToLower(candidate), firmLower) {
			continue
		}
		if seen[candidate] {
			continue
		}
		seen[candidate] = true
		parties = append(parties, candidate)
	}
	return parties
}

// extractDate returns the first date found in sentence following the fixed
// pattern priority (month-day-year before bare year), or "" when none match.
func extractDate(sentence string) string {
	for _, pattern := range datePatterns {
		if match := pattern.FindString(sentence); match != "" {
			return strings.TrimSpace(match)
		}
	}
	return ""
}
