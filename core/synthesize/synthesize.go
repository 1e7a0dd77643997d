// Package synthesize composes a single factual M&A sentence from scanned
// evidence and assigns it a confidence tier.
package synthesize

import (
	"fmt"
	"strings"

	"github.com/leofalp/firmenrich/core/scan"
)

// Confidence is the coarse trust label attached to a synthesized result.
// It is a tier, not a probability.
type Confidence string

const (
	// High means a sentence was composed from evidence with a named
	// counterparty.
	High Confidence = "high"
	// Low means evidence existed but none of it was usable (no
	// counterparty could be extracted).
	Low Confidence = "low"
	// None means no evidence existed at all.
	None Confidence = "none"
)

// FallbackMode selects what happens when an evidence sentence matches none of
// the known verb forms. The two behaviours are deliberately both supported:
// one emits a generic involvement clause, the other demands an explicit verb.
type FallbackMode int

const (
	// FallbackGeneric composes "<firm> was involved in a merger or
	// acquisition with <other>" when no verb form matches.
	FallbackGeneric FallbackMode = iota
	// FallbackSkip skips the evidence item when no verb form matches and
	// moves on to the next one.
	FallbackSkip
)

// ParseFallbackMode maps a configuration string ("generic" or "skip") to a
// [FallbackMode]. Unknown values default to FallbackGeneric.
func ParseFallbackMode(s string) FallbackMode {
	if strings.EqualFold(strings.TrimSpace(s), "skip") {
		return FallbackSkip
	}
	return FallbackGeneric
}

// Synthesize walks items in scan order and composes one sentence from the
// first usable evidence item. Items with no counterparty are skipped. The
// sentence template is chosen by inspecting the evidence sentence
// (case-insensitive) in fixed priority: "acquired by", then "acquired", then
// "merged"; when none match, mode decides between a generic clause and a
// skip. A captured date is appended as " in <date>".
//
// The returned sentence is empty exactly when confidence is not [High]:
// [Low] when evidence existed but was unusable, [None] when items is empty.
func Synthesize(firmName string, items []scan.Evidence, mode FallbackMode) (string, Confidence) {
	if len(items) == 0 {
		return "", None
	}

	for _, item := range items {
		if len(item.OtherParties) == 0 {
			continue
		}
		other := item.OtherParties[0]
		lower := strings.ToLower(item.Sentence)

		var base string
		switch {
		case strings.Contains(lower, "acquired by"):
			base = fmt.Sprintf("%s was acquired by %s", firmName, other)
		case strings.Contains(lower, "acquired"):
			base = fmt.Sprintf("%s acquired %s", firmName, other)
		case strings.Contains(lower, "merged"):
			base = fmt.Sprintf("%s merged with %s", firmName, other)
		default:
			if mode == FallbackSkip {
				continue
			}
			base = fmt.Sprintf("%s was involved in a merger or acquisition with %s", firmName, other)
		}

		if item.Date != "" {
			base += " in " + item.Date
		}
		return base + ".", High
	}

	return "", Low
}
