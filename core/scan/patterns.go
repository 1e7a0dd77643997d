package scan

import "regexp"

// keywordPattern matches the positive M&A verbs. A sentence must contain at
// least one of these to become evidence. Multi-word phrases are listed before
// their single-word stems so the alternation stays readable; matching is not
// order-sensitive.
var keywordPattern = regexp.MustCompile(`(?i)\b(was acquired by|to be acquired|to acquire|completed the acquisition of|acquired|acquires|acquisition|merged|merger)\b`)

// negationPattern matches hedge and rumor vocabulary. Any hit disqualifies
// the sentence even when a positive keyword is present: speculation about a
// deal is not evidence of one, and minority-stake or partnership language
// describes transactions we must not report as M&A.
var negationPattern = regexp.MustCompile(`(?i)\b(rumor|rumour|speculation|exploring|considering|talks|minority|stake|partnership)\b`)

// datePatterns is tried in order; the first match wins. Month-day-year beats
// a bare year so "March 3, 2021" is not reported as just "2021". Bare years
// are restricted to 20xx to avoid picking up figures like "1 500" or page
// counts.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{1,2},?\s+\d{4}\b`),
	regexp.MustCompile(`\b(20\d{2})\b`),
}

// entityPattern captures runs of capitalized words as candidate organization
// names. Ampersands, periods, and hyphens are allowed inside a word so names
// like "Stone & Field Partners" or "K.-H. Holdings" survive. Single short
// words are excluded by the {2,} length requirement.
var entityPattern = regexp.MustCompile(`\b([A-Z][A-Za-z&.\-]{2,}(?:\s+[A-Z][A-Za-z&.\-]{2,})*)\b`)

// sentenceTerminators are the runes that end a sentence when followed by
// whitespace. Used by SplitSentences.
const sentenceTerminators = ".!?"
