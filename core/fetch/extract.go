package fetch

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// minContainerLength is the minimum text length for an article container
	// to be accepted as a block.
	minContainerLength = 300
	// minParagraphLength is the minimum text length for a fallback paragraph.
	minParagraphLength = 80
	// maxFallbackParagraphs caps how many paragraphs the fallback collects.
	maxFallbackParagraphs = 6
)

// containerSelectors is tried in order; the first matching container whose
// text passes the quality gates wins and extraction stops. Most press-release
// pages put the release body in one of these.
var containerSelectors = []string{
	"article",
	".press-release",
	".pressrelease",
	".news",
	".news-article",
	".article-body",
	".content",
}

// boilerplatePattern marks text as navigation/footer chrome rather than
// article content. A single hit rejects the whole block.
var boilerplatePattern = regexp.MustCompile(`(?i)(cookie|privacy policy|terms of use|all rights reserved|©|\bcontact us\b)`)

// ExtractBlocks pulls quality-gated text blocks out of a parsed page.
//
// It first walks [containerSelectors] in priority order and returns the text
// of the first container that is long enough and boilerplate-free, as a
// single block. If no container qualifies, it falls back to the first h1/h2
// heading plus up to [maxFallbackParagraphs] paragraphs, each individually
// gated; the fallback is accepted only when the combined text clears the
// container length threshold. Otherwise it returns nil.
func ExtractBlocks(doc *goquery.Document) []string {
	for _, selector := range containerSelectors {
		var block string
		doc.Find(selector).EachWithBreak(func(_ int, selection *goquery.Selection) bool {
			text := normalizeText(selection.Text())
			if passesGate(text, minContainerLength) {
				block = text
				return false
			}
			return true
		})
		if block != "" {
			return []string{block}
		}
	}

	return fallbackBlocks(doc)
}

// fallbackBlocks collects the first heading and a few gated paragraphs when
// no article container qualified.
func fallbackBlocks(doc *goquery.Document) []string {
	var blocks []string
	total := 0

	if heading := normalizeText(doc.Find("h1, h2").First().Text()); heading != "" {
		blocks = append(blocks, heading)
		total += len(heading)
	}

	kept := 0
	doc.Find("p").EachWithBreak(func(_ int, selection *goquery.Selection) bool {
		text := normalizeText(selection.Text())
		if passesGate(text, minParagraphLength) {
			blocks = append(blocks, text)
			total += len(text)
			kept++
		}
		return kept < maxFallbackParagraphs
	})

	if total < minContainerLength {
		return nil
	}
	return blocks
}

// passesGate reports whether text is long enough and free of boilerplate
// markers.
func passesGate(text string, minLength int) bool {
	if len(text) < minLength {
		return false
	}
	return !boilerplatePattern.MatchString(text)
}

// normalizeText collapses all runs of whitespace to single spaces.
func normalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
