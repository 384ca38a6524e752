// Package evidence derives clause-level quotes and source attribution from
// retrieved chunks.
package evidence

import (
	"fmt"
	"strings"

	"carbongpt/internal/domain"
	"carbongpt/internal/sentence"
)

// DefaultKeywords are the timing-related phrases quoted from standard
// documents. The list is configuration; tests and deployments may override
// it without code changes.
var DefaultKeywords = []string{
	"validation timeline", "validation period", "validation deadline",
	"validation shall be completed", "validation must be completed",
	"validation must occur", "validation shall occur",
	"validation timing", "validation requirements", "validation is required to be completed",
	"validation is required within", "validation shall be conducted within",
	"validation prior to certification", "validation prior to verification",
	"verification timeline", "verification period", "verification deadline",
	"verification shall be completed", "verification must be completed",
	"verification must occur", "verification shall occur",
	"verification timing", "verification requirements", "verification is required to be completed",
	"verification is required within", "verification shall be conducted within",
	"certification timeline", "certification period", "certification deadline",
}

// DefaultMaxQuotes caps how many quotes a single retrieval may surface.
const DefaultMaxQuotes = 10

// Extractor scans retrieved chunks for sentences matching a keyword list.
type Extractor struct {
	keywords  []string
	maxQuotes int
}

// NewExtractor builds an extractor. Empty keywords and a non-positive cap
// fall back to the defaults.
func NewExtractor(keywords []string, maxQuotes int) *Extractor {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	if maxQuotes <= 0 {
		maxQuotes = DefaultMaxQuotes
	}
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}
	return &Extractor{keywords: lowered, maxQuotes: maxQuotes}
}

// Extract emits a quote for every sentence that contains a keyword,
// scanning chunks in retrieval order and sentences in document order.
// The first maxQuotes matches win; there is no relevance ranking. An empty
// result means no evidence was found, not an error.
func (e *Extractor) Extract(chunks []domain.Chunk) []domain.Quote {
	var quotes []domain.Quote
	for _, ch := range chunks {
		for _, sent := range sentence.Split(ch.Content) {
			if !e.matches(sent) {
				continue
			}
			quotes = append(quotes, domain.Quote{
				Source:  ch.Source,
				Clause:  chunkClause(ch),
				Snippet: strings.TrimSpace(strings.ReplaceAll(sent, "\n", " ")),
			})
			if len(quotes) == e.maxQuotes {
				return quotes
			}
		}
	}
	return quotes
}

func (e *Extractor) matches(sent string) bool {
	lower := strings.ToLower(sent)
	for _, kw := range e.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// chunkClause returns a human-referenceable locator for the chunk: its
// clause when one was extracted at ingestion time, else a page reference.
func chunkClause(ch domain.Chunk) string {
	if ch.Clause == "" || ch.Clause == domain.ClauseUnknown {
		return fmt.Sprintf("Page %d", ch.Page)
	}
	return ch.Clause
}
