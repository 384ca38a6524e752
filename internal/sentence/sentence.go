// Package sentence splits prose into sentences on terminal punctuation.
package sentence

import "regexp"

// A boundary is terminal punctuation followed by whitespace. Abbreviations
// like "e.g. " split too; that imprecision is accepted.
var boundary = regexp.MustCompile(`[.!?]\s+`)

// Split cuts text into sentences immediately after each boundary. The
// punctuation stays with the preceding sentence and the whitespace is
// dropped. Empty input yields a single empty sentence.
func Split(text string) []string {
	locs := boundary.FindAllStringIndex(text, -1)
	out := make([]string, 0, len(locs)+1)
	prev := 0
	for _, loc := range locs {
		out = append(out, text[prev:loc[0]+1])
		prev = loc[1]
	}
	return append(out, text[prev:])
}

// First returns the opening sentence of text, used for one-line summaries.
func First(text string) string {
	return Split(text)[0]
}
