// Package chunker splits page text into overlapping sentence windows for
// indexing.
package chunker

import (
	"strings"

	"carbongpt/internal/sentence"
)

// SentenceChunker joins consecutive sentences into windows with overlap.
type SentenceChunker struct {
	sentencesPerChunk int
	overlapSentences  int
}

func New(sentencesPerChunk, overlapSentences int) *SentenceChunker {
	if sentencesPerChunk <= 0 {
		sentencesPerChunk = 5
	}
	if overlapSentences < 0 {
		overlapSentences = 0
	}
	if overlapSentences >= sentencesPerChunk {
		overlapSentences = sentencesPerChunk - 1
	}
	return &SentenceChunker{
		sentencesPerChunk: sentencesPerChunk,
		overlapSentences:  overlapSentences,
	}
}

// Windows returns the chunk texts for a page. Empty text yields nothing.
func (c *SentenceChunker) Windows(text string) []string {
	var sentences []string
	for _, s := range sentence.Split(text) {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			sentences = append(sentences, trimmed)
		}
	}
	if len(sentences) == 0 {
		return nil
	}

	var windows []string
	i := 0
	for i < len(sentences) {
		end := i + c.sentencesPerChunk
		if end > len(sentences) {
			end = len(sentences)
		}
		windows = append(windows, strings.Join(sentences[i:end], " "))
		if end == len(sentences) {
			break
		}
		i = end - c.overlapSentences
	}
	return windows
}
