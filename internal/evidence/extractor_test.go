package evidence

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbongpt/internal/domain"
)

func TestExtractQuotesMatchingSentences(t *testing.T) {
	chunks := []domain.Chunk{
		{
			Content: "The validation deadline is five years after the project start date. Unrelated sentence here.",
			Source:  "VCS_Standard.pdf",
			Page:    12,
			Clause:  "4.1.2",
		},
		{
			Content: "Nothing relevant in this chunk at all.",
			Source:  "GS_Manual.pdf",
			Page:    3,
			Clause:  "2.2",
		},
	}

	quotes := NewExtractor(nil, 0).Extract(chunks)
	require.Len(t, quotes, 1)
	assert.Equal(t, "VCS_Standard.pdf", quotes[0].Source)
	assert.Equal(t, "4.1.2", quotes[0].Clause)
	assert.Equal(t, "The validation deadline is five years after the project start date.", quotes[0].Snippet)
}

func TestExtractIsCaseInsensitive(t *testing.T) {
	chunks := []domain.Chunk{{
		Content: "THE VALIDATION DEADLINE SHALL NOT BE EXCEEDED.",
		Source:  "CDM_Rules.pdf",
		Page:    7,
		Clause:  "9",
	}}
	quotes := NewExtractor(nil, 0).Extract(chunks)
	require.Len(t, quotes, 1)
	assert.Equal(t, "THE VALIDATION DEADLINE SHALL NOT BE EXCEEDED.", quotes[0].Snippet)
}

func TestExtractFallsBackToPageLocator(t *testing.T) {
	chunks := []domain.Chunk{
		{Content: "The verification period is annual.", Source: "a.pdf", Page: 3, Clause: ""},
		{Content: "The verification period is annual.", Source: "b.pdf", Page: 5, Clause: domain.ClauseUnknown},
	}
	quotes := NewExtractor(nil, 0).Extract(chunks)
	require.Len(t, quotes, 2)
	assert.Equal(t, "Page 3", quotes[0].Clause)
	assert.Equal(t, "Page 5", quotes[1].Clause)
}

func TestExtractFlattensNewlines(t *testing.T) {
	chunks := []domain.Chunk{{
		Content: "Validation shall be\ncompleted within the crediting period.",
		Source:  "s.pdf",
		Page:    1,
		Clause:  "3",
	}}
	quotes := NewExtractor(nil, 0).Extract(chunks)
	require.Len(t, quotes, 1)
	assert.Equal(t, "Validation shall be completed within the crediting period.", quotes[0].Snippet)
}

func TestExtractStopsAtCap(t *testing.T) {
	chunks := make([]domain.Chunk, 15)
	for i := range chunks {
		chunks[i] = domain.Chunk{
			Content: fmt.Sprintf("Chunk %d notes the certification deadline explicitly.", i),
			Source:  "std.pdf",
			Page:    i + 1,
			Clause:  "1",
		}
	}
	quotes := NewExtractor(nil, 0).Extract(chunks)
	assert.Len(t, quotes, DefaultMaxQuotes)

	quotes = NewExtractor(nil, 3).Extract(chunks)
	assert.Len(t, quotes, 3)
}

func TestExtractCustomKeywords(t *testing.T) {
	chunks := []domain.Chunk{{
		Content: "Buffer pool contributions are mandatory. The validation deadline does not matter here.",
		Source:  "s.pdf",
		Page:    1,
		Clause:  "8",
	}}
	quotes := NewExtractor([]string{"buffer pool"}, 0).Extract(chunks)
	require.Len(t, quotes, 1)
	assert.Equal(t, "Buffer pool contributions are mandatory.", quotes[0].Snippet)
}

func TestExtractSingleChunkEndToEnd(t *testing.T) {
	chunks := []domain.Chunk{{
		Content: "Validation shall be completed within 12 months. Other text.",
		Source:  "VCS_v4.pdf",
		Page:    5,
		Clause:  domain.ClauseUnknown,
	}}
	quotes := NewExtractor(nil, 0).Extract(chunks)
	assert.Equal(t, []domain.Quote{{
		Source:  "VCS_v4.pdf",
		Clause:  "Page 5",
		Snippet: "Validation shall be completed within 12 months.",
	}}, quotes)
}

func TestExtractEmptyChunks(t *testing.T) {
	assert.Empty(t, NewExtractor(nil, 0).Extract(nil))
}
