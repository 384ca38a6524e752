package domain

import "context"

// ClauseUnknown is the clause value stored when no clause pattern was found
// in a page at ingestion time.
const ClauseUnknown = "Unknown"

// Chunk is a contiguous slice of a source document stored in the vector
// index together with its provenance metadata.
type Chunk struct {
	Content string
	Source  string
	Page    int
	Clause  string
}

// SearchResult is a chunk returned by a similarity query with its score.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Quote is an evidentiary sentence lifted from a retrieved chunk.
type Quote struct {
	Source  string
	Clause  string
	Snippet string
}

// SignificantSource identifies a document that dominates a retrieval result
// by chunk-count share.
type SignificantSource struct {
	Source string
	Clause string
}

// Embedder converts free text into a numeric vector representation.
type Embedder interface {
	Name() string
	Dimension() int
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Storage persists chunk vectors and supports similarity search.
// Search results are ordered most similar first.
type Storage interface {
	Init(ctx context.Context, dimension int) error
	Upsert(ctx context.Context, chunks []Chunk, vectors [][]float32) error
	Search(ctx context.Context, vector []float32, topK int) ([]SearchResult, error)
	Clear(ctx context.Context) error
	Close() error
}

// Generator produces a free-text completion for an assembled prompt.
type Generator interface {
	Complete(ctx context.Context, system, user string, temperature float64) (string, error)
}
