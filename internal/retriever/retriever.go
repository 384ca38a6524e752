// Package retriever orchestrates similarity search and evidence extraction.
package retriever

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"carbongpt/internal/domain"
	"carbongpt/internal/evidence"
)

// ErrRetrieval marks vector index failures. They are fatal for the turn:
// there is no partial or cached fallback.
var ErrRetrieval = errors.New("retrieval failed")

// DefaultTopK is how many chunks a similarity query returns by default.
const DefaultTopK = 40

// Bundle is everything one retrieval produces for prompt assembly.
type Bundle struct {
	Context string
	Sources []domain.SignificantSource
	Quotes  []domain.Quote
}

// Retriever embeds a query, runs the vector index lookup, and derives the
// grounded context, quoted evidence, and dominant-source attribution.
type Retriever struct {
	embedder  domain.Embedder
	store     domain.Storage
	extractor *evidence.Extractor
	topK      int
	log       *zap.Logger
}

// New wires a retriever. A non-positive topK falls back to DefaultTopK and
// a nil logger is replaced with a no-op one.
func New(embedder domain.Embedder, store domain.Storage, extractor *evidence.Extractor, topK int, log *zap.Logger) *Retriever {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Retriever{embedder: embedder, store: store, extractor: extractor, topK: topK, log: log}
}

// Retrieve runs the pipeline for one query. Chunk contents are joined with
// a blank line to form the context, in similarity rank order.
func (r *Retriever) Retrieve(ctx context.Context, query string) (Bundle, error) {
	vec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return Bundle{}, fmt.Errorf("%w: embedding query: %w", ErrRetrieval, err)
	}
	results, err := r.store.Search(ctx, vec, r.topK)
	if err != nil {
		return Bundle{}, fmt.Errorf("%w: %w", ErrRetrieval, err)
	}

	chunks := make([]domain.Chunk, len(results))
	parts := make([]string, len(results))
	for i, res := range results {
		chunks[i] = res.Chunk
		parts[i] = res.Chunk.Content
	}

	bundle := Bundle{
		Context: strings.Join(parts, "\n\n"),
		Sources: evidence.SignificantSources(chunks),
		Quotes:  r.extractor.Extract(chunks),
	}
	r.log.Debug("retrieval complete",
		zap.String("query", query),
		zap.Int("chunks", len(chunks)),
		zap.Int("quotes", len(bundle.Quotes)),
		zap.Int("significant_sources", len(bundle.Sources)),
	)
	return bundle, nil
}
