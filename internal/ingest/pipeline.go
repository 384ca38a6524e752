package ingest

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"carbongpt/internal/chunker"
	"carbongpt/internal/domain"
)

// Pipeline rebuilds the vector index from the corpus directory and the
// configured web sources.
type Pipeline struct {
	loader    *Loader
	scraper   *Scraper
	chunker   *chunker.SentenceChunker
	embedder  domain.Embedder
	store     domain.Storage
	urls      []string
	batchSize int
	log       *zap.Logger
}

// Stats summarizes one corpus rebuild.
type Stats struct {
	Pages  int
	Chunks int
}

func NewPipeline(loader *Loader, scraper *Scraper, ch *chunker.SentenceChunker, embedder domain.Embedder, store domain.Storage, urls []string, batchSize int, log *zap.Logger) *Pipeline {
	if batchSize <= 0 {
		batchSize = 100
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{
		loader:    loader,
		scraper:   scraper,
		chunker:   ch,
		embedder:  embedder,
		store:     store,
		urls:      urls,
		batchSize: batchSize,
		log:       log,
	}
}

// Run performs a full rebuild: load, scrape, chunk, embed, replace the
// index contents.
func (p *Pipeline) Run(ctx context.Context, dataDir string) (Stats, error) {
	pages, err := p.loader.LoadDir(ctx, dataDir)
	if err != nil {
		return Stats{}, err
	}
	if p.scraper != nil && len(p.urls) > 0 {
		pages = append(pages, p.scraper.Scrape(ctx, p.urls)...)
	}
	if len(pages) == 0 {
		return Stats{}, errors.New("no documents found to index")
	}

	var chunks []domain.Chunk
	for _, page := range pages {
		for _, window := range p.chunker.Windows(page.Content) {
			chunks = append(chunks, domain.Chunk{
				Content: window,
				Source:  page.Source,
				Page:    page.Number,
				Clause:  page.Clause,
			})
		}
	}
	p.log.Info("corpus chunked", zap.Int("pages", len(pages)), zap.Int("chunks", len(chunks)))

	vectors := make([][]float32, 0, len(chunks))
	for start := 0; start < len(chunks); start += p.batchSize {
		end := start + p.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		texts := make([]string, 0, end-start)
		for _, ch := range chunks[start:end] {
			texts = append(texts, ch.Content)
		}
		batch, err := p.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return Stats{}, fmt.Errorf("embedding batch %d: %w", start/p.batchSize, err)
		}
		vectors = append(vectors, batch...)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return Stats{}, errors.New("embedder produced no vectors")
	}

	if err := p.store.Init(ctx, len(vectors[0])); err != nil {
		return Stats{}, fmt.Errorf("initializing index: %w", err)
	}
	if err := p.store.Clear(ctx); err != nil {
		return Stats{}, fmt.Errorf("clearing index: %w", err)
	}
	if err := p.store.Upsert(ctx, chunks, vectors); err != nil {
		return Stats{}, fmt.Errorf("writing index: %w", err)
	}
	return Stats{Pages: len(pages), Chunks: len(chunks)}, nil
}
