package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"carbongpt/internal/clarify"
	"carbongpt/internal/config"
	"carbongpt/internal/domain"
	embgemini "carbongpt/internal/embedding/gemini"
	embopenai "carbongpt/internal/embedding/openai"
	"carbongpt/internal/evidence"
	gengemini "carbongpt/internal/generator/gemini"
	genopenai "carbongpt/internal/generator/openai"
	"carbongpt/internal/retriever"
	"carbongpt/internal/session"
	"carbongpt/internal/vectorstore/memory"
	"carbongpt/internal/vectorstore/qdrant"
	"carbongpt/internal/vectorstore/sqlite"
)

// app bundles the wired collaborators a command needs. close releases the
// store and any API clients holding connections.
type app struct {
	embedder domain.Embedder
	store    domain.Storage
	sessions *session.Manager
	close    func()
}

func buildApp(ctx context.Context, cfg *config.AppConfig, log *zap.Logger) (*app, error) {
	embedder, closeEmbedder, err := buildEmbedder(ctx, cfg.Embedder)
	if err != nil {
		return nil, fmt.Errorf("embedder: %w", err)
	}
	generator, err := buildGenerator(cfg.Generator)
	if err != nil {
		closeEmbedder()
		return nil, fmt.Errorf("generator: %w", err)
	}
	store, err := buildStore(cfg.VectorStore)
	if err != nil {
		closeEmbedder()
		return nil, fmt.Errorf("vector store: %w", err)
	}

	extractor := evidence.NewExtractor(cfg.Retrieval.Keywords, cfg.Retrieval.MaxQuotes)
	gate := clarify.NewGate(cfg.Retrieval.Standards, cfg.Retrieval.Topics)
	r := retriever.New(embedder, store, extractor, cfg.Retrieval.TopK, log)
	sessions := session.NewManager(gate, r, generator, cfg.Generator.Temperature, log)

	return &app{
		embedder: embedder,
		store:    store,
		sessions: sessions,
		close: func() {
			_ = store.Close()
			closeEmbedder()
		},
	}, nil
}

func buildEmbedder(ctx context.Context, cfg config.EmbedderConfig) (domain.Embedder, func(), error) {
	switch cfg.Type {
	case "openai", "":
		c, err := embopenai.NewClient(*cfg.OpenAI)
		if err != nil {
			return nil, nil, err
		}
		return c, func() {}, nil
	case "gemini":
		c, err := embgemini.NewClient(ctx, *cfg.Gemini)
		if err != nil {
			return nil, nil, err
		}
		return c, func() { _ = c.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown embedder type %q", cfg.Type)
	}
}

func buildGenerator(cfg config.GeneratorConfig) (domain.Generator, error) {
	switch cfg.Type {
	case "openai", "":
		return genopenai.NewClient(*cfg.OpenAI)
	case "gemini":
		g := cfg.Gemini
		return gengemini.NewClient(gengemini.Config{
			BaseURL:   g.BaseURL,
			APIKeyEnv: g.APIKeyEnv,
			Model:     g.Model,
			Timeout:   time.Duration(g.TimeoutSecs) * time.Second,
		})
	default:
		return nil, fmt.Errorf("unknown generator type %q", cfg.Type)
	}
}

func buildStore(cfg config.VectorStoreConfig) (domain.Storage, error) {
	switch cfg.Type {
	case "sqlite", "":
		return sqlite.Open(cfg.SQLite.Path)
	case "qdrant":
		q := cfg.Qdrant
		return qdrant.NewStorage(qdrant.Config{
			URL:        q.URL,
			APIKey:     q.APIKey,
			Collection: q.Collection,
			Timeout:    time.Duration(q.TimeoutSecs) * time.Second,
		}), nil
	case "memory":
		return memory.NewStorage(), nil
	default:
		return nil, fmt.Errorf("unknown vector store type %q", cfg.Type)
	}
}
