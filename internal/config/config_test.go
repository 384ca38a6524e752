package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "openai", cfg.Embedder.Type)
	assert.Equal(t, "https://api.openai.com/v1", cfg.Embedder.OpenAI.BaseURL)
	assert.Equal(t, "OPENAI_API_KEY", cfg.Embedder.OpenAI.APIKeyEnv)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.OpenAI.Model)
	assert.Equal(t, "gpt-4.1", cfg.Generator.OpenAI.Model)
	assert.Equal(t, "sqlite", cfg.VectorStore.Type)
	assert.Equal(t, filepath.Join("embeddings", "index.db"), cfg.VectorStore.SQLite.Path)
	assert.Equal(t, 40, cfg.Retrieval.TopK)
	assert.Equal(t, 10, cfg.Retrieval.MaxQuotes)
	assert.Equal(t, 5, cfg.Ingest.SentencesPerChunk)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadAppliesDefaultsToPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
embedder:
  type: gemini
  gemini:
    model: gemini-embedding-001
retrieval:
  top_k: 12
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "gemini", cfg.Embedder.Type)
	assert.Equal(t, "GEMINI_API_KEY", cfg.Embedder.Gemini.APIKeyEnv)
	assert.Equal(t, 12, cfg.Retrieval.TopK)
	// Unset sections still pick up their defaults.
	assert.Equal(t, 10, cfg.Retrieval.MaxQuotes)
	assert.Equal(t, "openai", cfg.Generator.Type)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "config.yaml")
	cfg := Default()
	cfg.Retrieval.TopK = 99
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 99, loaded.Retrieval.TopK)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr string
	}{
		{
			name:    "unknown embedder type",
			mutate:  func(c *AppConfig) { c.Embedder.Type = "bert" },
			wantErr: "unknown type",
		},
		{
			name:    "gemini generator without config",
			mutate:  func(c *AppConfig) { c.Generator.Type = "gemini"; c.Generator.Gemini = nil },
			wantErr: "not configured",
		},
		{
			name:    "qdrant without url",
			mutate:  func(c *AppConfig) { c.VectorStore.Type = "qdrant" },
			wantErr: "requires url and collection",
		},
		{
			name:    "negative top_k",
			mutate:  func(c *AppConfig) { c.Retrieval.TopK = -1 },
			wantErr: "top_k",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
