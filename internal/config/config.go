// Package config loads and validates the application configuration.
// Everything is explicit: constructors receive this structure, nothing
// reads the environment at import time.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// OpenAIConfig holds connection details for an OpenAI-compatible API.
// The key itself stays in the environment; only its variable name is
// configured.
type OpenAIConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// GeminiConfig holds connection details for the Gemini API.
type GeminiConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TaskType    string `yaml:"task_type,omitempty"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// EmbedderConfig selects and configures the embedder implementation.
type EmbedderConfig struct {
	Type   string        `yaml:"type"`
	OpenAI *OpenAIConfig `yaml:"openai,omitempty"`
	Gemini *GeminiConfig `yaml:"gemini,omitempty"`
}

// GeneratorConfig selects and configures the answer generator.
type GeneratorConfig struct {
	Type        string        `yaml:"type"`
	Temperature float64       `yaml:"temperature"`
	OpenAI      *OpenAIConfig `yaml:"openai,omitempty"`
	Gemini      *GeminiConfig `yaml:"gemini,omitempty"`
}

// QdrantConfig contains connection details for a Qdrant vector store.
type QdrantConfig struct {
	URL         string `yaml:"url"`
	APIKey      string `yaml:"api_key"`
	Collection  string `yaml:"collection"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// SQLiteConfig locates the persistent sqlite-vec index.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// VectorStoreConfig selects and configures the vector store implementation.
type VectorStoreConfig struct {
	Type   string        `yaml:"type"`
	Qdrant *QdrantConfig `yaml:"qdrant,omitempty"`
	SQLite *SQLiteConfig `yaml:"sqlite,omitempty"`
}

// RetrievalConfig tunes the retrieval-and-grounding pipeline. The keyword
// and term lists are data, overridable without code changes.
type RetrievalConfig struct {
	TopK      int      `yaml:"top_k"`
	MaxQuotes int      `yaml:"max_quotes"`
	Keywords  []string `yaml:"keywords,omitempty"`
	Standards []string `yaml:"standards,omitempty"`
	Topics    []string `yaml:"topics,omitempty"`
}

// IngestConfig configures the offline corpus update pipeline.
type IngestConfig struct {
	DataDir           string   `yaml:"data_dir"`
	URLs              []string `yaml:"urls,omitempty"`
	SentencesPerChunk int      `yaml:"sentences_per_chunk"`
	OverlapSentences  int      `yaml:"overlap_sentences"`
	BatchSize         int      `yaml:"batch_size"`
}

// LoggingConfig configures the file-backed logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Embedder    EmbedderConfig    `yaml:"embedder"`
	Generator   GeneratorConfig   `yaml:"generator"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	Ingest      IngestConfig      `yaml:"ingest"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// Load reads a config from a specified path. A missing file yields the
// defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/carbongpt/config.yaml.
// If neither exists, it writes defaults to the user path and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate rejects configurations that would only fail later at first use.
func (cfg *AppConfig) Validate() error {
	switch cfg.Embedder.Type {
	case "openai", "":
	case "gemini":
		if cfg.Embedder.Gemini == nil {
			return errors.New("embedder: gemini selected but not configured")
		}
	default:
		return fmt.Errorf("embedder: unknown type %q", cfg.Embedder.Type)
	}
	switch cfg.Generator.Type {
	case "openai", "":
	case "gemini":
		if cfg.Generator.Gemini == nil {
			return errors.New("generator: gemini selected but not configured")
		}
	default:
		return fmt.Errorf("generator: unknown type %q", cfg.Generator.Type)
	}
	switch cfg.VectorStore.Type {
	case "sqlite", "", "memory":
	case "qdrant":
		q := cfg.VectorStore.Qdrant
		if q == nil || q.URL == "" || q.Collection == "" {
			return errors.New("vector_store: qdrant requires url and collection")
		}
	default:
		return fmt.Errorf("vector_store: unknown type %q", cfg.VectorStore.Type)
	}
	if cfg.Retrieval.TopK < 0 {
		return errors.New("retrieval: top_k must not be negative")
	}
	if cfg.Retrieval.MaxQuotes < 0 {
		return errors.New("retrieval: max_quotes must not be negative")
	}
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "carbongpt", "config.yaml"), nil
}

// Default returns the configuration used when no file exists.
func Default() *AppConfig {
	cfg := &AppConfig{
		Embedder:    EmbedderConfig{Type: "openai", OpenAI: &OpenAIConfig{}},
		Generator:   GeneratorConfig{Type: "openai", OpenAI: &OpenAIConfig{}},
		VectorStore: VectorStoreConfig{Type: "sqlite"},
		Retrieval:   RetrievalConfig{TopK: 40, MaxQuotes: 10},
		Ingest:      IngestConfig{DataDir: "data", SentencesPerChunk: 5, OverlapSentences: 1, BatchSize: 100},
		Logging:     LoggingConfig{Level: "info"},
	}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 40
	}
	if cfg.Retrieval.MaxQuotes == 0 {
		cfg.Retrieval.MaxQuotes = 10
	}
	if cfg.Ingest.SentencesPerChunk == 0 {
		cfg.Ingest.SentencesPerChunk = 5
	}
	if cfg.Ingest.BatchSize == 0 {
		cfg.Ingest.BatchSize = 100
	}
	if cfg.Ingest.DataDir == "" {
		cfg.Ingest.DataDir = "data"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = "openai"
	}
	if cfg.Generator.Type == "" {
		cfg.Generator.Type = "openai"
	}
	if cfg.VectorStore.Type == "" {
		cfg.VectorStore.Type = "sqlite"
	}
	if cfg.VectorStore.Type == "sqlite" && cfg.VectorStore.SQLite == nil {
		cfg.VectorStore.SQLite = &SQLiteConfig{}
	}
	if cfg.VectorStore.SQLite != nil && cfg.VectorStore.SQLite.Path == "" {
		cfg.VectorStore.SQLite.Path = filepath.Join("embeddings", "index.db")
	}
	if cfg.Embedder.Type == "openai" {
		if cfg.Embedder.OpenAI == nil {
			cfg.Embedder.OpenAI = &OpenAIConfig{}
		}
		applyOpenAIDefaults(cfg.Embedder.OpenAI, "text-embedding-3-small")
	}
	if cfg.Generator.Type == "openai" {
		if cfg.Generator.OpenAI == nil {
			cfg.Generator.OpenAI = &OpenAIConfig{}
		}
		applyOpenAIDefaults(cfg.Generator.OpenAI, "gpt-4.1")
	}
	if cfg.Embedder.Gemini != nil {
		applyGeminiDefaults(cfg.Embedder.Gemini, "gemini-embedding-001")
	}
	if cfg.Generator.Gemini != nil {
		applyGeminiDefaults(cfg.Generator.Gemini, "gemini-2.0-flash")
	}
}

func applyOpenAIDefaults(c *OpenAIConfig, model string) {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.openai.com/v1"
	}
	if c.APIKeyEnv == "" {
		c.APIKeyEnv = "OPENAI_API_KEY"
	}
	if c.Model == "" {
		c.Model = model
	}
	if c.TimeoutSecs == 0 {
		c.TimeoutSecs = 30
	}
}

func applyGeminiDefaults(c *GeminiConfig, model string) {
	if c.APIKeyEnv == "" {
		c.APIKeyEnv = "GEMINI_API_KEY"
	}
	if c.Model == "" {
		c.Model = model
	}
	if c.TimeoutSecs == 0 {
		c.TimeoutSecs = 60
	}
}
