// Package gemini embeds text through Google's Gemini API.
package gemini

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"carbongpt/internal/config"
)

// Client implements domain.Embedder on top of the genai SDK.
type Client struct {
	client    *genai.Client
	model     string
	taskType  string
	dimension int
}

// NewClient creates a Gemini embeddings client.
func NewClient(ctx context.Context, cfg config.GeminiConfig) (*Client, error) {
	key := os.Getenv(cfg.APIKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("missing API key in env %s", cfg.APIKeyEnv)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: key})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	var task string
	switch cfg.TaskType {
	case "SEMANTIC_SIMILARITY", "":
		task = "SEMANTIC_SIMILARITY"
	case "RETRIEVAL_DOCUMENT":
		task = "RETRIEVAL_DOCUMENT"
	case "RETRIEVAL_QUERY":
		task = "RETRIEVAL_QUERY"
	case "QUESTION_ANSWERING":
		task = "QUESTION_ANSWERING"
	default:
		task = "SEMANTIC_SIMILARITY"
	}

	return &Client{client: client, model: cfg.Model, taskType: task}, nil
}

// Name returns the identifier of this embedder implementation.
func (c *Client) Name() string { return fmt.Sprintf("gemini:%s", c.model) }

// Dimension is learned lazily from the first embedding returned.
func (c *Client) Dimension() int { return c.dimension }

// Embed generates an embedding for a single text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch generates embeddings for multiple texts in one call.
func (c *Client) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}

	result, err := c.client.Models.EmbedContent(ctx,
		c.model,
		contents,
		&genai.EmbedContentConfig{TaskType: c.taskType},
	)
	if err != nil {
		return nil, fmt.Errorf("gemini embed failed: %w", err)
	}
	if len(result.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini embed: got %d vectors for %d inputs", len(result.Embeddings), len(texts))
	}

	vecs := make([][]float32, len(result.Embeddings))
	for i, emb := range result.Embeddings {
		vecs[i] = emb.Values
	}
	if c.dimension == 0 && len(vecs[0]) > 0 {
		c.dimension = len(vecs[0])
	}
	return vecs, nil
}

// Close releases the underlying client. The genai SDK client holds no
// resources that require explicit closing.
func (c *Client) Close() error {
	return nil
}
