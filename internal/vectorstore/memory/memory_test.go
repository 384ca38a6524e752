package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbongpt/internal/domain"
)

func TestSearchRanksBySimilarity(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()
	require.NoError(t, s.Init(ctx, 2))

	chunks := []domain.Chunk{
		{Content: "east", Source: "a.pdf"},
		{Content: "north", Source: "b.pdf"},
		{Content: "northeast", Source: "c.pdf"},
	}
	vectors := [][]float32{
		{1, 0},
		{0, 1},
		{0.707, 0.707},
	}
	require.NoError(t, s.Upsert(ctx, chunks, vectors))

	results, err := s.Search(ctx, []float32{1, 0}, 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "east", results[0].Chunk.Content)
	assert.Equal(t, "northeast", results[1].Chunk.Content)
	assert.Greater(t, results[0].Score, results[1].Score)
}

func TestSearchTopKClamped(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()
	require.NoError(t, s.Init(ctx, 1))
	require.NoError(t, s.Upsert(ctx, []domain.Chunk{{Content: "only"}}, [][]float32{{1}}))

	results, err := s.Search(ctx, []float32{1}, 40)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestUpsertRejectsMismatches(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()
	require.NoError(t, s.Init(ctx, 2))

	err := s.Upsert(ctx, []domain.Chunk{{Content: "x"}}, nil)
	assert.Error(t, err)

	err = s.Upsert(ctx, []domain.Chunk{{Content: "x"}}, [][]float32{{1, 2, 3}})
	assert.Error(t, err)
}

func TestClearEmptiesTheIndex(t *testing.T) {
	ctx := context.Background()
	s := NewStorage()
	require.NoError(t, s.Init(ctx, 1))
	require.NoError(t, s.Upsert(ctx, []domain.Chunk{{Content: "x"}}, [][]float32{{1}}))
	require.NoError(t, s.Clear(ctx))

	results, err := s.Search(ctx, []float32{1}, 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestInitRejectsInvalidDimension(t *testing.T) {
	s := NewStorage()
	assert.Error(t, s.Init(context.Background(), 0))
}
