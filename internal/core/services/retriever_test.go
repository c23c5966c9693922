package services

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdocs-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
)

func addChunks(t *testing.T, store *memory.VectorStore, chunks ...domain.Chunk) {
	t.Helper()
	require.NoError(t, store.Add(context.Background(), chunks))
}

func TestRetrieverService_EmptyIndex(t *testing.T) {
	retriever := NewRetrieverService(newMockEmbedder(), memory.NewVectorStore(), 5, 0.30)

	_, err := retriever.Retrieve(context.Background(), "anything?", 0)
	assert.ErrorIs(t, err, domain.ErrNoDocuments)
}

func TestRetrieverService_EmptyQuestion(t *testing.T) {
	retriever := NewRetrieverService(newMockEmbedder(), memory.NewVectorStore(), 5, 0.30)

	_, err := retriever.Retrieve(context.Background(), "   ", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRetrieverService_RanksAndScores(t *testing.T) {
	embedder := newMockEmbedder()
	embedder.vectors["capital?"] = []float32{1, 0, 0}

	store := memory.NewVectorStore()
	addChunks(t, store,
		domain.Chunk{ID: "1", Source: "geo.txt", Index: 0, Text: "exact", Embedding: []float32{1, 0, 0}},
		domain.Chunk{ID: "2", Source: "geo.txt", Index: 1, Text: "near", Embedding: []float32{0.8, 0.6, 0}},
		domain.Chunk{ID: "3", Source: "geo.txt", Index: 2, Text: "far", Embedding: []float32{0, 1, 0}},
	)

	retriever := NewRetrieverService(embedder, store, 5, 0.30)
	result, err := retriever.Retrieve(context.Background(), "capital?", 0)
	require.NoError(t, err)
	require.Len(t, result.Chunks, 3)

	assert.Equal(t, "exact", result.Chunks[0].Text)
	assert.InDelta(t, 1.0, result.Chunks[0].Similarity, 1e-6)
	assert.Equal(t, 0, result.Chunks[0].Rank)
	assert.Equal(t, 1, result.Chunks[1].Rank)
	assert.Equal(t, 2, result.Chunks[2].Rank)

	// mean of 1.0, 0.8, 0.0
	assert.InDelta(t, 0.6, result.Confidence, 1e-6)
	assert.False(t, result.LowConfidence)
}

func TestRetrieverService_TopKOverride(t *testing.T) {
	store := memory.NewVectorStore()
	for i := 0; i < 10; i++ {
		addChunks(t, store, domain.Chunk{
			ID: string(rune('a' + i)), Source: "a.txt", Index: i,
			Text: "x", Embedding: []float32{1, 0, 0},
		})
	}

	retriever := NewRetrieverService(newMockEmbedder(), store, 5, 0.30)

	result, err := retriever.Retrieve(context.Background(), "q", 0)
	require.NoError(t, err)
	assert.Len(t, result.Chunks, 5, "default top_k applies")

	result, err = retriever.Retrieve(context.Background(), "q", 2)
	require.NoError(t, err)
	assert.Len(t, result.Chunks, 2, "explicit top_k wins")
}

func TestRetrieverService_ConfidenceThreshold(t *testing.T) {
	tests := []struct {
		name    string
		cosine  float64 // embedding geometry produces this mean similarity
		wantLow bool
	}{
		{name: "mean 0.25 is flagged", cosine: 0.25, wantLow: true},
		{name: "mean 0.5 is not flagged", cosine: 0.5, wantLow: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			embedder := newMockEmbedder()
			embedder.vectors["q"] = []float32{1, 0, 0}

			// Unit vector at the angle giving the wanted cosine.
			sin := math.Sqrt(1 - tt.cosine*tt.cosine)
			other := []float32{float32(tt.cosine), float32(sin), 0}

			store := memory.NewVectorStore()
			addChunks(t, store, domain.Chunk{ID: "1", Source: "a.txt", Index: 0, Text: "x", Embedding: other})

			retriever := NewRetrieverService(embedder, store, 5, 0.30)
			result, err := retriever.Retrieve(context.Background(), "q", 0)
			require.NoError(t, err)

			assert.InDelta(t, tt.cosine, result.Confidence, 1e-3)
			assert.Equal(t, tt.wantLow, result.LowConfidence)
		})
	}
}
