package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
)

// newTestStore creates a store backed by a temp directory.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})
	return store
}

// testChunk builds a chunk with the given embedding.
func testChunk(source string, index int, text string, embedding []float32) domain.Chunk {
	return domain.Chunk{
		ID:        uuid.NewString(),
		Source:    source,
		Index:     index,
		Text:      text,
		Embedding: embedding,
	}
}

func TestStore_AddAndCount(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	chunks := []domain.Chunk{
		testChunk("notes.txt", 0, "first", []float32{1, 0, 0}),
		testChunk("notes.txt", 1, "second", []float32{0, 1, 0}),
	}
	require.NoError(t, store.Add(ctx, chunks))

	count, err = store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestStore_Add_EmptySliceIsNoop(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Add(context.Background(), nil))

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestStore_Search_EmptyIndex(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Search(context.Background(), []float32{1, 0, 0}, 5)
	assert.ErrorIs(t, err, domain.ErrEmptyIndex)
}

func TestStore_Search_RanksByCosineSimilarity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, []domain.Chunk{
		testChunk("a.txt", 0, "orthogonal", []float32{0, 1, 0}),
		testChunk("a.txt", 1, "exact", []float32{1, 0, 0}),
		testChunk("a.txt", 2, "close", []float32{0.9, 0.1, 0}),
	}))

	hits, err := store.Search(ctx, []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 3)

	assert.Equal(t, "exact", hits[0].Chunk.Text)
	assert.InDelta(t, 1.0, hits[0].Similarity, 1e-6)
	assert.Equal(t, "close", hits[1].Chunk.Text)
	assert.Equal(t, "orthogonal", hits[2].Chunk.Text)
	assert.InDelta(t, 0.0, hits[2].Similarity, 1e-6)
}

func TestStore_Search_TruncatesToK(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var chunks []domain.Chunk
	for i := 0; i < 10; i++ {
		chunks = append(chunks, testChunk("a.txt", i, fmt.Sprintf("chunk %d", i), []float32{1, float32(i) * 0.01}))
	}
	require.NoError(t, store.Add(ctx, chunks))

	hits, err := store.Search(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	assert.Len(t, hits, 3)
}

func TestStore_Search_KLargerThanStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, []domain.Chunk{
		testChunk("a.txt", 0, "only", []float32{1, 0}),
	}))

	hits, err := store.Search(ctx, []float32{1, 0}, 5)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestStore_Search_TiesBreakByInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Identical embeddings score identically; the earlier insert must win.
	vec := []float32{0.5, 0.5}
	require.NoError(t, store.Add(ctx, []domain.Chunk{
		testChunk("a.txt", 0, "first in", vec),
	}))
	require.NoError(t, store.Add(ctx, []domain.Chunk{
		testChunk("b.txt", 0, "second in", vec),
	}))

	hits, err := store.Search(ctx, []float32{1, 1}, 2)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "first in", hits[0].Chunk.Text)
	assert.Equal(t, "second in", hits[1].Chunk.Text)
}

func TestStore_Search_InvalidK(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Search(context.Background(), []float32{1}, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStore_EmbeddingRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	want := []float32{0.25, -0.5, 0.125, 1.0}
	require.NoError(t, store.Add(ctx, []domain.Chunk{
		testChunk("a.txt", 0, "chunk", want),
	}))

	hits, err := store.Search(ctx, want, 1)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, want, hits[0].Chunk.Embedding)
}

func TestStore_Documents(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, []domain.Chunk{
		testChunk("guide.md", 0, "a", []float32{1}),
		testChunk("guide.md", 1, "b", []float32{1}),
		testChunk("notes.txt", 0, "c", []float32{1}),
	}))

	docs, err := store.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "guide.md", docs[0].Source)
	assert.Equal(t, 2, docs[0].ChunkCount)
	assert.Equal(t, "notes.txt", docs[1].Source)
	assert.Equal(t, 1, docs[1].ChunkCount)
}

func TestStore_HasDocument(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, []domain.Chunk{
		testChunk("known.txt", 0, "x", []float32{1}),
	}))

	has, err := store.HasDocument(ctx, "known.txt")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = store.HasDocument(ctx, "unknown.txt")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestStore_EmbeddingModel(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	model, err := store.EmbeddingModel(ctx)
	require.NoError(t, err)
	assert.Empty(t, model, "fresh index has no model recorded")

	require.NoError(t, store.SetEmbeddingModel(ctx, "nomic-embed-text"))

	model, err = store.EmbeddingModel(ctx)
	require.NoError(t, err)
	assert.Equal(t, "nomic-embed-text", model)

	// Overwrite is allowed, e.g. after a reset.
	require.NoError(t, store.SetEmbeddingModel(ctx, "text-embedding-3-small"))
	model, err = store.EmbeddingModel(ctx)
	require.NoError(t, err)
	assert.Equal(t, "text-embedding-3-small", model)
}

func TestStore_Reset(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, []domain.Chunk{
		testChunk("a.txt", 0, "x", []float32{1}),
	}))
	require.NoError(t, store.SetEmbeddingModel(ctx, "nomic-embed-text"))

	require.NoError(t, store.Reset(ctx))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	model, err := store.EmbeddingModel(ctx)
	require.NoError(t, err)
	assert.Empty(t, model)

	_, err = store.Search(ctx, []float32{1}, 1)
	assert.ErrorIs(t, err, domain.ErrEmptyIndex)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Add(ctx, []domain.Chunk{
		testChunk("a.txt", 0, "durable", []float32{1, 0}),
	}))
	require.NoError(t, store.SetEmbeddingModel(ctx, "nomic-embed-text"))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	count, err := reopened.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	model, err := reopened.EmbeddingModel(ctx)
	require.NoError(t, err)
	assert.Equal(t, "nomic-embed-text", model)
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{name: "identical", a: []float32{1, 2, 3}, b: []float32{1, 2, 3}, want: 1.0},
		{name: "orthogonal", a: []float32{1, 0}, b: []float32{0, 1}, want: 0.0},
		{name: "opposite", a: []float32{1, 0}, b: []float32{-1, 0}, want: -1.0},
		{name: "mismatched lengths", a: []float32{1, 0}, b: []float32{1}, want: 0.0},
		{name: "zero vector", a: []float32{0, 0}, b: []float32{1, 1}, want: 0.0},
		{name: "empty", a: nil, b: nil, want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, cosineSimilarity(tt.a, tt.b), 1e-6)
		})
	}
}
