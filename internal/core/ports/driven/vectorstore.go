package driven

import (
	"context"

	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
)

// VectorStore stores chunk vectors plus metadata and answers
// nearest-neighbour queries by exact cosine similarity.
//
// Entries are append-only: created at ingestion, never mutated, and
// removable only via Reset. Adds are durable — a restarted process sees
// every previously added entry with no re-embedding. Re-adding identical
// chunk content is allowed and may create duplicate entries; there is no
// dedup guarantee at this layer.
//
// Concurrency: concurrent Add calls must not corrupt existing entries.
// A Search racing an Add may or may not observe the new entries, but
// must never return a partially written one.
type VectorStore interface {
	// Add inserts chunk entries with their embeddings.
	Add(ctx context.Context, chunks []domain.Chunk) error

	// Search returns the k entries nearest to the query vector, ordered
	// by descending cosine similarity. Ties break by insertion order
	// (earlier-ingested chunk wins). Ranking is exact; approximate
	// indexing is out of scope at the corpus sizes this targets.
	//
	// Returns domain.ErrEmptyIndex when the store holds no entries, so
	// callers can distinguish "no documents uploaded" from "no relevant
	// match".
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Count returns the total number of stored chunks.
	Count(ctx context.Context) (int, error)

	// Documents lists the distinct source documents with chunk counts.
	Documents(ctx context.Context) ([]domain.CorpusDocument, error)

	// HasDocument reports whether any chunks exist for the source file.
	HasDocument(ctx context.Context, source string) (bool, error)

	// EmbeddingModel returns the model name the index was built with,
	// or "" for a fresh index. SetEmbeddingModel records it. Startup
	// compares this against the configured model and refuses mismatches.
	EmbeddingModel(ctx context.Context) (string, error)
	SetEmbeddingModel(ctx context.Context, model string) error

	// Reset removes every entry, returning the store to its fresh state.
	// This is the only way entries are destroyed.
	Reset(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// VectorHit is a single similarity search result.
type VectorHit struct {
	// Chunk is the matched chunk, including its stored text and metadata.
	Chunk domain.Chunk

	// Similarity is the cosine similarity score in [-1, 1].
	Similarity float64
}
