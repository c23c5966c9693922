// Package memory provides in-memory implementations of driven port
// interfaces for testing.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
	"github.com/custodia-labs/askdocs-cli/internal/core/ports/driven"
)

// Ensure VectorStore implements the interface.
var _ driven.VectorStore = (*VectorStore)(nil)

// VectorStore is an in-memory implementation of driven.VectorStore for
// testing. Entries live in insertion order, which search uses to break
// similarity ties.
type VectorStore struct {
	mu     sync.RWMutex
	chunks []domain.Chunk
	model  string
}

// NewVectorStore creates a new in-memory vector store.
func NewVectorStore() *VectorStore {
	return &VectorStore{}
}

// Add inserts chunk entries with their embeddings.
func (s *VectorStore) Add(_ context.Context, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = append(s.chunks, chunks...)
	return nil
}

// Search returns the k nearest entries by exact cosine similarity,
// ties broken by insertion order.
func (s *VectorStore) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if k <= 0 {
		return nil, domain.ErrInvalidInput
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.chunks) == 0 {
		return nil, domain.ErrEmptyIndex
	}

	hits := make([]driven.VectorHit, len(s.chunks))
	for i, chunk := range s.chunks {
		hits[i] = driven.VectorHit{
			Chunk:      chunk,
			Similarity: cosineSimilarity(query, chunk.Embedding),
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Count returns the total number of stored chunks.
func (s *VectorStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks), nil
}

// Documents lists the distinct source documents with chunk counts in
// first-ingested order.
func (s *VectorStore) Documents(_ context.Context) ([]domain.CorpusDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	var order []string
	for _, chunk := range s.chunks {
		if _, seen := counts[chunk.Source]; !seen {
			order = append(order, chunk.Source)
		}
		counts[chunk.Source]++
	}

	docs := make([]domain.CorpusDocument, len(order))
	for i, source := range order {
		docs[i] = domain.CorpusDocument{Source: source, ChunkCount: counts[source]}
	}
	return docs, nil
}

// HasDocument reports whether any chunks exist for the source file.
func (s *VectorStore) HasDocument(_ context.Context, source string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, chunk := range s.chunks {
		if chunk.Source == source {
			return true, nil
		}
	}
	return false, nil
}

// EmbeddingModel returns the recorded embedding model name.
func (s *VectorStore) EmbeddingModel(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.model, nil
}

// SetEmbeddingModel records the embedding model the index is built with.
func (s *VectorStore) SetEmbeddingModel(_ context.Context, model string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.model = model
	return nil
}

// Reset removes every entry.
func (s *VectorStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = nil
	s.model = ""
	return nil
}

// Close releases resources.
func (s *VectorStore) Close() error {
	return nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths or zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
