package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
	"github.com/custodia-labs/askdocs-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdocs-cli/internal/logger"
)

// RetrieverService embeds a question, searches the vector index, and
// computes a confidence signal over the results.
type RetrieverService struct {
	embedder driven.EmbeddingService
	store    driven.VectorStore

	topK      int
	threshold float64
}

// NewRetrieverService creates a retriever with the given defaults.
// topK is the result count used when a call doesn't override it;
// threshold is the mean-similarity cutoff below which results are
// flagged low-confidence.
func NewRetrieverService(
	embedder driven.EmbeddingService,
	store driven.VectorStore,
	topK int,
	threshold float64,
) *RetrieverService {
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	return &RetrieverService{
		embedder:  embedder,
		store:     store,
		topK:      topK,
		threshold: threshold,
	}
}

// Retrieve embeds the question and returns the topK nearest chunks with
// a mean-similarity confidence score. A topK of zero uses the configured
// default.
//
// Returns domain.ErrNoDocuments when the index holds no entries, so
// callers can tell the user to upload a document first.
func (s *RetrieverService) Retrieve(ctx context.Context, question string, topK int) (*domain.RetrievalResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", domain.ErrInvalidInput)
	}
	if topK <= 0 {
		topK = s.topK
	}

	logger.Section("Retrieval")
	logger.Debug("Question: %q, top_k: %d", question, topK)

	queryVec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("embedding question: %w", err)
	}

	hits, err := s.store.Search(ctx, queryVec, topK)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyIndex) {
			return nil, domain.ErrNoDocuments
		}
		return nil, fmt.Errorf("searching index: %w", err)
	}

	result := &domain.RetrievalResult{
		Chunks: make([]domain.RetrievedChunk, len(hits)),
	}

	var sum float64
	for i, hit := range hits {
		result.Chunks[i] = domain.RetrievedChunk{
			Source:     hit.Chunk.Source,
			ChunkIndex: hit.Chunk.Index,
			Text:       hit.Chunk.Text,
			Similarity: hit.Similarity,
			Rank:       i,
		}
		sum += hit.Similarity
	}

	result.Confidence = sum / float64(len(hits))
	result.LowConfidence = result.Confidence < s.threshold

	logger.Info("Retrieved %d chunks, confidence %.3f (low: %t)",
		len(result.Chunks), result.Confidence, result.LowConfidence)

	return result, nil
}
