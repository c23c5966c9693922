package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/custodia-labs/askdocs-cli/internal/chunker"
	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
	"github.com/custodia-labs/askdocs-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdocs-cli/internal/core/ports/driving"
	"github.com/custodia-labs/askdocs-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// supportedExtensions lists the file types ingestion reads directly.
// Anything else must arrive pre-extracted via IngestText.
var supportedExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// IngestService feeds documents through the chunk -> embed -> index
// pipeline.
type IngestService struct {
	chunker  *chunker.Chunker
	embedder driven.EmbeddingService
	store    driven.VectorStore
}

// NewIngestService creates an ingest service.
func NewIngestService(
	c *chunker.Chunker,
	embedder driven.EmbeddingService,
	store driven.VectorStore,
) *IngestService {
	return &IngestService{
		chunker:  c,
		embedder: embedder,
		store:    store,
	}
}

// IngestText chunks, embeds, and indexes one document supplied as raw
// extracted text. A source already in the corpus is skipped, not
// re-ingested: index entries are immutable and only reset removes them.
func (s *IngestService) IngestText(ctx context.Context, source, text string) (*domain.IngestReport, error) {
	start := time.Now()

	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("%w: source name is empty", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: document %q has no text content", domain.ErrInvalidInput, source)
	}

	exists, err := s.store.HasDocument(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("%w: checking for %q: %v", domain.ErrIngestion, source, err)
	}
	if exists {
		logger.Info("Skipping %q: already in corpus", source)
		return &domain.IngestReport{
			Source:   source,
			Skipped:  true,
			Duration: time.Since(start),
		}, nil
	}

	logger.Section("Ingestion")
	logger.Debug("Source: %q, %d chars", source, len(text))

	chunks := s.chunker.Chunk(source, text)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: document %q produced no chunks", domain.ErrInvalidInput, source)
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding %q: %v", domain.ErrIngestion, source, err)
	}
	if len(embeddings) != len(chunks) {
		return nil, fmt.Errorf("%w: embedding %q: got %d vectors for %d chunks",
			domain.ErrIngestion, source, len(embeddings), len(chunks))
	}

	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
	}

	if err := s.store.Add(ctx, chunks); err != nil {
		return nil, fmt.Errorf("%w: indexing %q: %v", domain.ErrIngestion, source, err)
	}

	report := &domain.IngestReport{
		Source:     source,
		ChunkCount: len(chunks),
		Duration:   time.Since(start),
	}
	logger.Info("Ingested %q: %d chunks in %s", source, report.ChunkCount, report.Duration.Round(time.Millisecond))

	return report, nil
}

// IngestFiles processes a batch of file paths. Per-file failures are
// collected in the report and never abort the remaining files.
func (s *IngestService) IngestFiles(ctx context.Context, paths []string) (*domain.BatchReport, error) {
	batch := &domain.BatchReport{
		Failures: make(map[string]error),
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return batch, err
		}

		text, err := readDocument(path)
		if err != nil {
			logger.Warn("Skipping %q: %v", path, err)
			batch.Failures[path] = err
			continue
		}

		report, err := s.IngestText(ctx, filepath.Base(path), text)
		if err != nil {
			logger.Warn("Failed to ingest %q: %v", path, err)
			batch.Failures[path] = err
			continue
		}
		batch.Reports = append(batch.Reports, *report)
	}

	return batch, nil
}

// Documents lists the ingested corpus with chunk counts.
func (s *IngestService) Documents(ctx context.Context) ([]domain.CorpusDocument, error) {
	return s.store.Documents(ctx)
}

// Reset destroys the entire corpus.
func (s *IngestService) Reset(ctx context.Context) error {
	logger.Info("Resetting corpus")
	return s.store.Reset(ctx)
}

// readDocument reads a supported file type as text.
func readDocument(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedExtensions[ext] {
		return "", fmt.Errorf("%w: unsupported file type %q (supported: .txt, .md)", domain.ErrInvalidInput, ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading file: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("%w: file is empty", domain.ErrInvalidInput)
	}
	return string(data), nil
}
