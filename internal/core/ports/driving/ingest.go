package driving

import (
	"context"

	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
)

// IngestService feeds documents into the corpus.
type IngestService interface {
	// IngestText chunks, embeds, and indexes one document supplied as
	// raw extracted text. Documents already in the corpus are skipped
	// and reported as such.
	IngestText(ctx context.Context, source, text string) (*domain.IngestReport, error)

	// IngestFiles processes a batch of file paths. Per-file failures
	// (unreadable, empty, unsupported type) are collected in the report
	// and never abort the remaining files.
	IngestFiles(ctx context.Context, paths []string) (*domain.BatchReport, error)

	// Documents lists the ingested corpus with chunk counts.
	Documents(ctx context.Context) ([]domain.CorpusDocument, error)

	// Reset destroys the entire corpus. The only way documents leave
	// the index.
	Reset(ctx context.Context) error
}
