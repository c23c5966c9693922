package mcp

import (
	"context"

	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
	"github.com/custodia-labs/askdocs-cli/internal/core/ports/driving"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	answer   *domain.Answer
	err      error
	lastOpts driving.AskOptions
}

func (m *mockQueryService) Ask(
	_ context.Context,
	_ string,
	opts driving.AskOptions,
) (*domain.Answer, error) {
	m.lastOpts = opts
	return m.answer, m.err
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	report    *domain.IngestReport
	batch     *domain.BatchReport
	documents []domain.CorpusDocument
	err       error
}

func (m *mockIngestService) IngestText(
	_ context.Context,
	_, _ string,
) (*domain.IngestReport, error) {
	return m.report, m.err
}

func (m *mockIngestService) IngestFiles(
	_ context.Context,
	_ []string,
) (*domain.BatchReport, error) {
	return m.batch, m.err
}

func (m *mockIngestService) Documents(_ context.Context) ([]domain.CorpusDocument, error) {
	return m.documents, m.err
}

func (m *mockIngestService) Reset(_ context.Context) error {
	return m.err
}
