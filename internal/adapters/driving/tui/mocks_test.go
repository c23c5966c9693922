package tui

import (
	"context"

	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
	"github.com/custodia-labs/askdocs-cli/internal/core/ports/driving"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	answer    *domain.Answer
	fragments []string
	err       error
}

func (m *mockQueryService) Ask(
	_ context.Context,
	_ string,
	opts driving.AskOptions,
) (*domain.Answer, error) {
	if m.err != nil {
		return nil, m.err
	}
	if opts.OnFragment != nil {
		for _, f := range m.fragments {
			opts.OnFragment(f)
		}
	}
	return m.answer, nil
}

// mockIngestService is a mock implementation of driving.IngestService.
type mockIngestService struct {
	documents []domain.CorpusDocument
	err       error
}

func (m *mockIngestService) IngestText(
	_ context.Context,
	source, _ string,
) (*domain.IngestReport, error) {
	return &domain.IngestReport{Source: source}, m.err
}

func (m *mockIngestService) IngestFiles(
	_ context.Context,
	_ []string,
) (*domain.BatchReport, error) {
	return &domain.BatchReport{}, m.err
}

func (m *mockIngestService) Documents(_ context.Context) ([]domain.CorpusDocument, error) {
	return m.documents, m.err
}

func (m *mockIngestService) Reset(_ context.Context) error {
	return m.err
}
