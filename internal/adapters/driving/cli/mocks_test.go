package cli

import (
	"context"

	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
	"github.com/custodia-labs/askdocs-cli/internal/core/ports/driving"
)

// mockQueryService is a mock implementation of driving.QueryService.
type mockQueryService struct {
	answer       *domain.Answer
	fragments    []string
	errs         []error // consumed one per call; nil entries succeed
	calls        int
	lastQuestion string
	lastOpts     driving.AskOptions
}

func (m *mockQueryService) Ask(
	_ context.Context,
	question string,
	opts driving.AskOptions,
) (*domain.Answer, error) {
	call := m.calls
	m.calls++
	m.lastQuestion = question
	m.lastOpts = opts

	if call < len(m.errs) && m.errs[call] != nil {
		return nil, m.errs[call]
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
	batch     *domain.BatchReport
	documents []domain.CorpusDocument
	err       error
	resets    int
}

func (m *mockIngestService) IngestText(
	_ context.Context,
	source, _ string,
) (*domain.IngestReport, error) {
	if m.err != nil {
		return nil, m.err
	}
	return &domain.IngestReport{Source: source}, nil
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
	m.resets++
	return m.err
}

// mockSettingsStore is an in-memory driven.SettingsStore.
type mockSettingsStore struct {
	settings domain.AppSettings
	loadErr  error
	saveErr  error
	saves    int
}

func newMockSettingsStore() *mockSettingsStore {
	return &mockSettingsStore{settings: domain.DefaultSettings()}
}

func (m *mockSettingsStore) Load() (domain.AppSettings, error) {
	return m.settings, m.loadErr
}

func (m *mockSettingsStore) Save(settings domain.AppSettings) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.settings = settings
	m.saves++
	return nil
}

func (m *mockSettingsStore) Path() string {
	return "/tmp/askdocs-test/config.toml"
}
