package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
)

func TestDocumentsCmd_ListsCorpus(t *testing.T) {
	mock := &mockIngestService{
		documents: []domain.CorpusDocument{
			{Source: "report.pdf.txt", ChunkCount: 12},
			{Source: "notes.md", ChunkCount: 3},
		},
	}
	setupIngestService(t, mock)

	out, err := execute(t, "documents")

	require.NoError(t, err)
	assert.Contains(t, out, "report.pdf.txt (12 chunks)")
	assert.Contains(t, out, "notes.md (3 chunks)")
	assert.Contains(t, out, "2 documents, 15 chunks")
}

func TestDocumentsCmd_EmptyCorpus(t *testing.T) {
	setupIngestService(t, &mockIngestService{})

	out, err := execute(t, "documents")

	require.NoError(t, err)
	assert.Contains(t, out, "No documents ingested yet")
}

func TestDocumentsCmd_JSONOutput(t *testing.T) {
	mock := &mockIngestService{
		documents: []domain.CorpusDocument{
			{Source: "notes.md", ChunkCount: 3},
		},
	}
	setupIngestService(t, mock)
	defer func() { documentsJSON = false }()

	out, err := execute(t, "documents", "--json")

	require.NoError(t, err)
	assert.Contains(t, out, "\"Source\"")
	assert.Contains(t, out, "notes.md")
}

func TestDocumentsCmd_ServiceNotConfigured(t *testing.T) {
	old := ingestService
	ingestService = nil
	defer func() {
		ingestService = old
		rootCmd.SetArgs(nil)
	}()

	_, err := execute(t, "documents")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingest service not configured")
}
