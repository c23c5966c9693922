package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
)

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns grounded answer with citations", func(t *testing.T) {
		mockQuery := &mockQueryService{
			answer: &domain.Answer{
				Text: "Paris is the capital of France [Source: geo.txt, Chunk #0].",
				Citations: []domain.Citation{
					{Source: "geo.txt", ChunkIndex: 0},
				},
				Model: "llama3.2",
			},
		}

		ports := &Ports{Query: mockQuery}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := AskInput{Question: "What is the capital of France?"}
		_, output, err := server.handleAsk(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, mockQuery.answer.Text, output.Answer)
		require.Len(t, output.Citations, 1)
		assert.Equal(t, "geo.txt", output.Citations[0].Source)
		assert.Equal(t, 0, output.Citations[0].ChunkIndex)
		assert.False(t, output.LowConfidence)
		assert.Equal(t, "llama3.2", output.Model)
	})

	t.Run("nil citations become empty slice", func(t *testing.T) {
		mockQuery := &mockQueryService{
			answer: &domain.Answer{Text: "no citations here"},
		}

		ports := &Ports{Query: mockQuery}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleAsk(ctx, nil, AskInput{Question: "anything"})

		require.NoError(t, err)
		assert.NotNil(t, output.Citations)
		assert.Empty(t, output.Citations)
	})

	t.Run("top_k is forwarded", func(t *testing.T) {
		mockQuery := &mockQueryService{
			answer: &domain.Answer{Text: "ok"},
		}

		ports := &Ports{Query: mockQuery}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{Question: "q", TopK: 3})

		require.NoError(t, err)
		assert.Equal(t, 3, mockQuery.lastOpts.TopK)
	})

	t.Run("empty corpus returns friendly error", func(t *testing.T) {
		mockQuery := &mockQueryService{
			err: domain.ErrNoDocuments,
		}

		ports := &Ports{Query: mockQuery}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{Question: "q"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no documents uploaded yet")
	})

	t.Run("returns error on query failure", func(t *testing.T) {
		mockQuery := &mockQueryService{
			err: errors.New("model unreachable"),
		}

		ports := &Ports{Query: mockQuery}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{Question: "q"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "model unreachable")
	})
}

func TestServer_handleIngest(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ingestion report", func(t *testing.T) {
		mockIngest := &mockIngestService{
			report: &domain.IngestReport{
				Source:     "notes.txt",
				ChunkCount: 4,
			},
		}

		ports := &Ports{Query: &mockQueryService{}, Ingest: mockIngest}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := IngestInput{Source: "notes.txt", Text: "some document text"}
		_, output, err := server.handleIngest(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "notes.txt", output.Source)
		assert.Equal(t, 4, output.ChunkCount)
		assert.False(t, output.Skipped)
	})

	t.Run("duplicate document is reported as skipped", func(t *testing.T) {
		mockIngest := &mockIngestService{
			report: &domain.IngestReport{
				Source:  "notes.txt",
				Skipped: true,
			},
		}

		ports := &Ports{Query: &mockQueryService{}, Ingest: mockIngest}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleIngest(ctx, nil, IngestInput{Source: "notes.txt", Text: "text"})

		require.NoError(t, err)
		assert.True(t, output.Skipped)
		assert.Equal(t, 0, output.ChunkCount)
	})

	t.Run("returns error on ingestion failure", func(t *testing.T) {
		mockIngest := &mockIngestService{
			err: errors.New("embedding service unavailable"),
		}

		ports := &Ports{Query: &mockQueryService{}, Ingest: mockIngest}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleIngest(ctx, nil, IngestInput{Source: "notes.txt", Text: "text"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "embedding service unavailable")
	})
}
