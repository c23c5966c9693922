package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
	"github.com/custodia-labs/askdocs-cli/internal/core/ports/driving"
)

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer from the uploaded documents"`
	TopK     int    `json:"top_k,omitempty" jsonschema:"number of context chunks to retrieve (default 5)"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer        string            `json:"answer"`
	Citations     []domain.Citation `json:"citations"`
	LowConfidence bool              `json:"low_confidence"`
	Model         string            `json:"model"`
}

// IngestInput is the input schema for the ingest_text tool.
type IngestInput struct {
	Source string `json:"source" jsonschema:"source filename to record for citations, e.g. notes.txt"`
	Text   string `json:"text" jsonschema:"the raw document text to ingest"`
}

// IngestOutput is the output schema for the ingest_text tool.
type IngestOutput struct {
	Source     string `json:"source"`
	ChunkCount int    `json:"chunk_count"`
	Skipped    bool   `json:"skipped"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Ask a question answered only from the uploaded documents, with citations",
	}, s.handleAsk)

	if s.ports.Ingest != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ingest_text",
			Description: "Add a document to the corpus from raw text",
		}, s.handleIngest)
	}
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Query.Ask(ctx, input.Question, driving.AskOptions{TopK: input.TopK})
	if err != nil {
		if errors.Is(err, domain.ErrNoDocuments) {
			return nil, AskOutput{}, errors.New("no documents uploaded yet; ingest a document first")
		}
		return nil, AskOutput{}, err
	}

	citations := answer.Citations
	if citations == nil {
		citations = []domain.Citation{}
	}

	return nil, AskOutput{
		Answer:        answer.Text,
		Citations:     citations,
		LowConfidence: answer.LowConfidence,
		Model:         answer.Model,
	}, nil
}

// handleIngest handles the ingest_text tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	report, err := s.ports.Ingest.IngestText(ctx, input.Source, input.Text)
	if err != nil {
		return nil, IngestOutput{}, err
	}

	return nil, IngestOutput{
		Source:     report.Source,
		ChunkCount: report.ChunkCount,
		Skipped:    report.Skipped,
	}, nil
}
