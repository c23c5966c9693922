package mcp

import (
	"github.com/custodia-labs/askdocs-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers questions from the corpus.
	Query driving.QueryService

	// Ingest feeds documents into the corpus.
	Ingest driving.IngestService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	// Ingest is optional: without it the server is ask-only.
	return nil
}
