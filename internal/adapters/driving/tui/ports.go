// Package tui provides the interactive chat session for askdocs.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/askdocs-cli/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the chat TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Query answers questions from the corpus.
	Query driving.QueryService

	// Ingest lists the corpus for the sources sidebar. Optional; when
	// nil the sidebar is hidden.
	Ingest driving.IngestService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Query == nil {
		return ErrMissingQueryService
	}
	return nil
}
