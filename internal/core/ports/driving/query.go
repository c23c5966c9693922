package driving

import (
	"context"

	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
)

// AskOptions configures a single question.
type AskOptions struct {
	// TopK overrides the configured number of retrieved chunks.
	// Zero means use the configured default.
	TopK int

	// OnFragment, when non-nil, receives each answer fragment as it
	// streams from the model. Fragments concatenate to Answer.Text.
	OnFragment func(fragment string)

	// OnState, when non-nil, observes query lifecycle transitions.
	OnState func(state domain.QueryState)
}

// QueryService answers natural-language questions from the corpus.
type QueryService interface {
	// Ask retrieves context for the question, generates a grounded
	// answer, and extracts the citations actually used.
	//
	// Returns domain.ErrNoDocuments when the corpus is empty and
	// domain.ErrGeneration when the upstream model fails. Either way
	// the index and session state are left untouched.
	Ask(ctx context.Context, question string, opts AskOptions) (*domain.Answer, error)
}
