package services

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
	"github.com/custodia-labs/askdocs-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdocs-cli/internal/core/ports/driving"
	"github.com/custodia-labs/askdocs-cli/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// QueryService orchestrates one question end to end: retrieval, prompt
// assembly, streamed generation, citation extraction. Each Ask call is
// an independent lifecycle; the service itself is stateless and safe
// for concurrent use.
type QueryService struct {
	retriever *RetrieverService
	prompts   *PromptBuilder
	generator *Generator

	genOpts driven.GenerateOptions
}

// NewQueryService creates a query service.
func NewQueryService(
	retriever *RetrieverService,
	prompts *PromptBuilder,
	generator *Generator,
	genOpts driven.GenerateOptions,
) *QueryService {
	return &QueryService{
		retriever: retriever,
		prompts:   prompts,
		generator: generator,
		genOpts:   genOpts,
	}
}

// Ask answers a question from the ingested corpus.
//
// Lifecycle: Idle -> Retrieving -> (NoDocuments | LowContext | Ready) ->
// Generating -> Streaming -> Done, with Error reachable from Retrieving
// or Generating. Every transition is reported through opts.OnState.
func (s *QueryService) Ask(ctx context.Context, question string, opts driving.AskOptions) (*domain.Answer, error) {
	transition := func(state domain.QueryState) {
		if opts.OnState != nil {
			opts.OnState(state)
		}
	}

	start := time.Now()
	transition(domain.QueryStateIdle)
	transition(domain.QueryStateRetrieving)

	retrieval, err := s.retriever.Retrieve(ctx, question, opts.TopK)
	if err != nil {
		if errors.Is(err, domain.ErrNoDocuments) {
			transition(domain.QueryStateNoDocuments)
		} else {
			transition(domain.QueryStateError)
		}
		return nil, err
	}

	if retrieval.LowConfidence {
		transition(domain.QueryStateLowContext)
	} else {
		transition(domain.QueryStateReady)
	}

	system, user, err := s.prompts.Build(question, retrieval.Chunks)
	if err != nil {
		transition(domain.QueryStateError)
		return nil, err
	}

	transition(domain.QueryStateGenerating)

	streaming := false
	text, err := s.generator.Generate(ctx, system, user, s.genOpts, func(fragment string) {
		if !streaming {
			streaming = true
			transition(domain.QueryStateStreaming)
		}
		if opts.OnFragment != nil {
			opts.OnFragment(fragment)
		}
	})
	if err != nil {
		transition(domain.QueryStateError)
		return nil, err
	}

	answer := &domain.Answer{
		Text:          text,
		Citations:     ExtractCitations(text, retrieval.Chunks),
		LowConfidence: retrieval.LowConfidence,
		Model:         s.generator.ModelName(),
		Duration:      time.Since(start),
	}

	transition(domain.QueryStateDone)
	logger.Info("Answered in %s with %d citations", answer.Duration.Round(time.Millisecond), len(answer.Citations))

	return answer, nil
}
