package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
	"github.com/custodia-labs/askdocs-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdocs-cli/internal/logger"
)

// contextSeparator divides rendered chunks inside the prompt.
const contextSeparator = "\n\n---\n\n"

// PromptBuilder assembles retrieved chunks and the question into a
// grounding-constrained prompt pair. Each chunk carries an explicit
// source label so the model can cite it and citation extraction can
// find it again in the output.
type PromptBuilder struct {
	prompts driven.PromptStore
}

// NewPromptBuilder creates a prompt builder backed by the given store.
func NewPromptBuilder(prompts driven.PromptStore) *PromptBuilder {
	return &PromptBuilder{prompts: prompts}
}

// Build renders the system and user prompts for one question.
func (b *PromptBuilder) Build(question string, chunks []domain.RetrievedChunk) (system, user string, err error) {
	system, err = b.prompts.Load(driven.PromptGroundingSystem)
	if err != nil {
		return "", "", fmt.Errorf("loading system prompt: %w", err)
	}

	template, err := b.prompts.Load(driven.PromptContextUser)
	if err != nil {
		return "", "", fmt.Errorf("loading user prompt template: %w", err)
	}

	blocks := make([]string, len(chunks))
	for i, chunk := range chunks {
		blocks[i] = fmt.Sprintf("%s (relevance: %.0f%%)\n%s",
			CitationLabel(chunk.Source, chunk.ChunkIndex),
			chunk.Similarity*100,
			chunk.Text)
	}

	user = fmt.Sprintf(template, strings.Join(blocks, contextSeparator), question)

	logger.Debug("Prompt built: %d chars, %d context chunks", len(system)+len(user), len(chunks))

	return system, user, nil
}

// CitationLabel renders the source label attached to each context chunk,
// e.g. "[Source: report.pdf, Chunk #3]". Citation extraction scans
// generated answers for this exact shape.
func CitationLabel(source string, chunkIndex int) string {
	return fmt.Sprintf("[Source: %s, Chunk #%d]", source, chunkIndex)
}
