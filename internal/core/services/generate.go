package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
	"github.com/custodia-labs/askdocs-cli/internal/core/ports/driven"
	"github.com/custodia-labs/askdocs-cli/internal/logger"
)

// citationPattern matches the source labels the prompt builder attaches
// to context chunks, e.g. "[Source: report.pdf, Chunk #3]".
var citationPattern = regexp.MustCompile(`\[Source:\s*([^,\]]+),\s*Chunk #(\d+)\]`)

// Generator streams model completions and extracts the citations
// actually used in the output.
type Generator struct {
	llm driven.LLMService
}

// NewGenerator creates a generator on top of the given LLM service.
func NewGenerator(llm driven.LLMService) *Generator {
	return &Generator{llm: llm}
}

// Generate streams the completion for the prompt pair, calling
// onFragment (if non-nil) for each fragment, and returns the assembled
// text. Model failures come back wrapped in domain.ErrGeneration;
// context cancellation is returned as-is so callers can tell an
// abandoned query from a failed one.
func (g *Generator) Generate(
	ctx context.Context,
	system, user string,
	opts driven.GenerateOptions,
	onFragment func(string),
) (string, error) {
	var b strings.Builder

	err := g.llm.GenerateStream(ctx, system, user, opts, func(fragment string) error {
		b.WriteString(fragment)
		if onFragment != nil {
			onFragment(fragment)
		}
		return ctx.Err()
	})
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}

	text := b.String()
	logger.Debug("Generated %d chars with %s", len(text), g.llm.ModelName())
	return text, nil
}

// ModelName returns the underlying model identifier.
func (g *Generator) ModelName() string {
	return g.llm.ModelName()
}

// ExtractCitations scans the answer for source labels and returns the
// distinct citations in order of first appearance. Labels that don't
// match any supplied context chunk are dropped, not repaired; a label
// the model invented cites nothing. Zero citations is valid output for
// an insufficient-information answer.
func ExtractCitations(text string, context []domain.RetrievedChunk) []domain.Citation {
	supplied := make(map[domain.Citation]bool, len(context))
	for _, chunk := range context {
		supplied[domain.Citation{Source: chunk.Source, ChunkIndex: chunk.ChunkIndex}] = true
	}

	seen := make(map[domain.Citation]bool)
	var citations []domain.Citation

	for _, match := range citationPattern.FindAllStringSubmatch(text, -1) {
		index, err := strconv.Atoi(match[2])
		if err != nil {
			continue
		}
		citation := domain.Citation{
			Source:     strings.TrimSpace(match[1]),
			ChunkIndex: index,
		}
		if !supplied[citation] || seen[citation] {
			continue
		}
		seen[citation] = true
		citations = append(citations, citation)
	}

	return citations
}
