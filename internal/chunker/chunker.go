// Package chunker splits document text into overlapping bounded-length
// chunks along natural boundaries.
package chunker

import (
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
)

// DefaultChunkSize is the default maximum chunk length in characters.
const DefaultChunkSize = 500

// DefaultOverlap is the default number of characters repeated from the
// end of the previous chunk.
const DefaultOverlap = 50

// defaultSeparators is the split priority: paragraph breaks, then line
// breaks, then sentence breaks, then word boundaries. The empty string
// is the last resort and means "do not split further" - a single token
// longer than the chunk size is emitted whole rather than dropped.
var defaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// Chunker splits text recursively on a priority list of separators,
// merging adjacent pieces up to the chunk size. Splitting is
// deterministic and idempotent for fixed parameters.
type Chunker struct {
	chunkSize  int
	overlap    int
	separators []string
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the maximum chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize:  DefaultChunkSize,
		overlap:    DefaultOverlap,
		separators: defaultSeparators,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap doesn't exceed chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// Chunk splits text into domain chunks attributed to the source file.
// Empty or whitespace-only input yields no chunks, not an error.
func (c *Chunker) Chunk(source, text string) []domain.Chunk {
	spans := c.Split(text)

	chunks := make([]domain.Chunk, 0, len(spans))
	for i, span := range spans {
		chunks = append(chunks, domain.Chunk{
			ID:     uuid.New().String(),
			Source: source,
			Index:  i,
			Text:   span,
		})
	}
	return chunks
}

// Split returns the raw text spans without chunk metadata.
func (c *Chunker) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return c.merge(c.split(text, c.separators))
}

// split recursively divides text until every piece fits the chunk size
// or no separator is left to split on.
func (c *Chunker) split(text string, seps []string) []string {
	if text == "" {
		return nil
	}
	if len(text) <= c.chunkSize {
		return []string{text}
	}

	// Pick the highest-priority separator present in the text.
	sep := ""
	var rest []string
	for i, s := range seps {
		if s == "" {
			break
		}
		if strings.Contains(text, s) {
			sep = s
			rest = seps[i+1:]
			break
		}
	}
	if sep == "" {
		// Indivisible oversized token: emit whole.
		return []string{text}
	}

	var pieces []string
	for _, part := range splitAfter(text, sep) {
		if len(part) <= c.chunkSize {
			pieces = append(pieces, part)
		} else {
			pieces = append(pieces, c.split(part, rest)...)
		}
	}
	return pieces
}

// merge greedily packs pieces into chunks as close to the chunk size as
// possible without exceeding it, then seeds each following chunk with
// the overlap tail of the previous one. The overlap is skipped at a
// boundary where it would push the chunk past the size limit.
func (c *Chunker) merge(pieces []string) []string {
	var chunks []string
	cur := ""

	for _, piece := range pieces {
		switch {
		case cur == "":
			cur = piece
		case len(cur)+len(piece) <= c.chunkSize:
			cur += piece
		default:
			chunks = append(chunks, cur)
			tail := c.overlapTail(cur)
			if len(tail)+len(piece) <= c.chunkSize {
				cur = tail + piece
			} else {
				cur = piece
			}
		}
	}

	if strings.TrimSpace(cur) != "" {
		chunks = append(chunks, cur)
	}
	return chunks
}

// overlapTail returns the final overlap characters of s, rune-safe.
func (c *Chunker) overlapTail(s string) string {
	if c.overlap <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= c.overlap {
		return s
	}
	return string(runes[len(runes)-c.overlap:])
}

// splitAfter splits text on sep, keeping the separator attached to the
// preceding piece so chunks concatenate back to the original text.
func splitAfter(text, sep string) []string {
	parts := strings.SplitAfter(text, sep)
	// SplitAfter can leave a trailing empty piece when text ends in sep.
	if n := len(parts); n > 0 && parts[n-1] == "" {
		parts = parts[:n-1]
	}
	return parts
}
