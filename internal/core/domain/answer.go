package domain

import "time"

// RetrievedChunk is a chunk returned from similarity search,
// with its cosine similarity score and rank.
type RetrievedChunk struct {
	// Source is the source file name of the owning document.
	Source string

	// ChunkIndex is the chunk's ordinal position within the document.
	ChunkIndex int

	// Text is the chunk text content.
	Text string

	// Similarity is the cosine similarity to the query, in [-1, 1].
	Similarity float64

	// Rank is the position in the result ordering (0 = best match).
	Rank int
}

// RetrievalResult is the ordered outcome of one retrieval pass.
// It is ephemeral and recomputed per query.
type RetrievalResult struct {
	// Chunks are ordered by non-increasing similarity.
	Chunks []RetrievedChunk

	// Confidence is the mean similarity score across Chunks.
	Confidence float64

	// LowConfidence is set when Confidence falls below the configured
	// threshold. It annotates the result; it never suppresses it.
	LowConfidence bool
}

// Citation ties a claim in an answer back to a specific source chunk.
type Citation struct {
	// Source is the cited source file name.
	Source string `json:"source"`

	// ChunkIndex is the cited chunk's ordinal position.
	ChunkIndex int `json:"chunk_index"`
}

// Answer is a generated response grounded in retrieved context.
type Answer struct {
	// Text is the fully assembled answer.
	Text string

	// Citations are the distinct source labels actually used in Text,
	// in order of first appearance. Empty for insufficient-information
	// answers.
	Citations []Citation

	// LowConfidence carries the retrieval confidence annotation.
	LowConfidence bool

	// Model is the LLM model that produced the answer.
	Model string

	// Duration is the wall-clock time from retrieval start to completion.
	Duration time.Duration
}

// QueryState tracks the lifecycle of a single query.
type QueryState string

// Query lifecycle states. Done, Error and NoDocuments are terminal.
const (
	QueryStateIdle        QueryState = "idle"
	QueryStateRetrieving  QueryState = "retrieving"
	QueryStateNoDocuments QueryState = "no_documents"
	QueryStateLowContext  QueryState = "low_context"
	QueryStateReady       QueryState = "ready"
	QueryStateGenerating  QueryState = "generating"
	QueryStateStreaming   QueryState = "streaming"
	QueryStateDone        QueryState = "done"
	QueryStateError       QueryState = "error"
)

// Terminal reports whether the state ends the query lifecycle.
func (s QueryState) Terminal() bool {
	switch s {
	case QueryStateDone, QueryStateError, QueryStateNoDocuments:
		return true
	}
	return false
}

// IngestReport summarises the ingestion of one document.
type IngestReport struct {
	// Source is the source file name.
	Source string

	// ChunkCount is the number of chunks written to the index.
	ChunkCount int

	// Skipped is set when the document was already in the corpus.
	Skipped bool

	// Duration is the wall-clock ingestion time.
	Duration time.Duration
}

// BatchReport summarises a multi-file ingestion batch.
// Per-file failures never abort the batch; they are collected here.
type BatchReport struct {
	// Reports holds the outcome for each successfully processed file.
	Reports []IngestReport

	// Failures maps a file path to the error that skipped it.
	Failures map[string]error
}
