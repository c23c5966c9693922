package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyIndex indicates a similarity search against an index with
	// no entries. Callers must distinguish this from a query that simply
	// found no relevant match.
	ErrEmptyIndex = errors.New("vector index is empty")

	// ErrNoDocuments indicates the corpus holds no documents yet.
	// User-correctable: surfaced as "upload a document first".
	ErrNoDocuments = errors.New("no documents are loaded")

	// ErrIngestion indicates a single document could not be ingested
	// (unreadable, empty, or unsupported). Per-file: a batch skips the
	// file, reports it, and continues.
	ErrIngestion = errors.New("ingestion failed")

	// ErrGeneration indicates the upstream LLM call failed (timeout,
	// rate limit, transport). Aborts only the current query; the index
	// and session state are untouched. Callers may retry once with
	// unchanged input.
	ErrGeneration = errors.New("generation failed")

	// ErrConfig indicates missing or invalid configuration.
	// Fatal at startup, never per-request.
	ErrConfig = errors.New("invalid configuration")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or unreachable. Fatal at startup: both ingestion and
	// query paths require it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrLLMUnavailable indicates the LLM service is not configured or
	// unreachable. Fatal at startup for the query path.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrModelMismatch indicates the configured embedding model differs
	// from the one the persisted index was built with. Retrieval quality
	// would silently degrade, so this is a startup error.
	ErrModelMismatch = errors.New("embedding model does not match index")
)
