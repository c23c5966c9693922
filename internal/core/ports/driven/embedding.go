package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// Embedding must be deterministic: identical text yields the identical
// vector for a fixed model. The ingestion and query paths MUST share one
// model; a mismatch silently degrades retrieval, so the application
// treats it as a startup invariant (see VectorStore.EmbeddingModel).
//
// Implementations may include:
//   - Ollama (nomic-embed-text, all-minilm)
//   - OpenAI (text-embedding-3-small, text-embedding-3-large)
//
// Adapters return unit-normalised vectors so cosine similarity reduces
// to a dot product.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	// This is more efficient than calling Embed in a loop for large batches.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768, 1536).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight
	// test request. Used at startup: an unreachable model is a fatal
	// configuration error, not a per-call one.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
