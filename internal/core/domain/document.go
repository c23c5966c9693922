package domain

import "time"

// Document represents an ingested source document.
// It is immutable once ingested; removal happens only via a full corpus reset.
type Document struct {
	// Source is the source file name, e.g. "report.pdf".
	// It doubles as the document identifier within the corpus.
	Source string

	// Text is the full extracted text content.
	Text string

	// ChunkCount is the number of chunks produced at ingestion.
	ChunkCount int

	// IngestedAt is when the document entered the corpus.
	IngestedAt time.Time
}

// Chunk is a bounded contiguous span of a document's text,
// the unit of embedding and retrieval.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Source is the source file name of the owning document.
	Source string

	// Index is the ordinal position within the document.
	Index int

	// Text is the text content of this chunk.
	Text string

	// Embedding is the vector representation for similarity search.
	// Populated at ingestion time, cached in the vector store thereafter.
	Embedding []float32
}

// CorpusDocument summarises one ingested document for corpus listings.
type CorpusDocument struct {
	// Source is the source file name.
	Source string

	// ChunkCount is the number of chunks stored for this document.
	ChunkCount int
}
