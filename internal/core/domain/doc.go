// Package domain defines the core business entities for Askdocs.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An ingested source document
//   - Chunk: The unit of embedding and retrieval within a document
//   - RetrievedChunk / RetrievalResult: Similarity-ranked query context
//   - Answer / Citation: A grounded answer tied back to source chunks
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
