// Package sqlite provides a SQLite-backed implementation of the VectorStore port.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation. Chunk embeddings are stored as little-endian
// float32 blobs alongside the chunk text and metadata, so a restarted process sees
// every previously ingested chunk without re-embedding anything.
//
// Search is exact: every stored vector is scored against the query by cosine
// similarity. At the corpus sizes a local document collection reaches this is
// faster and simpler than an approximate index.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory.
//
// # Data Location
//
// By default, the database is stored at ~/.askdocs/data/index.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
