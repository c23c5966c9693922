package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/askdocs-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/askdocs-cli/internal/core/domain"
	"github.com/custodia-labs/askdocs-cli/internal/core/ports/driven"
)

// metaKeyEmbeddingModel is the index_meta key recording the embedding
// model the index was built with.
const metaKeyEmbeddingModel = "embedding_model"

var _ driven.VectorStore = (*Store)(nil)

// Store is a SQLite-backed vector store. Embeddings are held as
// little-endian float32 blobs; search loads all entries and scores them
// by exact cosine similarity, which stays fast at the corpus sizes a
// local document collection reaches.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.askdocs/data/index.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".askdocs", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "index.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// Add inserts chunk entries with their embeddings.
func (s *Store) Add(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, source, chunk_index, content, embedding)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		embeddingBlob := float32SliceToBytes(chunk.Embedding)

		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.Source,
			chunk.Index, chunk.Text, embeddingBlob); err != nil {
			return fmt.Errorf("saving chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Search returns the k nearest entries by exact cosine similarity,
// ties broken by insertion order.
func (s *Store) Search(ctx context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive", domain.ErrInvalidInput)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, chunk_index, content, embedding
		FROM chunks
		ORDER BY rowid
	`)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var hits []driven.VectorHit //nolint:prealloc // size unknown from query
	for rows.Next() {
		var chunk domain.Chunk
		var embeddingBlob []byte
		if err := rows.Scan(&chunk.ID, &chunk.Source, &chunk.Index,
			&chunk.Text, &embeddingBlob); err != nil {
			return nil, fmt.Errorf("scanning chunk: %w", err)
		}
		chunk.Embedding = bytesToFloat32Slice(embeddingBlob)

		hits = append(hits, driven.VectorHit{
			Chunk:      chunk,
			Similarity: cosineSimilarity(query, chunk.Embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	if len(hits) == 0 {
		return nil, domain.ErrEmptyIndex
	}

	// Stable sort keeps rowid order for equal scores.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// Count returns the total number of stored chunks.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting chunks: %w", err)
	}
	return count, nil
}

// Documents lists the distinct source documents with chunk counts,
// ordered by first ingestion.
func (s *Store) Documents(ctx context.Context) ([]domain.CorpusDocument, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source, COUNT(*) AS chunk_count
		FROM chunks
		GROUP BY source
		ORDER BY MIN(rowid)
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.CorpusDocument //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.CorpusDocument
		if err := rows.Scan(&doc.Source, &doc.ChunkCount); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

// HasDocument reports whether any chunks exist for the source file.
func (s *Store) HasDocument(ctx context.Context, source string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM chunks WHERE source = ?", source).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking document: %w", err)
	}
	return count > 0, nil
}

// EmbeddingModel returns the model name the index was built with, or ""
// for a fresh index.
func (s *Store) EmbeddingModel(ctx context.Context) (string, error) {
	var model string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM index_meta WHERE key = ?", metaKeyEmbeddingModel).Scan(&model)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading embedding model: %w", err)
	}
	return model, nil
}

// SetEmbeddingModel records the embedding model the index is built with.
func (s *Store) SetEmbeddingModel(ctx context.Context, model string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO index_meta (key, value)
		VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, metaKeyEmbeddingModel, model)
	if err != nil {
		return fmt.Errorf("recording embedding model: %w", err)
	}
	return nil
}

// Reset removes every entry, returning the store to its fresh state.
func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM chunks"); err != nil {
		return fmt.Errorf("deleting chunks: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM index_meta"); err != nil {
		return fmt.Errorf("deleting index metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths or zero vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
