// Package sqlite provides a persistent vector index backed by SQLite.
//
// Entries are stored as (vector, text, metadata) rows with an
// autoincrement sequence that preserves insertion order. Search is an
// exact cosine scan over the collection, which is well within budget
// for a personal document corpus; the distance metric is recorded in
// the collection metadata and fixed at creation time.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/Jpmac110205/jarvis/internal/adapters/driven/index/sqlite/migrations"
	"github.com/Jpmac110205/jarvis/internal/core/domain"
	"github.com/Jpmac110205/jarvis/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// MetricCosine is the only supported distance metric.
const MetricCosine = "cosine"

// Collection metadata keys.
const (
	metaMetric     = "distance_metric"
	metaDimensions = "dimensions"
)

// Index is a SQLite-backed persistent vector collection.
type Index struct {
	db   *sql.DB
	path string
}

// Open creates or reopens the collection persisted under dir.
// A fresh directory is initialised with the cosine metric; reopening a
// collection whose schema or metric is incompatible fails with
// domain.ErrIndexCorrupt.
func Open(dir string) (*Index, error) {
	if dir == "" {
		dir = domain.DefaultIndexDir
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(dir, "vectors.db")

	// WAL mode keeps concurrent search and upsert from blocking each other
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	idx := &Index{
		db:   db,
		path: dbPath,
	}

	if err := idx.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", domain.ErrIndexCorrupt, err)
	}

	if err := idx.checkCollection(); err != nil {
		db.Close()
		return nil, err
	}

	return idx, nil
}

// Close closes the database connection.
func (x *Index) Close() error {
	return x.db.Close()
}

// Path returns the database file path.
func (x *Index) Path() string {
	return x.path
}

// migrate runs all pending migrations.
func (x *Index) migrate(fsys embed.FS) error {
	_, err := x.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := x.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

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
			continue
		}
		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := x.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
		if _, err := x.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// checkCollection validates or initialises the collection metadata.
// The metric is written once at creation and must match on reopen;
// mixing distance metrics across writes is disallowed.
func (x *Index) checkCollection() error {
	var metric string
	err := x.db.QueryRow("SELECT value FROM collection WHERE key = ?", metaMetric).Scan(&metric)
	switch {
	case err == sql.ErrNoRows:
		if _, err := x.db.Exec(
			"INSERT INTO collection (key, value) VALUES (?, ?)", metaMetric, MetricCosine,
		); err != nil {
			return fmt.Errorf("%w: initialising collection metadata: %w", domain.ErrIndexCorrupt, err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("%w: reading collection metadata: %w", domain.ErrIndexCorrupt, err)
	case metric != MetricCosine:
		return fmt.Errorf("%w: collection uses metric %q, expected %q", domain.ErrIndexCorrupt, metric, MetricCosine)
	default:
		return nil
	}
}

// dimensions returns the recorded vector dimension, or 0 when the
// collection is empty and no dimension has been fixed yet.
func (x *Index) dimensions(ctx context.Context) (int, error) {
	var value string
	err := x.db.QueryRowContext(ctx,
		"SELECT value FROM collection WHERE key = ?", metaDimensions).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading dimensions: %w", err)
	}

	dims, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid dimensions %q", domain.ErrIndexCorrupt, value)
	}
	return dims, nil
}

// Upsert appends chunk entries to the collection in one transaction.
// Entries are not deduplicated by content: re-ingesting the same
// documents grows the collection. The first write fixes the collection
// dimension; later writes must match it.
func (x *Index) Upsert(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	dims, err := x.dimensions(ctx)
	if err != nil {
		return err
	}

	for i, chunk := range chunks {
		if len(chunk.Embedding) == 0 {
			return fmt.Errorf("%w: chunk %d has no embedding", domain.ErrInvalidInput, i)
		}
		if dims == 0 {
			dims = len(chunk.Embedding)
			continue
		}
		if len(chunk.Embedding) != dims {
			return fmt.Errorf("%w: chunk %d has dimension %d, collection uses %d",
				domain.ErrInvalidInput, i, len(chunk.Embedding), dims)
		}
	}

	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO collection (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, metaDimensions, strconv.Itoa(dims)); err != nil {
		return fmt.Errorf("recording dimensions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (id, document_id, content, position, embedding, metadata)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		metadataJSON, err := json.Marshal(chunk.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling chunk metadata: %w", err)
		}

		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.DocumentID, chunk.Content,
			chunk.Position, float32SliceToBytes(chunk.Embedding), string(metadataJSON)); err != nil {
			return fmt.Errorf("inserting entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Search returns up to k entries ordered by non-decreasing cosine
// distance from the query vector. Ties are broken by insertion order.
// An index with fewer than k entries returns what is available.
func (x *Index) Search(ctx context.Context, query []float32, k int) ([]domain.RetrievedChunk, error) {
	if len(query) == 0 {
		return nil, fmt.Errorf("%w: empty query vector", domain.ErrInvalidInput)
	}
	if k <= 0 {
		return []domain.RetrievedChunk{}, nil
	}

	rows, err := x.db.QueryContext(ctx, `
		SELECT id, document_id, content, position, embedding, metadata
		FROM entries ORDER BY seq
	`)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	var hits []domain.RetrievedChunk
	for rows.Next() {
		var chunk domain.Chunk
		var embeddingBlob []byte
		var metadataJSON string
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.Content,
			&chunk.Position, &embeddingBlob, &metadataJSON); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		if err := json.Unmarshal([]byte(metadataJSON), &chunk.Metadata); err != nil {
			return nil, fmt.Errorf("%w: unmarshaling metadata: %w", domain.ErrIndexCorrupt, err)
		}
		chunk.Embedding = bytesToFloat32Slice(embeddingBlob)

		hits = append(hits, domain.RetrievedChunk{
			Chunk:    chunk,
			Distance: cosineDistance(query, chunk.Embedding),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}

	// Stable sort keeps insertion order for equal distances
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})

	if len(hits) > k {
		hits = hits[:k]
	}
	if hits == nil {
		hits = []domain.RetrievedChunk{}
	}
	return hits, nil
}

// Count returns the number of stored entries.
func (x *Index) Count(ctx context.Context) (int, error) {
	var count int
	if err := x.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM entries").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting entries: %w", err)
	}
	return count, nil
}

// cosineDistance computes 1 - cosine similarity, ranging from 0
// (parallel) to 2 (opposite). Vectors of differing dimension or zero
// magnitude are incomparable and yield the maximum distance of 2 so
// they rank behind every real match.
func cosineDistance(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 2
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 2
	}
	return 1 - dot/(math.Sqrt(normA)*math.Sqrt(normB))
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
