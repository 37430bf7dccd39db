package driven

import (
	"context"

	"github.com/Jpmac110205/jarvis/internal/core/domain"
)

// VectorIndex provides durable storage of (vector, text, metadata)
// entries and cosine similarity search over them.
//
// The distance metric is fixed when the collection is created; mixing
// metrics across writes is disallowed and surfaces as
// domain.ErrIndexCorrupt on open.
type VectorIndex interface {
	// Upsert appends entries to the collection. Entries are not
	// deduplicated by content; re-ingesting the same documents grows
	// the collection. Writes are durable once Upsert returns.
	Upsert(ctx context.Context, chunks []domain.Chunk) error

	// Search returns up to k entries ordered by non-decreasing cosine
	// distance from the query vector, ties broken by insertion order.
	// An index with fewer than k entries returns what is available;
	// an empty index returns an empty slice, never an error.
	Search(ctx context.Context, query []float32, k int) ([]domain.RetrievedChunk, error)

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
