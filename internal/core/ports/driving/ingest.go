package driving

import (
	"context"

	"github.com/Jpmac110205/jarvis/internal/core/domain"
)

// Ingestor runs the offline ingestion pipeline:
// load documents, chunk, embed, and upsert into the vector index.
type Ingestor interface {
	// Ingest processes every matching document under settings.DocsDir.
	// Loader failures (missing path, empty corpus) abort the run before
	// anything is written. Embedding or index failures abort the run for
	// the failing batch; no partial batch is written.
	Ingest(ctx context.Context, settings domain.IngestSettings) (*IngestStats, error)
}

// IngestStats summarises a completed ingestion run.
type IngestStats struct {
	// Documents is the number of source documents loaded.
	Documents int

	// Chunks is the number of chunks embedded and stored.
	Chunks int

	// IndexSize is the total entry count after the run.
	IndexSize int
}
