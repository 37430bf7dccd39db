package driving

import (
	"context"

	"github.com/Jpmac110205/jarvis/internal/core/domain"
)

// Retriever answers similarity queries against the vector index.
type Retriever interface {
	// Retrieve embeds the query and returns the most similar stored
	// chunks, ordered by descending relevance. Every call re-embeds
	// and re-searches; there is no query cache.
	Retrieve(ctx context.Context, query string, opts domain.RetrieveOptions) ([]domain.RetrievedChunk, error)
}
