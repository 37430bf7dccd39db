package domain

// RetrievedChunk is a chunk returned by a similarity search, paired
// with its cosine distance from the query. Results are ephemeral:
// produced per query and consumed immediately by the prompt composer.
type RetrievedChunk struct {
	// Chunk is the stored chunk that matched.
	Chunk Chunk

	// Distance is the cosine distance from the query vector.
	// Smaller is more similar; results are ordered by non-decreasing
	// distance with ties broken by insertion order.
	Distance float64
}

// RetrieveOptions configures a retrieval query.
type RetrieveOptions struct {
	// TopK is the maximum number of chunks to return.
	TopK int
}

// DefaultTopK is the number of chunks retrieved when none is specified.
const DefaultTopK = 4
