package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors and are matched
// with errors.Is after wrapping.
var (
	// ErrNotFound indicates a requested path or entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyCorpus indicates the documents directory contained no
	// matching text files. Ingestion aborts without touching the index.
	ErrEmptyCorpus = errors.New("no documents found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmbeddingService indicates a remote embedding call failed.
	// Network, auth, rate limit and malformed responses all collapse here.
	ErrEmbeddingService = errors.New("embedding service error")

	// ErrLLMService indicates a remote LLM call failed.
	// Recoverable at the service boundary; conversation history is
	// never mutated when this is returned.
	ErrLLMService = errors.New("LLM service error")

	// ErrIndexCorrupt indicates the persisted vector index is unreadable
	// or was created with an incompatible schema, metric or dimension.
	// Fatal at open time; requires re-ingestion or repair.
	ErrIndexCorrupt = errors.New("vector index corrupt or incompatible")
)
