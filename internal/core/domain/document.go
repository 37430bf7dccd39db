// Package domain contains the core types shared across Jarvis.
package domain

// Document represents a loaded source document before chunking.
// Documents are immutable for the lifetime of an ingestion run.
type Document struct {
	// ID is the unique identifier, derived from the source path.
	ID string

	// Content is the full raw text of the document.
	Content string

	// Metadata contains arbitrary key-value pairs.
	// The loader always sets "source" to the originating file path.
	Metadata map[string]any
}

// Chunk represents a bounded-length piece of a document.
// Chunks are the unit of embedding and retrieval.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Embedding is the vector representation for semantic retrieval.
	// Populated by the ingestion pipeline after chunking.
	Embedding []float32

	// Metadata is inherited from the parent document.
	Metadata map[string]any
}

// Source returns the originating file path recorded by the loader,
// or the empty string when unknown.
func (c Chunk) Source() string {
	if c.Metadata == nil {
		return ""
	}
	if src, ok := c.Metadata["source"].(string); ok {
		return src
	}
	return ""
}
