package services

import (
	"context"
	"fmt"

	"github.com/Jpmac110205/jarvis/internal/core/domain"
	"github.com/Jpmac110205/jarvis/internal/core/ports/driven"
	"github.com/Jpmac110205/jarvis/internal/core/ports/driving"
	"github.com/Jpmac110205/jarvis/internal/logger"
	"github.com/Jpmac110205/jarvis/internal/postprocessors/chunker"
)

// Ensure IngestService implements the interface.
var _ driving.Ingestor = (*IngestService)(nil)

// DocumentLoader reads source documents from a directory.
type DocumentLoader interface {
	LoadDirectory(dir string) ([]domain.Document, error)
}

// embedBatchSize bounds how many chunk texts go to the embedding
// service in one request.
const embedBatchSize = 64

// IngestService runs the offline ingestion pipeline:
// load, chunk, embed, store.
type IngestService struct {
	loader           DocumentLoader
	embeddingService driven.EmbeddingService
	vectorIndex      driven.VectorIndex
}

// NewIngestService creates an ingest service.
func NewIngestService(
	loader DocumentLoader,
	embeddingService driven.EmbeddingService,
	vectorIndex driven.VectorIndex,
) *IngestService {
	return &IngestService{
		loader:           loader,
		embeddingService: embeddingService,
		vectorIndex:      vectorIndex,
	}
}

// Ingest processes every matching document under settings.DocsDir.
func (s *IngestService) Ingest(
	ctx context.Context, settings domain.IngestSettings,
) (*driving.IngestStats, error) {
	logger.Section("Ingestion")

	settings = settings.WithDefaults()
	logger.Debug("Docs dir: %s, glob: %s", settings.DocsDir, settings.Glob)
	logger.Debug("Chunk size: %d, overlap: %d", settings.ChunkSize, settings.ChunkOverlap)

	// Validate the chunking settings before any documents are read
	splitter, err := chunker.New(
		chunker.WithChunkSize(settings.ChunkSize),
		chunker.WithOverlap(settings.ChunkOverlap),
	)
	if err != nil {
		return nil, err
	}

	docs, err := s.loader.LoadDirectory(settings.DocsDir)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	logger.Info("Loaded %d documents", len(docs))
	chunks := splitter.SplitAll(docs)
	logger.Info("Split into %d chunks", len(chunks))

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		if err := s.embedBatch(ctx, batch); err != nil {
			return nil, err
		}
		if err := s.vectorIndex.Upsert(ctx, batch); err != nil {
			return nil, fmt.Errorf("store chunks: %w", err)
		}
		logger.Debug("Stored chunks %d-%d", start, end-1)
	}

	indexSize, err := s.vectorIndex.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count index entries: %w", err)
	}

	stats := &driving.IngestStats{
		Documents: len(docs),
		Chunks:    len(chunks),
		IndexSize: indexSize,
	}
	logger.Info("Ingestion complete: %d documents, %d chunks, index size %d",
		stats.Documents, stats.Chunks, stats.IndexSize)

	return stats, nil
}

// embedBatch fills in the Embedding field for each chunk in the batch.
func (s *IngestService) embedBatch(ctx context.Context, batch []domain.Chunk) error {
	texts := make([]string, len(batch))
	for i := range batch {
		texts[i] = batch[i].Content
	}

	embeddings, err := s.embeddingService.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}
	if len(embeddings) != len(batch) {
		return fmt.Errorf("%w: got %d embeddings for %d chunks",
			domain.ErrEmbeddingService, len(embeddings), len(batch))
	}

	for i := range batch {
		batch[i].Embedding = embeddings[i]
	}
	return nil
}
