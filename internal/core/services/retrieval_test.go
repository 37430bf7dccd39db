package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jpmac110205/jarvis/internal/core/domain"
)

func retrievedChunk(id string, distance float64) domain.RetrievedChunk {
	return domain.RetrievedChunk{
		Chunk:    domain.Chunk{ID: id, Content: "content " + id},
		Distance: distance,
	}
}

func TestRetrieve_ReturnsIndexHits(t *testing.T) {
	index := &mockVectorIndex{hits: []domain.RetrievedChunk{
		retrievedChunk("a", 0.1),
		retrievedChunk("b", 0.4),
	}}
	svc := NewRetrievalService(&mockEmbeddingService{embedding: []float32{1, 0}}, index)

	hits, err := svc.Retrieve(context.Background(), "what is x?", domain.RetrieveOptions{TopK: 2})

	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "a", hits[0].Chunk.ID)
	assert.Equal(t, "b", hits[1].Chunk.ID)
}

func TestRetrieve_DefaultsTopK(t *testing.T) {
	hits := make([]domain.RetrievedChunk, 10)
	for i := range hits {
		hits[i] = retrievedChunk(string(rune('a'+i)), float64(i)/10)
	}
	index := &mockVectorIndex{hits: hits}
	svc := NewRetrievalService(&mockEmbeddingService{embedding: []float32{1}}, index)

	got, err := svc.Retrieve(context.Background(), "query", domain.RetrieveOptions{})

	require.NoError(t, err)
	assert.Len(t, got, domain.DefaultTopK)
}

func TestRetrieve_EmptyQueryFails(t *testing.T) {
	svc := NewRetrievalService(&mockEmbeddingService{}, &mockVectorIndex{})

	_, err := svc.Retrieve(context.Background(), "   ", domain.RetrieveOptions{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRetrieve_EmbeddingFailureSurfaces(t *testing.T) {
	svc := NewRetrievalService(
		&mockEmbeddingService{embedErr: domain.ErrEmbeddingService},
		&mockVectorIndex{},
	)

	_, err := svc.Retrieve(context.Background(), "query", domain.RetrieveOptions{})

	assert.ErrorIs(t, err, domain.ErrEmbeddingService)
}

func TestRetrieve_EmptyIndexReturnsEmpty(t *testing.T) {
	svc := NewRetrievalService(&mockEmbeddingService{embedding: []float32{1}}, &mockVectorIndex{})

	hits, err := svc.Retrieve(context.Background(), "query", domain.RetrieveOptions{})

	require.NoError(t, err)
	assert.Empty(t, hits)
}
