package services

import (
	"context"

	"github.com/Jpmac110205/jarvis/internal/core/domain"
	"github.com/Jpmac110205/jarvis/internal/core/ports/driven"
)

// --- Mock implementations shared across service tests ---

// mockLoader implements DocumentLoader for testing.
type mockLoader struct {
	docs    []domain.Document
	loadErr error
	gotDir  string
}

func (m *mockLoader) LoadDirectory(dir string) ([]domain.Document, error) {
	m.gotDir = dir
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.docs, nil
}

// mockEmbeddingService implements driven.EmbeddingService for testing.
type mockEmbeddingService struct {
	embedding  []float32
	embedErr   error
	batchCalls int
}

func (m *mockEmbeddingService) Embed(_ context.Context, _ string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.embedding, nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.batchCalls++
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	result := make([][]float32, len(texts))
	for i := range texts {
		result[i] = m.embedding
	}
	return result, nil
}

func (m *mockEmbeddingService) Dimensions() int { return len(m.embedding) }

func (m *mockEmbeddingService) ModelName() string { return "mock-embed" }

func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }

func (m *mockEmbeddingService) Close() error { return nil }

// mockVectorIndex implements driven.VectorIndex for testing.
type mockVectorIndex struct {
	stored    []domain.Chunk
	hits      []domain.RetrievedChunk
	upsertErr error
	searchErr error
}

func (m *mockVectorIndex) Upsert(_ context.Context, chunks []domain.Chunk) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.stored = append(m.stored, chunks...)
	return nil
}

func (m *mockVectorIndex) Search(_ context.Context, _ []float32, k int) ([]domain.RetrievedChunk, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if k > len(m.hits) {
		return m.hits, nil
	}
	return m.hits[:k], nil
}

func (m *mockVectorIndex) Count(_ context.Context) (int, error) {
	return len(m.stored), nil
}

func (m *mockVectorIndex) Close() error { return nil }

// mockLLMService implements driven.LLMService for testing.
type mockLLMService struct {
	reply       string
	completeErr error
	calls       [][]domain.Turn
}

func (m *mockLLMService) Complete(
	_ context.Context, messages []domain.Turn, _ driven.CompleteOptions,
) (string, error) {
	m.calls = append(m.calls, messages)
	if m.completeErr != nil {
		return "", m.completeErr
	}
	return m.reply, nil
}

func (m *mockLLMService) ModelName() string { return "mock-llm" }

func (m *mockLLMService) Ping(_ context.Context) error { return nil }

func (m *mockLLMService) Close() error { return nil }

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
	loadErr error
}

func newMockPromptStore() *mockPromptStore {
	return &mockPromptStore{prompts: map[string]string{
		driven.PromptChatPersona:    "You are a test assistant.",
		driven.PromptGroundedSystem: "Answer from documents.",
		driven.PromptGroundedAnswer: "Question: %s\nDocuments:\n%s",
	}}
}

func (m *mockPromptStore) Load(name string) (string, error) {
	if m.loadErr != nil {
		return "", m.loadErr
	}
	return m.prompts[name], nil
}

func (m *mockPromptStore) Reload() {}

// mockRetriever implements driving.Retriever for testing.
type mockRetriever struct {
	hits        []domain.RetrievedChunk
	retrieveErr error
	gotQuery    string
}

func (m *mockRetriever) Retrieve(
	_ context.Context, query string, _ domain.RetrieveOptions,
) ([]domain.RetrievedChunk, error) {
	m.gotQuery = query
	if m.retrieveErr != nil {
		return nil, m.retrieveErr
	}
	return m.hits, nil
}
