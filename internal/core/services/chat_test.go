package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jpmac110205/jarvis/internal/core/domain"
)

func newTestOrchestrator(llm *mockLLMService, retriever *mockRetriever) *ChatOrchestrator {
	return NewChatOrchestrator(NewComposer(newMockPromptStore()), retriever, llm)
}

func TestSend_AppendsExactlyOneTurnPair(t *testing.T) {
	llm := &mockLLMService{reply: "Hello there."}
	orch := newTestOrchestrator(llm, &mockRetriever{})

	reply, err := orch.Send(context.Background(), "Hi")

	require.NoError(t, err)
	assert.Equal(t, "Hello there.", reply)

	history := orch.History()
	require.Len(t, history, 2)
	assert.Equal(t, domain.Turn{Role: domain.RoleUser, Content: "Hi"}, history[0])
	assert.Equal(t, domain.Turn{Role: domain.RoleAssistant, Content: "Hello there."}, history[1])
}

func TestSend_FailureLeavesHistoryUntouched(t *testing.T) {
	llm := &mockLLMService{completeErr: domain.ErrLLMService}
	orch := newTestOrchestrator(llm, &mockRetriever{})

	_, err := orch.Send(context.Background(), "Hi")

	assert.ErrorIs(t, err, domain.ErrLLMService)
	assert.Empty(t, orch.History())
}

func TestSend_EmptyMessageFails(t *testing.T) {
	llm := &mockLLMService{reply: "unused"}
	orch := newTestOrchestrator(llm, &mockRetriever{})

	_, err := orch.Send(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, llm.calls)
}

func TestSend_HistoryFlowsIntoLaterExchanges(t *testing.T) {
	llm := &mockLLMService{reply: "answer"}
	orch := newTestOrchestrator(llm, &mockRetriever{})
	ctx := context.Background()

	_, err := orch.Send(ctx, "first")
	require.NoError(t, err)
	_, err = orch.Send(ctx, "second")
	require.NoError(t, err)

	// Second call sees persona + two history turns + new user message
	require.Len(t, llm.calls, 2)
	second := llm.calls[1]
	require.Len(t, second, 4)
	assert.Equal(t, domain.RoleSystem, second[0].Role)
	assert.Equal(t, "first", second[1].Content)
	assert.Equal(t, "answer", second[2].Content)
	assert.Equal(t, "second", second[3].Content)
}

func TestSend_ConcurrentSendersAlternateStrictly(t *testing.T) {
	llm := &mockLLMService{reply: "ok"}
	orch := newTestOrchestrator(llm, &mockRetriever{})

	const senders = 16
	var wg sync.WaitGroup
	wg.Add(senders)
	for i := 0; i < senders; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := orch.Send(context.Background(), fmt.Sprintf("message %d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	history := orch.History()
	require.Len(t, history, senders*2)
	for i, turn := range history {
		if i%2 == 0 {
			assert.Equal(t, domain.RoleUser, turn.Role, "turn %d", i)
		} else {
			assert.Equal(t, domain.RoleAssistant, turn.Role, "turn %d", i)
		}
	}
}

func TestAsk_DoesNotTouchHistory(t *testing.T) {
	llm := &mockLLMService{reply: "grounded answer"}
	retriever := &mockRetriever{hits: []domain.RetrievedChunk{
		retrievedChunk("a", 0.2),
	}}
	orch := newTestOrchestrator(llm, retriever)

	answer, err := orch.Ask(context.Background(), "What is a?", domain.RetrieveOptions{})

	require.NoError(t, err)
	assert.Equal(t, "grounded answer", answer.Answer)
	require.Len(t, answer.Context, 1)
	assert.Equal(t, "a", answer.Context[0].Chunk.ID)
	assert.Equal(t, "What is a?", retriever.gotQuery)
	assert.Empty(t, orch.History())
}

func TestAsk_RetrieverFailureSurfaces(t *testing.T) {
	retriever := &mockRetriever{retrieveErr: domain.ErrEmbeddingService}
	orch := newTestOrchestrator(&mockLLMService{}, retriever)

	_, err := orch.Ask(context.Background(), "question", domain.RetrieveOptions{})

	assert.ErrorIs(t, err, domain.ErrEmbeddingService)
}

func TestAsk_EmptyQuestionFails(t *testing.T) {
	orch := newTestOrchestrator(&mockLLMService{}, &mockRetriever{})

	_, err := orch.Ask(context.Background(), "", domain.RetrieveOptions{})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistory_ReturnsCopy(t *testing.T) {
	llm := &mockLLMService{reply: "reply"}
	orch := newTestOrchestrator(llm, &mockRetriever{})
	_, err := orch.Send(context.Background(), "hi")
	require.NoError(t, err)

	history := orch.History()
	history[0].Content = "mutated"

	assert.Equal(t, "hi", orch.History()[0].Content)
}

func TestReset_ClearsHistory(t *testing.T) {
	llm := &mockLLMService{reply: "reply"}
	orch := newTestOrchestrator(llm, &mockRetriever{})
	_, err := orch.Send(context.Background(), "hi")
	require.NoError(t, err)

	orch.Reset()

	assert.Empty(t, orch.History())
}
