package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Jpmac110205/jarvis/internal/core/domain"
	"github.com/Jpmac110205/jarvis/internal/core/ports/driven"
	"github.com/Jpmac110205/jarvis/internal/core/ports/driving"
	"github.com/Jpmac110205/jarvis/internal/logger"
)

// Ensure ChatOrchestrator implements the interface.
var _ driving.ChatService = (*ChatOrchestrator)(nil)

// chatTemperature matches the conversational model configuration.
const chatTemperature = 0.7

// ChatOrchestrator owns the conversation history and coordinates the
// composer, retriever and LLM. The history mutex is held across the
// LLM call so concurrent senders are fully serialised and each
// successful exchange lands as one contiguous (user, assistant) pair.
type ChatOrchestrator struct {
	composer   *Composer
	retriever  driving.Retriever
	llmService driven.LLMService

	mu      sync.Mutex
	history []domain.Turn
}

// NewChatOrchestrator creates a chat orchestrator with empty history.
func NewChatOrchestrator(
	composer *Composer,
	retriever driving.Retriever,
	llmService driven.LLMService,
) *ChatOrchestrator {
	return &ChatOrchestrator{
		composer:   composer,
		retriever:  retriever,
		llmService: llmService,
	}
}

// Send runs one conversational exchange. On success exactly one
// (user, assistant) pair is appended to the history; on failure the
// history is untouched.
func (o *ChatOrchestrator) Send(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", fmt.Errorf("%w: empty message", domain.ErrInvalidInput)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	messages, err := o.composer.ChatMessages(o.history, message)
	if err != nil {
		return "", err
	}
	logger.Debug("Chat: %d messages, history length %d", len(messages), len(o.history))

	reply, err := o.llmService.Complete(ctx, messages, driven.CompleteOptions{
		Temperature: chatTemperature,
	})
	if err != nil {
		logger.Warn("Chat completion failed: %v", err)
		return "", fmt.Errorf("chat completion: %w", err)
	}

	pair := domain.NewTurnPair(message, reply)
	o.history = append(o.history, pair.User, pair.Assistant)
	logger.Debug("Chat: history grew to %d turns", len(o.history))

	return reply, nil
}

// Ask answers a one-shot question grounded in retrieved document
// context. Conversation history is neither read nor mutated.
func (o *ChatOrchestrator) Ask(
	ctx context.Context, question string, opts domain.RetrieveOptions,
) (*driving.GroundedAnswer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}

	hits, err := o.retriever.Retrieve(ctx, question, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug("Ask: %d context chunks", len(hits))

	messages, err := o.composer.GroundedMessages(question, hits)
	if err != nil {
		return nil, err
	}

	answer, err := o.llmService.Complete(ctx, messages, driven.CompleteOptions{
		Temperature: chatTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("grounded completion: %w", err)
	}

	return &driving.GroundedAnswer{
		Answer:  answer,
		Context: hits,
	}, nil
}

// History returns a copy of the conversation history in order.
func (o *ChatOrchestrator) History() []domain.Turn {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]domain.Turn, len(o.history))
	copy(out, o.history)
	return out
}

// Reset clears the conversation history.
func (o *ChatOrchestrator) Reset() {
	o.mu.Lock()
	o.history = nil
	o.mu.Unlock()
}
