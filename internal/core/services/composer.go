package services

import (
	"fmt"
	"strings"

	"github.com/Jpmac110205/jarvis/internal/core/domain"
	"github.com/Jpmac110205/jarvis/internal/core/ports/driven"
)

// Composer assembles the message sequences sent to the LLM.
// It holds no conversation state; history is passed in by the caller.
type Composer struct {
	promptStore driven.PromptStore
}

// NewComposer creates a prompt composer.
func NewComposer(promptStore driven.PromptStore) *Composer {
	return &Composer{promptStore: promptStore}
}

// ChatMessages builds the conversational sequence: the persona system
// prompt, the full history in order, then the new user message.
func (c *Composer) ChatMessages(history []domain.Turn, userMessage string) ([]domain.Turn, error) {
	persona, err := c.promptStore.Load(driven.PromptChatPersona)
	if err != nil {
		return nil, fmt.Errorf("load persona prompt: %w", err)
	}

	messages := make([]domain.Turn, 0, len(history)+2)
	messages = append(messages, domain.Turn{Role: domain.RoleSystem, Content: persona})
	messages = append(messages, history...)
	messages = append(messages, domain.Turn{Role: domain.RoleUser, Content: userMessage})
	return messages, nil
}

// GroundedMessages builds the one-shot grounded sequence: a neutral
// system message plus a single user message carrying the question and
// the attributed document excerpts.
func (c *Composer) GroundedMessages(
	question string, chunks []domain.RetrievedChunk,
) ([]domain.Turn, error) {
	system, err := c.promptStore.Load(driven.PromptGroundedSystem)
	if err != nil {
		return nil, fmt.Errorf("load grounded system prompt: %w", err)
	}
	template, err := c.promptStore.Load(driven.PromptGroundedAnswer)
	if err != nil {
		return nil, fmt.Errorf("load grounded answer prompt: %w", err)
	}

	instruction := fmt.Sprintf(template, question, FormatChunks(chunks))
	return []domain.Turn{
		{Role: domain.RoleSystem, Content: system},
		{Role: domain.RoleUser, Content: instruction},
	}, nil
}

// FormatChunks renders retrieved chunks as numbered, attributed
// excerpts. Chunk order is preserved so the most relevant excerpt
// comes first.
func FormatChunks(chunks []domain.RetrievedChunk) string {
	if len(chunks) == 0 {
		return "(no documents found)"
	}

	var b strings.Builder
	for i, hit := range chunks {
		if i > 0 {
			b.WriteString("\n\n")
		}
		source := hit.Chunk.Source()
		if source == "" {
			source = "unknown source"
		}
		fmt.Fprintf(&b, "Document %d (%s):\n%s", i+1, source, hit.Chunk.Content)
	}
	return b.String()
}
