package driving

import (
	"context"

	"github.com/Jpmac110205/jarvis/internal/core/domain"
)

// ChatService orchestrates conversational and grounded answering.
//
// Conversation history is owned by the implementation and guarded
// against concurrent callers. A successful Send appends exactly one
// (user, assistant) pair; a failed Send appends nothing.
type ChatService interface {
	// Send runs one conversational exchange: persona + history + the
	// user message go to the LLM, and on success the turn pair is
	// committed atomically. On failure history is untouched and the
	// error wraps domain.ErrLLMService.
	Send(ctx context.Context, message string) (string, error)

	// Ask answers a one-shot question grounded in retrieved document
	// context. It does not read or mutate conversation history.
	Ask(ctx context.Context, question string, opts domain.RetrieveOptions) (*GroundedAnswer, error)

	// History returns a copy of the conversation history in
	// chronological order.
	History() []domain.Turn

	// Reset clears the conversation history.
	Reset()
}

// GroundedAnswer is the result of a documents-grounded query.
type GroundedAnswer struct {
	// Answer is the generated reply, constrained to the retrieved
	// context ("I don't know" when the context is insufficient).
	Answer string

	// Context is the retrieved chunk set the answer was grounded on,
	// in retrieval order.
	Context []domain.RetrievedChunk
}
