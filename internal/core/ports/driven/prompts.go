package driven

// PromptStore provides access to LLM prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a
	// sensible default or an error, depending on whether the prompt
	// is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptChatPersona is the system prompt for conversational mode.
	// It encodes citation formatting, conflict acknowledgment and
	// external-knowledge routing rules. No format placeholders.
	PromptChatPersona = "chat_persona"

	// PromptGroundedAnswer builds the one-shot documents-grounded
	// instruction. The template expects %s (question) and %s (the
	// attributed chunk texts) placeholders.
	PromptGroundedAnswer = "grounded_answer"

	// PromptGroundedSystem is the system message paired with the
	// grounded instruction. No format placeholders.
	PromptGroundedSystem = "grounded_system"
)
