package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Jpmac110205/jarvis/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk,
// falling back to embedded defaults when a file is missing.
//
// Initialisation is lazy: the prompt directory and default files are
// only created on the first Load() call, never in the constructor.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts. They seed the
// prompt files on first use and back any file that cannot be read.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptChatPersona: `You are Jarvis, a personal AI assistant with access to the user's personal documents (course notes, papers, project docs), the full conversation history, their task list, and their calendar.
Always cite sources when drawing on personal documents. Format citations as "According to [document name]..." or "From your [course notes/paper]...". When synthesising multiple sources, cite each one explicitly. Never fabricate details about personal documents.
When retrieval quality is low, say "I don't have enough relevant context for this." If sources conflict, acknowledge it: "Your notes suggest X, but the paper mentions Y." If you don't have the information, offer to search the web or wait for document uploads.
Reference previous conversation turns naturally when relevant, for example "As we discussed earlier..." to maintain continuity.
Detect when a query needs current information (news, weather, current events) and say that it calls for a web search rather than your knowledge base. For hybrid queries, combine both sources with clear attribution.
For task management, always confirm actions: "I've added 'finish OS assignment' to your tasks." Present tasks clearly and acknowledge completions. For calendar queries, present information chronologically and concisely.
You have a professional but warm personality with occasional light humour. Personality never overrides accuracy: drop it when handling important or uncertain information.
Be helpful, accurate, and efficient. You are a persistent extension of the user's memory and productivity system.`,

	driven.PromptGroundedAnswer: `Based on the following documents, please answer this question: %s

Documents:
%s

Please answer using only the information from the documents above. When you use a document, name it. If the documents do not contain enough information to answer, say "I don't know" rather than guessing.`,

	driven.PromptGroundedSystem: `You are a helpful AI assistant that provides accurate information based on provided documents.`,
}

// NewPromptStore creates a file-based prompt store.
// If promptDir is empty, defaults to ~/.jarvis/prompts/.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".jarvis", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// The first call initialises the prompt directory and writes default
// files; afterwards values come from the cache, then from disk, then
// from the embedded defaults.
func (s *PromptStore) Load(name string) (string, error) {
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file without holding the lock during I/O
	prompt, err := s.loadFromFile(name)
	if err != nil {
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Double-check so a concurrent load is not overwritten
	s.mu.Lock()
	if cached, ok := s.cache[name]; ok {
		prompt = cached
	} else {
		s.cache[name] = prompt
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# Jarvis Prompts

This directory contains customisable prompts used by Jarvis.

## Files

- ` + "`chat_persona.txt`" + ` - System prompt for conversational chat
- ` + "`grounded_answer.txt`" + ` - Template for one-shot grounded answers
- ` + "`grounded_system.txt`" + ` - System message paired with grounded answers

## Customisation

Edit any file to change behaviour. Changes take effect on the next
command or after restarting the server.

## Format Placeholders

` + "`grounded_answer.txt`" + ` uses Go fmt placeholders:
- first ` + "`%s`" + ` - the question
- second ` + "`%s`" + ` - the retrieved document excerpts

Ensure customised prompts keep the placeholders in order.
`
	return os.WriteFile(path, []byte(content), 0600)
}
