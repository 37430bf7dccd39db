// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/Jpmac110205/jarvis/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/Jpmac110205/jarvis/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/Jpmac110205/jarvis/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/Jpmac110205/jarvis/internal/adapters/driven/llm/ollama"
	openaillm "github.com/Jpmac110205/jarvis/internal/adapters/driven/llm/openai"
	"github.com/Jpmac110205/jarvis/internal/core/domain"
	"github.com/Jpmac110205/jarvis/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates an embedding service adapter for the
// configured provider. Returns nil when the provider is not configured.
func CreateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAnthropic:
		return nil, fmt.Errorf("anthropic does not provide an embeddings API")

	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", settings.Provider)
	}
}

// CreateLLMService creates an LLM service adapter for the configured
// provider. Returns nil when the provider is not configured.
func CreateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	if settings == nil || !settings.IsConfigured() {
		return nil, nil
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		}), nil

	case domain.AIProviderOpenAI:
		return openaillm.NewLLMService(openaillm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	case domain.AIProviderAnthropic:
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
		})

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s", settings.Provider)
	}
}

// CreateAndValidateEmbeddingService creates an embedding service and
// validates connectivity. Returns the service if successful, or an
// error with guidance.
func CreateAndValidateEmbeddingService(settings *domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'jarvis settings' to fix", domain.ErrEmbeddingService, err)
	}
	if svc == nil {
		return nil, fmt.Errorf("%w: embedding provider not configured. Run 'jarvis settings' to fix",
			domain.ErrEmbeddingService)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'jarvis settings' to fix",
			domain.ErrEmbeddingService, err)
	}

	return svc, nil
}

// CreateAndValidateLLMService creates an LLM service and validates
// connectivity. Returns the service if successful, or an error with
// guidance.
func CreateAndValidateLLMService(settings *domain.LLMSettings) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w. Run 'jarvis settings' to fix", domain.ErrLLMService, err)
	}
	if svc == nil {
		return nil, fmt.Errorf("%w: LLM provider not configured. Run 'jarvis settings' to fix",
			domain.ErrLLMService)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w). Run 'jarvis settings' to fix",
			domain.ErrLLMService, err)
	}

	return svc, nil
}
