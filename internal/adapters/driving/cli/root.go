// Package cli implements the jarvis command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Jpmac110205/jarvis/internal/adapters/driven/ai"
	configfile "github.com/Jpmac110205/jarvis/internal/adapters/driven/config/file"
	sqliteindex "github.com/Jpmac110205/jarvis/internal/adapters/driven/index/sqlite"
	"github.com/Jpmac110205/jarvis/internal/core/domain"
	"github.com/Jpmac110205/jarvis/internal/core/ports/driven"
	"github.com/Jpmac110205/jarvis/internal/core/ports/driving"
	"github.com/Jpmac110205/jarvis/internal/core/services"
	"github.com/Jpmac110205/jarvis/internal/logger"
)

// version is set at build time via -ldflags.
var version = "0.1.0"

// verbose enables debug logging across all commands.
var verbose bool

// Service singletons shared across commands. Tests may replace them.
var (
	configStore driven.ConfigStore
	promptStore driven.PromptStore
	ingestor    driving.Ingestor
	chatService driving.ChatService
)

// vectorIndex is kept for closing after command execution.
var vectorIndex driven.VectorIndex

var rootCmd = &cobra.Command{
	Use:   "jarvis",
	Short: "Personal AI assistant grounded in your own documents",
	Long: `Jarvis is a personal assistant that answers questions using your own
documents. Ingest a directory of notes, then ask one-shot questions,
chat interactively, or run the HTTP server for the web frontend.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// A missing .env file is fine; explicit env vars still apply
		_ = godotenv.Load() //nolint:errcheck

		logger.SetVerbose(verbose)
		return initConfig()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if vectorIndex != nil {
			_ = vectorIndex.Close() //nolint:errcheck
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initConfig sets up the config and prompt stores. AI services and the
// index are wired per command since not every command needs them.
func initConfig() error {
	if configStore == nil {
		store, err := configfile.NewConfigStore("")
		if err != nil {
			return fmt.Errorf("open config store: %w", err)
		}
		configStore = store
	}
	if promptStore == nil {
		store, err := configfile.NewPromptStore("")
		if err != nil {
			return fmt.Errorf("open prompt store: %w", err)
		}
		promptStore = store
	}
	return nil
}

// loadEmbeddingSettings merges the config file with environment keys.
func loadEmbeddingSettings() *domain.EmbeddingSettings {
	provider := domain.AIProvider(configStore.GetString(driven.ConfigKeyEmbeddingProvider))
	if provider == "" {
		provider = domain.AIProviderOpenAI
	}

	settings := &domain.EmbeddingSettings{
		Provider: provider,
		Model:    configStore.GetString(driven.ConfigKeyEmbeddingModel),
		BaseURL:  configStore.GetString(driven.ConfigKeyEmbeddingBaseURL),
		APIKey:   os.Getenv("OPENAI_API_KEY"),
	}
	if settings.Model == "" {
		settings.Model = domain.DefaultEmbeddingModels()[provider]
	}
	return settings
}

// loadLLMSettings merges the config file with environment keys.
func loadLLMSettings() *domain.LLMSettings {
	provider := domain.AIProvider(configStore.GetString(driven.ConfigKeyLLMProvider))
	if provider == "" {
		provider = domain.AIProviderOpenAI
	}

	settings := &domain.LLMSettings{
		Provider: provider,
		Model:    configStore.GetString(driven.ConfigKeyLLMModel),
		BaseURL:  configStore.GetString(driven.ConfigKeyLLMBaseURL),
	}
	switch provider {
	case domain.AIProviderAnthropic:
		settings.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	case domain.AIProviderOpenAI:
		settings.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if settings.Model == "" {
		settings.Model = domain.DefaultLLMModels()[provider]
	}
	return settings
}

// openIndex opens the configured vector index.
func openIndex() (driven.VectorIndex, error) {
	if vectorIndex != nil {
		return vectorIndex, nil
	}

	dir := configStore.GetString(driven.ConfigKeyIndexDir)
	if dir == "" {
		dir = domain.DefaultIndexDir
	}

	idx, err := sqliteindex.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open vector index: %w", err)
	}
	vectorIndex = idx
	return idx, nil
}

// ingestSettingsFromConfig builds the ingest defaults from the config
// file; command flags override individual fields afterwards.
func ingestSettingsFromConfig() domain.IngestSettings {
	return domain.IngestSettings{
		DocsDir:      configStore.GetString(driven.ConfigKeyDocsDir),
		Glob:         configStore.GetString(driven.ConfigKeyGlob),
		ChunkSize:    configStore.GetInt(driven.ConfigKeyChunkSize),
		ChunkOverlap: configStore.GetInt(driven.ConfigKeyChunkOverlap),
	}.WithDefaults()
}

// buildChatService wires the full conversational stack.
func buildChatService() (driving.ChatService, error) {
	if chatService != nil {
		return chatService, nil
	}

	embedding, err := ai.CreateAndValidateEmbeddingService(loadEmbeddingSettings())
	if err != nil {
		return nil, err
	}

	llm, err := ai.CreateAndValidateLLMService(loadLLMSettings())
	if err != nil {
		return nil, err
	}

	index, err := openIndex()
	if err != nil {
		return nil, err
	}

	retriever := services.NewRetrievalService(embedding, index)
	composer := services.NewComposer(promptStore)
	chatService = services.NewChatOrchestrator(composer, retriever, llm)
	return chatService, nil
}

// errNotConfigured is returned when a command runs without its service.
var errNotConfigured = errors.New("service not configured")
