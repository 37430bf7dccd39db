package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Jpmac110205/jarvis/internal/core/domain"
	"github.com/Jpmac110205/jarvis/internal/core/ports/driven"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the ingestion pipeline, AI providers, and server
options. Settings persist in ~/.jarvis/config.toml; API keys stay in
the environment (OPENAI_API_KEY, ANTHROPIC_API_KEY).`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsEmbeddingCmd = &cobra.Command{
	Use:   "embedding",
	Short: "Configure embedding provider",
	RunE:  runSettingsEmbedding,
}

var settingsLLMCmd = &cobra.Command{
	Use:   "llm",
	Short: "Configure LLM provider",
	RunE:  runSettingsLLM,
}

var settingsIngestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Configure ingestion defaults",
	RunE:  runSettingsIngest,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsEmbeddingCmd)
	settingsCmd.AddCommand(settingsLLMCmd)
	settingsCmd.AddCommand(settingsIngestCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errNotConfigured
	}

	embedding := loadEmbeddingSettings()
	llm := loadLLMSettings()
	ingest := ingestSettingsFromConfig()

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Ingest]")
	cmd.Printf("  Docs dir: %s\n", ingest.DocsDir)
	cmd.Printf("  Glob: %s\n", ingest.Glob)
	cmd.Printf("  Chunk size: %d\n", ingest.ChunkSize)
	cmd.Printf("  Chunk overlap: %d\n", ingest.ChunkOverlap)
	cmd.Println()

	cmd.Println("[Embedding]")
	cmd.Printf("  Provider: %s\n", embedding.Provider.Description())
	cmd.Printf("  Model: %s\n", embedding.Model)
	if embedding.Provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", embedding.BaseURL)
	}
	printProviderStatus(cmd, embedding.Provider, embedding.APIKey, embedding.IsConfigured())
	cmd.Println()

	cmd.Println("[LLM]")
	cmd.Printf("  Provider: %s\n", llm.Provider.Description())
	cmd.Printf("  Model: %s\n", llm.Model)
	if llm.Provider.IsLocal() {
		cmd.Printf("  Base URL: %s\n", llm.BaseURL)
	}
	printProviderStatus(cmd, llm.Provider, llm.APIKey, llm.IsConfigured())
	cmd.Println()

	cmd.Printf("Config file: %s\n", configStore.Path())
	return nil
}

func printProviderStatus(cmd *cobra.Command, provider domain.AIProvider, apiKey string, configured bool) {
	if provider.RequiresAPIKey() {
		if apiKey != "" {
			cmd.Printf("  API Key: %s\n", maskAPIKey(apiKey))
		} else {
			cmd.Printf("  API Key: (not set)\n")
		}
	}
	status := "configured"
	if !configured {
		status = "not configured"
	}
	cmd.Printf("  Status: %s\n", status)
}

func runSettingsEmbedding(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errNotConfigured
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Select Embedding Provider")
	providers := domain.AllEmbeddingProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	provider := providers[idx-1]

	defaultModel := domain.DefaultEmbeddingModels()[provider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	if err := configStore.Set(driven.ConfigKeyEmbeddingProvider, provider.String()); err != nil {
		return fmt.Errorf("save embedding provider: %w", err)
	}
	if err := configStore.Set(driven.ConfigKeyEmbeddingModel, model); err != nil {
		return fmt.Errorf("save embedding model: %w", err)
	}

	if provider.IsLocal() {
		cmd.Print("Enter base URL [http://localhost:11434]: ")
		baseURL := readLine(reader)
		if baseURL != "" {
			if err := configStore.Set(driven.ConfigKeyEmbeddingBaseURL, baseURL); err != nil {
				return fmt.Errorf("save base URL: %w", err)
			}
		}
	}

	if provider.RequiresAPIKey() && os.Getenv("OPENAI_API_KEY") == "" {
		cmd.Print("Enter API key (stored in .env): ")
		apiKey := readPassword()
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
		if err := appendEnvKey("OPENAI_API_KEY", apiKey); err != nil {
			return err
		}
	}

	cmd.Printf("Embedding provider configured: %s (%s)\n", provider.Description(), model)
	return nil
}

func runSettingsLLM(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errNotConfigured
	}

	reader := bufio.NewReader(os.Stdin)

	cmd.Println("Select LLM Provider")
	providers := domain.AllLLMProviders()
	for i, p := range providers {
		cmd.Printf("  %d. %s\n", i+1, p.Description())
	}
	cmd.Print("\nEnter choice [1]: ")
	idx := parseChoice(readLine(reader), len(providers), 1)
	provider := providers[idx-1]

	defaultModel := domain.DefaultLLMModels()[provider]
	cmd.Printf("Enter model name [%s]: ", defaultModel)
	model := readLine(reader)
	if model == "" {
		model = defaultModel
	}

	if err := configStore.Set(driven.ConfigKeyLLMProvider, provider.String()); err != nil {
		return fmt.Errorf("save LLM provider: %w", err)
	}
	if err := configStore.Set(driven.ConfigKeyLLMModel, model); err != nil {
		return fmt.Errorf("save LLM model: %w", err)
	}

	if provider.IsLocal() {
		cmd.Print("Enter base URL [http://localhost:11434]: ")
		baseURL := readLine(reader)
		if baseURL != "" {
			if err := configStore.Set(driven.ConfigKeyLLMBaseURL, baseURL); err != nil {
				return fmt.Errorf("save base URL: %w", err)
			}
		}
	}

	envKey := "OPENAI_API_KEY"
	if provider == domain.AIProviderAnthropic {
		envKey = "ANTHROPIC_API_KEY"
	}
	if provider.RequiresAPIKey() && os.Getenv(envKey) == "" {
		cmd.Print("Enter API key (stored in .env): ")
		apiKey := readPassword()
		cmd.Println()
		if apiKey == "" {
			return errors.New("API key is required for this provider")
		}
		if err := appendEnvKey(envKey, apiKey); err != nil {
			return err
		}
	}

	cmd.Printf("LLM provider configured: %s (%s)\n", provider.Description(), model)
	return nil
}

func runSettingsIngest(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errNotConfigured
	}

	reader := bufio.NewReader(os.Stdin)
	current := ingestSettingsFromConfig()

	cmd.Printf("Docs dir [%s]: ", current.DocsDir)
	if v := readLine(reader); v != "" {
		if err := configStore.Set(driven.ConfigKeyDocsDir, v); err != nil {
			return err
		}
	}

	cmd.Printf("Glob [%s]: ", current.Glob)
	if v := readLine(reader); v != "" {
		if err := configStore.Set(driven.ConfigKeyGlob, v); err != nil {
			return err
		}
	}

	cmd.Printf("Chunk size [%d]: ", current.ChunkSize)
	if v := readLine(reader); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 {
			return fmt.Errorf("invalid chunk size %q", v)
		}
		if err := configStore.Set(driven.ConfigKeyChunkSize, size); err != nil {
			return err
		}
	}

	cmd.Printf("Chunk overlap [%d]: ", current.ChunkOverlap)
	if v := readLine(reader); v != "" {
		overlap, err := strconv.Atoi(v)
		if err != nil || overlap < 0 {
			return fmt.Errorf("invalid chunk overlap %q", v)
		}
		if err := configStore.Set(driven.ConfigKeyChunkOverlap, overlap); err != nil {
			return err
		}
	}

	cmd.Println("Ingestion settings saved.")
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Read without echo when attached to a terminal
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// appendEnvKey appends KEY=value to the local .env file and sets it in
// the current process.
func appendEnvKey(key, value string) error {
	f, err := os.OpenFile(".env", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("open .env: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s=%s\n", key, value); err != nil {
		return fmt.Errorf("write .env: %w", err)
	}
	return os.Setenv(key, value)
}
