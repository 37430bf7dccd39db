package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jpmac110205/jarvis/internal/core/domain"
	"github.com/Jpmac110205/jarvis/internal/core/ports/driven"
)

var (
	askTopK        int
	askShowContext bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a one-shot question grounded in your documents",
	Long: `Retrieves the most relevant chunks from the index and asks the LLM
to answer using only that context. Does not touch conversation history.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", domain.DefaultTopK, "number of chunks to retrieve")
	askCmd.Flags().BoolVar(&askShowContext, "show-context", false, "print the retrieved chunks")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	svc, err := buildChatService()
	if err != nil {
		return err
	}

	// The flag wins; otherwise the config file may override the default
	topK := askTopK
	if !cmd.Flags().Changed("top-k") {
		if v := configStore.GetInt(driven.ConfigKeyTopK); v > 0 {
			topK = v
		}
	}

	answer, err := svc.Ask(cmd.Context(), args[0], domain.RetrieveOptions{TopK: topK})
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(answer.Answer)

	if askShowContext && len(answer.Context) > 0 {
		cmd.Println()
		cmd.Println("Context:")
		for i, hit := range answer.Context {
			source := hit.Chunk.Source()
			if source == "" {
				source = "unknown"
			}
			cmd.Printf("  [%d] %s (distance %.3f)\n", i+1, source, hit.Distance)
		}
	}
	return nil
}
