package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Jpmac110205/jarvis/internal/adapters/driven/ai"
	"github.com/Jpmac110205/jarvis/internal/connectors/filesystem"
	"github.com/Jpmac110205/jarvis/internal/core/services"
)

var (
	ingestGlob      string
	ingestChunkSize int
	ingestOverlap   int
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [dir]",
	Short: "Index a directory of documents",
	Long: `Loads every matching file under the directory, splits it into
fixed-size chunks, embeds the chunks and stores them in the vector
index. Re-running ingest appends; it does not deduplicate.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestGlob, "glob", "", "file pattern to match (default \"*.txt\")")
	ingestCmd.Flags().IntVar(&ingestChunkSize, "chunk-size", 0, "chunk length in characters (default 800)")
	ingestCmd.Flags().IntVar(&ingestOverlap, "overlap", 0, "characters shared between neighbouring chunks")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	settings := ingestSettingsFromConfig()
	if len(args) > 0 {
		settings.DocsDir = args[0]
	}
	if ingestGlob != "" {
		settings.Glob = ingestGlob
	}
	if ingestChunkSize > 0 {
		settings.ChunkSize = ingestChunkSize
	}
	if cmd.Flags().Changed("overlap") {
		settings.ChunkOverlap = ingestOverlap
	}

	if ingestor == nil {
		embedding, err := ai.CreateAndValidateEmbeddingService(loadEmbeddingSettings())
		if err != nil {
			return err
		}

		index, err := openIndex()
		if err != nil {
			return err
		}

		loader := filesystem.NewLoader(settings.Glob)
		ingestor = services.NewIngestService(loader, embedding, index)
	}

	stats, err := ingestor.Ingest(cmd.Context(), settings)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %d documents (%d chunks) from %s\n",
		stats.Documents, stats.Chunks, settings.DocsDir)
	cmd.Printf("Index now holds %d entries\n", stats.IndexSize)
	return nil
}
