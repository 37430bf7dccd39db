package cli

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/Jpmac110205/jarvis/internal/adapters/driven/ai"
	"github.com/Jpmac110205/jarvis/internal/connectors/filesystem"
	"github.com/Jpmac110205/jarvis/internal/core/services"
	"github.com/Jpmac110205/jarvis/internal/logger"
)

// watchDebounce coalesces bursts of filesystem events into one run.
const watchDebounce = 2 * time.Second

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Re-index the documents directory whenever it changes",
	Long: `Watches the documents directory and re-runs ingestion after files are
created, modified or removed. Events are debounced so a burst of saves
triggers a single run. Stop with Ctrl+C.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	settings := ingestSettingsFromConfig()
	if len(args) > 0 {
		settings.DocsDir = args[0]
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

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(settings.DocsDir); err != nil {
		return fmt.Errorf("watch %s: %w", settings.DocsDir, err)
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", settings.DocsDir)

	var timer *time.Timer
	runs := make(chan struct{}, 1)

	for {
		select {
		case <-cmd.Context().Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("Change detected: %s", event)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				select {
				case runs <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error: %v", err)

		case <-runs:
			stats, err := ingestor.Ingest(cmd.Context(), settings)
			if err != nil {
				cmd.Printf("Re-ingest failed: %v\n", err)
				continue
			}
			cmd.Printf("Re-ingested %d documents (%d chunks), index size %d\n",
				stats.Documents, stats.Chunks, stats.IndexSize)
		}
	}
}
