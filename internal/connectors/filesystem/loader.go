// Package filesystem loads text documents from a local directory.
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Jpmac110205/jarvis/internal/core/domain"
	"github.com/Jpmac110205/jarvis/internal/logger"
	"github.com/Jpmac110205/jarvis/internal/normalisers/markdown"
)

// Loader reads raw text documents from a directory, one Document per
// matching file. It is the only filesystem touchpoint of the ingestion
// pipeline.
type Loader struct {
	glob string
}

// NewLoader creates a loader matching files against the given glob
// pattern (default "*.txt").
func NewLoader(glob string) *Loader {
	if glob == "" {
		glob = domain.DefaultGlob
	}
	return &Loader{glob: glob}
}

// LoadDirectory reads every matching file under dir.
//
// A missing directory fails with domain.ErrNotFound; a directory with
// no matching files fails with domain.ErrEmptyCorpus. Both abort the
// ingestion run before anything is written. Files are returned in
// lexical path order so runs are reproducible.
func (l *Loader) LoadDirectory(dir string) ([]domain.Document, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: documents path %q does not exist", domain.ErrNotFound, dir)
		}
		return nil, fmt.Errorf("stat documents path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %q is not a directory", domain.ErrInvalidInput, dir)
	}

	matches, err := filepath.Glob(filepath.Join(dir, l.glob))
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", l.glob, err)
	}
	sort.Strings(matches)

	docs := make([]domain.Document, 0, len(matches))
	for _, path := range matches {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		text := string(content)
		metadata := map[string]any{
			"source": path,
		}
		if markdown.IsMarkdown(path) {
			metadata["title"] = markdown.Title(text, path)
			metadata["format"] = "markdown"
			text = markdown.Strip(text)
		}

		docs = append(docs, domain.Document{
			ID:       documentID(path),
			Content:  text,
			Metadata: metadata,
		})
		logger.Debug("Loaded %s (%d characters)", path, len(text))
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no files matching %q in %q", domain.ErrEmptyCorpus, l.glob, dir)
	}

	logger.Info("Loaded %d documents from %s", len(docs), dir)
	return docs, nil
}

// documentID derives a stable document identifier from the source path.
func documentID(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}
