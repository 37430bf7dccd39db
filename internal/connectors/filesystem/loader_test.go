package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jpmac110205/jarvis/internal/core/domain"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

func TestLoadDirectory_MissingPath(t *testing.T) {
	l := NewLoader("*.txt")

	_, err := l.LoadDirectory(filepath.Join(t.TempDir(), "nope"))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLoadDirectory_PathIsFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "plain.txt", "content")
	l := NewLoader("*.txt")

	_, err := l.LoadDirectory(filepath.Join(dir, "plain.txt"))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoadDirectory_EmptyCorpus(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "image.png", "not text")
	l := NewLoader("*.txt")

	_, err := l.LoadDirectory(dir)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyCorpus)
}

func TestLoadDirectory_LoadsMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "second file")
	writeFile(t, dir, "a.txt", "first file")
	writeFile(t, dir, "skip.md", "markdown is not matched")
	l := NewLoader("*.txt")

	docs, err := l.LoadDirectory(dir)

	require.NoError(t, err)
	require.Len(t, docs, 2)

	// Lexical path order
	assert.Equal(t, "first file", docs[0].Content)
	assert.Equal(t, "second file", docs[1].Content)

	// Source metadata carries the path, ID is derived from it
	src, ok := docs[0].Metadata["source"].(string)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "a.txt"), src)
	assert.NotEmpty(t, docs[0].ID)
	assert.NotEqual(t, docs[0].ID, docs[1].ID)
}

func TestLoadDirectory_EmptyFileStillLoads(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "empty.txt", "")
	l := NewLoader("*.txt")

	docs, err := l.LoadDirectory(dir)

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Empty(t, docs[0].Content)
}

func TestLoadDirectory_CustomGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.md", "markdown notes")
	l := NewLoader("*.md")

	docs, err := l.LoadDirectory(dir)

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "markdown notes", docs[0].Content)
}

func TestLoadDirectory_StripsMarkdown(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "plan.md", "# Project Plan\n\nShip the **assistant** by [Q4](https://example.com).")
	l := NewLoader("*.md")

	docs, err := l.LoadDirectory(dir)

	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Project Plan\n\nShip the assistant by Q4.", docs[0].Content)
	assert.Equal(t, "Project Plan", docs[0].Metadata["title"])
	assert.Equal(t, "markdown", docs[0].Metadata["format"])
}

func TestNewLoader_DefaultGlob(t *testing.T) {
	l := NewLoader("")
	assert.Equal(t, domain.DefaultGlob, l.glob)
}
