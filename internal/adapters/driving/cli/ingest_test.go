package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jpmac110205/jarvis/internal/core/domain"
	"github.com/Jpmac110205/jarvis/internal/core/ports/driving"
)

func TestIngestCommandFlags(t *testing.T) {
	globFlag := ingestCmd.Flags().Lookup("glob")
	require.NotNil(t, globFlag)
	assert.Equal(t, "", globFlag.DefValue)

	sizeFlag := ingestCmd.Flags().Lookup("chunk-size")
	require.NotNil(t, sizeFlag)
	assert.Equal(t, "0", sizeFlag.DefValue)

	overlapFlag := ingestCmd.Flags().Lookup("overlap")
	require.NotNil(t, overlapFlag)
	assert.Equal(t, "0", overlapFlag.DefValue)
}

func TestIngestCommandExecution(t *testing.T) {
	cleanup := setupTestServices(t.TempDir())
	defer cleanup()

	output, err := executeCommand("ingest", "notes")
	require.NoError(t, err)

	assert.Contains(t, output, "Ingested 2 documents (5 chunks) from notes")
	assert.Contains(t, output, "Index now holds 5 entries")

	stub := ingestor.(*stubIngestor)
	assert.Equal(t, "notes", stub.gotSettings.DocsDir)
	assert.Equal(t, "*.txt", stub.gotSettings.Glob)
	assert.Equal(t, domain.DefaultChunkSize, stub.gotSettings.ChunkSize)
}

func TestIngestCommandDefaultsDir(t *testing.T) {
	cleanup := setupTestServices(t.TempDir())
	defer cleanup()

	_, err := executeCommand("ingest")
	require.NoError(t, err)

	stub := ingestor.(*stubIngestor)
	assert.Equal(t, domain.DefaultDocsDir, stub.gotSettings.DocsDir)
}

func TestIngestCommandFlagOverrides(t *testing.T) {
	cleanup := setupTestServices(t.TempDir())
	defer cleanup()

	defer func() {
		ingestGlob = ""
		ingestChunkSize = 0
		ingestOverlap = 0
	}()

	_, err := executeCommand("ingest", "notes",
		"--glob", "*.md", "--chunk-size", "500", "--overlap", "100")
	require.NoError(t, err)

	stub := ingestor.(*stubIngestor)
	assert.Equal(t, "*.md", stub.gotSettings.Glob)
	assert.Equal(t, 500, stub.gotSettings.ChunkSize)
	assert.Equal(t, 100, stub.gotSettings.ChunkOverlap)
}

func TestIngestCommandFailure(t *testing.T) {
	cleanup := setupTestServices(t.TempDir())
	defer cleanup()

	ingestor = &stubIngestor{ingestErr: errors.New("no documents found")}

	_, err := executeCommand("ingest", "empty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ingest failed")
	assert.Contains(t, err.Error(), "no documents found")
}

var _ driving.Ingestor = (*stubIngestor)(nil)
