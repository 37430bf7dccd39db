package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jpmac110205/jarvis/internal/core/domain"
)

func mustNew(t *testing.T, opts ...Option) *Chunker {
	t.Helper()
	c, err := New(opts...)
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c := mustNew(t)
		assert.Equal(t, DefaultChunkSize, c.ChunkSize())
		assert.Equal(t, DefaultOverlap, c.Overlap())
	})

	t.Run("custom chunk size", func(t *testing.T) {
		c := mustNew(t, WithChunkSize(500))
		assert.Equal(t, 500, c.ChunkSize())
	})

	t.Run("custom overlap", func(t *testing.T) {
		c := mustNew(t, WithOverlap(100))
		assert.Equal(t, 100, c.Overlap())
	})

	t.Run("overlap exceeding chunk size fails", func(t *testing.T) {
		_, err := New(WithChunkSize(100), WithOverlap(150))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("overlap equal to chunk size fails", func(t *testing.T) {
		_, err := New(WithChunkSize(100), WithOverlap(100))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("invalid values ignored", func(t *testing.T) {
		c := mustNew(t, WithChunkSize(0), WithOverlap(-1))
		assert.Equal(t, DefaultChunkSize, c.ChunkSize())
		assert.Equal(t, DefaultOverlap, c.Overlap())
	})
}

func TestSplit_EmptyDocument(t *testing.T) {
	c := mustNew(t)
	chunks := c.Split(domain.Document{ID: "doc", Content: ""})
	assert.Empty(t, chunks)
}

func TestSplit_SmallContent(t *testing.T) {
	c := mustNew(t, WithChunkSize(100), WithOverlap(20))
	doc := domain.Document{ID: "doc", Content: "short text"}

	chunks := c.Split(doc)

	require.Len(t, chunks, 1)
	assert.Equal(t, "short text", chunks[0].Content)
	assert.Equal(t, 0, chunks[0].Position)
	assert.Equal(t, "doc", chunks[0].DocumentID)
}

func TestSplit_ChunkCountFormula(t *testing.T) {
	// chunk count must equal ceil((L - overlap) / (chunkSize - overlap))
	tests := []struct {
		name      string
		length    int
		chunkSize int
		overlap   int
	}{
		{"exact multiple no overlap", 1600, 800, 0},
		{"remainder no overlap", 1601, 800, 0},
		{"single undersized", 37, 800, 0},
		{"with overlap", 1000, 300, 50},
		{"overlap remainder", 999, 250, 100},
		{"overlap exact tail", 400, 250, 100},
		{"tiny chunks", 20, 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustNew(t, WithChunkSize(tt.chunkSize), WithOverlap(tt.overlap))
			doc := domain.Document{ID: "doc", Content: strings.Repeat("a", tt.length)}

			chunks := c.Split(doc)

			step := tt.chunkSize - tt.overlap
			want := (tt.length - tt.overlap + step - 1) / step
			assert.Len(t, chunks, want)
		})
	}
}

func TestSplit_NoRedundantTailChunk(t *testing.T) {
	// Once a chunk reaches end-of-document, splitting stops; an
	// overlapping window must not re-emit text the previous chunk
	// already covered.
	c := mustNew(t, WithChunkSize(250), WithOverlap(100))
	content := strings.Repeat("a", 999)

	chunks := c.Split(domain.Document{ID: "doc", Content: content})

	require.Len(t, chunks, 6)
	last := chunks[len(chunks)-1].Content
	prev := chunks[len(chunks)-2].Content
	assert.False(t, strings.HasSuffix(prev, last) && len(last) <= c.Overlap(),
		"tail chunk must contain text beyond the previous chunk's overlap")
	assert.Equal(t, content[len(content)-len(last):], last)
}

func TestSplit_RoundTrip(t *testing.T) {
	// Discarding each chunk's leading overlap region and concatenating
	// must reconstruct the source text exactly.
	tests := []struct {
		name      string
		content   string
		chunkSize int
		overlap   int
	}{
		{"no overlap", strings.Repeat("abcdefghij", 57), 80, 0},
		{"with overlap", strings.Repeat("0123456789", 40), 64, 16},
		{"trailing short chunk", "The sky is blue. Grass is green.", 20, 0},
		{"overlap with remainder", strings.Repeat("xy", 101), 30, 7},
		{"overlap ending on boundary", strings.Repeat("k", 400), 250, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustNew(t, WithChunkSize(tt.chunkSize), WithOverlap(tt.overlap))
			chunks := c.Split(domain.Document{ID: "doc", Content: tt.content})

			var sb strings.Builder
			for i, chunk := range chunks {
				if i == 0 {
					sb.WriteString(chunk.Content)
					continue
				}
				sb.WriteString(chunk.Content[min(tt.overlap, len(chunk.Content)):])
			}
			assert.Equal(t, tt.content, sb.String())
		})
	}
}

func TestSplit_ChunksWithinSizeLimit(t *testing.T) {
	c := mustNew(t, WithChunkSize(20), WithOverlap(0))
	doc := domain.Document{ID: "doc", Content: "The sky is blue. Grass is green."}

	chunks := c.Split(doc)

	require.Len(t, chunks, 2)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk.Content), 20)
	}
	assert.Equal(t, "The sky is blue. Gra", chunks[0].Content)
	assert.Equal(t, "ss is green.", chunks[1].Content)
}

func TestSplit_PositionsAreSequential(t *testing.T) {
	c := mustNew(t, WithChunkSize(10), WithOverlap(2))
	chunks := c.Split(domain.Document{ID: "doc", Content: strings.Repeat("z", 100)})

	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Position)
	}
}

func TestSplit_MetadataInherited(t *testing.T) {
	c := mustNew(t, WithChunkSize(10), WithOverlap(0))
	doc := domain.Document{
		ID:       "doc",
		Content:  strings.Repeat("m", 25),
		Metadata: map[string]any{"source": "docs/notes.txt"},
	}

	chunks := c.Split(doc)

	require.Len(t, chunks, 3)
	for _, chunk := range chunks {
		assert.Equal(t, "docs/notes.txt", chunk.Source())
	}

	// Chunk metadata must not alias the document's map
	chunks[0].Metadata["source"] = "mutated"
	assert.Equal(t, "docs/notes.txt", doc.Metadata["source"])
}

func TestSplitAll_PreservesDocumentOrder(t *testing.T) {
	c := mustNew(t, WithChunkSize(10), WithOverlap(0))
	docs := []domain.Document{
		{ID: "first", Content: strings.Repeat("a", 15)},
		{ID: "second", Content: strings.Repeat("b", 5)},
	}

	chunks := c.SplitAll(docs)

	require.Len(t, chunks, 3)
	assert.Equal(t, "first", chunks[0].DocumentID)
	assert.Equal(t, "first", chunks[1].DocumentID)
	assert.Equal(t, "second", chunks[2].DocumentID)
}

func TestSplit_UniqueIDs(t *testing.T) {
	c := mustNew(t, WithChunkSize(5), WithOverlap(0))
	chunks := c.Split(domain.Document{ID: "doc", Content: strings.Repeat("q", 50)})

	seen := make(map[string]bool)
	for _, chunk := range chunks {
		assert.False(t, seen[chunk.ID], "duplicate chunk ID %s", chunk.ID)
		seen[chunk.ID] = true
	}
}
