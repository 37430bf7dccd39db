package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMarkdown(t *testing.T) {
	assert.True(t, IsMarkdown("notes/todo.md"))
	assert.True(t, IsMarkdown("README.MD"))
	assert.True(t, IsMarkdown("guide.markdown"))
	assert.False(t, IsMarkdown("notes/todo.txt"))
	assert.False(t, IsMarkdown("notes/md"))
}

func TestStrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "headings removed",
			input: "# Title\n\nSome text",
			want:  "Title\n\nSome text",
		},
		{
			name:  "links keep text",
			input: "See [the docs](https://example.com) for details",
			want:  "See the docs for details",
		},
		{
			name:  "images dropped",
			input: "Before ![diagram](img.png) after",
			want:  "Before  after",
		},
		{
			name:  "code blocks dropped",
			input: "Intro\n```go\nfunc main() {}\n```\nOutro",
			want:  "Intro\n\nOutro",
		},
		{
			name:  "inline code dropped",
			input: "Run `make build` to compile",
			want:  "Run  to compile",
		},
		{
			name:  "bold and italic markers removed",
			input: "**bold** and *italic*",
			want:  "bold and italic",
		},
		{
			name:  "blockquotes unwrapped",
			input: "> quoted line",
			want:  "quoted line",
		},
		{
			name:  "horizontal rules removed",
			input: "above\n\n---\n\nbelow",
			want:  "above\n\nbelow",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Strip(tt.input))
		})
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Project Plan", Title("# Project Plan\n\ntext", "notes/plan.md"))
	assert.Equal(t, "meeting notes", Title("no heading here", "docs/meeting_notes.md"))
	assert.Equal(t, "q3 review", Title("", "q3-review.markdown"))
}
