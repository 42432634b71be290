package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDocument_Fields tests Document structure fields
func TestDocument_Fields(t *testing.T) {
	doc := Document{
		ID:       "proj.notion",
		Title:    "Notion Export",
		Body:     "# Notion Export\n\nBody",
		URI:      "/vault/proj.notion.md",
		Metadata: map[string]any{"desc": "export notes"},
	}

	assert.Equal(t, "proj.notion", doc.ID)
	assert.Equal(t, "Notion Export", doc.Title)
	assert.Equal(t, "/vault/proj.notion.md", doc.URI)
	assert.Equal(t, "export notes", doc.Metadata["desc"])
}

func TestDocument_DisplayTitle(t *testing.T) {
	tests := []struct {
		name     string
		doc      Document
		expected string
	}{
		{"title set", Document{ID: "a.b", Title: "Title"}, "Title"},
		{"falls back to id", Document{ID: "a.b"}, "a.b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.doc.DisplayTitle())
		})
	}
}

func TestBlock_PlainText(t *testing.T) {
	b := Block{
		Type: BlockParagraph,
		RichText: []Span{
			{Text: "hello "},
			{Text: "world", Bold: true},
		},
	}

	assert.Equal(t, "hello world", b.PlainText())
	assert.Empty(t, (&Block{Type: BlockDivider}).PlainText())
}
