package domain

// Document represents a note selected for export.
// Documents are owned by the caller and never mutated by the exporter.
type Document struct {
	// ID is the note identifier (frontmatter id, or hierarchy name).
	ID string

	// Title is the human-readable title.
	Title string

	// Body is the markdown body with frontmatter removed.
	Body string

	// URI is the original location (file path), if known.
	URI string

	// Metadata contains arbitrary frontmatter key-value pairs.
	Metadata map[string]any
}

// DisplayTitle returns the title, falling back to the ID when empty.
func (d *Document) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.ID
}
