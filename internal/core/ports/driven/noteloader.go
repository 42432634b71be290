package driven

import (
	"context"

	"github.com/saifahn/dendron/internal/core/domain"
)

// NoteLoader reads notes from storage into documents.
type NoteLoader interface {
	// Load reads every note found at the given paths.
	// Directories are walked recursively.
	Load(ctx context.Context, paths ...string) ([]domain.Document, error)
}
