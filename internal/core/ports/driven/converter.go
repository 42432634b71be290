package driven

import (
	"context"

	"github.com/saifahn/dendron/internal/core/domain"
)

// BlockConverter turns a markdown body into structured content blocks.
// Implementations must be safe for concurrent use.
type BlockConverter interface {
	// Convert parses markdown and returns the top-level blocks.
	Convert(ctx context.Context, markdown string) ([]domain.Block, error)
}
