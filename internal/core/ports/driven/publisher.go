package driven

import (
	"context"

	"github.com/saifahn/dendron/internal/core/domain"
)

// PagePublisher creates pages at a remote destination.
// Implementations must be safe for concurrent use; the exporter
// issues calls from several goroutines at once.
type PagePublisher interface {
	// CreatePage creates a page and returns the destination-assigned ID.
	CreatePage(ctx context.Context, page domain.Page) (string, error)

	// AppendBlocks appends blocks to an existing page.
	AppendBlocks(ctx context.Context, pageID string, blocks []domain.Block) error
}
