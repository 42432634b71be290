package driving

import (
	"context"

	"github.com/saifahn/dendron/internal/core/domain"
)

// HistoryService exposes the export ledger.
type HistoryService interface {
	// Runs returns all recorded export runs, most recent first.
	Runs(ctx context.Context) ([]domain.ExportRun, error)

	// Records returns the pages created by a run.
	Records(ctx context.Context, runID string) ([]domain.ExportRecord, error)

	// RemoteID returns the most recent page ID created for a document.
	RemoteID(ctx context.Context, documentID string) (string, error)
}
