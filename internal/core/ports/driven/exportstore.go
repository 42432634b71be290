package driven

import (
	"context"

	"github.com/saifahn/dendron/internal/core/domain"
)

// ExportStore persists the ledger of export runs and created pages.
type ExportStore interface {
	// SaveRun stores or updates a run summary.
	SaveRun(ctx context.Context, run domain.ExportRun) error

	// SaveRecords stores created-page records for a run.
	SaveRecords(ctx context.Context, records []domain.ExportRecord) error

	// ListRuns returns all runs, most recent first.
	ListRuns(ctx context.Context) ([]domain.ExportRun, error)

	// ListRecords returns the records of a run.
	// Returns ErrNotFound if the run does not exist.
	ListRecords(ctx context.Context, runID string) ([]domain.ExportRecord, error)

	// LatestRemoteID returns the most recent remote page ID for a document.
	// Returns ErrNotFound if the document was never exported.
	LatestRemoteID(ctx context.Context, documentID string) (string, error)
}
