package services

import (
	"context"

	"github.com/saifahn/dendron/internal/core/domain"
	"github.com/saifahn/dendron/internal/core/ports/driven"
	"github.com/saifahn/dendron/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// HistoryService provides read access to the export ledger.
type HistoryService struct {
	store driven.ExportStore
}

// NewHistoryService creates a new history service.
func NewHistoryService(store driven.ExportStore) *HistoryService {
	return &HistoryService{store: store}
}

// Runs returns all recorded export runs, most recent first.
func (s *HistoryService) Runs(ctx context.Context) ([]domain.ExportRun, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	return s.store.ListRuns(ctx)
}

// Records returns the pages created by a run.
func (s *HistoryService) Records(ctx context.Context, runID string) ([]domain.ExportRecord, error) {
	if s.store == nil {
		return nil, domain.ErrNotImplemented
	}
	if runID == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.store.ListRecords(ctx, runID)
}

// RemoteID returns the most recent page ID created for a document.
func (s *HistoryService) RemoteID(ctx context.Context, documentID string) (string, error) {
	if s.store == nil {
		return "", domain.ErrNotImplemented
	}
	if documentID == "" {
		return "", domain.ErrInvalidInput
	}
	return s.store.LatestRemoteID(ctx, documentID)
}
