package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/saifahn/dendron/internal/core/domain"
	"github.com/saifahn/dendron/internal/core/ports/driven"
)

// Ensure ExportStore implements the interface.
var _ driven.ExportStore = (*ExportStore)(nil)

// ExportStore is an in-memory implementation of driven.ExportStore.
type ExportStore struct {
	mu      sync.RWMutex
	runs    map[string]domain.ExportRun
	records map[string][]domain.ExportRecord
}

// NewExportStore creates a new in-memory export ledger.
func NewExportStore() *ExportStore {
	return &ExportStore{
		runs:    make(map[string]domain.ExportRun),
		records: make(map[string][]domain.ExportRecord),
	}
}

// SaveRun stores or updates a run summary.
func (s *ExportStore) SaveRun(_ context.Context, run domain.ExportRun) error {
	if run.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = run
	return nil
}

// SaveRecords stores created-page records for a run.
func (s *ExportStore) SaveRecords(_ context.Context, records []domain.ExportRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		if _, ok := s.runs[r.RunID]; !ok {
			return domain.ErrNotFound
		}
	}
	for _, r := range records {
		s.records[r.RunID] = append(s.records[r.RunID], r)
	}
	return nil
}

// ListRuns returns all runs, most recent first.
func (s *ExportStore) ListRuns(_ context.Context) ([]domain.ExportRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runs := make([]domain.ExportRun, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, r)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})
	return runs, nil
}

// ListRecords returns the records of a run.
func (s *ExportStore) ListRecords(_ context.Context, runID string) ([]domain.ExportRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.runs[runID]; !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]domain.ExportRecord, len(s.records[runID]))
	copy(out, s.records[runID])
	return out, nil
}

// LatestRemoteID returns the most recent remote page ID for a document.
func (s *ExportStore) LatestRemoteID(_ context.Context, documentID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *domain.ExportRecord
	for _, recs := range s.records {
		for i := range recs {
			if recs[i].DocumentID != documentID {
				continue
			}
			if latest == nil || recs[i].ExportedAt.After(latest.ExportedAt) {
				latest = &recs[i]
			}
		}
	}
	if latest == nil {
		return "", domain.ErrNotFound
	}
	return latest.RemoteID, nil
}
