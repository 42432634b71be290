package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/saifahn/dendron/internal/core/domain"
	"github.com/saifahn/dendron/internal/core/ports/driven"
)

// exportStore implements driven.ExportStore.
type exportStore struct {
	store *Store
}

var _ driven.ExportStore = (*exportStore)(nil)

// SaveRun stores or updates a run summary.
func (s *exportStore) SaveRun(ctx context.Context, run domain.ExportRun) error {
	if run.ID == "" {
		return domain.ErrInvalidInput
	}
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO export_runs (id, started_at, documents, created, failed)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			started_at = excluded.started_at,
			documents = excluded.documents,
			created = excluded.created,
			failed = excluded.failed
	`, run.ID, formatTime(run.StartedAt), run.Documents, run.Created, run.Failed)
	if err != nil {
		return fmt.Errorf("saving export run: %w", err)
	}
	return nil
}

// SaveRecords stores created-page records in a single transaction.
func (s *exportStore) SaveRecords(ctx context.Context, records []domain.ExportRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO export_records (run_id, document_id, remote_id, title, exported_at)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.RunID, r.DocumentID, r.RemoteID, r.Title, formatTime(r.ExportedAt)); err != nil {
			return fmt.Errorf("saving export record %s: %w", r.DocumentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing export records: %w", err)
	}
	return nil
}

// ListRuns returns all runs, most recent first.
func (s *exportStore) ListRuns(ctx context.Context) ([]domain.ExportRun, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, started_at, documents, created, failed
		FROM export_runs ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying export runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.ExportRun //nolint:prealloc // size unknown from query
	for rows.Next() {
		var run domain.ExportRun
		var startedAt string
		if err := rows.Scan(&run.ID, &startedAt, &run.Documents, &run.Created, &run.Failed); err != nil {
			return nil, fmt.Errorf("scanning export run: %w", err)
		}
		if run.StartedAt, err = parseTime(startedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating export runs: %w", err)
	}
	return runs, nil
}

// ListRecords returns the records of a run.
func (s *exportStore) ListRecords(ctx context.Context, runID string) ([]domain.ExportRecord, error) {
	var exists int
	err := s.store.db.QueryRowContext(ctx, "SELECT 1 FROM export_runs WHERE id = ?", runID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying export run: %w", err)
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT run_id, document_id, remote_id, title, exported_at
		FROM export_records WHERE run_id = ? ORDER BY exported_at, document_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying export records: %w", err)
	}
	defer rows.Close()

	records := []domain.ExportRecord{}
	for rows.Next() {
		var r domain.ExportRecord
		var exportedAt string
		if err := rows.Scan(&r.RunID, &r.DocumentID, &r.RemoteID, &r.Title, &exportedAt); err != nil {
			return nil, fmt.Errorf("scanning export record: %w", err)
		}
		if r.ExportedAt, err = parseTime(exportedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating export records: %w", err)
	}
	return records, nil
}

// LatestRemoteID returns the most recent remote page ID for a document.
func (s *exportStore) LatestRemoteID(ctx context.Context, documentID string) (string, error) {
	var remoteID string
	err := s.store.db.QueryRowContext(ctx, `
		SELECT remote_id FROM export_records
		WHERE document_id = ? ORDER BY exported_at DESC LIMIT 1
	`, documentID).Scan(&remoteID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("querying latest remote id: %w", err)
	}
	return remoteID, nil
}

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}
