package domain

import "time"

// ExportRecord is a ledger entry for a page created during an export run.
type ExportRecord struct {
	RunID      string
	DocumentID string
	RemoteID   string
	Title      string
	ExportedAt time.Time
}

// ExportRun summarises one export invocation.
type ExportRun struct {
	ID        string
	StartedAt time.Time
	Documents int
	Created   int
	Failed    int
}
