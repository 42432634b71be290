package domain

import (
	"errors"
	"fmt"
)

// Stage names the pipeline step at which an item failed.
type Stage string

const (
	// StageConvert is the markdown-to-blocks conversion step.
	StageConvert Stage = "convert"
	// StageSubmit is the rate-limited remote creation step.
	StageSubmit Stage = "submit"
)

// ConversionResult pairs a source document with its converted payload.
type ConversionResult struct {
	DocumentID string
	Page       Page
}

// SubmissionOutcome pairs a source document with the identifier the
// destination assigned to the created page.
type SubmissionOutcome struct {
	DocumentID string
	RemoteID   string
}

// ItemError is a failure for a single document in a batch.
type ItemError struct {
	DocumentID string
	Stage      Stage
	Err        error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Stage, e.DocumentID, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// AggregateResult is the terminal outcome of a batch export.
// Created and Errors together account for every input document.
type AggregateResult struct {
	// RunID identifies the export run in the ledger. Empty when no ledger is configured.
	RunID string

	// Created holds one outcome per successfully created page, in input order.
	Created []SubmissionOutcome

	// Errors holds one error per failed document, in input order.
	Errors []error

	// Success is true only when every document was exported.
	Success bool
}

// NewAggregateResult builds a result from its partitions.
func NewAggregateResult(created []SubmissionOutcome, errs []error) *AggregateResult {
	if created == nil {
		created = []SubmissionOutcome{}
	}
	if errs == nil {
		errs = []error{}
	}
	return &AggregateResult{
		Created: created,
		Errors:  errs,
		Success: len(errs) == 0,
	}
}

// Total returns the number of documents accounted for.
func (r *AggregateResult) Total() int {
	return len(r.Created) + len(r.Errors)
}

// Err returns nil on success, otherwise a composite error wrapping
// ErrPartialExport and every underlying item error.
func (r *AggregateResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d of %d documents failed: %w",
		ErrPartialExport, len(r.Errors), r.Total(), errors.Join(r.Errors...))
}

// FailedIDs returns the document IDs of failed items, in input order.
func (r *AggregateResult) FailedIDs() []string {
	ids := make([]string, 0, len(r.Errors))
	for _, err := range r.Errors {
		var itemErr *ItemError
		if errors.As(err, &itemErr) {
			ids = append(ids, itemErr.DocumentID)
		}
	}
	return ids
}
