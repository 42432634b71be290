package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not yet available.
	ErrNotImplemented = errors.New("not implemented")

	// Export Errors.

	// ErrConversion indicates a document body could not be converted to blocks.
	ErrConversion = errors.New("conversion failed")

	// ErrSubmission indicates the destination rejected or failed a page creation.
	ErrSubmission = errors.New("submission failed")

	// ErrRateLimited indicates the destination API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrPartialExport indicates at least one document in a batch failed to export.
	ErrPartialExport = errors.New("export incomplete")

	// ErrAuthRequired indicates no API token is configured for the destination.
	ErrAuthRequired = errors.New("authentication required")
)
