// Package domain defines the core business entities for the Dendron exporter.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A note selected for export
//   - Block: A remote-agnostic content block produced by conversion
//   - Page: The payload submitted to a destination
//   - AggregateResult: The outcome of a batch export
//   - ExportRecord: A ledger entry for a created page
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
