// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for an export to run:
//
//   - BlockConverter: Converts a markdown body into content blocks
//   - PagePublisher: Creates pages at the destination (Notion)
//   - RateLimiter: Throttles calls to the destination
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - ExportStore: Ledger of created pages. Without it, runs are not recorded.
//   - NoteLoader: Reads notes from disk. Only the CLI needs it.
//   - ConfigStore: Persistent settings. Flags and environment still work without it.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or converter package
package driven
