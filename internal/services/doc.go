// Package services defines shared utilities consumed by the conversion
// pipeline stages.
//
// Key responsibilities:
//   - Context helpers that stamp batch identifiers, video names, and stage
//     names for logging.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent ledger statuses (failed vs rejected).
//
// Use these helpers when wiring new stage logic so error handling and
// observability stay uniform across the pipeline.
package services
