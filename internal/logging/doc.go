// Package logging assembles the structured slog loggers used across the
// conversion pipeline.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and provides attribute aliases plus a no-op logger for tests and
// wiring code that cannot fail. Component loggers tag every record with the
// subsystem that emitted it.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape and routing as the rest of the tool.
package logging
