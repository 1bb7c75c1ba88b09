// Package logging assembles structured slog loggers and formatting helpers used
// across pwtune.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so catalog builders can tag log
// lines with snapshot IDs and catalog names. The package also provides a no-op
// logger for tests and wiring code that cannot fail.
package logging
