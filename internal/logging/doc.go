// Package logging assembles structured slog loggers and formatting helpers
// used across snapwatch components.
//
// It owns the configurable console/JSON handlers, centralizes level and
// output plumbing, and exposes attribute helpers plus well-known field names
// so every component tags log lines consistently (snap name, change id,
// notice type). The package also provides a no-op logger for tests and
// wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components
// emit data with the same shape as the rest of the system.
package logging
