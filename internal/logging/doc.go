// Package logging assembles structured slog loggers and formatting helpers used
// across watchtrack.
//
// It owns the configurable console/JSON handlers, routes file outputs through a
// size-rotating writer, and exposes helpers that keep warnings and errors in a
// consistent shape (event_type, error_hint, impact). Log retention pruning for
// per-run daemon logs lives here too. A no-op logger is provided for tests and
// wiring code that cannot fail.
package logging
