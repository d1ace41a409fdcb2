// Package api defines wire-format types and converters for the IPC and HTTP
// API layer. It translates records, summaries, and daemon state into
// transport-friendly DTOs that a display layer can render without coupling
// to internal types.
//
// DTOs use camelCase JSON tags for JavaScript consumers. Timestamps use
// RFC3339 with milliseconds in UTC; zero times are omitted. Resume positions
// stay pointers so "absent" and "empty" remain distinct on the wire.
package api
