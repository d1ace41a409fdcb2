// Package settings persists the user-editable tracker settings document: the
// blacklist keywords, the program and auto-tracking switches, and the display
// language.
//
// The document is a TOML file. A missing file is created with defaults; an
// unreadable one is replaced in memory by defaults and logged, never
// surfaced to callers.
package settings
