// Package store persists the watch record list.
//
// Two backends implement progress.Repository: an SQLite database (the
// default) and a flat JSON file compatible with the legacy media_data.json
// layout. Both save the whole list as one unit, atomically: SQLite replaces
// every row inside a single transaction, the JSON backend renames a fully
// written temp file over the target.
//
// Open picks the backend from config. Schema changes bump schemaVersion; an
// existing database with a different version is refused with
// ErrSchemaMismatch rather than migrated.
package store
