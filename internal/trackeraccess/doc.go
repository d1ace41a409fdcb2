// Package trackeraccess lets CLI commands operate on watch records whether or
// not the daemon is running. A reachable daemon is always preferred so the
// record store has a single writer.
package trackeraccess
