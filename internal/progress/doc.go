// Package progress holds watch records and the rules for merging observations
// into them.
//
// A Ledger is an in-memory, insertion-ordered view of the record list that is
// loaded from a Repository, mutated, and saved back within a single
// operation. Minutes only ever grow through Record; manual edits leave the
// total alone.
package progress
