// Package tracker owns the watch-time state of one watchtrack process.
//
// Service is the single entry point for every record and settings
// operation. Record operations reload the list from the repository, apply
// the change through a progress.Ledger, and save before returning; the
// list is never cached between calls. Settings are loaded once when the
// service is built and written back on every mutation. A mutex serializes
// each load, mutate, and save sequence so the sampler and interactive
// callers cannot interleave within one process.
//
// Listeners registered with WithListener are told about blacklist and
// switch changes after they have been persisted.
package tracker
