// Package daemon coordinates the long-running watchtrack process.
//
// It wires the tracker service and the sampling loop into a single lifecycle
// with flock-based locking to prevent multiple instances. When an API bind
// address is configured, the daemon also serves a small authenticated HTTP
// API so display clients can read records and flip the process switches
// without talking to the record store directly.
//
// Keep orchestration logic here: record semantics live in tracker and
// progress, and window sampling lives in sampler.
package daemon
