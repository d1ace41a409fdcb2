// Package logs tails daemon log files for the CLI.
//
// A negative offset returns the last N lines; a non-negative offset resumes
// where the previous read stopped, which is how `watchtrack logs --follow`
// polls the daemon. Reads go through afero so tests can use an in-memory
// filesystem and a fake clock.
package logs
