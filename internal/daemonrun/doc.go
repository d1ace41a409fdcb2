// Package daemonrun hosts the foreground daemon process: per-run log files,
// the pid file, the IPC socket, and signal-driven shutdown.
package daemonrun
