// Package ipc exposes the daemon over JSON-RPC Unix sockets and ships the
// matching client used by the CLI.
//
// It owns socket lifecycle management and the request/response DTOs. Record,
// blacklist, and switch operations are served even while sampling is stopped,
// so the CLI never needs to open the record store behind a running daemon.
// Every call is tagged with a fresh correlation id in the daemon log.
//
// Reuse these types when adding new RPC endpoints to keep the protocol stable
// and compatible with existing command implementations.
package ipc
