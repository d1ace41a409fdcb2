// Package main hosts the watchtrack CLI entrypoint and command graph.
//
// The Cobra command tree turns terminal invocations into IPC calls against
// the daemon. Record, blacklist, and switch commands fall back to opening the
// record store directly when no daemon is listening. The hidden daemon
// command runs the sampler in the foreground and is what `watchtrack start`
// launches in the background.
//
// Keep this package lean: add behavior to the internal packages first, then
// surface it through a command or flag here.
package main
