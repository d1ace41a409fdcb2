// Package window reads the title of the foreground window.
//
// Every Source returns an empty string when the title cannot be read; OS
// and command failures never reach the caller. NewSource picks the platform
// implementation at startup, or a command source when the config names an
// explicit title command.
package window
