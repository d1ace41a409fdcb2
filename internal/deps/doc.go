// Package deps reports whether the external binaries used for window title
// acquisition are installed.
package deps
