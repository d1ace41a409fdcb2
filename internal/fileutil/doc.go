// Package fileutil provides atomic file writes over an afero filesystem.
package fileutil
