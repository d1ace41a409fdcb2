// Package sampler runs the periodic foreground-window sampling loop.
//
// Each tick reads the raw window title, drops it when tracking is off, the
// program is paused, or the title is blacklisted, and otherwise normalizes it
// and records progress. Time is only credited when the same title is seen on
// two consecutive ticks: the first sighting records zero minutes, and the gap
// before a title switch is discarded rather than guessed.
package sampler
