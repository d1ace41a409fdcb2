// Package titles turns raw foreground window titles into stable media title
// keys plus an episode token.
//
// Player and browser titles are noisy ("Show S01E02 [1080p] - Player"). The
// normalizer strips bracketed tags and episode markers, then keeps the last
// " - " field and the first " | " field, so watch time for every episode of a
// series accumulates under one key.
package titles
