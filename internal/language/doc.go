// Package language resolves the display languages watchtrack can present its
// output in.
//
// Tags are parsed as BCP 47 so regional and three-letter forms ("fa-IR",
// "fas") collapse onto the two-letter code stored in settings.
package language
