// Package blacklist decides whether a foreground window title should be
// ignored by the tracker.
//
// Matching is a case-insensitive substring test against a keyword list. The
// list itself keeps the case the user typed and rejects exact duplicates only,
// so "Slack" and "slack" may both be stored while matching the same titles.
package blacklist
