package titles

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Episode markers in match priority order. Digits and spaces are matched as
// Unicode classes so Persian and Arabic-Indic numerals are recognized. The
// bare number alternative is captured as "bare" and only counts when it is
// not glued to a letter, digit, or underscore.
const episodeAlternatives = `E\p{Nd}+` +
	`|S\p{Nd}+E\p{Nd}+` +
	`|قسمت[\s\p{Z}]*\p{Nd}+` +
	`|فصل[\s\p{Z}]*\p{Nd}+[\s\p{Z}]*قسمت[\s\p{Z}]*\p{Nd}+` +
	`|(?P<bare>\p{Nd}+)`

var (
	episodePattern = regexp.MustCompile(`(?i)` + episodeAlternatives)
	noisePattern   = regexp.MustCompile(`(?i)[\s\p{Z}]*(\[.*?\]|\(.*?\)|` + episodeAlternatives + `)`)

	episodeBare = episodePattern.SubexpIndex("bare")
	noiseBare   = noisePattern.SubexpIndex("bare")
)

const (
	fieldSeparator = " - "
	metaSeparator  = " | "
)

// Result is the outcome of normalizing one raw title.
type Result struct {
	Title   string
	Episode string
}

// Normalize extracts the clean title and episode token from raw. The episode
// is the first marker found, verbatim. Bracketed groups and markers are only
// stripped when a marker was found.
func Normalize(raw string) Result {
	if raw == "" {
		return Result{}
	}

	var episode string
	clean := raw
	if loc := firstEpisode(raw); loc != nil {
		episode = strings.TrimSpace(raw[loc[0]:loc[1]])
		clean = strings.TrimSpace(stripNoise(clean))
	}

	if parts := strings.Split(clean, fieldSeparator); len(parts) > 1 {
		clean = strings.TrimSpace(parts[len(parts)-1])
	}
	clean, _, _ = strings.Cut(clean, metaSeparator)

	return Result{Title: strings.TrimSpace(clean), Episode: episode}
}

func firstEpisode(raw string) []int {
	for _, m := range episodePattern.FindAllStringSubmatchIndex(raw, -1) {
		if acceptBare(raw, m, episodeBare) {
			return m[:2]
		}
	}
	return nil
}

func stripNoise(s string) string {
	var b strings.Builder
	last := 0
	for _, m := range noisePattern.FindAllStringSubmatchIndex(s, -1) {
		if !acceptBare(s, m, noiseBare) {
			continue
		}
		b.WriteString(s[last:m[0]])
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}

// acceptBare reports whether match m is usable. Matches of the bare number
// group need non-word runes on both sides.
func acceptBare(s string, m []int, group int) bool {
	start, end := m[2*group], m[2*group+1]
	if start < 0 {
		return true
	}
	if before, size := utf8.DecodeLastRuneInString(s[:start]); size > 0 && isWordRune(before) {
		return false
	}
	if after, size := utf8.DecodeRuneInString(s[end:]); size > 0 && isWordRune(after) {
		return false
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
