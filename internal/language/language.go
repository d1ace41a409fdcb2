package language

import (
	"sort"
	"strings"

	xlang "golang.org/x/text/language"
)

type entry struct {
	code    string // ISO 639-1 (2-letter)
	display string // English name
	native  string // Name in the language itself
	rtl     bool   // Written right to left
}

// Display languages the tracker UI can be switched to.
var languages = []entry{
	{"fa", "Persian", "فارسی", true},
	{"en", "English", "English", false},
	{"ar", "Arabic", "العربية", true},
	{"tr", "Turkish", "Türkçe", false},
	{"de", "German", "Deutsch", false},
	{"fr", "French", "Français", false},
	{"es", "Spanish", "Español", false},
}

// Default is the display language used when none is configured.
const Default = "fa"

var byCode map[string]*entry

func init() {
	byCode = make(map[string]*entry, len(languages))
	for i := range languages {
		byCode[languages[i].code] = &languages[i]
	}
}

// Canonical parses a BCP 47 tag (e.g. "fa-IR", "EN", "fas") and returns the
// ISO 639-1 code of a supported display language. ok is false when the tag
// cannot be parsed or names an unsupported language.
func Canonical(tag string) (string, bool) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return "", false
	}
	parsed, err := xlang.Parse(tag)
	if err != nil {
		return "", false
	}
	base, confidence := parsed.Base()
	if confidence == xlang.No {
		return "", false
	}
	code := base.String()
	if _, ok := byCode[code]; !ok {
		return "", false
	}
	return code, true
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if canonical, ok := Canonical(code); ok {
		e := byCode[canonical]
		if e.native != e.display {
			return e.display + " (" + e.native + ")"
		}
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsRTL reports whether the language is written right to left.
func IsRTL(code string) bool {
	canonical, ok := Canonical(code)
	return ok && byCode[canonical].rtl
}

// Supported returns the supported display language codes in sorted order.
func Supported() []string {
	codes := make([]string, 0, len(languages))
	for _, e := range languages {
		codes = append(codes, e.code)
	}
	sort.Strings(codes)
	return codes
}
