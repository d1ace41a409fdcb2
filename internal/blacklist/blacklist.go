package blacklist

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var defaultKeywords = []string{
	"Terminal", "Settings", "Visual Studio Code", "PyCharm", "IntelliJ", "Photoshop",
	"Control Panel", "System Preferences", "Explorer", "Finder", "File Manager",
	"Slack", "Discord", "Zoom Meeting", "Gmail", "WhatsApp", "Outlook",
	"Tracker GUI", "Desktop", "Windows", "Google", "Mozilla", "Error", "Notification",
	"Popup", "System", "Tools", "Help", "About",
	"Installer", "Setup", "Control", "Manager", "License", "Configuration",
	"Security", "Task Manager",
}

// DefaultKeywords returns a fresh copy of the built-in keyword list.
func DefaultKeywords() []string {
	return slices.Clone(defaultKeywords)
}

// Filter matches titles against a fixed keyword snapshot.
type Filter struct {
	keywords []string
}

// New builds a filter over keywords. Blank entries never match.
func New(keywords []string) *Filter {
	lower := cases.Lower(language.Und)
	folded := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if strings.TrimSpace(kw) == "" {
			continue
		}
		folded = append(folded, lower.String(kw))
	}
	return &Filter{keywords: folded}
}

// IsBlacklisted reports whether title is empty or contains any keyword,
// ignoring case.
func (f *Filter) IsBlacklisted(title string) bool {
	if title == "" {
		return true
	}
	if f == nil || len(f.keywords) == 0 {
		return false
	}
	// Casers carry state, so each call gets its own.
	lowered := cases.Lower(language.Und).String(title)
	for _, kw := range f.keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// Add appends the trimmed keyword unless it is blank or already present with
// the same case. The input slice is never modified.
func Add(keywords []string, keyword string) ([]string, bool) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" || slices.Contains(keywords, keyword) {
		return keywords, false
	}
	out := make([]string, 0, len(keywords)+1)
	out = append(out, keywords...)
	return append(out, keyword), true
}

// Remove drops the first exact match of the trimmed keyword.
func Remove(keywords []string, keyword string) ([]string, bool) {
	keyword = strings.TrimSpace(keyword)
	idx := slices.Index(keywords, keyword)
	if idx < 0 {
		return keywords, false
	}
	out := make([]string, 0, len(keywords)-1)
	out = append(out, keywords[:idx]...)
	return append(out, keywords[idx+1:]...), true
}

// Dedupe drops exact repeats while keeping first-seen order. Settings files
// edited by hand go through this on load.
func Dedupe(keywords []string) []string {
	seen := make(map[string]struct{}, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}
