package language

import (
	"slices"
	"testing"
)

func TestCanonical(t *testing.T) {
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{"fa", "fa", true},
		{"FA", "fa", true},
		{"fa-IR", "fa", true},
		{" en ", "en", true},
		{"en-US", "en", true},
		{"de-AT", "de", true},
		{"ar", "ar", true},
		// Unsupported but valid tags
		{"ja", "", false},
		{"zh-Hant", "", false},
		// Garbage
		{"", "", false},
		{"not a tag", "", false},
	}
	for _, tt := range tests {
		got, ok := Canonical(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Canonical(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"fa", "Persian (فارسی)"},
		{"en", "English"},
		{"EN-gb", "English"},
		{"tr", "Turkish (Türkçe)"},
		{"", "Unknown"},
		{"xx", "XX"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.input); got != tt.expected {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestIsRTL(t *testing.T) {
	if !IsRTL("fa") || !IsRTL("ar-EG") {
		t.Fatal("expected Persian and Arabic to be right to left")
	}
	if IsRTL("en") || IsRTL("") {
		t.Fatal("expected English and empty tag to be left to right")
	}
}

func TestSupportedIncludesDefault(t *testing.T) {
	codes := Supported()
	if !slices.Contains(codes, Default) {
		t.Fatalf("Supported() = %v, missing default %q", codes, Default)
	}
	if !slices.IsSorted(codes) {
		t.Fatalf("Supported() not sorted: %v", codes)
	}
}
