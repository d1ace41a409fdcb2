//go:build linux || freebsd || openbsd || netbsd

package window

import "testing"

func TestParseXpropName(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{
			name:   "utf8 name first",
			output: "_NET_WM_NAME(UTF8_STRING) = \"شهرزاد قسمت ۵ - VLC\"\nWM_NAME(STRING) = \"fallback\"\n",
			want:   "شهرزاد قسمت ۵ - VLC",
		},
		{
			name:   "wm name only",
			output: "_NET_WM_NAME:  not found.\nWM_NAME(STRING) = \"Dark E03 - mpv\"\n",
			want:   "Dark E03 - mpv",
		},
		{
			name:   "escaped quotes",
			output: "WM_NAME(STRING) = \"The \\\"Office\\\" 7\"\n",
			want:   "The \"Office\" 7",
		},
		{
			name:   "nothing usable",
			output: "_NET_WM_NAME:  not found.\nWM_NAME:  not found.\n",
			want:   "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseXpropName(tt.output); got != tt.want {
				t.Fatalf("parseXpropName = %q, want %q", got, tt.want)
			}
		})
	}
}
