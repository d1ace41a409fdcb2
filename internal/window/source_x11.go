//go:build linux || freebsd || openbsd || netbsd

package window

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
)

var (
	activeWindowPattern = regexp.MustCompile(`window id # (0x[0-9a-fA-F]+)`)
	wmNamePattern       = regexp.MustCompile(`^[A-Z_]+\([A-Z_0-9]+\) = "(.*)"$`)
)

type x11Source struct {
	logger *slog.Logger
}

func platformSource(logger *slog.Logger) Source {
	return x11Source{logger: logger}
}

// ActiveTitle asks xdotool for the active window name and falls back to
// xprop when xdotool is missing or fails.
func (s x11Source) ActiveTitle(ctx context.Context) string {
	if out, err := runCommand(ctx, DefaultTimeout, "xdotool", "getactivewindow", "getwindowname"); err == nil {
		if title := strings.TrimSpace(out); title != "" {
			return title
		}
	}
	return s.xpropTitle(ctx)
}

func (s x11Source) xpropTitle(ctx context.Context) string {
	root, err := runCommand(ctx, DefaultTimeout, "xprop", "-root", "_NET_ACTIVE_WINDOW")
	if err != nil {
		s.logger.Debug("active window lookup failed", "error", err)
		return ""
	}
	match := activeWindowPattern.FindStringSubmatch(root)
	if match == nil || match[1] == "0x0" {
		return ""
	}
	props, err := runCommand(ctx, DefaultTimeout, "xprop", "-id", match[1], "_NET_WM_NAME", "WM_NAME")
	if err != nil {
		s.logger.Debug("window name lookup failed", "error", err)
		return ""
	}
	return parseXpropName(props)
}

// parseXpropName returns the first quoted name value from xprop output.
func parseXpropName(output string) string {
	for _, line := range strings.Split(output, "\n") {
		if m := wmNamePattern.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			name := strings.ReplaceAll(m[1], `\"`, `"`)
			if name = strings.TrimSpace(name); name != "" {
				return name
			}
		}
	}
	return ""
}
