//go:build darwin

package window

import (
	"context"
	"log/slog"
	"strings"
)

const frontmostScript = `tell application "System Events" to get name of first process whose frontmost is true`

type darwinSource struct {
	logger *slog.Logger
}

func platformSource(logger *slog.Logger) Source {
	return darwinSource{logger: logger}
}

// ActiveTitle returns the frontmost application name via osascript.
func (s darwinSource) ActiveTitle(ctx context.Context) string {
	out, err := runCommand(ctx, DefaultTimeout, "/usr/bin/osascript", "-e", frontmostScript)
	if err != nil {
		s.logger.Debug("osascript failed", "error", err)
		return ""
	}
	return strings.TrimSpace(out)
}
