//go:build !linux && !freebsd && !openbsd && !netbsd && !darwin && !windows

package window

import (
	"context"
	"log/slog"
)

func platformSource(*slog.Logger) Source {
	return SourceFunc(func(context.Context) string { return "" })
}
