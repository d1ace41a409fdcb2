//go:build windows

package window

import (
	"context"
	"log/slog"
	"strings"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32                   = windows.NewLazySystemDLL("user32.dll")
	procGetForegroundWindow  = user32.NewProc("GetForegroundWindow")
	procGetWindowTextLengthW = user32.NewProc("GetWindowTextLengthW")
	procGetWindowTextW       = user32.NewProc("GetWindowTextW")
)

type win32Source struct {
	logger *slog.Logger
}

func platformSource(logger *slog.Logger) Source {
	return win32Source{logger: logger}
}

// ActiveTitle reads the foreground window text through user32.
func (s win32Source) ActiveTitle(ctx context.Context) string {
	if ctx != nil && ctx.Err() != nil {
		return ""
	}
	if err := user32.Load(); err != nil {
		s.logger.Debug("user32 unavailable", "error", err)
		return ""
	}
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return ""
	}
	length, _, _ := procGetWindowTextLengthW.Call(hwnd)
	if length == 0 {
		return ""
	}
	buf := make([]uint16, length+1)
	copied, _, _ := procGetWindowTextW.Call(hwnd, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if copied == 0 {
		return ""
	}
	return strings.TrimSpace(windows.UTF16ToString(buf[:copied]))
}
