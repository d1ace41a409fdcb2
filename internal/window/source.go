package window

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"watchtrack/internal/config"
	"watchtrack/internal/logging"
)

// DefaultTimeout bounds every title lookup.
const DefaultTimeout = 2 * time.Second

// Source reports the raw title of the foreground window, or "" when unknown.
type Source interface {
	ActiveTitle(ctx context.Context) string
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) string

// ActiveTitle calls f.
func (f SourceFunc) ActiveTitle(ctx context.Context) string { return f(ctx) }

// CommandSource runs an external command and uses its trimmed stdout as the
// title.
type CommandSource struct {
	Argv    []string
	Timeout time.Duration
	Logger  *slog.Logger
}

// ActiveTitle runs the command. Failures are logged at debug level and
// reported as "".
func (c CommandSource) ActiveTitle(ctx context.Context) string {
	if len(c.Argv) == 0 {
		return ""
	}
	out, err := runCommand(ctx, c.timeout(), c.Argv[0], c.Argv[1:]...)
	if err != nil {
		if c.Logger != nil {
			c.Logger.Debug("title command failed",
				logging.String("command", c.Argv[0]),
				logging.Error(err),
				logging.String(logging.FieldEventType, "title_command_failed"),
			)
		}
		return ""
	}
	return strings.TrimSpace(out)
}

func (c CommandSource) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

// NewSource returns the title source for cfg: the configured command when
// set, otherwise the platform implementation.
func NewSource(cfg *config.Config, logger *slog.Logger) Source {
	logger = logging.NewComponentLogger(logger, "window")
	if cfg != nil && len(cfg.Tracking.TitleCommand) > 0 {
		return CommandSource{Argv: cfg.Tracking.TitleCommand, Logger: logger}
	}
	return platformSource(logger)
}

func runCommand(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	// Grandchildren can hold stdout open after the kill.
	cmd.WaitDelay = 250 * time.Millisecond
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return stdout.String(), nil
}
