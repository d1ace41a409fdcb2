package daemon

import (
	"log/slog"
	"strings"

	"watchtrack/internal/logging"
	"watchtrack/internal/tracker"
)

type logListener struct {
	logger *slog.Logger
}

// NewLogListener returns a tracker.Listener that writes every change to
// logger, so display clients tailing the daemon log see switch flips.
func NewLogListener(logger *slog.Logger) tracker.Listener {
	return logListener{logger: logging.NewComponentLogger(logger, "listener")}
}

func (l logListener) BlacklistChanged(keywords []string) {
	l.logger.Info("blacklist changed",
		logging.Int("keywords", len(keywords)),
		logging.String("list", strings.Join(keywords, ", ")),
		logging.String(logging.FieldEventType, "blacklist_changed"),
	)
}

func (l logListener) ProgramActiveChanged(active bool) {
	l.logger.Info("program status changed",
		logging.Bool("active", active),
		logging.String(logging.FieldEventType, "program_status_changed"),
	)
}

func (l logListener) TrackingChanged(active bool) {
	l.logger.Info("tracking status changed",
		logging.Bool("active", active),
		logging.String(logging.FieldEventType, "tracking_status_changed"),
	)
}
