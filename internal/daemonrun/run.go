package daemonrun

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"watchtrack/internal/config"
	"watchtrack/internal/daemon"
	"watchtrack/internal/deps"
	"watchtrack/internal/ipc"
	"watchtrack/internal/logging"
	"watchtrack/internal/sampler"
	"watchtrack/internal/tracker"
	"watchtrack/internal/window"
)

// Options configures daemon process runtime behavior.
type Options struct {
	LogLevel    string
	Development bool
	// SocketPath overrides the IPC socket location derived from config.
	SocketPath string
}

// Run starts the watchtrack daemon runtime loop and blocks until a signal
// arrives or cmdCtx is canceled.
func Run(cmdCtx context.Context, cfg *config.Config, opts Options) error {
	if cfg == nil {
		return fmt.Errorf("config is required")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return fmt.Errorf("ensure directories: %w", err)
	}

	signalCtx, cancel := signal.NotifyContext(cmdCtx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	runID := time.Now().UTC().Format("20060102T150405.000Z")
	logPath := filepath.Join(cfg.Paths.LogDir, fmt.Sprintf("watchtrack-%s.log", runID))

	level := strings.TrimSpace(opts.LogLevel)
	if level == "" {
		level = cfg.Logging.Level
	}
	logger, err := logging.New(logging.Options{
		Level:            level,
		Format:           cfg.Logging.Format,
		OutputPaths:      []string{"stdout", logPath},
		ErrorOutputPaths: []string{"stderr", logPath},
		Development:      opts.Development,
		MaxSizeMB:        cfg.Logging.MaxSizeMB,
		MaxBackups:       cfg.Logging.MaxBackups,
		SessionID:        uuid.NewString(),
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	logDependencySnapshot(logger, cfg)
	pointer := filepath.Join(cfg.Paths.LogDir, "watchtrack.log")
	if err := ensureCurrentLogPointer(pointer, logPath); err != nil {
		fmt.Fprintf(os.Stderr, "warn: unable to update watchtrack.log link: %v\n", err)
	}
	logging.CleanupOldLogs(logger, cfg.Logging.RetentionDays,
		logging.RetentionTarget{Dir: cfg.Paths.LogDir, Pattern: "watchtrack-*.log", Exclude: []string{logPath}},
	)
	pidPath := filepath.Join(cfg.Paths.LogDir, "watchtrack.pid")
	if err := writePIDFile(pidPath); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}
	defer os.Remove(pidPath)

	svc, err := tracker.Open(signalCtx, cfg,
		tracker.WithLogger(logger),
		tracker.WithListener(daemon.NewLogListener(logger)),
	)
	if err != nil {
		logging.ErrorWithContext(logger, "open tracker", "tracker_open_failed",
			logging.Error(err),
			logging.String("records_file", cfg.Storage.RecordsFile),
			logging.String(logging.FieldErrorHint, "check storage.backend and records_file permissions"),
		)
		return err
	}

	smp := sampler.New(svc, window.NewSource(cfg, logger),
		sampler.WithInterval(time.Duration(cfg.Tracking.IntervalSeconds)*time.Second),
		sampler.WithLogger(logger),
	)

	d, err := daemon.New(cfg, svc, smp, logger)
	if err != nil {
		_ = svc.Close()
		return fmt.Errorf("create daemon: %w", err)
	}
	d.SetLogPath(logPath)
	defer d.Close()

	socketPath := strings.TrimSpace(opts.SocketPath)
	if socketPath == "" {
		socketPath = cfg.SocketPath()
	}
	ipcServer, err := ipc.NewServer(signalCtx, socketPath, d, logger)
	if err != nil {
		return fmt.Errorf("start IPC server: %w", err)
	}
	defer ipcServer.Close()
	ipcServer.Serve()

	if err := d.Start(signalCtx); err != nil {
		logging.WarnWithContext(logger, "daemon start failed", "daemon_start_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check for another running daemon and the lock file"),
			logging.String(logging.FieldImpact, "watch time is not sampled until the daemon is started"),
		)
	}

	<-signalCtx.Done()
	logger.Info("watchtrack daemon shutting down", logging.String(logging.FieldEventType, "daemon_shutdown"))
	return nil
}

func ensureCurrentLogPointer(current, target string) error {
	if current == "" || target == "" {
		return nil
	}
	if err := os.Remove(current); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing log pointer: %w", err)
	}
	if err := os.Symlink(target, current); err == nil {
		return nil
	}
	if err := os.Link(target, current); err != nil {
		return fmt.Errorf("link log pointer: %w", err)
	}
	return nil
}

func writePIDFile(path string) error {
	if path == "" {
		return nil
	}
	value := strconv.Itoa(os.Getpid()) + "\n"
	return os.WriteFile(path, []byte(value), 0o644)
}

func logDependencySnapshot(logger *slog.Logger, cfg *config.Config) {
	if logger == nil || cfg == nil {
		return
	}
	attrs := []logging.Attr{
		logging.String(logging.FieldEventType, "dependency_snapshot"),
		logging.String("backend", cfg.Storage.Backend),
		logging.Int("interval_seconds", cfg.Tracking.IntervalSeconds),
		logging.Bool("title_command_configured", len(cfg.Tracking.TitleCommand) > 0),
	}
	for _, status := range deps.CheckBinaries(deps.CurrentTitleRequirements(cfg.Tracking.TitleCommand)) {
		attrs = append(attrs, logging.Bool(status.Command+"_available", status.Available))
	}
	logger.Info("dependency snapshot", logging.Args(attrs...)...)
}
