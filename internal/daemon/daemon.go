package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"watchtrack/internal/config"
	"watchtrack/internal/deps"
	"watchtrack/internal/logging"
	"watchtrack/internal/sampler"
	"watchtrack/internal/tracker"
)

// Daemon owns the sampling loop and enforces single-instance execution.
type Daemon struct {
	cfg     *config.Config
	logger  *slog.Logger
	service *tracker.Service
	sampler *sampler.Sampler
	api     *apiServer
	logPath string

	lockPath string
	lock     *flock.Flock

	mu      sync.Mutex
	running atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	PID          int
	Backend      string
	RecordsPath  string
	SettingsPath string
	LockFilePath string
	LogPath      string
	Interval     time.Duration
	Tracker      tracker.Status
	Sampler      sampler.State
	Dependencies []deps.Status
}

// New constructs a daemon around an opened service and sampler.
func New(cfg *config.Config, svc *tracker.Service, smp *sampler.Sampler, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || svc == nil || smp == nil {
		return nil, errors.New("daemon requires config, service, and sampler")
	}
	logger = logging.NewComponentLogger(logger, "daemon")

	lockPath := filepath.Join(cfg.Paths.LogDir, "watchtrack.lock")
	d := &Daemon{
		cfg:      cfg,
		logger:   logger,
		service:  svc,
		sampler:  smp,
		logPath:  filepath.Join(cfg.Paths.LogDir, "watchtrack.log"),
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}
	d.api = newAPIServer(cfg, d, logger)
	return d, nil
}

// Service returns the tracker service the daemon records through.
func (d *Daemon) Service() *tracker.Service { return d.service }

// Start acquires the daemon lock and launches the sampling loop.
func (d *Daemon) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running.Load() {
		return errors.New("daemon already running")
	}

	if err := os.MkdirAll(filepath.Dir(d.lockPath), 0o755); err != nil {
		return fmt.Errorf("ensure lock directory: %w", err)
	}
	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another watchtrack daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	if err := d.api.start(runCtx); err != nil {
		cancel()
		_ = d.lock.Unlock()
		return fmt.Errorf("start api server: %w", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		d.sampler.Run(runCtx)
	}()

	d.cancel = cancel
	d.done = done
	d.running.Store(true)
	d.logger.Info("watchtrack daemon started",
		logging.String("lock", d.lockPath),
		logging.Duration("interval", d.sampler.Interval()),
		logging.String(logging.FieldEventType, "daemon_started"),
	)
	return nil
}

// Stop halts the sampling loop and releases the daemon lock.
func (d *Daemon) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running.Load() {
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if d.done != nil {
		<-d.done
		d.done = nil
	}
	d.api.stop()
	if err := d.lock.Unlock(); err != nil {
		logging.WarnWithContext(d.logger, "failed to release daemon lock", "lock_release_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "remove the lock file if no daemon is running"),
		)
	}
	d.running.Store(false)
	d.logger.Info("watchtrack daemon stopped", logging.String(logging.FieldEventType, "daemon_stopped"))
}

// Close stops the daemon and releases the record store.
func (d *Daemon) Close() error {
	d.Stop()
	if d.service != nil {
		return d.service.Close()
	}
	return nil
}

// LogPath returns the path to the daemon log file.
func (d *Daemon) LogPath() string {
	return d.logPath
}

// SetLogPath records the active log path for status reporting.
func (d *Daemon) SetLogPath(path string) {
	if path != "" {
		d.logPath = path
	}
}

// Status returns the current daemon status.
func (d *Daemon) Status(context.Context) Status {
	return Status{
		Running:      d.running.Load(),
		PID:          os.Getpid(),
		Backend:      d.cfg.Storage.Backend,
		RecordsPath:  d.cfg.Storage.RecordsFile,
		SettingsPath: d.cfg.Paths.SettingsFile,
		LockFilePath: d.lockPath,
		LogPath:      d.logPath,
		Interval:     d.sampler.Interval(),
		Tracker:      d.service.Status(),
		Sampler:      d.sampler.State(),
		Dependencies: deps.CheckBinaries(deps.CurrentTitleRequirements(d.cfg.Tracking.TitleCommand)),
	}
}
