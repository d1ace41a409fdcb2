package daemonctl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"watchtrack/internal/api"
	"watchtrack/internal/config"
	"watchtrack/internal/deps"
	"watchtrack/internal/ipc"
	"watchtrack/internal/language"
	"watchtrack/internal/sampler"
	"watchtrack/internal/tracker"
)

// LaunchOptions controls daemon process launch behavior.
type LaunchOptions struct {
	SocketPath string
	ConfigPath string
	LogLevel   string
}

type StartState string

const (
	StartStateStarted        StartState = "started"
	StartStateAlreadyRunning StartState = "already_running"
	StartStateRequested      StartState = "start_requested"
)

// StartResult captures daemon start orchestration state.
type StartResult struct {
	State    StartState
	Launched bool
	Message  string
}

// Launch starts a detached watchtrack daemon process.
func Launch(executablePath string, opts LaunchOptions) error {
	if strings.TrimSpace(executablePath) == "" {
		return fmt.Errorf("resolve executable: executable path is empty")
	}

	args := []string{"daemon"}
	if socket := strings.TrimSpace(opts.SocketPath); socket != "" {
		args = append(args, "--socket", socket)
	}
	if cfg := strings.TrimSpace(opts.ConfigPath); cfg != "" {
		args = append(args, "--config", cfg)
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		args = append(args, "--log-level", level)
	}

	proc := exec.Command(executablePath, args...)
	if err := proc.Start(); err != nil {
		return fmt.Errorf("launch daemon: %w", err)
	}
	return proc.Process.Release()
}

// WaitForClient waits for IPC socket availability and returns a connected client.
func WaitForClient(socketPath string, timeout time.Duration) (*ipc.Client, error) {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		client, err := ipc.Dial(socketPath)
		if err == nil {
			return client, nil
		}
		lastErr = err
		time.Sleep(200 * time.Millisecond)
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("timeout waiting for daemon")
	}
	return nil, fmt.Errorf("daemon failed to start: %w", lastErr)
}

// EnsureStarted launches and/or starts the daemon and returns the resulting state.
func EnsureStarted(socketPath, executablePath string, opts LaunchOptions, waitTimeout time.Duration) (StartResult, error) {
	client, err := ipc.Dial(socketPath)
	launched := false
	if err != nil {
		if launchErr := Launch(executablePath, opts); launchErr != nil {
			return StartResult{}, launchErr
		}
		client, err = WaitForClient(socketPath, waitTimeout)
		if err != nil {
			return StartResult{}, err
		}
		launched = true
	}
	defer client.Close()

	statusResp, statusErr := client.Status()
	if statusErr == nil && statusResp != nil && statusResp.Running {
		if launched {
			return StartResult{State: StartStateStarted, Launched: true}, nil
		}
		return StartResult{State: StartStateAlreadyRunning}, nil
	}

	resp, err := client.Start()
	if err != nil {
		return StartResult{}, err
	}

	if resp != nil {
		message := strings.TrimSpace(resp.Message)
		if resp.Started {
			return StartResult{State: StartStateStarted, Launched: launched, Message: message}, nil
		}
		if strings.EqualFold(message, "daemon already running") {
			if launched {
				return StartResult{State: StartStateStarted, Launched: true, Message: message}, nil
			}
			return StartResult{State: StartStateAlreadyRunning, Message: message}, nil
		}
		if message != "" {
			return StartResult{State: StartStateRequested, Launched: launched, Message: message}, nil
		}
	}

	return StartResult{State: StartStateRequested, Launched: launched, Message: "Start request sent"}, nil
}

// WaitForShutdown waits for daemon IPC to disappear or report not-running.
func WaitForShutdown(socketPath string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for time.Now().Before(deadline) {
		client, err := ipc.Dial(socketPath)
		if err != nil {
			if isDaemonUnavailable(err) {
				return nil
			}
			lastErr = err
			time.Sleep(200 * time.Millisecond)
			continue
		}
		status, statusErr := client.Status()
		_ = client.Close()
		if statusErr == nil && !status.Running {
			return nil
		}
		if statusErr != nil {
			lastErr = statusErr
		} else {
			lastErr = fmt.Errorf("daemon still running")
		}
		time.Sleep(200 * time.Millisecond)
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("timeout waiting for shutdown")
	}
	return fmt.Errorf("daemon did not stop: %w", lastErr)
}

// ProcessInfo returns whether daemon IPC is reachable and the daemon PID when available.
func ProcessInfo(socketPath string) (bool, int, error) {
	client, err := ipc.Dial(socketPath)
	if err != nil {
		if isDaemonUnavailable(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	defer client.Close()
	status, statusErr := client.Status()
	if statusErr != nil {
		return true, 0, statusErr
	}
	pid := 0
	if status != nil {
		pid = status.PID
	}
	return true, pid, nil
}

// DeriveLogDir determines the daemon log directory from status and config hints.
func DeriveLogDir(lockPath string, cfg *config.Config) string {
	if lockPath != "" {
		return filepath.Dir(lockPath)
	}
	if cfg != nil && strings.TrimSpace(cfg.Paths.LogDir) != "" {
		return cfg.Paths.LogDir
	}
	return ""
}

// ForceKillProcess kills the daemon process and cleans pid/lock files.
func ForceKillProcess(pidPath, lockPath string, fallbackPID int) (int, error) {
	pid := fallbackPID
	data, err := os.ReadFile(pidPath)
	if err == nil {
		pidStr := strings.TrimSpace(string(data))
		if pidStr != "" {
			if parsed, parseErr := strconv.Atoi(pidStr); parseErr == nil && parsed > 0 {
				pid = parsed
			}
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return 0, fmt.Errorf("read daemon pid file %q: %w", pidPath, err)
	}
	if pid <= 0 {
		return 0, fmt.Errorf("unable to determine daemon pid (pid file: %s)", pidPath)
	}
	if pid == os.Getpid() {
		return 0, fmt.Errorf("refusing to kill current process (pid %d)", pid)
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return 0, fmt.Errorf("locate daemon process %d: %w", pid, err)
	}
	if err := proc.Kill(); err != nil {
		return 0, fmt.Errorf("kill daemon process %d: %w", pid, err)
	}
	if err := os.Remove(pidPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return 0, fmt.Errorf("remove pid file %q: %w", pidPath, err)
	}
	if lockPath != "" {
		_ = os.Remove(lockPath)
	}
	return pid, nil
}

// ErrDaemonNotRunning indicates daemon IPC is unavailable.
var ErrDaemonNotRunning = errors.New("daemon not running")

// StopResult captures daemon stop/termination outcome.
type StopResult struct {
	StopAcknowledged bool
	ForcedKill       bool
	PID              int
}

// RestartResult captures stop/start outcomes for daemon restart.
type RestartResult struct {
	WasRunning bool
	Stop       StopResult
	Start      StartResult
}

// StopAndTerminate stops sampling, then terminates the daemon process. The
// process gets gracePeriod to exit on SIGTERM before it is killed.
func StopAndTerminate(socketPath string, cfg *config.Config, gracePeriod time.Duration) (StopResult, error) {
	client, err := ipc.Dial(socketPath)
	if err != nil {
		if isDaemonUnavailable(err) {
			return StopResult{}, ErrDaemonNotRunning
		}
		return StopResult{}, err
	}
	statusResp, statusErr := client.Status()
	var lockPath string
	pid := 0
	if statusErr == nil && statusResp != nil {
		lockPath = statusResp.LockFilePath
		pid = statusResp.PID
	}
	resp, err := client.Stop()
	_ = client.Close()
	if err != nil {
		return StopResult{}, err
	}
	result := StopResult{PID: pid}
	if resp != nil {
		result.StopAcknowledged = resp.Stopped
	}

	if pid > 0 && pid != os.Getpid() {
		if proc, findErr := os.FindProcess(pid); findErr == nil {
			_ = proc.Signal(syscall.SIGTERM)
		}
	}
	if waitForSocketGone(socketPath, gracePeriod) {
		return result, nil
	}

	alive, livePID, aliveErr := ProcessInfo(socketPath)
	if aliveErr != nil || !alive {
		return result, nil
	}
	if livePID == 0 {
		livePID = pid
	}
	logDir := DeriveLogDir(lockPath, cfg)
	if logDir == "" {
		return result, fmt.Errorf("unable to determine daemon log directory")
	}
	pidPath := filepath.Join(logDir, "watchtrack.pid")
	lockFile := filepath.Join(logDir, "watchtrack.lock")
	killedPID, killErr := ForceKillProcess(pidPath, lockFile, livePID)
	if killErr != nil {
		return result, fmt.Errorf("failed to stop daemon process: %w", killErr)
	}
	_ = os.Remove(socketPath)
	result.ForcedKill = true
	result.PID = killedPID
	return result, nil
}

func waitForSocketGone(socketPath string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for {
		client, err := ipc.Dial(socketPath)
		if err != nil && isDaemonUnavailable(err) {
			return true
		}
		if client != nil {
			_ = client.Close()
		}
		if !time.Now().Before(deadline) {
			return false
		}
		time.Sleep(200 * time.Millisecond)
	}
}

// Restart stops the daemon if running, then ensures it is started.
func Restart(socketPath string, cfg *config.Config, executablePath string, opts LaunchOptions, stopGracePeriod, startWaitTimeout time.Duration) (RestartResult, error) {
	stopResult, stopErr := StopAndTerminate(socketPath, cfg, stopGracePeriod)
	if stopErr != nil && !errors.Is(stopErr, ErrDaemonNotRunning) {
		return RestartResult{}, stopErr
	}

	startResult, err := EnsureStarted(socketPath, executablePath, opts, startWaitTimeout)
	if err != nil {
		return RestartResult{}, err
	}

	return RestartResult{
		WasRunning: stopErr == nil,
		Stop:       stopResult,
		Start:      startResult,
	}, nil
}

// BuildStatusSnapshot collects daemon status. When the daemon is unreachable
// it reads switches and the record summary straight from disk.
func BuildStatusSnapshot(ctx context.Context, socketPath string, cfg *config.Config) (*api.StatusSnapshot, error) {
	if cfg == nil {
		return nil, errors.New("configuration not available")
	}
	snapshot := &api.StatusSnapshot{}
	reachable := false

	client, err := ipc.Dial(socketPath)
	if err == nil {
		defer client.Close()
		if resp, statusErr := client.Status(); statusErr == nil && resp != nil {
			snapshot.Daemon = resp.DaemonStatus
			reachable = true
		}
		if resp, sumErr := client.Summary(); sumErr == nil && resp != nil {
			summary := resp.Summary
			snapshot.Summary = &summary
		}
	}

	if !reachable {
		snapshot.Daemon = offlineStatus(cfg)
		queryCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if svc, openErr := tracker.Open(queryCtx, cfg); openErr == nil {
			snapshot.Daemon.Tracker = api.FromTrackerStatus(svc.Status())
			if summary, sumErr := svc.Summary(queryCtx); sumErr == nil {
				dto := api.FromSummary(summary)
				snapshot.Summary = &dto
			}
			_ = svc.Close()
		}
	}
	if len(snapshot.Daemon.Dependencies) == 0 {
		snapshot.Daemon.Dependencies = ResolveDependencies(cfg)
	}

	snapshot.SystemChecks = BuildSystemChecks(cfg, reachable, snapshot.Daemon)
	snapshot.DependencySummary = BuildDependencySummary(snapshot.Daemon.Dependencies)
	return snapshot, nil
}

func offlineStatus(cfg *config.Config) api.DaemonStatus {
	return api.DaemonStatus{
		Backend:      cfg.Storage.Backend,
		RecordsPath:  cfg.Storage.RecordsFile,
		SettingsPath: cfg.Paths.SettingsFile,
		LockFilePath: filepath.Join(cfg.Paths.LogDir, "watchtrack.lock"),
		Tracker: api.TrackerStatus{
			Language:     language.Default,
			LanguageName: language.DisplayName(language.Default),
			RightToLeft:  language.IsRTL(language.Default),
		},
		Sampler: api.FromSamplerState(sampler.State{}, time.Duration(cfg.Tracking.IntervalSeconds)*time.Second),
	}
}

func isDaemonUnavailable(err error) bool {
	return os.IsNotExist(err) ||
		errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, syscall.ENOENT) ||
		errors.Is(err, syscall.ECONNREFUSED)
}

// ResolveDependencies returns current dependency availability for status output.
func ResolveDependencies(cfg *config.Config) []api.DependencyStatus {
	if cfg == nil {
		return nil
	}
	return api.FromDependencies(deps.CheckBinaries(deps.CurrentTitleRequirements(cfg.Tracking.TitleCommand)))
}

// BuildSystemChecks resolves status lines that combine runtime state and config checks.
func BuildSystemChecks(cfg *config.Config, daemonReachable bool, status api.DaemonStatus) []api.StatusLine {
	lines := make([]api.StatusLine, 0, 6)
	switch {
	case daemonReachable && status.Running:
		lines = append(lines, api.StatusLine{Label: "Watchtrack", Severity: "ok", Detail: "Running"})
	case daemonReachable:
		lines = append(lines, api.StatusLine{Label: "Watchtrack", Severity: "warn", Detail: "Sampling stopped (run `watchtrack start`)"})
	default:
		lines = append(lines, api.StatusLine{Label: "Watchtrack", Severity: "warn", Detail: "Not running (run `watchtrack start`)"})
	}

	switch {
	case !status.Tracker.ProgramActive:
		lines = append(lines, api.StatusLine{Label: "Program", Severity: "warn", Detail: "Paused"})
	default:
		lines = append(lines, api.StatusLine{Label: "Program", Severity: "ok", Detail: "Active"})
	}
	if status.Tracker.AutoTrackingActive {
		lines = append(lines, api.StatusLine{Label: "Auto Tracking", Severity: "ok", Detail: "On"})
	} else {
		lines = append(lines, api.StatusLine{Label: "Auto Tracking", Severity: "info", Detail: "Off (run `watchtrack toggle tracking`)"})
	}

	if status.Sampler.LastTitle != "" {
		lines = append(lines, api.StatusLine{Label: "Watching", Severity: "ok", Detail: status.Sampler.LastTitle})
	}

	lines = append(lines, api.StatusLine{
		Label:    "Storage",
		Severity: "ok",
		Detail:   fmt.Sprintf("%s (%s)", cfg.Storage.Backend, cfg.Storage.RecordsFile),
	})

	if strings.TrimSpace(cfg.API.Bind) != "" {
		lines = append(lines, api.StatusLine{Label: "HTTP API", Severity: "ok", Detail: cfg.API.Bind})
	} else {
		lines = append(lines, api.StatusLine{Label: "HTTP API", Severity: "info", Detail: "Disabled"})
	}
	return lines
}

// BuildDependencySummary computes aggregate dependency readiness.
func BuildDependencySummary(deps []api.DependencyStatus) api.DependencySummary {
	if len(deps) == 0 {
		return api.DependencySummary{
			Severity: "info",
			Detail:   "No dependency checks configured",
		}
	}

	missingRequired := 0
	missingOptional := 0
	for _, dep := range deps {
		if dep.Available {
			continue
		}
		if dep.Optional {
			missingOptional++
		} else {
			missingRequired++
		}
	}

	missingCount := missingRequired + missingOptional
	available := len(deps) - missingCount
	severity := "ok"
	if missingRequired > 0 {
		severity = "error"
	} else if missingOptional > 0 {
		severity = "warn"
	}
	detail := fmt.Sprintf("%d/%d available (missing: %d required, %d optional)", available, len(deps), missingRequired, missingOptional)
	if missingCount == 0 {
		detail = fmt.Sprintf("%d/%d available", available, len(deps))
	}

	return api.DependencySummary{
		Total:           len(deps),
		Available:       available,
		MissingRequired: missingRequired,
		MissingOptional: missingOptional,
		Severity:        severity,
		Detail:          detail,
	}
}
