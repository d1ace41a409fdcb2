package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"watchtrack/internal/config"
	"watchtrack/internal/daemon"
	"watchtrack/internal/ipc"
	"watchtrack/internal/logging"
	"watchtrack/internal/progress"
	"watchtrack/internal/sampler"
	"watchtrack/internal/testsupport"
	"watchtrack/internal/tracker"
	"watchtrack/internal/window"
)

type cliTestEnv struct {
	cfg        *config.Config
	service    *tracker.Service
	daemon     *daemon.Daemon
	server     *ipc.Server
	socketPath string
	configPath string
	logPath    string
}

// setupCLITestEnv serves an in-process daemon over a temp socket.
func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	cfg, configPath := setupCLIConfig(t, opts...)
	logger := logging.NewNop()
	svc := testsupport.MustOpenService(t, cfg, nil)
	smp := sampler.New(svc, window.SourceFunc(func(context.Context) string { return "" }),
		sampler.WithInterval(time.Hour),
		sampler.WithLogger(logger),
	)

	d, err := daemon.New(cfg, svc, smp, logger)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	logPath := filepath.Join(cfg.Paths.LogDir, "watchtrack-test.log")
	if err := os.WriteFile(logPath, nil, 0o644); err != nil {
		t.Fatalf("create log file: %v", err)
	}
	d.SetLogPath(logPath)

	ctx, cancel := context.WithCancel(context.Background())
	socketPath := filepath.Join(cfg.Paths.LogDir, "cli.sock")
	srv, err := ipc.NewServer(ctx, socketPath, d, logger)
	if err != nil {
		cancel()
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping CLI IPC test: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()

	t.Cleanup(func() {
		cancel()
		srv.Close()
		d.Stop()
	})

	return &cliTestEnv{
		cfg:        cfg,
		service:    svc,
		daemon:     d,
		server:     srv,
		socketPath: socketPath,
		configPath: configPath,
		logPath:    logPath,
	}
}

// setupCLIConfig writes a config file pointing every path into a temp dir.
func setupCLIConfig(t *testing.T, opts ...testsupport.ConfigOption) (*config.Config, string) {
	t.Helper()

	cfg := testsupport.NewConfig(t, opts...)
	homeDir := filepath.Join(testsupport.BaseDir(cfg), "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}

	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)
	return cfg, configPath
}

// missingSocket returns a socket path nothing listens on.
func missingSocket(cfg *config.Config) string {
	return filepath.Join(cfg.Paths.LogDir, "absent.sock")
}

func runCLI(t *testing.T, args []string, socket, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	flags := []string{"--socket", socket}
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func seedRecord(t *testing.T, svc *tracker.Service, title, episode string, minutes float64) {
	t.Helper()
	if _, err := svc.RecordProgress(context.Background(), progress.Progress{
		Title:   title,
		Episode: episode,
		Minutes: minutes,
	}); err != nil {
		t.Fatalf("RecordProgress(%q): %v", title, err)
	}
}

func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(line + "\n")
	return err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
