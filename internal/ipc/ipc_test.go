package ipc_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"watchtrack/internal/daemon"
	"watchtrack/internal/ipc"
	"watchtrack/internal/logging"
	"watchtrack/internal/progress"
	"watchtrack/internal/sampler"
	"watchtrack/internal/testsupport"
	"watchtrack/internal/window"
)

func startServer(t *testing.T) (*ipc.Client, string) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
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
	logPath := filepath.Join(cfg.Paths.LogDir, "ipc-test.log")
	d.SetLogPath(logPath)
	t.Cleanup(d.Stop)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	if err := os.MkdirAll(cfg.Paths.LogDir, 0o755); err != nil {
		t.Fatalf("mkdir logs: %v", err)
	}
	socket := filepath.Join(cfg.Paths.LogDir, "watchtrack.sock")
	srv, err := ipc.NewServer(ctx, socket, d, logger)
	if err != nil {
		if strings.Contains(err.Error(), "operation not permitted") {
			t.Skipf("skipping IPC server test: %v", err)
		}
		t.Fatalf("ipc.NewServer: %v", err)
	}
	srv.Serve()
	t.Cleanup(srv.Close)

	client, err := ipc.Dial(socket)
	if err != nil {
		t.Fatalf("ipc.Dial: %v", err)
	}
	t.Cleanup(func() {
		client.Close()
	})
	return client, logPath
}

func TestIPCDaemonLifecycle(t *testing.T) {
	client, _ := startServer(t)

	startResp, err := client.Start()
	if err != nil {
		t.Fatalf("Start RPC failed: %v", err)
	}
	if !startResp.Started {
		t.Fatalf("expected Started=true, message=%s", startResp.Message)
	}

	again, err := client.Start()
	if err != nil {
		t.Fatalf("second Start RPC failed: %v", err)
	}
	if again.Started || again.Message == "" {
		t.Fatalf("expected second start to be refused with a message, got %#v", again)
	}

	status, err := client.Status()
	if err != nil {
		t.Fatalf("Status RPC failed: %v", err)
	}
	if !status.Running || status.PID != os.Getpid() {
		t.Fatalf("unexpected status: %#v", status)
	}
	if status.Sampler.Interval != "1h0m0s" {
		t.Fatalf("expected configured interval, got %q", status.Sampler.Interval)
	}

	stopResp, err := client.Stop()
	if err != nil {
		t.Fatalf("Stop RPC failed: %v", err)
	}
	if !stopResp.Stopped {
		t.Fatal("expected stop response to be true")
	}

	status, err = client.Status()
	if err != nil {
		t.Fatalf("Status RPC failed: %v", err)
	}
	if status.Running {
		t.Fatal("expected daemon to be stopped")
	}
}

func TestIPCRecordOperations(t *testing.T) {
	client, _ := startServer(t)

	if _, err := client.RecordProgress(ipc.RecordProgressRequest{Title: "Frieren", Episode: "E05", Minutes: 30}); err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}
	resp, err := client.RecordProgress(ipc.RecordProgressRequest{Title: "Frieren", Episode: "E06", Minutes: 15, SetResume: true, Resume: progress.StringPtr("00:12:00")})
	if err != nil {
		t.Fatalf("RecordProgress: %v", err)
	}
	if resp.Record.TotalMinutesWatched != 45 || resp.Record.Episode != "E06" {
		t.Fatalf("unexpected record after update: %#v", resp.Record)
	}

	list, err := client.RecordList()
	if err != nil {
		t.Fatalf("RecordList: %v", err)
	}
	if len(list.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(list.Records))
	}

	saved, err := client.SaveManual("Frieren", "E07", "")
	if err != nil {
		t.Fatalf("SaveManual: %v", err)
	}
	if !saved.Saved {
		t.Fatal("expected manual save to match")
	}
	got, err := client.RecordGet("Frieren")
	if err != nil {
		t.Fatalf("RecordGet: %v", err)
	}
	if !got.Found || got.Record.Episode != "E07" || got.Record.ResumePosition != nil {
		t.Fatalf("unexpected record after manual save: %#v", got)
	}

	finished, err := client.Finish("Frieren")
	if err != nil || !finished.Updated {
		t.Fatalf("Finish: resp=%#v err=%v", finished, err)
	}
	summary, err := client.Summary()
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.Summary.FinishedItems != 1 || summary.Summary.TotalTimeTracked != "0h 45m" {
		t.Fatalf("unexpected summary: %#v", summary.Summary)
	}

	missing, err := client.Finish("Nope")
	if err != nil {
		t.Fatalf("Finish missing: %v", err)
	}
	if missing.Updated {
		t.Fatal("expected finish of unknown title to report false")
	}

	deleted, err := client.Delete("Frieren")
	if err != nil || !deleted.Removed {
		t.Fatalf("Delete: resp=%#v err=%v", deleted, err)
	}
	got, err = client.RecordGet("Frieren")
	if err != nil {
		t.Fatalf("RecordGet: %v", err)
	}
	if got.Found {
		t.Fatal("expected record to be gone")
	}

	if _, err := client.RecordProgress(ipc.RecordProgressRequest{Title: "  ", Minutes: 1}); err == nil {
		t.Fatal("expected empty title to be rejected")
	}
}

func TestIPCBlacklistAndSwitches(t *testing.T) {
	client, _ := startServer(t)

	added, err := client.BlacklistAdd("Spotify")
	if err != nil || !added.Changed {
		t.Fatalf("BlacklistAdd: resp=%#v err=%v", added, err)
	}
	check, err := client.BlacklistCheck("Spotify - Daily Mix")
	if err != nil || !check.Blacklisted {
		t.Fatalf("BlacklistCheck: resp=%#v err=%v", check, err)
	}
	removed, err := client.BlacklistRemove("Spotify")
	if err != nil || !removed.Changed {
		t.Fatalf("BlacklistRemove: resp=%#v err=%v", removed, err)
	}
	list, err := client.Blacklist()
	if err != nil {
		t.Fatalf("Blacklist: %v", err)
	}
	for _, kw := range list.Keywords {
		if kw == "Spotify" {
			t.Fatal("expected keyword removed")
		}
	}

	program, err := client.ToggleProgram()
	if err != nil || program.Active {
		t.Fatalf("ToggleProgram: resp=%#v err=%v", program, err)
	}
	tracking, err := client.ToggleTracking()
	if err != nil || !tracking.Active {
		t.Fatalf("ToggleTracking: resp=%#v err=%v", tracking, err)
	}

	lang, err := client.Language("")
	if err != nil {
		t.Fatalf("Language: %v", err)
	}
	if lang.Language != "fa" || !lang.RightToLeft {
		t.Fatalf("unexpected default language: %#v", lang)
	}
	lang, err = client.Language("en-US")
	if err != nil {
		t.Fatalf("Language set: %v", err)
	}
	if lang.Language != "en" || lang.Name != "English" || lang.RightToLeft {
		t.Fatalf("unexpected language after set: %#v", lang)
	}
	if _, err := client.Language("xx-invalid-tag"); err == nil {
		t.Fatal("expected unsupported language to fail")
	}
}

func TestIPCLogTail(t *testing.T) {
	client, logPath := startServer(t)

	if err := os.WriteFile(logPath, []byte("first\nsecond\nthird\n"), 0o644); err != nil {
		t.Fatalf("write log file: %v", err)
	}

	logResp, err := client.LogTail(ipc.LogTailRequest{Offset: -1, Limit: 2})
	if err != nil {
		t.Fatalf("LogTail initial failed: %v", err)
	}
	if len(logResp.Lines) != 2 || logResp.Lines[0] != "second" || logResp.Lines[1] != "third" {
		t.Fatalf("unexpected log tail response: %#v", logResp.Lines)
	}

	followDone := make(chan struct{})
	go func(offset int64) {
		defer close(followDone)
		resp, err := client.LogTail(ipc.LogTailRequest{Offset: offset, Follow: true, WaitMillis: 2000})
		if err != nil {
			t.Errorf("LogTail follow error: %v", err)
			return
		}
		if len(resp.Lines) != 1 || resp.Lines[0] != "fourth" {
			t.Errorf("unexpected follow lines: %#v", resp.Lines)
		}
	}(logResp.Offset)

	time.Sleep(100 * time.Millisecond)
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("append log: %v", err)
	}
	_, _ = f.WriteString("fourth\n")
	_ = f.Close()

	select {
	case <-followDone:
	case <-time.After(10 * time.Second):
		t.Fatal("log tail follow timed out")
	}
}
