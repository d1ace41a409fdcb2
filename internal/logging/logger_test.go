package logging_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"watchtrack/internal/config"
	"watchtrack/internal/logging"
)

func TestNewFromConfigConsole(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Level = "debug"

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	if logger == nil {
		t.Fatal("expected logger instance")
	}
	logger.Debug("debug message")
}

func TestConsoleLoggerOmitsCallerForInfo(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-info.log")

	logger, err := logging.New(logging.Options{
		Format:           "console",
		Level:            "info",
		OutputPaths:      []string{logPath},
		ErrorOutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.NewComponentLogger(logger, "sampler").Info("message without caller", logging.String(logging.FieldTitle, "Show A"))

	content := readFile(t, logPath)
	if strings.Contains(content, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
	if !strings.Contains(content, "INFO sampler: message without caller") {
		t.Fatalf("expected component prefix in console line, got %q", content)
	}
	if !strings.Contains(content, `title="Show A"`) {
		t.Fatalf("expected quoted title attribute, got %q", content)
	}
}

func TestConsoleLoggerIncludesCallerForDebug(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console-debug.log")

	logger, err := logging.New(logging.Options{
		Format:           "console",
		Level:            "debug",
		OutputPaths:      []string{logPath},
		ErrorOutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger.Info("message with caller")

	if content := readFile(t, logPath); !strings.Contains(content, ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestJSONLoggerRenamesKeysAndAddsSession(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")

	logger, err := logging.New(logging.Options{
		Format:      "json",
		Level:       "info",
		OutputPaths: []string{logPath},
		SessionID:   "session-1",
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("json message", logging.String("k", "v"))

	var entry map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readFile(t, logPath))), &entry); err != nil {
		t.Fatalf("decode json log: %v", err)
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", entry)
	}
	if entry["level"] != "info" {
		t.Fatalf("expected lowercase level, got %v", entry["level"])
	}
	if entry[logging.FieldSessionID] != "session-1" {
		t.Fatalf("expected session id, got %v", entry[logging.FieldSessionID])
	}
	if entry["k"] != "v" {
		t.Fatalf("expected attribute k=v, got %v", entry["k"])
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestWarnWithContextFillsDefaults(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "warn.log")
	logger, err := logging.New(logging.Options{Format: "json", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logging.WarnWithContext(logger, "storage slow", "storage_slow", logging.String(logging.FieldImpact, "samples delayed"))

	content := readFile(t, logPath)
	for _, want := range []string{`"event_type":"storage_slow"`, `"error_hint":"check logs for details"`, `"impact":"samples delayed"`} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %s in %s", want, content)
		}
	}
}

func TestWithContextAddsCorrelationID(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "ctx.log")
	logger, err := logging.New(logging.Options{Format: "json", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithRequestID(context.Background(), "req-xyz")
	logging.WithContext(ctx, logger).Info("contextual log")

	if content := readFile(t, logPath); !strings.Contains(content, `"correlation_id":"req-xyz"`) {
		t.Fatalf("expected correlation id in %s", content)
	}
	if logging.WithContext(context.Background(), logger) != logger {
		t.Fatal("expected logger to be returned unchanged without context fields")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("expected nop logger to be disabled")
	}
	logging.ErrorWithContext(nil, "ignored", "ignored")
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	oldLog := filepath.Join(dir, "watchtrack-old.log")
	current := filepath.Join(dir, "watchtrack-current.log")
	other := filepath.Join(dir, "notes.txt")
	for _, path := range []string{oldLog, current, other} {
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	past := time.Now().AddDate(0, 0, -10)
	for _, path := range []string{oldLog, current, other} {
		if err := os.Chtimes(path, past, past); err != nil {
			t.Fatalf("chtimes %s: %v", path, err)
		}
	}

	removed := logging.CleanupOldLogs(logging.NewNop(), 5,
		logging.RetentionTarget{Dir: dir, Pattern: "watchtrack-*.log", Exclude: []string{current}},
	)
	if removed != 1 {
		t.Fatalf("expected 1 removed file, got %d", removed)
	}
	if _, err := os.Stat(oldLog); !os.IsNotExist(err) {
		t.Fatalf("expected old log removed, stat err=%v", err)
	}
	for _, path := range []string{current, other} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected %s to remain: %v", path, err)
		}
	}

	if removed := logging.CleanupOldLogs(nil, 0, logging.RetentionTarget{Dir: dir}); removed != 0 {
		t.Fatalf("expected retention 0 to disable pruning, got %d", removed)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}
