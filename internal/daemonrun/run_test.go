package daemonrun

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

func TestEnsureCurrentLogPointerReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "watchtrack-1.log")
	second := filepath.Join(dir, "watchtrack-2.log")
	for _, path := range []string{first, second} {
		if err := os.WriteFile(path, []byte(filepath.Base(path)), 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
	}
	pointer := filepath.Join(dir, "watchtrack.log")

	if err := ensureCurrentLogPointer(pointer, first); err != nil {
		t.Fatalf("first pointer: %v", err)
	}
	if err := ensureCurrentLogPointer(pointer, second); err != nil {
		t.Fatalf("second pointer: %v", err)
	}
	data, err := os.ReadFile(pointer)
	if err != nil {
		t.Fatalf("read pointer: %v", err)
	}
	if string(data) != "watchtrack-2.log" {
		t.Fatalf("pointer resolves to %q", data)
	}
	if err := ensureCurrentLogPointer("", second); err != nil {
		t.Fatalf("empty pointer should be a no-op: %v", err)
	}
}

func TestWritePIDFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchtrack.pid")
	if err := writePIDFile(path); err != nil {
		t.Fatalf("writePIDFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read pid: %v", err)
	}
	if strings.TrimSpace(string(data)) != strconv.Itoa(os.Getpid()) {
		t.Fatalf("unexpected pid file content %q", data)
	}
}

func TestRunRequiresConfig(t *testing.T) {
	if err := Run(context.Background(), nil, Options{}); err == nil {
		t.Fatal("expected error without config")
	}
}
