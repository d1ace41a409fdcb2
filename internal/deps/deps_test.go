package deps

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first requirement to be available, got %#v", results[0])
	}

	if results[1].Available {
		t.Fatalf("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatalf("expected detail message for missing binary")
	}

	if results[1].Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Command)
	}

	if results[0].Detail != "" {
		t.Fatalf("unexpected detail for available dependency: %s", results[0].Detail)
	}
}

func TestTitleRequirements(t *testing.T) {
	linux := TitleRequirements("linux", nil)
	if len(linux) != 2 || linux[0].Command != "xdotool" || !linux[0].Optional {
		t.Fatalf("unexpected linux requirements: %#v", linux)
	}
	darwin := TitleRequirements("darwin", nil)
	if len(darwin) != 1 || darwin[0].Command != "osascript" {
		t.Fatalf("unexpected darwin requirements: %#v", darwin)
	}
	if reqs := TitleRequirements("windows", nil); len(reqs) != 0 {
		t.Fatalf("expected no binaries on windows, got %#v", reqs)
	}

	custom := TitleRequirements("linux", []string{"my-title", "--flag"})
	if len(custom) != 1 || custom[0].Command != "my-title" || custom[0].Optional {
		t.Fatalf("expected configured command to replace platform tools, got %#v", custom)
	}
}
