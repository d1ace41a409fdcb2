package main

import (
	"encoding/json"
	"strings"
	"testing"

	"watchtrack/internal/testsupport"
)

func TestBlacklistCommandsThroughDaemon(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"blacklist", "check", "VLC - Frieren E12"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if strings.TrimSpace(out) != "not blacklisted" {
		t.Fatalf("expected title to be allowed, got %q", out)
	}

	out, _, err = runCLI(t, []string{"blacklist", "add", "frieren"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	requireContains(t, out, `Added "frieren"`)

	out, _, err = runCLI(t, []string{"blacklist", "add", "frieren"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	requireContains(t, out, "already blacklisted")

	out, _, err = runCLI(t, []string{"blacklist", "check", "VLC - Frieren E12"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("check after add: %v", err)
	}
	if strings.TrimSpace(out) != "blacklisted" {
		t.Fatalf("expected case-insensitive match, got %q", out)
	}

	out, _, err = runCLI(t, []string{"blacklist", "list", "--json"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var keywords []string
	if err := json.Unmarshal([]byte(out), &keywords); err != nil {
		t.Fatalf("decode keywords: %v", err)
	}
	if keywords[len(keywords)-1] != "frieren" {
		t.Fatalf("expected new keyword appended last, got %v", keywords)
	}

	out, _, err = runCLI(t, []string{"blacklist", "remove", "frieren"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	requireContains(t, out, `Removed "frieren"`)

	if _, _, err := runCLI(t, []string{"blacklist", "add", "  "}, env.socketPath, env.configPath); err == nil {
		t.Fatal("expected blank keyword to be rejected")
	}
}

func TestBlacklistPersistsWithoutDaemon(t *testing.T) {
	cfg, configPath := setupCLIConfig(t)
	socket := missingSocket(cfg)

	if _, _, err := runCLI(t, []string{"blacklist", "add", "Trailer"}, socket, configPath); err != nil {
		t.Fatalf("add offline: %v", err)
	}
	requireContains(t, testsupport.ReadFile(t, cfg.Paths.SettingsFile), "Trailer")

	out, _, err := runCLI(t, []string{"blacklist", "list"}, socket, configPath)
	if err != nil {
		t.Fatalf("list offline: %v", err)
	}
	requireContains(t, out, "Trailer")
}
