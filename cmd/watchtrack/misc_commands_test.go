package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"watchtrack/internal/api"
	"watchtrack/internal/testsupport"
)

func TestNormalizeCommand(t *testing.T) {
	tests := []struct {
		raw         string
		wantTitle   string
		wantEpisode string
	}{
		{raw: "VLC - Frieren E12 [1080p]", wantTitle: "Frieren", wantEpisode: "E12"},
		{raw: "Show A | Extra Info", wantTitle: "Show A"},
	}
	for _, tc := range tests {
		out, _, err := runCLI(t, []string{"normalize", "--json", tc.raw}, "", "")
		if err != nil {
			t.Fatalf("normalize %q: %v", tc.raw, err)
		}
		var got struct {
			Title   string `json:"title"`
			Episode string `json:"episode"`
		}
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("decode normalize output: %v", err)
		}
		if got.Title != tc.wantTitle || got.Episode != tc.wantEpisode {
			t.Fatalf("normalize %q = (%q, %q), want (%q, %q)", tc.raw, got.Title, got.Episode, tc.wantTitle, tc.wantEpisode)
		}
	}
}

func TestExportWritesYAMLFile(t *testing.T) {
	env := setupCLITestEnv(t)
	seedRecord(t, env.service, "Frieren", "E12", 42)

	target := filepath.Join(testsupport.BaseDir(env.cfg), "export", "records.yaml")
	_, stderr, err := runCLI(t, []string{"export", "--format", "yaml", "--output", target}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, stderr, "Exported 1 records")

	var records []exportRecord
	if err := yaml.Unmarshal([]byte(testsupport.ReadFile(t, target)), &records); err != nil {
		t.Fatalf("decode yaml export: %v", err)
	}
	if len(records) != 1 || records[0].Title != "Frieren" || records[0].MinutesWatched != 42 {
		t.Fatalf("unexpected export: %#v", records)
	}
	if records[0].ResumePosition != nil {
		t.Fatalf("expected null resume position, got %q", *records[0].ResumePosition)
	}
}

func TestExportJSONToStdout(t *testing.T) {
	env := setupCLITestEnv(t)
	seedRecord(t, env.service, "Dune", "", 95)

	out, _, err := runCLI(t, []string{"export"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, out, `"total_minutes_watched": 95`)
	requireContains(t, out, `"resume_position": null`)

	if _, _, err := runCLI(t, []string{"export", "--format", "csv"}, env.socketPath, env.configPath); err == nil {
		t.Fatal("expected unsupported format to fail")
	}
}

func TestLogsCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	for _, line := range []string{"first entry", "second entry", "third entry"} {
		if err := appendLine(env.logPath, line); err != nil {
			t.Fatalf("append log: %v", err)
		}
	}

	out, _, err := runCLI(t, []string{"logs", "-n", "2"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("logs: %v", err)
	}
	if strings.Contains(out, "first entry") {
		t.Fatalf("expected only the last two lines, got %q", out)
	}
	requireContains(t, out, "second entry")
	requireContains(t, out, "third entry")
}

func TestLogsRequiresDaemon(t *testing.T) {
	cfg, configPath := setupCLIConfig(t)
	_, _, err := runCLI(t, []string{"logs"}, missingSocket(cfg), configPath)
	if err == nil {
		t.Fatal("expected logs to fail without a daemon")
	}
	requireContains(t, err.Error(), "watchtrack start")
}

func TestStatusOfflineJSON(t *testing.T) {
	cfg, configPath := setupCLIConfig(t)
	out, _, err := runCLI(t, []string{"status", "--json"}, missingSocket(cfg), configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	var snapshot api.StatusSnapshot
	if err := json.Unmarshal([]byte(out), &snapshot); err != nil {
		t.Fatalf("decode status: %v", err)
	}
	if snapshot.Daemon.Running {
		t.Fatal("expected daemon reported as not running")
	}
	if snapshot.Daemon.Backend != cfg.Storage.Backend {
		t.Fatalf("expected backend %q, got %q", cfg.Storage.Backend, snapshot.Daemon.Backend)
	}
	if len(snapshot.SystemChecks) == 0 {
		t.Fatal("expected system checks")
	}
}

func TestStatusRendersSections(t *testing.T) {
	env := setupCLITestEnv(t)
	seedRecord(t, env.service, "Frieren", "E12", 42)

	out, _, err := runCLI(t, []string{"status"}, env.socketPath, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "== System Status ==")
	requireContains(t, out, "== Dependencies ==")
	requireContains(t, out, "== Records ==")
	requireContains(t, out, "0h 42m")
}

func TestConfigInitAndValidate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "watchtrack", "config.toml")

	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target}, "", ""); err == nil {
		t.Fatal("expected init to refuse overwriting")
	}

	out, _, err = runCLI(t, []string{"config", "validate"}, "", target)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config path: "+target)
	requireContains(t, out, "Configuration valid")
}
