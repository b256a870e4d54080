package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"snapwatch/internal/config"
)

func TestDefaultValues(t *testing.T) {
	cfg := config.Default()
	if cfg.Monitor.ChangePollMillis != 500 {
		t.Fatalf("expected 500ms change poll default, got %d", cfg.Monitor.ChangePollMillis)
	}
	if cfg.Monitor.RestartCooldownMillis != 1000 {
		t.Fatalf("expected 1000ms restart cooldown default, got %d", cfg.Monitor.RestartCooldownMillis)
	}
	if cfg.Monitor.ForcedRefreshAlertSeconds > cfg.Monitor.ForcedRefreshNoticeSeconds {
		t.Fatalf("alert threshold %d must not exceed notice threshold %d",
			cfg.Monitor.ForcedRefreshAlertSeconds, cfg.Monitor.ForcedRefreshNoticeSeconds)
	}
	if cfg.Snapd.Socket != "/run/snapd.socket" {
		t.Fatalf("unexpected default snapd socket %q", cfg.Snapd.Socket)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.toml")
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if exists {
		t.Fatalf("expected missing config to report exists=false")
	}
	if resolved != path {
		t.Fatalf("expected resolved path %q, got %q", path, resolved)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("expected default log level, got %q", cfg.Logging.Level)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := strings.Join([]string{
		"[monitor]",
		"change_poll_ms = 250",
		"[logging]",
		"level = \"DEBUG\"",
		"[notifications]",
		"ntfy_topic = \"  https://ntfy.sh/demo  \"",
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !exists {
		t.Fatalf("expected config to exist")
	}
	if cfg.Monitor.ChangePollMillis != 250 {
		t.Fatalf("expected 250ms poll interval, got %d", cfg.Monitor.ChangePollMillis)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected lowered log level, got %q", cfg.Logging.Level)
	}
	if cfg.Notifications.NtfyTopic != "https://ntfy.sh/demo" {
		t.Fatalf("expected trimmed ntfy topic, got %q", cfg.Notifications.NtfyTopic)
	}
	if cfg.Monitor.RestartCooldownMillis != 1000 {
		t.Fatalf("expected cooldown default to survive partial config, got %d", cfg.Monitor.RestartCooldownMillis)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "bad log format",
			body: "[logging]\nformat = \"yaml\"",
		},
		{
			name: "relative snapd socket",
			body: "[snapd]\nsocket = \"run/snapd.socket\"",
		},
		{
			name: "alert above notice threshold",
			body: "[monitor]\nforced_refresh_notice_seconds = 100\nforced_refresh_alert_seconds = 200",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestSnapdSocketPathHonoursSandboxMarker(t *testing.T) {
	cfg := config.Default()

	t.Setenv("SNAP_NAME", "")
	os.Unsetenv("SNAP_NAME")
	if got := cfg.SnapdSocketPath(); got != cfg.Snapd.Socket {
		t.Fatalf("expected host socket, got %q", got)
	}

	t.Setenv("SNAP_NAME", "snapwatch")
	if got := cfg.SnapdSocketPath(); got != cfg.Snapd.SnapSocket {
		t.Fatalf("expected sandbox socket, got %q", got)
	}
}

func TestSampleConfigParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(config.SampleConfig()), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config should load cleanly: %v", err)
	}
	defaults := config.Default()
	if cfg.Monitor != defaults.Monitor {
		t.Fatalf("sample monitor section should match defaults: %+v != %+v", cfg.Monitor, defaults.Monitor)
	}
}
