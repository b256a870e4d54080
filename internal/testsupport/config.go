// Package testsupport provides shared helpers for package tests: temp-dir
// seeded configurations and a scripted snapd endpoint.
package testsupport

import (
	"path/filepath"
	"testing"

	"snapwatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Snapd.Socket = filepath.Join(base, "snapd.socket")
	cfg.Snapd.SnapSocket = filepath.Join(base, "snapd-snap.socket")
	cfg.Snapd.DesktopDir = filepath.Join(base, "applications")
	cfg.Logging.Level = "debug"

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithNtfyTopic sets the push notification topic on the test config.
func WithNtfyTopic(topic string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Notifications.NtfyTopic = topic
	}
}

// WithPollInterval overrides the change poll interval in milliseconds.
func WithPollInterval(millis int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Monitor.ChangePollMillis = millis
	}
}
