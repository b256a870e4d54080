package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Snapd contains configuration for the snapd daemon connection.
type Snapd struct {
	Socket         string `toml:"socket"`
	SnapSocket     string `toml:"snap_socket"`
	DesktopDir     string `toml:"desktop_dir"`
	RequestTimeout int    `toml:"request_timeout"`
	NoticeWait     int    `toml:"notice_wait"`
}

// Monitor contains timing and threshold configuration for refresh tracking.
type Monitor struct {
	ChangePollMillis           int `toml:"change_poll_ms"`
	RestartCooldownMillis      int `toml:"restart_cooldown_ms"`
	ForcedRefreshNoticeSeconds int `toml:"forced_refresh_notice_seconds"`
	ForcedRefreshAlertSeconds  int `toml:"forced_refresh_alert_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Config encapsulates all configuration values for snapwatch.
//
// Configuration sections by subsystem:
//   - Paths: state and log directories (IPC socket and preference store live
//     under the state directory)
//   - Snapd: socket locations, desktop entry directory, request timing
//   - Monitor: change poll interval, subscription restart cooldown, and
//     forced-refresh notification thresholds
//   - Logging: log format and level
//   - Notifications: optional ntfy push notification settings
type Config struct {
	Paths         Paths         `toml:"paths"`
	Snapd         Snapd         `toml:"snapd"`
	Monitor       Monitor       `toml:"monitor"`
	Logging       Logging       `toml:"logging"`
	Notifications Notifications `toml:"notifications"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/snapwatch/config.toml")
}

// SampleConfig returns the embedded sample configuration document.
func SampleConfig() string {
	return sampleConfig
}

// CreateSample writes the embedded sample configuration to path.
func CreateSample(path string) error {
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("snapwatch.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the daemon needs at runtime.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// SocketPath returns the IPC socket path for daemon control.
func (c *Config) SocketPath() string {
	return filepath.Join(c.Paths.StateDir, "snapwatch.sock")
}

// SnapdSocketPath returns the snapd socket to connect to, honouring the
// sandbox marker: when the process itself runs as a snap, snapd exposes a
// dedicated socket for confined clients.
func (c *Config) SnapdSocketPath() string {
	if InSandbox() {
		return c.Snapd.SnapSocket
	}
	return c.Snapd.Socket
}

// InSandbox reports whether the process runs inside a snap sandbox.
func InSandbox() bool {
	return os.Getenv("SNAP_NAME") != ""
}

// ExpandPath resolves a leading ~ and relative segments to an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, trimmed[2:]), nil
	}
	return filepath.Abs(trimmed)
}
