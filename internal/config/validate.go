package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSnapd(); err != nil {
		return err
	}
	if err := c.validateMonitor(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSnapd() error {
	if !strings.HasPrefix(c.Snapd.Socket, "/") {
		return fmt.Errorf("snapd.socket must be an absolute path, got %q", c.Snapd.Socket)
	}
	if !strings.HasPrefix(c.Snapd.SnapSocket, "/") {
		return fmt.Errorf("snapd.snap_socket must be an absolute path, got %q", c.Snapd.SnapSocket)
	}
	if !strings.HasPrefix(c.Snapd.DesktopDir, "/") {
		return fmt.Errorf("snapd.desktop_dir must be an absolute path, got %q", c.Snapd.DesktopDir)
	}
	return nil
}

func (c *Config) validateMonitor() error {
	if c.Monitor.ForcedRefreshAlertSeconds > c.Monitor.ForcedRefreshNoticeSeconds {
		return errors.New("monitor.forced_refresh_alert_seconds must not exceed monitor.forced_refresh_notice_seconds")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
