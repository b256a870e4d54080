package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSnapd()
	c.normalizeMonitor()
	c.normalizeLogging()
	c.normalizeNotifications()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = ExpandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = ExpandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSnapd() {
	c.Snapd.Socket = strings.TrimSpace(c.Snapd.Socket)
	if c.Snapd.Socket == "" {
		c.Snapd.Socket = defaultSnapdSocket
	}
	c.Snapd.SnapSocket = strings.TrimSpace(c.Snapd.SnapSocket)
	if c.Snapd.SnapSocket == "" {
		c.Snapd.SnapSocket = defaultSnapdSnapSocket
	}
	c.Snapd.DesktopDir = strings.TrimSpace(c.Snapd.DesktopDir)
	if c.Snapd.DesktopDir == "" {
		c.Snapd.DesktopDir = defaultDesktopDir
	}
	if c.Snapd.RequestTimeout <= 0 {
		c.Snapd.RequestTimeout = defaultRequestTimeout
	}
	if c.Snapd.NoticeWait <= 0 {
		c.Snapd.NoticeWait = defaultNoticeWait
	}
}

func (c *Config) normalizeMonitor() {
	if c.Monitor.ChangePollMillis <= 0 {
		c.Monitor.ChangePollMillis = defaultChangePollMillis
	}
	if c.Monitor.RestartCooldownMillis <= 0 {
		c.Monitor.RestartCooldownMillis = defaultRestartCooldownMillis
	}
	if c.Monitor.ForcedRefreshNoticeSeconds <= 0 {
		c.Monitor.ForcedRefreshNoticeSeconds = defaultForcedRefreshNoticeSeconds
	}
	if c.Monitor.ForcedRefreshAlertSeconds <= 0 {
		c.Monitor.ForcedRefreshAlertSeconds = defaultForcedRefreshAlertSeconds
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNtfyRequestTimeout
	}
}
