package config

const (
	defaultStateDir = "~/.local/share/snapwatch"
	defaultLogDir   = "~/.local/share/snapwatch/logs"

	defaultSnapdSocket     = "/run/snapd.socket"
	defaultSnapdSnapSocket = "/run/snapd-snap.socket"
	defaultDesktopDir      = "/var/lib/snapd/desktop/applications"
	defaultRequestTimeout  = 15
	defaultNoticeWait      = 30

	defaultChangePollMillis      = 500
	defaultRestartCooldownMillis = 1000

	// Forced-refresh thresholds, in seconds. A pending refresh closer than
	// the notice threshold produces an individual warning unless the snap is
	// ignored; closer than the alert threshold it produces one regardless.
	defaultForcedRefreshNoticeSeconds = 7200
	defaultForcedRefreshAlertSeconds  = 3600

	defaultLogFormat = "console"
	defaultLogLevel  = "info"

	defaultNtfyRequestTimeout = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Snapd: Snapd{
			Socket:         defaultSnapdSocket,
			SnapSocket:     defaultSnapdSnapSocket,
			DesktopDir:     defaultDesktopDir,
			RequestTimeout: defaultRequestTimeout,
			NoticeWait:     defaultNoticeWait,
		},
		Monitor: Monitor{
			ChangePollMillis:           defaultChangePollMillis,
			RestartCooldownMillis:      defaultRestartCooldownMillis,
			ForcedRefreshNoticeSeconds: defaultForcedRefreshNoticeSeconds,
			ForcedRefreshAlertSeconds:  defaultForcedRefreshAlertSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNtfyRequestTimeout,
		},
	}
}
