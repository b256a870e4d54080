package ipc

import "snapwatch/internal/monitor"

// StartRequest triggers daemon monitoring startup.
type StartRequest struct{}

// StartResponse indicates whether the daemon was started.
type StartResponse struct {
	Started bool   `json:"started"`
	Message string `json:"message"`
}

// StopRequest stops daemon monitoring.
type StopRequest struct{}

// StopResponse indicates stop result.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// SnapStatus mirrors the monitor's per-snap view for IPC callers.
type SnapStatus = monitor.SnapStatus

// StatusResponse represents combined daemon/monitor status information.
type StatusResponse struct {
	Running              bool         `json:"running"`
	PID                  int          `json:"pid"`
	LockPath             string       `json:"lock_path"`
	PrefsDBPath          string       `json:"prefs_db_path"`
	SnapdSocket          string       `json:"snapd_socket"`
	SubscriptionHealthy  bool         `json:"subscription_healthy"`
	SubscriptionRestarts int64        `json:"subscription_restarts"`
	Snaps                []SnapStatus `json:"snaps"`
	TrackedChanges       []string     `json:"tracked_changes"`
	DialogCount          int          `json:"dialog_count"`
}

// IgnoreRequest sets or clears notification suppression for a snap.
type IgnoreRequest struct {
	Snap    string `json:"snap"`
	Ignored bool   `json:"ignored"`
}

// IgnoreResponse reports the applied suppression state.
type IgnoreResponse struct {
	Snap    string `json:"snap"`
	Ignored bool   `json:"ignored"`
}

// IgnoredListRequest lists suppressed snaps.
type IgnoredListRequest struct{}

// IgnoredListResponse contains the suppressed snap names.
type IgnoredListResponse struct {
	Snaps []string `json:"snaps"`
}

// TestNotificationRequest triggers a notification test.
type TestNotificationRequest struct{}

// TestNotificationResponse reports notification test outcome.
type TestNotificationResponse struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}
