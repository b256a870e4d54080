package monitor

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"snapwatch/internal/config"
	"snapwatch/internal/desktop"
	"snapwatch/internal/dialogs"
	"snapwatch/internal/launcher"
	"snapwatch/internal/logging"
	"snapwatch/internal/snapd"
)

// Daemon is the slice of the snapd client the monitor needs. *snapd.Client
// satisfies it.
type Daemon interface {
	GetChange(ctx context.Context, id string) (*snapd.Change, error)
	GetSnap(ctx context.Context, name string) (*snapd.Snap, error)
	RefreshInhibited(ctx context.Context) ([]snapd.Snap, error)
}

// DesktopLookup resolves desktop entries for snaps. *desktop.Lookup
// satisfies it.
type DesktopLookup interface {
	FilesFor(snap string) []string
	AppInfo(snap string) desktop.AppInfo
}

// Monitor is the refresh tracking core. All fields below the calls channel
// are owned by the run loop and must only be touched from it.
type Monitor struct {
	daemon  Daemon
	lookup  DesktopLookup
	badge   launcher.Entry
	dialogs *dialogs.Manager
	sink    Sink
	logger  *slog.Logger

	pollInterval    time.Duration
	noticeThreshold time.Duration
	alertThreshold  time.Duration

	calls   chan func()
	stopped chan struct{}
	now     func() time.Time

	runCtx   context.Context
	snaps    map[string]*snapState
	timers   map[string]*time.Timer
	progress map[string]*progressEntry
}

// New constructs a monitor wired to the given collaborators. The dialog
// manager's dismiss handler is taken over by the monitor.
func New(cfg *config.Config, daemon Daemon, lookup DesktopLookup, badge launcher.Entry, dialogMgr *dialogs.Manager, sink Sink, logger *slog.Logger) *Monitor {
	m := &Monitor{
		daemon:          daemon,
		lookup:          lookup,
		badge:           badge,
		dialogs:         dialogMgr,
		sink:            sink,
		logger:          logging.Default(logger).With(logging.String(logging.FieldComponent, "monitor")),
		pollInterval:    time.Duration(cfg.Monitor.ChangePollMillis) * time.Millisecond,
		noticeThreshold: time.Duration(cfg.Monitor.ForcedRefreshNoticeSeconds) * time.Second,
		alertThreshold:  time.Duration(cfg.Monitor.ForcedRefreshAlertSeconds) * time.Second,
		calls:           make(chan func(), 64),
		stopped:         make(chan struct{}),
		now:             time.Now,
		snaps:           make(map[string]*snapState),
		timers:          make(map[string]*time.Timer),
		progress:        make(map[string]*progressEntry),
	}
	dialogMgr.SetDismissHandler(func(snapName string) {
		m.post(func() { m.dismissSnap(snapName) })
	})
	dialogMgr.SetHideHandler(func(snapName string, hidden bool) {
		m.post(func() { m.hideSnap(snapName, hidden) })
	})
	return m
}

// Run drains the loop until the context is canceled. It must be running for
// HandleNotice and Snapshot to make progress.
func (m *Monitor) Run(ctx context.Context) {
	m.runCtx = ctx
	defer close(m.stopped)
	for {
		select {
		case <-ctx.Done():
			m.shutdown()
			return
		case f := <-m.calls:
			f()
		}
	}
}

func (m *Monitor) shutdown() {
	for id, timer := range m.timers {
		timer.Stop()
		delete(m.timers, id)
	}
}

// post queues f onto the run loop. Once the loop has exited, posts are
// dropped.
func (m *Monitor) post(f func()) {
	select {
	case m.calls <- f:
	case <-m.stopped:
	}
}

// HandleNotice dispatches one notice from the subscription. Change-update
// notices from the first listing after a (re)connect report history and are
// skipped; only refresh-kind changes are polled.
func (m *Monitor) HandleNotice(notice snapd.Notice, firstRun bool) {
	switch notice.Type {
	case snapd.NoticeChangeUpdate:
		if firstRun {
			m.logger.Debug("skipping historical change notice",
				logging.String(logging.FieldChangeID, notice.Key),
			)
			return
		}
		kind := notice.LastData["kind"]
		if kind != snapd.KindAutoRefresh && kind != snapd.KindRefreshSnap {
			return
		}
		changeID := notice.Key
		m.post(func() { m.pollChange(changeID) })
	case snapd.NoticeRefreshInhibit:
		m.post(func() { m.queryInhibited() })
	case snapd.NoticeSnapRunInhibit:
		// Accepted for forward compatibility; snapd does not emit it
		// yet and there is no per-snap behavior to attach.
		m.logger.Debug("ignoring snap-run-inhibit notice",
			logging.String(logging.FieldSnap, notice.Key),
		)
	default:
		m.logger.Debug("unhandled notice type",
			logging.String(logging.FieldNoticeType, notice.Type),
		)
	}
}

// IgnoreSnap sets or clears the snap's notification suppression flag. The
// daemon calls this for user requests and when replaying persisted
// preferences at startup.
func (m *Monitor) IgnoreSnap(name string, ignored bool) {
	m.post(func() {
		m.ensureSnap(name).ignored = ignored
	})
}

// dismissSnap records a user-driven dialog dismissal. The entry is retained
// so later inhibited notices stay suppressed.
func (m *Monitor) dismissSnap(name string) {
	state, ok := m.snaps[name]
	if !ok {
		return
	}
	state.manuallyHidden = true
	if state.dialog != nil {
		m.dialogs.Remove(state.dialog)
		state.dialog = nil
	}
	m.logger.Info("dialog dismissed", logging.String(logging.FieldSnap, name))
}

// hideSnap records a presentation-driven visibility change. Unlike
// dismissal, the dialog handle is kept; a re-shown dialog resumes updates
// with the next change poll.
func (m *Monitor) hideSnap(name string, hidden bool) {
	state, ok := m.snaps[name]
	if !ok {
		return
	}
	state.hidden = hidden
}

// Status is a point-in-time view of the monitor state, exported over IPC.
type Status struct {
	Snaps          []SnapStatus `json:"snaps"`
	TrackedChanges []string     `json:"tracked_changes"`
	DialogCount    int          `json:"dialog_count"`
}

// Snapshot captures the current state from the run loop. It returns an
// empty status after the loop has stopped.
func (m *Monitor) Snapshot() Status {
	reply := make(chan Status, 1)
	m.post(func() {
		status := Status{DialogCount: m.dialogs.Count()}
		for _, state := range m.snaps {
			status.Snaps = append(status.Snaps, SnapStatus{
				Name:           state.name,
				Inhibited:      state.inhibited,
				Ignored:        state.ignored,
				ManuallyHidden: state.manuallyHidden,
				HasDialog:      state.dialog != nil,
			})
		}
		sort.Slice(status.Snaps, func(i, j int) bool {
			return status.Snaps[i].Name < status.Snaps[j].Name
		})
		for id := range m.timers {
			status.TrackedChanges = append(status.TrackedChanges, id)
		}
		sort.Strings(status.TrackedChanges)
		reply <- status
	})
	select {
	case status := <-reply:
		return status
	case <-m.stopped:
		return Status{}
	}
}
