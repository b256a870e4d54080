package monitor

import (
	"context"
	"errors"

	"snapwatch/internal/logging"
	"snapwatch/internal/snapd"
)

// queryInhibited asks snapd for the snaps whose refresh is currently
// withheld and feeds the list back onto the loop. Must run on the loop.
func (m *Monitor) queryInhibited() {
	ctx := m.runCtx
	go func() {
		snaps, err := m.daemon.RefreshInhibited(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			m.logger.Warn("inhibited snaps query failed", logging.Error(err))
			return
		}
		if len(snaps) == 0 {
			return
		}
		m.post(func() { m.handleInhibitedSnaps(snaps) })
	}()
}

// handleInhibitedSnaps marks the reported snaps inhibited and decides which
// notification events to emit. Snaps close to their forced refresh get an
// individual warning; below the alert threshold the warning goes out even
// when notifications are suppressed. One grouped event covers the whole
// list so long as at least one snap is not suppressed. Must run on the
// loop.
func (m *Monitor) handleInhibitedSnaps(snaps []snapd.Snap) {
	now := m.now()
	anyNotIgnored := false
	for _, snap := range snaps {
		state := m.ensureSnap(snap.Name)
		state.inhibited = true
		remaining := snap.ProceedTime().Sub(now)
		if remaining <= m.noticeThreshold && !state.ignored {
			m.sink.PendingRefreshForced(snap, remaining, true)
		} else if remaining <= m.alertThreshold {
			m.sink.PendingRefreshForced(snap, remaining, false)
		}
		if !state.ignored {
			anyNotIgnored = true
		}
	}
	if anyNotIgnored {
		m.sink.PendingRefresh(snaps)
	}
}

// updateInhibitedSnaps drives the dialog lifecycle for the snaps named in
// an auto-refresh change. Must run on the loop.
func (m *Monitor) updateInhibitedSnaps(change *snapd.Change, done, cancelled bool) {
	for _, name := range change.Data.SnapNames {
		state, ok := m.snaps[name]
		if !ok || !state.inhibited {
			continue
		}
		if done || cancelled {
			m.dropSnap(name)
			if done {
				m.fetchRefreshComplete(name)
			}
			continue
		}
		if state.uiSuppressed() {
			continue
		}
		if state.dialog == nil {
			// Suppress duplicate inhibited notifications while the
			// dialog is constructed off-loop.
			state.ignored = true
			m.createDialog(name)
			continue
		}
		m.updateDialog(state, change)
	}
}

// fetchRefreshComplete resolves the refreshed snap's data and emits the
// completion event, falling back to the bare name when the lookup fails.
// Must run on the loop.
func (m *Monitor) fetchRefreshComplete(name string) {
	ctx := m.runCtx
	go func() {
		snap, err := m.daemon.GetSnap(ctx, name)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			m.logger.Warn("refreshed snap lookup failed",
				logging.String(logging.FieldSnap, name),
				logging.Error(err),
			)
			snap = nil
		}
		m.post(func() { m.sink.RefreshComplete(snap, name) })
	}()
}

// createDialog fetches the snap's data and builds its progress dialog once
// the fetch lands back on the loop. The fetch is advisory; the dialog is
// created from the desktop entry (or the raw name) even when it fails.
// Must run on the loop.
func (m *Monitor) createDialog(name string) {
	ctx := m.runCtx
	go func() {
		snap, err := m.daemon.GetSnap(ctx, name)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			m.logger.Debug("snap lookup for dialog failed",
				logging.String(logging.FieldSnap, name),
				logging.Error(err),
			)
		}
		m.post(func() { m.attachDialog(name, snap) })
	}()
}

// attachDialog creates and attaches the snap's progress surface. The
// registry entry may have been removed or dismissed while the snap data
// was in flight, in which case nothing happens. Must run on the loop.
func (m *Monitor) attachDialog(name string, snap *snapd.Snap) {
	state, ok := m.snaps[name]
	if !ok || !state.inhibited || state.uiSuppressed() || state.dialog != nil {
		return
	}
	info := m.lookup.AppInfo(name)
	state.dialog = m.dialogs.Show(name, info.DisplayName, info.Icon)
	attrs := []any{
		logging.String(logging.FieldSnap, name),
		logging.String("display_name", info.DisplayName),
	}
	if snap != nil {
		attrs = append(attrs, logging.String("version", snap.Version))
	}
	m.logger.Info("refresh dialog shown", attrs...)
}

// updateDialog refreshes an existing dialog from the change's task list:
// the summary of the first task currently running, and the done/total task
// counts. A snapshot caught between tasks has no running task; the dialog
// keeps its last message and counts until the next one starts. Must run on
// the loop.
func (m *Monitor) updateDialog(state *snapState, change *snapd.Change) {
	var message string
	doneTasks := 0
	for _, task := range change.Tasks {
		if message == "" && task.Status == snapd.StatusDoing {
			message = task.Summary
		}
		if taskDone(task.Status) {
			doneTasks++
		}
	}
	if message == "" {
		return
	}
	state.dialog.SetProgress(message, doneTasks, len(change.Tasks))
}
