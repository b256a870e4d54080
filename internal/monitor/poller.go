package monitor

import (
	"context"
	"errors"
	"time"

	"snapwatch/internal/logging"
	"snapwatch/internal/snapd"
)

// pollChange fetches a change asynchronously and feeds the result back onto
// the loop. A canceled fetch is dropped silently; other errors abandon this
// poll cycle without retrying. Must run on the loop.
func (m *Monitor) pollChange(id string) {
	ctx := m.runCtx
	go func() {
		change, err := m.daemon.GetChange(ctx, id)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			m.logger.Warn("change fetch failed",
				logging.String(logging.FieldChangeID, id),
				logging.Error(err),
			)
			return
		}
		m.post(func() { m.handleChange(change) })
	}()
}

// handleChange classifies the change, routes it to the inhibited-refresh
// and progress layers, and schedules the next poll while the change is
// still in flight. Must run on the loop.
func (m *Monitor) handleChange(change *snapd.Change) {
	done := change.Status == snapd.StatusDone
	cancelled := changeCancelled(change.Status)
	working := changeWorking(change.Status)

	if !working && !cancelled {
		m.logger.Debug("unknown change status, dropping change",
			logging.String(logging.FieldChangeID, change.ID),
			logging.String("status", change.Status),
		)
		return
	}

	if change.Kind == snapd.KindAutoRefresh {
		m.updateInhibitedSnaps(change, done, cancelled)
	}
	m.updateDockProgress(change, done, cancelled)

	if done || cancelled {
		return
	}
	if _, scheduled := m.timers[change.ID]; scheduled {
		return
	}
	id := change.ID
	m.timers[id] = time.AfterFunc(m.pollInterval, func() {
		m.post(func() {
			// The registration is cleared before re-polling so the
			// resulting handleChange may schedule the next cycle.
			delete(m.timers, id)
			m.pollChange(id)
		})
	})
}

func changeCancelled(status string) bool {
	switch status {
	case snapd.StatusUndoing, snapd.StatusUndone, snapd.StatusUndo, snapd.StatusError:
		return true
	}
	return false
}

func changeWorking(status string) bool {
	switch status {
	case snapd.StatusDo, snapd.StatusDoing, snapd.StatusDone:
		return true
	}
	return false
}

// taskDone reports whether a task has reached a terminal state.
func taskDone(status string) bool {
	switch status {
	case snapd.StatusDone, snapd.StatusAbort, snapd.StatusError,
		snapd.StatusHold, snapd.StatusWait, snapd.StatusUndone:
		return true
	}
	return false
}
