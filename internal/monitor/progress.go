package monitor

import (
	"snapwatch/internal/launcher"
	"snapwatch/internal/logging"
	"snapwatch/internal/snapd"
)

// progressEntry accumulates task counts for one snap across the changes
// refreshing it. Desktop entries are resolved once at creation; a snap
// without any simply never emits badge updates.
type progressEntry struct {
	totalTasks   int
	doneTasks    int
	lastProgress float64
	completed    bool
	desktopFiles []string
	remove       bool
}

func (m *Monitor) progressFor(name string) *progressEntry {
	if entry, ok := m.progress[name]; ok {
		return entry
	}
	entry := &progressEntry{
		lastProgress: -1,
		desktopFiles: m.lookup.FilesFor(name),
	}
	m.progress[name] = entry
	return entry
}

// updateDockProgress folds the change's tasks into the per-snap
// accumulators and emits badge updates for every accumulator whose fraction
// changed or completed. Counters reset after each pass so concurrent
// changes touching the same snap re-accumulate next cycle. Must run on the
// loop.
func (m *Monitor) updateDockProgress(change *snapd.Change, done, cancelled bool) {
	for _, task := range change.Tasks {
		if len(task.Data.AffectedSnaps) == 0 {
			continue
		}
		finished := taskDone(task.Status)
		for _, name := range task.Data.AffectedSnaps {
			entry := m.progressFor(name)
			entry.totalTasks++
			if finished {
				entry.doneTasks++
			}
			// Last task's state wins; tasks within a change are
			// ordered so the tail reflects the trailing work.
			entry.completed = finished
			if done || cancelled {
				entry.remove = true
			}
		}
	}

	for name, entry := range m.progress {
		if entry.totalTasks > 0 {
			fraction := float64(entry.doneTasks) / float64(entry.totalTasks)
			entry.totalTasks = 0
			entry.doneTasks = 0
			if (fraction != entry.lastProgress || entry.completed) && len(entry.desktopFiles) > 0 {
				update := launcher.Update{
					Progress:        fraction,
					ProgressVisible: !entry.completed,
					Updating:        !entry.completed,
				}
				for _, file := range entry.desktopFiles {
					m.badge.Update(file, update)
				}
				entry.lastProgress = fraction
			}
		}
		if entry.remove {
			delete(m.progress, name)
			m.logger.Debug("progress tracking finished", logging.String(logging.FieldSnap, name))
		}
	}
}
