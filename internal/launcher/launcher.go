// Package launcher defines the badge sink that receives per-desktop-entry
// refresh progress.
//
// The actual transport (the com.canonical.Unity.LauncherEntry D-Bus
// interface on Unity-style docks) is deliberately out of scope; the Entry
// interface is the contract point and the slog-backed implementation is the
// default wiring, useful headless and in tests.
package launcher

import (
	"log/slog"

	"snapwatch/internal/logging"
)

// Update is the structured progress payload for one desktop entry.
type Update struct {
	Progress        float64
	ProgressVisible bool
	Updating        bool
}

// Entry accepts badge updates addressed by desktop entry file name.
type Entry interface {
	Update(desktopFile string, update Update)
}

type logEntry struct {
	logger *slog.Logger
}

// NewLogEntry returns an Entry that records updates in the log.
func NewLogEntry(logger *slog.Logger) Entry {
	return &logEntry{logger: logging.Default(logger).With(logging.String(logging.FieldComponent, "launcher"))}
}

func (e *logEntry) Update(desktopFile string, update Update) {
	e.logger.Debug("launcher entry update",
		logging.String("desktop_file", desktopFile),
		logging.Float64("progress", update.Progress),
		logging.Bool("progress_visible", update.ProgressVisible),
		logging.Bool("updating", update.Updating),
	)
}
