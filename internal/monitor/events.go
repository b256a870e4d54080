package monitor

import (
	"log/slog"
	"time"

	"snapwatch/internal/logging"
	"snapwatch/internal/snapd"
)

// Sink receives the notification events the monitor emits. Implementations
// must not block; they are called from the monitor run loop.
type Sink interface {
	// PendingRefresh reports the full list of snaps currently awaiting a
	// refresh, letting the presentation layer show one grouped
	// notification.
	PendingRefresh(snaps []snapd.Snap)
	// PendingRefreshForced reports a single snap approaching its forced
	// refresh deadline. urgent marks snaps whose remaining time fell
	// below the individual-warning threshold while notifications were
	// not suppressed.
	PendingRefreshForced(snap snapd.Snap, remaining time.Duration, urgent bool)
	// RefreshComplete reports a finished refresh. snap is nil when the
	// post-refresh lookup failed; name is always set.
	RefreshComplete(snap *snapd.Snap, name string)
}

// MultiSink fans every event out to each member sink.
type MultiSink []Sink

func (m MultiSink) PendingRefresh(snaps []snapd.Snap) {
	for _, s := range m {
		s.PendingRefresh(snaps)
	}
}

func (m MultiSink) PendingRefreshForced(snap snapd.Snap, remaining time.Duration, urgent bool) {
	for _, s := range m {
		s.PendingRefreshForced(snap, remaining, urgent)
	}
}

func (m MultiSink) RefreshComplete(snap *snapd.Snap, name string) {
	for _, s := range m {
		s.RefreshComplete(snap, name)
	}
}

type logSink struct {
	logger *slog.Logger
}

// NewLogSink returns a Sink that records events in the log. It is the
// default sink when no notification transport is configured.
func NewLogSink(logger *slog.Logger) Sink {
	return &logSink{logger: logging.Default(logger).With(logging.String(logging.FieldComponent, "events"))}
}

func (s *logSink) PendingRefresh(snaps []snapd.Snap) {
	names := make([]string, 0, len(snaps))
	for _, snap := range snaps {
		names = append(names, snap.Name)
	}
	s.logger.Info("pending refresh",
		logging.String(logging.FieldEventType, "pending-refresh"),
		logging.Any("snaps", names),
	)
}

func (s *logSink) PendingRefreshForced(snap snapd.Snap, remaining time.Duration, urgent bool) {
	s.logger.Info("pending refresh forced",
		logging.String(logging.FieldEventType, "pending-refresh-forced"),
		logging.String(logging.FieldSnap, snap.Name),
		logging.Duration("remaining", remaining),
		logging.Bool("urgent", urgent),
	)
}

func (s *logSink) RefreshComplete(snap *snapd.Snap, name string) {
	attrs := []any{
		logging.String(logging.FieldEventType, "refresh-complete"),
		logging.String(logging.FieldSnap, name),
	}
	if snap != nil {
		attrs = append(attrs, logging.String("version", snap.Version))
	}
	s.logger.Info("refresh complete", attrs...)
}
