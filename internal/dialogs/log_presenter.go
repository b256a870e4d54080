package dialogs

import (
	"log/slog"

	"snapwatch/internal/logging"
)

// logPresenter renders dialogs as log lines. It is the default headless
// presentation; a graphical frontend supplies its own Presenter.
type logPresenter struct {
	logger *slog.Logger
}

// NewLogPresenter returns a presenter that records dialog activity in the
// log.
func NewLogPresenter(logger *slog.Logger) Presenter {
	return &logPresenter{logger: logging.Default(logger).With(logging.String(logging.FieldComponent, "dialogs"))}
}

func (p *logPresenter) NewWindow() Window {
	p.logger.Info("refresh window opened")
	return &logWindow{logger: p.logger}
}

func (p *logPresenter) NewSurface(snapName, displayName, icon string) Surface {
	return &logSurface{logger: p.logger, snap: snapName, display: displayName}
}

type logWindow struct {
	logger *slog.Logger
}

func (w *logWindow) Attach(s Surface) {
	w.logger.Info("refresh dialog shown", logging.String(logging.FieldSnap, s.SnapName()))
}

func (w *logWindow) Detach(s Surface) {
	w.logger.Info("refresh dialog removed", logging.String(logging.FieldSnap, s.SnapName()))
}

func (w *logWindow) FitContents() {}

func (w *logWindow) Destroy() {
	w.logger.Info("refresh window closed")
}

type logSurface struct {
	logger  *slog.Logger
	snap    string
	display string
}

func (s *logSurface) SnapName() string { return s.snap }

func (s *logSurface) SetProgress(message string, done, total int) {
	s.logger.Debug("refresh dialog progress",
		logging.String(logging.FieldSnap, s.snap),
		logging.String("task", message),
		logging.Int("done", done),
		logging.Int("total", total),
	)
}
