package dialogs

// Surface is one snap's progress dialog.
type Surface interface {
	SnapName() string
	// SetProgress updates the dialog with the current task summary and the
	// done/total task counts.
	SetProgress(message string, done, total int)
}

// Window is the shared container holding surfaces.
type Window interface {
	Attach(Surface)
	Detach(Surface)
	// FitContents resets the window size so it shrinks around the
	// remaining dialogs.
	FitContents()
	Destroy()
}

// Presenter supplies concrete widget implementations.
type Presenter interface {
	NewWindow() Window
	NewSurface(snapName, displayName, icon string) Surface
}

// DismissHandler is invoked when the user dismisses a dialog.
type DismissHandler func(snapName string)

// HideHandler is invoked when the presentation layer hides or re-shows a
// dialog without an explicit dismissal.
type HideHandler func(snapName string, hidden bool)

// Manager owns the container window and the set of attached surfaces.
type Manager struct {
	presenter Presenter
	window    Window
	attached  map[Surface]struct{}
	onDismiss DismissHandler
	onHide    HideHandler
}

// NewManager constructs a manager over the given presenter.
func NewManager(presenter Presenter) *Manager {
	return &Manager{
		presenter: presenter,
		attached:  make(map[Surface]struct{}),
	}
}

// SetDismissHandler registers the callback for user-driven dismissal.
func (m *Manager) SetDismissHandler(handler DismissHandler) {
	m.onDismiss = handler
}

// SetHideHandler registers the callback for presentation-driven visibility
// changes.
func (m *Manager) SetHideHandler(handler HideHandler) {
	m.onHide = handler
}

// Show creates a surface for the snap and attaches it, creating the
// container window first when none exists.
func (m *Manager) Show(snapName, displayName, icon string) Surface {
	if m.window == nil {
		m.window = m.presenter.NewWindow()
	}
	surface := m.presenter.NewSurface(snapName, displayName, icon)
	m.window.Attach(surface)
	m.attached[surface] = struct{}{}
	return surface
}

// Remove detaches a surface. Detaching the last one destroys the window;
// otherwise the window is re-fit around the remaining dialogs. Removing a
// surface that is not attached is a no-op.
func (m *Manager) Remove(surface Surface) {
	if surface == nil {
		return
	}
	if _, ok := m.attached[surface]; !ok {
		return
	}
	delete(m.attached, surface)
	m.window.Detach(surface)
	if len(m.attached) == 0 {
		m.window.Destroy()
		m.window = nil
		return
	}
	m.window.FitContents()
}

// Dismiss reports a user-driven dismissal to the registered handler. The
// handler is responsible for calling Remove and recording that the snap was
// manually hidden.
func (m *Manager) Dismiss(snapName string) {
	if m.onDismiss != nil {
		m.onDismiss(snapName)
	}
}

// SetHidden reports a visibility change to the registered handler. The
// surface stays attached; a hidden dialog simply stops receiving updates
// until it is shown again.
func (m *Manager) SetHidden(snapName string, hidden bool) {
	if m.onHide != nil {
		m.onHide(snapName, hidden)
	}
}

// Count returns the number of attached dialogs.
func (m *Manager) Count() int {
	return len(m.attached)
}

// HasWindow reports whether the container window currently exists.
func (m *Manager) HasWindow() bool {
	return m.window != nil
}
