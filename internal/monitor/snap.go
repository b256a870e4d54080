package monitor

import "snapwatch/internal/dialogs"

// snapState is the registry entry tracking one snap's refresh UI state.
// Entries are created lazily on first reference and removed when the
// refresh change finishes or is cancelled.
type snapState struct {
	name string
	// inhibited is set when snapd reports the refresh is withheld pending
	// user consent.
	inhibited bool
	// ignored suppresses further pending-refresh notifications for the
	// duration of the current refresh attempt. It is set by the user via
	// IgnoreSnap and set internally while a dialog is being constructed.
	ignored bool
	// manuallyHidden is set when the user dismisses the dialog; later
	// change updates then leave the UI alone.
	manuallyHidden bool
	// hidden mirrors a dialog hidden by the presentation layer without an
	// explicit dismissal.
	hidden bool
	// dialog is the snap's progress surface. At most one exists at a
	// time.
	dialog dialogs.Surface
}

func (s *snapState) uiSuppressed() bool {
	return s.hidden || s.manuallyHidden
}

// ensureSnap returns the registry entry for name, creating it if absent.
// An existing entry is returned unchanged. Must run on the loop.
func (m *Monitor) ensureSnap(name string) *snapState {
	if state, ok := m.snaps[name]; ok {
		return state
	}
	state := &snapState{name: name}
	m.snaps[name] = state
	return state
}

// dropSnap removes a snap's dialog and registry entry. Must run on the
// loop.
func (m *Monitor) dropSnap(name string) {
	state, ok := m.snaps[name]
	if !ok {
		return
	}
	if state.dialog != nil {
		m.dialogs.Remove(state.dialog)
		state.dialog = nil
	}
	delete(m.snaps, name)
}

// SnapStatus is a point-in-time view of one registry entry, exported over
// IPC.
type SnapStatus struct {
	Name           string `json:"name"`
	Inhibited      bool   `json:"inhibited"`
	Ignored        bool   `json:"ignored"`
	ManuallyHidden bool   `json:"manually_hidden"`
	HasDialog      bool   `json:"has_dialog"`
}
