package snapd

import "time"

// Change statuses as reported by snapd.
const (
	StatusDo      = "Do"
	StatusDoing   = "Doing"
	StatusDone    = "Done"
	StatusAbort   = "Abort"
	StatusUndo    = "Undo"
	StatusUndoing = "Undoing"
	StatusUndone  = "Undone"
	StatusHold    = "Hold"
	StatusWait    = "Wait"
	StatusError   = "Error"
)

// Change kinds the monitor reacts to.
const (
	KindAutoRefresh = "auto-refresh"
	KindRefreshSnap = "refresh-snap"
)

// Notice types delivered by the notices endpoint.
const (
	NoticeChangeUpdate   = "change-update"
	NoticeRefreshInhibit = "refresh-inhibit"
	// NoticeSnapRunInhibit is accepted but currently never emitted by snapd.
	NoticeSnapRunInhibit = "snap-run-inhibit"
)

// Change is an asynchronous snapd operation composed of ordered tasks.
type Change struct {
	ID      string     `json:"id"`
	Kind    string     `json:"kind"`
	Summary string     `json:"summary"`
	Status  string     `json:"status"`
	Ready   bool       `json:"ready"`
	Tasks   []Task     `json:"tasks"`
	Data    ChangeData `json:"data"`
}

// ChangeData carries kind-specific payloads. Auto-refresh changes list the
// snaps being refreshed.
type ChangeData struct {
	SnapNames []string `json:"snap-names"`
}

// Task is a unit of work within a change.
type Task struct {
	ID      string   `json:"id"`
	Kind    string   `json:"kind"`
	Summary string   `json:"summary"`
	Status  string   `json:"status"`
	Data    TaskData `json:"data"`
}

// TaskData carries the snaps whose launcher progress a task contributes to.
type TaskData struct {
	AffectedSnaps []string `json:"affected-snaps"`
}

// Snap is an installed package as reported by snapd.
type Snap struct {
	Name           string          `json:"name"`
	Version        string          `json:"version"`
	RefreshInhibit *RefreshInhibit `json:"refresh-inhibit,omitempty"`
}

// RefreshInhibit describes a refresh withheld pending user consent.
type RefreshInhibit struct {
	ProceedTime time.Time `json:"proceed-time"`
}

// ProceedTime returns the forced-refresh deadline, or the zero time when the
// snap is not inhibited.
func (s Snap) ProceedTime() time.Time {
	if s.RefreshInhibit == nil {
		return time.Time{}
	}
	return s.RefreshInhibit.ProceedTime
}

// Notice is an event from the snapd notice stream.
type Notice struct {
	ID           string            `json:"id"`
	Type         string            `json:"type"`
	Key          string            `json:"key"`
	LastRepeated time.Time         `json:"last-repeated"`
	Occurrences  int               `json:"occurrences"`
	LastData     map[string]string `json:"last-data"`
}
