// Package dialogs manages the lifecycle of per-snap progress dialogs inside
// a single shared container window.
//
// Widget rendering is out of scope: a Presenter supplies Surface and Window
// implementations, and the Manager enforces the container invariant — the
// window exists exactly while at least one dialog is attached. It is created
// lazily on the first attach, destroyed when the last dialog detaches, and
// asked to re-fit its contents when one of several dialogs goes away.
//
// The Manager is not safe for concurrent use; the monitor owns it and calls
// it only from its run loop.
package dialogs
