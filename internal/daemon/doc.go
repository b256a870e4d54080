// Package daemon coordinates the long-running snapwatch process.
//
// It wires configuration, the preference store, the snapd notice
// subscription, and the refresh monitor into a single lifecycle with
// flock-based locking to prevent multiple instances. The daemon exposes the
// control operations the IPC layer serves: status, per-snap notification
// suppression, and notification testing.
//
// Keep orchestration logic here: refresh tracking semantics live in the
// monitor package while the daemon focuses on startup, shutdown, and high
// level coordination.
package daemon
