// Package snapd provides a minimal client for the snapd REST API over its
// Unix domain socket.
//
// It covers only the surface the refresh monitor needs: fetching a change
// with its tasks, fetching one snap, listing refresh-inhibited snaps, and
// long-polling the notices endpoint. Wire types mirror the snapd JSON
// documents, including the auto-refresh change data and per-task
// affected-snaps lists.
//
// All calls take a context; a canceled context surfaces as the caller's
// context error and is treated as a deliberately superseded operation by the
// monitor.
package snapd
