// Package notices maintains a live subscription to the snapd notice stream.
//
// The subscription long-polls the notices endpoint and delivers each notice
// to a handler together with a first-run flag, so consumers can skip the
// backlog returned by the initial listing. On a stream error the subscription
// tears itself down, waits a cooldown, and rebuilds its client before
// retrying; a snapd restart briefly removes its socket and retrying
// immediately would produce a burst of failures. Errors are logged and never
// surfaced to the caller.
package notices
