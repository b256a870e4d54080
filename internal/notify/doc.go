// Package notify delivers refresh events to the user's devices via ntfy.
//
// The service implements the monitor's event sink and publishes to the topic
// URL configured in config.toml, degrading to a no-op when no topic is set.
// Sink callbacks run on the monitor loop, so deliveries happen in the
// background and failures are logged rather than returned.
package notify
