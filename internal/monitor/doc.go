// Package monitor implements the refresh tracking core. It consumes snapd
// notices, polls in-flight refresh changes, aggregates per-snap task
// progress into launcher badge updates, and decides when to show, update,
// or remove the per-snap progress dialogs and when to emit pending-refresh
// notification events.
//
// All mutable state (the snap registry, re-poll timer registrations, and
// progress accumulators) is confined to a single run loop. External inputs
// and async completion results are posted onto the loop as closures, so no
// locking is needed and ordering is well defined.
package monitor
