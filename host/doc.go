// Package host defines the platform interface the runtime renders against.
//
// A Host is whatever owns the document: a real browser-style backend, or the
// in-memory implementation in host/memdom used by tests and terminal demos.
// The runtime consumes six narrow concerns, composed into the Host interface:
//
//	Clock       monotonic timestamps for render deltas
//	Frames      one-shot pre-paint callback scheduling with cancellation
//	Tasks       the UI tick queue (Defer) and asynchronous execution (Spawn)
//	DOM         node creation, attachment, and inspection
//	Listeners   event listener attach/detach for nodes and the window
//	Navigation  current location and navigation-event subscription
//
// # Scheduling Contract
//
// Everything the runtime mutates is touched only from the host's UI
// scheduler: frame callbacks, deferred ticks, and event listeners all run
// there, one at a time. Defer is the single re-entry point and must be safe
// to call from any goroutine; Spawn runs work off the UI scheduler entirely.
//
// # Error Flow
//
// Listener and frame callbacks return errors so failures inside the runtime
// propagate outward to whatever invoked the host event, instead of being
// swallowed at the platform boundary.
package host
