// Package app implements the frond runtime core: the dispatch cycle that
// feeds application messages through update, the effect queue that carries
// follow-up messages and commands, and the scheduler that coalesces render
// requests into host frames.
//
// # Dispatch Cycle
//
// Every message entering through Update (or every global message entering
// through Sink) owns a local FIFO effect queue. Processing an effect may
// produce more effects; they append to the same queue and the drain continues
// until the queue is empty. Message effects run synchronously; command
// effects are handed off to the host scheduler and complete as fresh
// dispatches later.
//
// After each update the runtime re-evaluates window subscriptions against the
// new model and applies the update's render directive: Render schedules a
// coalesced render on the next host frame, ForceRenderNow renders
// synchronously, Skip leaves the screen untouched.
//
// # Render Scheduling
//
// At most one frame request is outstanding at any time. Scheduling while a
// request is pending is a no-op, so any number of Render directives between
// frames produce exactly one render. The stored request is cleared before the
// frame's render runs, which makes a directive issued during that render
// schedule the next frame rather than vanish.
//
// # Startup
//
// Run consumes the one-shot init config, bootstraps the baseline tree from
// the mount point (Append or Takeover), obtains the initial model from the
// after-mount hook, wires window and navigation listeners, drains the startup
// effects, and finishes with exactly one unconditional render.
//
// # Threading
//
// All state lives on the host's UI scheduler. Commands run on arbitrary
// goroutines via host.Spawn; their completion messages re-enter through
// host.Defer. Model access is runtime-checked: update and sink hold exclusive
// access, view and window-subscription evaluation hold shared access, and a
// violation panics with a reentrant_access error.
package app
