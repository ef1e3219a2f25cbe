// Package memdom is a deterministic in-memory host implementation.
//
// It backs the runtime's tests and the terminal demo: a document tree with
// element and text nodes, a manual clock, and explicit pumps for the three
// scheduling queues. Nothing advances on its own; callers decide when frames
// fire, when deferred ticks drain, and when spawned tasks run.
//
// # Pumps
//
// The usual test sequence after dispatching messages:
//
//	doc.AdvanceClock(16 * time.Millisecond)
//	doc.FireFrame()    // run pending frame callbacks
//	doc.RunDeferred()  // drain the UI tick queue
//	doc.RunTasks()     // execute spawned tasks
//
// or simply:
//
//	doc.Settle()       // loop all three until quiet
//
// # Events
//
// Dispatch and DispatchWindow invoke attached listeners in attach order and
// stop at the first error. Navigate, SetHash, and ClickLink simulate the
// three navigation sources.
//
// Listener lifecycle is observable through an Observer, which tests use to
// count attach/detach traffic.
package memdom
