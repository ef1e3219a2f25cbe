// Package frond provides the runtime core of an Elm-architecture UI library.
//
// Applications supply a model, an update function, and a view function; the
// runtime owns everything between: message dispatch, effect queues, render
// scheduling and coalescing, listener lifecycle, bootstrap, and startup. The
// rendering target is pluggable, so the same application runs against the
// in-memory document used for tests and terminal demos or against a real
// document backend.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	frond/               Root package with the opaque Msg, GlobalMsg, and Model types
//	├── app/             Runtime core: dispatch, effect queue, scheduler, renderer
//	├── vdom/            Declarative element tree and event listeners
//	├── host/            Platform interface: frames, clock, node ops, navigation
//	│   └── memdom/      Deterministic in-memory host implementation
//	├── reconcile/       Tree patching behind a pluggable Reconciler interface
//	├── nav/             Location type for routing
//	├── guest/           WebAssembly guest applications hosted via wazero
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Build a counter application against the in-memory host:
//
//	doc := memdom.NewDocument()
//
//	a, err := app.New(app.Config{
//	    Update: update,
//	    View:   view,
//	    Mount:  doc.Body(),
//	    Host:   doc,
//	}, app.InitConfig{
//	    MountType:  app.Append,
//	    AfterMount: func(loc nav.Location, o *app.Orders) app.AfterMount {
//	        return app.AfterMount{Model: &Counter{}, URLHandling: app.SkipRoutes}
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := a.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
//	a.Update(Increment{})
//	doc.Settle()
//
// # Threading Model
//
// The runtime is single-threaded by contract: all state mutation happens on
// the host's UI scheduler (frame callbacks, deferred ticks, event listeners,
// and direct Update/Sink calls). Commands run on whatever goroutine the host
// spawns them on; their completions re-enter the runtime through the host's
// deferred-tick queue. Model access is runtime-checked: holding write access
// while another access is active fails fast instead of corrupting state.
//
// # Error Handling
//
// Operational failures (host node operations, listener lifecycle, patching,
// guest calls) are returned as *errors.Error values and propagate to the
// caller. Contract violations (running startup twice, rendering without a
// baseline, reentrant model access) are programmer errors and panic with an
// *errors.Error describing the violated contract.
package frond
