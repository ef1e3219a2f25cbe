// Package vdom is the declarative element tree applications build in view.
//
// Trees are plain data: elements with attributes, listeners, and children,
// plus text nodes. Each virtual node can carry a binding to the concrete
// host node realizing it; the reconciler maintains those bindings. Listener
// attach/detach is strict: attaching twice or detaching what was never
// attached is a lifecycle error, because either means the runtime lost track
// of a render generation.
package vdom
