package host

import (
	"context"
	"time"

	"github.com/frondui/frond/nav"
)

// Node is an opaque reference to a concrete host node. Implementations use
// their own node type; the runtime only stores and passes these back.
type Node interface{}

// NodeKind classifies a host node for adoption.
type NodeKind int

const (
	ElementNode NodeKind = iota
	TextNode
	OtherNode
)

// NodeInfo describes a host node for adoption into the virtual tree.
type NodeInfo struct {
	Attrs map[string]string
	Tag   string
	Text  string
	Kind  NodeKind
}

// Event is a host event delivered to a listener.
type Event struct {
	Target Node
	Type   string
	Value  string
}

// ListenerFunc handles a host event. The returned error propagates to
// whatever dispatched the event.
type ListenerFunc func(Event) error

// ListenerHandle is an opaque detach token returned by attach operations.
type ListenerHandle interface{}

// FrameFunc runs before the next paint with the host's current timestamp.
type FrameFunc func(ts time.Time) error

// FrameRequest cancels a pending frame callback. Cancelling an already-fired
// or already-cancelled request is a no-op.
type FrameRequest interface {
	Cancel()
}

// NavEvent selects a navigation event source.
type NavEvent int

const (
	NavPopState NavEvent = iota
	NavHashChange
	NavLinkClick
)

// NavFunc handles a navigation event.
type NavFunc func(loc nav.Location) error

// Clock provides monotonic timestamps.
type Clock interface {
	Now() time.Time
}

// Frames schedules one-shot callbacks before the next paint.
type Frames interface {
	RequestFrame(fn FrameFunc) (FrameRequest, error)
}

// Tasks provides the two scheduling primitives the runtime needs: Defer
// enqueues fn onto the UI scheduler's next tick and may be called from any
// goroutine; Spawn runs fn off the UI scheduler.
type Tasks interface {
	Defer(fn func())
	Spawn(fn func(ctx context.Context))
}

// DOM provides node creation, attachment, and inspection.
type DOM interface {
	CreateElement(tag string) Node
	CreateText(text string) Node
	AppendChild(parent, child Node) error
	RemoveChild(parent, child Node) error
	SetAttribute(n Node, name, value string) error
	SetText(n Node, text string) error
	Children(n Node) ([]Node, error)
	Describe(n Node) (NodeInfo, error)
}

// Listeners manages event listener lifecycle for nodes and the window.
type Listeners interface {
	AttachListener(n Node, event string, fn ListenerFunc) (ListenerHandle, error)
	AttachWindowListener(event string, fn ListenerFunc) (ListenerHandle, error)
	DetachListener(h ListenerHandle) error
}

// Navigation exposes the current location and navigation events.
type Navigation interface {
	Location() nav.Location
	SubscribeNav(ev NavEvent, fn NavFunc) (ListenerHandle, error)
}

// Host is the full platform contract the runtime renders against.
type Host interface {
	Clock
	Frames
	Tasks
	DOM
	Listeners
	Navigation
}
