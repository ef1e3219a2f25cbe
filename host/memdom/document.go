package memdom

import (
	"context"
	"sync"
	"time"

	"github.com/frondui/frond/errors"
	"github.com/frondui/frond/host"
	"github.com/frondui/frond/nav"
)

// Pump caps. Hitting one means a callback keeps feeding the queue it runs on.
const (
	maxDeferredDrain = 4096
	maxSettleRounds  = 1024
)

type handle uint64

type entryKind uint8

const (
	nodeEntry entryKind = iota
	windowEntry
	navEntry
)

type listenerEntry struct {
	node  *Node
	fn    host.ListenerFunc
	navFn host.NavFunc
	event string
	nav   host.NavEvent
	kind  entryKind
}

// EventType classifies a listener lifecycle event.
type EventType uint8

const (
	EventAttached EventType = iota
	EventDetached
)

// ListenerEvent describes a listener lifecycle change.
type ListenerEvent struct {
	Node   *Node // nil for window and navigation listeners
	Event  string
	Type   EventType
	Window bool
}

// Observer receives listener lifecycle notifications.
type Observer interface {
	OnListenerEvent(ListenerEvent)
}

// Document is the in-memory host. All methods except Defer must be called
// from the goroutine acting as the UI scheduler.
type Document struct {
	ctx             context.Context
	entries         map[handle]*listenerEntry
	windowListeners map[string][]handle
	navSubs         map[host.NavEvent][]handle
	root            *Node
	body            *Node
	frames          []*frameRequest
	deferred        []func()
	tasks           []func(ctx context.Context)
	observers       []Observer
	location        nav.Location
	now             time.Time
	nextHandle      handle
	deferMu         sync.Mutex
}

// NewDocument creates a document with an empty <body> and the clock pinned
// at the Unix epoch.
func NewDocument() *Document {
	root := newElement("#document")
	body := newElement("body")
	body.parent = root
	root.children = []*Node{body}

	return &Document{
		ctx:             context.Background(),
		entries:         make(map[handle]*listenerEntry),
		windowListeners: make(map[string][]handle),
		navSubs:         make(map[host.NavEvent][]handle),
		root:            root,
		body:            body,
		location:        nav.Location{Href: "/", Path: "/"},
		now:             time.Unix(0, 0),
	}
}

// WithContext sets the base context handed to spawned tasks.
func (d *Document) WithContext(ctx context.Context) *Document {
	d.ctx = ctx
	return d
}

// Root returns the document root node.
func (d *Document) Root() host.Node { return d.root }

// Body returns the <body> node, the usual mount point.
func (d *Document) Body() host.Node { return d.body }

// Subscribe adds an observer for listener lifecycle events.
func (d *Document) Subscribe(o Observer) {
	d.observers = append(d.observers, o)
}

// Unsubscribe removes an observer.
func (d *Document) Unsubscribe(o Observer) {
	for i, obs := range d.observers {
		if obs == o {
			d.observers = append(d.observers[:i], d.observers[i+1:]...)
			return
		}
	}
}

func (d *Document) notify(e ListenerEvent) {
	for _, o := range d.observers {
		o.OnListenerEvent(e)
	}
}

// node asserts that n belongs to this document's node type.
func (d *Document) node(n host.Node, op string) (*Node, error) {
	mn, ok := n.(*Node)
	if !ok || mn == nil {
		return nil, errors.New(errors.PhaseHost, errors.KindInvalidData).
			Op(op).
			Value(n).
			Detail("not a memdom node").
			Build()
	}
	return mn, nil
}

// Clock

// Now returns the manual clock. It never advances on its own.
func (d *Document) Now() time.Time { return d.now }

// AdvanceClock moves the manual clock forward.
func (d *Document) AdvanceClock(by time.Duration) {
	d.now = d.now.Add(by)
}

// Frames

type frameRequest struct {
	fn        host.FrameFunc
	cancelled bool
}

func (r *frameRequest) Cancel() { r.cancelled = true }

// RequestFrame queues fn to run on the next FireFrame.
func (d *Document) RequestFrame(fn host.FrameFunc) (host.FrameRequest, error) {
	if fn == nil {
		return nil, errors.InvalidInput(errors.PhaseHost, "nil frame callback")
	}
	r := &frameRequest{fn: fn}
	d.frames = append(d.frames, r)
	return r, nil
}

// PendingFrames counts queued, uncancelled frame callbacks.
func (d *Document) PendingFrames() int {
	n := 0
	for _, r := range d.frames {
		if !r.cancelled {
			n++
		}
	}
	return n
}

// FireFrame runs the frame callbacks queued at call time with the current
// clock value, like one paint tick. Callbacks requesting new frames land in
// the next tick. Every callback runs even if an earlier one fails; the first
// error is returned along with the count of callbacks that ran.
func (d *Document) FireFrame() (int, error) {
	pending := d.frames
	d.frames = nil

	fired := 0
	var firstErr error
	for _, r := range pending {
		if r.cancelled {
			continue
		}
		fired++
		if err := r.fn(d.now); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return fired, firstErr
}

// Tasks

// Defer enqueues fn onto the UI tick queue. Safe from any goroutine.
func (d *Document) Defer(fn func()) {
	d.deferMu.Lock()
	d.deferred = append(d.deferred, fn)
	d.deferMu.Unlock()
}

// RunDeferred drains the tick queue until empty, including callbacks queued
// while draining. Returns the number of callbacks run.
func (d *Document) RunDeferred() (int, error) {
	run := 0
	for {
		d.deferMu.Lock()
		if len(d.deferred) == 0 {
			d.deferMu.Unlock()
			return run, nil
		}
		fn := d.deferred[0]
		d.deferred = d.deferred[1:]
		d.deferMu.Unlock()

		fn()
		run++
		if run > maxDeferredDrain {
			return run, errors.New(errors.PhaseHost, errors.KindExhausted).
				Op("run-deferred").
				Detail("tick queue did not quiesce after %d callbacks", maxDeferredDrain).
				Build()
		}
	}
}

// Spawn queues fn for asynchronous execution. Under memdom, "asynchronous"
// means RunTasks: tasks run synchronously when pumped so tests stay
// deterministic.
func (d *Document) Spawn(fn func(ctx context.Context)) {
	d.tasks = append(d.tasks, fn)
}

// RunTasks executes the tasks queued at call time with the document's base
// context. Tasks spawned while running wait for the next pump.
func (d *Document) RunTasks() int {
	tasks := d.tasks
	d.tasks = nil
	for _, fn := range tasks {
		fn(d.ctx)
	}
	return len(tasks)
}

// Settle pumps deferred callbacks, tasks, and frames until one full round
// does no work. The standard way to let a dispatch, its commands, and its
// renders finish in tests.
func (d *Document) Settle() error {
	for round := 0; round < maxSettleRounds; round++ {
		ran, err := d.RunDeferred()
		if err != nil {
			return err
		}
		ran += d.RunTasks()

		fired, err := d.FireFrame()
		if err != nil {
			return err
		}
		ran += fired

		if ran == 0 {
			return nil
		}
	}
	return errors.New(errors.PhaseHost, errors.KindExhausted).
		Op("settle").
		Detail("document did not settle after %d rounds", maxSettleRounds).
		Build()
}

// DOM

// CreateElement creates a detached element node.
func (d *Document) CreateElement(tag string) host.Node {
	return newElement(tag)
}

// CreateText creates a detached text node.
func (d *Document) CreateText(text string) host.Node {
	return newText(text)
}

// AppendChild appends child under parent, detaching it from any previous
// parent first.
func (d *Document) AppendChild(parent, child host.Node) error {
	p, err := d.node(parent, "append-child")
	if err != nil {
		return err
	}
	c, err := d.node(child, "append-child")
	if err != nil {
		return err
	}
	if c == p || c.isAncestorOf(p) {
		return errors.InvalidInput(errors.PhaseHost, "append would create a cycle")
	}
	c.detachFromParent()
	c.parent = p
	p.children = append(p.children, c)
	return nil
}

// RemoveChild removes child from parent.
func (d *Document) RemoveChild(parent, child host.Node) error {
	p, err := d.node(parent, "remove-child")
	if err != nil {
		return err
	}
	c, err := d.node(child, "remove-child")
	if err != nil {
		return err
	}
	if c.parent != p {
		return errors.NotFound(errors.PhaseHost, "child", c.tag+c.text)
	}
	c.detachFromParent()
	return nil
}

// SetAttribute sets an attribute on an element node.
func (d *Document) SetAttribute(n host.Node, name, value string) error {
	mn, err := d.node(n, "set-attribute")
	if err != nil {
		return err
	}
	if mn.kind != host.ElementNode {
		return errors.InvalidInput(errors.PhaseHost, "attributes require an element node")
	}
	if mn.attrs == nil {
		mn.attrs = make(map[string]string)
	}
	mn.attrs[name] = value
	return nil
}

// SetText replaces the content of a text node.
func (d *Document) SetText(n host.Node, text string) error {
	mn, err := d.node(n, "set-text")
	if err != nil {
		return err
	}
	if mn.kind != host.TextNode {
		return errors.InvalidInput(errors.PhaseHost, "SetText requires a text node")
	}
	mn.text = text
	return nil
}

// Children returns a copy of n's child list.
func (d *Document) Children(n host.Node) ([]host.Node, error) {
	mn, err := d.node(n, "children")
	if err != nil {
		return nil, err
	}
	out := make([]host.Node, len(mn.children))
	for i, c := range mn.children {
		out[i] = c
	}
	return out, nil
}

// Describe reports a node's shape for adoption.
func (d *Document) Describe(n host.Node) (host.NodeInfo, error) {
	mn, err := d.node(n, "describe")
	if err != nil {
		return host.NodeInfo{}, err
	}
	info := host.NodeInfo{Kind: mn.kind, Tag: mn.tag, Text: mn.text}
	if len(mn.attrs) > 0 {
		info.Attrs = make(map[string]string, len(mn.attrs))
		for k, v := range mn.attrs {
			info.Attrs[k] = v
		}
	}
	return info, nil
}

// Listeners

func (d *Document) insertEntry(e *listenerEntry) handle {
	d.nextHandle++
	d.entries[d.nextHandle] = e
	return d.nextHandle
}

// AttachListener attaches an event listener to a node.
func (d *Document) AttachListener(n host.Node, event string, fn host.ListenerFunc) (host.ListenerHandle, error) {
	mn, err := d.node(n, "attach-listener")
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, errors.InvalidInput(errors.PhaseHost, "nil listener func")
	}
	h := d.insertEntry(&listenerEntry{kind: nodeEntry, node: mn, event: event, fn: fn})
	if mn.listeners == nil {
		mn.listeners = make(map[string][]handle)
	}
	mn.listeners[event] = append(mn.listeners[event], h)
	d.notify(ListenerEvent{Type: EventAttached, Node: mn, Event: event})
	return h, nil
}

// AttachWindowListener attaches a window-level event listener.
func (d *Document) AttachWindowListener(event string, fn host.ListenerFunc) (host.ListenerHandle, error) {
	if fn == nil {
		return nil, errors.InvalidInput(errors.PhaseHost, "nil listener func")
	}
	h := d.insertEntry(&listenerEntry{kind: windowEntry, event: event, fn: fn})
	d.windowListeners[event] = append(d.windowListeners[event], h)
	d.notify(ListenerEvent{Type: EventAttached, Event: event, Window: true})
	return h, nil
}

// DetachListener removes a listener by handle. Detaching an unknown or
// already-detached handle is a lifecycle error.
func (d *Document) DetachListener(lh host.ListenerHandle) error {
	h, ok := lh.(handle)
	if !ok {
		return errors.ListenerState(errors.PhaseHost, "detach", "not a memdom listener handle")
	}
	e, ok := d.entries[h]
	if !ok {
		return errors.ListenerState(errors.PhaseHost, "detach", "unknown or already-detached handle")
	}
	delete(d.entries, h)

	switch e.kind {
	case nodeEntry:
		e.node.listeners[e.event] = removeHandle(e.node.listeners[e.event], h)
		d.notify(ListenerEvent{Type: EventDetached, Node: e.node, Event: e.event})
	case windowEntry:
		d.windowListeners[e.event] = removeHandle(d.windowListeners[e.event], h)
		d.notify(ListenerEvent{Type: EventDetached, Event: e.event, Window: true})
	case navEntry:
		d.navSubs[e.nav] = removeHandle(d.navSubs[e.nav], h)
		d.notify(ListenerEvent{Type: EventDetached, Event: navEventName(e.nav), Window: true})
	}
	return nil
}

func removeHandle(hs []handle, h handle) []handle {
	for i, x := range hs {
		if x == h {
			return append(hs[:i], hs[i+1:]...)
		}
	}
	return hs
}

// ListenerCount returns the number of live listeners of every kind.
func (d *Document) ListenerCount() int { return len(d.entries) }

// Dispatch delivers an event to a node's listeners in attach order,
// stopping at the first error. The event's target defaults to the node.
func (d *Document) Dispatch(n host.Node, ev host.Event) error {
	mn, err := d.node(n, "dispatch")
	if err != nil {
		return err
	}
	if ev.Target == nil {
		ev.Target = mn
	}
	// Copy: a listener may detach itself or its siblings.
	hs := append([]handle(nil), mn.listeners[ev.Type]...)
	for _, h := range hs {
		e, ok := d.entries[h]
		if !ok {
			continue
		}
		if err := e.fn(ev); err != nil {
			return err
		}
	}
	return nil
}

// DispatchWindow delivers an event to window listeners in attach order.
func (d *Document) DispatchWindow(ev host.Event) error {
	hs := append([]handle(nil), d.windowListeners[ev.Type]...)
	for _, h := range hs {
		e, ok := d.entries[h]
		if !ok {
			continue
		}
		if err := e.fn(ev); err != nil {
			return err
		}
	}
	return nil
}

// Navigation

// Location returns the current location.
func (d *Document) Location() nav.Location { return d.location }

// SetLocation replaces the current location without firing any event.
func (d *Document) SetLocation(loc nav.Location) { d.location = loc }

// SubscribeNav subscribes to a navigation event source.
func (d *Document) SubscribeNav(ev host.NavEvent, fn host.NavFunc) (host.ListenerHandle, error) {
	if fn == nil {
		return nil, errors.InvalidInput(errors.PhaseHost, "nil nav func")
	}
	h := d.insertEntry(&listenerEntry{kind: navEntry, nav: ev, navFn: fn})
	d.navSubs[ev] = append(d.navSubs[ev], h)
	d.notify(ListenerEvent{Type: EventAttached, Event: navEventName(ev), Window: true})
	return h, nil
}

func (d *Document) fireNav(ev host.NavEvent) error {
	hs := append([]handle(nil), d.navSubs[ev]...)
	for _, h := range hs {
		e, ok := d.entries[h]
		if !ok {
			continue
		}
		if err := e.navFn(d.location); err != nil {
			return err
		}
	}
	return nil
}

// Navigate moves to loc and fires popstate subscribers.
func (d *Document) Navigate(loc nav.Location) error {
	d.location = loc
	return d.fireNav(host.NavPopState)
}

// SetHash changes the fragment and fires hashchange subscribers.
func (d *Document) SetHash(hash string) error {
	d.location.Hash = hash
	return d.fireNav(host.NavHashChange)
}

// ClickLink moves to loc and fires link-click subscribers, simulating an
// intercepted same-origin anchor click.
func (d *Document) ClickLink(loc nav.Location) error {
	d.location = loc
	return d.fireNav(host.NavLinkClick)
}

func navEventName(ev host.NavEvent) string {
	switch ev {
	case host.NavPopState:
		return "popstate"
	case host.NavHashChange:
		return "hashchange"
	case host.NavLinkClick:
		return "linkclick"
	}
	return "nav"
}
