package vdom

import (
	frond "github.com/frondui/frond"
	"github.com/frondui/frond/errors"
	"github.com/frondui/frond/host"
)

// HandlerFunc turns a host event into an application message. A nil result
// means the event produces no message.
type HandlerFunc func(ev host.Event) frond.Msg

// Mailbox carries messages from host events into the runtime's dispatch.
type Mailbox struct {
	send func(msg frond.Msg) error
}

// NewMailbox wraps a dispatch function.
func NewMailbox(send func(msg frond.Msg) error) *Mailbox {
	return &Mailbox{send: send}
}

// Send dispatches a message. Nil messages are dropped.
func (m *Mailbox) Send(msg frond.Msg) error {
	if msg == nil || m == nil || m.send == nil {
		return nil
	}
	return m.send(msg)
}

// EventListener binds an event name to a handler on one element for one
// render generation.
type EventListener struct {
	Handler HandlerFunc
	handle  host.ListenerHandle
	Event   string
}

// Attached reports whether the listener currently holds a host attachment.
func (l *EventListener) Attached() bool { return l.handle != nil }

// Attach wires the listener to a host node through the mailbox. Attaching
// an already-attached listener is a lifecycle error.
func (l *EventListener) Attach(n host.Node, ls host.Listeners, mb *Mailbox) error {
	if l.handle != nil {
		return errors.ListenerState(errors.PhaseRender, "attach",
			"listener for "+l.Event+" already attached")
	}
	handler := l.Handler
	h, err := ls.AttachListener(n, l.Event, func(ev host.Event) error {
		if handler == nil {
			return nil
		}
		return mb.Send(handler(ev))
	})
	if err != nil {
		return err
	}
	l.handle = h
	return nil
}

// Detach releases the host attachment. Detaching a listener that is not
// attached is a lifecycle error: it means a render generation was lost.
func (l *EventListener) Detach(ls host.Listeners) error {
	if l.handle == nil {
		return errors.ListenerState(errors.PhaseRender, "detach",
			"listener for "+l.Event+" is not attached")
	}
	err := ls.DetachListener(l.handle)
	l.handle = nil
	return err
}
