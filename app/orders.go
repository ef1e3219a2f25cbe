package app

import frond "github.com/frondui/frond"

type effectKind int

const (
	effectMsg effectKind = iota
	effectGlobalMsg
	effectCmd
	effectGlobalCmd
)

// effect is one queued unit of follow-up work. Exactly one payload field is
// set, selected by kind.
type effect struct {
	msg  frond.Msg
	gmsg frond.GlobalMsg
	cmd  Cmd
	gcmd GlobalCmd
	kind effectKind
}

// Orders is the side channel handed to update, sink and after-mount calls.
// It collects follow-up effects, post-render callbacks and the render
// directive for the current invocation. Effects keep the order they were
// placed in; the last directive set wins, with Render as the default.
//
// All methods return the receiver, so calls chain:
//
//	o.Skip().PerformCmd(fetch).AfterNextRender(measured)
type Orders struct {
	effects   []effect
	callbacks []PostRenderFn
	directive RenderDirective
}

func newOrders() *Orders {
	return &Orders{directive: Render}
}

// Render schedules a coalesced render after this invocation.
func (o *Orders) Render() *Orders {
	o.directive = Render
	return o
}

// ForceRenderNow renders synchronously after this invocation, cancelling any
// scheduled frame.
func (o *Orders) ForceRenderNow() *Orders {
	o.directive = ForceRenderNow
	return o
}

// Skip leaves the screen untouched after this invocation.
func (o *Orders) Skip() *Orders {
	o.directive = Skip
	return o
}

// SendMsg queues a message for dispatch after the current one. Nil messages
// are dropped.
func (o *Orders) SendMsg(msg frond.Msg) *Orders {
	if msg == nil {
		return o
	}
	o.effects = append(o.effects, effect{kind: effectMsg, msg: msg})
	return o
}

// PerformCmd queues a command for asynchronous execution.
func (o *Orders) PerformCmd(cmd Cmd) *Orders {
	if cmd == nil {
		return o
	}
	o.effects = append(o.effects, effect{kind: effectCmd, cmd: cmd})
	return o
}

// SendGlobalMsg queues a message on the global channel.
func (o *Orders) SendGlobalMsg(gmsg frond.GlobalMsg) *Orders {
	if gmsg == nil {
		return o
	}
	o.effects = append(o.effects, effect{kind: effectGlobalMsg, gmsg: gmsg})
	return o
}

// PerformGlobalCmd queues a command resolving on the global channel.
func (o *Orders) PerformGlobalCmd(cmd GlobalCmd) *Orders {
	if cmd == nil {
		return o
	}
	o.effects = append(o.effects, effect{kind: effectGlobalCmd, gcmd: cmd})
	return o
}

// AfterNextRender registers a callback to run once after the next completed
// render.
func (o *Orders) AfterNextRender(fn PostRenderFn) *Orders {
	if fn == nil {
		return o
	}
	o.callbacks = append(o.callbacks, fn)
	return o
}
