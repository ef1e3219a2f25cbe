package app

import (
	"context"

	"go.uber.org/zap"

	frond "github.com/frondui/frond"
	"github.com/frondui/frond/host"
)

// process drains one local effect queue. Effects pop from the front;
// effects produced while processing append to the back of the same queue,
// so one dispatch sees all of its transitive synchronous follow-ups in FIFO
// order. Commands leave the queue immediately and come back later as fresh
// dispatches.
func (a *App) process(queue []effect) error {
	for len(queue) > 0 {
		e := queue[0]
		queue = queue[1:]

		switch e.kind {
		case effectMsg:
			produced, err := a.dispatchMsg(e.msg)
			if err != nil {
				return err
			}
			queue = append(queue, produced...)
		case effectGlobalMsg:
			produced, err := a.dispatchGlobalMsg(e.gmsg)
			if err != nil {
				return err
			}
			queue = append(queue, produced...)
		case effectCmd:
			a.spawnCmd(e.cmd)
		case effectGlobalCmd:
			a.spawnGlobalCmd(e.gcmd)
		}
	}
	return nil
}

// dispatchMsg runs one message through the full local cycle and returns the
// effects it produced.
func (a *App) dispatchMsg(msg frond.Msg) ([]effect, error) {
	a.notifyListeners(msg)

	o := newOrders()
	a.runUpdate(msg, o)
	a.callbacks = append(a.callbacks, o.callbacks...)

	if err := a.syncWindowSubs(); err != nil {
		return nil, err
	}
	if err := a.applyDirective(o.directive); err != nil {
		return nil, err
	}
	return o.effects, nil
}

// dispatchGlobalMsg runs one global message through the sink. Without a
// configured sink the message is dropped.
func (a *App) dispatchGlobalMsg(gmsg frond.GlobalMsg) ([]effect, error) {
	if a.cfg.Sink == nil {
		return nil, nil
	}

	o := newOrders()
	a.runSink(gmsg, o)
	a.callbacks = append(a.callbacks, o.callbacks...)

	if err := a.syncWindowSubs(); err != nil {
		return nil, err
	}
	if err := a.applyDirective(o.directive); err != nil {
		return nil, err
	}
	return o.effects, nil
}

func (a *App) applyDirective(d RenderDirective) error {
	switch d {
	case ForceRenderNow:
		a.cancelRender()
		return a.render()
	case Skip:
		return nil
	default:
		return a.scheduleRender()
	}
}

// syncWindowSubs diffs the wanted window subscriptions against the attached
// ones by event name: removed names detach, added names attach, unchanged
// names keep their existing handler.
func (a *App) syncWindowSubs() error {
	next := a.evalWindowSubs()

	want := make(map[string]struct{}, len(next))
	for _, sub := range next {
		if sub.Event == "" || sub.Handler == nil {
			continue
		}
		want[sub.Event] = struct{}{}
	}

	for name, wl := range a.windows {
		if _, ok := want[name]; ok {
			continue
		}
		if err := a.cfg.Host.DetachListener(wl.handle); err != nil {
			return err
		}
		delete(a.windows, name)
		Logger().Debug("window listener detached",
			zap.String("app", a.id),
			zap.String("event", name))
	}

	for _, sub := range next {
		if sub.Event == "" || sub.Handler == nil {
			continue
		}
		if _, ok := a.windows[sub.Event]; ok {
			continue
		}
		handle, err := a.attachWindowSub(sub)
		if err != nil {
			return err
		}
		a.windows[sub.Event] = &windowListener{sub: sub, handle: handle}
		Logger().Debug("window listener attached",
			zap.String("app", a.id),
			zap.String("event", sub.Event))
	}
	return nil
}

func (a *App) attachWindowSub(sub WindowSub) (host.ListenerHandle, error) {
	handler := sub.Handler
	return a.cfg.Host.AttachWindowListener(sub.Event, func(ev host.Event) error {
		msg := handler(ev)
		if msg == nil {
			return nil
		}
		return a.Update(msg)
	})
}

// spawnCmd hands a command to the host scheduler. The handoff crosses one
// host tick before the task starts, so a chain of immediately-resolving
// commands advances one link per tick instead of growing the stack, and the
// completion crosses back onto the UI scheduler as a single dispatch.
func (a *App) spawnCmd(cmd Cmd) {
	h := a.cfg.Host
	h.Defer(func() {
		h.Spawn(func(ctx context.Context) {
			msg := cmd(ctx)
			if msg == nil {
				return
			}
			h.Defer(func() {
				if err := a.Update(msg); err != nil {
					Logger().Error("command completion dispatch failed",
						zap.String("app", a.id),
						zap.Error(err))
				}
			})
		})
	})
}

// spawnGlobalCmd is spawnCmd on the global channel.
func (a *App) spawnGlobalCmd(cmd GlobalCmd) {
	h := a.cfg.Host
	h.Defer(func() {
		h.Spawn(func(ctx context.Context) {
			gmsg := cmd(ctx)
			if gmsg == nil {
				return
			}
			h.Defer(func() {
				if err := a.Sink(gmsg); err != nil {
					Logger().Error("global command completion dispatch failed",
						zap.String("app", a.id),
						zap.Error(err))
				}
			})
		})
	})
}
