package app

import (
	"time"

	"go.uber.org/zap"

	"github.com/frondui/frond/errors"
	"github.com/frondui/frond/reconcile"
	"github.com/frondui/frond/vdom"
)

// scheduleRender requests a host frame for the next render. Idempotent: a
// second request while one is outstanding is a no-op, which is what
// coalesces any number of Render directives into one render per frame.
func (a *App) scheduleRender() error {
	if a.frame != nil {
		return nil
	}
	req, err := a.cfg.Host.RequestFrame(func(_ time.Time) error {
		// Clear the stored request before rendering, so a directive issued
		// during this render schedules the next frame.
		a.frame = nil
		return a.render()
	})
	if err != nil {
		return err
	}
	a.frame = req
	return nil
}

// cancelRender cancels the outstanding frame request, if any.
func (a *App) cancelRender() {
	if a.frame == nil {
		return
	}
	a.frame.Cancel()
	a.frame = nil
}

// render rebuilds the screen from the current model: run the view, take the
// stored baseline, detach its listeners, patch old against new under the
// mount point, store the new tree, then drain the post-render callbacks.
//
// A missing baseline is fatal. It means render ran before bootstrap or a
// previous render failed between taking the baseline and storing its
// replacement, and in both cases the tree the host shows no longer
// corresponds to anything the runtime knows about.
func (a *App) render() error {
	ts := a.cfg.Host.Now()

	next := vdom.NewEl("root", a.runView()...)
	next.Bind(a.cfg.Mount)

	old := a.baseline
	if old == nil {
		panic(errors.BaselineMissing())
	}
	a.baseline = nil

	if err := reconcile.DetachTree(a.cfg.Host, old.Children); err != nil {
		return err
	}
	if err := a.cfg.Reconciler.Patch(reconcile.PatchContext{
		Host:    a.cfg.Host,
		Mount:   a.cfg.Mount,
		Mailbox: a.mb,
		Old:     old.Children,
		New:     next.Children,
	}); err != nil {
		return err
	}
	a.baseline = next

	info := RenderInfo{Timestamp: ts, First: a.lastRender.IsZero()}
	if !info.First {
		if d := ts.Sub(a.lastRender); d > 0 {
			info.Delta = d
		}
	}
	a.lastRender = ts

	Logger().Debug("rendered",
		zap.String("app", a.id),
		zap.Bool("first", info.First),
		zap.Duration("delta", info.Delta))

	return a.drainPostRender(info)
}

// drainPostRender runs the callbacks registered before this render. Each
// resulting message is a full dispatch. Callbacks registered while draining
// belong to the next render.
func (a *App) drainPostRender(info RenderInfo) error {
	cbs := a.callbacks
	a.callbacks = nil
	for _, fn := range cbs {
		msg := fn(info)
		if msg == nil {
			continue
		}
		if err := a.Update(msg); err != nil {
			return err
		}
	}
	return nil
}
