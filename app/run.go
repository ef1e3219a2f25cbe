package app

import (
	"go.uber.org/zap"

	"github.com/frondui/frond/errors"
	"github.com/frondui/frond/host"
	"github.com/frondui/frond/nav"
	"github.com/frondui/frond/reconcile"
	"github.com/frondui/frond/vdom"
)

// Run performs startup: consume the init config, bootstrap the baseline from
// the mount point, obtain the initial model, wire window and navigation
// listeners, drain the startup effects, and render once.
//
// The init config is one-shot; a second Run panics with an init_consumed
// error.
func (a *App) Run() error {
	if a.init == nil {
		panic(errors.InitConsumed())
	}
	init := *a.init
	a.init = nil

	log := Logger()
	log.Info("starting",
		zap.String("app", a.id),
		zap.Int("mount_type", int(init.MountType)))

	if err := a.bootstrap(init.MountType); err != nil {
		return err
	}

	// The after-mount hook sees the current location and produces the
	// initial model plus any startup effects.
	loc := a.cfg.Host.Location()
	o := newOrders()
	am := init.AfterMount(loc, o)
	if am.Model == nil {
		panic(errors.ModelMissing("after mount"))
	}
	a.model = am.Model
	a.callbacks = append(a.callbacks, o.callbacks...)

	queue := o.effects
	if am.URLHandling == PassToRoutes && a.cfg.Routes != nil {
		if msg, ok := a.cfg.Routes(loc); ok && msg != nil {
			queue = append(queue, effect{kind: effectMsg, msg: msg})
		}
	}

	if err := a.syncWindowSubs(); err != nil {
		return err
	}
	if err := reconcile.AttachTree(a.cfg.Host, a.mb, a.baseline.Children); err != nil {
		return err
	}
	if err := a.subscribeNav(); err != nil {
		return err
	}

	a.started = true

	if err := a.process(queue); err != nil {
		return err
	}

	// Startup ends with exactly one render. Anything the drain scheduled is
	// superseded by it.
	a.cancelRender()
	if err := a.render(); err != nil {
		return err
	}

	log.Info("started", zap.String("app", a.id))
	return nil
}

// bootstrap builds the initial baseline tree from the mount point.
func (a *App) bootstrap(mt MountType) error {
	switch mt {
	case Append:
		a.baseline = a.newBaselineRoot(nil)
		return nil
	case Takeover:
		return a.takeover()
	default:
		return errors.Unsupported(errors.PhaseBootstrap, "mount type")
	}
}

// takeover adopts the mount point's current children as the baseline. The
// adopted tree keeps its host node bindings; whitespace-only text nodes are
// dropped from both the tree and the live document, and the remaining nodes
// are re-appended in document order.
func (a *App) takeover() error {
	h := a.cfg.Host

	adopted, err := a.adopt(a.cfg.Mount)
	if err != nil {
		return err
	}
	adopted = vdom.StripWhitespace(adopted)

	current, err := h.Children(a.cfg.Mount)
	if err != nil {
		return err
	}
	for _, c := range current {
		if err := h.RemoveChild(a.cfg.Mount, c); err != nil {
			return err
		}
	}
	for _, n := range adopted {
		bound := vdom.HostNodeOf(n)
		if bound == nil {
			continue
		}
		if err := h.AppendChild(a.cfg.Mount, bound); err != nil {
			return err
		}
	}

	a.baseline = a.newBaselineRoot(adopted)
	return nil
}

// adopt reads the host subtree under n into virtual nodes bound to their
// host counterparts. Node kinds the virtual tree cannot express are skipped.
func (a *App) adopt(n host.Node) ([]vdom.Node, error) {
	h := a.cfg.Host

	children, err := h.Children(n)
	if err != nil {
		return nil, err
	}
	var out []vdom.Node
	for _, c := range children {
		info, err := h.Describe(c)
		if err != nil {
			return nil, err
		}
		switch info.Kind {
		case host.TextNode:
			t := vdom.NewText(info.Text)
			t.Bind(c)
			out = append(out, t)
		case host.ElementNode:
			el := vdom.NewEl(info.Tag)
			for name, value := range info.Attrs {
				el.Attr(name, value)
			}
			grand, err := a.adopt(c)
			if err != nil {
				return nil, err
			}
			el.Append(grand...)
			el.Bind(c)
			out = append(out, el)
		}
	}
	return out, nil
}

func (a *App) newBaselineRoot(children []vdom.Node) *vdom.El {
	root := vdom.NewEl("root", children...)
	root.Bind(a.cfg.Mount)
	return root
}

// subscribeNav wires the three navigation sources. Each dispatches through
// the routes function; without one, navigation events are inert.
func (a *App) subscribeNav() error {
	for _, ev := range []host.NavEvent{host.NavPopState, host.NavHashChange, host.NavLinkClick} {
		if _, err := a.cfg.Host.SubscribeNav(ev, a.routeTo); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) routeTo(loc nav.Location) error {
	if a.cfg.Routes == nil {
		return nil
	}
	msg, ok := a.cfg.Routes(loc)
	if !ok || msg == nil {
		return nil
	}
	return a.Update(msg)
}
