package reconcile

import (
	"go.uber.org/zap"

	"github.com/frondui/frond/errors"
	"github.com/frondui/frond/host"
	"github.com/frondui/frond/vdom"
)

// PatchContext carries one patch operation.
type PatchContext struct {
	Host    host.Host
	Mount   host.Node
	Mailbox *vdom.Mailbox
	Old     []vdom.Node
	New     []vdom.Node
}

// Reconciler applies a new tree generation under a mount point. The old
// generation's listeners are already detached when Patch is called; Patch
// owns attaching the new generation's listeners through the mailbox.
type Reconciler interface {
	Patch(pc PatchContext) error
}

// Replacer is the replace-strategy reconciler: remove the old generation's
// host nodes, materialize the new generation from scratch.
type Replacer struct{}

// NewReplacer creates the reference reconciler.
func NewReplacer() *Replacer {
	return &Replacer{}
}

// Patch implements Reconciler.
func (r *Replacer) Patch(pc PatchContext) error {
	Logger().Debug("replace patch",
		zap.Int("old", len(pc.Old)),
		zap.Int("new", len(pc.New)))

	for _, n := range pc.Old {
		bound := vdom.HostNodeOf(n)
		if bound == nil {
			continue
		}
		if err := pc.Host.RemoveChild(pc.Mount, bound); err != nil {
			return errors.Wrap(errors.PhaseRender, errors.KindInvalidData, err, "remove old node")
		}
	}

	for _, n := range pc.New {
		built, err := materialize(pc.Host, pc.Mailbox, n)
		if err != nil {
			return err
		}
		if err := pc.Host.AppendChild(pc.Mount, built); err != nil {
			return errors.Wrap(errors.PhaseRender, errors.KindInvalidData, err, "mount new node")
		}
	}
	return nil
}

// materialize builds the host subtree for a virtual node, binding host nodes
// and attaching listeners as it goes.
func materialize(h host.Host, mb *vdom.Mailbox, n vdom.Node) (host.Node, error) {
	switch v := n.(type) {
	case *vdom.Text:
		node := h.CreateText(v.Text)
		v.Bind(node)
		return node, nil

	case *vdom.El:
		node := h.CreateElement(v.Tag)
		for name, value := range v.Attrs {
			if err := h.SetAttribute(node, name, value); err != nil {
				return nil, errors.Wrap(errors.PhaseRender, errors.KindInvalidData, err, "set attribute")
			}
		}
		v.Bind(node)
		for _, l := range v.Listeners {
			if err := l.Attach(node, h, mb); err != nil {
				return nil, err
			}
		}
		for _, c := range v.Children {
			built, err := materialize(h, mb, c)
			if err != nil {
				return nil, err
			}
			if err := h.AppendChild(node, built); err != nil {
				return nil, errors.Wrap(errors.PhaseRender, errors.KindInvalidData, err, "append child")
			}
		}
		return node, nil
	}
	return nil, errors.InvalidData(errors.PhaseRender, "unknown virtual node type")
}

// AttachTree attaches every listener in the tree to its bound host node.
// Used at startup for adopted markup that carries listeners.
func AttachTree(h host.Host, mb *vdom.Mailbox, nodes []vdom.Node) error {
	return vdom.Walk(nodes, func(n vdom.Node) error {
		el, ok := n.(*vdom.El)
		if !ok {
			return nil
		}
		if len(el.Listeners) == 0 {
			return nil
		}
		bound := el.HostNode()
		if bound == nil {
			return errors.ListenerState(errors.PhaseBootstrap, "attach",
				"element <"+el.Tag+"> has listeners but no bound host node")
		}
		for _, l := range el.Listeners {
			if err := l.Attach(bound, h, mb); err != nil {
				return err
			}
		}
		return nil
	})
}

// DetachTree detaches every attached listener in the tree. The renderer
// calls this on the outgoing baseline before patching in the new one.
func DetachTree(h host.Host, nodes []vdom.Node) error {
	return vdom.Walk(nodes, func(n vdom.Node) error {
		el, ok := n.(*vdom.El)
		if !ok {
			return nil
		}
		for _, l := range el.Listeners {
			if err := l.Detach(h); err != nil {
				return err
			}
		}
		return nil
	})
}
