package vdom

import (
	"strings"

	"github.com/frondui/frond/host"
)

// Node is a virtual tree node: *El or *Text.
type Node interface {
	node()
}

// El is a virtual element.
type El struct {
	Attrs     map[string]string
	bound     host.Node
	Tag       string
	Listeners []*EventListener
	Children  []Node
}

func (*El) node() {}

// Text is a virtual text node.
type Text struct {
	bound host.Node
	Text  string
}

func (*Text) node() {}

// NewEl creates an element with the given children.
func NewEl(tag string, children ...Node) *El {
	return &El{Tag: tag, Children: children}
}

// NewText creates a text node.
func NewText(text string) *Text {
	return &Text{Text: text}
}

// Attr sets an attribute and returns the element for chaining.
func (e *El) Attr(name, value string) *El {
	if e.Attrs == nil {
		e.Attrs = make(map[string]string)
	}
	e.Attrs[name] = value
	return e
}

// On registers an event listener and returns the element for chaining.
func (e *El) On(event string, handler HandlerFunc) *El {
	e.Listeners = append(e.Listeners, &EventListener{Event: event, Handler: handler})
	return e
}

// Append adds children and returns the element for chaining.
func (e *El) Append(children ...Node) *El {
	e.Children = append(e.Children, children...)
	return e
}

// Bind records the host node realizing this element.
func (e *El) Bind(n host.Node) { e.bound = n }

// HostNode returns the bound host node, or nil.
func (e *El) HostNode() host.Node { return e.bound }

// Bind records the host node realizing this text node.
func (t *Text) Bind(n host.Node) { t.bound = n }

// HostNode returns the bound host node, or nil.
func (t *Text) HostNode() host.Node { return t.bound }

// HostNodeOf returns the host node bound to any virtual node.
func HostNodeOf(n Node) host.Node {
	switch v := n.(type) {
	case *El:
		return v.bound
	case *Text:
		return v.bound
	}
	return nil
}

// Walk visits nodes in preorder, stopping at the first error.
func Walk(nodes []Node, fn func(Node) error) error {
	for _, n := range nodes {
		if err := fn(n); err != nil {
			return err
		}
		if el, ok := n.(*El); ok {
			if err := Walk(el.Children, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// StripWhitespace removes whitespace-only text nodes recursively. Adopted
// markup keeps its meaningful content and order; indentation artifacts go.
func StripWhitespace(nodes []Node) []Node {
	out := nodes[:0]
	for _, n := range nodes {
		switch v := n.(type) {
		case *Text:
			if strings.TrimSpace(v.Text) == "" {
				continue
			}
			out = append(out, v)
		case *El:
			v.Children = StripWhitespace(v.Children)
			out = append(out, v)
		default:
			out = append(out, n)
		}
	}
	return out
}
