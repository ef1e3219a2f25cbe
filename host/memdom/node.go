package memdom

import (
	"sort"

	"github.com/frondui/frond/host"
)

// Node is a concrete in-memory document node. Fields are owned by the
// document; mutate only through Document methods.
type Node struct {
	attrs     map[string]string
	listeners map[string][]handle
	parent    *Node
	children  []*Node
	tag       string
	text      string
	kind      host.NodeKind
}

func newElement(tag string) *Node {
	return &Node{kind: host.ElementNode, tag: tag}
}

func newText(text string) *Node {
	return &Node{kind: host.TextNode, text: text}
}

// Kind returns the node's classification.
func (n *Node) Kind() host.NodeKind { return n.kind }

// Tag returns the element tag, or "" for non-elements.
func (n *Node) Tag() string { return n.tag }

// Text returns the text content, or "" for non-text nodes.
func (n *Node) Text() string { return n.text }

// Attr returns the named attribute value.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.attrs[name]
	return v, ok
}

// attrNames returns attribute names in stable order.
func (n *Node) attrNames() []string {
	if len(n.attrs) == 0 {
		return nil
	}
	names := make([]string, 0, len(n.attrs))
	for name := range n.attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (n *Node) detachFromParent() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}

// isAncestorOf reports whether n is an ancestor of other.
func (n *Node) isAncestorOf(other *Node) bool {
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}
