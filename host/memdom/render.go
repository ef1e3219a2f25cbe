package memdom

import (
	"strconv"
	"strings"

	"github.com/frondui/frond/host"
)

// RenderString renders the subtree under n as indented plain text, with
// attributes in sorted order. The output is stable, so tests can golden it
// and the demo can paint it.
func (d *Document) RenderString(n host.Node) (string, error) {
	mn, err := d.node(n, "render-string")
	if err != nil {
		return "", err
	}
	var b strings.Builder
	renderNode(&b, mn, 0)
	return b.String(), nil
}

func renderNode(b *strings.Builder, n *Node, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
	switch n.kind {
	case host.TextNode:
		b.WriteString(strconv.Quote(n.text))
		b.WriteByte('\n')
	case host.ElementNode:
		b.WriteByte('<')
		b.WriteString(n.tag)
		for _, name := range n.attrNames() {
			b.WriteByte(' ')
			b.WriteString(name)
			b.WriteString("=")
			b.WriteString(strconv.Quote(n.attrs[name]))
		}
		b.WriteString(">\n")
		for _, c := range n.children {
			renderNode(b, c, depth+1)
		}
	default:
		b.WriteString("<?>\n")
	}
}
