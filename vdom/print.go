package vdom

import (
	"sort"
	"strconv"
	"strings"
)

// Sprint renders a virtual tree as indented plain text with attributes in
// sorted order and listener events marked inline. Output is stable across
// runs, so tests can golden it.
func Sprint(nodes []Node) string {
	var b strings.Builder
	for _, n := range nodes {
		sprintNode(&b, n, 0)
	}
	return b.String()
}

func sprintNode(b *strings.Builder, n Node, depth int) {
	for i := 0; i < depth; i++ {
		b.WriteString("  ")
	}
	switch v := n.(type) {
	case *Text:
		b.WriteString(strconv.Quote(v.Text))
		b.WriteByte('\n')
	case *El:
		b.WriteByte('<')
		b.WriteString(v.Tag)
		names := make([]string, 0, len(v.Attrs))
		for name := range v.Attrs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b.WriteByte(' ')
			b.WriteString(name)
			b.WriteByte('=')
			b.WriteString(strconv.Quote(v.Attrs[name]))
		}
		for _, l := range v.Listeners {
			b.WriteString(" on:")
			b.WriteString(l.Event)
		}
		b.WriteString(">\n")
		for _, c := range v.Children {
			sprintNode(b, c, depth+1)
		}
	}
}
