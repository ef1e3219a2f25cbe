package guest

import (
	"bytes"
	"encoding/json"

	frond "github.com/frondui/frond"
	"github.com/frondui/frond/errors"
	"github.com/frondui/frond/host"
	"github.com/frondui/frond/vdom"
)

// treeNode is the wire shape of one guest tree node. A node carries either
// text or a tag.
type treeNode struct {
	Attrs    map[string]string `json:"attrs,omitempty"`
	Text     *string           `json:"text,omitempty"`
	Tag      string            `json:"tag,omitempty"`
	On       []string          `json:"on,omitempty"`
	Children []treeNode        `json:"children,omitempty"`
}

// decodeTree parses a guest view payload. The root may be a single node or
// an array of nodes; an empty payload is an empty view.
func decodeTree(raw []byte) ([]vdom.Node, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var roots []treeNode
		if err := json.Unmarshal(trimmed, &roots); err != nil {
			return nil, errors.Wrap(errors.PhaseRender, errors.KindInvalidData, err, "decode guest tree")
		}
		return buildNodes(roots)
	}
	var root treeNode
	if err := json.Unmarshal(trimmed, &root); err != nil {
		return nil, errors.Wrap(errors.PhaseRender, errors.KindInvalidData, err, "decode guest tree")
	}
	return buildNodes([]treeNode{root})
}

func buildNodes(tns []treeNode) ([]vdom.Node, error) {
	var out []vdom.Node
	for _, tn := range tns {
		n, err := buildNode(tn)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}

func buildNode(tn treeNode) (vdom.Node, error) {
	if tn.Text != nil {
		return vdom.NewText(*tn.Text), nil
	}
	if tn.Tag == "" {
		return nil, errors.InvalidData(errors.PhaseRender, "guest node has neither tag nor text")
	}

	el := vdom.NewEl(tn.Tag)
	for name, value := range tn.Attrs {
		el.Attr(name, value)
	}
	for _, event := range tn.On {
		name := event
		el.On(event, func(ev host.Event) frond.Msg {
			return DOMEvent{Name: name, Event: ev}
		})
	}
	children, err := buildNodes(tn.Children)
	if err != nil {
		return nil, err
	}
	el.Append(children...)
	return el, nil
}
