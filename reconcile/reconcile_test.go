package reconcile

import (
	stderrors "errors"
	"testing"

	frond "github.com/frondui/frond"
	"github.com/frondui/frond/errors"
	"github.com/frondui/frond/host"
	"github.com/frondui/frond/host/memdom"
	"github.com/frondui/frond/vdom"
)

type clicked struct{ id string }

func collectMailbox(t *testing.T) (*vdom.Mailbox, *[]frond.Msg) {
	t.Helper()
	var got []frond.Msg
	mb := vdom.NewMailbox(func(msg frond.Msg) error {
		got = append(got, msg)
		return nil
	})
	return mb, &got
}

func TestReplacer_MaterializesTree(t *testing.T) {
	doc := memdom.NewDocument()
	mb, got := collectMailbox(t)

	view := []vdom.Node{
		vdom.NewEl("div",
			vdom.NewEl("button", vdom.NewText("+")).
				Attr("id", "inc").
				On("click", func(host.Event) frond.Msg { return clicked{id: "inc"} }),
			vdom.NewText("count: 0"),
		).Attr("class", "counter"),
	}

	err := NewReplacer().Patch(PatchContext{
		Host:    doc,
		Mount:   doc.Body(),
		Mailbox: mb,
		New:     view,
	})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}

	// Host tree mirrors the virtual tree.
	rendered, err := doc.RenderString(doc.Body())
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := "<body>\n" +
		"  <div class=\"counter\">\n" +
		"    <button id=\"inc\">\n" +
		"      \"+\"\n" +
		"    \"count: 0\"\n"
	if rendered != want {
		t.Fatalf("rendered tree:\n%s\nwant:\n%s", rendered, want)
	}

	// Listener is live and routes through the mailbox.
	if n := doc.ListenerCount(); n != 1 {
		t.Fatalf("listener count = %d, want 1", n)
	}
	button := view[0].(*vdom.El).Children[0].(*vdom.El)
	if button.HostNode() == nil {
		t.Fatal("button was not bound to a host node")
	}
	if err := doc.Dispatch(button.HostNode(), host.Event{Type: "click"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(*got) != 1 {
		t.Fatalf("messages = %d, want 1", len(*got))
	}
	if msg, ok := (*got)[0].(clicked); !ok || msg.id != "inc" {
		t.Fatalf("message = %#v, want clicked{inc}", (*got)[0])
	}
}

func TestReplacer_ReplacesOldGeneration(t *testing.T) {
	doc := memdom.NewDocument()
	mb, _ := collectMailbox(t)
	r := NewReplacer()

	gen1 := []vdom.Node{
		vdom.NewEl("p", vdom.NewText("first")).
			On("click", func(host.Event) frond.Msg { return clicked{id: "first"} }),
	}
	if err := r.Patch(PatchContext{Host: doc, Mount: doc.Body(), Mailbox: mb, New: gen1}); err != nil {
		t.Fatalf("patch gen1: %v", err)
	}
	if n := doc.ListenerCount(); n != 1 {
		t.Fatalf("listener count after gen1 = %d, want 1", n)
	}

	// The render path detaches the outgoing generation before patching.
	if err := DetachTree(doc, gen1); err != nil {
		t.Fatalf("detach gen1: %v", err)
	}
	gen2 := []vdom.Node{
		vdom.NewEl("p", vdom.NewText("second")),
		vdom.NewEl("p", vdom.NewText("third")),
	}
	if err := r.Patch(PatchContext{Host: doc, Mount: doc.Body(), Mailbox: mb, Old: gen1, New: gen2}); err != nil {
		t.Fatalf("patch gen2: %v", err)
	}

	children, err := doc.Children(doc.Body())
	if err != nil {
		t.Fatalf("children: %v", err)
	}
	if len(children) != 2 {
		t.Fatalf("body children = %d, want 2", len(children))
	}
	for i, want := range []string{"second", "third"} {
		info, err := doc.Describe(children[i])
		if err != nil {
			t.Fatalf("describe child %d: %v", i, err)
		}
		if info.Tag != "p" {
			t.Errorf("child %d tag = %q, want p", i, info.Tag)
		}
		grand, err := doc.Children(children[i])
		if err != nil {
			t.Fatalf("grandchildren %d: %v", i, err)
		}
		text, err := doc.Describe(grand[0])
		if err != nil {
			t.Fatalf("describe text %d: %v", i, err)
		}
		if text.Text != want {
			t.Errorf("child %d text = %q, want %q", i, text.Text, want)
		}
	}
	if n := doc.ListenerCount(); n != 0 {
		t.Fatalf("listener count after gen2 = %d, want 0", n)
	}
}

func TestReplacer_SkipsUnboundOldNodes(t *testing.T) {
	doc := memdom.NewDocument()
	mb, _ := collectMailbox(t)

	// An old node that never made it to the host tree is not an error.
	old := []vdom.Node{vdom.NewEl("div")}
	err := NewReplacer().Patch(PatchContext{
		Host:    doc,
		Mount:   doc.Body(),
		Mailbox: mb,
		Old:     old,
		New:     []vdom.Node{vdom.NewText("ok")},
	})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	children, err := doc.Children(doc.Body())
	if err != nil {
		t.Fatalf("children: %v", err)
	}
	if len(children) != 1 {
		t.Fatalf("body children = %d, want 1", len(children))
	}
}

func TestAttachTree(t *testing.T) {
	doc := memdom.NewDocument()
	mb, got := collectMailbox(t)

	el := vdom.NewEl("a").On("click", func(host.Event) frond.Msg { return clicked{id: "link"} })

	// Listeners on an unbound element cannot be attached.
	err := AttachTree(doc, mb, []vdom.Node{el})
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseBootstrap, Kind: errors.KindListenerState}) {
		t.Fatalf("attach unbound = %v, want listener_state", err)
	}

	n := doc.CreateElement("a")
	if err := doc.AppendChild(doc.Body(), n); err != nil {
		t.Fatalf("append: %v", err)
	}
	el.Bind(n)
	if err := AttachTree(doc, mb, []vdom.Node{el}); err != nil {
		t.Fatalf("attach bound: %v", err)
	}
	if err := doc.Dispatch(n, host.Event{Type: "click"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if len(*got) != 1 {
		t.Fatalf("messages = %d, want 1", len(*got))
	}
}

func TestDetachTree_DoubleDetach(t *testing.T) {
	doc := memdom.NewDocument()
	mb, _ := collectMailbox(t)

	view := []vdom.Node{
		vdom.NewEl("button").On("click", func(host.Event) frond.Msg { return nil }),
	}
	if err := NewReplacer().Patch(PatchContext{Host: doc, Mount: doc.Body(), Mailbox: mb, New: view}); err != nil {
		t.Fatalf("patch: %v", err)
	}

	if err := DetachTree(doc, view); err != nil {
		t.Fatalf("first detach: %v", err)
	}
	if n := doc.ListenerCount(); n != 0 {
		t.Fatalf("listener count = %d, want 0", n)
	}
	err := DetachTree(doc, view)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseRender, Kind: errors.KindListenerState}) {
		t.Fatalf("second detach = %v, want listener_state", err)
	}
}
