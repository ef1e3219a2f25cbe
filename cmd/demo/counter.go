package main

import (
	"fmt"

	frond "github.com/frondui/frond"
	"github.com/frondui/frond/app"
	"github.com/frondui/frond/host"
	"github.com/frondui/frond/host/memdom"
	"github.com/frondui/frond/nav"
	"github.com/frondui/frond/vdom"
)

// counterState is the counter demo's model.
type counterState struct {
	lastKey    string
	count      int
	frames     int
	keystrokes int
	recording  bool
}

type incMsg struct{ by int }
type decMsg struct{ by int }
type resetMsg struct{}
type toggleRecordMsg struct{}
type capturedKeyMsg struct{ key string }
type framePaintedMsg struct{}

// counterApp drives a counter with a self-sustaining paint loop: every render
// re-registers the post-render callback, so the frame counter ticks at the
// host's frame rate.
type counterApp struct{}

func (c *counterApp) config(doc *memdom.Document) app.Config {
	return app.Config{
		Update:     c.update,
		View:       c.view,
		WindowSubs: c.windowSubs,
		Mount:      doc.Body(),
		Host:       doc,
	}
}

func (c *counterApp) afterMount(_ nav.Location, o *app.Orders) app.AfterMount {
	o.AfterNextRender(c.afterPaint)
	return app.AfterMount{Model: &counterState{}}
}

func (c *counterApp) afterPaint(app.RenderInfo) frond.Msg { return framePaintedMsg{} }

func (c *counterApp) update(msg frond.Msg, model frond.Model, o *app.Orders) {
	st := model.(*counterState)
	switch msg := msg.(type) {
	case incMsg:
		st.count += msg.by
	case decMsg:
		st.count -= msg.by
	case resetMsg:
		st.count = 0
	case toggleRecordMsg:
		st.recording = !st.recording
	case capturedKeyMsg:
		st.keystrokes++
		st.lastKey = msg.key
	case framePaintedMsg:
		st.frames++
		o.AfterNextRender(c.afterPaint)
	default:
		o.Skip()
	}
}

func (c *counterApp) windowSubs(model frond.Model) []app.WindowSub {
	st := model.(*counterState)
	if !st.recording {
		return nil
	}
	return []app.WindowSub{{
		Event: "keydown",
		Handler: func(ev host.Event) frond.Msg {
			return capturedKeyMsg{key: ev.Value}
		},
	}}
}

func (c *counterApp) view(model frond.Model) []vdom.Node {
	st := model.(*counterState)
	rec := "off"
	if st.recording {
		rec = fmt.Sprintf("on, %d keys captured", st.keystrokes)
		if st.lastKey != "" {
			rec += fmt.Sprintf(", last %q", st.lastKey)
		}
	}
	return []vdom.Node{
		vdom.NewEl("div",
			vdom.NewEl("h1", vdom.NewText("counter")),
			vdom.NewEl("p", vdom.NewText(fmt.Sprintf("count: %d", st.count))).Attr("class", "count"),
			vdom.NewEl("p", vdom.NewText(fmt.Sprintf("frames painted: %d", st.frames))),
			vdom.NewEl("p", vdom.NewText("recording: "+rec)),
		).Attr("class", "counter"),
	}
}
