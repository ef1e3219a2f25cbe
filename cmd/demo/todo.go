package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	frond "github.com/frondui/frond"
	"github.com/frondui/frond/app"
	"github.com/frondui/frond/host"
	"github.com/frondui/frond/host/memdom"
	"github.com/frondui/frond/nav"
	"github.com/frondui/frond/vdom"
)

// todoState is the todo demo's model. Mutations apply locally first; the
// matching store write runs as a command and reports failures through status.
type todoState struct {
	status   string
	items    []todoItem
	selected int
}

func (st *todoState) clampSelection() {
	if st.selected >= len(st.items) {
		st.selected = len(st.items) - 1
	}
	if st.selected < 0 {
		st.selected = 0
	}
}

type itemsLoadedMsg struct{ items []todoItem }
type storeFailedMsg struct{ err error }
type composeMsg struct{ title string }
type itemSavedMsg struct{ id string }
type moveMsg struct{ delta int }
type toggleRequestMsg struct{ id string }
type itemToggledMsg struct{ id string }
type deleteSelectedMsg struct{}
type itemDeletedMsg struct{ id string }

// todoApp drives a sqlite-backed todo list. Every store operation flows
// through a command and resolves to a message.
type todoApp struct {
	store *todoStore
}

func (t *todoApp) config(doc *memdom.Document) app.Config {
	return app.Config{
		Update: t.update,
		View:   t.view,
		Mount:  doc.Body(),
		Host:   doc,
	}
}

func (t *todoApp) afterMount(_ nav.Location, o *app.Orders) app.AfterMount {
	o.PerformCmd(t.loadCmd)
	return app.AfterMount{Model: &todoState{status: "loading"}}
}

func (t *todoApp) update(msg frond.Msg, model frond.Model, o *app.Orders) {
	st := model.(*todoState)
	switch msg := msg.(type) {
	case itemsLoadedMsg:
		st.items = msg.items
		st.status = ""
		st.clampSelection()
	case storeFailedMsg:
		st.status = msg.err.Error()
	case composeMsg:
		title := strings.TrimSpace(msg.title)
		if title == "" {
			o.Skip()
			return
		}
		it := todoItem{id: uuid.NewString(), title: title}
		st.items = append(st.items, it)
		st.selected = len(st.items) - 1
		o.PerformCmd(t.saveCmd(it))
	case moveMsg:
		st.selected += msg.delta
		st.clampSelection()
	case toggleRequestMsg:
		for i := range st.items {
			if st.items[i].id == msg.id {
				st.items[i].done = !st.items[i].done
				o.PerformCmd(t.toggleCmd(msg.id, st.items[i].done))
				return
			}
		}
		o.Skip()
	case deleteSelectedMsg:
		if len(st.items) == 0 {
			o.Skip()
			return
		}
		it := st.items[st.selected]
		st.items = append(st.items[:st.selected], st.items[st.selected+1:]...)
		st.clampSelection()
		o.PerformCmd(t.deleteCmd(it.id))
	case itemSavedMsg, itemToggledMsg, itemDeletedMsg:
		// the optimistic mutation already rendered
		o.Skip()
	default:
		o.Skip()
	}
}

func (t *todoApp) loadCmd(ctx context.Context) frond.Msg {
	items, err := t.store.List(ctx)
	if err != nil {
		return storeFailedMsg{err: err}
	}
	return itemsLoadedMsg{items: items}
}

func (t *todoApp) saveCmd(it todoItem) app.Cmd {
	return func(ctx context.Context) frond.Msg {
		if err := t.store.Add(ctx, it); err != nil {
			return storeFailedMsg{err: err}
		}
		return itemSavedMsg{id: it.id}
	}
}

func (t *todoApp) toggleCmd(id string, done bool) app.Cmd {
	return func(ctx context.Context) frond.Msg {
		if err := t.store.SetDone(ctx, id, done); err != nil {
			return storeFailedMsg{err: err}
		}
		return itemToggledMsg{id: id}
	}
}

func (t *todoApp) deleteCmd(id string) app.Cmd {
	return func(ctx context.Context) frond.Msg {
		if err := t.store.Delete(ctx, id); err != nil {
			return storeFailedMsg{err: err}
		}
		return itemDeletedMsg{id: id}
	}
}

func (t *todoApp) view(model frond.Model) []vdom.Node {
	st := model.(*todoState)

	list := vdom.NewEl("ul").Attr("class", "todos")
	for i := range st.items {
		it := st.items[i]
		mark := "[ ]"
		if it.done {
			mark = "[x]"
		}
		row := vdom.NewEl("li", vdom.NewText(mark+" "+it.title)).
			Attr("id", it.id).
			On("click", func(host.Event) frond.Msg { return toggleRequestMsg{id: it.id} })
		if i == st.selected {
			row.Attr("data-selected", "true")
		}
		list.Append(row)
	}

	nodes := []vdom.Node{
		vdom.NewEl("h1", vdom.NewText(fmt.Sprintf("todos (%d)", len(st.items)))),
	}
	if st.status != "" {
		nodes = append(nodes, vdom.NewEl("p", vdom.NewText(st.status)).Attr("class", "status"))
	}
	if len(st.items) == 0 && st.status == "" {
		nodes = append(nodes, vdom.NewEl("p", vdom.NewText("nothing to do")).Attr("class", "empty"))
	} else {
		nodes = append(nodes, list)
	}
	return []vdom.Node{vdom.NewEl("div", nodes...).Attr("class", "todo")}
}
