package main

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	frond "github.com/frondui/frond"
	"github.com/frondui/frond/app"
	"github.com/frondui/frond/host"
	"github.com/frondui/frond/host/memdom"
)

// frameInterval is the demo's paint cadence.
const frameInterval = time.Second / 60

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2E8B57")).
			Padding(0, 1)

	screenStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// demoModel hosts a running application on an in-memory document and pumps it
// from the terminal event loop: ticks advance the document clock and fire
// frames, keys become runtime messages or document dispatches.
type demoModel struct {
	err       error
	doc       *memdom.Document
	rt        *app.App
	name      string
	input     textinput.Model
	composing bool
}

func newDemoModel(doc *memdom.Document, rt *app.App, name string) *demoModel {
	ti := textinput.New()
	ti.Placeholder = "what needs doing?"
	ti.Prompt = "> "
	ti.Width = 40
	return &demoModel{doc: doc, rt: rt, name: name, input: ti}
}

func (m *demoModel) Init() tea.Cmd {
	return tick()
}

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.pump()
		return m, tick()

	case tea.KeyMsg:
		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		case m.composing:
			if cmd, handled := m.composerKey(msg.String()); handled {
				return m, cmd
			}
		case m.name == "counter":
			return m, m.counterKey(msg.String())
		case m.name == "todo":
			return m, m.todoKey(msg.String())
		}
	}

	if m.composing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// pump runs one host tick: the clock advances, deferred work queued by the
// previous tick runs, spawned command bodies run, then pending frames fire.
func (m *demoModel) pump() {
	m.doc.AdvanceClock(frameInterval)
	if _, err := m.doc.RunDeferred(); err != nil {
		m.err = err
		return
	}
	m.doc.RunTasks()
	if _, err := m.doc.FireFrame(); err != nil {
		m.err = err
	}
}

func (m *demoModel) dispatch(msg frond.Msg) {
	if err := m.rt.Update(msg); err != nil {
		m.err = err
	}
}

func (m *demoModel) counterKey(key string) tea.Cmd {
	// The window sees every key; the subscription only exists while the
	// counter is recording.
	if err := m.doc.DispatchWindow(host.Event{Type: "keydown", Value: key}); err != nil {
		m.err = err
	}
	switch key {
	case "q":
		return tea.Quit
	case "+", "=", "up":
		m.dispatch(incMsg{by: 1})
	case "-", "down":
		m.dispatch(decMsg{by: 1})
	case "0":
		m.dispatch(resetMsg{})
	case "tab":
		m.dispatch(toggleRecordMsg{})
	}
	return nil
}

func (m *demoModel) todoKey(key string) tea.Cmd {
	switch key {
	case "q":
		return tea.Quit
	case "n":
		m.composing = true
		m.input.Focus()
		return textinput.Blink
	case "up", "k":
		m.dispatch(moveMsg{delta: -1})
	case "down", "j":
		m.dispatch(moveMsg{delta: 1})
	case "enter", " ":
		m.clickSelected()
	case "d", "backspace":
		m.dispatch(deleteSelectedMsg{})
	}
	return nil
}

// composerKey intercepts submit and cancel; every other key falls through to
// the text input.
func (m *demoModel) composerKey(key string) (tea.Cmd, bool) {
	switch key {
	case "enter":
		title := m.input.Value()
		m.input.Reset()
		m.input.Blur()
		m.composing = false
		m.dispatch(composeMsg{title: title})
		return nil, true
	case "esc":
		m.input.Reset()
		m.input.Blur()
		m.composing = false
		return nil, true
	}
	return nil, false
}

// clickSelected dispatches a click on the document node the application
// marked as selected, driving the same listener path a browser click would.
func (m *demoModel) clickSelected() {
	target := m.findByAttr(m.doc.Body(), "data-selected", "true")
	if target == nil {
		return
	}
	if err := m.doc.Dispatch(target, host.Event{Type: "click"}); err != nil {
		m.err = err
	}
}

func (m *demoModel) findByAttr(n host.Node, name, value string) host.Node {
	info, err := m.doc.Describe(n)
	if err != nil {
		return nil
	}
	if info.Kind == host.ElementNode && info.Attrs[name] == value {
		return n
	}
	kids, err := m.doc.Children(n)
	if err != nil {
		return nil
	}
	for _, kid := range kids {
		if found := m.findByAttr(kid, name, value); found != nil {
			return found
		}
	}
	return nil
}

func (m *demoModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("frond demo"))
	b.WriteString(" ")
	b.WriteString(m.name)
	b.WriteString("\n\n")

	screen, err := m.doc.RenderString(m.doc.Body())
	if err != nil {
		return errorStyle.Render("render: " + err.Error())
	}
	b.WriteString(screenStyle.Render(strings.TrimRight(screen, "\n")))
	b.WriteString("\n")

	if m.composing {
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m *demoModel) help() string {
	switch {
	case m.composing:
		return "enter add • esc cancel"
	case m.name == "todo":
		return "n new • ↑/↓ select • enter/space toggle • d delete • q quit"
	default:
		return "+/- count • 0 reset • tab record • q quit"
	}
}
