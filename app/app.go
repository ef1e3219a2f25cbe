package app

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	frond "github.com/frondui/frond"
	"github.com/frondui/frond/errors"
	"github.com/frondui/frond/host"
	"github.com/frondui/frond/reconcile"
	"github.com/frondui/frond/vdom"
)

// windowListener is one attached window subscription.
type windowListener struct {
	sub    WindowSub
	handle host.ListenerHandle
}

// App is the runtime handle. The pointer is cheaply duplicable: every
// listener, frame callback and command completion closes over the same *App.
//
// All methods except command bodies must run on the host's UI scheduler.
type App struct {
	cfg  Config
	init *InitConfig

	id string
	mb *vdom.Mailbox

	model        frond.Model
	modelCell    accessCell
	listenerCell accessCell

	baseline  *vdom.El
	frame     host.FrameRequest
	callbacks []PostRenderFn
	windows   map[string]*windowListener
	listeners []func(frond.Msg)

	lastRender time.Time
	started    bool
}

// New validates the configuration and creates an application. The host is
// not touched until Run.
func New(cfg Config, init InitConfig) (*App, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := init.validate(); err != nil {
		return nil, err
	}
	if cfg.Reconciler == nil {
		cfg.Reconciler = reconcile.NewReplacer()
	}

	a := &App{
		cfg:     cfg,
		init:    &init,
		id:      uuid.NewString()[:8],
		windows: make(map[string]*windowListener),
	}
	a.mb = vdom.NewMailbox(a.Update)

	Logger().Debug("app created", zap.String("app", a.id))
	return a, nil
}

// Update dispatches one application message: notify message listeners, run
// update, re-evaluate window subscriptions, apply the render directive, and
// drain any follow-up effects the same way. Reentrant calls from listeners,
// frame callbacks and command completions are the normal case.
//
// Update panics with a not_initialized error when called before Run. A nil
// message is dropped.
func (a *App) Update(msg frond.Msg) error {
	if !a.started {
		panic(errors.NotInitialized(errors.PhaseDispatch, "app"))
	}
	if msg == nil {
		return nil
	}
	return a.process([]effect{{kind: effectMsg, msg: msg}})
}

// Sink dispatches one global message. Without a configured sink function the
// call is a no-op.
func (a *App) Sink(gmsg frond.GlobalMsg) error {
	if !a.started {
		panic(errors.NotInitialized(errors.PhaseDispatch, "app"))
	}
	if gmsg == nil {
		return nil
	}
	return a.process([]effect{{kind: effectGlobalMsg, gmsg: gmsg}})
}

// AddMessageListener registers an observer for locally dispatched messages.
// Observers see every message exactly once, in dispatch order, before update
// runs for it; they cannot alter or veto it. Registering a listener from
// inside an observer panics.
func (a *App) AddMessageListener(fn func(frond.Msg)) {
	if fn == nil {
		return
	}
	a.listenerCell.beginWrite("add message listener")
	defer a.listenerCell.endWrite()
	a.listeners = append(a.listeners, fn)
}

func (a *App) notifyListeners(msg frond.Msg) {
	a.listenerCell.beginRead("notify message listeners")
	defer a.listenerCell.endRead()
	for _, fn := range a.listeners {
		fn(msg)
	}
}

// runUpdate holds exclusive model access for the duration of the update
// call.
func (a *App) runUpdate(msg frond.Msg, o *Orders) {
	a.modelCell.beginWrite("update")
	defer a.modelCell.endWrite()
	a.cfg.Update(msg, a.model, o)
}

// runSink holds exclusive model access for the duration of the sink call.
func (a *App) runSink(gmsg frond.GlobalMsg, o *Orders) {
	a.modelCell.beginWrite("sink")
	defer a.modelCell.endWrite()
	a.cfg.Sink(gmsg, a.model, o)
}

// runView holds shared model access for the duration of the view call.
func (a *App) runView() []vdom.Node {
	a.modelCell.beginRead("view")
	defer a.modelCell.endRead()
	return a.cfg.View(a.model)
}

// evalWindowSubs holds shared model access while deriving the wanted window
// subscriptions.
func (a *App) evalWindowSubs() []WindowSub {
	if a.cfg.WindowSubs == nil {
		return nil
	}
	a.modelCell.beginRead("window subscriptions")
	defer a.modelCell.endRead()
	return a.cfg.WindowSubs(a.model)
}
