package app

import (
	"context"
	"time"

	frond "github.com/frondui/frond"
	"github.com/frondui/frond/errors"
	"github.com/frondui/frond/host"
	"github.com/frondui/frond/nav"
	"github.com/frondui/frond/reconcile"
	"github.com/frondui/frond/vdom"
)

// RenderDirective tells the runtime what to do with the screen after an
// update or sink call.
type RenderDirective int

const (
	// Render schedules a coalesced render on the next host frame.
	Render RenderDirective = iota
	// ForceRenderNow cancels any scheduled frame and renders synchronously.
	ForceRenderNow
	// Skip leaves the screen untouched.
	Skip
)

// Cmd is an asynchronous unit of work resolving to exactly one message.
// Success and failure are both expressed as messages; the application
// branches on its own message variants. A nil result dispatches nothing.
type Cmd func(ctx context.Context) frond.Msg

// GlobalCmd is a Cmd resolving on the global channel.
type GlobalCmd func(ctx context.Context) frond.GlobalMsg

// UpdateFn folds one message into the model. Follow-up work goes through the
// orders.
type UpdateFn func(msg frond.Msg, model frond.Model, o *Orders)

// SinkFn folds one global message into the model.
type SinkFn func(gmsg frond.GlobalMsg, model frond.Model, o *Orders)

// ViewFn builds the virtual tree for the current model.
type ViewFn func(model frond.Model) []vdom.Node

// RoutesFn maps a location to a message. Returning false means the location
// is not handled and no dispatch happens.
type RoutesFn func(loc nav.Location) (frond.Msg, bool)

// WindowSub declares one window-level event subscription. Subscriptions are
// re-evaluated after every update and diffed by event name, so the handler of
// an unchanged name is left in place.
type WindowSub struct {
	Handler func(ev host.Event) frond.Msg
	Event   string
}

// WindowSubsFn derives the wanted window subscriptions from the model.
type WindowSubsFn func(model frond.Model) []WindowSub

// RenderInfo describes one completed render. First is true on the render
// with no predecessor; otherwise Delta is the non-negative gap to the
// previous render.
type RenderInfo struct {
	Timestamp time.Time
	Delta     time.Duration
	First     bool
}

// PostRenderFn runs once after the next render completes. A non-nil result
// is dispatched as a regular message.
type PostRenderFn func(info RenderInfo) frond.Msg

// MountType selects how the baseline tree is bootstrapped from the mount
// point.
type MountType int

const (
	// Append starts from an empty baseline and leaves the mount point's
	// existing children alone.
	Append MountType = iota
	// Takeover adopts the mount point's existing children as the baseline,
	// dropping whitespace-only text nodes.
	Takeover
)

// URLHandling decides whether startup feeds the current location through the
// routes function.
type URLHandling int

const (
	PassToRoutes URLHandling = iota
	SkipRoutes
)

// AfterMount carries the result of the after-mount hook: the initial model
// and the URL handling choice.
type AfterMount struct {
	Model       frond.Model
	URLHandling URLHandling
}

// AfterMountFn produces the initial model. It sees the current location and
// may place startup effects and post-render callbacks on the orders.
type AfterMountFn func(loc nav.Location, o *Orders) AfterMount

// Config is the immutable application configuration. Update, View, Mount and
// Host are required; the zero Reconciler defaults to the replace strategy.
type Config struct {
	Update     UpdateFn
	Sink       SinkFn
	View       ViewFn
	Routes     RoutesFn
	WindowSubs WindowSubsFn
	Mount      host.Node
	Host       host.Host
	Reconciler reconcile.Reconciler
}

func (c *Config) validate() error {
	if c.Update == nil {
		return errors.InvalidInput(errors.PhaseConfig, "update function is required")
	}
	if c.View == nil {
		return errors.InvalidInput(errors.PhaseConfig, "view function is required")
	}
	if c.Host == nil {
		return errors.InvalidInput(errors.PhaseConfig, "host is required")
	}
	if c.Mount == nil {
		return errors.MountMissing("config carries no mount node")
	}
	return nil
}

// InitConfig is the one-shot startup configuration, consumed by the first
// Run call.
type InitConfig struct {
	AfterMount AfterMountFn
	MountType  MountType
}

func (c *InitConfig) validate() error {
	if c.AfterMount == nil {
		return errors.InvalidInput(errors.PhaseConfig, "after-mount function is required")
	}
	return nil
}
