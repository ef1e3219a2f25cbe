package app

import (
	stderrors "errors"
	"strings"
	"testing"

	frond "github.com/frondui/frond"
	"github.com/frondui/frond/errors"
	"github.com/frondui/frond/host"
	"github.com/frondui/frond/host/memdom"
	"github.com/frondui/frond/nav"
	"github.com/frondui/frond/vdom"
)

func TestNew_Validation(t *testing.T) {
	doc := memdom.NewDocument()
	valid := func() (Config, InitConfig) {
		cfg := Config{
			Update: func(frond.Msg, frond.Model, *Orders) {},
			View:   func(frond.Model) []vdom.Node { return nil },
			Mount:  doc.Body(),
			Host:   doc,
		}
		init := InitConfig{
			AfterMount: func(nav.Location, *Orders) AfterMount {
				return AfterMount{Model: &counterModel{}}
			},
		}
		return cfg, init
	}

	tests := []struct {
		name   string
		mutate func(cfg *Config, init *InitConfig)
		kind   errors.Kind
	}{
		{
			name:   "missing update",
			mutate: func(cfg *Config, init *InitConfig) { cfg.Update = nil },
			kind:   errors.KindInvalidInput,
		},
		{
			name:   "missing view",
			mutate: func(cfg *Config, init *InitConfig) { cfg.View = nil },
			kind:   errors.KindInvalidInput,
		},
		{
			name:   "missing host",
			mutate: func(cfg *Config, init *InitConfig) { cfg.Host = nil },
			kind:   errors.KindInvalidInput,
		},
		{
			name:   "missing mount",
			mutate: func(cfg *Config, init *InitConfig) { cfg.Mount = nil },
			kind:   errors.KindMountMissing,
		},
		{
			name:   "missing after-mount",
			mutate: func(cfg *Config, init *InitConfig) { init.AfterMount = nil },
			kind:   errors.KindInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, init := valid()
			tt.mutate(&cfg, &init)
			_, err := New(cfg, init)
			if err == nil {
				t.Fatal("expected an error")
			}
			var e *errors.Error
			if !stderrors.As(err, &e) || e.Kind != tt.kind {
				t.Fatalf("err = %v, want kind %s", err, tt.kind)
			}
		})
	}

	cfg, init := valid()
	if _, err := New(cfg, init); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestRun_StartupRendersExactlyOnce(t *testing.T) {
	f := newFixture(t, func(f *fixture, cfg *Config, init *InitConfig) {
		init.AfterMount = func(_ nav.Location, o *Orders) AfterMount {
			// Startup effects drain before the startup render.
			o.SendMsg(incMsg{by: 2})
			return AfterMount{Model: f.model}
		}
	}).run(t)

	if f.views != 1 {
		t.Fatalf("views = %d, want 1", f.views)
	}
	if f.model.count != 2 {
		t.Fatalf("count = %d, want 2", f.model.count)
	}
	if got := f.body(t); !strings.Contains(got, `"count: 2"`) {
		t.Fatalf("startup render missed the drained effect:\n%s", got)
	}
	// The drain's scheduled frame was superseded, not left pending.
	if n := f.doc.PendingFrames(); n != 0 {
		t.Fatalf("pending frames = %d, want 0", n)
	}
}

func TestRun_SecondRunPanics(t *testing.T) {
	f := newFixture(t, nil).run(t)

	defer wantPanicKind(t, errors.PhaseStartup, errors.KindInitConsumed)
	_ = f.app.Run()
}

func TestRun_NilModelPanics(t *testing.T) {
	f := newFixture(t, func(f *fixture, cfg *Config, init *InitConfig) {
		init.AfterMount = func(nav.Location, *Orders) AfterMount {
			return AfterMount{}
		}
	})

	defer wantPanicKind(t, errors.PhaseStartup, errors.KindModelMissing)
	_ = f.app.Run()
}

func TestRun_PassToRoutesFeedsInitialLocation(t *testing.T) {
	f := newFixture(t, func(f *fixture, cfg *Config, init *InitConfig) {
		cfg.Routes = func(loc nav.Location) (frond.Msg, bool) {
			return setPathMsg{path: loc.String()}, true
		}
	})
	f.doc.SetLocation(nav.Location{Href: "/start", Path: "/start"})
	f.run(t)

	if f.model.path != "/start" {
		t.Fatalf("path = %q, want /start", f.model.path)
	}
}

func TestRun_SkipRoutesIgnoresInitialLocation(t *testing.T) {
	f := newFixture(t, func(f *fixture, cfg *Config, init *InitConfig) {
		cfg.Routes = func(loc nav.Location) (frond.Msg, bool) {
			return setPathMsg{path: loc.String()}, true
		}
		init.AfterMount = func(nav.Location, *Orders) AfterMount {
			return AfterMount{Model: f.model, URLHandling: SkipRoutes}
		}
	})
	f.doc.SetLocation(nav.Location{Href: "/start", Path: "/start"})
	f.run(t)

	if f.model.path != "" {
		t.Fatalf("path = %q, want empty", f.model.path)
	}
}

func TestRun_WindowSubsAttachedAtStartup(t *testing.T) {
	f := newFixture(t, func(f *fixture, cfg *Config, init *InitConfig) {
		f.model.listening = true
		cfg.WindowSubs = func(model frond.Model) []WindowSub {
			if !model.(*counterModel).listening {
				return nil
			}
			return []WindowSub{{
				Event:   "keydown",
				Handler: func(host.Event) frond.Msg { return incMsg{by: 1} },
			}}
		}
	}).run(t)

	if err := f.doc.DispatchWindow(host.Event{Type: "keydown"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if f.model.count != 1 {
		t.Fatalf("count = %d, want 1", f.model.count)
	}
}

func TestNavigation_AllSourcesRoute(t *testing.T) {
	f := newFixture(t, func(f *fixture, cfg *Config, init *InitConfig) {
		cfg.Routes = func(loc nav.Location) (frond.Msg, bool) {
			return setPathMsg{path: loc.String()}, true
		}
	}).run(t)

	if err := f.doc.Navigate(nav.Location{Path: "/a"}); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if f.model.path != "/a" {
		t.Fatalf("path after popstate = %q, want /a", f.model.path)
	}

	if err := f.doc.SetHash("top"); err != nil {
		t.Fatalf("set hash: %v", err)
	}
	if f.model.path != "/a#top" {
		t.Fatalf("path after hashchange = %q, want /a#top", f.model.path)
	}

	if err := f.doc.ClickLink(nav.Location{Path: "/b"}); err != nil {
		t.Fatalf("click link: %v", err)
	}
	if f.model.path != "/b" {
		t.Fatalf("path after link click = %q, want /b", f.model.path)
	}
}

func TestNavigation_UnhandledLocationAndNoRoutes(t *testing.T) {
	// Routes that decline a location leave the model alone.
	f := newFixture(t, func(f *fixture, cfg *Config, init *InitConfig) {
		cfg.Routes = func(loc nav.Location) (frond.Msg, bool) {
			if loc.Path == "/known" {
				return setPathMsg{path: loc.Path}, true
			}
			return nil, false
		}
	}).run(t)

	if err := f.doc.Navigate(nav.Location{Path: "/unknown"}); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if f.model.path != "" {
		t.Fatalf("path = %q, want empty", f.model.path)
	}
	if err := f.doc.Navigate(nav.Location{Path: "/known"}); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if f.model.path != "/known" {
		t.Fatalf("path = %q, want /known", f.model.path)
	}

	// No routes at all: navigation is inert.
	g := newFixture(t, nil).run(t)
	if err := g.doc.Navigate(nav.Location{Path: "/x"}); err != nil {
		t.Fatalf("navigate: %v", err)
	}
	if g.model.path != "" {
		t.Fatalf("path = %q, want empty", g.model.path)
	}
}

func TestBootstrap_TakeoverAdoptsAndStrips(t *testing.T) {
	f := newFixture(t, nil)
	doc := f.doc
	body := doc.Body()

	// <h1>Title</h1> separated by whitespace-only text from <p class="lead">body</p>.
	h1 := doc.CreateElement("h1")
	if err := doc.AppendChild(body, h1); err != nil {
		t.Fatalf("append h1: %v", err)
	}
	if err := doc.AppendChild(h1, doc.CreateText("Title")); err != nil {
		t.Fatalf("append title: %v", err)
	}
	if err := doc.AppendChild(body, doc.CreateText("\n  ")); err != nil {
		t.Fatalf("append whitespace: %v", err)
	}
	p := doc.CreateElement("p")
	if err := doc.SetAttribute(p, "class", "lead"); err != nil {
		t.Fatalf("set attribute: %v", err)
	}
	if err := doc.AppendChild(body, p); err != nil {
		t.Fatalf("append p: %v", err)
	}
	if err := doc.AppendChild(p, doc.CreateText("body")); err != nil {
		t.Fatalf("append text: %v", err)
	}

	if err := f.app.bootstrap(Takeover); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	base := f.app.baseline
	if base == nil {
		t.Fatal("no baseline after bootstrap")
	}
	if len(base.Children) != 2 {
		t.Fatalf("baseline children = %d, want 2", len(base.Children))
	}
	gotH1 := base.Children[0].(*vdom.El)
	if gotH1.Tag != "h1" || gotH1.HostNode() != h1 {
		t.Fatalf("first child = <%s> bound to %v, want <h1> bound to original node", gotH1.Tag, gotH1.HostNode())
	}
	gotP := base.Children[1].(*vdom.El)
	if gotP.Tag != "p" || gotP.Attrs["class"] != "lead" || gotP.HostNode() != p {
		t.Fatalf("second child = <%s class=%q>, want adopted <p class=\"lead\">", gotP.Tag, gotP.Attrs["class"])
	}

	// The live document dropped the whitespace node and kept the order.
	want := "<body>\n" +
		"  <h1>\n" +
		"    \"Title\"\n" +
		"  <p class=\"lead\">\n" +
		"    \"body\"\n"
	got, err := doc.RenderString(body)
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != want {
		t.Fatalf("document after takeover:\n%s\nwant:\n%s", got, want)
	}
}

func TestRun_TakeoverReplacesAdoptedContentOnFirstRender(t *testing.T) {
	f := newFixture(t, func(f *fixture, cfg *Config, init *InitConfig) {
		init.MountType = Takeover
	})
	doc := f.doc
	static := doc.CreateElement("h1")
	if err := doc.AppendChild(doc.Body(), static); err != nil {
		t.Fatalf("append: %v", err)
	}
	f.run(t)

	got := f.body(t)
	if strings.Contains(got, "<h1>") {
		t.Fatalf("adopted markup survived the first render:\n%s", got)
	}
	if !strings.Contains(got, `"count: 0"`) {
		t.Fatalf("view output missing:\n%s", got)
	}
}

func TestRun_AppendLeavesExistingChildrenAlone(t *testing.T) {
	f := newFixture(t, nil)
	doc := f.doc
	aside := doc.CreateElement("aside")
	if err := doc.AppendChild(doc.Body(), aside); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := doc.AppendChild(aside, doc.CreateText("static")); err != nil {
		t.Fatalf("append text: %v", err)
	}
	f.run(t)

	got := f.body(t)
	if !strings.Contains(got, "<aside>") || !strings.Contains(got, `"count: 0"`) {
		t.Fatalf("body after append startup:\n%s", got)
	}

	// Re-renders only replace runtime-owned nodes.
	if err := f.app.Update(incMsg{by: 1}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := f.doc.FireFrame(); err != nil {
		t.Fatalf("fire frame: %v", err)
	}
	got = f.body(t)
	if !strings.Contains(got, "<aside>") || !strings.Contains(got, `"count: 1"`) {
		t.Fatalf("body after re-render:\n%s", got)
	}
}
