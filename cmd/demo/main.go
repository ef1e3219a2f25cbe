package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/frondui/frond/app"
	"github.com/frondui/frond/host/memdom"
	"github.com/frondui/frond/reconcile"
)

func main() {
	var (
		appName    = flag.String("app", "", "Application to run (counter|todo)")
		configPath = flag.String("config", "", "Path to demo.yaml")
		dbPath     = flag.String("db", "", "Path to the todo sqlite database")
		mountMode  = flag.String("mount", "", "Mount mode (append|takeover)")
		debug      = flag.Bool("debug", false, "Write debug logs to frond-demo.log")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// explicit flags win over file and env
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "app":
			cfg.App = *appName
		case "db":
			cfg.DB = *dbPath
		case "mount":
			cfg.Mount = *mountMode
		}
	})

	if err := run(cfg, *debug); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg demoConfig, debug bool) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("stdout is not a terminal; the demo needs an interactive session")
	}

	if debug {
		// bubbletea owns the terminal while the program runs
		zcfg := zap.NewDevelopmentConfig()
		zcfg.OutputPaths = []string{"frond-demo.log"}
		logger, err := zcfg.Build()
		if err != nil {
			return fmt.Errorf("build logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()
		app.SetLogger(logger)
		reconcile.SetLogger(logger)
	}

	mt, err := parseMountType(cfg.Mount)
	if err != nil {
		return err
	}

	doc := memdom.NewDocument()
	if mt == app.Takeover {
		if err := seedSplash(doc); err != nil {
			return fmt.Errorf("seed markup: %w", err)
		}
	}

	var model *demoModel
	switch cfg.App {
	case "counter":
		c := &counterApp{}
		rt, err := app.New(c.config(doc), app.InitConfig{AfterMount: c.afterMount, MountType: mt})
		if err != nil {
			return err
		}
		if err := rt.Run(); err != nil {
			return fmt.Errorf("start counter: %w", err)
		}
		model = newDemoModel(doc, rt, "counter")

	case "todo":
		store, err := openStore(cfg.DB)
		if err != nil {
			return err
		}
		defer store.Close()
		t := &todoApp{store: store}
		rt, err := app.New(t.config(doc), app.InitConfig{AfterMount: t.afterMount, MountType: mt})
		if err != nil {
			return err
		}
		if err := rt.Run(); err != nil {
			return fmt.Errorf("start todo: %w", err)
		}
		model = newDemoModel(doc, rt, "todo")

	default:
		return fmt.Errorf("unknown app %q (want counter or todo)", cfg.App)
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// seedSplash fills the body with static markup for takeover mode to adopt
// and replace on first render.
func seedSplash(doc *memdom.Document) error {
	body := doc.Body()

	h1 := doc.CreateElement("h1")
	if err := doc.AppendChild(h1, doc.CreateText("frond demo")); err != nil {
		return err
	}
	if err := doc.AppendChild(body, h1); err != nil {
		return err
	}
	if err := doc.AppendChild(body, doc.CreateText("\n  ")); err != nil {
		return err
	}
	lead := doc.CreateElement("p")
	if err := doc.SetAttribute(lead, "class", "lead"); err != nil {
		return err
	}
	if err := doc.AppendChild(lead, doc.CreateText("loading…")); err != nil {
		return err
	}
	return doc.AppendChild(body, lead)
}
