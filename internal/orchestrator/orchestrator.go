// Package orchestrator wires the booking components together for the CLI
// commands: catalog, journal, location lookup, handoff and the front ends.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mark3labs/mirrorbook/internal/catalog"
	"github.com/mark3labs/mirrorbook/internal/config"
	"github.com/mark3labs/mirrorbook/internal/geocode"
	"github.com/mark3labs/mirrorbook/internal/handoff"
	"github.com/mark3labs/mirrorbook/internal/hooks"
	"github.com/mark3labs/mirrorbook/internal/journal"
	"github.com/mark3labs/mirrorbook/internal/locale"
	"github.com/mark3labs/mirrorbook/internal/logger"
	"github.com/mark3labs/mirrorbook/internal/lookup"
	"github.com/mark3labs/mirrorbook/internal/mcpserver"
	"github.com/mark3labs/mirrorbook/internal/nats"
	"github.com/mark3labs/mirrorbook/internal/session"
	"github.com/mark3labs/mirrorbook/internal/tui"
	"github.com/mark3labs/mirrorbook/internal/wizard"
)

// Config holds configuration for the orchestrator.
type Config struct {
	App     *config.Config // resolved settings; nil means defaults
	WorkDir string         // where the hooks file is looked up

	Searcher geocode.Searcher // replaces the HTTP geocoder when set
	Opener   handoff.Opener   // replaces the hook opener when set
}

// Orchestrator owns the long-lived components shared by every session.
type Orchestrator struct {
	cfg  Config
	lang locale.Language

	catalog    *catalog.Catalog
	bus        *nats.Bus        // nil when the journal is disabled
	journal    *journal.Journal // nil when the journal is disabled
	lookup     *lookup.Service
	dispatcher *handoff.Dispatcher
	mcp        *mcpserver.Server

	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	stopped bool
}

// New validates cfg. Nothing is started until Start.
func New(cfg Config) (*Orchestrator, error) {
	if cfg.App == nil {
		cfg.App = config.Default()
	}
	if cfg.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		cfg.WorkDir = wd
	}
	lang, err := locale.ParseLanguage(cfg.App.Language)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Orchestrator{cfg: cfg, lang: lang, ctx: ctx, cancel: cancel}, nil
}

// Start loads the catalog and brings up the journal, lookup and handoff.
func (o *Orchestrator) Start() error {
	app := o.cfg.App
	logger.Debug("starting orchestrator (language %s)", o.lang)

	// 1. Catalog
	o.catalog = catalog.Default()
	if app.CatalogFile != "" {
		cat, err := catalog.LoadFile(app.CatalogFile)
		if err != nil {
			return fmt.Errorf("loading catalog: %w", err)
		}
		o.catalog = cat
		logger.Info("catalog loaded from %s", app.CatalogFile)
	}

	// 2. Journal on embedded NATS
	if app.Journal {
		bus, err := nats.Open(o.ctx, "")
		if err != nil {
			return fmt.Errorf("starting journal: %w", err)
		}
		o.bus = bus
		o.journal = journal.New(bus.JS, bus.Stream)
		logger.Debug("journal ready")
	}

	// 3. Location lookup
	searcher := o.cfg.Searcher
	if searcher == nil {
		searcher = geocode.NewClient(geocode.Config{
			Endpoint:  app.Geocoder.Endpoint,
			Country:   app.Geocoder.Country,
			Limit:     app.Geocoder.Limit,
			UserAgent: app.Geocoder.UserAgent,
			Language:  o.lang.String(),
			Timeout:   app.Geocoder.Timeout,
		})
	}
	if app.Geocoder.CacheTTL > 0 {
		searcher = geocode.NewCache(searcher, app.Geocoder.CacheTTL)
	}
	o.lookup = lookup.New(searcher,
		lookup.WithDebounce(app.Lookup.Debounce),
		lookup.WithBlurGrace(app.Lookup.BlurGrace),
		lookup.WithMinChars(app.Lookup.MinChars),
	)

	// 4. Handoff
	opener := o.cfg.Opener
	if opener == nil {
		hooksCfg, err := hooks.LoadConfig(o.cfg.WorkDir)
		if err != nil {
			return fmt.Errorf("loading hooks: %w", err)
		}
		opener = handoff.NewHookOpener(app.OpenCommand, o.cfg.WorkDir, hooksCfg)
	}
	o.dispatcher = handoff.New(handoff.Config{
		BaseURL:     app.Messaging.BaseURL,
		Destination: app.Messaging.Destination,
	}, opener)

	o.started = true
	logger.Info("orchestrator started")
	return nil
}

// NewController starts a fresh session, journaled when the journal is on.
func (o *Orchestrator) NewController() *wizard.Controller {
	sess := session.New(o.lang)
	ctrl := wizard.New(sess, o.catalog)
	if o.journal != nil {
		if err := o.journal.Begin(o.ctx, sess); err != nil {
			logger.Warn("journal: %v", err)
		}
		ctrl.Subscribe(o.journal.Listener(o.ctx, sess.ID))
	}
	logger.Info("session %s started", sess.ID)
	return ctrl
}

// RunTUI shows the booking wizard until the user quits. It returns the URL
// of the last submission, if any.
func (o *Orchestrator) RunTUI(ctx context.Context) (string, error) {
	if !o.started {
		return "", fmt.Errorf("orchestrator not started")
	}
	return tui.Run(ctx, tui.Options{
		Controller:    o.NewController(),
		NewController: o.NewController,
		Lookup:        o.lookup,
		Dispatcher:    o.dispatcher,
	})
}

// ServeMCP starts a session driven over MCP and returns the bound port.
func (o *Orchestrator) ServeMCP(ctx context.Context, port int) (int, error) {
	if !o.started {
		return 0, fmt.Errorf("orchestrator not started")
	}
	ctrl := o.NewController()
	o.lookup.SetSink(ctrl)
	o.mcp = mcpserver.New(mcpserver.Deps{
		Controller: ctrl,
		Dispatcher: o.dispatcher,
		Lookup:     o.lookup,
		Journal:    o.journal,
	})
	return o.mcp.Start(ctx, port)
}

// MCPURL returns the MCP endpoint once ServeMCP has run.
func (o *Orchestrator) MCPURL() string {
	if o.mcp == nil {
		return ""
	}
	return o.mcp.URL()
}

// Catalog returns the loaded catalog.
func (o *Orchestrator) Catalog() *catalog.Catalog { return o.catalog }

// Dispatcher returns the handoff dispatcher.
func (o *Orchestrator) Dispatcher() *handoff.Dispatcher { return o.dispatcher }

// Journal returns the journal, or nil when disabled.
func (o *Orchestrator) Journal() *journal.Journal { return o.journal }

// Language returns the configured starting language.
func (o *Orchestrator) Language() locale.Language { return o.lang }

// Stop shuts everything down. Pending handoffs are waited for so the open
// command is not killed mid-flight. Safe to call more than once.
func (o *Orchestrator) Stop() error {
	if o.stopped {
		return nil
	}
	o.stopped = true
	logger.Info("stopping orchestrator")

	var errs []error
	if o.mcp != nil {
		if err := o.mcp.Stop(); err != nil {
			errs = append(errs, err)
		}
		o.mcp = nil
	}
	if o.lookup != nil {
		o.lookup.Close()
	}
	if o.dispatcher != nil {
		o.dispatcher.Wait()
	}
	o.cancel()
	if o.bus != nil {
		if err := o.bus.Close(); err != nil {
			errs = append(errs, fmt.Errorf("NATS shutdown: %w", err))
		}
		o.bus = nil
	}

	logger.Info("orchestrator stopped")
	return errors.Join(errs...)
}
