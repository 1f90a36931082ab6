package app

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dshills/findbar/internal/config"
	"github.com/dshills/findbar/internal/engine/buffer"
	"github.com/dshills/findbar/internal/find"
	"github.com/dshills/findbar/internal/logging"
	"github.com/dshills/findbar/internal/renderer/backend"
	"github.com/dshills/findbar/internal/search"
)

// Application owns the document, its view, the find bar and the event
// loop that connects them. All UI state is touched only on the goroutine
// running Run.
type Application struct {
	mu      sync.Mutex
	backend backend.Backend

	cfg  *config.Config
	log  *logging.Logger
	doc  *Document
	view *EditorView
	bar  *FindBar
	find *find.Controller

	width, height int
	status        string

	// logLevel overrides the configured level across reloads when set.
	logLevel string

	// looping is set while the event loop can receive posted events.
	// Reloads that arrive before that wait in pending.
	looping bool
	pending *config.Config

	running   atomic.Bool
	ready     chan struct{}
	readyOnce sync.Once
}

// Options configures the application.
type Options struct {
	// Config is the initial configuration. Defaults to config.Default().
	Config *config.Config

	// Logger receives application logs. Defaults to a discarding logger.
	Logger *logging.Logger

	// Path is the file to edit. Empty opens a scratch document.
	Path string

	// LogLevel, when set, overrides the logging level of Config and of
	// every reloaded configuration.
	LogLevel string
}

// New creates an application editing opts.Path.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	bufOpts := []buffer.Option{buffer.WithTabWidth(cfg.View.TabWidth)}
	doc := NewScratchDocument(bufOpts...)
	if opts.Path != "" {
		var err error
		if doc, err = OpenDocument(opts.Path, bufOpts...); err != nil {
			return nil, &InitError{Component: "document", Err: err}
		}
	}

	settings := search.NewSettings()
	applySearchConfig(settings, cfg.Search)

	app := &Application{
		cfg:      cfg,
		log:      log.WithComponent("app"),
		doc:      doc,
		bar:      NewFindBar(settings),
		width:    80,
		height:   24,
		logLevel: opts.LogLevel,
		ready:    make(chan struct{}),
	}
	if app.logLevel != "" {
		cfg.Logging.Level = app.logLevel
	}
	app.find = find.New(app.bar, find.WithLogger(log), find.WithSettings(settings))
	app.view = NewEditorView(doc, app.width, app.editorHeight())
	app.view.SetScrollMargin(cfg.View.ScrollMargin)
	app.find.Attach(app.view)

	app.log.Info("opened %s (%d lines)", doc.Name, doc.Buffer.LineCount())
	return app, nil
}

func applySearchConfig(s *search.Settings, c config.SearchConfig) {
	s.SetCaseSensitive(c.CaseSensitive)
	s.SetWholeWord(c.WholeWord)
	s.SetRegexEnabled(c.Regex)
}

// SetBackend sets the terminal backend.
// Must be called before Run().
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}

	app.backend = b
	return nil
}

// Run initializes the backend and processes events until the user quits
// or Shutdown is called. Both end with ErrQuit.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return ErrNoBackend
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	app.mu.Lock()
	app.looping = true
	pending := app.pending
	app.pending = nil
	app.mu.Unlock()
	defer func() {
		app.mu.Lock()
		app.looping = false
		app.mu.Unlock()
	}()
	if pending != nil {
		app.applyConfig(pending)
	}

	app.resize(b.Size())
	app.render()
	app.readyOnce.Do(func() { close(app.ready) })

	return app.eventLoop()
}

// Ready is closed once Run has drawn the first frame.
func (app *Application) Ready() <-chan struct{} { return app.ready }

// IsRunning returns true if the application is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Shutdown asks a running event loop to exit. It is safe to call from any
// goroutine.
func (app *Application) Shutdown() {
	if !app.running.Load() {
		return
	}
	app.post(quitRequest{})
}

// ConfigReloaded hands a reloaded configuration to the event loop. It
// matches config.ReloadHandler and may be called from any goroutine.
// A configuration that arrives before Run starts the loop is applied when
// it does; only the latest one is kept.
func (app *Application) ConfigReloaded(cfg *config.Config, err error) {
	if err != nil {
		app.log.Warn("config reload: %v", err)
		return
	}

	app.mu.Lock()
	if !app.looping {
		app.pending = cfg
		app.mu.Unlock()
		return
	}
	app.mu.Unlock()
	app.post(configReload{cfg: cfg})
}

func (app *Application) post(data any) {
	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return
	}
	if err := b.PostEvent(backend.Event{Type: backend.EventInterrupt, Data: data}); err != nil {
		app.log.Warn("post event: %v", err)
	}
}

// Interrupt payloads.
type (
	quitRequest  struct{}
	configReload struct{ cfg *config.Config }
)

// applyConfig applies the settings that can change at run time. It runs on
// the event loop goroutine.
func (app *Application) applyConfig(cfg *config.Config) {
	if app.logLevel != "" {
		cfg.Logging.Level = app.logLevel
	}
	app.cfg = cfg
	app.find.SetCaseSensitive(cfg.Search.CaseSensitive)
	app.find.SetWholeWord(cfg.Search.WholeWord)
	app.find.SetRegexEnabled(cfg.Search.Regex)
	app.view.SetScrollMargin(cfg.View.ScrollMargin)
	app.log.SetLevel(cfg.LogLevel())
	app.log.Info("configuration reloaded")
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config { return app.cfg }

// Document returns the edited document.
func (app *Application) Document() *Document { return app.doc }

// View returns the editor view.
func (app *Application) View() *EditorView { return app.view }

// FindBar returns the find bar widget.
func (app *Application) FindBar() *FindBar { return app.bar }

// Find returns the find bar controller.
func (app *Application) Find() *find.Controller { return app.find }

// eventLoop polls the backend until a handler returns an error.
func (app *Application) eventLoop() error {
	for {
		ev := app.backend.PollEvent()
		if ev.Type == backend.EventNone {
			// The screen was finalized underneath us.
			return ErrQuit
		}
		if err := app.handleBackendEvent(ev); err != nil {
			if !errors.Is(err, ErrQuit) {
				app.log.Error("event loop: %v", err)
			}
			return err
		}
		app.render()
	}
}

func (app *Application) resize(width, height int) {
	app.width, app.height = width, height
	app.layout()
}

// editorHeight returns the rows left for text after the find bar and the
// status line.
func (app *Application) editorHeight() int {
	return max(app.height-app.bar.Height()-1, 1)
}
