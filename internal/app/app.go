// Package app wires configuration, logging, and document engines together
// and drives them from a script of editor commands.
package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/dshills/folio/internal/config"
	"github.com/dshills/folio/internal/engine/clipboard"
	"github.com/dshills/folio/internal/logging"
)

// Application is the central coordinator for all folio components.
// It owns the shared clipboard and the open documents and serializes
// script commands against configuration reloads.
type Application struct {
	mu sync.Mutex

	// Core infrastructure
	config   *config.Config
	logger   *zap.Logger
	closeLog func() error

	// Document management
	clip      *clipboard.Clipboard
	documents *DocumentManager

	// State
	running atomic.Bool
	cancel  context.CancelFunc
	watchWG sync.WaitGroup

	// Options
	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// Files are files to open on startup.
	Files []string

	// Debug enables debug logging in development mode.
	Debug bool

	// LogLevel overrides the configured logging verbosity.
	LogLevel string

	// LogWriter, when set, receives the log instead of the configured
	// destination.
	LogWriter io.Writer

	// ReadOnly opens documents in read-only mode.
	ReadOnly bool

	// Watch reloads the configuration file when it changes.
	Watch bool
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{opts: opts}
	if err := app.bootstrap(); err != nil {
		return nil, err
	}
	return app, nil
}

// bootstrap initializes all components in dependency order.
func (app *Application) bootstrap() error {
	// 1. Config
	cfg, err := config.Load(app.opts.ConfigPath)
	if err != nil {
		return NewOperationError("load config", app.opts.ConfigPath, err)
	}
	if app.opts.LogLevel != "" {
		cfg.Log.Level = app.opts.LogLevel
	}
	if app.opts.Debug {
		cfg.Log.Level = "debug"
		cfg.Log.Development = true
	}
	app.config = cfg

	// 2. Logging
	if app.opts.LogWriter != nil {
		app.logger = logging.NewWriter(cfg.Log, app.opts.LogWriter)
		app.closeLog = func() error { return nil }
	} else {
		app.logger, app.closeLog, err = logging.New(cfg.Log)
		if err != nil {
			return NewOperationError("open log", cfg.Log.File, err)
		}
	}

	// 3. Documents
	app.clip = clipboard.New()
	app.documents = NewDocumentManager(cfg, app.clip, app.logger, app.opts.ReadOnly)

	var errs ErrorList
	for _, file := range app.opts.Files {
		errs.Add(func() error {
			_, err := app.documents.Open(file)
			return err
		}())
	}
	for _, err := range errs.Errors() {
		app.logger.Warn("open failed", zap.Error(err))
	}
	if app.documents.Count() == 0 {
		app.documents.CreateScratch("")
	}

	app.logger.Debug("application ready", zap.Int("documents", app.documents.Count()))
	return nil
}

// Run executes the script read from in, writing command output to out.
// Blank lines and lines starting with '#' are skipped. Run stops at the
// end of the script, at a quit command, or when ctx is done. Command
// errors do not stop the script; they are written to out and returned
// together.
func (app *Application) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	app.mu.Lock()
	app.cancel = cancel
	app.mu.Unlock()

	if app.opts.Watch && app.opts.ConfigPath != "" {
		app.startWatch(ctx)
	}

	var errs ErrorList
	sc := bufio.NewScanner(in)
	for n := 1; sc.Scan(); n++ {
		if ctx.Err() != nil {
			break
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		err := app.Exec(line, out)
		if errors.Is(err, ErrQuit) {
			break
		}
		if err != nil {
			err = NewOperationError(fmt.Sprintf("line %d", n), line, err)
			fmt.Fprintf(out, "error: %v\n", err)
			errs.Add(err)
		}
	}
	if err := sc.Err(); err != nil {
		errs.Add(NewOperationError("read script", "", err))
	}

	cancel()
	app.watchWG.Wait()
	return errs.AsError()
}

// Exec runs one script command.
func (app *Application) Exec(line string, out io.Writer) error {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.exec(line, out)
}

// startWatch reloads the configuration whenever its file changes and
// pushes the editor settings into every open document.
func (app *Application) startWatch(ctx context.Context) {
	app.watchWG.Add(1)
	go func() {
		defer app.watchWG.Done()
		err := config.Watch(ctx, app.opts.ConfigPath, func(cfg *config.Config, err error) {
			if err != nil {
				app.logger.Warn("config reload failed", zap.Error(err))
				return
			}
			app.mu.Lock()
			defer app.mu.Unlock()
			cfg.Log = app.config.Log
			app.config = cfg
			app.documents.ApplyConfig(cfg)
			app.logger.Info("config reloaded", zap.String("path", app.opts.ConfigPath))
		})
		if err != nil {
			app.logger.Warn("config watch stopped", zap.Error(err))
		}
	}()
}

// Shutdown stops a running script and flushes the log.
func (app *Application) Shutdown() {
	app.mu.Lock()
	cancel := app.cancel
	app.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	if app.closeLog != nil {
		if err := app.closeLog(); err != nil {
			app.logger.Warn("close log", zap.Error(err))
		}
		app.closeLog = nil
	}
}

// IsRunning returns true if a script is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.config
}

// Logger returns the application logger.
func (app *Application) Logger() *zap.Logger {
	return app.logger
}

// Clipboard returns the clipboard shared by all documents.
func (app *Application) Clipboard() *clipboard.Clipboard {
	return app.clip
}

// Documents returns the document manager.
func (app *Application) Documents() *DocumentManager {
	return app.documents
}

// ActiveDocument returns the active document (may be nil).
func (app *Application) ActiveDocument() *Document {
	return app.documents.Active()
}
