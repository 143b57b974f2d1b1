package engine

import (
	"go.uber.org/zap"

	"github.com/dshills/folio/internal/config"
	"github.com/dshills/folio/internal/engine/clipboard"
	"github.com/dshills/folio/internal/engine/history"
	"github.com/dshills/folio/internal/layout"
)

// Default configuration values.
const (
	DefaultMaxUndoEntries = history.DefaultMaxEntries
	DefaultLinkTriggers   = " )>"
)

// DefaultLinkSchemes are the prefixes that make a typed word a link.
var DefaultLinkSchemes = []string{"http://", "https://", "www.", "mailto:"}

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine. Newlines become
// paragraph breaks.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithMaxUndoEntries sets the maximum number of undo history entries.
func WithMaxUndoEntries(max int) Option {
	return func(e *Engine) {
		if max > 0 {
			e.maxUndoEntries = max
		}
	}
}

// WithLogger sets the logger. Rejected edits are logged at debug level.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithLayout sets the layout collaborator notified around edits.
func WithLayout(l layout.Layout) Option {
	return func(e *Engine) {
		if l != nil {
			e.layout = l
		}
	}
}

// WithSpellChecker sets the spell checker run after every edit.
func WithSpellChecker(s SpellChecker) Option {
	return func(e *Engine) {
		e.spell = s
	}
}

// WithClipboard shares c with the engine. Engines given the same
// clipboard can paste each other's cuts.
func WithClipboard(c *clipboard.Clipboard) Option {
	return func(e *Engine) {
		if c != nil {
			e.clip = c
		}
	}
}

// WithMagicLinks enables or disables turning typed URLs into links.
func WithMagicLinks(enabled bool) Option {
	return func(e *Engine) {
		e.magicLinks = enabled
	}
}

// WithLinkSchemes sets the prefixes recognised as URLs.
func WithLinkSchemes(schemes ...string) Option {
	return func(e *Engine) {
		if len(schemes) > 0 {
			e.linkSchemes = schemes
		}
	}
}

// WithReadOnly creates a read-only engine.
// Edit verbs return false.
func WithReadOnly() Option {
	return func(e *Engine) {
		e.readOnly = true
	}
}

// WithConfig applies the editor section of cfg.
func WithConfig(cfg config.EditorConfig) Option {
	return func(e *Engine) {
		if cfg.UndoLimit > 0 {
			e.maxUndoEntries = cfg.UndoLimit
		}
		e.magicLinks = cfg.MagicLinks
		if len(cfg.LinkSchemes) > 0 {
			e.linkSchemes = cfg.LinkSchemes
		}
		if cfg.LinkTriggers != "" {
			e.linkTriggers = cfg.LinkTriggers
		}
	}
}
