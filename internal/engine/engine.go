package engine

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/folio/internal/config"
	"github.com/dshills/folio/internal/engine/clipboard"
	"github.com/dshills/folio/internal/engine/cursor"
	"github.com/dshills/folio/internal/engine/history"
	"github.com/dshills/folio/internal/engine/splice"
	"github.com/dshills/folio/internal/engine/tree"
	"github.com/dshills/folio/internal/layout"
)

// Re-export commonly used types for convenience.
type (
	// NodeID is a handle to a node of the document tree.
	NodeID = tree.NodeID

	// Position is a (leaf, offset) document position.
	Position = cursor.Position

	// Fragment is detached content, as held by the clipboard.
	Fragment = tree.Fragment

	// Style is the character style of a text run.
	Style = tree.Style
)

// SpellChecker re-validates spelling over a range of absolute units after
// an edit. [from, to) is the inserted range, or an empty range where
// content was removed.
type SpellChecker interface {
	CheckRange(doc *tree.Tree, from, to int)
}

// gap is where the last deletion took content out, valid while the
// document is unchanged. at is the cursor the deletion left behind.
type gap struct {
	site splice.Site
	at   cursor.Position
}

// Engine is the edit context of one document.
type Engine struct {
	id uuid.UUID

	// Document state
	doc       *tree.Tree
	cur       cursor.Position
	mark      cursor.Position
	selecting bool
	gap       *gap

	// Core components
	history *history.Log
	clip    *clipboard.Clipboard
	layout  layout.Layout
	spell   SpellChecker
	logger  *zap.Logger

	// Configuration
	initContent    string
	maxUndoEntries int
	magicLinks     bool
	linkSchemes    []string
	linkTriggers   string
	readOnly       bool
}

// New creates a new Engine with the given options.
func New(opts ...Option) *Engine {
	e := &Engine{
		id:             uuid.New(),
		maxUndoEntries: DefaultMaxUndoEntries,
		magicLinks:     true,
		linkSchemes:    DefaultLinkSchemes,
		linkTriggers:   DefaultLinkTriggers,
		logger:         zap.NewNop(),
		layout:         layout.Nop{},
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.clip == nil {
		e.clip = clipboard.New()
	}
	e.history = history.NewLog(e.maxUndoEntries)
	e.logger = e.logger.With(zap.String("doc", e.id.String()))
	e.reset(tree.NewFromText(e.initContent))
	return e
}

// reset installs doc with the cursor at its start.
func (e *Engine) reset(doc *tree.Tree) {
	e.doc = doc
	e.cur = cursor.Start(doc)
	e.mark = e.cur
	e.selecting = false
	e.gap = nil
	if e.spell != nil {
		e.spell.CheckRange(doc, 0, doc.Size())
	}
}

// ID returns the engine's unique identifier.
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// Tree returns the document. Callers must not mutate it.
func (e *Engine) Tree() *tree.Tree {
	return e.doc
}

// Text returns the document as plain text.
func (e *Engine) Text() string {
	return e.doc.PlainText()
}

// Dump returns the structural dump of the document.
func (e *Engine) Dump() string {
	return e.doc.Dump()
}

// Len returns the number of units in the document.
func (e *Engine) Len() int {
	return e.doc.Size()
}

// Clipboard returns the clipboard the engine cuts to and pastes from.
func (e *Engine) Clipboard() *clipboard.Clipboard {
	return e.clip
}

// History returns the undo log.
func (e *Engine) History() *history.Log {
	return e.history
}

// IsReadOnly returns true if the engine rejects edits.
func (e *Engine) IsReadOnly() bool {
	return e.readOnly
}

// Load replaces the document with fresh content and drops the undo log.
func (e *Engine) Load(content string) {
	e.LoadTree(tree.NewFromText(content))
}

// LoadTree replaces the document with doc and drops the undo log. A
// document without any leaf gets an empty text run.
func (e *Engine) LoadTree(doc *tree.Tree) {
	if doc.LeafCount(doc.Root()) == 0 {
		doc.AppendText(doc.Root(), "", tree.Style{})
	}
	e.layout.Freeze()
	e.layout.HideCursor()
	e.reset(doc)
	e.history.Clear()
	e.layout.ScheduleRedraw()
	e.layout.ShowCursor()
	e.layout.Thaw()
}

// DropUndo discards the undo and redo history.
func (e *Engine) DropUndo() {
	e.history.Clear()
}

// ApplyConfig updates the editor settings of a running engine. The undo
// limit applies to entries pushed from now on.
func (e *Engine) ApplyConfig(cfg config.EditorConfig) {
	WithConfig(cfg)(e)
	e.history.SetMaxEntries(e.maxUndoEntries)
}

// reject logs why an edit did not happen and returns false.
func (e *Engine) reject(verb string, err error) bool {
	e.logger.Debug("edit rejected", zap.String("verb", verb), zap.Error(err))
	return false
}

// abs returns the absolute offset of p, or -1.
func (e *Engine) abs(p cursor.Position) int {
	off, err := e.doc.Offset(p.Node, p.Offset)
	if err != nil {
		return -1
	}
	return off
}

// checkSpelling re-validates [from, to) after an edit.
func (e *Engine) checkSpelling(from, to int) {
	if e.spell == nil || from < 0 {
		return
	}
	e.spell.CheckRange(e.doc, from, to)
}
