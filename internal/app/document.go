package app

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/dshills/folio/internal/config"
	"github.com/dshills/folio/internal/engine"
	"github.com/dshills/folio/internal/engine/clipboard"
	"github.com/dshills/folio/internal/layout"
	"github.com/dshills/folio/internal/spell"
)

// Document represents an open document with its edit context.
type Document struct {
	// Path is the absolute file path (empty for scratch documents).
	Path string

	// Name is the display name (filename or "Untitled").
	Name string

	// Engine is the edit context of the document.
	Engine *engine.Engine

	// Spell holds the misspelling markers. Nil when spelling is off.
	Spell *spell.Checker

	// Layout records the layout notifications the engine sends.
	Layout *layout.Recorder
}

// IsScratch returns true if this is a scratch document (no file path).
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

// Content returns the document as plain text.
func (d *Document) Content() string {
	return d.Engine.Text()
}

// Save writes the plain text of the document to its path.
func (d *Document) Save() error {
	if d.IsScratch() {
		return NewOperationError("save", d.Name, ErrNoPath)
	}
	if err := os.WriteFile(d.Path, []byte(d.Content()), 0o644); err != nil {
		return NewOperationError("save", d.Path, err)
	}
	return nil
}

// DocumentManager manages all open documents. Every document shares the
// manager's clipboard.
type DocumentManager struct {
	mu        sync.RWMutex
	documents map[string]*Document // key -> document
	active    *Document
	order     []string // open order for navigation
	counter   int      // for scratch document names

	cfg      *config.Config
	clip     *clipboard.Clipboard
	logger   *zap.Logger
	readOnly bool
}

// NewDocumentManager creates a document manager that builds engines from
// cfg.
func NewDocumentManager(cfg *config.Config, clip *clipboard.Clipboard, logger *zap.Logger, readOnly bool) *DocumentManager {
	if cfg == nil {
		cfg = config.Default()
	}
	if clip == nil {
		clip = clipboard.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentManager{
		documents: make(map[string]*Document),
		cfg:       cfg,
		clip:      clip,
		logger:    logger,
		readOnly:  readOnly,
	}
}

// newDocument builds a document around content.
func (dm *DocumentManager) newDocument(path, name, content string) *Document {
	doc := &Document{
		Path:   path,
		Name:   name,
		Layout: layout.NewRecorder(),
	}
	opts := []engine.Option{
		engine.WithContent(content),
		engine.WithConfig(dm.cfg.Editor),
		engine.WithClipboard(dm.clip),
		engine.WithLayout(doc.Layout),
		engine.WithLogger(dm.logger.With(zap.String("name", name))),
	}
	if dm.cfg.Spell.Enabled {
		doc.Spell = spell.New(
			spell.WithMinLength(dm.cfg.Spell.MinLength),
			spell.WithWords(dm.cfg.Spell.Words...),
			spell.WithLogger(dm.logger),
		)
		opts = append(opts, engine.WithSpellChecker(doc.Spell))
	}
	if dm.readOnly {
		opts = append(opts, engine.WithReadOnly())
	}
	doc.Engine = engine.New(opts...)
	return doc
}

// Open opens a document from a file.
// Returns the existing document if already open.
func (dm *DocumentManager) Open(path string) (*Document, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}

	dm.mu.Lock()
	defer dm.mu.Unlock()

	if doc, exists := dm.documents[absPath]; exists {
		dm.active = doc
		return doc, nil
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}

	doc := dm.newDocument(absPath, filepath.Base(absPath), string(content))
	dm.documents[absPath] = doc
	dm.order = append(dm.order, absPath)
	dm.active = doc
	dm.logger.Info("document opened", zap.String("path", absPath), zap.Int("units", doc.Engine.Len()))
	return doc, nil
}

// CreateScratch creates a new scratch document holding content.
func (dm *DocumentManager) CreateScratch(content string) *Document {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	dm.counter++
	name := "Untitled"
	if dm.counter > 1 {
		name = "Untitled-" + strconv.Itoa(dm.counter)
	}
	key := scratchKey(dm.counter)

	doc := dm.newDocument("", name, content)
	dm.documents[key] = doc
	dm.order = append(dm.order, key)
	dm.active = doc
	return doc
}

// Close closes a document by key: its absolute path, or its name for
// scratch documents.
func (dm *DocumentManager) Close(key string) error {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	key = dm.resolveLocked(key)
	doc, exists := dm.documents[key]
	if !exists {
		return ErrDocumentNotFound
	}

	delete(dm.documents, key)
	for i, k := range dm.order {
		if k == key {
			dm.order = append(dm.order[:i], dm.order[i+1:]...)
			break
		}
	}

	if dm.active == doc {
		if len(dm.order) > 0 {
			dm.active = dm.documents[dm.order[len(dm.order)-1]]
		} else {
			dm.active = nil
		}
	}
	return nil
}

// Active returns the currently active document.
func (dm *DocumentManager) Active() *Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.active
}

// SetActive sets the active document.
func (dm *DocumentManager) SetActive(doc *Document) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	dm.active = doc
}

// SetActiveByKey activates the document with the given path or name.
func (dm *DocumentManager) SetActiveByKey(key string) error {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	doc, exists := dm.documents[dm.resolveLocked(key)]
	if !exists {
		return ErrDocumentNotFound
	}
	dm.active = doc
	return nil
}

// Get returns a document by path or name.
func (dm *DocumentManager) Get(key string) (*Document, bool) {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	doc, exists := dm.documents[dm.resolveLocked(key)]
	return doc, exists
}

// resolveLocked maps a path or display name to a document key.
func (dm *DocumentManager) resolveLocked(key string) string {
	if _, ok := dm.documents[key]; ok {
		return key
	}
	if abs, err := filepath.Abs(key); err == nil {
		if _, ok := dm.documents[abs]; ok {
			return abs
		}
	}
	for _, k := range dm.order {
		if dm.documents[k].Name == key {
			return k
		}
	}
	return key
}

// All returns all open documents in open order.
func (dm *DocumentManager) All() []*Document {
	dm.mu.RLock()
	defer dm.mu.RUnlock()

	docs := make([]*Document, 0, len(dm.documents))
	for _, k := range dm.order {
		if doc, exists := dm.documents[k]; exists {
			docs = append(docs, doc)
		}
	}
	return docs
}

// Count returns the number of open documents.
func (dm *DocumentManager) Count() int {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return len(dm.documents)
}

// Next activates and returns the next document in open order.
func (dm *DocumentManager) Next() *Document {
	dm.mu.Lock()
	defer dm.mu.Unlock()

	if len(dm.order) == 0 || dm.active == nil {
		return nil
	}
	for i, k := range dm.order {
		if dm.documents[k] == dm.active {
			dm.active = dm.documents[dm.order[(i+1)%len(dm.order)]]
			break
		}
	}
	return dm.active
}

// ApplyConfig pushes a reloaded configuration to every open engine.
func (dm *DocumentManager) ApplyConfig(cfg *config.Config) {
	dm.mu.Lock()
	dm.cfg = cfg
	docs := make([]*Document, 0, len(dm.order))
	for _, k := range dm.order {
		docs = append(docs, dm.documents[k])
	}
	dm.mu.Unlock()

	for _, doc := range docs {
		doc.Engine.ApplyConfig(cfg.Editor)
	}
}

func scratchKey(n int) string {
	return "::scratch::" + strconv.Itoa(n)
}
