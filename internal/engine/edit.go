package engine

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/folio/internal/engine/bounds"
	"github.com/dshills/folio/internal/engine/cursor"
	"github.com/dshills/folio/internal/engine/history"
	"github.com/dshills/folio/internal/engine/splice"
	"github.com/dshills/folio/internal/engine/tree"
)

// ============================================================================
// Delete / Cut / Copy
// ============================================================================

// Delete removes the selection.
func (e *Engine) Delete() bool {
	if err := e.checkSelection(); err != nil {
		return e.reject("delete", err)
	}
	if _, err := e.deleteSelection("delete"); err != nil {
		return e.reject("delete", err)
	}
	return true
}

// Cut removes the selection and puts it on the clipboard.
func (e *Engine) Cut() bool {
	if err := e.checkSelection(); err != nil {
		return e.reject("cut", err)
	}
	f, err := e.deleteSelection("cut")
	if err != nil {
		return e.reject("cut", err)
	}
	e.clip.Set(f)
	return true
}

// Copy puts a copy of the selection on the clipboard. The document and
// the selection are left as they are.
func (e *Engine) Copy() bool {
	if !e.selecting {
		return e.reject("copy", ErrNoSelection)
	}
	b, err := bounds.Prepare(e.doc, cursor.NewInterval(e.mark, e.cur), false)
	if err != nil {
		return e.reject("copy", err)
	}
	if b.Empty {
		return e.reject("copy", ErrEmptySelection)
	}
	f, _, err := e.doc.OpCopy(b.Ancestor, b.From, b.To)
	if err != nil {
		return e.reject("copy", err)
	}
	e.clip.Set(f)
	return true
}

func (e *Engine) checkSelection() error {
	if e.readOnly {
		return ErrReadOnly
	}
	if !e.selecting {
		return ErrNoSelection
	}
	return nil
}

// deleteSelection cuts the selection out of the document, repairs the
// seam and records a Delete action. It returns the removed fragment,
// which the undo log owns.
func (e *Engine) deleteSelection(label string) (*tree.Fragment, error) {
	b, err := bounds.Prepare(e.doc, cursor.NewInterval(e.mark, e.cur), true)
	if err != nil {
		return nil, err
	}
	if b.Empty {
		e.selecting = false
		return nil, ErrEmptySelection
	}
	return e.cutBounds(b, label)
}

// cutBounds removes the content b covers. Cursor, mark and selection are
// left as they were when the cut itself fails.
func (e *Engine) cutBounds(b bounds.Bounds, label string) (*tree.Fragment, error) {
	e.layout.Freeze()
	defer e.layout.Thaw()
	e.layout.HideCursor()
	defer e.layout.ShowCursor()

	cur, mark, selecting := e.cur, e.mark, e.selecting
	e.cur = b.Begin
	e.mark = b.Begin
	e.selecting = false

	cut, err := e.doc.OpCut(b.Ancestor, b.From, b.To)
	if err != nil {
		e.cur, e.mark, e.selecting = cur, mark, selecting
		return nil, err
	}
	seam := cut.Left[0]
	e.cur = cursor.At(seam, e.doc.Len(seam))
	rep := splice.RemoveEmptyAndMerge(e.doc, !b.Whole(), cut.Left, cut.Right, &e.cur)
	e.mark = e.cur

	at, err := e.doc.AnchorAt(e.cur.Node, e.cur.Offset)
	if err != nil {
		return nil, fmt.Errorf("anchor after %s: %w", label, err)
	}
	act := history.NewDelete(at, cut.Fragment).WithLabel(label)
	e.gap = nil
	if site, err := splice.Capture(e.doc, b.Ancestor, b.From[0].Offset, rep); err == nil {
		act.WithSite(site)
		e.gap = &gap{site: site, at: e.cur}
	} else {
		e.logger.Debug("no site for "+label, zap.Error(err))
	}
	e.checkSpelling(at.Abs, at.Abs)
	e.layout.ScheduleRedraw()
	e.history.Push(act)

	e.logger.Debug(label,
		zap.Int("units", cut.Length),
		zap.Int("level", b.Level),
		zap.Int("removed", rep.Removed),
		zap.Int("merged", rep.Merged()),
	)
	return cut.Fragment, nil
}

// ============================================================================
// Insert / Paste
// ============================================================================

// InsertObject inserts a copy of f at the cursor and leaves the cursor
// after it.
func (e *Engine) InsertObject(f *tree.Fragment) bool {
	if e.readOnly {
		return e.reject("insert", ErrReadOnly)
	}
	if err := e.insertObject(f, "insert", nil); err != nil {
		return e.reject("insert", err)
	}
	return true
}

// insertObject splices f in, repairs both seams and records an Insert
// action. With a site that still fits the document, f goes back into
// the gap a deletion left; otherwise it goes in at the cursor.
func (e *Engine) insertObject(f *tree.Fragment, label string, site *splice.Site) error {
	if f.Empty() {
		return ErrEmptyFragment
	}
	if !e.cur.Valid(e.doc) {
		return ErrInvalidCursor
	}
	length := f.Len()

	e.layout.Freeze()
	defer e.layout.Thaw()
	e.layout.HideCursor()
	defer e.layout.ShowCursor()
	e.selecting = false
	e.gap = nil

	restored := false
	if site != nil {
		err := splice.Restore(e.doc, *site, f, &e.cur)
		switch {
		case err == nil:
			restored = true
		case !errors.Is(err, splice.ErrSiteMismatch):
			return err
		default:
			e.logger.Debug("site does not fit, inserting at cursor", zap.Error(err))
		}
	}
	if !restored {
		if err := e.spliceAtCursor(f); err != nil {
			return err
		}
	}
	e.mark = e.cur

	at, err := e.doc.AnchorAt(e.cur.Node, e.cur.Offset)
	if err != nil {
		return fmt.Errorf("anchor after %s: %w", label, err)
	}
	e.checkSpelling(at.Abs-length, at.Abs)
	e.layout.ScheduleRedraw()
	e.history.Push(history.NewInsert(at, length).WithLabel(label))

	e.logger.Debug(label, zap.Int("units", length), zap.Bool("restored", restored))
	return nil
}

// spliceAtCursor grafts f in as siblings of the cursor's leaf and merges
// it with its new neighbours. The cursor ends up after f.
func (e *Engine) spliceAtCursor(f *tree.Fragment) error {
	seam, err := splice.SplitAndAddEmptyTexts(e.doc, e.cur, 1)
	if err != nil {
		return err
	}
	top := seam.LeftTop()
	nodes, err := e.doc.Graft(e.doc.Parent(top), e.doc.IndexOf(top)+1, f)
	if err != nil {
		return err
	}
	first, last := nodes[0], nodes[len(nodes)-1]
	end := e.doc.LastLeaf(last)
	e.cur = cursor.At(end, e.doc.Len(end))

	// Fragment into the right context, then left context into fragment.
	splice.RemoveEmptyAndMerge(e.doc, true, splice.TailChain(e.doc, last), seam.Right, &e.cur)
	splice.RemoveEmptyAndMerge(e.doc, true, seam.Left, splice.HeadChain(e.doc, first), &e.cur)
	return nil
}

// pasteSite returns the gap the last deletion left while the cursor
// still sits where that deletion put it.
func (e *Engine) pasteSite() *splice.Site {
	if e.gap == nil || !e.gap.at.Equals(e.cur) {
		return nil
	}
	s := e.gap.site
	return &s
}

// Paste inserts the clipboard at the cursor, replacing the selection.
func (e *Engine) Paste() bool {
	f := e.clip.Get()
	if f == nil {
		return e.reject("paste", ErrEmptyClipboard)
	}
	return e.PasteObject(f)
}

// PasteObject replaces the selection, if any, with f. Replacing records
// two undo entries: the deletion and the insertion. Pasting right after
// a deletion puts f at the nesting level the deleted content had.
func (e *Engine) PasteObject(f *tree.Fragment) bool {
	if e.readOnly {
		return e.reject("paste", ErrReadOnly)
	}
	if f.Empty() {
		return e.reject("paste", ErrEmptyFragment)
	}
	if e.selecting {
		if _, err := e.deleteSelection("delete"); err != nil && !errors.Is(err, ErrEmptySelection) {
			return e.reject("paste", err)
		}
	}
	if err := e.insertObject(f, "paste", e.pasteSite()); err != nil {
		return e.reject("paste", err)
	}
	return true
}

// PasteText replaces the selection, if any, with text.
func (e *Engine) PasteText(text string) bool {
	if e.readOnly {
		return e.reject("paste", ErrReadOnly)
	}
	if text == "" {
		return e.reject("paste", ErrEmptyFragment)
	}
	if e.selecting {
		if _, err := e.deleteSelection("delete"); err != nil && !errors.Is(err, ErrEmptySelection) {
			return e.reject("paste", err)
		}
	}
	return e.InsertText(text)
}

// ============================================================================
// Compound Deletes
// ============================================================================

// DeleteN deletes count graphemes after the cursor when forward is set,
// before it otherwise. Fewer are deleted at a document edge. With an
// active selection the selection is deleted instead.
func (e *Engine) DeleteN(count int, forward bool) bool {
	if e.readOnly {
		return e.reject("delete", ErrReadOnly)
	}
	if e.selecting {
		return e.Delete()
	}
	if count <= 0 {
		return e.reject("delete", ErrEmptySelection)
	}
	step := cursor.Left
	if forward {
		step = cursor.Right
	}
	p := e.cur
	for i := 0; i < count; i++ {
		next, ok := step(e.doc, p)
		if !ok {
			break
		}
		p = next
	}
	if p.Equals(e.cur) {
		return e.reject("delete", ErrEmptySelection)
	}
	e.mark, e.cur, e.selecting = e.cur, p, true
	if _, err := e.deleteSelection("delete"); err != nil {
		return e.reject("delete", err)
	}
	return true
}

// CutLine cuts from the cursor to the next paragraph break. When the
// cursor sits right before a break, the break itself is cut, joining the
// two paragraphs.
func (e *Engine) CutLine() bool {
	if e.readOnly {
		return e.reject("cut line", ErrReadOnly)
	}
	if !e.cur.Valid(e.doc) {
		return e.reject("cut line", ErrInvalidCursor)
	}
	p := e.cur
	if e.breakAhead(p) {
		p, _ = cursor.Right(e.doc, p)
	} else {
		for !e.breakAhead(p) {
			next, ok := cursor.Right(e.doc, p)
			if !ok {
				break
			}
			p = next
		}
	}
	if p.Equals(e.cur) {
		return e.reject("cut line", ErrEmptySelection)
	}
	e.mark, e.selecting = e.cur, true
	e.cur = p
	return e.Cut()
}

// breakAhead reports whether the unit right after p is a paragraph break.
func (e *Engine) breakAhead(p cursor.Position) bool {
	f := cursor.Forward(e.doc, p)
	return f.Offset == 0 && e.doc.IsBreak(f.Node)
}

// ============================================================================
// Replay (history.Editor)
// ============================================================================

// InsertFragmentAt puts f back where a deletion took it from. The undo
// log calls it to reverse a deletion.
func (e *Engine) InsertFragmentAt(at tree.Anchor, site *splice.Site, f *tree.Fragment) error {
	leaf, off, err := e.doc.Resolve(at)
	if err != nil {
		return err
	}
	e.cur = cursor.At(leaf, off)
	e.selecting = false
	return e.insertObject(f, "insert", site)
}

// DeleteRangeAt deletes the length units ending at the anchored position.
// The undo log calls it to reverse an insertion.
func (e *Engine) DeleteRangeAt(at tree.Anchor, length int) error {
	leaf, off, err := e.doc.Resolve(at)
	if err != nil {
		return err
	}
	end := cursor.At(leaf, off)
	abs := e.abs(end)
	if abs < length {
		return fmt.Errorf("delete %d units before %d: %w", length, abs, tree.ErrOffsetOutOfRange)
	}
	sl, so, err := e.doc.Locate(abs - length)
	if err != nil {
		return err
	}
	e.mark, e.cur, e.selecting = cursor.At(sl, so), end, true
	_, err = e.deleteSelection("delete")
	return err
}

var _ history.Editor = (*Engine)(nil)
