package engine

import (
	"github.com/dshills/folio/internal/engine/cursor"
	"github.com/dshills/folio/internal/engine/tree"
)

// Cursor returns the cursor position.
func (e *Engine) Cursor() cursor.Position {
	return e.cur
}

// CursorOffset returns the cursor as an absolute unit offset.
func (e *Engine) CursorOffset() int {
	return e.abs(e.cur)
}

// Mark returns the selection anchor.
func (e *Engine) Mark() cursor.Position {
	return e.mark
}

// HasSelection returns true if a selection is active.
func (e *Engine) HasSelection() bool {
	return e.selecting
}

// Selection returns the active selection as an interval from the mark to
// the cursor, and false when no selection is active.
func (e *Engine) Selection() (cursor.Interval, bool) {
	return cursor.NewInterval(e.mark, e.cur), e.selecting
}

// SelectedText returns the plain text of the selection.
func (e *Engine) SelectedText() string {
	if !e.selecting {
		return ""
	}
	from, to := e.abs(e.mark), e.abs(e.cur)
	if from > to {
		from, to = to, from
	}
	if from < 0 {
		return ""
	}
	return string([]rune(e.doc.PlainText())[from:to])
}

// JumpTo moves the cursor to (node, offset) and drops the selection. It
// does nothing if node is not an attached leaf or offset is out of range.
func (e *Engine) JumpTo(node tree.NodeID, offset int) bool {
	p := cursor.Position{Node: node, Offset: offset}
	if !p.Valid(e.doc) {
		return e.reject("jump", ErrInvalidCursor)
	}
	e.moveTo(p)
	e.selecting = false
	return true
}

// JumpToOffset moves the cursor to an absolute unit offset and drops the
// selection.
func (e *Engine) JumpToOffset(abs int) bool {
	leaf, off, err := e.doc.Locate(abs)
	if err != nil {
		return e.reject("jump", err)
	}
	return e.JumpTo(leaf, off)
}

// MoveLeft moves the cursor n graphemes back. With extend set the
// selection grows from the current mark; otherwise it is dropped. It
// returns false if the cursor could not move at all.
func (e *Engine) MoveLeft(n int, extend bool) bool {
	return e.move(n, extend, cursor.Left)
}

// MoveRight moves the cursor n graphemes forward.
func (e *Engine) MoveRight(n int, extend bool) bool {
	return e.move(n, extend, cursor.Right)
}

func (e *Engine) move(n int, extend bool, step func(*tree.Tree, cursor.Position) (cursor.Position, bool)) bool {
	if !extend || !e.selecting {
		e.mark = e.cur
	}
	p := e.cur
	for i := 0; i < n; i++ {
		next, ok := step(e.doc, p)
		if !ok {
			break
		}
		p = next
	}
	e.selecting = extend
	if p.Equals(e.cur) {
		return false
	}
	e.moveTo(p)
	return true
}

// SetMark anchors a selection at the cursor.
func (e *Engine) SetMark() {
	e.mark = e.cur
	e.selecting = true
}

// ClearSelection drops the selection, keeping the cursor.
func (e *Engine) ClearSelection() {
	e.mark = e.cur
	e.selecting = false
}

// SelectRange selects the absolute unit range [from, to), leaving the
// cursor at to.
func (e *Engine) SelectRange(from, to int) bool {
	ml, mo, err := e.doc.Locate(from)
	if err != nil {
		return e.reject("select", err)
	}
	cl, co, err := e.doc.Locate(to)
	if err != nil {
		return e.reject("select", err)
	}
	e.mark = cursor.At(ml, mo)
	e.moveTo(cursor.At(cl, co))
	e.selecting = true
	return true
}

// SelectAll selects the whole document.
func (e *Engine) SelectAll() {
	e.mark = cursor.Start(e.doc)
	e.moveTo(cursor.End(e.doc))
	e.selecting = true
}

// moveTo repositions the cursor with the cursor hidden, so it is never
// drawn against a node it no longer addresses.
func (e *Engine) moveTo(p cursor.Position) {
	e.layout.HideCursor()
	e.cur = p
	e.layout.ShowCursor()
}
