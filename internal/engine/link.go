package engine

import (
	"go.uber.org/zap"

	"github.com/dshills/folio/internal/engine/bounds"
	"github.com/dshills/folio/internal/engine/cursor"
	"github.com/dshills/folio/internal/engine/splice"
	"github.com/dshills/folio/internal/engine/tree"
)

// Transform maps the style of a text run, given the data of the edit.
// Runs whose style comes back unchanged are left alone.
type Transform func(s tree.Style, data string) tree.Style

// InsertLink links the selection to url. Without a selection the URL
// itself is inserted as a linked run.
func (e *Engine) InsertLink(url, target string) bool {
	if e.readOnly {
		return e.reject("insert link", ErrReadOnly)
	}
	if url == "" {
		return e.reject("insert link", ErrEmptyFragment)
	}
	if !e.selecting {
		f := tree.TextFragment(url, e.typingStyle().WithLink(url, target))
		if err := e.insertObject(f, "insert link", nil); err != nil {
			return e.reject("insert link", err)
		}
		return true
	}
	return e.CutAndPaste("insert link", func(s tree.Style, u string) tree.Style {
		return s.WithLink(u, target)
	}, url)
}

// RemoveLink removes links from the selection.
func (e *Engine) RemoveLink() bool {
	return e.CutAndPaste("remove link", func(s tree.Style, _ string) tree.Style {
		return s.WithoutLink()
	}, "")
}

// CutAndPaste applies fn to every text run in the selection. A run only
// partly selected is split first; each changed run is replaced in its
// parent and merged into its previous sibling where the styles allow.
// Cursor and mark keep their absolute offsets. No undo action is
// recorded.
func (e *Engine) CutAndPaste(label string, fn Transform, data string) bool {
	if err := e.checkSelection(); err != nil {
		return e.reject(label, err)
	}
	from, to := e.abs(e.mark), e.abs(e.cur)
	if from > to {
		from, to = to, from
	}
	if from < 0 || from == to {
		return e.reject(label, ErrEmptySelection)
	}
	return e.transformRange(label, from, to, fn, data) > 0
}

// TransformClipboard applies fn to every text run on the clipboard.
func (e *Engine) TransformClipboard(fn Transform, data string) bool {
	return e.clip.Update(func(f *tree.Fragment) *tree.Fragment {
		ft := f.Tree()
		for _, id := range ft.Leaves(ft.Root()) {
			if ft.Kind(id) != tree.KindText {
				continue
			}
			if s := fn(ft.Style(id), data); s != ft.Style(id) {
				restyle(ft, id, s)
			}
		}
		return f
	})
}

// transformRange applies fn over the absolute range [from, to) and
// returns the number of runs changed.
func (e *Engine) transformRange(label string, from, to int, fn Transform, data string) int {
	curAbs, markAbs := e.abs(e.cur), e.abs(e.mark)
	fl, fo, err := e.doc.Locate(from)
	if err != nil {
		e.reject(label, err)
		return 0
	}
	tl, toff, err := e.doc.Locate(to)
	if err != nil {
		e.reject(label, err)
		return 0
	}
	b, err := bounds.Prepare(e.doc, cursor.NewInterval(cursor.At(fl, fo), cursor.At(tl, toff)), false)
	if err != nil || b.Empty {
		e.reject(label, ErrEmptySelection)
		return 0
	}

	e.layout.Freeze()
	defer e.layout.Thaw()
	e.layout.HideCursor()
	defer e.layout.ShowCursor()

	var leaves []tree.NodeID
	for id := b.Begin.Node; !id.IsNil(); id = e.doc.NextLeaf(id) {
		leaves = append(leaves, id)
		if id == b.End.Node {
			break
		}
	}

	changed := 0
	last := tree.Nil
	for i, id := range leaves {
		if e.doc.Kind(id) != tree.KindText {
			continue
		}
		old := e.doc.Style(id)
		s := fn(old, data)
		if s == old {
			continue
		}
		lo, hi := 0, e.doc.Len(id)
		if i == 0 {
			lo = b.Begin.Offset
		}
		if i == len(leaves)-1 {
			hi = b.End.Offset
		}
		if lo >= hi {
			continue
		}
		last = restyle(e.doc, isolate(e.doc, id, lo, hi), s)
		changed++
	}
	if changed == 0 {
		return 0
	}
	e.gap = nil
	splice.Join(e.doc, last, e.doc.NextSibling(last))

	if l, o, err := e.doc.Locate(curAbs); err == nil {
		e.cur = cursor.At(l, o)
	}
	if l, o, err := e.doc.Locate(markAbs); err == nil {
		e.mark = cursor.At(l, o)
	}
	e.checkSpelling(from, to)
	e.layout.ScheduleRedraw()
	e.logger.Debug(label, zap.Int("runs", changed))
	return changed
}

// isolate splits the text run id so that [lo, hi) is a run of its own
// and returns it.
func isolate(t *tree.Tree, id tree.NodeID, lo, hi int) tree.NodeID {
	if hi < t.Len(id) {
		if _, _, err := t.SplitLeaf(id, hi); err != nil {
			return id
		}
	}
	if lo > 0 {
		if _, r, err := t.SplitLeaf(id, lo); err == nil {
			return r
		}
	}
	return id
}

// restyle replaces the text run id with a copy in style s and merges it
// into its previous sibling when they are compatible. It returns the
// node now holding the text.
func restyle(t *tree.Tree, id tree.NodeID, s tree.Style) tree.NodeID {
	n := t.NewText(t.Text(id), s)
	if err := t.Replace(id, n); err != nil {
		return id
	}
	prev := t.PrevSibling(n)
	if t.Merge(prev, n).Outcome == tree.Merged {
		return prev
	}
	return n
}
