package engine

import (
	"reflect"
	"testing"

	"github.com/dshills/folio/internal/config"
	"github.com/dshills/folio/internal/engine/clipboard"
	"github.com/dshills/folio/internal/engine/tree"
	"github.com/dshills/folio/internal/layout"
	"github.com/dshills/folio/internal/spell"
)

// quoteDoc builds: "Hello" quote["big" "bold"{b}] "World"
func quoteDoc() *tree.Tree {
	doc := tree.NewBlank()
	doc.AppendText(doc.Root(), "Hello", tree.Style{})
	q := doc.AppendContainer(doc.Root(), "quote", tree.Style{})
	doc.AppendText(q, "big", tree.Style{})
	doc.AppendText(q, "bold", tree.Style{Bold: true})
	doc.AppendText(doc.Root(), "World", tree.Style{})
	return doc
}

func checkCursor(t *testing.T, e *Engine) {
	t.Helper()
	if !e.Cursor().Valid(e.Tree()) {
		t.Fatalf("cursor %v is not in the document %s", e.Cursor(), e.Dump())
	}
}

// ============================================================================
// Basic Operations
// ============================================================================

func TestNew(t *testing.T) {
	e := New()
	if e.Text() != "" {
		t.Errorf("expected empty text, got %q", e.Text())
	}
	if e.Dump() != `""` {
		t.Errorf("expected one empty run, got %s", e.Dump())
	}
	if e.Len() != 0 {
		t.Errorf("expected len 0, got %d", e.Len())
	}
	if e.CanUndo() || e.CanRedo() {
		t.Error("new engine should have no history")
	}
	checkCursor(t, e)
}

func TestNewWithContent(t *testing.T) {
	e := New(WithContent("a\nb"))
	if e.Dump() != `"a" / "b"` {
		t.Errorf("Dump() = %s", e.Dump())
	}
	if e.Text() != "a\nb" {
		t.Errorf("Text() = %q", e.Text())
	}
	if e.CursorOffset() != 0 {
		t.Errorf("cursor should start at 0, got %d", e.CursorOffset())
	}
}

func TestLoadDropsHistory(t *testing.T) {
	e := New()
	e.InsertText("abc")
	if !e.CanUndo() {
		t.Fatal("expected undo after insert")
	}
	e.Load("fresh")
	if e.CanUndo() {
		t.Error("Load should drop the undo log")
	}
	if e.Text() != "fresh" {
		t.Errorf("Text() = %q", e.Text())
	}

	e.LoadTree(tree.NewBlank())
	if e.Dump() != `""` {
		t.Errorf("leafless tree should gain an empty run, got %s", e.Dump())
	}
	checkCursor(t, e)

	e.InsertText("x")
	e.DropUndo()
	if e.CanUndo() {
		t.Error("DropUndo should clear the log")
	}
}

// ============================================================================
// Cut / Copy / Delete
// ============================================================================

func TestCutHelloWorld(t *testing.T) {
	e := New(WithContent("Hello World"))
	e.SelectRange(5, 6)

	if !e.Cut() {
		t.Fatal("Cut() returned false")
	}
	if e.Dump() != `"HelloWorld"` {
		t.Errorf("after cut: %s, want one merged run", e.Dump())
	}
	if got := e.Clipboard().Text(); got != " " {
		t.Errorf("clipboard = %q", got)
	}
	if e.Clipboard().Len() != 1 {
		t.Errorf("clipboard len = %d", e.Clipboard().Len())
	}
	if e.HasSelection() {
		t.Error("cut should drop the selection")
	}
	if e.CursorOffset() != 5 {
		t.Errorf("cursor at %d, want 5", e.CursorOffset())
	}
	checkCursor(t, e)

	// Content comes back; the run boundaries may differ.
	if !e.Undo() {
		t.Fatal("Undo() returned false")
	}
	if e.Text() != "Hello World" {
		t.Errorf("after undo: %q", e.Text())
	}
	checkCursor(t, e)

	if !e.Redo() {
		t.Fatal("Redo() returned false")
	}
	if e.Text() != "HelloWorld" {
		t.Errorf("after redo: %q", e.Text())
	}
	if !e.Undo() || e.Text() != "Hello World" {
		t.Errorf("second undo: %q", e.Text())
	}
}

func TestCopyDeletePasteRoundTrip(t *testing.T) {
	e := New()
	e.LoadTree(quoteDoc())
	original := e.Dump()

	e.SelectRange(2, 6)
	if !e.Copy() {
		t.Fatal("Copy() returned false")
	}
	if got := e.Clipboard().Get().String(); got != `"llo" quote["b"]` {
		t.Errorf("clipboard = %s", got)
	}
	if e.CanUndo() {
		t.Error("copy should not record undo")
	}
	if !e.HasSelection() {
		t.Error("copy should keep the selection")
	}

	if !e.Delete() {
		t.Fatal("Delete() returned false")
	}
	if e.Dump() != `"He" quote["ig" "bold"{b}] "World"` {
		t.Errorf("after delete: %s", e.Dump())
	}
	if e.CursorOffset() != 2 {
		t.Errorf("cursor at %d, want 2", e.CursorOffset())
	}

	if !e.Paste() {
		t.Fatal("Paste() returned false")
	}
	if e.Dump() != original {
		t.Errorf("after paste: %s, want %s", e.Dump(), original)
	}
	if e.CursorOffset() != 6 {
		t.Errorf("cursor at %d, want 6", e.CursorOffset())
	}
	checkCursor(t, e)

	// The clipboard is reusable.
	if e.Clipboard().Empty() {
		t.Error("paste should not consume the clipboard")
	}

	if !e.Undo() || e.Text() != "HeigboldWorld" {
		t.Errorf("undo paste: %q", e.Text())
	}
	if !e.Undo() || e.Text() != "HellobigboldWorld" {
		t.Errorf("undo delete: %q", e.Text())
	}
}

func TestDeleteWholeDocument(t *testing.T) {
	e := New(WithContent("a\nb"))
	e.SelectAll()
	if !e.Delete() {
		t.Fatal("Delete() returned false")
	}
	if e.Dump() != `""` {
		t.Errorf("after delete: %s", e.Dump())
	}
	checkCursor(t, e)

	if !e.Undo() || e.Text() != "a\nb" {
		t.Errorf("after undo: %q", e.Text())
	}
	checkCursor(t, e)
}

func TestPreconditionsAreNoOps(t *testing.T) {
	e := New(WithContent("abc"))

	tests := []struct {
		name string
		verb func() bool
	}{
		{"delete without selection", e.Delete},
		{"cut without selection", e.Cut},
		{"copy without selection", e.Copy},
		{"paste empty clipboard", e.Paste},
		{"undo empty log", e.Undo},
		{"redo empty log", e.Redo},
		{"remove link without selection", e.RemoveLink},
		{"insert empty text", func() bool { return e.InsertText("") }},
		{"insert empty fragment", func() bool { return e.InsertObject(tree.NewFragment()) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.verb() {
				t.Error("expected no-op")
			}
			if e.Text() != "abc" {
				t.Errorf("document changed: %q", e.Text())
			}
		})
	}

	e.SelectRange(1, 1)
	if e.Delete() {
		t.Error("empty selection should not delete")
	}
	if e.HasSelection() {
		t.Error("empty selection should be dropped")
	}
}

func TestReadOnly(t *testing.T) {
	e := New(WithContent("abc"), WithReadOnly())
	if !e.IsReadOnly() {
		t.Fatal("expected read-only engine")
	}
	e.SelectAll()
	if e.Delete() || e.Cut() || e.InsertText("x") || e.DeleteN(1, true) {
		t.Error("read-only engine accepted an edit")
	}
	if e.Text() != "abc" {
		t.Errorf("Text() = %q", e.Text())
	}
	if !e.Copy() {
		t.Error("copy should work on a read-only engine")
	}
}

// ============================================================================
// Insert
// ============================================================================

func TestInsertTextBreaksUndoSeparately(t *testing.T) {
	e := New()
	if !e.InsertText("a\nb") {
		t.Fatal("InsertText() returned false")
	}
	if e.Dump() != `"a" / "b"` {
		t.Errorf("Dump() = %s", e.Dump())
	}
	if n := e.History().UndoCount(); n != 3 {
		t.Fatalf("UndoCount() = %d, want 3", n)
	}

	want := []string{"a\n", "a", ""}
	for i, w := range want {
		if !e.Undo() {
			t.Fatalf("undo %d failed", i+1)
		}
		if e.Text() != w {
			t.Errorf("after undo %d: %q, want %q", i+1, e.Text(), w)
		}
		checkCursor(t, e)
	}
	if e.Undo() {
		t.Error("fourth undo should fail")
	}
	if e.Dump() != `""` {
		t.Errorf("Dump() = %s", e.Dump())
	}

	for i := 0; i < 3; i++ {
		if !e.Redo() {
			t.Fatalf("redo %d failed", i+1)
		}
	}
	if e.Text() != "a\nb" {
		t.Errorf("after redo: %q", e.Text())
	}
}

func TestInsertObjectMergesIntoContext(t *testing.T) {
	e := New(WithContent("ad"))
	e.JumpToOffset(1)

	if !e.InsertObject(tree.TextFragment("bc", tree.Style{})) {
		t.Fatal("InsertObject() returned false")
	}
	if e.Dump() != `"abcd"` {
		t.Errorf("plain insert: %s", e.Dump())
	}
	if e.CursorOffset() != 3 {
		t.Errorf("cursor at %d, want 3", e.CursorOffset())
	}

	if !e.InsertObject(tree.TextFragment("X", tree.Style{Bold: true})) {
		t.Fatal("InsertObject() returned false")
	}
	if e.Dump() != `"abc" "X"{b} "d"` {
		t.Errorf("styled insert: %s", e.Dump())
	}

	if !e.InsertObject(tree.EmbeddedFragment(tree.Object("img"))) {
		t.Fatal("InsertObject() returned false")
	}
	if e.Dump() != `"abc" "X"{b} <obj:img> "d"` {
		t.Errorf("object insert: %s", e.Dump())
	}
	checkCursor(t, e)
}

func TestPasteOverSelection(t *testing.T) {
	e := New(WithContent("Hello World"))
	e.SelectRange(6, 11)
	if !e.PasteText("Go") {
		t.Fatal("PasteText() returned false")
	}
	if e.Text() != "Hello Go" {
		t.Errorf("Text() = %q", e.Text())
	}
	if n := e.History().UndoCount(); n != 2 {
		t.Errorf("UndoCount() = %d, want 2", n)
	}
	e.Undo()
	if e.Text() != "Hello " {
		t.Errorf("after first undo: %q", e.Text())
	}
	e.Undo()
	if e.Text() != "Hello World" {
		t.Errorf("after second undo: %q", e.Text())
	}
}

// ============================================================================
// Compound Deletes
// ============================================================================

func TestDeleteN(t *testing.T) {
	e := New(WithContent("abcdef"))
	e.JumpToOffset(3)

	tests := []struct {
		name    string
		count   int
		forward bool
		ok      bool
		text    string
		cursor  int
	}{
		{"forward two", 2, true, true, "abcf", 3},
		{"backward two", 2, false, true, "af", 1},
		{"backward past start", 10, false, true, "f", 0},
		{"backward at start", 1, false, false, "f", 0},
		{"zero count", 0, true, false, "f", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.DeleteN(tt.count, tt.forward); got != tt.ok {
				t.Errorf("DeleteN() = %v, want %v", got, tt.ok)
			}
			if e.Text() != tt.text {
				t.Errorf("Text() = %q, want %q", e.Text(), tt.text)
			}
			if e.CursorOffset() != tt.cursor {
				t.Errorf("cursor at %d, want %d", e.CursorOffset(), tt.cursor)
			}
			checkCursor(t, e)
		})
	}

	e.Undo()
	if e.Text() != "af" {
		t.Errorf("after undo: %q", e.Text())
	}
}

func TestCutLine(t *testing.T) {
	e := New(WithContent("first\nsecond"))

	steps := []struct {
		text string
		clip string
	}{
		{"\nsecond", "first"},
		{"second", "\n"},
		{"", "second"},
	}
	for i, s := range steps {
		if !e.CutLine() {
			t.Fatalf("CutLine %d returned false", i+1)
		}
		if e.Text() != s.text {
			t.Errorf("after CutLine %d: %q, want %q", i+1, e.Text(), s.text)
		}
		if got := e.Clipboard().Text(); got != s.clip {
			t.Errorf("clipboard after CutLine %d: %q, want %q", i+1, got, s.clip)
		}
		checkCursor(t, e)
	}
	if e.CutLine() {
		t.Error("CutLine on an empty document should fail")
	}
}

// ============================================================================
// Undo / Redo
// ============================================================================

func TestUndoRedoChain(t *testing.T) {
	e := New()
	states := []string{e.Text()}

	e.InsertText("one two")
	states = append(states, e.Text())
	e.SelectRange(3, 4)
	e.Delete()
	states = append(states, e.Text())
	e.JumpToOffset(0)
	e.InsertText("zero ")
	states = append(states, e.Text())

	want := []string{"", "one two", "onetwo", "zero onetwo"}
	if !reflect.DeepEqual(states, want) {
		t.Fatalf("states = %q, want %q", states, want)
	}

	for cycle := 0; cycle < 3; cycle++ {
		for i := len(states) - 2; i >= 0; i-- {
			if !e.Undo() {
				t.Fatalf("cycle %d: undo to %q failed", cycle, states[i])
			}
			if e.Text() != states[i] {
				t.Fatalf("cycle %d: undo gave %q, want %q", cycle, e.Text(), states[i])
			}
			checkCursor(t, e)
		}
		for i := 1; i < len(states); i++ {
			if !e.Redo() {
				t.Fatalf("cycle %d: redo to %q failed", cycle, states[i])
			}
			if e.Text() != states[i] {
				t.Fatalf("cycle %d: redo gave %q, want %q", cycle, e.Text(), states[i])
			}
			checkCursor(t, e)
		}
	}
}

func TestNewEditClearsRedo(t *testing.T) {
	e := New()
	e.InsertText("abc")
	e.Undo()
	if !e.CanRedo() {
		t.Fatal("expected redo after undo")
	}
	e.InsertText("x")
	if e.CanRedo() {
		t.Error("a new edit should clear redo")
	}
}

func TestGroup(t *testing.T) {
	e := New()
	ok := e.Group("typing", func() bool {
		return e.InsertText("ab") && e.InsertText("cd")
	})
	if !ok {
		t.Fatal("Group() returned false")
	}
	if n := e.History().UndoCount(); n != 1 {
		t.Fatalf("UndoCount() = %d, want 1", n)
	}
	e.Undo()
	if e.Text() != "" {
		t.Errorf("after undo: %q", e.Text())
	}
	e.Redo()
	if e.Text() != "abcd" {
		t.Errorf("after redo: %q", e.Text())
	}
}

func TestUndoToCheckpoint(t *testing.T) {
	e := New(WithContent("base"))
	e.JumpToOffset(4)
	cp := e.Checkpoint()
	e.InsertText(" x")
	e.InsertText(" y")
	done := e.Checkpoint()
	if !e.UndoToCheckpoint(cp) {
		t.Fatal("UndoToCheckpoint() returned false")
	}
	if e.Text() != "base" {
		t.Errorf("Text() = %q", e.Text())
	}

	if !e.RedoToCheckpoint(done) {
		t.Fatal("RedoToCheckpoint() returned false")
	}
	if e.Text() != "base x y" {
		t.Errorf("after redo: %q", e.Text())
	}
}

// ============================================================================
// Cursor
// ============================================================================

func TestJumpTo(t *testing.T) {
	e := New(WithContent("abc"))
	leaf := e.Cursor().Node

	if !e.JumpTo(leaf, 2) || e.CursorOffset() != 2 {
		t.Errorf("JumpTo(leaf, 2) moved to %d", e.CursorOffset())
	}
	if e.JumpTo(leaf, 9) {
		t.Error("JumpTo past the end should fail")
	}

	e.SelectAll()
	e.Delete()
	if e.JumpTo(leaf, 0) {
		t.Error("JumpTo a removed node should fail")
	}
	checkCursor(t, e)
}

func TestMoveAndSelect(t *testing.T) {
	e := New(WithContent("héllo"))
	e.MoveRight(2, false)
	if e.CursorOffset() != 2 || e.HasSelection() {
		t.Errorf("MoveRight: offset %d selecting %v", e.CursorOffset(), e.HasSelection())
	}
	e.MoveRight(2, true)
	if got := e.SelectedText(); got != "ll" {
		t.Errorf("SelectedText() = %q", got)
	}
	e.MoveLeft(1, true)
	if got := e.SelectedText(); got != "l" {
		t.Errorf("SelectedText() = %q", got)
	}
	if e.MoveLeft(10, false); e.CursorOffset() != 0 {
		t.Errorf("MoveLeft to start: %d", e.CursorOffset())
	}
	if e.MoveLeft(1, false) {
		t.Error("MoveLeft at start should report no movement")
	}
}

// ============================================================================
// Links
// ============================================================================

func TestMagicLinks(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		input []string
		want  string
	}{
		{
			name:  "space trigger",
			input: []string{"see www.example.com "},
			want:  `"see " "www.example.com"{link=http://www.example.com} " "`,
		},
		{
			name:  "typing continues plain",
			input: []string{"see www.example.com ", "ok"},
			want:  `"see " "www.example.com"{link=http://www.example.com} " ok"`,
		},
		{
			name:  "newline trigger",
			input: []string{"http://x.io\nmore"},
			want:  `"http://x.io"{link=http://x.io} / "more"`,
		},
		{
			name:  "no trigger",
			input: []string{"http://x.io"},
			want:  `"http://x.io"`,
		},
		{
			name:  "scheme alone",
			input: []string{"mailto: "},
			want:  `"mailto: "`,
		},
		{
			name:  "disabled",
			opts:  []Option{WithMagicLinks(false)},
			input: []string{"www.example.com "},
			want:  `"www.example.com "`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(tt.opts...)
			for _, s := range tt.input {
				e.InsertText(s)
			}
			if e.Dump() != tt.want {
				t.Errorf("Dump() = %s, want %s", e.Dump(), tt.want)
			}
			checkCursor(t, e)
		})
	}
}

func TestInsertAndRemoveLink(t *testing.T) {
	e := New(WithContent("click here now"))
	e.SelectRange(6, 10)

	if !e.InsertLink("https://go.dev", "_blank") {
		t.Fatal("InsertLink() returned false")
	}
	want := `"click " "here"{link=https://go.dev,target=_blank} " now"`
	if e.Dump() != want {
		t.Errorf("after InsertLink: %s", e.Dump())
	}
	if !e.HasSelection() || e.SelectedText() != "here" {
		t.Errorf("selection lost: %q", e.SelectedText())
	}
	if e.CanUndo() {
		t.Error("link edits record no undo")
	}

	if !e.RemoveLink() {
		t.Fatal("RemoveLink() returned false")
	}
	if e.Dump() != `"click here now"` {
		t.Errorf("after RemoveLink: %s", e.Dump())
	}
	if e.RemoveLink() {
		t.Error("RemoveLink with nothing linked should report no change")
	}
}

func TestInsertLinkWithoutSelection(t *testing.T) {
	e := New()
	if !e.InsertLink("https://a.b", "") {
		t.Fatal("InsertLink() returned false")
	}
	if e.Dump() != `"https://a.b"{link=https://a.b}` {
		t.Errorf("Dump() = %s", e.Dump())
	}
	e.Undo()
	if e.Text() != "" {
		t.Errorf("after undo: %q", e.Text())
	}
}

func TestTransformClipboard(t *testing.T) {
	e := New(WithContent("one two"))
	e.SelectAll()
	e.Copy()

	bold := func(s tree.Style, _ string) tree.Style {
		s.Bold = true
		return s
	}
	if !e.TransformClipboard(bold, "") {
		t.Fatal("TransformClipboard() returned false")
	}
	if got := e.Clipboard().Get().String(); got != `"one two"{b}` {
		t.Errorf("clipboard = %s", got)
	}
	if e.Dump() != `"one two"` {
		t.Errorf("document changed: %s", e.Dump())
	}
}

// ============================================================================
// Collaborators
// ============================================================================

func TestClipboardSharedAcrossEngines(t *testing.T) {
	clip := clipboard.New()
	a := New(WithContent("alpha beta"), WithClipboard(clip))
	b := New(WithClipboard(clip))

	a.SelectRange(0, 5)
	a.Copy()
	if !b.Paste() {
		t.Fatal("Paste() returned false")
	}
	if b.Text() != "alpha" {
		t.Errorf("b.Text() = %q", b.Text())
	}

	b.SelectAll()
	b.Delete()
	if clip.Text() != "alpha" {
		t.Errorf("clipboard changed by the paste target: %q", clip.Text())
	}
	if a.Text() != "alpha beta" {
		t.Errorf("a changed: %q", a.Text())
	}
}

func TestLayoutBrackets(t *testing.T) {
	rec := layout.NewRecorder()
	e := New(WithContent("abc"), WithLayout(rec))
	e.SelectRange(1, 2)

	rec.Reset()
	e.Delete()
	want := []layout.EventType{
		layout.EventFreeze,
		layout.EventHideCursor,
		layout.EventShowCursor,
		layout.EventThaw,
		layout.EventRedraw,
	}
	if got := rec.Events(); !reflect.DeepEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}

	rec.Reset()
	e.Undo()
	if rec.Redraws() != 1 {
		t.Errorf("undo redrew %d times, want 1", rec.Redraws())
	}
	if rec.Frozen() || !rec.CursorVisible() {
		t.Error("brackets left unbalanced")
	}

	rec.Reset()
	e.ClearSelection()
	e.Delete()
	if n := len(rec.Events()); n != 0 {
		t.Errorf("rejected edit produced %d events", n)
	}
}

type rangeRecorder struct {
	calls [][2]int
}

func (r *rangeRecorder) CheckRange(_ *tree.Tree, from, to int) {
	r.calls = append(r.calls, [2]int{from, to})
}

func TestSpellRanges(t *testing.T) {
	rec := &rangeRecorder{}
	e := New(WithContent("Hello World"), WithSpellChecker(rec))
	e.JumpToOffset(5)
	e.InsertText("!!")
	e.SelectRange(0, 2)
	e.Delete()

	want := [][2]int{{0, 11}, {5, 7}, {0, 0}}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Errorf("calls = %v, want %v", rec.calls, want)
	}
}

func TestSpellCheckerFollowsEdits(t *testing.T) {
	chk := spell.New()
	e := New(WithContent("the wrld is big"), WithSpellChecker(chk))
	if m := chk.Markers(); len(m) != 1 || m[0].Word != "wrld" {
		t.Fatalf("initial markers = %+v", m)
	}

	e.JumpToOffset(5)
	e.InsertText("o")
	if m := chk.Markers(); len(m) != 0 {
		t.Errorf("after fix: %+v", m)
	}

	e.Undo()
	if m := chk.Markers(); len(m) != 1 || m[0].Word != "wrld" {
		t.Errorf("after undo: %+v", m)
	}
}

func TestApplyConfig(t *testing.T) {
	e := New()
	e.ApplyConfig(config.EditorConfig{UndoLimit: 2, MagicLinks: false})
	if e.History().MaxEntries() != 2 {
		t.Errorf("MaxEntries() = %d", e.History().MaxEntries())
	}
	e.InsertText("www.a.com ")
	if e.Dump() != `"www.a.com "` {
		t.Errorf("magic links still on: %s", e.Dump())
	}
}
