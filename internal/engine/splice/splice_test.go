package splice

import (
	"testing"

	"github.com/dshills/folio/internal/engine/cursor"
	"github.com/dshills/folio/internal/engine/tree"
)

// checkMergeSafe fails when an empty text run sits next to a text run of
// the same style anywhere in the tree.
func checkMergeSafe(t *testing.T, tr *tree.Tree, id tree.NodeID) {
	t.Helper()
	kids := tr.Children(id)
	for i, c := range kids {
		if tr.Kind(c) == tree.KindContainer {
			checkMergeSafe(t, tr, c)
		}
		if i == 0 {
			continue
		}
		p := kids[i-1]
		if tr.Kind(p) != tree.KindText || tr.Kind(c) != tree.KindText {
			continue
		}
		if (tr.IsEmpty(p) || tr.IsEmpty(c)) && tr.Style(p) == tr.Style(c) {
			t.Errorf("empty run next to compatible run: %s", tr.Dump())
		}
	}
}

func path(steps ...tree.Step) tree.Path { return tree.Path(steps) }

func TestSplitAndAddEmptyTextsLeaf(t *testing.T) {
	tests := []struct {
		name string
		off  int
		want string
	}{
		{"middle", 2, `"He" "llo"`},
		{"start", 0, `"" "Hello"`},
		{"end", 5, `"Hello" ""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := tree.NewBlank()
			leaf := tr.AppendText(tr.Root(), "Hello", tree.Style{})

			seam, err := SplitAndAddEmptyTexts(tr, cursor.At(leaf, tt.off), 1)
			if err != nil {
				t.Fatalf("split: %v", err)
			}
			if got := tr.Dump(); got != tt.want {
				t.Errorf("Dump() = %s, want %s", got, tt.want)
			}
			if tr.PlainText() != "Hello" {
				t.Errorf("content changed: %q", tr.PlainText())
			}
			if len(seam.Left) != 1 || tr.NextSibling(seam.LeftTop()) != seam.RightTop() {
				t.Error("seam tops are not adjacent")
			}
		})
	}
}

func TestSplitAndAddEmptyTextsLevels(t *testing.T) {
	tr := tree.NewBlank()
	q := tr.AppendContainer(tr.Root(), "quote", tree.Style{})
	leaf := tr.AppendText(q, "abcd", tree.Style{})

	seam, err := SplitAndAddEmptyTexts(tr, cursor.At(leaf, 2), 5)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if len(seam.Left) != 2 || len(seam.Right) != 2 {
		t.Fatalf("chain lengths = %d/%d, want 2/2", len(seam.Left), len(seam.Right))
	}
	if got, want := tr.Dump(), `quote["ab"] quote["cd"]`; got != want {
		t.Errorf("Dump() = %s, want %s", got, want)
	}
	if seam.LeftTop() != q || tr.Parent(seam.RightTop()) != tr.Root() {
		t.Error("unexpected seam tops")
	}
}

func TestSplitAndAddEmptyTextsEmbedded(t *testing.T) {
	tr := tree.NewBlank()
	obj := tr.AppendEmbedded(tr.Root(), tree.Object("img"))

	seam, err := SplitAndAddEmptyTexts(tr, cursor.At(obj, 1), 1)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if seam.Left[0] != obj || tr.Kind(seam.Right[0]) != tree.KindText {
		t.Errorf("seam = %+v", seam)
	}
	if got := tr.Dump(); got != `<obj:img> ""` {
		t.Errorf("Dump() = %s", got)
	}
}

func TestSplitAndAddEmptyTextsInvalid(t *testing.T) {
	tr := tree.New()
	leaf := tr.FirstLeaf(tr.Root())
	if _, err := SplitAndAddEmptyTexts(tr, cursor.At(leaf, 4), 1); err == nil {
		t.Error("expected error for out-of-range offset")
	}
}

func TestRemoveEmptyAndMerge(t *testing.T) {
	t.Run("joins the seam", func(t *testing.T) {
		tr := tree.NewBlank()
		leaf := tr.AppendText(tr.Root(), "Hello World", tree.Style{})
		cut, err := tr.OpCut(tr.Root(),
			path(tree.Step{Node: tr.Root()}, tree.Step{Node: leaf, Offset: 5}),
			path(tree.Step{Node: tr.Root()}, tree.Step{Node: leaf, Offset: 6}))
		if err != nil {
			t.Fatalf("cut: %v", err)
		}

		cur := cursor.At(cut.Right[0], 0)
		rep := RemoveEmptyAndMerge(tr, true, cut.Left, cut.Right, &cur)

		if got := tr.Dump(); got != `"HelloWorld"` {
			t.Errorf("Dump() = %s", got)
		}
		if rep.Merged() != 1 || rep.Removed != 0 {
			t.Errorf("report = %+v", rep)
		}
		if !cur.Equals(cursor.At(leaf, 5)) {
			t.Errorf("cursor = %v, want %v", cur, cursor.At(leaf, 5))
		}
	})

	t.Run("removes emptied runs then merges neighbours", func(t *testing.T) {
		tr := tree.NewBlank()
		ab := tr.AppendText(tr.Root(), "ab", tree.Style{Bold: true})
		cd := tr.AppendText(tr.Root(), "cd", tree.Style{})
		tr.AppendText(tr.Root(), "ef", tree.Style{Bold: true})
		cut, err := tr.OpCut(tr.Root(),
			path(tree.Step{Node: tr.Root(), Offset: 1}, tree.Step{Node: cd, Offset: 0}),
			path(tree.Step{Node: tr.Root(), Offset: 1}, tree.Step{Node: cd, Offset: 2}))
		if err != nil {
			t.Fatalf("cut: %v", err)
		}

		cur := cursor.At(cut.Right[0], 0)
		mark := cursor.At(cut.Left[0], 0)
		rep := RemoveEmptyAndMerge(tr, true, cut.Left, cut.Right, &cur, &mark)

		if got := tr.Dump(); got != `"abef"{b}` {
			t.Errorf("Dump() = %s", got)
		}
		if rep.Removed != 2 {
			t.Errorf("Removed = %d, want 2", rep.Removed)
		}
		if !cur.Equals(cursor.At(ab, 2)) || !mark.Equals(cursor.At(ab, 2)) {
			t.Errorf("cursor = %v, mark = %v, want %v", cur, mark, cursor.At(ab, 2))
		}
		checkMergeSafe(t, tr, tr.Root())
	})

	t.Run("style refusal keeps both sides", func(t *testing.T) {
		tr := tree.NewBlank()
		ab := tr.AppendText(tr.Root(), "ab", tree.Style{Bold: true})
		cd := tr.AppendText(tr.Root(), "cd", tree.Style{})
		cut, err := tr.OpCut(tr.Root(),
			path(tree.Step{Node: tr.Root(), Offset: 0}, tree.Step{Node: ab, Offset: 1}),
			path(tree.Step{Node: tr.Root(), Offset: 1}, tree.Step{Node: cd, Offset: 1}))
		if err != nil {
			t.Fatalf("cut: %v", err)
		}

		cur := cursor.At(cut.Right[0], 0)
		rep := RemoveEmptyAndMerge(tr, true, cut.Left, cut.Right, &cur)

		if got := tr.Dump(); got != `"a"{b} "d"` {
			t.Errorf("Dump() = %s", got)
		}
		if len(rep.Merges) != 1 || rep.Merges[0].Outcome != tree.MergeIncompatible {
			t.Errorf("merges = %+v", rep.Merges)
		}
		if !cur.Equals(cursor.At(ab, 1)) {
			t.Errorf("cursor = %v, want end of the bold run", cur)
		}
	})

	t.Run("joins containers down to the leaves", func(t *testing.T) {
		tr := tree.NewBlank()
		p1 := tr.AppendContainer(tr.Root(), "p", tree.Style{})
		ab := tr.AppendText(p1, "ab", tree.Style{})
		p2 := tr.AppendContainer(tr.Root(), "p", tree.Style{})
		cd := tr.AppendText(p2, "cd", tree.Style{})
		cut, err := tr.OpCut(tr.Root(),
			path(tree.Step{Node: tr.Root(), Offset: 0}, tree.Step{Node: p1, Offset: 0}, tree.Step{Node: ab, Offset: 1}),
			path(tree.Step{Node: tr.Root(), Offset: 1}, tree.Step{Node: p2, Offset: 0}, tree.Step{Node: cd, Offset: 1}))
		if err != nil {
			t.Fatalf("cut: %v", err)
		}

		cur := cursor.At(cut.Right[0], 0)
		rep := RemoveEmptyAndMerge(tr, true, cut.Left, cut.Right, &cur)

		if got := tr.Dump(); got != `p["ad"]` {
			t.Errorf("Dump() = %s", got)
		}
		if rep.Merged() != 2 {
			t.Errorf("Merged() = %d, want 2", rep.Merged())
		}
		if !cur.Equals(cursor.At(ab, 1)) {
			t.Errorf("cursor = %v, want %v", cur, cursor.At(ab, 1))
		}
	})

	t.Run("keeps the last leaf without merging", func(t *testing.T) {
		tr := tree.NewBlank()
		leaf := tr.AppendText(tr.Root(), "abc", tree.Style{})
		cut, err := tr.OpCut(tr.Root(),
			path(tree.Step{Node: tr.Root()}, tree.Step{Node: leaf, Offset: 0}),
			path(tree.Step{Node: tr.Root()}, tree.Step{Node: leaf, Offset: 3}))
		if err != nil {
			t.Fatalf("cut: %v", err)
		}

		cur := cursor.At(cut.Left[0], 0)
		rep := RemoveEmptyAndMerge(tr, false, cut.Left, cut.Right, &cur)

		if got := tr.Dump(); got != `""` {
			t.Errorf("Dump() = %s", got)
		}
		if len(rep.Merges) != 0 {
			t.Errorf("merge attempted: %+v", rep.Merges)
		}
		if !cur.Valid(tr) {
			t.Errorf("cursor %v is not valid", cur)
		}
	})
}

func TestRemoveEmptyAndMergeCanonicalisesCursor(t *testing.T) {
	tr := tree.NewBlank()
	a := tr.AppendText(tr.Root(), "a", tree.Style{Bold: true})
	b := tr.AppendText(tr.Root(), "b", tree.Style{})

	cur := cursor.At(b, 0)
	RemoveEmptyAndMerge(tr, false, []tree.NodeID{a}, []tree.NodeID{b}, &cur)
	if !cur.Equals(cursor.At(a, 1)) {
		t.Errorf("cursor = %v, want end of previous run", cur)
	}
}

func TestJoinStopsAtRefusal(t *testing.T) {
	tr := tree.NewBlank()
	p := tr.AppendContainer(tr.Root(), "p", tree.Style{})
	tr.AppendText(p, "a", tree.Style{})
	q := tr.AppendContainer(tr.Root(), "quote", tree.Style{})
	tr.AppendText(q, "b", tree.Style{})

	res := Join(tr, p, q)
	if len(res) != 1 || res[0].Outcome != tree.MergeIncompatible {
		t.Errorf("Join() = %+v", res)
	}
	if got := tr.Dump(); got != `p["a"] quote["b"]` {
		t.Errorf("Dump() = %s", got)
	}
}

func TestChains(t *testing.T) {
	tr := tree.NewBlank()
	q := tr.AppendContainer(tr.Root(), "quote", tree.Style{})
	first := tr.AppendText(q, "a", tree.Style{})
	inner := tr.AppendContainer(q, "em", tree.Style{})
	last := tr.AppendText(inner, "b", tree.Style{})

	head := HeadChain(tr, q)
	if len(head) != 2 || head[0] != first || head[1] != q {
		t.Errorf("HeadChain = %v", head)
	}
	tail := TailChain(tr, q)
	if len(tail) != 3 || tail[0] != last || tail[1] != inner || tail[2] != q {
		t.Errorf("TailChain = %v", tail)
	}
	if leaf := HeadChain(tr, first); len(leaf) != 1 || leaf[0] != first {
		t.Errorf("HeadChain(leaf) = %v", leaf)
	}
}
