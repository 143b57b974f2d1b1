package clipboard

import (
	"sync"
	"testing"

	"github.com/dshills/folio/internal/engine/tree"
)

func TestSetGetCopies(t *testing.T) {
	c := New()
	if !c.Empty() || c.Get() != nil {
		t.Fatal("new clipboard should be empty")
	}

	src := tree.TextFragment("hello", tree.Style{Bold: true})
	c.Set(src)

	// Mutating the source must not reach the clipboard.
	_ = src.Tree().Remove(src.Nodes()[0])
	if c.Text() != "hello" || c.Len() != 5 {
		t.Errorf("clipboard = %q (%d)", c.Text(), c.Len())
	}

	got := c.Get()
	_ = got.Tree().Remove(got.Nodes()[0])
	if c.Text() != "hello" {
		t.Error("Get returned an alias")
	}
	if again := c.Get(); again.String() != `"hello"{b}` {
		t.Errorf("Get().String() = %s", again.String())
	}
}

func TestSetEmptyClears(t *testing.T) {
	c := New()
	c.SetText("x")
	c.Set(tree.NewFragment())
	if !c.Empty() {
		t.Error("empty fragment should clear")
	}
	c.SetText("y")
	c.Clear()
	if !c.Empty() || c.Text() != "" {
		t.Error("Clear left content")
	}
}

func TestUpdate(t *testing.T) {
	c := New()
	if c.Update(func(f *tree.Fragment) *tree.Fragment { return f }) {
		t.Error("Update on empty clipboard reported a change")
	}

	c.SetText("link")
	ok := c.Update(func(f *tree.Fragment) *tree.Fragment {
		for _, id := range f.Nodes() {
			_ = f.Tree().SetStyle(id, tree.Style{}.WithLink("http://x", ""))
		}
		return f
	})
	if !ok {
		t.Fatal("Update returned false")
	}
	f := c.Get()
	if !f.Tree().Style(f.Nodes()[0]).IsLink() {
		t.Error("transform not stored")
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := New()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				c.SetText("abc")
				if f := c.Get(); f != nil && f.Len() != 3 {
					t.Errorf("torn read: %d", f.Len())
				}
			}
		}()
	}
	wg.Wait()
}
