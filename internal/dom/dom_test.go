package dom

import (
	"errors"
	"testing"
)

func TestPatchBuildsTreeFromEmptyContainer(t *testing.T) {
	root := NewContainer()
	p := NewPatcher()
	if err := p.Patch(root, "<h1>Title</h1><p>body</p>"); err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	if got := InnerHTML(root); got != "<h1>Title</h1><p>body</p>" {
		t.Fatalf("unexpected tree %q", got)
	}
	if p.Last().Created != 2 {
		t.Fatalf("expected 2 created nodes, got %+v", p.Last())
	}
}

func TestPatchIdenticalMarkupIsNoOp(t *testing.T) {
	root := NewContainer()
	p := NewPatcher()
	markup := `<p class="a">one <em>two</em></p><ul><li>x</li></ul>`
	if err := p.Patch(root, markup); err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	if err := p.Patch(root, markup); err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	if n := p.Last().Mutations(); n != 0 {
		t.Fatalf("expected zero mutations on identical markup, got %+v", p.Last())
	}
	if p.Patches() != 2 {
		t.Fatalf("expected 2 patches, got %d", p.Patches())
	}
}

func TestPatchKeepsMatchingNodes(t *testing.T) {
	root := NewContainer()
	p := NewPatcher()
	if err := p.Patch(root, "<h1>Title</h1><p>old</p>"); err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	heading := root.FirstChild
	para := heading.NextSibling
	if err := p.Patch(root, "<h1>Title</h1><p>new</p>"); err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	if root.FirstChild != heading || heading.NextSibling != para {
		t.Fatalf("expected live nodes to be reused")
	}
	if para.FirstChild.Data != "new" {
		t.Fatalf("expected text update, got %q", para.FirstChild.Data)
	}
	last := p.Last()
	if last.TextUpdates != 1 || last.Mutations() != 1 {
		t.Fatalf("expected exactly one text update, got %+v", last)
	}
}

func TestPatchReplacesRemovesAndUpdatesAttributes(t *testing.T) {
	root := NewContainer()
	p := NewPatcher()
	if err := p.Patch(root, `<p class="a">x</p><p>y</p><p>z</p>`); err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	if err := p.Patch(root, `<p class="b">x</p><h2>y</h2>`); err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	if got := InnerHTML(root); got != `<p class="b">x</p><h2>y</h2>` {
		t.Fatalf("unexpected tree %q", got)
	}
	last := p.Last()
	if last.AttrUpdates != 1 || last.Replaced != 1 || last.Removed != 1 {
		t.Fatalf("unexpected stats %+v", last)
	}
	if p.Total().Created != 3 {
		t.Fatalf("expected total created 3, got %+v", p.Total())
	}
}

func TestPatchEmptyMarkupClearsContainer(t *testing.T) {
	root := NewContainer()
	p := NewPatcher()
	_ = p.Patch(root, "<p>a</p><p>b</p>")
	if err := p.Patch(root, ""); err != nil {
		t.Fatalf("patch failed: %v", err)
	}
	if root.FirstChild != nil {
		t.Fatalf("expected empty container, got %q", InnerHTML(root))
	}
}

func TestPatchNilContainer(t *testing.T) {
	err := NewPatcher().Patch(nil, "<p>x</p>")
	if !errors.Is(err, ErrNilContainer) {
		t.Fatalf("expected ErrNilContainer, got %v", err)
	}
}
