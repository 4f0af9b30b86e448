package dispatcher

import (
	"errors"
	"testing"

	"github.com/atomicstack/mdpreview/internal/backend"
	"github.com/atomicstack/mdpreview/internal/state"
)

func newBuffer(path, content string) state.BufferStore {
	b := state.NewBufferStore()
	b.Load(path, content)
	return b
}

func TestHandleReloadsCleanBuffer(t *testing.T) {
	b := newBuffer("/notes.md", "old")
	d := New(b)
	res := d.Handle(backend.Event{Kind: backend.KindChanged, Path: "/notes.md", Content: "new"}, "old")
	if !res.Reload || res.Content != "new" {
		t.Fatalf("expected reload with new content, got %#v", res)
	}
	if b.Saved() != "new" {
		t.Fatalf("expected buffer updated, got %q", b.Saved())
	}
}

func TestHandleKeepsLocalEdits(t *testing.T) {
	b := newBuffer("/notes.md", "old")
	d := New(b)
	res := d.Handle(backend.Event{Kind: backend.KindChanged, Path: "/notes.md", Content: "new"}, "edited")
	if res.Reload || !res.Conflict {
		t.Fatalf("expected conflict without reload, got %#v", res)
	}
	if b.Saved() != "old" {
		t.Fatalf("expected buffer untouched, got %q", b.Saved())
	}
}

func TestHandleIgnoresOwnWrites(t *testing.T) {
	d := New(newBuffer("/notes.md", "same"))
	res := d.Handle(backend.Event{Kind: backend.KindChanged, Path: "/notes.md", Content: "same"}, "same")
	if res.Reload || res.Conflict {
		t.Fatalf("expected no-op for unchanged content, got %#v", res)
	}
}

func TestHandleIgnoresStaleWatcher(t *testing.T) {
	d := New(newBuffer("/b.md", ""))
	res := d.Handle(backend.Event{Kind: backend.KindChanged, Path: "/a.md", Content: "x"}, "")
	if res.Reload {
		t.Fatalf("expected events for other files ignored")
	}
}

func TestHandleRemovalAndErrors(t *testing.T) {
	d := New(newBuffer("/notes.md", "x"))
	if res := d.Handle(backend.Event{Kind: backend.KindRemoved, Path: "/notes.md"}, "x"); !res.Removed {
		t.Fatalf("expected removal reported")
	}
	boom := errors.New("boom")
	if res := d.Handle(backend.Event{Path: "/notes.md", Err: boom}, "x"); !errors.Is(res.Err, boom) {
		t.Fatalf("expected error passed through, got %v", res.Err)
	}
}

func TestHandleReloadsCRLFFileIntoEditorForm(t *testing.T) {
	b := newBuffer("/notes.md", "# T\r\n\tcode\r\n")
	d := New(b)
	editor := b.Saved()
	res := d.Handle(backend.Event{Kind: backend.KindChanged, Path: "/notes.md", Content: "# T2\r\n\tcode\r\n"}, editor)
	if !res.Reload || res.Conflict {
		t.Fatalf("expected clean reload, got %#v", res)
	}
	if res.Content != "# T2\n    code\n" {
		t.Fatalf("expected normalised content, got %q", res.Content)
	}
}
