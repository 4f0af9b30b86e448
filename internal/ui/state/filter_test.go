package state

import (
	"testing"

	"github.com/atomicstack/mdpreview/internal/menu"
)

func TestSetFilterNarrowsAndRestoresCursor(t *testing.T) {
	d := newTestDropdown()
	d.SetCursor(1)
	d.SetFilter("pri", 3)
	if len(d.Items) != 1 || d.Items[0].ID != menu.ItemPrint {
		t.Fatalf("expected only print entry, got %v", menu.Labels(d.Items))
	}
	if d.Cursor != 0 {
		t.Fatalf("expected filtered cursor 0, got %d", d.Cursor)
	}
	if d.LastCursor != 1 {
		t.Fatalf("expected last cursor 1, got %d", d.LastCursor)
	}
	if !d.ClearFilter() {
		t.Fatalf("expected filter cleared")
	}
	if len(d.Items) != 3 {
		t.Fatalf("expected all entries back, got %d", len(d.Items))
	}
	if d.Cursor != 1 {
		t.Fatalf("expected cursor restored to 1, got %d", d.Cursor)
	}
	if d.LastCursor != -1 {
		t.Fatalf("expected last cursor reset, got %d", d.LastCursor)
	}
}

func TestInsertAndDeleteFilterText(t *testing.T) {
	d := newTestDropdown()
	if !d.InsertFilterText("op") {
		t.Fatal("expected insert to succeed")
	}
	if d.Filter != "op" || d.FilterCursor != 2 {
		t.Fatalf("unexpected filter state %q/%d", d.Filter, d.FilterCursor)
	}
	item, _ := d.Current()
	if item.ID != menu.ItemOpen {
		t.Fatalf("expected open highlighted, got %q", item.ID)
	}
	if !d.DeleteFilterRuneBackward() {
		t.Fatal("expected rune deletion")
	}
	if d.Filter != "o" {
		t.Fatalf("expected filter %q, got %q", "o", d.Filter)
	}
	d.SetFilter("print pdf", len("print pdf"))
	if !d.DeleteFilterWordBackward() {
		t.Fatal("expected word deletion")
	}
	if d.Filter != "print " {
		t.Fatalf("expected trailing word removed, got %q", d.Filter)
	}
	d.SetFilter("abc", 0)
	if d.DeleteFilterRuneBackward() {
		t.Fatal("expected delete at start to fail")
	}
	if d.InsertFilterText("") {
		t.Fatal("expected empty insert to fail")
	}
}

func TestFilterItemsFallsBackToSubstring(t *testing.T) {
	items := []menu.Item{{ID: "1", Label: "Alpha"}, {ID: "2", Label: "Beta"}}
	filtered := FilterItems(items, "alp")
	if len(filtered) != 1 || filtered[0].Label != "Alpha" {
		t.Fatalf("unexpected filtered results %v", menu.Labels(filtered))
	}
	if len(FilterItems(items, "nomatch")) != 0 {
		t.Fatal("expected empty results when nothing matches")
	}
	filtered[0].Label = "changed"
	if items[0].Label != "Alpha" {
		t.Fatal("expected original slice to remain unchanged")
	}
}

func TestBestMatchIndex(t *testing.T) {
	items := []menu.Item{
		{ID: "one", Label: "First"},
		{ID: "two", Label: "Second"},
		{ID: "three", Label: "Third"},
	}
	if idx := BestMatchIndex(items, "Second"); idx != 1 {
		t.Fatalf("expected exact label match index 1, got %d", idx)
	}
	if idx := BestMatchIndex(items, "two"); idx != 1 {
		t.Fatalf("expected ID match index 1, got %d", idx)
	}
	if idx := BestMatchIndex(items, "th"); idx != 2 {
		t.Fatalf("expected prefix match index 2, got %d", idx)
	}
	if idx := BestMatchIndex(items, "zzz"); idx != 0 {
		t.Fatalf("expected fallback index 0, got %d", idx)
	}
	if idx := BestMatchIndex(nil, "anything"); idx != -1 {
		t.Fatalf("expected -1 for empty slice, got %d", idx)
	}
}
