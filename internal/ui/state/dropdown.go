package state

import (
	"github.com/atomicstack/mdpreview/internal/menu"
)

// Dropdown tracks keyboard state for the open menu: the highlighted row and
// the type-to-filter query. It is rebuilt every time the menu opens.
type Dropdown struct {
	Full         []menu.Item
	Items        []menu.Item
	Filter       string
	FilterCursor int
	Cursor       int
	LastCursor   int
}

// NewDropdown constructs dropdown state over the supplied entries with the
// first row highlighted.
func NewDropdown(items []menu.Item) *Dropdown {
	d := &Dropdown{LastCursor: -1}
	d.Full = cloneItems(items)
	d.applyFilter()
	return d
}

// Current returns the highlighted entry.
func (d *Dropdown) Current() (menu.Item, bool) {
	if d == nil || d.Cursor < 0 || d.Cursor >= len(d.Items) {
		return menu.Item{}, false
	}
	return d.Items[d.Cursor], true
}

// IndexOf returns the visible row for an item id, or -1.
func (d *Dropdown) IndexOf(id string) int {
	for i, item := range d.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// MoveUp highlights the previous row, wrapping to the bottom.
func (d *Dropdown) MoveUp() bool {
	return d.moveBy(-1)
}

// MoveDown highlights the next row, wrapping to the top.
func (d *Dropdown) MoveDown() bool {
	return d.moveBy(1)
}

// MoveHome highlights the first row.
func (d *Dropdown) MoveHome() bool {
	if len(d.Items) == 0 {
		d.Cursor = 0
		return false
	}
	old := d.Cursor
	d.Cursor = 0
	return old != d.Cursor
}

// MoveEnd highlights the last row.
func (d *Dropdown) MoveEnd() bool {
	n := len(d.Items)
	if n == 0 {
		d.Cursor = 0
		return false
	}
	old := d.Cursor
	d.Cursor = n - 1
	return old != d.Cursor
}

// SetCursor highlights row i when it exists.
func (d *Dropdown) SetCursor(i int) bool {
	if i < 0 || i >= len(d.Items) || i == d.Cursor {
		return false
	}
	d.Cursor = i
	return true
}

func (d *Dropdown) moveBy(delta int) bool {
	n := len(d.Items)
	if n == 0 {
		d.Cursor = 0
		return false
	}
	old := d.Cursor
	d.Cursor = ((d.Cursor+delta)%n + n) % n
	return d.Cursor != old
}

func cloneItems(items []menu.Item) []menu.Item {
	dup := make([]menu.Item, len(items))
	copy(dup, items)
	return dup
}
