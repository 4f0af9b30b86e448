package menu

import (
	"github.com/atomicstack/mdpreview/internal/format/table"
)

// Item represents a selectable menu entry.
type Item struct {
	ID      string
	Label   string
	Hint    string
	Action  func()
	Visible func() bool
}

// Shown reports whether the item belongs in the open menu. A nil Visible
// means always shown.
func (i Item) Shown() bool {
	return i.Visible == nil || i.Visible()
}

// Invoke runs the item's action. Items without one do nothing.
func (i Item) Invoke() {
	if i.Action == nil {
		return
	}
	i.Action()
}

const (
	ItemNew      = "new"
	ItemOpen     = "open"
	ItemPrint    = "print"
	ItemPrintPDF = "print-pdf"
)

const (
	LabelNew      = "New"
	LabelOpen     = "Open..."
	LabelPrint    = "Print..."
	LabelPrintPDF = "Print / Export to PDF..."
)

const (
	HintNew   = "ctrl+n"
	HintOpen  = "ctrl+o"
	HintPrint = "ctrl+p"
)

// Commands are the callbacks behind the default entries. Any of them may be
// nil, in which case the entry is still listed but selecting it only closes
// the menu.
type Commands struct {
	New   func()
	Open  func()
	Print func()
}

// Detector reports whether a PDF-capable browser engine is available.
type Detector interface {
	Chromium() bool
}

// DetectorFunc adapts a function to the Detector interface.
type DetectorFunc func() bool

// Chromium implements Detector.
func (f DetectorFunc) Chromium() bool {
	if f == nil {
		return false
	}
	return f()
}

// DefaultItems returns the application menu for a given detection result.
// Both print entries drive the same command; only one of them is visible.
func DefaultItems(cmds Commands, chromium bool) []Item {
	return []Item{
		{ID: ItemNew, Label: LabelNew, Hint: HintNew, Action: cmds.New},
		{ID: ItemOpen, Label: LabelOpen, Hint: HintOpen, Action: cmds.Open},
		{
			ID:      ItemPrint,
			Label:   LabelPrint,
			Hint:    HintPrint,
			Action:  cmds.Print,
			Visible: func() bool { return !chromium },
		},
		{
			ID:      ItemPrintPDF,
			Label:   LabelPrintPDF,
			Hint:    HintPrint,
			Action:  cmds.Print,
			Visible: func() bool { return chromium },
		},
	}
}

// VisibleItems filters out entries whose Visible predicate is false.
func VisibleItems(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, item := range items {
		if item.Shown() {
			out = append(out, item)
		}
	}
	return out
}

// Labels returns the item labels in order.
func Labels(items []Item) []string {
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	return labels
}

// Rows formats items as label/hint lines with the hints aligned in a column.
func Rows(items []Item) []string {
	if len(items) == 0 {
		return nil
	}
	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = []string{item.Label, item.Hint}
	}
	return table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignRight})
}
