// Package table lines up short label/hint rows such as menu entries.
package table

import (
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/padding"
)

// Alignment controls padding side within a column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Gap separates adjacent columns.
const Gap = "  "

// Widths returns the printable width of the widest cell per column. The
// first row decides how many columns there are; extra cells are ignored.
func Widths(rows [][]string) []int {
	if len(rows) == 0 {
		return nil
	}
	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for c := 0; c < len(widths) && c < len(row); c++ {
			widths[c] = max(widths[c], ansi.PrintableRuneWidth(row[c]))
		}
	}
	return widths
}

// Format returns the rows padded according to the widest entry in each column.
func Format(rows [][]string, alignments []Alignment) []string {
	widths := Widths(rows)
	if widths == nil {
		return nil
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		cells := make([]string, 0, len(widths))
		for c := 0; c < len(widths) && c < len(row); c++ {
			align := AlignLeft
			if c < len(alignments) {
				align = alignments[c]
			}
			cells = append(cells, pad(row[c], widths[c], align))
		}
		out[i] = strings.Join(cells, Gap)
	}
	return out
}

func pad(cell string, width int, align Alignment) string {
	if align == AlignRight {
		if fill := width - ansi.PrintableRuneWidth(cell); fill > 0 {
			return strings.Repeat(" ", fill) + cell
		}
		return cell
	}
	return padding.String(cell, uint(width))
}
