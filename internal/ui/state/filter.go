package state

import (
	"strings"
	"unicode"

	"github.com/atomicstack/mdpreview/internal/menu"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// SetFilter updates the filter query and caret, re-filters the entries and
// moves the highlight to the best match. Clearing the query restores the
// highlight from before filtering started.
func (d *Dropdown) SetFilter(query string, cursor int) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(d.Filter)
	d.Filter = query
	runes := []rune(query)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	d.FilterCursor = cursor
	if trimmed != "" && prevTrimmed == "" {
		d.LastCursor = d.Cursor
	}
	d.applyFilter()
	if trimmed != "" {
		if idx := BestMatchIndex(d.Items, trimmed); idx >= 0 {
			d.Cursor = idx
		}
		return
	}
	if prevTrimmed != "" {
		if d.LastCursor >= 0 && d.LastCursor < len(d.Items) {
			d.Cursor = d.LastCursor
		}
		d.LastCursor = -1
	}
}

// ClearFilter drops the query entirely.
func (d *Dropdown) ClearFilter() bool {
	if d.Filter == "" {
		return false
	}
	d.SetFilter("", 0)
	return true
}

func (d *Dropdown) applyFilter() {
	d.Items = FilterItems(d.Full, d.Filter)
	if len(d.Items) == 0 {
		d.Cursor = 0
		return
	}
	if d.Cursor < 0 {
		d.Cursor = 0
	}
	if d.Cursor >= len(d.Items) {
		d.Cursor = len(d.Items) - 1
	}
}

// FilterCursorPos returns the rune offset of the filter caret.
func (d *Dropdown) FilterCursorPos() int {
	runes := []rune(d.Filter)
	if d.FilterCursor < 0 {
		return 0
	}
	if d.FilterCursor > len(runes) {
		return len(runes)
	}
	return d.FilterCursor
}

// InsertFilterText inserts text at the caret.
func (d *Dropdown) InsertFilterText(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(d.Filter)
	pos := d.FilterCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	d.SetFilter(string(updated), pos+len(insert))
	return true
}

// DeleteFilterRuneBackward deletes the rune before the caret.
func (d *Dropdown) DeleteFilterRuneBackward() bool {
	runes := []rune(d.Filter)
	pos := d.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	d.SetFilter(string(updated), pos-1)
	return true
}

// DeleteFilterWordBackward deletes the word preceding the caret.
func (d *Dropdown) DeleteFilterWordBackward() bool {
	runes := []rune(d.Filter)
	pos := d.FilterCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	updated := append(runes[:i], runes[pos:]...)
	d.SetFilter(string(updated), i)
	return true
}

// FilterItems returns the entries matching query, fuzzy first and falling
// back to substring matches on label or id.
func FilterItems(items []menu.Item, query string) []menu.Item {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return cloneItems(items)
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, menu.Labels(items))
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]menu.Item, 0, len(matches))
		for idx, item := range items {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, item)
			}
		}
		return filtered
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]menu.Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Label), lower) || strings.Contains(strings.ToLower(item.ID), lower) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// BestMatchIndex picks the row to highlight for query: exact, then prefix,
// then the closest fuzzy match.
func BestMatchIndex(items []menu.Item, query string) int {
	if len(items) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	lower := strings.ToLower(trimmed)
	for i, item := range items {
		if strings.EqualFold(item.Label, trimmed) || strings.EqualFold(item.ID, trimmed) {
			return i
		}
	}
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Label), lower) || strings.HasPrefix(item.ID, lower) {
			return i
		}
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, menu.Labels(items))
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance || (rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	if best.OriginalIndex < 0 || best.OriginalIndex >= len(items) {
		return 0
	}
	return best.OriginalIndex
}
