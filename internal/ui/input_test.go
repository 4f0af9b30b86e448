package ui

import (
	"strings"
	"testing"

	"github.com/atomicstack/mdpreview/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestToggleKeyOpensAndClosesMenu(t *testing.T) {
	env := newTestEnv(t, Options{})
	m := env.model()
	env.key(tea.KeyF10)
	if !m.menu.IsOpen() || m.dropdown == nil {
		t.Fatalf("expected menu open")
	}
	if m.focus != focusEditor {
		t.Fatalf("expected focus unchanged on open")
	}
	view := env.h.View()
	for _, label := range []string{menu.LabelNew, menu.LabelOpen, menu.LabelPrint} {
		if !strings.Contains(view, label) {
			t.Fatalf("expected %q in view, got:\n%s", label, view)
		}
	}
	env.key(tea.KeyF10)
	if m.menu.IsOpen() || m.dropdown != nil {
		t.Fatalf("expected menu closed")
	}
	if m.focus != focusActivator {
		t.Fatalf("expected activator focused after closing toggle")
	}
}

func TestEscapeClosesThroughActivator(t *testing.T) {
	env := newTestEnv(t, Options{})
	m := env.model()
	env.key(tea.KeyF10)
	env.key(tea.KeyEsc)
	if m.menu.IsOpen() {
		t.Fatalf("expected esc to close the menu")
	}
	if m.focus != focusActivator {
		t.Fatalf("expected activator focus after esc")
	}
}

func TestClickActivatorAndSelectRow(t *testing.T) {
	env := newTestEnv(t, Options{})
	m := env.model()
	env.typeText("draft")
	env.h.Send(click(1, 0))
	if !m.menu.IsOpen() {
		t.Fatalf("expected click on the header button to open the menu")
	}
	env.h.Send(click(2, 1))
	if m.menu.IsOpen() {
		t.Fatalf("expected row click to close the menu")
	}
	if m.focus != focusEditor {
		t.Fatalf("expected focus untouched by select")
	}
	if env.timers.Len() != 1 {
		t.Fatalf("expected one delayed dispatch, got %d", env.timers.Len())
	}
	if m.editor.Value() != "draft" {
		t.Fatalf("expected New still pending")
	}
	env.fire()
	if m.editor.Value() != "" {
		t.Fatalf("expected New to clear the editor, got %q", m.editor.Value())
	}
}

func TestClickOutsideActivatorIgnored(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.h.Send(click(m0Width(env)+5, 0))
	if env.model().menu.IsOpen() {
		t.Fatalf("expected click past the button to be ignored")
	}
}

func m0Width(env *testEnv) int {
	return env.model().activatorWidth()
}

func TestEnterOnFocusedActivatorToggles(t *testing.T) {
	env := newTestEnv(t, Options{})
	m := env.model()
	env.key(tea.KeyTab)
	if m.focus != focusActivator {
		t.Fatalf("expected tab to focus the activator")
	}
	env.key(tea.KeyEnter)
	if !m.menu.IsOpen() {
		t.Fatalf("expected enter on the button to open the menu")
	}
	if m.editor.Value() != "" {
		t.Fatalf("expected editor untouched, got %q", m.editor.Value())
	}
	env.key(tea.KeyEnter)
	if m.menu.IsOpen() {
		t.Fatalf("expected enter in the dropdown to select")
	}
}

func TestDropdownNavigationWraps(t *testing.T) {
	env := newTestEnv(t, Options{})
	m := env.model()
	env.key(tea.KeyF10)
	env.key(tea.KeyUp)
	item, ok := m.dropdown.Current()
	if !ok || item.ID != menu.ItemPrint {
		t.Fatalf("expected wrap to last entry, got %#v", item)
	}
	env.key(tea.KeyDown)
	item, _ = m.dropdown.Current()
	if item.ID != menu.ItemNew {
		t.Fatalf("expected wrap to first entry, got %q", item.ID)
	}
}

func TestTypingFiltersDropdown(t *testing.T) {
	env := newTestEnv(t, Options{})
	m := env.model()
	env.key(tea.KeyF10)
	env.typeText("op")
	if m.editor.Value() != "" {
		t.Fatalf("expected filter input not to reach the editor")
	}
	if len(m.dropdown.Items) != 1 || m.dropdown.Items[0].ID != menu.ItemOpen {
		t.Fatalf("expected only Open, got %v", menu.Labels(m.dropdown.Items))
	}
	if !strings.Contains(env.h.View(), "op") {
		t.Fatalf("expected filter text in view")
	}
	env.key(tea.KeyBackspace)
	if m.dropdown.Filter != "o" {
		t.Fatalf("expected filter o, got %q", m.dropdown.Filter)
	}
	env.h.Send(tea.KeyMsg{Type: tea.KeyCtrlU})
	if m.dropdown.Filter != "" || len(m.dropdown.Items) != 3 {
		t.Fatalf("expected cleared filter, got %q with %d items", m.dropdown.Filter, len(m.dropdown.Items))
	}
}

func TestFilteredSelectionRunsPrint(t *testing.T) {
	env := newTestEnv(t, Options{})
	m := env.model()
	env.key(tea.KeyF10)
	env.typeText("pri")
	env.key(tea.KeyEnter)
	if m.menu.IsOpen() {
		t.Fatalf("expected menu closed after enter")
	}
	env.fire()
	if !strings.HasPrefix(m.currentInfo(), "Exported ") {
		t.Fatalf("expected export info, got %q (err %q)", m.currentInfo(), m.errMsg)
	}
}

func TestEmptyFilterShowsPlaceholderRow(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.key(tea.KeyF10)
	env.typeText("zzzz")
	if !strings.Contains(env.h.View(), "no matching entries") {
		t.Fatalf("expected empty-state row, got:\n%s", env.h.View())
	}
	env.key(tea.KeyEnter)
	if !env.model().menu.IsOpen() {
		t.Fatalf("expected enter with no rows to keep the menu open")
	}
}

func TestTabReturnsFocusToEditor(t *testing.T) {
	env := newTestEnv(t, Options{})
	m := env.model()
	env.key(tea.KeyTab)
	env.typeText("ignored")
	if m.editor.Value() != "" {
		t.Fatalf("expected keys ignored while the button has focus")
	}
	env.key(tea.KeyTab)
	env.typeText("typed")
	if m.editor.Value() != "typed" {
		t.Fatalf("expected editor input after refocus, got %q", m.editor.Value())
	}
}
