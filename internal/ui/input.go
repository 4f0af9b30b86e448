package ui

import (
	"time"
	"unicode"

	"github.com/atomicstack/mdpreview/internal/logging/events"
	"github.com/atomicstack/mdpreview/internal/menu"
	uistate "github.com/atomicstack/mdpreview/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	m.activity.touch(time.Now())

	if m.mode == ModeOpenPrompt {
		return m.handlePromptKey(keyMsg)
	}

	switch keyMsg.String() {
	case "ctrl+c":
		m.shutdown()
		return tea.Quit
	case "f10", "alt+m":
		m.clickActivator()
		return nil
	case menu.HintNew, menu.HintOpen, menu.HintPrint:
		m.shortcut(keyMsg.String())
		return nil
	case "ctrl+s":
		m.save()
		return nil
	}

	if m.menu.IsOpen() {
		return m.handleMenuKey(keyMsg)
	}

	if keyMsg.String() == "tab" {
		if m.focus == focusEditor {
			m.focusActivator()
		} else {
			m.focusEditor()
		}
		return nil
	}

	if m.focus == focusActivator {
		switch keyMsg.String() {
		case "enter", " ", "space":
			m.clickActivator()
		case "esc":
			m.focusEditor()
		}
		return nil
	}

	return m.updateEditor(keyMsg)
}

// updateEditor feeds a key to the textarea and re-renders when the text
// actually changed. Cursor movement alone does not trigger a render.
func (m *Model) updateEditor(msg tea.KeyMsg) tea.Cmd {
	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if m.editor.Value() != before {
		m.forceClearInfo()
		m.renderInput()
	}
	return cmd
}

// clickActivator is the header button's click handler, shared by the mouse,
// the focused button and the global toggle keys.
func (m *Model) clickActivator() {
	if m.menu.Toggle() {
		m.dropdown = uistate.NewDropdown(m.menu.Items())
		m.enqueue(m.filterCursor.Focus())
	} else {
		m.dropdown = nil
		m.filterCursor.Blur()
	}
	m.layout()
}

func (m *Model) selectItem(id string) {
	if !m.menu.Select(id) {
		return
	}
	m.dropdown = nil
	m.filterCursor.Blur()
	m.layout()
}

func (m *Model) shortcut(hint string) {
	m.menu.Shortcut(hint)
	if !m.menu.IsOpen() {
		m.dropdown = nil
		m.filterCursor.Blur()
	}
	m.layout()
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	d := m.dropdown
	if d == nil {
		d = uistate.NewDropdown(m.menu.Items())
		m.dropdown = d
	}
	switch msg.String() {
	case "esc":
		m.clickActivator()
		return nil
	case "up", "ctrl+k":
		if d.MoveUp() {
			events.Menu.Cursor(d.Cursor)
		}
		return nil
	case "down", "ctrl+j":
		if d.MoveDown() {
			events.Menu.Cursor(d.Cursor)
		}
		return nil
	case "home":
		if d.MoveHome() {
			events.Menu.Cursor(d.Cursor)
		}
		return nil
	case "end":
		if d.MoveEnd() {
			events.Menu.Cursor(d.Cursor)
		}
		return nil
	case "enter":
		if item, ok := d.Current(); ok {
			m.selectItem(item.ID)
		}
		return nil
	case "ctrl+u":
		if d.ClearFilter() {
			events.Filter.Cleared()
			m.layout()
		}
		return nil
	case "ctrl+w":
		if d.DeleteFilterWordBackward() {
			events.Filter.Backspace(d.Filter)
			m.layout()
		}
		return nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if d.DeleteFilterRuneBackward() {
			events.Filter.Backspace(d.Filter)
			m.layout()
		}
	case tea.KeySpace:
		m.appendToFilter(" ")
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return nil
			}
		}
		m.appendToFilter(string(msg.Runes))
	}
	return nil
}

func (m *Model) appendToFilter(text string) bool {
	d := m.dropdown
	if d == nil || text == "" {
		return false
	}
	if !d.InsertFilterText(text) {
		return false
	}
	events.Filter.Append(d.Filter)
	m.layout()
	return true
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	if mouse.Action == tea.MouseActionPress && mouse.Button == tea.MouseButtonLeft {
		if mouse.Y == 0 && mouse.X < m.activatorWidth() {
			m.clickActivator()
			return nil
		}
		if m.menu.IsOpen() && m.dropdown != nil {
			row := mouse.Y - 1
			if row >= 0 && row < len(m.dropdown.Items) && mouse.X < m.dropdownWidth() {
				m.dropdown.SetCursor(row)
				m.selectItem(m.dropdown.Items[row].ID)
			}
			return nil
		}
	}
	if mouse.X >= m.editorWidth() {
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) filterPrompt() string {
	d := m.dropdown
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	if d == nil || d.Filter == "" {
		placeholder := []rune("(type to filter)")
		caret := m.renderFilterCursor(string(placeholder[0]))
		return prompt + caret + render(styles.FilterPlaceholder, string(placeholder[1:]))
	}
	runes := []rune(d.Filter)
	pos := d.FilterCursorPos()
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)
	base := m.filterCursor.TextStyle.Inline(true)
	if m.filterCursor.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		return base.Inherit(styles.Cursor.Inline(true)).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}
