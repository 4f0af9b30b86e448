package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/mdpreview/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	activatorLabel = "≡ File"
	defaultWidth   = 80
	defaultHeight  = 24
	minPaneHeight  = 3
	dropdownMin    = 24
	footerText     = "f10 menu · tab focus · ctrl+s save · ctrl+c quit"
)

func renderStyled(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

// size returns the window size: the fixed or initial size, then whatever
// WindowSizeMsg reports. 80x24 is used when nothing is known yet.
func (m *Model) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = defaultWidth
	}
	if h <= 0 {
		h = defaultHeight
	}
	return w, h
}

func (m *Model) activatorView() string {
	style := styles.Button
	switch {
	case m.menu != nil && m.menu.IsOpen():
		style = styles.ButtonActive
	case m.focus == focusActivator:
		style = styles.ButtonFocused
	}
	return renderStyled(style, activatorLabel)
}

func (m *Model) activatorWidth() int {
	return lipgloss.Width(m.activatorView())
}

func (m *Model) dropdownRows() []string {
	if m.dropdown == nil {
		return nil
	}
	return menu.Rows(m.dropdown.Items)
}

func (m *Model) dropdownWidth() int {
	width := dropdownMin
	for _, row := range m.dropdownRows() {
		if w := lipgloss.Width(row) + 2; w > width {
			width = w
		}
	}
	return width
}

// dropdownHeight counts the rows between the header and the panes.
func (m *Model) dropdownHeight() int {
	if m.menu == nil || !m.menu.IsOpen() || m.dropdown == nil {
		return 0
	}
	rows := len(m.dropdown.Items)
	if rows == 0 {
		rows = 1
	}
	return rows + 1
}

func (m *Model) editorWidth() int {
	w, _ := m.size()
	return w / 2
}

func (m *Model) paneHeight() int {
	_, h := m.size()
	used := 2 + m.dropdownHeight() // header + status
	if m.showFooter {
		used++
	}
	if remain := h - used; remain > minPaneHeight {
		return remain
	}
	return minPaneHeight
}

// layout sizes the editor and preview panes to the space left over by the
// header, the dropdown and the status lines.
func (m *Model) layout() {
	w, _ := m.size()
	editorW := m.editorWidth()
	previewW := w - editorW
	height := m.paneHeight() - 2
	if height < 1 {
		height = 1
	}
	m.editor.SetWidth(max(1, editorW-2))
	m.editor.SetHeight(height)
	m.prompt.Width = max(1, w-lipgloss.Width(m.prompt.Prompt)-1)

	inner := max(1, previewW-2)
	resized := m.preview.Width != inner
	m.preview.Width = inner
	m.preview.Height = height
	if resized && m.surface != nil {
		m.refreshPreview()
	}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.layout()
	return nil
}

// View renders the header, the open dropdown, both panes and the status area.
func (m *Model) View() string {
	width, _ := m.size()
	lines := []string{fitLine(m.headerLine(), width)}
	lines = append(lines, m.dropdownLines()...)
	lines = append(lines, m.bodyView())
	lines = append(lines, fitLine(m.statusLine(), width))
	if m.showFooter {
		lines = append(lines, fitLine(renderStyled(styles.Footer, footerText), width))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) headerLine() string {
	title := renderStyled(styles.HeaderTitle, m.buffer.Name())
	if m.buffer.Dirty(m.editor.Value()) {
		title += " " + renderStyled(styles.Dirty, "●")
	}
	return m.activatorView() + " " + title
}

func (m *Model) dropdownLines() []string {
	if m.dropdownHeight() == 0 {
		return nil
	}
	width := m.dropdownWidth()
	rows := m.dropdownRows()
	lines := make([]string, 0, len(rows)+1)
	if len(rows) == 0 {
		lines = append(lines, renderStyled(styles.Hint, padRight(" no matching entries", width)))
	}
	for i, row := range rows {
		style := styles.Item
		if i == m.dropdown.Cursor {
			style = styles.SelectedItem
		}
		lines = append(lines, renderStyled(style, padRight(" "+row, width)))
	}
	return append(lines, m.filterPrompt())
}

func (m *Model) bodyView() string {
	editorStyle, previewStyle := styles.Pane, styles.Pane
	if m.focus == focusEditor && m.mode == ModeEdit && !m.menu.IsOpen() {
		editorStyle = styles.PaneFocused
	}
	left := renderStyled(editorStyle, m.editor.View())
	right := renderStyled(previewStyle, m.preview.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m *Model) statusLine() string {
	if m.mode == ModeOpenPrompt {
		return m.prompt.View()
	}
	if m.errMsg != "" {
		return renderStyled(styles.Error, "✗ "+m.errMsg)
	}
	if info := m.currentInfo(); info != "" {
		return renderStyled(styles.Info, info)
	}
	if m.verbose {
		return renderStyled(styles.Status, fmt.Sprintf("rev %d · css %d · %s · theme %s",
			m.surface.Revision(), m.surface.StylesheetWrites(), m.hostKind, m.pipeline.Last().Theme))
	}
	return renderStyled(styles.Status, fmt.Sprintf("%d lines · %s", m.editor.LineCount(), m.hostKind))
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func padRight(text string, width int) string {
	if pad := width - lipgloss.Width(text); pad > 0 {
		return text + strings.Repeat(" ", pad)
	}
	return text
}

// fitLine truncates a possibly styled line to width cells.
func fitLine(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	if width == 1 {
		return truncate.String(text, 1)
	}
	return truncate.StringWithTail(text, uint(width-1), "…")
}
