package ui

import (
	"strings"

	"github.com/atomicstack/mdpreview/internal/logging"
	"github.com/atomicstack/mdpreview/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		m.shutdown()
		return tea.Quit
	case "esc":
		m.closePrompt()
		return nil
	case "enter":
		path := strings.TrimSpace(m.prompt.Value())
		m.closePrompt()
		if path == "" {
			return nil
		}
		return m.openFile(path)
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return cmd
}

func (m *Model) closePrompt() {
	m.mode = ModeEdit
	m.prompt.Blur()
	m.prompt.SetValue("")
	m.focusEditor()
}

// openFile replaces the buffer with path and starts following it on disk.
// A missing file opens empty and is created by the first save.
func (m *Model) openFile(path string) tea.Cmd {
	content, err := m.buffer.Open(path)
	if err != nil {
		logging.Error(err)
		events.Action.Error(err)
		m.forceClearInfo()
		m.errMsg = err.Error()
		return nil
	}
	m.editor.SetValue(content)
	m.errMsg = ""
	m.renderInput()
	events.File.Open(m.buffer.Path(), len(content))
	m.setInfo("Opened " + m.buffer.Path())
	return m.startWatching(m.buffer.Path())
}
