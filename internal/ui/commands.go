package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/atomicstack/mdpreview/internal/export"
	"github.com/atomicstack/mdpreview/internal/logging"
	"github.com/atomicstack/mdpreview/internal/logging/events"
	"github.com/atomicstack/mdpreview/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

// exportTimeout bounds a single export, including the Chromium round trip.
const exportTimeout = 60 * time.Second

type exportResultMsg struct {
	result export.Result
	err    error
}

// newDocument discards the current buffer and starts an untitled one.
func (m *Model) newDocument() {
	m.stopWatching()
	m.buffer.Reset()
	m.editor.Reset()
	m.errMsg = ""
	m.renderInput()
	m.focusEditor()
	m.setInfo("New document")
	events.Action.Success("new document")
}

// startOpenPrompt switches the status line into the path prompt.
func (m *Model) startOpenPrompt() {
	m.mode = ModeOpenPrompt
	m.errMsg = ""
	m.forceClearInfo()
	m.editor.Blur()
	m.prompt.SetValue(m.buffer.Path())
	m.prompt.CursorEnd()
	m.enqueue(m.prompt.Focus())
}

// print exports the last rendered document next to its source, or into the
// configured export directory.
func (m *Model) print() {
	if m.exporting {
		events.Command.Skip("print", "export already running")
		return
	}
	doc := m.pipeline.Last()
	source := m.buffer.Path()
	dir := m.exportDir
	if dir == "" && source != "" {
		dir = filepath.Dir(source)
	}
	if dir == "" {
		dir = "."
	}
	exporter := export.New(dir, m.finder)
	m.exporting = true
	m.setInfo("Exporting...")
	m.enqueue(m.bus.Execute(command.Request{
		ID:    "print",
		Label: "export " + m.buffer.Name(),
		Handler: func(parent context.Context) tea.Msg {
			ctx, cancel := context.WithTimeout(parent, exportTimeout)
			defer cancel()
			res, err := exporter.Export(ctx, doc, source)
			return exportResultMsg{result: res, err: err}
		},
	}))
}

func (m *Model) handleExportResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(exportResultMsg)
	if !ok {
		return nil
	}
	m.exporting = false
	if result.err != nil {
		logging.Error(result.err)
		events.Action.Error(result.err)
		m.forceClearInfo()
		m.errMsg = result.err.Error()
		if result.result.HTML != "" {
			m.errMsg = fmt.Sprintf("%s (wrote %s)", m.errMsg, result.result.HTML)
		}
		return nil
	}
	paths := result.result.Paths()
	events.File.Export(paths)
	m.errMsg = ""
	m.setInfo("Exported " + strings.Join(paths, ", "))
	return nil
}

// save writes the editor to the open file.
func (m *Model) save() {
	if err := m.buffer.Save(m.editor.Value()); err != nil {
		logging.Error(err)
		events.Action.Error(err)
		m.forceClearInfo()
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	m.setInfo("Saved " + m.buffer.Path())
	events.Action.Success("saved " + m.buffer.Path())
}
