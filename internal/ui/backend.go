package ui

import (
	"github.com/atomicstack/mdpreview/internal/backend"
	"github.com/atomicstack/mdpreview/internal/logging"
	"github.com/atomicstack/mdpreview/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{watcher: w}
		}
		return backendEventMsg{watcher: w, event: evt}
	}
}

// backendEventMsg carries the watcher it came from so that events from a
// watcher replaced by a later open are dropped.
type backendEventMsg struct {
	watcher *backend.Watcher
	event   backend.Event
}

type backendDoneMsg struct {
	watcher *backend.Watcher
}

// startWatching replaces the current watcher with one following path. The
// returned command waits for the first event.
func (m *Model) startWatching(path string) tea.Cmd {
	m.stopWatching()
	if m.watch == nil || path == "" {
		return nil
	}
	w, err := m.watch(path)
	if err != nil {
		logging.Warn("file watcher unavailable", "path", path, "error", err)
		return nil
	}
	m.watcher = w
	return waitForBackendEvent(w)
}

func (m *Model) stopWatching() {
	if m.watcher == nil {
		return
	}
	m.watcher.Stop()
	m.watcher = nil
}

// shutdown releases everything that outlives Update: pending menu
// dispatches, running exports and the file watcher.
func (m *Model) shutdown() {
	m.menu.Stop()
	m.bus.Close()
	m.stopWatching()
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok || eventMsg.watcher == nil || eventMsg.watcher != m.watcher {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	return waitForBackendEvent(eventMsg.watcher)
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	done, ok := msg.(backendDoneMsg)
	if ok && done.watcher == m.watcher {
		m.watcher = nil
	}
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) {
	res := m.dispatcher.Handle(evt, m.editor.Value())
	switch {
	case res.Err != nil:
		logging.Error(res.Err)
		m.errMsg = res.Err.Error()
	case res.Removed:
		m.setInfo(m.buffer.Name() + " was removed on disk")
	case res.Conflict:
		events.File.Reload(evt.Path, false)
		m.errMsg = m.buffer.Name() + " changed on disk; keeping unsaved edits"
	case res.Reload:
		events.File.Reload(evt.Path, true)
		m.editor.SetValue(res.Content)
		m.errMsg = ""
		m.renderInput()
		m.setInfo("Reloaded " + m.buffer.Name())
	}
}
