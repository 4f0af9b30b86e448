package ui

import tea "github.com/charmbracelet/bubbletea"

// maxHarnessMessages bounds the messages one Send may produce, so a command
// that keeps rescheduling itself fails a test instead of hanging it.
const maxHarnessMessages = 256

// Harness drives the UI model programmatically for integration tests.
type Harness struct {
	model *Model
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	h.run([]tea.Msg{msg})
}

// Drain runs commands queued outside Update, for instance by host
// callbacks flushed directly from a test.
func (h *Harness) Drain() {
	if h.model == nil {
		return
	}
	var msgs []tea.Msg
	for _, cmd := range h.model.takeQueued() {
		msgs = append(msgs, expand(cmd)...)
	}
	h.run(msgs)
}

func (h *Harness) run(msgs []tea.Msg) {
	for n := 0; len(msgs) > 0 && n < maxHarnessMessages; n++ {
		msg := msgs[0]
		msgs = msgs[1:]
		mdl, cmd := h.model.Update(msg)
		if updated, ok := mdl.(*Model); ok {
			h.model = updated
		}
		msgs = append(msgs, expand(cmd)...)
	}
}

// expand runs cmd and flattens any batch it returns.
func expand(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if msg == nil {
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, expand(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
