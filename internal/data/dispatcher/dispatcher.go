package dispatcher

import (
	"github.com/atomicstack/mdpreview/internal/backend"
	"github.com/atomicstack/mdpreview/internal/state"
)

// Result tells the UI what a watcher event means for the editor.
type Result struct {
	Reload   bool
	Content  string
	Removed  bool
	Conflict bool
	Err      error
}

// Dispatcher applies file watcher events to the buffer store.
type Dispatcher struct {
	buffer state.BufferStore
}

func New(b state.BufferStore) *Dispatcher {
	return &Dispatcher{buffer: b}
}

// Handle folds evt into the buffer. current is the editor's content; local
// edits are never overwritten, the change is reported as a conflict instead.
func (d *Dispatcher) Handle(evt backend.Event, current string) Result {
	var res Result
	if evt.Path != d.buffer.Path() {
		return res
	}
	if evt.Err != nil {
		res.Err = evt.Err
		return res
	}
	switch evt.Kind {
	case backend.KindRemoved:
		res.Removed = true
	case backend.KindChanged:
		if state.Normalize(evt.Content) == d.buffer.Saved() {
			return res
		}
		if d.buffer.Dirty(current) {
			res.Conflict = true
			return res
		}
		d.buffer.Load(evt.Path, evt.Content)
		res.Reload = true
		res.Content = d.buffer.Saved()
	}
	return res
}
