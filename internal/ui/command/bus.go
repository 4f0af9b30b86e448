package command

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/atomicstack/mdpreview/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request describes one job run off the UI thread. The handler's message is
// delivered back to Update.
type Request struct {
	ID      string
	Label   string
	Handler func(ctx context.Context) tea.Msg
}

// Bus runs jobs such as exports as Bubble Tea commands. Every job shares the
// bus context, so Close aborts whatever is still running.
type Bus struct {
	ctx     context.Context
	cancel  context.CancelFunc
	running atomic.Int32
}

// New initialises a command bus instance.
func New() *Bus {
	ctx, cancel := context.WithCancel(context.Background())
	return &Bus{ctx: ctx, cancel: cancel}
}

// Running reports the jobs started and not yet finished.
func (b *Bus) Running() int {
	return int(b.running.Load())
}

// Close cancels the context handed to running jobs.
func (b *Bus) Close() {
	b.cancel()
}

// Execute wraps a handler into a Bubble Tea command while emitting trace logs.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil || b.ctx.Err() != nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		b.running.Add(1)
		defer b.running.Add(-1)
		msg := req.Handler(b.ctx)
		if msg == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
