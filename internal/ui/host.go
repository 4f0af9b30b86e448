package ui

import (
	"sync/atomic"
	"time"

	"github.com/atomicstack/mdpreview/internal/schedule"
	tea "github.com/charmbracelet/bubbletea"
)

// deferredMsg carries a callback requested through one of the host
// primitives back onto the Update goroutine.
type deferredMsg struct {
	kind string
	fn   func()
}

// timerMsg delivers a menu dispatch once its delay has elapsed.
type timerMsg struct {
	fn       func()
	canceled *bool
}

// activity records when the user last produced input. Idle commands read it
// from their own goroutine.
type activity struct {
	last atomic.Int64
}

func (a *activity) touch(now time.Time) {
	a.last.Store(now.UnixNano())
}

func (a *activity) quietFor(now time.Time) time.Duration {
	last := a.last.Load()
	if last == 0 {
		return time.Duration(1<<63 - 1)
	}
	return now.Sub(time.Unix(0, last))
}

// framePrimitive runs callbacks on the next frame tick.
type framePrimitive struct {
	interval time.Duration
	enqueue  func(tea.Cmd)
}

func (f framePrimitive) Request(fn func()) {
	f.enqueue(tea.Tick(f.interval, func(time.Time) tea.Msg {
		return deferredMsg{kind: "frame", fn: fn}
	}))
}

// idlePrimitive runs callbacks once input has been quiet for at least
// quiet. The wait is unbounded while the user keeps typing. One waiter
// serves every request made before it fires; callbacks run in request order.
type idlePrimitive struct {
	quiet    time.Duration
	activity *activity
	enqueue  func(tea.Cmd)

	pending []func()
	waiting bool
}

func (p *idlePrimitive) Request(fn func()) {
	p.pending = append(p.pending, fn)
	if p.waiting {
		return
	}
	p.waiting = true
	quiet := p.quiet
	act := p.activity
	p.enqueue(func() tea.Msg {
		for {
			idle := act.quietFor(time.Now())
			if idle >= quiet {
				return deferredMsg{kind: "idle", fn: p.flush}
			}
			time.Sleep(quiet - idle)
		}
	})
}

// flush runs on the Update goroutine, like Request.
func (p *idlePrimitive) flush() {
	fns := p.pending
	p.pending = nil
	p.waiting = false
	for _, fn := range fns {
		fn()
	}
}

// teaTimer implements schedule.Timer with tea.Tick. Cancellation happens on
// the Update goroutine, as does the check in handleTimerMsg.
type teaTimer struct {
	enqueue func(tea.Cmd)
}

func (t teaTimer) After(d time.Duration, fn func()) func() {
	canceled := new(bool)
	t.enqueue(tea.Tick(d, func(time.Time) tea.Msg {
		return timerMsg{fn: fn, canceled: canceled}
	}))
	return func() { *canceled = true }
}

func (m *Model) teaHost(useIdle bool, quiet, frame time.Duration) schedule.Host {
	host := schedule.Host{
		Frame: framePrimitive{interval: frame, enqueue: m.enqueue},
	}
	if useIdle {
		host.Idle = &idlePrimitive{quiet: quiet, activity: m.activity, enqueue: m.enqueue}
	}
	return host
}

// enqueue holds cmds produced outside a handler's return path until the
// current Update finishes.
func (m *Model) enqueue(cmd tea.Cmd) {
	if cmd != nil {
		m.queued = append(m.queued, cmd)
	}
}

func (m *Model) takeQueued() []tea.Cmd {
	cmds := m.queued
	m.queued = nil
	return cmds
}

func (m *Model) handleDeferredMsg(msg tea.Msg) tea.Cmd {
	deferred, ok := msg.(deferredMsg)
	if !ok || deferred.fn == nil {
		return nil
	}
	deferred.fn()
	return nil
}

func (m *Model) handleTimerMsg(msg tea.Msg) tea.Cmd {
	timer, ok := msg.(timerMsg)
	if !ok || timer.fn == nil {
		return nil
	}
	if timer.canceled != nil && *timer.canceled {
		return nil
	}
	timer.fn()
	return nil
}
