package testutil

import (
	"sort"
	"time"
)

// Queue is a manual schedule.Primitive. Requests accumulate until the test
// drains them, which stands in for the host's idle or frame turn.
type Queue struct {
	pending  []func()
	Requests int
}

// Request implements schedule.Primitive.
func (q *Queue) Request(fn func()) {
	q.Requests++
	q.pending = append(q.pending, fn)
}

// Len reports the number of callbacks waiting to run.
func (q *Queue) Len() int {
	return len(q.pending)
}

// RunPending runs the callbacks queued so far. Callbacks queued while
// running wait for the next call.
func (q *Queue) RunPending() int {
	batch := q.pending
	q.pending = nil
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// RunNext runs the oldest pending callback only.
func (q *Queue) RunNext() bool {
	if len(q.pending) == 0 {
		return false
	}
	fn := q.pending[0]
	q.pending = q.pending[1:]
	fn()
	return true
}

// Flush runs callbacks until nothing is left.
func (q *Queue) Flush() int {
	total := 0
	for len(q.pending) > 0 {
		total += q.RunPending()
	}
	return total
}

type fakeTimer struct {
	due      time.Duration
	seq      int
	fn       func()
	canceled bool
}

// Timers is a virtual-clock schedule.Timer. Nothing fires until the test
// advances the clock or runs pending timers.
type Timers struct {
	now     time.Duration
	seq     int
	pending []*fakeTimer
}

// After implements schedule.Timer.
func (f *Timers) After(d time.Duration, fn func()) func() {
	f.seq++
	t := &fakeTimer{due: f.now + d, seq: f.seq, fn: fn}
	f.pending = append(f.pending, t)
	return func() { t.canceled = true }
}

// Len reports timers that are scheduled and not cancelled.
func (f *Timers) Len() int {
	n := 0
	for _, t := range f.pending {
		if !t.canceled {
			n++
		}
	}
	return n
}

// Advance moves the virtual clock forward and fires every timer now due.
func (f *Timers) Advance(d time.Duration) int {
	f.now += d
	return f.fire(func(t *fakeTimer) bool { return t.due <= f.now })
}

// RunPending fires every timer scheduled so far regardless of its delay.
func (f *Timers) RunPending() int {
	var latest time.Duration
	for _, t := range f.pending {
		if t.due > latest {
			latest = t.due
		}
	}
	if latest > f.now {
		f.now = latest
	}
	return f.fire(func(*fakeTimer) bool { return true })
}

func (f *Timers) fire(ready func(*fakeTimer) bool) int {
	var due, keep []*fakeTimer
	for _, t := range f.pending {
		if ready(t) {
			due = append(due, t)
		} else {
			keep = append(keep, t)
		}
	}
	f.pending = keep
	sort.SliceStable(due, func(i, j int) bool {
		if due[i].due == due[j].due {
			return due[i].seq < due[j].seq
		}
		return due[i].due < due[j].due
	})
	fired := 0
	for _, t := range due {
		if t.canceled {
			continue
		}
		t.fn()
		fired++
	}
	return fired
}
