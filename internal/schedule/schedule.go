// Package schedule describes the host facilities used to defer work until
// the UI thread has a good moment to run it. Callers request a slot now and
// the callback executes later, on the UI thread, against whatever state is
// current at fire time.
package schedule

import "time"

// Primitive defers fn to a later turn of the host event loop.
type Primitive interface {
	Request(fn func())
}

// Func adapts a plain function to the Primitive interface.
type Func func(fn func())

// Request implements Primitive.
func (f Func) Request(fn func()) {
	if f == nil || fn == nil {
		return
	}
	f(fn)
}

// Host bundles the cooperative primitives a host exposes. Frame must be set;
// Idle is optional and preferred when present.
type Host struct {
	Idle  Primitive
	Frame Primitive
}

// Select returns the idle primitive when the host provides one and falls
// back to the frame primitive otherwise.
func (h Host) Select() Primitive {
	if h.Idle != nil {
		return h.Idle
	}
	return h.Frame
}

// Kind names the primitive Select would pick, for tracing.
func (h Host) Kind() string {
	if h.Idle != nil {
		return "idle"
	}
	return "frame"
}

// Timer runs fn once after a fixed delay. The returned function cancels the
// pending call if it has not fired yet.
type Timer interface {
	After(d time.Duration, fn func()) (cancel func())
}
