package menu

import (
	"time"

	"github.com/atomicstack/editmenu/internal/dom"
	"github.com/atomicstack/editmenu/internal/logging"
	"github.com/atomicstack/editmenu/internal/loop"
)

// Debouncer collapses bursts of Trigger calls into one call of fn, delay
// after the last trigger. Each Debouncer owns its own timer.
type Debouncer struct {
	sched   loop.Scheduler
	delay   time.Duration
	fn      func()
	pending loop.Handle
}

// NewDebouncer returns a debouncer running fn on sched.
func NewDebouncer(sched loop.Scheduler, delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{sched: sched, delay: delay, fn: fn}
}

// Trigger restarts the delay.
func (d *Debouncer) Trigger() {
	loop.Cancel(d.pending)
	d.pending = d.sched.After(d.delay, func() {
		d.pending = nil
		d.fn()
	})
}

// Cancel drops a pending call.
func (d *Debouncer) Cancel() {
	loop.Cancel(d.pending)
	d.pending = nil
}

// Flush runs a pending call immediately. It reports whether one was pending.
func (d *Debouncer) Flush() bool {
	if !loop.Cancel(d.pending) {
		d.pending = nil
		return false
	}
	d.pending = nil
	d.fn()
	return true
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	return d.pending != nil
}

// IsValidElement reports whether el exists and is attached to its document.
func IsValidElement(el *dom.Element) bool {
	return el != nil && el.IsConnected()
}

// SafeElement looks up id, treating a missing document or element as absent.
func SafeElement(doc *dom.Document, id string) (*dom.Element, bool) {
	if doc == nil || id == "" {
		return nil, false
	}
	el := doc.GetElementByID(id)
	if !IsValidElement(el) {
		return nil, false
	}
	return el, true
}

// guard runs fn, logging instead of propagating a panic.
func guard(op string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			recovered(op, r)
		}
	}()
	fn()
}

var recovered = logging.Recovered
