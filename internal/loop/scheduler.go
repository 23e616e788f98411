// Package loop provides the single-threaded scheduling primitives the menu
// core runs on: delayed timers, animation-frame callbacks and posted tasks.
//
// Every callback runs on the owning event-loop goroutine. Work that must
// happen elsewhere (clipboard reads, file IO) goes through Go, whose
// continuation is handed back to the loop before it runs.
package loop

import "time"

// Handle identifies a scheduled callback so it can be cancelled later.
type Handle interface {
	// Cancel prevents the callback from running. It reports whether the
	// callback was still pending.
	Cancel() bool
}

// Scheduler is implemented by Program (bubbletea-backed) and Manual (tests).
type Scheduler interface {
	After(d time.Duration, fn func()) Handle
	NextFrame(fn func()) Handle
	Post(fn func())
	Go(work func() func())
}

// Cancel is a nil-safe helper for optional handles.
func Cancel(h Handle) bool {
	if h == nil {
		return false
	}
	return h.Cancel()
}

type task struct {
	id   uint64
	fn   func()
	done bool
}

func (t *task) run() {
	if t == nil || t.done {
		return
	}
	t.done = true
	if t.fn != nil {
		t.fn()
	}
}

type handle struct {
	t      *task
	stop   func() bool
	forget func(uint64)
}

func (h *handle) Cancel() bool {
	if h == nil || h.t == nil || h.t.done {
		return false
	}
	h.t.done = true
	if h.stop != nil {
		h.stop()
	}
	if h.forget != nil {
		h.forget(h.t.id)
	}
	return true
}
