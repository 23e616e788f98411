package menu

import "github.com/atomicstack/editmenu/internal/dom"

// TrackedListener is one registration recorded for teardown.
type TrackedListener struct {
	Target  dom.EventTarget
	Event   string
	Handler dom.Listener
	Options dom.Options

	id dom.ListenerID
}

// Listeners is the registry every menu registration goes through. It is the
// only source of truth for teardown: RemoveAll removes exactly what was added
// here and nothing else.
type Listeners struct {
	entries []*TrackedListener
}

// Add registers handler on target and tracks it. Once-listeners untrack
// themselves when they fire.
func (l *Listeners) Add(target dom.EventTarget, event string, handler dom.Listener, opts dom.Options) *TrackedListener {
	if target == nil || handler == nil {
		return nil
	}
	entry := &TrackedListener{Target: target, Event: event, Handler: handler, Options: opts}
	fn := handler
	if opts.Once {
		fn = func(ev *dom.Event) {
			l.untrack(entry)
			handler(ev)
		}
	}
	entry.id = target.AddEventListener(event, fn, opts)
	l.entries = append(l.entries, entry)
	return entry
}

// Remove unregisters a single tracked entry.
func (l *Listeners) Remove(entry *TrackedListener) bool {
	if entry == nil || !l.untrack(entry) {
		return false
	}
	entry.Target.RemoveEventListener(entry.Event, entry.id)
	return true
}

func (l *Listeners) untrack(entry *TrackedListener) bool {
	for i, e := range l.entries {
		if e == entry {
			l.entries = append(l.entries[:i], l.entries[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveAll unregisters every tracked entry. Calling it again is a no-op.
func (l *Listeners) RemoveAll() int {
	entries := l.entries
	l.entries = nil
	for _, e := range entries {
		e.Target.RemoveEventListener(e.Event, e.id)
	}
	return len(entries)
}

// Len returns the number of live tracked registrations.
func (l *Listeners) Len() int {
	return len(l.entries)
}
