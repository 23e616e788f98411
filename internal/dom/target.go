package dom

import "sync/atomic"

// ListenerID identifies a registration; Go funcs are not comparable, so
// removal goes through the id returned by AddEventListener.
type ListenerID uint64

// Listener handles a dispatched event.
type Listener func(*Event)

// Options mirrors the listener options hosts care about.
type Options struct {
	Once    bool
	Passive bool
}

// EventTarget is implemented by Element, Document and Window.
type EventTarget interface {
	AddEventListener(typ string, fn Listener, opts Options) ListenerID
	RemoveEventListener(typ string, id ListenerID) bool
	ListenerCount(typ string) int
}

var listenerSeq atomic.Uint64

type listenerEntry struct {
	id      ListenerID
	fn      Listener
	opts    Options
	removed bool
}

type listenerSet struct {
	byType map[string][]*listenerEntry
}

func (s *listenerSet) add(typ string, fn Listener, opts Options) ListenerID {
	if fn == nil {
		return 0
	}
	if s.byType == nil {
		s.byType = make(map[string][]*listenerEntry)
	}
	id := ListenerID(listenerSeq.Add(1))
	s.byType[typ] = append(s.byType[typ], &listenerEntry{id: id, fn: fn, opts: opts})
	return id
}

func (s *listenerSet) remove(typ string, id ListenerID) bool {
	entries := s.byType[typ]
	for i, entry := range entries {
		if entry.id != id {
			continue
		}
		entry.removed = true
		s.byType[typ] = append(entries[:i:i], entries[i+1:]...)
		if len(s.byType[typ]) == 0 {
			delete(s.byType, typ)
		}
		return true
	}
	return false
}

func (s *listenerSet) count(typ string) int {
	return len(s.byType[typ])
}

func (s *listenerSet) total() int {
	n := 0
	for _, entries := range s.byType {
		n += len(entries)
	}
	return n
}

// fire runs the listeners registered for ev.Type. Listeners added while
// firing are not invoked; listeners removed while firing are skipped.
func (s *listenerSet) fire(ev *Event, current EventTarget) {
	entries := s.byType[ev.Type]
	if len(entries) == 0 {
		return
	}
	snapshot := make([]*listenerEntry, len(entries))
	copy(snapshot, entries)
	ev.currentTarget = current
	for _, entry := range snapshot {
		if entry.removed {
			continue
		}
		if entry.opts.Once {
			s.remove(ev.Type, entry.id)
		}
		ev.inPassive = entry.opts.Passive
		entry.fn(ev)
		ev.inPassive = false
	}
}
