package menu

import "github.com/atomicstack/editmenu/internal/logging/events"

// Snapshot is an opaque serialized capture of the editable content.
type Snapshot string

// Stack is an ordered snapshot sequence. The State hands out stable pointers
// so callers holding one keep seeing the live contents after ClearStacks.
type Stack struct {
	items []Snapshot
}

// Len returns the number of snapshots held.
func (s *Stack) Len() int {
	return len(s.items)
}

// Peek returns the top snapshot.
func (s *Stack) Peek() (Snapshot, bool) {
	if len(s.items) == 0 {
		return "", false
	}
	return s.items[len(s.items)-1], true
}

// Items returns a copy, oldest first.
func (s *Stack) Items() []Snapshot {
	out := make([]Snapshot, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Stack) push(snap Snapshot, limit int) {
	s.items = append(s.items, snap)
	if limit > 0 && len(s.items) > limit {
		drop := len(s.items) - limit
		copy(s.items, s.items[drop:])
		clear(s.items[limit:])
		s.items = s.items[:limit]
	}
}

func (s *Stack) pop() (Snapshot, bool) {
	if len(s.items) == 0 {
		return "", false
	}
	top := s.items[len(s.items)-1]
	s.items[len(s.items)-1] = ""
	s.items = s.items[:len(s.items)-1]
	return top, true
}

func (s *Stack) reset() {
	clear(s.items)
	s.items = s.items[:0]
}

// State is the per-instance menu state: visibility, the destroyed latch, the
// bounded undo/redo history and the history-replay guard.
//
// Every mutator is a no-op once the state is destroyed.
type State struct {
	visible         bool
	destroyed       bool
	applyingHistory bool
	maxHistory      int
	undo            *Stack
	redo            *Stack
}

// NewState creates a state bounding each stack to maxHistory snapshots.
func NewState(maxHistory int) *State {
	if maxHistory < 1 {
		maxHistory = DefaultMaxHistorySize
	}
	return &State{maxHistory: maxHistory, undo: &Stack{}, redo: &Stack{}}
}

func (s *State) IsVisible() bool { return s.visible }

func (s *State) SetVisible(visible bool) {
	if s.destroyed {
		return
	}
	s.visible = visible
}

func (s *State) IsDestroyed() bool { return s.destroyed }

// SetDestroyed latches the destroyed flag. It cannot be cleared, and a
// destroyed state is never visible.
func (s *State) SetDestroyed(destroyed bool) {
	if !destroyed || s.destroyed {
		return
	}
	s.destroyed = true
	s.visible = false
	s.applyingHistory = false
}

func (s *State) IsApplyingHistory() bool { return s.applyingHistory }

func (s *State) SetApplyingHistory(applying bool) {
	if s.destroyed {
		return
	}
	s.applyingHistory = applying
}

func (s *State) UndoStack() *Stack { return s.undo }
func (s *State) RedoStack() *Stack { return s.redo }

// MaxHistory returns the configured stack bound.
func (s *State) MaxHistory() int { return s.maxHistory }

// ClearStacks empties both stacks in place.
func (s *State) ClearStacks() {
	if s.destroyed {
		return
	}
	s.undo.reset()
	s.redo.reset()
}

// Record pushes a new snapshot, evicting the oldest beyond the bound and
// invalidating the redo history. It reports whether the snapshot was kept;
// snapshots arriving while history is being applied are dropped.
func (s *State) Record(snap Snapshot) bool {
	if s.destroyed {
		return false
	}
	if s.applyingHistory {
		events.History.Suppressed()
		return false
	}
	if top, ok := s.undo.Peek(); ok && top == snap {
		return false
	}
	s.undo.push(snap, s.maxHistory)
	s.redo.reset()
	events.History.Record(s.undo.Len(), s.redo.Len())
	return true
}

// CanUndo reports whether a step before the current snapshot exists. The
// last remaining undo entry is the current content, not an undoable step.
func (s *State) CanUndo() bool {
	return !s.destroyed && s.undo.Len() > 1
}

// CanRedo reports whether an undone snapshot is waiting.
func (s *State) CanRedo() bool {
	return !s.destroyed && s.redo.Len() > 0
}

// Undo moves the current snapshot onto the redo stack and returns the prior
// one, which the caller restores.
func (s *State) Undo() (Snapshot, bool) {
	if !s.CanUndo() {
		return "", false
	}
	current, _ := s.undo.pop()
	s.redo.push(current, s.maxHistory)
	prior, _ := s.undo.Peek()
	events.History.Undo(s.undo.Len(), s.redo.Len())
	return prior, true
}

// Redo moves the most recently undone snapshot back onto the undo stack and
// returns it. The redo stack is not cleared by this push.
func (s *State) Redo() (Snapshot, bool) {
	if !s.CanRedo() {
		return "", false
	}
	next, _ := s.redo.pop()
	s.undo.push(next, s.maxHistory)
	events.History.Redo(s.undo.Len(), s.redo.Len())
	return next, true
}
