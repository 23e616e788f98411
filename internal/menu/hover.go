package menu

import (
	"github.com/atomicstack/editmenu/internal/dom"
	"github.com/atomicstack/editmenu/internal/logging/events"
	"github.com/atomicstack/editmenu/internal/loop"
)

// HoverPhase is the lifecycle position of one submenu.
type HoverPhase int

const (
	HoverClosed HoverPhase = iota
	HoverPendingOpen
	HoverOpen
	HoverPendingClose
)

func (p HoverPhase) String() string {
	switch p {
	case HoverPendingOpen:
		return "pending-open"
	case HoverOpen:
		return "open"
	case HoverPendingClose:
		return "pending-close"
	default:
		return "closed"
	}
}

// HoverState tracks pointer occupancy and timers for one trigger/submenu
// pair. Each pair owns its three timers; nothing is shared between pairs.
type HoverState struct {
	Trigger *dom.Element
	Submenu *dom.Element

	inTrigger bool
	inSubmenu bool
	phase     HoverPhase

	showTimer loop.Handle
	hideTimer loop.Handle
	fadeTimer loop.Handle
}

func (h *HoverState) Phase() HoverPhase    { return h.phase }
func (h *HoverState) MouseInTrigger() bool { return h.inTrigger }
func (h *HoverState) MouseInSubmenu() bool { return h.inSubmenu }

func (h *HoverState) occupied() bool {
	return h.inTrigger || h.inSubmenu
}

func (h *HoverState) name() string {
	action, _ := h.Trigger.Attr(AttrAction)
	return action
}

// HoverEngine opens submenus after a hover-intent delay and closes them after
// a grace period, re-checking occupancy whenever a timer fires.
type HoverEngine struct {
	sched loop.Scheduler
	state *State
	cfg   Config
	place func(trigger, sub *dom.Element)

	pairs []*HoverState
}

func newHoverEngine(sched loop.Scheduler, state *State, cfg Config, place func(trigger, sub *dom.Element)) *HoverEngine {
	return &HoverEngine{sched: sched, state: state, cfg: cfg, place: place}
}

// Wire registers enter/leave listeners for every submenu trigger under root.
func (e *HoverEngine) Wire(root *dom.Element, l *Listeners) {
	triggers := root.QueryAll(func(n *dom.Element) bool {
		return n.HasClass(ClassHasSubmenu)
	})
	for _, trigger := range triggers {
		sub := trigger.ChildWithClass(e.cfg.SubmenuClass)
		if sub == nil {
			continue
		}
		h := &HoverState{Trigger: trigger, Submenu: sub}
		e.pairs = append(e.pairs, h)
		l.Add(trigger, dom.EventMouseEnter, func(*dom.Event) { e.enterTrigger(h) }, dom.Options{})
		l.Add(trigger, dom.EventMouseLeave, func(*dom.Event) { e.leaveTrigger(h) }, dom.Options{})
		l.Add(sub, dom.EventMouseEnter, func(*dom.Event) { e.enterSubmenu(h) }, dom.Options{})
		l.Add(sub, dom.EventMouseLeave, func(*dom.Event) { e.leaveSubmenu(h) }, dom.Options{})
	}
}

// State returns the hover state of trigger.
func (e *HoverEngine) State(trigger *dom.Element) (*HoverState, bool) {
	for _, h := range e.pairs {
		if h.Trigger == trigger {
			return h, true
		}
	}
	return nil, false
}

// OpenNow opens trigger's submenu without the intent delay.
func (e *HoverEngine) OpenNow(trigger *dom.Element) bool {
	h, ok := e.State(trigger)
	if !ok || e.state.IsDestroyed() || trigger.HasClass(ClassDisabled) {
		return false
	}
	loop.Cancel(h.showTimer)
	loop.Cancel(h.hideTimer)
	h.showTimer, h.hideTimer = nil, nil
	e.reveal(h)
	return true
}

// Close collapses trigger's submenu immediately.
func (e *HoverEngine) Close(trigger *dom.Element) {
	if h, ok := e.State(trigger); ok {
		e.closeNow(h)
	}
}

// CloseAll collapses every submenu immediately.
func (e *HoverEngine) CloseAll() {
	for _, h := range e.pairs {
		if h.phase != HoverClosed || h.Submenu.Displayed() {
			e.closeNow(h)
		}
	}
}

// Stop cancels every pending timer.
func (e *HoverEngine) Stop() {
	for _, h := range e.pairs {
		loop.Cancel(h.showTimer)
		loop.Cancel(h.hideTimer)
		loop.Cancel(h.fadeTimer)
		h.showTimer, h.hideTimer, h.fadeTimer = nil, nil, nil
	}
}

func (e *HoverEngine) enterTrigger(h *HoverState) {
	if e.state.IsDestroyed() {
		return
	}
	h.inTrigger = true
	loop.Cancel(h.hideTimer)
	h.hideTimer = nil
	if h.phase == HoverPendingClose {
		h.phase = HoverOpen
	}
	if h.phase == HoverOpen || h.phase == HoverPendingOpen {
		return
	}
	if h.Trigger.HasClass(ClassDisabled) {
		return
	}
	h.phase = HoverPendingOpen
	h.showTimer = e.sched.After(e.cfg.HoverOpenDelay, func() {
		h.showTimer = nil
		e.open(h)
	})
}

func (e *HoverEngine) leaveTrigger(h *HoverState) {
	if e.state.IsDestroyed() {
		return
	}
	h.inTrigger = false
	if h.phase == HoverPendingOpen && !h.inSubmenu {
		loop.Cancel(h.showTimer)
		h.showTimer = nil
		h.phase = HoverClosed
		if h.Submenu.Displayed() {
			// Came back while it faded and left again before it reopened.
			e.collapse(h)
		}
		return
	}
	e.scheduleClose(h)
}

func (e *HoverEngine) enterSubmenu(h *HoverState) {
	if e.state.IsDestroyed() {
		return
	}
	h.inSubmenu = true
	loop.Cancel(h.showTimer)
	loop.Cancel(h.hideTimer)
	h.showTimer, h.hideTimer = nil, nil
	if h.Submenu.Displayed() {
		// Re-entered while closing or fading out.
		e.reveal(h)
	}
}

func (e *HoverEngine) leaveSubmenu(h *HoverState) {
	if e.state.IsDestroyed() {
		return
	}
	h.inSubmenu = false
	e.scheduleClose(h)
}

func (e *HoverEngine) open(h *HoverState) {
	if e.state.IsDestroyed() {
		return
	}
	if !e.state.IsVisible() || !h.occupied() || h.Trigger.HasClass(ClassDisabled) {
		h.phase = HoverClosed
		return
	}
	e.reveal(h)
}

func (e *HoverEngine) reveal(h *HoverState) {
	for _, other := range e.pairs {
		if other != h && !other.Trigger.Contains(h.Trigger) && (other.phase != HoverClosed || other.Submenu.Displayed()) {
			e.closeNow(other)
		}
	}
	loop.Cancel(h.fadeTimer)
	h.fadeTimer = nil
	if e.place != nil {
		e.place(h.Trigger, h.Submenu)
	} else {
		h.Submenu.SetDisplay(true)
	}
	h.Submenu.AddClass(e.cfg.VisibleClass)
	h.Trigger.AddClass(ClassExpanded)
	h.Trigger.SetAttr(AttrAriaExpanded, "true")
	h.phase = HoverOpen
	events.Hover.Open(h.name())
}

func (e *HoverEngine) scheduleClose(h *HoverState) {
	if h.phase != HoverOpen && h.phase != HoverPendingClose {
		return
	}
	loop.Cancel(h.hideTimer)
	h.phase = HoverPendingClose
	h.hideTimer = e.sched.After(e.cfg.HoverCloseDelay, func() {
		h.hideTimer = nil
		if e.state.IsDestroyed() {
			return
		}
		if h.occupied() {
			h.phase = HoverOpen
			events.Hover.Abort(h.name())
			return
		}
		e.collapse(h)
	})
}

// collapse starts the exit transition and takes the submenu out of layout
// once it has faded, unless the pointer came back first.
func (e *HoverEngine) collapse(h *HoverState) {
	h.Submenu.RemoveClass(e.cfg.VisibleClass)
	h.Trigger.RemoveClass(ClassExpanded)
	h.Trigger.SetAttr(AttrAriaExpanded, "false")
	h.phase = HoverClosed
	events.Hover.Close(h.name())
	loop.Cancel(h.fadeTimer)
	h.fadeTimer = e.sched.After(e.cfg.SubmenuHide, func() {
		h.fadeTimer = nil
		if e.state.IsDestroyed() || h.occupied() || h.phase == HoverOpen {
			return
		}
		h.Submenu.SetDisplay(false)
	})
}

func (e *HoverEngine) closeNow(h *HoverState) {
	loop.Cancel(h.showTimer)
	loop.Cancel(h.hideTimer)
	loop.Cancel(h.fadeTimer)
	h.showTimer, h.hideTimer, h.fadeTimer = nil, nil, nil
	h.inTrigger, h.inSubmenu = false, false
	h.Submenu.RemoveClass(e.cfg.VisibleClass)
	h.Submenu.SetDisplay(false)
	h.Trigger.RemoveClass(ClassExpanded)
	h.Trigger.SetAttr(AttrAriaExpanded, "false")
	if h.phase != HoverClosed {
		events.Hover.Close(h.name())
	}
	h.phase = HoverClosed
}
