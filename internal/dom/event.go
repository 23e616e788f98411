package dom

// Event types dispatched by hosts and consumed by the menu core.
const (
	EventContextMenu   = "contextmenu"
	EventClick         = "click"
	EventMouseDown     = "mousedown"
	EventMouseMove     = "mousemove"
	EventMouseEnter    = "mouseenter"
	EventMouseLeave    = "mouseleave"
	EventKeyDown       = "keydown"
	EventInput         = "input"
	EventScroll        = "scroll"
	EventResize        = "resize"
	EventTransitionEnd = "transitionend"
)

// Key names carried by keydown events.
const (
	KeyEscape     = "Escape"
	KeyEnter      = "Enter"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

// Event is a single dispatched event. Target is nil for events dispatched on
// the document or window directly.
type Event struct {
	Type    string
	Target  *Element
	ClientX int
	ClientY int
	Key     string
	Bubbles bool

	currentTarget    EventTarget
	defaultPrevented bool
	stopped          bool
	inPassive        bool
}

// NewEvent builds an event with the bubbling behaviour browsers use for typ.
func NewEvent(typ string) *Event {
	return &Event{Type: typ, Bubbles: bubbles(typ)}
}

// PointerEvent builds a positioned event.
func PointerEvent(typ string, x, y int) *Event {
	ev := NewEvent(typ)
	ev.ClientX = x
	ev.ClientY = y
	return ev
}

// KeyEvent builds a keydown event for key.
func KeyEvent(key string) *Event {
	ev := NewEvent(EventKeyDown)
	ev.Key = key
	return ev
}

func bubbles(typ string) bool {
	switch typ {
	case EventMouseEnter, EventMouseLeave, EventScroll, EventResize:
		return false
	default:
		return true
	}
}

// PreventDefault marks the default host action as suppressed. Calls made from
// passive listeners are ignored.
func (e *Event) PreventDefault() {
	if e.inPassive {
		return
	}
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a listener suppressed the default action.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation stops the event from reaching further targets.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// CurrentTarget is the target whose listener is running.
func (e *Event) CurrentTarget() EventTarget {
	return e.currentTarget
}
