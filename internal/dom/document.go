// Package dom is a small retained element tree with browser-style events:
// classes, attributes, display and position, bubbling dispatch, pointer
// enter/leave tracking and hit testing. Terminal hosts lay it out and render
// it; the menu core only ever talks to this package.
package dom

// Document owns an element tree rooted at a body element sized to the window.
type Document struct {
	listeners listenerSet

	body   *Element
	window *Window
	byID   map[string]*Element

	hoverChain   []*Element
	onTransition func(*Element)
}

// Window is the viewport; scroll and resize are dispatched here.
type Window struct {
	listeners listenerSet
	doc       *Document
	w, h      int
}

// New creates a document with a body filling a width x height viewport.
func New(width, height int) *Document {
	d := &Document{byID: make(map[string]*Element)}
	d.window = &Window{doc: d, w: width, h: height}
	d.body = &Element{tag: "body", doc: d}
	d.body.SetSize(width, height)
	return d
}

func (d *Document) Body() *Element  { return d.body }
func (d *Document) Window() *Window { return d.window }

// CreateElement creates a detached element. A non-empty id is indexed once
// the element is attached under the body.
func (d *Document) CreateElement(tag, id string) *Element {
	return &Element{tag: tag, id: id, doc: d}
}

// GetElementByID returns the connected element carrying id, or nil.
func (d *Document) GetElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	return d.byID[id]
}

func (d *Document) index(e *Element) {
	e.walk(func(n *Element) {
		if n.id != "" {
			d.byID[n.id] = n
		}
	})
}

func (d *Document) unindex(e *Element) {
	e.walk(func(n *Element) {
		if n.id != "" && d.byID[n.id] == n {
			delete(d.byID, n.id)
		}
	})
}

// SetTransitionHook registers the callback invoked when a class change starts
// a transition on an element with a non-zero transition duration. The host is
// expected to dispatch transitionend on that element when it completes.
func (d *Document) SetTransitionHook(fn func(*Element)) {
	d.onTransition = fn
}

func (d *Document) AddEventListener(typ string, fn Listener, opts Options) ListenerID {
	return d.listeners.add(typ, fn, opts)
}

func (d *Document) RemoveEventListener(typ string, id ListenerID) bool {
	return d.listeners.remove(typ, id)
}

func (d *Document) ListenerCount(typ string) int {
	return d.listeners.count(typ)
}

// Dispatch fires ev on the document and, if it bubbles, the window.
func (d *Document) Dispatch(ev *Event) bool {
	d.listeners.fire(ev, d)
	if ev.Bubbles && !ev.stopped {
		d.window.listeners.fire(ev, d.window)
	}
	return !ev.defaultPrevented
}

// HitTest returns the topmost rendered element under (x, y). Later siblings
// paint over earlier ones and children over their parents.
func (d *Document) HitTest(x, y int) *Element {
	var hit *Element
	var visit func(*Element)
	visit = func(e *Element) {
		if e.hidden {
			return
		}
		if e.Bounds().Contains(x, y) {
			hit = e
		}
		for _, c := range e.children {
			visit(c)
		}
	}
	visit(d.body)
	return hit
}

// PointerMove updates the hovered chain for a pointer at (x, y), dispatching
// mouseleave on elements the pointer left (innermost first) and mouseenter on
// those it entered (outermost first), then mousemove on the target.
func (d *Document) PointerMove(x, y int) *Element {
	target := d.HitTest(x, y)
	var chain []*Element
	for n := target; n != nil; n = n.parent {
		chain = append(chain, n)
	}
	inChain := func(list []*Element, e *Element) bool {
		for _, n := range list {
			if n == e {
				return true
			}
		}
		return false
	}
	old := d.hoverChain
	d.hoverChain = chain
	for _, e := range old {
		if !inChain(chain, e) {
			e.Dispatch(PointerEvent(EventMouseLeave, x, y))
		}
	}
	for i := len(chain) - 1; i >= 0; i-- {
		if !inChain(old, chain[i]) {
			chain[i].Dispatch(PointerEvent(EventMouseEnter, x, y))
		}
	}
	if target != nil {
		target.Dispatch(PointerEvent(EventMouseMove, x, y))
	}
	return target
}

// Hovered returns the innermost element under the pointer, if any.
func (d *Document) Hovered() *Element {
	if len(d.hoverChain) == 0 {
		return nil
	}
	return d.hoverChain[0]
}

// Size returns the viewport dimensions.
func (w *Window) Size() (int, int) {
	return w.w, w.h
}

// Resize updates the viewport, resizes the body and dispatches resize.
func (w *Window) Resize(width, height int) {
	w.w, w.h = width, height
	w.doc.body.SetSize(width, height)
	w.Dispatch(NewEvent(EventResize))
}

// Scroll dispatches a scroll event carrying the delta in ClientY.
func (w *Window) Scroll(delta int) {
	ev := NewEvent(EventScroll)
	ev.ClientY = delta
	w.Dispatch(ev)
}

func (w *Window) Dispatch(ev *Event) bool {
	w.listeners.fire(ev, w)
	return !ev.defaultPrevented
}

func (w *Window) AddEventListener(typ string, fn Listener, opts Options) ListenerID {
	return w.listeners.add(typ, fn, opts)
}

func (w *Window) RemoveEventListener(typ string, id ListenerID) bool {
	return w.listeners.remove(typ, id)
}

func (w *Window) ListenerCount(typ string) int {
	return w.listeners.count(typ)
}

// TotalListeners counts every registration on the document, the window and
// all connected elements.
func (d *Document) TotalListeners() int {
	n := d.listeners.total() + d.window.listeners.total()
	d.body.walk(func(e *Element) {
		n += e.listeners.total()
	})
	return n
}
