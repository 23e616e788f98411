package dom

import (
	"slices"
	"time"
)

// Rect is an axis-aligned box in cells. Right and bottom edges are exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) lies inside the rect.
func (r Rect) Contains(x, y int) bool {
	return r.W > 0 && r.H > 0 && x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Element is a node in the retained element tree.
type Element struct {
	listeners listenerSet

	id       string
	tag      string
	doc      *Document
	parent   *Element
	children []*Element
	classes  []string
	attrs    map[string]string
	text     string

	hidden     bool
	x, y       int
	w, h       int
	transition time.Duration
	revision   uint64
}

func (e *Element) ID() string          { return e.id }
func (e *Element) Tag() string         { return e.tag }
func (e *Element) Document() *Document { return e.doc }
func (e *Element) Parent() *Element    { return e.parent }

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	return slices.Clone(e.children)
}

// Revision increases on every observable mutation of the element.
func (e *Element) Revision() uint64 {
	return e.revision
}

func (e *Element) touch() {
	e.revision++
}

// AppendChild attaches child as the last child of e, detaching it from any
// previous parent first.
func (e *Element) AppendChild(child *Element) {
	if child == nil || child == e {
		return
	}
	if child.parent != nil {
		child.Remove()
	}
	child.parent = e
	e.children = append(e.children, child)
	if e.IsConnected() && e.doc != nil {
		e.doc.index(child)
	}
}

// Remove detaches e from its parent and the document's id index.
func (e *Element) Remove() {
	if e.parent == nil {
		return
	}
	if e.IsConnected() && e.doc != nil {
		e.doc.unindex(e)
	}
	p := e.parent
	for i, c := range p.children {
		if c == e {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	e.parent = nil
}

// IsConnected reports whether e is reachable from its document's body.
func (e *Element) IsConnected() bool {
	if e == nil || e.doc == nil {
		return false
	}
	for n := e; n != nil; n = n.parent {
		if n == e.doc.body {
			return true
		}
	}
	return false
}

func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

func (e *Element) SetAttr(name, value string) {
	if cur, ok := e.attrs[name]; ok && cur == value {
		return
	}
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
	e.touch()
}

func (e *Element) RemoveAttr(name string) {
	if _, ok := e.attrs[name]; !ok {
		return
	}
	delete(e.attrs, name)
	e.touch()
}

func (e *Element) HasClass(class string) bool {
	return slices.Contains(e.classes, class)
}

// Classes returns the class list in insertion order.
func (e *Element) Classes() []string {
	return slices.Clone(e.classes)
}

// AddClass adds class and reports whether the list changed.
func (e *Element) AddClass(class string) bool {
	if class == "" || e.HasClass(class) {
		return false
	}
	e.classes = append(e.classes, class)
	e.classChanged()
	return true
}

// RemoveClass removes class and reports whether the list changed.
func (e *Element) RemoveClass(class string) bool {
	idx := slices.Index(e.classes, class)
	if idx < 0 {
		return false
	}
	e.classes = append(e.classes[:idx], e.classes[idx+1:]...)
	e.classChanged()
	return true
}

// ToggleClass sets the presence of class to on.
func (e *Element) ToggleClass(class string, on bool) bool {
	if on {
		return e.AddClass(class)
	}
	return e.RemoveClass(class)
}

func (e *Element) classChanged() {
	e.touch()
	if e.transition > 0 && e.doc != nil && e.doc.onTransition != nil && e.IsRendered() {
		e.doc.onTransition(e)
	}
}

// SetTransition declares how long class-driven transitions on e take.
func (e *Element) SetTransition(d time.Duration) {
	e.transition = d
}

func (e *Element) Transition() time.Duration {
	return e.transition
}

// SetDisplay toggles the element in and out of layout (display:none).
func (e *Element) SetDisplay(shown bool) {
	if e.hidden == !shown {
		return
	}
	e.hidden = !shown
	e.touch()
}

// Displayed reports the element's own display flag.
func (e *Element) Displayed() bool {
	return !e.hidden
}

// IsRendered reports whether e and all its ancestors are displayed and e is
// connected to the document.
func (e *Element) IsRendered() bool {
	if !e.IsConnected() {
		return false
	}
	for n := e; n != nil; n = n.parent {
		if n.hidden {
			return false
		}
	}
	return true
}

// SetPosition sets the offset of e relative to its parent.
func (e *Element) SetPosition(x, y int) {
	if e.x == x && e.y == y {
		return
	}
	e.x, e.y = x, y
	e.touch()
}

func (e *Element) Position() (int, int) {
	return e.x, e.y
}

// SetSize sets the laid-out size of e. Hosts call this from their layout pass.
func (e *Element) SetSize(w, h int) {
	if e.w == w && e.h == h {
		return
	}
	e.w, e.h = w, h
	e.touch()
}

func (e *Element) Size() (int, int) {
	return e.w, e.h
}

func (e *Element) Text() string {
	return e.text
}

func (e *Element) SetText(text string) {
	if e.text == text {
		return
	}
	e.text = text
	e.touch()
}

// Bounds returns the absolute box of e, or an empty rect when e is not
// rendered. Like a browser, a display:none element has no measurable box.
func (e *Element) Bounds() Rect {
	if !e.IsRendered() {
		return Rect{}
	}
	x, y := 0, 0
	for n := e; n != nil; n = n.parent {
		x += n.x
		y += n.y
	}
	return Rect{X: x, Y: y, W: e.w, H: e.h}
}

// Closest returns the nearest inclusive ancestor matching match.
func (e *Element) Closest(match func(*Element) bool) *Element {
	for n := e; n != nil; n = n.parent {
		if match(n) {
			return n
		}
	}
	return nil
}

// HasAncestorID reports whether e or any ancestor carries id.
func (e *Element) HasAncestorID(id string) bool {
	if id == "" {
		return false
	}
	return e.Closest(func(n *Element) bool { return n.id == id }) != nil
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// Query returns the first descendant (depth-first, document order) matching.
func (e *Element) Query(match func(*Element) bool) *Element {
	for _, c := range e.children {
		if match(c) {
			return c
		}
		if found := c.Query(match); found != nil {
			return found
		}
	}
	return nil
}

// QueryAll returns every descendant matching, in document order.
func (e *Element) QueryAll(match func(*Element) bool) []*Element {
	var out []*Element
	e.walk(func(n *Element) {
		if n != e && match(n) {
			out = append(out, n)
		}
	})
	return out
}

// ChildWithClass returns the first direct child carrying class.
func (e *Element) ChildWithClass(class string) *Element {
	for _, c := range e.children {
		if c.HasClass(class) {
			return c
		}
	}
	return nil
}

func (e *Element) walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.children {
		c.walk(fn)
	}
}

func (e *Element) AddEventListener(typ string, fn Listener, opts Options) ListenerID {
	return e.listeners.add(typ, fn, opts)
}

func (e *Element) RemoveEventListener(typ string, id ListenerID) bool {
	return e.listeners.remove(typ, id)
}

func (e *Element) ListenerCount(typ string) int {
	return e.listeners.count(typ)
}

// Dispatch fires ev at e and, for bubbling events, at each ancestor, the
// document and the window. It reports whether the default action should run.
func (e *Element) Dispatch(ev *Event) bool {
	ev.Target = e
	e.listeners.fire(ev, e)
	if ev.Bubbles {
		for n := e.parent; n != nil && !ev.stopped; n = n.parent {
			n.listeners.fire(ev, n)
		}
		if e.doc != nil && e.IsConnected() {
			if !ev.stopped {
				e.doc.listeners.fire(ev, e.doc)
			}
			if !ev.stopped {
				e.doc.window.listeners.fire(ev, e.doc.window)
			}
		}
	}
	return !ev.defaultPrevented
}
