package menu

import (
	"github.com/atomicstack/editmenu/internal/dom"
	"github.com/atomicstack/editmenu/internal/logging/events"
	"github.com/atomicstack/editmenu/internal/loop"
)

// Placement holds the inputs of the placement algorithm.
type Placement struct {
	PointerX, PointerY   int
	ViewportW, ViewportH int
	MenuW, MenuH         int

	// AnchorOffset is the distance from the menu's top edge to the vertical
	// centre of its first actionable item. Only used when HasAnchor is set.
	AnchorOffset int
	HasAnchor    bool
}

// Place returns the menu's top-left corner. With an anchor, the pointer lands
// offsetX into the first clickable row, centred vertically on it. A menu that
// would overflow an axis is pushed flush against that edge, margin away.
func Place(p Placement, offsetX, margin int) (left, top int) {
	left, top = p.PointerX, p.PointerY
	if p.HasAnchor {
		left = p.PointerX - offsetX
		top = p.PointerY - p.AnchorOffset
	}
	if left+p.MenuW > p.ViewportW {
		left = p.ViewportW - p.MenuW - margin
	}
	if top+p.MenuH > p.ViewportH {
		top = p.ViewportH - p.MenuH - margin
	}
	if left < 0 {
		left = margin
	}
	if top < 0 {
		top = margin
	}
	return left, top
}

// positioner owns show/hide of the menu element and the sibling selection
// menu overlay.
type positioner struct {
	doc       *dom.Document
	menu      *dom.Element
	state     *State
	cfg       Config
	sched     loop.Scheduler
	listeners *Listeners
	hover     *HoverEngine
	selection Selection

	reveal          loop.Handle
	pendingHide     *TrackedListener
	hiddenSelection bool
}

func (p *positioner) show(ev *dom.Event) {
	if p.state.IsDestroyed() || !IsValidElement(p.menu) {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			recovered("menu.show", r)
			if !p.state.IsVisible() {
				p.menu.SetDisplay(false)
			}
		}
	}()
	x, y := 0, 0
	if ev != nil {
		ev.PreventDefault()
		x, y = ev.ClientX, ev.ClientY
	}
	p.hideSelectionMenu()
	loop.Cancel(p.reveal)
	p.reveal = nil
	p.dropPendingHide()
	if p.hover != nil {
		p.hover.CloseAll()
	}

	// Laid out first: a display:none element has no box to measure.
	p.menu.SetDisplay(true)
	box := p.menu.Bounds()
	vw, vh := p.doc.Window().Size()
	pl := Placement{
		PointerX:  x,
		PointerY:  y,
		ViewportW: vw,
		ViewportH: vh,
		MenuW:     box.W,
		MenuH:     box.H,
	}
	if first := firstActionable(p.menu); first != nil {
		fb := first.Bounds()
		pl.HasAnchor = true
		pl.AnchorOffset = fb.Y - box.Y + fb.H/2
	}
	left, top := Place(pl, p.cfg.PointerOffsetX, p.cfg.Margin)
	ox, oy := parentOrigin(p.menu)
	p.menu.SetPosition(left-ox, top-oy)
	p.state.SetVisible(true)
	events.Menu.Show(x, y, left, top)

	// The visible class goes on a frame later so the host commits the
	// pre-transition position before animating from it.
	p.reveal = p.sched.NextFrame(func() {
		p.reveal = nil
		if p.state.IsDestroyed() || !p.state.IsVisible() {
			return
		}
		p.menu.AddClass(p.cfg.VisibleClass)
	})
}

func (p *positioner) hide(reason events.HideReason) bool {
	if p.state.IsDestroyed() || !p.state.IsVisible() {
		return false
	}
	hidden := false
	guard("menu.hide", func() {
		loop.Cancel(p.reveal)
		p.reveal = nil
		if p.hover != nil {
			p.hover.CloseAll()
		}
		transitioning := p.menu.RemoveClass(p.cfg.VisibleClass)
		p.state.SetVisible(false)
		hidden = true
		events.Menu.Hide(reason)
		if !transitioning {
			// Never revealed, so no exit transition will end.
			p.finishHide()
			return
		}
		p.dropPendingHide()
		var entry *TrackedListener
		entry = p.listeners.Add(p.menu, dom.EventTransitionEnd, func(ev *dom.Event) {
			if ev.Target != p.menu {
				return
			}
			p.listeners.Remove(entry)
			if p.pendingHide == entry {
				p.pendingHide = nil
			}
			p.finishHide()
		}, dom.Options{})
		p.pendingHide = entry
	})
	return hidden
}

// finishHide takes the menu out of layout unless it was shown again in the
// meantime.
func (p *positioner) finishHide() {
	if p.state.IsDestroyed() || p.state.IsVisible() {
		return
	}
	p.menu.SetDisplay(false)
	p.restoreSelectionMenu()
	events.Menu.Hidden()
}

// hideNow hides without waiting for a transition.
func (p *positioner) hideNow() {
	guard("menu.hideNow", func() {
		loop.Cancel(p.reveal)
		p.reveal = nil
		p.dropPendingHide()
		if p.hover != nil {
			p.hover.CloseAll()
		}
		p.menu.RemoveClass(p.cfg.VisibleClass)
		p.menu.SetDisplay(false)
		p.state.SetVisible(false)
		p.restoreSelectionMenu()
	})
}

func (p *positioner) dropPendingHide() {
	if p.pendingHide != nil {
		p.listeners.Remove(p.pendingHide)
		p.pendingHide = nil
	}
}

func (p *positioner) hideSelectionMenu() {
	sel, ok := SafeElement(p.doc, p.cfg.SelectionMenuID)
	if !ok || !sel.Displayed() {
		return
	}
	sel.SetDisplay(false)
	p.hiddenSelection = true
}

// restoreSelectionMenu re-reveals the overlay hidden by show, provided the
// selection it belongs to still exists.
func (p *positioner) restoreSelectionMenu() {
	if !p.hiddenSelection {
		return
	}
	p.hiddenSelection = false
	if p.selection != nil && p.selection.Collapsed() {
		return
	}
	if sel, ok := SafeElement(p.doc, p.cfg.SelectionMenuID); ok {
		sel.SetDisplay(true)
	}
}

// placeSubmenu lays sub out beside trigger: to the right of the menu, or to
// its left when that would overflow, clamped vertically.
func (p *positioner) placeSubmenu(trigger, sub *dom.Element) {
	sub.SetDisplay(true)
	tb := trigger.Bounds()
	mb := p.menu.Bounds()
	sw, sh := sub.Size()
	vw, vh := p.doc.Window().Size()

	left := max(tb.X+tb.W, mb.X+mb.W)
	if left+sw > vw {
		left = mb.X - sw
	}
	if left < 0 {
		left = max(vw-sw-p.cfg.Margin, 0)
	}
	top := tb.Y - (firstRowOffset(sub))
	if top+sh > vh {
		top = vh - sh - p.cfg.Margin
	}
	if top < 0 {
		top = 0
	}
	sub.SetPosition(left-tb.X, top-tb.Y)
}

// firstActionable returns the first enabled row directly inside list.
func firstActionable(list *dom.Element) *dom.Element {
	for _, c := range list.Children() {
		if isActionable(c) && c.Displayed() {
			return c
		}
	}
	return nil
}

// firstRowOffset is the vertical offset of list's first row within list.
func firstRowOffset(list *dom.Element) int {
	for _, c := range list.Children() {
		if c.HasClass(ClassItem) {
			_, y := c.Position()
			return y
		}
	}
	return 0
}

func parentOrigin(el *dom.Element) (int, int) {
	parent := el.Parent()
	if parent == nil {
		return 0, 0
	}
	b := parent.Bounds()
	return b.X, b.Y
}
