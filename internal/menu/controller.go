package menu

import (
	"errors"
	"fmt"

	"github.com/atomicstack/editmenu/internal/dom"
	"github.com/atomicstack/editmenu/internal/logging/events"
	"github.com/atomicstack/editmenu/internal/loop"
)

// Content captures and restores the editable surface.
type Content interface {
	Snapshot() Snapshot
	Restore(Snapshot)
}

// Host is everything the embedding surface provides to a Controller. Only
// Scheduler is required; a nil Content disables history, a nil Selection
// reads as collapsed and a nil Clipboard leaves paste enabled.
type Host struct {
	Scheduler loop.Scheduler
	Content   Content
	Selection Selection
	Clipboard Clipboard

	// Run performs an editing action chosen from the menu. Undo and redo
	// never reach it; the controller applies those itself.
	Run func(action string)
}

// Controller is one mounted context menu. All methods must be called from
// the scheduler's goroutine.
type Controller struct {
	cfg     Config
	doc     *dom.Document
	menu    *dom.Element
	surface *dom.Element
	host    Host

	state     *State
	items     ItemCache
	listeners Listeners

	pos   *positioner
	upd   *updater
	hover *HoverEngine

	recorder   *Debouncer
	scrollHide *Debouncer
	resizeHide *Debouncer
	typeReset  *Debouncer

	focused *dom.Element
	query   string
}

// New mounts a menu over the element with id cfg.MenuID in doc. The surface
// (cfg.SurfaceID) receives the contextmenu and input bindings; when it is
// missing the document receives them instead.
func New(doc *dom.Document, cfg Config, host Host) (*Controller, error) {
	if doc == nil {
		return nil, errors.New("menu: nil document")
	}
	if host.Scheduler == nil {
		return nil, errors.New("menu: host scheduler required")
	}
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("menu: %w", err)
	}
	root, ok := SafeElement(doc, cfg.MenuID)
	if !ok {
		return nil, fmt.Errorf("menu: element %q not found", cfg.MenuID)
	}

	c := &Controller{
		cfg:   cfg,
		doc:   doc,
		menu:  root,
		host:  host,
		state: NewState(cfg.MaxHistorySize),
		items: CacheItems(root),
	}
	if surface, ok := SafeElement(doc, cfg.SurfaceID); ok {
		c.surface = surface
	}
	sched := host.Scheduler
	c.pos = &positioner{
		doc:       doc,
		menu:      root,
		state:     c.state,
		cfg:       cfg,
		sched:     sched,
		listeners: &c.listeners,
		selection: host.Selection,
	}
	c.hover = newHoverEngine(sched, c.state, cfg, c.pos.placeSubmenu)
	c.pos.hover = c.hover
	c.upd = &updater{
		state:     c.state,
		items:     c.items,
		selection: host.Selection,
		clipboard: host.Clipboard,
		sched:     sched,
	}
	c.recorder = NewDebouncer(sched, cfg.DebounceDelay, c.recordContent)
	c.scrollHide = NewDebouncer(sched, cfg.ViewportDelay, func() { c.hide(events.HideReasonScroll) })
	c.resizeHide = NewDebouncer(sched, cfg.ViewportDelay, func() { c.hide(events.HideReasonResize) })
	c.typeReset = NewDebouncer(sched, typeAheadReset, func() { c.query = "" })

	if host.Content != nil {
		c.state.Record(host.Content.Snapshot())
	}
	c.wire()
	events.Menu.Mount(cfg.MenuID, len(c.items))
	return c, nil
}

func (c *Controller) wire() {
	var surface dom.EventTarget = c.doc
	if c.surface != nil {
		surface = c.surface
	}
	l := &c.listeners
	l.Add(surface, dom.EventContextMenu, func(ev *dom.Event) {
		c.UpdateMenuState()
		c.ShowMenu(ev)
	}, dom.Options{})
	l.Add(surface, dom.EventInput, func(*dom.Event) {
		if c.state.IsDestroyed() {
			return
		}
		c.recorder.Trigger()
	}, dom.Options{})
	l.Add(c.menu, dom.EventClick, c.onMenuClick, dom.Options{})
	l.Add(c.menu, dom.EventMouseMove, c.onMenuPointer, dom.Options{Passive: true})
	l.Add(c.doc.Window(), dom.EventScroll, func(*dom.Event) {
		if c.state.IsVisible() {
			c.scrollHide.Trigger()
		}
	}, dom.Options{Passive: true})
	l.Add(c.doc.Window(), dom.EventResize, func(*dom.Event) {
		if c.state.IsVisible() {
			c.resizeHide.Trigger()
		}
	}, dom.Options{Passive: true})
	l.Add(c.doc, dom.EventKeyDown, c.onKeyDown, dom.Options{})
	l.Add(c.doc, dom.EventClick, c.onDocumentClick, dom.Options{})
	c.hover.Wire(c.menu, l)
}

// State exposes the instance state.
func (c *Controller) State() *State { return c.state }

// Items returns the cached item elements keyed by action.
func (c *Controller) Items() ItemCache { return c.items }

// Hover returns the submenu hover engine.
func (c *Controller) Hover() *HoverEngine { return c.hover }

// Listeners returns the number of live registrations.
func (c *Controller) Listeners() int { return c.listeners.Len() }

// Element returns the menu root element.
func (c *Controller) Element() *dom.Element { return c.menu }

// Focused returns the row holding the keyboard highlight, if any.
func (c *Controller) Focused() *dom.Element { return c.focused }

// ShowMenu positions the menu at the event's pointer location and reveals it.
func (c *Controller) ShowMenu(ev *dom.Event) {
	if c.state.IsDestroyed() {
		return
	}
	c.setFocus(nil)
	c.pos.show(ev)
}

// HideMenu starts the exit transition. It reports whether the menu was open.
func (c *Controller) HideMenu() bool {
	return c.hide(events.HideReasonAPI)
}

func (c *Controller) hide(reason events.HideReason) bool {
	if c.state.IsDestroyed() {
		return false
	}
	c.scrollHide.Cancel()
	c.resizeHide.Cancel()
	c.setFocus(nil)
	c.query = ""
	return c.pos.hide(reason)
}

// UpdateMenuState refreshes every item's enabled state.
func (c *Controller) UpdateMenuState() {
	c.upd.update()
}

// RecordState pushes snap onto the history. It reports whether it was kept.
func (c *Controller) RecordState(snap Snapshot) bool {
	if c.state.IsDestroyed() {
		return false
	}
	kept := c.state.Record(snap)
	if kept && c.state.IsVisible() {
		c.upd.updateHistory()
	}
	return kept
}

func (c *Controller) recordContent() {
	if c.state.IsDestroyed() || c.host.Content == nil {
		return
	}
	c.RecordState(c.host.Content.Snapshot())
}

// Undo restores the previous snapshot. Pending typing is recorded first.
func (c *Controller) Undo() bool {
	if c.state.IsDestroyed() {
		return false
	}
	c.recorder.Flush()
	snap, ok := c.state.Undo()
	if !ok {
		return false
	}
	c.apply(snap)
	return true
}

// Redo reapplies the most recently undone snapshot.
func (c *Controller) Redo() bool {
	if c.state.IsDestroyed() {
		return false
	}
	c.recorder.Flush()
	snap, ok := c.state.Redo()
	if !ok {
		return false
	}
	c.apply(snap)
	return true
}

func (c *Controller) apply(snap Snapshot) {
	if c.host.Content != nil {
		c.state.SetApplyingHistory(true)
		guard("menu.restore", func() { c.host.Content.Restore(snap) })
		c.state.SetApplyingHistory(false)
		// Input dispatched by the restore itself is not an edit.
		c.recorder.Cancel()
	}
	if c.state.IsVisible() {
		c.upd.updateHistory()
	}
}

// Destroy tears the instance down: the menu is hidden immediately, every
// timer is cancelled and every registration made by New is removed.
// Calling it again is a no-op.
func (c *Controller) Destroy() {
	if c.state.IsDestroyed() {
		return
	}
	c.pos.hideNow()
	c.setFocus(nil)
	c.hover.Stop()
	c.recorder.Cancel()
	c.scrollHide.Cancel()
	c.resizeHide.Cancel()
	c.typeReset.Cancel()
	c.upd.invalidate()
	c.listeners.RemoveAll()
	c.state.ClearStacks()
	c.state.SetDestroyed(true)
	events.Menu.Destroy()
}

func (c *Controller) onMenuClick(ev *dom.Event) {
	if c.state.IsDestroyed() || !c.state.IsVisible() {
		return
	}
	row, action := actionOf(ev.Target)
	if row == nil || action == "" || row.HasClass(ClassDisabled) {
		return
	}
	if row.HasClass(ClassHasSubmenu) {
		c.hover.OpenNow(row)
		return
	}
	c.activate(action)
}

func (c *Controller) onMenuPointer(ev *dom.Event) {
	if !c.state.IsVisible() {
		return
	}
	if row, _ := actionOf(ev.Target); row != nil && isActionable(row) && row != c.focused {
		c.setFocus(row)
	}
}

func (c *Controller) onDocumentClick(ev *dom.Event) {
	if c.state.IsDestroyed() || !c.state.IsVisible() {
		return
	}
	if ev.Target != nil && ev.Target.HasAncestorID(c.cfg.MenuID) {
		return
	}
	c.hide(events.HideReasonOutside)
}

// activate hides the menu and performs action.
func (c *Controller) activate(action string) {
	c.hide(events.HideReasonAction)
	events.Action.Dispatch(action)
	switch action {
	case ActionUndo:
		c.Undo()
	case ActionRedo:
		c.Redo()
	default:
		if c.host.Run != nil {
			guard("menu.action", func() { c.host.Run(action) })
		}
	}
}
