package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/editmenu/internal/dom"
	"github.com/atomicstack/editmenu/internal/loop"
	"github.com/atomicstack/editmenu/internal/menu"
)

const (
	minMenuInner  = 12
	submenuMarker = "▸"
)

// selectionActions are the shortcuts offered above a selection.
var selectionActions = []struct {
	action string
	label  string
}{
	{action: menu.ActionCut, label: "Cut"},
	{action: menu.ActionCopy, label: "Copy"},
	{action: menu.ActionSearchWithGoogle, label: "Search"},
}

// buildDocument lays out the editor surface, the selection overlay and the
// context menu markup.
func (m *Model) buildDocument() {
	m.doc = dom.New(m.width, m.height)
	body := m.doc.Body()

	m.surface = m.doc.CreateElement("div", m.cfg.SurfaceID)
	m.surface.SetAttr("contenteditable", "true")
	body.AppendChild(m.surface)

	m.selMenu = m.doc.CreateElement("div", m.cfg.SelectionMenuID)
	m.selMenu.AddClass("selection-menu")
	m.selMenu.SetDisplay(false)
	x := 1
	for _, entry := range selectionActions {
		btn := m.doc.CreateElement("span", "")
		btn.SetAttr(menu.AttrAction, entry.action)
		btn.SetText(entry.label)
		w := lipgloss.Width(entry.label)
		btn.SetPosition(x, 0)
		btn.SetSize(w, 1)
		m.selMenu.AppendChild(btn)
		x += w + 2
	}
	m.selMenu.SetSize(x-1, 1)
	m.selMenu.AddEventListener(dom.EventClick, m.onSelectionMenuClick, dom.Options{})
	body.AppendChild(m.selMenu)

	root := menu.Build(m.doc, body, menu.BuildRegistry(menu.DefaultItems()), m.cfg)
	layoutList(root, m.cfg.SubmenuClass)
	root.SetTransition(TransitionDuration)
	m.doc.SetTransitionHook(m.startTransition)

	m.syncLayout()
}

// syncLayout sizes the surface to the terminal, leaving the status row.
func (m *Model) syncLayout() {
	m.surface.SetPosition(0, 0)
	m.surface.SetSize(m.width, m.textHeight())
	m.buf.EnsureCursorVisible(m.textHeight())
}

func (m *Model) textHeight() int {
	if m.height <= 1 {
		return 1
	}
	return m.height - 1
}

// layoutList sizes a bordered list: one row per child inside a one-cell
// border, every row as wide as the widest label. Nested lists are laid out
// the same way and positioned when opened.
func layoutList(list *dom.Element, submenuClass string) {
	inner := minMenuInner
	children := list.Children()
	for _, child := range children {
		if w := rowWidth(child); w > inner {
			inner = w
		}
	}
	for i, child := range children {
		child.SetPosition(1, 1+i)
		child.SetSize(inner, 1)
		if sub := child.ChildWithClass(submenuClass); sub != nil {
			layoutList(sub, submenuClass)
		}
	}
	list.SetSize(inner+2, len(children)+2)
}

func rowWidth(row *dom.Element) int {
	if row.HasClass(menu.ClassSeparator) {
		return 0
	}
	w := 1 + lipgloss.Width(row.Text()) + 1
	if row.HasClass(menu.ClassHasSubmenu) {
		return w + 2 + lipgloss.Width(submenuMarker)
	}
	if shortcut, ok := row.Attr("data-shortcut"); ok {
		w += 2 + lipgloss.Width(shortcut)
	}
	return w
}

// startTransition ends el's transition after its duration. A transition
// restarted before it ends replaces the pending one, as a reversed CSS
// transition does.
func (m *Model) startTransition(el *dom.Element) {
	loop.Cancel(m.transitions[el])
	m.transitions[el] = m.sched.After(el.Transition(), func() {
		delete(m.transitions, el)
		el.Dispatch(dom.NewEvent(dom.EventTransitionEnd))
	})
}

// syncSelectionMenu shows the selection overlay above the selection while the
// context menu is out of layout. The menu hides and restores it otherwise.
func (m *Model) syncSelectionMenu() {
	if m.menu == nil || m.menu.State().IsDestroyed() || m.menu.Element().Displayed() {
		return
	}
	start, _, ok := m.buf.Selection()
	if !ok {
		m.selMenu.SetDisplay(false)
		return
	}
	x, y, visible := m.buf.CellOf(start, m.textHeight())
	if !visible {
		y = 0
	}
	if y > 0 {
		y--
	} else if m.textHeight() > 1 {
		y = 1
	}
	w, _ := m.selMenu.Size()
	if x+w > m.width {
		x = max(m.width-w, 0)
	}
	m.selMenu.SetPosition(x, y)
	m.selMenu.SetDisplay(true)
}

func (m *Model) onSelectionMenuClick(ev *dom.Event) {
	if ev.Target == nil {
		return
	}
	action, ok := ev.Target.Attr(menu.AttrAction)
	if !ok {
		return
	}
	m.runAction(action)
}
