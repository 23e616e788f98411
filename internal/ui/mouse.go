package ui

import (
	"github.com/atomicstack/editmenu/internal/dom"
	"github.com/atomicstack/editmenu/internal/editor"
	tea "github.com/charmbracelet/bubbletea"
)

const wheelStep = 3

// handleMouseMsg translates terminal mouse reports into pointer events on the
// document and caret moves in the editor.
func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	switch {
	case ev.Button == tea.MouseButtonWheelUp || ev.Button == tea.MouseButtonWheelDown:
		if ev.Action != tea.MouseActionPress {
			return nil
		}
		delta := wheelStep
		if ev.Button == tea.MouseButtonWheelUp {
			delta = -wheelStep
		}
		m.buf.Scroll(delta, m.textHeight())
		m.doc.Window().Scroll(delta)
	case ev.Action == tea.MouseActionMotion:
		m.doc.PointerMove(ev.X, ev.Y)
		if m.dragging {
			m.buf.SetCursor(m.cellPos(ev.X, ev.Y), true)
			m.caretDirty = true
		}
	case ev.Action == tea.MouseActionRelease:
		m.dragging = false
	case ev.Action == tea.MouseActionPress && ev.Button == tea.MouseButtonRight:
		target := m.doc.PointerMove(ev.X, ev.Y)
		if m.inSurface(target) {
			if pos := m.cellPos(ev.X, ev.Y); !m.withinSelection(pos) {
				m.buf.SetCursor(pos, false)
				m.caretDirty = true
			}
		}
		m.dispatchPointer(target, dom.EventContextMenu, ev.X, ev.Y)
	case ev.Action == tea.MouseActionPress && ev.Button == tea.MouseButtonLeft:
		target := m.doc.PointerMove(ev.X, ev.Y)
		if m.inSurface(target) {
			m.buf.SetCursor(m.cellPos(ev.X, ev.Y), ev.Shift)
			m.dragging = true
			m.caretDirty = true
		}
		m.dispatchPointer(target, dom.EventClick, ev.X, ev.Y)
	}
	return nil
}

func (m *Model) dispatchPointer(target *dom.Element, typ string, x, y int) {
	ev := dom.PointerEvent(typ, x, y)
	if target == nil {
		m.doc.Dispatch(ev)
		return
	}
	target.Dispatch(ev)
}

func (m *Model) inSurface(el *dom.Element) bool {
	return el != nil && m.surface.Contains(el)
}

func (m *Model) cellPos(x, y int) editor.Pos {
	b := m.surface.Bounds()
	return m.buf.PosFromCell(x-b.X, y-b.Y)
}

func (m *Model) withinSelection(p editor.Pos) bool {
	start, end, ok := m.buf.Selection()
	return ok && !p.Before(start) && p.Before(end)
}
