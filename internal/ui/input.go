package ui

import (
	"unicode/utf8"

	"github.com/atomicstack/editmenu/internal/dom"
	"github.com/atomicstack/editmenu/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

// menuKeys maps Bubble Tea key names to the key names the menu listens for.
var menuKeys = map[string]string{
	"esc":   dom.KeyEscape,
	"enter": dom.KeyEnter,
	"up":    dom.KeyArrowUp,
	"down":  dom.KeyArrowDown,
	"left":  dom.KeyArrowLeft,
	"right": dom.KeyArrowRight,
}

func (m *Model) updateCaretModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.caret, cmd = m.caret.Update(msg)
	return cmd
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+q":
		m.Close()
		return tea.Quit
	case "ctrl+s":
		return m.saveCmd()
	}
	if m.menu.State().IsVisible() {
		m.dispatchMenuKey(keyMsg)
		return nil
	}
	m.handleEditKey(keyMsg)
	return nil
}

// dispatchMenuKey forwards a key to the document while the menu is open.
// Printable keys go through as typed for type-ahead.
func (m *Model) dispatchMenuKey(msg tea.KeyMsg) {
	key, ok := menuKeys[msg.String()]
	if !ok {
		if msg.Type != tea.KeyRunes && msg.Type != tea.KeySpace {
			return
		}
		key = string(msg.Runes)
		if msg.Type == tea.KeySpace {
			key = " "
		}
		if utf8.RuneCountInString(key) != 1 {
			return
		}
	}
	m.doc.Dispatch(dom.KeyEvent(key))
}

func (m *Model) handleEditKey(msg tea.KeyMsg) {
	if msg.Paste && len(msg.Runes) > 0 {
		if m.buf.Insert(normalizeNewlines(string(msg.Runes))) {
			m.afterEdit(true)
		}
		return
	}
	edited := false
	moved := false
	switch msg.String() {
	case "f10", "ctrl+o":
		m.openMenuAtCaret()
		return
	case "ctrl+z":
		m.menu.Undo()
		return
	case "ctrl+y":
		m.menu.Redo()
		return
	case "ctrl+a":
		m.runAction(menu.ActionSelectAll)
		return
	case "ctrl+c":
		m.runAction(menu.ActionCopy)
		return
	case "ctrl+x":
		m.runAction(menu.ActionCut)
		return
	case "ctrl+v":
		m.runAction(menu.ActionPaste)
		return
	case "esc":
		moved = m.buf.ClearSelection()
	case "enter":
		edited = m.buf.Newline()
	case "backspace":
		edited = m.buf.Backspace()
	case "delete":
		edited = m.buf.Delete()
	case "ctrl+w":
		edited = m.buf.DeleteWordBackward()
	case "tab":
		edited = m.buf.Insert("\t")
	case "left", "shift+left":
		moved = m.buf.MoveLeft(msg.String() == "shift+left")
	case "right", "shift+right":
		moved = m.buf.MoveRight(msg.String() == "shift+right")
	case "up", "shift+up":
		moved = m.buf.MoveUp(msg.String() == "shift+up")
	case "down", "shift+down":
		moved = m.buf.MoveDown(msg.String() == "shift+down")
	case "home", "shift+home":
		moved = m.buf.MoveHome(msg.String() == "shift+home")
	case "end", "shift+end":
		moved = m.buf.MoveEnd(msg.String() == "shift+end")
	case "pgup":
		moved = m.buf.Scroll(-m.textHeight(), m.textHeight())
	case "pgdown":
		moved = m.buf.Scroll(m.textHeight(), m.textHeight())
	default:
		switch msg.Type {
		case tea.KeyRunes:
			edited = m.buf.Insert(string(msg.Runes))
		case tea.KeySpace:
			edited = m.buf.Insert(" ")
		}
	}
	switch {
	case edited:
		m.errMsg = ""
		m.afterEdit(true)
	case moved:
		m.buf.EnsureCursorVisible(m.textHeight())
		m.caretDirty = true
	}
}

// openMenuAtCaret opens the context menu from the keyboard, anchored at the
// caret cell as a right click there would be.
func (m *Model) openMenuAtCaret() {
	x, y, ok := m.buf.CellOf(m.buf.Cursor(), m.textHeight())
	if !ok {
		x, y = 0, 0
	}
	m.surface.Dispatch(dom.PointerEvent(dom.EventContextMenu, x, y))
}
