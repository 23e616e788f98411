package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/editmenu/internal/dom"
	"github.com/atomicstack/editmenu/internal/editor"
	"github.com/atomicstack/editmenu/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

const emptyLineMarker = "~"

// View renders the editor, the status row and every displayed popup.
func (m *Model) View() string {
	height := m.textHeight()
	lines := make([]string, 0, height+1)
	for y := 0; y < height; y++ {
		lines = append(lines, m.renderTextLine(y))
	}
	if m.height > 1 {
		lines = append(lines, m.statusLine())
	}

	if m.selMenu.IsRendered() {
		b := m.selMenu.Bounds()
		lines = overlay(lines, m.renderSelectionMenu(), b.X, b.Y, m.width)
	}
	root := m.menu.Element()
	if root.IsRendered() {
		lines = m.overlayList(lines, root)
		for _, sub := range root.QueryAll(func(e *dom.Element) bool {
			return e.HasClass(m.cfg.SubmenuClass)
		}) {
			if sub.IsRendered() {
				lines = m.overlayList(lines, sub)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (m *Model) overlayList(lines []string, list *dom.Element) []string {
	box := renderList(list)
	if !list.HasClass(m.cfg.VisibleClass) {
		box = fade(box)
	}
	b := list.Bounds()
	return overlay(lines, box, b.X, b.Y, m.width)
}

type runKind int

const (
	runText runKind = iota
	runSelected
)

// renderTextLine draws row y of the text area: the buffer line scrolled into
// view, the selection highlighted and the caret drawn with the cursor model.
func (m *Model) renderTextLine(y int) string {
	idx := m.buf.ViewportOffset + y
	if idx >= m.buf.LineCount() {
		return render(styles.LineNumber, emptyLineMarker)
	}
	line := []rune(m.buf.Line(idx))
	cur := m.buf.Cursor()
	start, end, hasSel := m.buf.Selection()

	var out strings.Builder
	var run strings.Builder
	kind := runText
	flush := func() {
		if run.Len() == 0 {
			return
		}
		style := styles.Text
		if kind == runSelected {
			style = styles.Selection
		}
		out.WriteString(render(style, run.String()))
		run.Reset()
	}

	used := 0
	for col := 0; col <= len(line); col++ {
		p := editor.Pos{Line: idx, Col: col}
		cell := " "
		w := 1
		if col < len(line) {
			r := line[col]
			w = editor.RuneWidth(r)
			cell = string(r)
			if r == '\t' {
				cell = strings.Repeat(" ", editor.TabWidth)
			}
		}
		if used+w > m.width {
			break
		}
		if p == cur {
			flush()
			out.WriteString(m.renderCaret(cell))
			used += w
			continue
		}
		if col == len(line) {
			break
		}
		next := runText
		if hasSel && !p.Before(start) && p.Before(end) {
			next = runSelected
		}
		if next != kind {
			flush()
			kind = next
		}
		run.WriteString(cell)
		used += w
	}
	flush()
	return out.String()
}

func (m *Model) renderCaret(char string) string {
	if char == "" {
		char = " "
	}
	m.caret.SetChar(char)
	base := m.caret.TextStyle.Copy().Inline(true)
	if m.caret.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		return base.Inherit(cursorStyle).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}

func (m *Model) statusLine() string {
	name := "[scratch]"
	if m.path != "" {
		name = filepath.Base(m.path)
	}
	if m.Dirty() {
		name += " [+]"
	}
	cur := m.buf.Cursor()
	left := fmt.Sprintf("%s  Ln %d, Col %d", name, cur.Line+1, cur.Col+1)

	msg, style := "", styles.Info
	if m.errMsg != "" {
		msg, style = m.errMsg, styles.Error
	} else if info := m.currentInfo(); info != "" {
		msg = info
	}
	leftStyle := styles.Status
	if m.Dirty() {
		leftStyle = styles.StatusDirty
	}
	if msg == "" {
		return render(leftStyle, truncateText(left, m.width))
	}
	left = truncateText(left, m.width)
	room := m.width - lipgloss.Width(left) - 2
	if room <= 0 {
		return render(leftStyle, left)
	}
	return render(leftStyle, left) + "  " + render(style, truncateText(msg, room))
}

func (m *Model) renderSelectionMenu() string {
	parts := make([]string, 0, len(m.selMenu.Children()))
	for _, btn := range m.selMenu.Children() {
		parts = append(parts, render(styles.SelectionAction, btn.Text()))
	}
	gap := render(styles.SelectionMenu, "  ")
	edge := render(styles.SelectionMenu, " ")
	return edge + strings.Join(parts, gap) + edge
}

// renderList draws a menu list as a bordered box matching the size layoutList
// gave it.
func renderList(list *dom.Element) string {
	w, _ := list.Size()
	inner := max(w-2, 0)
	children := list.Children()
	rows := make([]string, 0, len(children))
	for _, child := range children {
		if child.HasClass(menu.ClassSeparator) {
			rows = append(rows, render(styles.MenuSeparator, strings.Repeat("─", inner)))
			continue
		}
		label := child.Text()
		right, _ := child.Attr("data-shortcut")
		rightStyle := styles.MenuShortcut
		if child.HasClass(menu.ClassHasSubmenu) {
			right = submenuMarker
		}
		gap := inner - 2 - lipgloss.Width(label) - lipgloss.Width(right)
		if gap < 1 {
			gap = 1
		}
		style := styles.MenuItem
		switch {
		case child.HasClass(menu.ClassDisabled):
			style, rightStyle = styles.MenuDisabled, styles.MenuDisabled
		case child.HasClass(menu.ClassFocused):
			style, rightStyle = styles.MenuFocused, styles.MenuFocused
		case child.HasClass(menu.ClassExpanded):
			style, rightStyle = styles.MenuExpanded, styles.MenuExpanded
		}
		row := render(style, " "+label+strings.Repeat(" ", gap)) + render(rightStyle, right+" ")
		rows = append(rows, row)
	}
	if styles.Menu == nil {
		return strings.Join(rows, "\n")
	}
	return styles.Menu.Render(strings.Join(rows, "\n"))
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncLayout()
	m.doc.Window().Resize(m.width, m.height)
	return nil
}

func render(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

func truncateText(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	if width == 1 {
		return truncate.String(text, 1)
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
