// Package editor holds the text buffer behind the editable surface: rune
// lines, a caret, a selection anchor and the vertical viewport.
package editor

import (
	"strings"
	"unicode"
)

// Pos is a caret position: a line index and a rune offset within the line.
type Pos struct {
	Line int
	Col  int
}

// Before reports whether p sorts before o.
func (p Pos) Before(o Pos) bool {
	if p.Line != o.Line {
		return p.Line < o.Line
	}
	return p.Col < o.Col
}

// Buffer is a multi-line text buffer with a selection. The selection runs
// between the anchor and the cursor; it is collapsed when they coincide.
type Buffer struct {
	lines  [][]rune
	cursor Pos
	anchor Pos

	// want is the display column vertical moves aim for.
	want int

	ViewportOffset int
}

// New returns a buffer holding text with the caret at the start.
func New(text string) *Buffer {
	b := &Buffer{}
	b.SetContent(text)
	b.cursor, b.anchor = Pos{}, Pos{}
	return b
}

// Content returns the buffer text.
func (b *Buffer) Content() string {
	var sb strings.Builder
	for i, line := range b.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// SetContent replaces the text, keeping the caret as close to where it was
// as the new text allows. The selection is collapsed.
func (b *Buffer) SetContent(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	b.lines = make([][]rune, len(parts))
	for i, part := range parts {
		b.lines[i] = []rune(part)
	}
	b.cursor = b.clamp(b.cursor)
	b.anchor = b.cursor
}

// LineCount returns the number of lines; never less than one.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns line i as a string, or "" when out of range.
func (b *Buffer) Line(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return string(b.lines[i])
}

func (b *Buffer) lineLen(i int) int {
	if i < 0 || i >= len(b.lines) {
		return 0
	}
	return len(b.lines[i])
}

func (b *Buffer) clamp(p Pos) Pos {
	if p.Line < 0 {
		return Pos{}
	}
	if p.Line >= len(b.lines) {
		last := len(b.lines) - 1
		return Pos{Line: last, Col: b.lineLen(last)}
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if n := b.lineLen(p.Line); p.Col > n {
		p.Col = n
	}
	return p
}

// Cursor returns the caret position.
func (b *Buffer) Cursor() Pos {
	return b.cursor
}

// SetCursor moves the caret. With extend the anchor stays put and the
// selection grows; otherwise the selection collapses at p.
func (b *Buffer) SetCursor(p Pos, extend bool) {
	b.cursor = b.clamp(p)
	if !extend {
		b.anchor = b.cursor
	}
	b.want = b.displayCol(b.cursor)
}

// Selection returns the ordered selection bounds and whether it is non-empty.
func (b *Buffer) Selection() (start, end Pos, ok bool) {
	start, end = b.anchor, b.cursor
	if end.Before(start) {
		start, end = end, start
	}
	return start, end, start != end
}

// Collapsed reports whether nothing is selected.
func (b *Buffer) Collapsed() bool {
	return b.anchor == b.cursor
}

// SelectedText returns the selected text, or "".
func (b *Buffer) SelectedText() string {
	start, end, ok := b.Selection()
	if !ok {
		return ""
	}
	if start.Line == end.Line {
		return string(b.lines[start.Line][start.Col:end.Col])
	}
	var sb strings.Builder
	sb.WriteString(string(b.lines[start.Line][start.Col:]))
	for i := start.Line + 1; i < end.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[i]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[end.Line][:end.Col]))
	return sb.String()
}

// SelectAll selects the whole buffer, leaving the caret at the end.
func (b *Buffer) SelectAll() {
	last := len(b.lines) - 1
	b.anchor = Pos{}
	b.cursor = Pos{Line: last, Col: b.lineLen(last)}
	b.want = b.displayCol(b.cursor)
}

// ClearSelection collapses the selection at the caret.
func (b *Buffer) ClearSelection() bool {
	if b.Collapsed() {
		return false
	}
	b.anchor = b.cursor
	return true
}

// DeleteSelection removes the selected text. It reports whether anything
// was removed.
func (b *Buffer) DeleteSelection() bool {
	start, end, ok := b.Selection()
	if !ok {
		return false
	}
	head := b.lines[start.Line][:start.Col]
	tail := b.lines[end.Line][end.Col:]
	joined := make([]rune, 0, len(head)+len(tail))
	joined = append(joined, head...)
	joined = append(joined, tail...)
	lines := make([][]rune, 0, len(b.lines)-(end.Line-start.Line))
	lines = append(lines, b.lines[:start.Line]...)
	lines = append(lines, joined)
	lines = append(lines, b.lines[end.Line+1:]...)
	b.lines = lines
	b.SetCursor(start, false)
	return true
}

// Insert types text at the caret, replacing any selection. Newlines split
// the line.
func (b *Buffer) Insert(text string) bool {
	if text == "" {
		return false
	}
	b.DeleteSelection()
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	cur := b.cursor
	line := b.lines[cur.Line]
	head := append([]rune(nil), line[:cur.Col]...)
	tail := append([]rune(nil), line[cur.Col:]...)

	inserted := make([][]rune, len(parts))
	for i, part := range parts {
		inserted[i] = []rune(part)
	}
	inserted[0] = append(head, inserted[0]...)
	last := len(inserted) - 1
	col := len(inserted[last])
	inserted[last] = append(inserted[last], tail...)

	lines := make([][]rune, 0, len(b.lines)+last)
	lines = append(lines, b.lines[:cur.Line]...)
	lines = append(lines, inserted...)
	lines = append(lines, b.lines[cur.Line+1:]...)
	b.lines = lines
	b.SetCursor(Pos{Line: cur.Line + last, Col: col}, false)
	return true
}

// Newline splits the line at the caret.
func (b *Buffer) Newline() bool {
	return b.Insert("\n")
}

// Backspace deletes the selection or the rune before the caret, joining
// lines at a line start.
func (b *Buffer) Backspace() bool {
	if b.DeleteSelection() {
		return true
	}
	cur := b.cursor
	switch {
	case cur.Col > 0:
		b.anchor = Pos{Line: cur.Line, Col: cur.Col - 1}
	case cur.Line > 0:
		b.anchor = Pos{Line: cur.Line - 1, Col: b.lineLen(cur.Line - 1)}
	default:
		return false
	}
	return b.DeleteSelection()
}

// Delete deletes the selection or the rune under the caret.
func (b *Buffer) Delete() bool {
	if b.DeleteSelection() {
		return true
	}
	cur := b.cursor
	switch {
	case cur.Col < b.lineLen(cur.Line):
		b.anchor = Pos{Line: cur.Line, Col: cur.Col + 1}
	case cur.Line < len(b.lines)-1:
		b.anchor = Pos{Line: cur.Line + 1}
	default:
		return false
	}
	return b.DeleteSelection()
}

// DeleteWordBackward deletes the word preceding the caret on its line.
func (b *Buffer) DeleteWordBackward() bool {
	if b.DeleteSelection() {
		return true
	}
	cur := b.cursor
	if cur.Col == 0 {
		return b.Backspace()
	}
	runes := b.lines[cur.Line]
	i := cur.Col
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	b.anchor = Pos{Line: cur.Line, Col: i}
	return b.DeleteSelection()
}

// MoveLeft moves the caret one rune left, wrapping to the previous line.
// Without extend a selection collapses to its start instead.
func (b *Buffer) MoveLeft(extend bool) bool {
	if start, _, ok := b.Selection(); ok && !extend {
		b.SetCursor(start, false)
		return true
	}
	cur := b.cursor
	switch {
	case cur.Col > 0:
		cur.Col--
	case cur.Line > 0:
		cur = Pos{Line: cur.Line - 1, Col: b.lineLen(cur.Line - 1)}
	default:
		return false
	}
	b.SetCursor(cur, extend)
	return true
}

// MoveRight moves the caret one rune right, wrapping to the next line.
func (b *Buffer) MoveRight(extend bool) bool {
	if _, end, ok := b.Selection(); ok && !extend {
		b.SetCursor(end, false)
		return true
	}
	cur := b.cursor
	switch {
	case cur.Col < b.lineLen(cur.Line):
		cur.Col++
	case cur.Line < len(b.lines)-1:
		cur = Pos{Line: cur.Line + 1}
	default:
		return false
	}
	b.SetCursor(cur, extend)
	return true
}

// MoveUp moves the caret to the previous line, keeping its display column.
func (b *Buffer) MoveUp(extend bool) bool {
	if b.cursor.Line == 0 {
		return b.MoveHome(extend)
	}
	return b.moveVertical(-1, extend)
}

// MoveDown moves the caret to the next line, keeping its display column.
func (b *Buffer) MoveDown(extend bool) bool {
	if b.cursor.Line >= len(b.lines)-1 {
		return b.MoveEnd(extend)
	}
	return b.moveVertical(1, extend)
}

func (b *Buffer) moveVertical(delta int, extend bool) bool {
	want := b.want
	line := b.cursor.Line + delta
	b.cursor = Pos{Line: line, Col: b.colAt(line, want)}
	if !extend {
		b.anchor = b.cursor
	}
	b.want = want
	return true
}

// MoveHome moves the caret to the start of its line.
func (b *Buffer) MoveHome(extend bool) bool {
	if b.cursor.Col == 0 && (extend || b.Collapsed()) {
		return false
	}
	b.SetCursor(Pos{Line: b.cursor.Line}, extend)
	return true
}

// MoveEnd moves the caret to the end of its line.
func (b *Buffer) MoveEnd(extend bool) bool {
	end := b.lineLen(b.cursor.Line)
	if b.cursor.Col == end && (extend || b.Collapsed()) {
		return false
	}
	b.SetCursor(Pos{Line: b.cursor.Line, Col: end}, extend)
	return true
}
