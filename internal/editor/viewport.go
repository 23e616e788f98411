package editor

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// TabWidth is the number of cells a tab occupies.
const TabWidth = 4

// RuneWidth returns the cell width of r as drawn by the editor.
func RuneWidth(r rune) int {
	if r == '\t' {
		return TabWidth
	}
	return runewidth.RuneWidth(r)
}

// Display returns line i with tabs expanded, as it is drawn.
func (b *Buffer) Display(i int) string {
	line := b.Line(i)
	if !strings.ContainsRune(line, '\t') {
		return line
	}
	return strings.ReplaceAll(line, "\t", strings.Repeat(" ", TabWidth))
}

func (b *Buffer) displayCol(p Pos) int {
	if p.Line < 0 || p.Line >= len(b.lines) {
		return 0
	}
	w := 0
	for _, r := range b.lines[p.Line][:p.Col] {
		w += RuneWidth(r)
	}
	return w
}

// colAt returns the rune offset on line whose cell span covers x. Cells
// past the end of the line map to the line end.
func (b *Buffer) colAt(line, x int) int {
	if line < 0 || line >= len(b.lines) {
		return 0
	}
	w := 0
	for i, r := range b.lines[line] {
		rw := RuneWidth(r)
		if x < w+rw {
			if x-w > rw/2 && rw > 1 {
				return i + 1
			}
			return i
		}
		w += rw
	}
	return len(b.lines[line])
}

// PosFromCell maps a cell relative to the text origin, accounting for the
// viewport offset, to a buffer position.
func (b *Buffer) PosFromCell(x, y int) Pos {
	line := b.ViewportOffset + y
	if line < 0 {
		return Pos{}
	}
	if line >= len(b.lines) {
		last := len(b.lines) - 1
		return Pos{Line: last, Col: b.lineLen(last)}
	}
	if x < 0 {
		x = 0
	}
	return Pos{Line: line, Col: b.colAt(line, x)}
}

// CellOf returns the cell of p relative to the text origin. ok is false when
// p is outside the viewport.
func (b *Buffer) CellOf(p Pos, height int) (x, y int, ok bool) {
	y = p.Line - b.ViewportOffset
	if y < 0 || (height > 0 && y >= height) {
		return 0, 0, false
	}
	return b.displayCol(p), y, true
}

// EnsureCursorVisible adjusts the viewport offset so the caret line is
// within a window of height lines.
func (b *Buffer) EnsureCursorVisible(height int) {
	if height <= 0 {
		b.ViewportOffset = 0
		return
	}
	b.clampOffset(height)
	if b.cursor.Line < b.ViewportOffset {
		b.ViewportOffset = b.cursor.Line
	}
	upper := b.ViewportOffset + height - 1
	if b.cursor.Line > upper {
		b.ViewportOffset = b.cursor.Line - height + 1
	}
	b.clampOffset(height)
}

// Scroll moves the viewport by delta lines without moving the caret. It
// reports whether the offset changed.
func (b *Buffer) Scroll(delta, height int) bool {
	old := b.ViewportOffset
	b.ViewportOffset += delta
	b.clampOffset(height)
	return b.ViewportOffset != old
}

func (b *Buffer) clampOffset(height int) {
	maxOffset := len(b.lines) - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if b.ViewportOffset > maxOffset {
		b.ViewportOffset = maxOffset
	}
	if b.ViewportOffset < 0 {
		b.ViewportOffset = 0
	}
}
