package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const resetSequence = "\x1b[0m"

// overlay composites box onto base with its top-left corner at (x, y).
// Rows and columns outside the canvas are clipped.
func overlay(base []string, box string, x, y, width int) []string {
	for i, line := range strings.Split(box, "\n") {
		row := y + i
		if row < 0 || row >= len(base) {
			continue
		}
		base[row] = compositeRow(base[row], line, x, width)
	}
	return base
}

// compositeRow returns bg with fg drawn over it from column x, keeping the
// styling of the background on both sides.
func compositeRow(bg, fg string, x, width int) string {
	if x >= width {
		return bg
	}
	if x < 0 {
		fg = ansi.TruncateLeft(fg, -x, "")
		x = 0
	}
	fgWidth := ansi.StringWidth(fg)
	if x+fgWidth > width {
		fg = ansi.Truncate(fg, width-x, "")
		fgWidth = ansi.StringWidth(fg)
	}

	var b strings.Builder
	left := ansi.Truncate(bg, x, "")
	b.WriteString(left)
	if w := ansi.StringWidth(left); w < x {
		b.WriteString(strings.Repeat(" ", x-w))
	}
	b.WriteString(resetSequence)
	b.WriteString(fg)
	b.WriteString(resetSequence)

	bgWidth := ansi.StringWidth(bg)
	if right := x + fgWidth; right < bgWidth {
		b.WriteString(ansi.Cut(bg, right, bgWidth))
	}
	return b.String()
}

// fade redraws lines in the fading style, for elements mid-transition.
func fade(box string) string {
	if styles.Fading == nil {
		return box
	}
	lines := strings.Split(box, "\n")
	for i, line := range lines {
		lines[i] = styles.Fading.Render(ansi.Strip(line))
	}
	return strings.Join(lines, "\n")
}
