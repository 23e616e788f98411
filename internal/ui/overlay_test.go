package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestCompositeRow(t *testing.T) {
	tests := []struct {
		name  string
		bg    string
		fg    string
		x     int
		width int
		want  string
	}{
		{name: "middle", bg: "abcdef", fg: "XY", x: 2, width: 10, want: "abXYef"},
		{name: "past background end", bg: "ab", fg: "XY", x: 4, width: 10, want: "ab  XY"},
		{name: "clipped right", bg: "abcdef", fg: "XYZ", x: 4, width: 6, want: "abcdXY"},
		{name: "off canvas", bg: "abc", fg: "XY", x: 8, width: 6, want: "abc"},
		{name: "styled background", bg: "\x1b[31mabcdef\x1b[0m", fg: "XY", x: 1, width: 10, want: "aXYdef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ansi.Strip(compositeRow(tt.bg, tt.fg, tt.x, tt.width))
			if got != tt.want {
				t.Fatalf("compositeRow = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOverlayClipsRows(t *testing.T) {
	base := []string{"....", "....", "...."}
	got := overlay(base, "AB\nCD\nEF", 1, 1, 4)
	want := []string{"....", ".AB.", ".CD."}
	for i := range want {
		if ansi.Strip(got[i]) != want[i] {
			t.Fatalf("row %d = %q, want %q", i, ansi.Strip(got[i]), want[i])
		}
	}
}

func TestFadeKeepsText(t *testing.T) {
	box := "\x1b[1mCut\x1b[0m\nCopy"
	got := fade(box)
	if ansi.Strip(got) != "Cut\nCopy" {
		t.Fatalf("fade changed the text: %q", ansi.Strip(got))
	}
	if strings.Count(got, "\n") != 1 {
		t.Fatalf("fade changed the row count")
	}
}
