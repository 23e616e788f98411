package menu

import (
	"testing"

	"github.com/atomicstack/editmenu/internal/dom"
)

func (f *fixture) key(key string) *dom.Event {
	ev := dom.KeyEvent(key)
	f.doc.Dispatch(ev)
	return ev
}

func focusedAction(f *fixture) string {
	if f.ctl.Focused() == nil {
		return ""
	}
	_, action := actionOf(f.ctl.Focused())
	return action
}

func TestArrowKeysMoveFocusOverEnabledRows(t *testing.T) {
	f := newFixture(t)
	f.surface.Dispatch(dom.PointerEvent(dom.EventContextMenu, 100, 100))
	f.sched.Frame()

	// Without a selection or history only paste and select all are enabled.
	want := []string{ActionPaste, ActionSelectAll, ActionPaste}
	for i, action := range want {
		f.key(dom.KeyArrowDown)
		if got := focusedAction(f); got != action {
			t.Fatalf("step %d: focused %q, want %q", i, got, action)
		}
	}
	f.key(dom.KeyArrowUp)
	if got := focusedAction(f); got != ActionSelectAll {
		t.Fatalf("expected wrap back to select all, got %q", got)
	}
	if !f.item(t, ActionSelectAll).HasClass(ClassFocused) || f.item(t, ActionPaste).HasClass(ClassFocused) {
		t.Fatalf("focused class not moved with focus")
	}
}

func TestEnterActivatesFocusedRow(t *testing.T) {
	f := newFixture(t)
	f.open(100, 100)
	f.key(dom.KeyArrowDown)
	ev := f.key(dom.KeyEnter)
	if !ev.DefaultPrevented() {
		t.Fatalf("expected enter consumed")
	}
	if len(f.ran) != 1 || f.ran[0] != ActionCut {
		t.Fatalf("expected cut dispatched, got %v", f.ran)
	}
	if f.ctl.State().IsVisible() || f.ctl.Focused() != nil {
		t.Fatalf("expected menu hidden and focus cleared")
	}
}

func TestArrowRightEntersSubmenu(t *testing.T) {
	f := newFixture(t)
	f.open(100, 100)
	trigger, sub, _ := translatePair(t, f)

	f.key(dom.KeyArrowUp)
	if f.ctl.Focused() != trigger {
		t.Fatalf("expected translate focused, got %q", focusedAction(f))
	}
	f.key(dom.KeyArrowRight)
	if !isOpen(trigger, sub) {
		t.Fatalf("expected submenu open")
	}
	if got := focusedAction(f); got != "translate:en" {
		t.Fatalf("expected first language focused, got %q", got)
	}
	f.key(dom.KeyArrowDown)
	if got := focusedAction(f); got != "translate:es" {
		t.Fatalf("expected focus to stay inside the submenu, got %q", got)
	}
	f.key(dom.KeyArrowLeft)
	if f.ctl.Focused() != trigger || sub.Displayed() {
		t.Fatalf("expected submenu closed and focus back on its trigger")
	}
}

func TestTypeAheadJumpsToLabel(t *testing.T) {
	f := newFixture(t)
	f.open(100, 100)

	f.key("s")
	if got := focusedAction(f); got != ActionSelectAll {
		t.Fatalf("expected prefix match on select all, got %q", got)
	}
	f.key("e")
	f.key("a")
	if got := focusedAction(f); got != ActionSearchWithGoogle {
		t.Fatalf("expected accumulated query to reach search, got %q", got)
	}

	f.sched.Advance(typeAheadReset)
	f.key("t")
	f.key("l")
	if got := focusedAction(f); got != ActionTranslate {
		t.Fatalf("expected fuzzy match on translate, got %q", got)
	}
}

func TestKeysIgnoredWhileHidden(t *testing.T) {
	f := newFixture(t)
	ev := f.key(dom.KeyArrowDown)
	if ev.DefaultPrevented() || f.ctl.Focused() != nil {
		t.Fatalf("keys must pass through while the menu is closed")
	}
}

func TestBestLabelMatch(t *testing.T) {
	doc := dom.New(80, 24)
	labels := []string{"Paste", "Select All", "Search with Google", "Translate"}
	rows := make([]*dom.Element, len(labels))
	for i, label := range labels {
		rows[i] = doc.CreateElement("li", "")
		rows[i].SetText(label)
	}

	tests := []struct {
		query string
		want  int
	}{
		{query: "s", want: 1},
		{query: "SEA", want: 2},
		{query: "tl", want: 3},
		{query: "TL", want: 3},
		{query: "pst", want: 0},
		{query: "zz", want: -1},
	}
	for _, tt := range tests {
		if got := bestLabelMatch(tt.query, rows); got != tt.want {
			t.Fatalf("bestLabelMatch(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}
