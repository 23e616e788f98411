package menu

import (
	"testing"

	"github.com/atomicstack/editmenu/internal/dom"
)

func TestPlace(t *testing.T) {
	tests := []struct {
		name              string
		in                Placement
		wantLeft, wantTop int
	}{
		{
			name:     "anchored on first row",
			in:       Placement{PointerX: 100, PointerY: 100, ViewportW: 1024, ViewportH: 768, MenuW: 200, MenuH: 150, AnchorOffset: 10, HasAnchor: true},
			wantLeft: 80,
			wantTop:  90,
		},
		{
			name:     "no actionable row",
			in:       Placement{PointerX: 100, PointerY: 100, ViewportW: 1024, ViewportH: 768, MenuW: 200, MenuH: 150},
			wantLeft: 100,
			wantTop:  100,
		},
		{
			name:     "bottom right corner",
			in:       Placement{PointerX: 1019, PointerY: 763, ViewportW: 1024, ViewportH: 768, MenuW: 200, MenuH: 150, AnchorOffset: 10, HasAnchor: true},
			wantLeft: 1024 - 205,
			wantTop:  768 - 155,
		},
		{
			name:     "bottom right corner without anchor",
			in:       Placement{PointerX: 1019, PointerY: 763, ViewportW: 1024, ViewportH: 768, MenuW: 200, MenuH: 150},
			wantLeft: 1024 - 205,
			wantTop:  768 - 155,
		},
		{
			name:     "top left corner",
			in:       Placement{PointerX: 3, PointerY: 2, ViewportW: 1024, ViewportH: 768, MenuW: 200, MenuH: 150, AnchorOffset: 10, HasAnchor: true},
			wantLeft: 5,
			wantTop:  5,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			left, top := Place(tt.in, DefaultPointerOffsetX, DefaultMargin)
			if left != tt.wantLeft || top != tt.wantTop {
				t.Fatalf("Place() = (%d, %d), want (%d, %d)", left, top, tt.wantLeft, tt.wantTop)
			}
		})
	}
}

func TestShowMenuRevealsOnNextFrame(t *testing.T) {
	f := newFixture(t)
	ev := dom.PointerEvent(dom.EventContextMenu, 100, 100)
	f.ctl.ShowMenu(ev)

	if !ev.DefaultPrevented() {
		t.Fatalf("expected native context menu to be suppressed")
	}
	if !f.ctl.State().IsVisible() {
		t.Fatalf("expected state to be visible")
	}
	if !f.menu().Displayed() {
		t.Fatalf("expected menu in layout")
	}
	if f.menu().HasClass(DefaultVisibleClass) {
		t.Fatalf("visible class must wait for the next frame")
	}
	f.sched.Frame()
	if !f.menu().HasClass(DefaultVisibleClass) {
		t.Fatalf("expected visible class after frame")
	}
	b := f.menu().Bounds()
	if b.X != 80 || b.Y != 90 {
		t.Fatalf("expected menu at (80, 90), got (%d, %d)", b.X, b.Y)
	}
}

func TestContextMenuAnchorsOnFirstEnabledRow(t *testing.T) {
	f := newFixture(t)
	f.surface.Dispatch(dom.PointerEvent(dom.EventContextMenu, 100, 100))

	// Collapsed selection disables cut and copy, so paste is the first
	// clickable row: its centre sits 50 below the menu top.
	b := f.menu().Bounds()
	if b.X != 80 || b.Y != 50 {
		t.Fatalf("expected menu at (80, 50), got (%d, %d)", b.X, b.Y)
	}
	paste := f.item(t, ActionPaste).Bounds()
	if !paste.Contains(100, 100) {
		t.Fatalf("expected pointer inside paste row, row is %+v", paste)
	}
}

func TestShowMenuClampsToViewport(t *testing.T) {
	f := newFixture(t)
	f.open(795, 595)
	b := f.menu().Bounds()
	if b.X != 800-testMenuWidth-DefaultMargin {
		t.Fatalf("expected left clamp, got x=%d", b.X)
	}
	if b.Y+b.H != 600-DefaultMargin {
		t.Fatalf("expected bottom edge %d, got %d", 600-DefaultMargin, b.Y+b.H)
	}
}

func TestHideWaitsForTransitionEnd(t *testing.T) {
	f := newFixture(t)
	f.open(100, 100)
	f.transitions = nil

	if !f.ctl.HideMenu() {
		t.Fatalf("expected HideMenu to report an open menu")
	}
	if f.ctl.State().IsVisible() {
		t.Fatalf("expected state hidden immediately")
	}
	if f.menu().HasClass(DefaultVisibleClass) {
		t.Fatalf("expected visible class removed")
	}
	if !f.menu().Displayed() {
		t.Fatalf("menu must stay in layout until the exit transition ends")
	}
	f.endTransitions()
	if f.menu().Displayed() {
		t.Fatalf("expected display none after transitionend")
	}
	rev := f.menu().Revision()
	if f.ctl.HideMenu() {
		t.Fatalf("second hide should be a no-op")
	}
	if got := f.menu().Revision(); got != rev {
		t.Fatalf("second hide mutated the menu (revision %d -> %d)", rev, got)
	}
}

func TestHideBeforeRevealSkipsTransition(t *testing.T) {
	f := newFixture(t)
	f.ctl.ShowMenu(dom.PointerEvent(dom.EventContextMenu, 100, 100))
	f.ctl.HideMenu()
	if f.menu().Displayed() {
		t.Fatalf("menu never revealed should leave layout at once")
	}
	f.sched.Frame()
	if f.menu().HasClass(DefaultVisibleClass) {
		t.Fatalf("stale reveal frame re-added the visible class")
	}
}

func TestReshowDuringExitTransition(t *testing.T) {
	f := newFixture(t)
	f.open(100, 100)
	f.ctl.HideMenu()
	f.open(300, 200)
	f.endTransitions()

	if !f.menu().Displayed() || !f.menu().HasClass(DefaultVisibleClass) {
		t.Fatalf("late transitionend hid a re-shown menu")
	}
	if got := f.menu().ListenerCount(dom.EventTransitionEnd); got != 0 {
		t.Fatalf("expected pending hide listener dropped, got %d", got)
	}
}

func TestSelectionMenuHiddenWhileOpen(t *testing.T) {
	tests := []struct {
		name        string
		collapseBy  bool
		wantRestore bool
	}{
		{name: "selection kept", collapseBy: false, wantRestore: true},
		{name: "selection cleared", collapseBy: true, wantRestore: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.sel.collapsed = false
			f.selMenu.SetDisplay(true)

			f.open(100, 100)
			if f.selMenu.Displayed() {
				t.Fatalf("selection menu should hide while the context menu is open")
			}
			f.sel.collapsed = tt.collapseBy
			f.ctl.HideMenu()
			f.endTransitions()
			if f.selMenu.Displayed() != tt.wantRestore {
				t.Fatalf("selection menu displayed=%v, want %v", f.selMenu.Displayed(), tt.wantRestore)
			}
		})
	}
}

func TestPlaceSubmenuFlipsLeftAtRightEdge(t *testing.T) {
	f := newFixture(t)
	f.open(700, 100)
	trigger := f.item(t, ActionTranslate)
	if !f.ctl.Hover().OpenNow(trigger) {
		t.Fatalf("expected submenu to open")
	}
	sub := trigger.ChildWithClass(DefaultSubmenuClass)
	mb := f.menu().Bounds()
	sb := sub.Bounds()
	if sb.X+sb.W != mb.X {
		t.Fatalf("expected submenu flush left of menu at %d, got %+v", mb.X, sb)
	}
	if sb.Y != trigger.Bounds().Y {
		t.Fatalf("expected submenu aligned with trigger row, got %+v", sb)
	}
}
