package menu

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/editmenu/internal/dom"
	"github.com/atomicstack/editmenu/internal/logging"
	"github.com/atomicstack/editmenu/internal/loop"
)

const (
	testRowHeight = 20
	testSepHeight = 10
	testMenuWidth = 200
	testSubWidth  = 150
)

type fakeContent struct {
	text      string
	restored  []Snapshot
	onRestore func()
}

func (f *fakeContent) Snapshot() Snapshot { return Snapshot(f.text) }

func (f *fakeContent) Restore(s Snapshot) {
	f.text = string(s)
	f.restored = append(f.restored, s)
	if f.onRestore != nil {
		f.onRestore()
	}
}

type fakeSelection struct{ collapsed bool }

func (f *fakeSelection) Collapsed() bool { return f.collapsed }

type fakeClipboard struct {
	text  string
	err   error
	reads int
}

func (f *fakeClipboard) ReadText() (string, error) {
	f.reads++
	return f.text, f.err
}

type fixture struct {
	doc         *dom.Document
	sched       *loop.Manual
	surface     *dom.Element
	selMenu     *dom.Element
	ctl         *Controller
	content     *fakeContent
	sel         *fakeSelection
	clip        *fakeClipboard
	ran         []string
	transitions []*dom.Element
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWith(t, DefaultItems())
}

func newFixtureWith(t *testing.T, items []Item) *fixture {
	t.Helper()
	return buildFixture(t, items, nil)
}

// heldGo keeps background continuations until the test releases them, so
// completions can be delivered out of order.
type heldGo struct {
	*loop.Manual
	held []func()
}

func (h *heldGo) Go(work func() func()) {
	h.held = append(h.held, work())
}

func buildFixture(t *testing.T, items []Item, sched loop.Scheduler) *fixture {
	t.Helper()
	logging.Configure(filepath.Join(t.TempDir(), "editmenu.log"))
	t.Cleanup(func() { logging.Configure("") })

	f := &fixture{
		doc:     dom.New(800, 600),
		sched:   loop.NewManual(),
		content: &fakeContent{text: "a"},
		sel:     &fakeSelection{collapsed: true},
		clip:    &fakeClipboard{text: "clip"},
	}
	f.surface = f.doc.CreateElement("div", DefaultSurfaceID)
	f.surface.SetSize(800, 600)
	f.doc.Body().AppendChild(f.surface)
	f.selMenu = f.doc.CreateElement("div", DefaultSelectionMenuID)
	f.selMenu.SetSize(100, testRowHeight)
	f.selMenu.SetDisplay(false)
	f.doc.Body().AppendChild(f.selMenu)

	cfg := DefaultConfig()
	root := Build(f.doc, f.doc.Body(), BuildRegistry(items), cfg)
	layoutList(root, testMenuWidth)
	root.SetTransition(150 * time.Millisecond)
	f.doc.SetTransitionHook(func(el *dom.Element) {
		f.transitions = append(f.transitions, el)
	})

	if sched == nil {
		sched = f.sched
	}
	ctl, err := New(f.doc, cfg, Host{
		Scheduler: sched,
		Content:   f.content,
		Selection: f.sel,
		Clipboard: f.clip,
		Run:       func(action string) { f.ran = append(f.ran, action) },
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	f.ctl = ctl
	return f
}

// layoutList stacks rows vertically the way a browser would lay out the
// menu's block children.
func layoutList(list *dom.Element, width int) {
	y := 0
	for _, child := range list.Children() {
		h := testRowHeight
		if child.HasClass(ClassSeparator) {
			h = testSepHeight
		}
		child.SetPosition(0, y)
		child.SetSize(width, h)
		y += h
		if sub := child.ChildWithClass(DefaultSubmenuClass); sub != nil {
			layoutList(sub, testSubWidth)
		}
	}
	list.SetSize(width, y)
}

// endTransitions completes every transition started so far.
func (f *fixture) endTransitions() {
	pending := f.transitions
	f.transitions = nil
	for _, el := range pending {
		el.Dispatch(dom.NewEvent(dom.EventTransitionEnd))
	}
}

// open shows the menu at (x, y) without refreshing item state and lets the
// reveal frame run.
func (f *fixture) open(x, y int) {
	f.ctl.ShowMenu(dom.PointerEvent(dom.EventContextMenu, x, y))
	f.sched.Frame()
}

func (f *fixture) item(t *testing.T, action string) *dom.Element {
	t.Helper()
	el, ok := f.ctl.Items().Get(action)
	if !ok {
		t.Fatalf("item %q not cached", action)
	}
	return el
}

func (f *fixture) menu() *dom.Element {
	return f.ctl.Element()
}
