package menu

import (
	"testing"
	"time"

	"github.com/atomicstack/editmenu/internal/dom"
	"github.com/atomicstack/editmenu/internal/loop"
)

func TestDebouncerCollapsesBursts(t *testing.T) {
	m := loop.NewManual()
	calls := 0
	d := NewDebouncer(m, 300*time.Millisecond, func() { calls++ })

	d.Trigger()
	m.Advance(200 * time.Millisecond)
	d.Trigger()
	m.Advance(299 * time.Millisecond)
	if calls != 0 {
		t.Fatalf("fired before the delay elapsed")
	}
	m.Advance(time.Millisecond)
	if calls != 1 {
		t.Fatalf("expected one call, got %d", calls)
	}
	if d.Pending() {
		t.Fatalf("expected nothing pending after firing")
	}
}

func TestDebouncerFlushAndCancel(t *testing.T) {
	m := loop.NewManual()
	calls := 0
	d := NewDebouncer(m, time.Second, func() { calls++ })

	if d.Flush() {
		t.Fatalf("flush with nothing pending should report false")
	}
	d.Trigger()
	if !d.Flush() || calls != 1 {
		t.Fatalf("expected flush to run the pending call, calls=%d", calls)
	}
	d.Trigger()
	d.Cancel()
	m.Advance(2 * time.Second)
	if calls != 1 {
		t.Fatalf("cancelled call ran, calls=%d", calls)
	}
}

func TestSafeElement(t *testing.T) {
	doc := dom.New(10, 10)
	el := doc.CreateElement("div", "x")
	if _, ok := SafeElement(doc, "x"); ok {
		t.Fatalf("detached element should not resolve")
	}
	doc.Body().AppendChild(el)
	if got, ok := SafeElement(doc, "x"); !ok || got != el {
		t.Fatalf("expected attached element to resolve")
	}
	if _, ok := SafeElement(nil, "x"); ok {
		t.Fatalf("nil document should resolve to absent")
	}
	el.Remove()
	if IsValidElement(el) {
		t.Fatalf("removed element should be invalid")
	}
}

func TestGuardRecovers(t *testing.T) {
	var gotOp string
	restore := recovered
	recovered = func(op string, r interface{}) { gotOp = op }
	defer func() { recovered = restore }()

	guard("op", func() { panic("boom") })
	if gotOp != "op" {
		t.Fatalf("expected panic reported for op, got %q", gotOp)
	}
}

func TestListenersTrackAndRemoveAll(t *testing.T) {
	doc := dom.New(10, 10)
	el := doc.CreateElement("div", "x")
	doc.Body().AppendChild(el)

	var l Listeners
	calls := 0
	l.Add(el, dom.EventClick, func(*dom.Event) { calls++ }, dom.Options{})
	l.Add(doc, dom.EventKeyDown, func(*dom.Event) {}, dom.Options{})
	once := l.Add(el, dom.EventTransitionEnd, func(*dom.Event) { calls++ }, dom.Options{Once: true})
	if once == nil || l.Len() != 3 {
		t.Fatalf("expected three tracked registrations, got %d", l.Len())
	}

	el.Dispatch(dom.NewEvent(dom.EventTransitionEnd))
	el.Dispatch(dom.NewEvent(dom.EventTransitionEnd))
	if calls != 1 || l.Len() != 2 {
		t.Fatalf("once listener fired %d times, %d tracked", calls, l.Len())
	}
	if l.Remove(once) {
		t.Fatalf("fired once listener should already be untracked")
	}

	if n := l.RemoveAll(); n != 2 {
		t.Fatalf("expected 2 removed, got %d", n)
	}
	if doc.TotalListeners() != 0 {
		t.Fatalf("expected no listeners left, got %d", doc.TotalListeners())
	}
	if l.RemoveAll() != 0 {
		t.Fatalf("second RemoveAll should be a no-op")
	}
	el.Dispatch(dom.NewEvent(dom.EventClick))
	if calls != 1 {
		t.Fatalf("removed listener still fired")
	}
}
