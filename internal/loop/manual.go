package loop

import (
	"sort"
	"time"
)

// Manual is a deterministic scheduler driven explicitly by tests.
type Manual struct {
	now    time.Duration
	seq    uint64
	timers []*manualTimer
	frames []*task
	posted []func()
}

type manualTimer struct {
	at  time.Duration
	seq uint64
	t   *task
}

// NewManual returns a manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// Now returns the virtual time elapsed since creation.
func (m *Manual) Now() time.Duration {
	return m.now
}

func (m *Manual) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &task{id: m.seq, fn: fn}
	m.timers = append(m.timers, &manualTimer{at: m.now + d, seq: m.seq, t: t})
	return &handle{t: t, forget: m.forgetTimer}
}

func (m *Manual) NextFrame(fn func()) Handle {
	m.seq++
	t := &task{id: m.seq, fn: fn}
	m.frames = append(m.frames, t)
	return &handle{t: t, forget: m.forgetFrame}
}

func (m *Manual) Post(fn func()) {
	if fn == nil {
		return
	}
	m.posted = append(m.posted, fn)
}

// Go runs work synchronously and posts its continuation.
func (m *Manual) Go(work func() func()) {
	if work == nil {
		return
	}
	if cont := work(); cont != nil {
		m.Post(cont)
	}
}

func (m *Manual) forgetTimer(id uint64) {
	for i, tm := range m.timers {
		if tm.t.id == id {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return
		}
	}
}

func (m *Manual) forgetFrame(id uint64) {
	for i, t := range m.frames {
		if t.id == id {
			m.frames = append(m.frames[:i], m.frames[i+1:]...)
			return
		}
	}
}

// Drain runs posted tasks until none remain.
func (m *Manual) Drain() {
	for len(m.posted) > 0 {
		fn := m.posted[0]
		m.posted = m.posted[1:]
		fn()
	}
}

// Frame runs the frame callbacks requested so far, then drains posted tasks.
func (m *Manual) Frame() {
	frames := m.frames
	m.frames = nil
	for _, t := range frames {
		t.run()
	}
	m.Drain()
}

// Advance moves virtual time forward by d, firing due timers in order.
// Pending frames run first, as a real display would paint before time passes.
func (m *Manual) Advance(d time.Duration) {
	m.Drain()
	m.Frame()
	target := m.now + d
	for {
		next := m.nextDue(target)
		if next == nil {
			break
		}
		m.now = next.at
		m.forgetTimer(next.t.id)
		next.t.run()
		m.Drain()
		m.Frame()
	}
	m.now = target
}

func (m *Manual) nextDue(limit time.Duration) *manualTimer {
	if len(m.timers) == 0 {
		return nil
	}
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].at == m.timers[j].at {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].at < m.timers[j].at
	})
	if m.timers[0].at > limit {
		return nil
	}
	return m.timers[0]
}

// PendingTimers reports timers that have not fired or been cancelled.
func (m *Manual) PendingTimers() int {
	return len(m.timers)
}

// PendingFrames reports queued frame callbacks.
func (m *Manual) PendingFrames() int {
	return len(m.frames)
}
