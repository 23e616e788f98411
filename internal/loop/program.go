package loop

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultFrameInterval approximates one display refresh.
const DefaultFrameInterval = 16 * time.Millisecond

// FireMsg is delivered to the bubbletea program when a timer elapses. The
// model hands it back to Program.Handle so the callback runs on the update
// goroutine.
type FireMsg struct {
	ID uint64
}

type postMsg struct {
	fn func()
}

// Program schedules callbacks through a running bubbletea program.
type Program struct {
	frame time.Duration

	mu      sync.Mutex
	send    func(tea.Msg)
	backlog []tea.Msg

	nextID uint64
	tasks  map[uint64]*task
	posted []func()
}

// NewProgram returns a scheduler that is inert until Attach is called.
func NewProgram(frame time.Duration) *Program {
	if frame <= 0 {
		frame = DefaultFrameInterval
	}
	return &Program{frame: frame, tasks: make(map[uint64]*task)}
}

// Attach connects the scheduler to a program's Send function and flushes any
// messages produced before the program started.
func (p *Program) Attach(send func(tea.Msg)) {
	p.mu.Lock()
	p.send = send
	backlog := p.backlog
	p.backlog = nil
	p.mu.Unlock()
	if send == nil || len(backlog) == 0 {
		return
	}
	go func() {
		for _, msg := range backlog {
			send(msg)
		}
	}()
}

// deliver must never be called from the update goroutine with a live
// program: tea.Program.Send blocks until the loop reads the message.
func (p *Program) deliver(msg tea.Msg) {
	p.mu.Lock()
	send := p.send
	if send == nil {
		p.backlog = append(p.backlog, msg)
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()
	send(msg)
}

func (p *Program) track(fn func()) *task {
	p.nextID++
	t := &task{id: p.nextID, fn: fn}
	p.tasks[t.id] = t
	return t
}

func (p *Program) forget(id uint64) {
	delete(p.tasks, id)
}

// After schedules fn on the update goroutine once d has elapsed.
func (p *Program) After(d time.Duration, fn func()) Handle {
	t := p.track(fn)
	id := t.id
	timer := time.AfterFunc(d, func() { p.deliver(FireMsg{ID: id}) })
	return &handle{t: t, stop: timer.Stop, forget: p.forget}
}

// NextFrame schedules fn after one frame interval.
func (p *Program) NextFrame(fn func()) Handle {
	return p.After(p.frame, fn)
}

// Post queues fn to run when the current update finishes (see Drain).
func (p *Program) Post(fn func()) {
	if fn == nil {
		return
	}
	p.posted = append(p.posted, fn)
}

// Go runs work on its own goroutine and delivers the returned continuation
// back to the update goroutine.
func (p *Program) Go(work func() func()) {
	if work == nil {
		return
	}
	go func() {
		if cont := work(); cont != nil {
			p.deliver(postMsg{fn: cont})
		}
	}()
}

// Handle consumes scheduler messages. It reports whether msg belonged to the
// scheduler.
func (p *Program) Handle(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case FireMsg:
		t, ok := p.tasks[msg.ID]
		if !ok {
			return true
		}
		delete(p.tasks, msg.ID)
		t.run()
		return true
	case postMsg:
		msg.fn()
		return true
	default:
		return false
	}
}

// Drain runs posted tasks, including those queued by earlier tasks.
func (p *Program) Drain() {
	for len(p.posted) > 0 {
		fn := p.posted[0]
		p.posted = p.posted[1:]
		fn()
	}
}

// Pending reports the number of live timers.
func (p *Program) Pending() int {
	return len(p.tasks)
}
