package backend

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Kind represents the type of change emitted by the watcher.
type Kind int

const (
	KindChanged Kind = iota
	KindRemoved
)

func (k Kind) String() string {
	if k == KindRemoved {
		return "removed"
	}
	return "changed"
}

// Event conveys the new file contents or an error.
type Event struct {
	Kind Kind
	Path string
	Data string
	Err  error
}

// DefaultSettle is how long the watcher waits after the last write in a burst
// before reading the file.
const DefaultSettle = 150 * time.Millisecond

// Watcher watches one file for external modification and publishes its new
// contents. The parent directory is watched so editors that replace the file
// by rename are still seen.
type Watcher struct {
	path   string
	settle time.Duration

	fs *fsnotify.Watcher

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching path.
func NewWatcher(path string, settle time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	if settle <= 0 {
		settle = DefaultSettle
	}
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:   abs,
		settle: settle,
		fs:     fsw,
		ctx:    ctx,
		cancel: cancel,
		events: make(chan Event, 16),
	}

	w.wg.Add(1)
	go w.run()

	go func() {
		w.wg.Wait()
		fsw.Close()
		close(w.events)
	}()

	return w, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Events returns a channel of file events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Use Wait if a clean drain is required.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watch loop has exited and the events channel is
// closed. Call after Stop.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) run() {
	defer w.wg.Done()

	throttle := newThrottle(w.settle)
	var settle *time.Timer
	var settleC <-chan time.Time
	pending := KindChanged
	defer func() {
		if settle != nil {
			settle.Stop()
		}
	}()

	for {
		select {
		case <-w.ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			pending = KindChanged
			if ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				pending = KindRemoved
			}
			if settle == nil {
				settle = time.NewTimer(w.settle)
			} else {
				settle.Reset(w.settle)
			}
			settleC = settle.C
		case <-settleC:
			settleC = nil
			if !throttle.wait(w.ctx) || !w.emit(w.read(pending)) {
				return
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			if !w.emit(Event{Path: w.path, Err: err}) {
				return
			}
		}
	}
}

// read loads the file. A remove followed by a re-create within the settle
// window reads as a change.
func (w *Watcher) read(kind Kind) Event {
	data, err := os.ReadFile(w.path)
	switch {
	case err == nil:
		return Event{Kind: KindChanged, Path: w.path, Data: string(data)}
	case errors.Is(err, os.ErrNotExist) && kind == KindRemoved:
		return Event{Kind: KindRemoved, Path: w.path}
	default:
		return Event{Kind: kind, Path: w.path, Err: err}
	}
}

func (w *Watcher) emit(ev Event) bool {
	select {
	case <-w.ctx.Done():
		return false
	case w.events <- ev:
		return true
	}
}
