package ui

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/atomicstack/editmenu/internal/backend"
	"github.com/atomicstack/editmenu/internal/dom"
	"github.com/atomicstack/editmenu/internal/editor"
	"github.com/atomicstack/editmenu/internal/loop"
	"github.com/atomicstack/editmenu/internal/menu"
	"github.com/atomicstack/editmenu/internal/theme"
	"github.com/atomicstack/editmenu/internal/ui/command"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// TransitionDuration is how long the menu fades in and out.
	TransitionDuration = 120 * time.Millisecond

	// Terminal cells are much coarser than pixels.
	cellPointerOffset = 2
	cellMargin        = 1
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Scheduler is the loop the model drives: loop.Program in the real program,
// a wrapped loop.Manual in tests.
type Scheduler interface {
	loop.Scheduler
	Handle(tea.Msg) bool
	Drain()
}

// Options configures a Model.
type Options struct {
	Path      string
	Text      string
	Width     int
	Height    int
	Menu      menu.Config
	Scheduler Scheduler
	Clipboard Clipboard
	Opener    func(url string) error
	Watcher   *backend.Watcher
	Verbose   bool
}

// Model implements the Bubble Tea model for the editor and its context menu.
type Model struct {
	doc     *dom.Document
	surface *dom.Element
	selMenu *dom.Element
	menu    *menu.Controller
	cfg     menu.Config

	sched       Scheduler
	transitions map[*dom.Element]loop.Handle

	buf   *editor.Buffer
	path  string
	saved string

	clipboard Clipboard
	opener    func(string) error
	bus       *command.Bus
	backend   *backend.Watcher

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	dragging    bool
	verbose     bool

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	caret        cursor.Model
	caretDirty   bool
	caretFocused bool

	pending  []tea.Cmd
	handlers map[reflect.Type]msgHandler
}

// NewModel builds the element tree, mounts the context menu over the editor
// surface and returns the model.
func NewModel(opts Options) (*Model, error) {
	if opts.Scheduler == nil {
		return nil, errors.New("ui: scheduler required")
	}
	m := &Model{
		sched:       opts.Scheduler,
		transitions: make(map[*dom.Element]loop.Handle),
		buf:         editor.New(opts.Text),
		path:        opts.Path,
		saved:       opts.Text,
		clipboard:   opts.Clipboard,
		opener:      opts.Opener,
		bus:         command.New(),
		backend:     opts.Watcher,
		verbose:     opts.Verbose,
		width:       defaultWidth,
		height:      defaultHeight,
	}
	if m.clipboard == nil {
		m.clipboard = SystemClipboard{}
	}
	if m.opener == nil {
		m.opener = OpenURL
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}

	cfg := opts.Menu
	if cfg.PointerOffsetX == 0 {
		cfg.PointerOffsetX = cellPointerOffset
	}
	if cfg.Margin == 0 {
		cfg.Margin = cellMargin
	}
	m.cfg = cfg.WithDefaults()
	if err := m.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("menu config: %w", err)
	}

	m.buildDocument()
	ctl, err := menu.New(m.doc, m.cfg, menu.Host{
		Scheduler: m.sched,
		Content:   bufferContent{m: m},
		Selection: bufferSelection{buf: m.buf},
		Clipboard: m.clipboard,
		Run:       m.runAction,
	})
	if err != nil {
		return nil, err
	}
	m.menu = ctl

	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Text != nil {
		c.TextStyle = styles.Text.Copy()
	}
	c.SetChar(" ")
	m.caret = c
	m.registerHandlers()
	return m, nil
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	m.caretFocused = true
	if cmd := m.caret.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if m.sched.Handle(msg) {
		return m, m.finishUpdate(cmds)
	}
	if cmd := m.updateCaretModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(command.Result{}):    m.handleActionResultMsg,
		reflect.TypeOf(savedMsg{}):          m.handleSavedMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// finishUpdate runs work posted during the update, then collects commands
// queued by menu actions.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	m.sched.Drain()
	m.syncSelectionMenu()
	if len(m.pending) > 0 {
		cmds = append(cmds, m.pending...)
		m.pending = nil
	}
	if m.caretDirty {
		m.caretDirty = false
		if m.caretFocused {
			m.caret.Blink = false
			if cmd := m.caret.BlinkCmd(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

// Close destroys the menu and cancels outstanding transitions.
func (m *Model) Close() {
	for el, h := range m.transitions {
		loop.Cancel(h)
		delete(m.transitions, el)
	}
	if m.menu != nil {
		m.menu.Destroy()
	}
}

// Menu exposes the mounted context menu.
func (m *Model) Menu() *menu.Controller { return m.menu }

// Buffer exposes the editor buffer.
func (m *Model) Buffer() *editor.Buffer { return m.buf }

// Document exposes the element tree.
func (m *Model) Document() *dom.Document { return m.doc }

// Dirty reports whether the buffer differs from what was last loaded or
// saved.
func (m *Model) Dirty() bool {
	return m.buf.Content() != m.saved
}
