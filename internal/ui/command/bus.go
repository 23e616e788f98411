package command

import (
	"github.com/atomicstack/editmenu/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Handler performs the side effect of a request off the update goroutine.
type Handler func() (info string, err error)

// Request encapsulates an action invocation.
type Request struct {
	ID      string
	Label   string
	Handler Handler
}

// Result is delivered back to the program once a handler returns.
type Result struct {
	ID    string
	Label string
	Info  string
	Err   error
}

// Bus coordinates the execution of menu actions.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps a handler into a Bubble Tea command while emitting trace logs.
// Handlers that report neither info nor an error produce no message.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		info, err := req.Handler()
		if info == "" && err == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		kind := "ok"
		if err != nil {
			kind = "error"
		}
		events.Command.Result(req.ID, req.Label, kind)
		return Result{ID: req.ID, Label: req.Label, Info: info, Err: err}
	}
}
