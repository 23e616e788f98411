package ui

import (
	"fmt"
	"path/filepath"

	"github.com/atomicstack/editmenu/internal/backend"
	"github.com/atomicstack/editmenu/internal/logging/events"
	"github.com/atomicstack/editmenu/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent reloads the buffer after an external write. Unsaved edits
// are never overwritten; the user is told instead.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Err != nil {
		m.setError(fmt.Errorf("watch %s: %w", filepath.Base(evt.Path), evt.Err))
		return
	}
	name := filepath.Base(evt.Path)
	switch evt.Kind {
	case backend.KindRemoved:
		m.setInfo(fmt.Sprintf("%s was removed on disk", name))
	case backend.KindChanged:
		if evt.Data == m.buf.Content() {
			m.saved = evt.Data
			return
		}
		if m.Dirty() {
			m.setInfo(fmt.Sprintf("%s changed on disk; keeping unsaved edits", name))
			return
		}
		m.buf.SetContent(evt.Data)
		m.saved = evt.Data
		m.afterEdit(false)
		m.menu.RecordState(menu.Snapshot(evt.Data))
		m.setInfo(fmt.Sprintf("Reloaded %s", name))
		events.Editor.Reload(evt.Path)
	}
}
