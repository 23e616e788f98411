package ui

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/atomicstack/editmenu/internal/dom"
	"github.com/atomicstack/editmenu/internal/logging"
	"github.com/atomicstack/editmenu/internal/logging/events"
	"github.com/atomicstack/editmenu/internal/menu"
	"github.com/atomicstack/editmenu/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	searchURL    = "https://www.google.com/search?q="
	translateURL = "https://translate.google.com/?sl=auto&op=translate"
	defaultLang  = "en"
)

// runAction performs an editing action chosen from the context menu or the
// selection overlay. It runs on the update goroutine; side effects that
// block are queued as commands.
func (m *Model) runAction(action string) {
	name, arg, _ := strings.Cut(action, ":")
	switch name {
	case menu.ActionCut:
		m.copySelection(true)
	case menu.ActionCopy:
		m.copySelection(false)
	case menu.ActionPaste:
		m.paste()
	case menu.ActionSelectAll:
		m.buf.SelectAll()
		m.caretDirty = true
	case menu.ActionUndo:
		m.menu.Undo()
	case menu.ActionRedo:
		m.menu.Redo()
	case menu.ActionSearchWithGoogle:
		if text := strings.TrimSpace(m.buf.SelectedText()); text != "" {
			m.openURL(action, "Search", searchURL+url.QueryEscape(text))
		}
	case menu.ActionTranslate:
		if arg == "" {
			arg = defaultLang
		}
		if text := strings.TrimSpace(m.buf.SelectedText()); text != "" {
			target := fmt.Sprintf("%s&tl=%s&text=%s", translateURL, url.QueryEscape(arg), url.QueryEscape(text))
			m.openURL(action, "Translate", target)
		}
	default:
		logging.Error(fmt.Errorf("unknown action %q", action))
	}
}

func (m *Model) copySelection(cut bool) {
	text := m.buf.SelectedText()
	if text == "" {
		return
	}
	if err := m.clipboard.WriteText(text); err != nil {
		m.setError(fmt.Errorf("clipboard: %w", err))
		return
	}
	if cut && m.buf.DeleteSelection() {
		m.afterEdit(true)
	}
}

// paste reads the clipboard off the update goroutine and inserts the text
// once the read settles.
func (m *Model) paste() {
	clip := m.clipboard
	m.sched.Go(func() func() {
		text, err := clip.ReadText()
		return func() {
			if m.menu.State().IsDestroyed() {
				return
			}
			if err != nil {
				m.setError(fmt.Errorf("clipboard: %w", err))
				return
			}
			if m.buf.Insert(normalizeNewlines(text)) {
				m.afterEdit(true)
			}
		}
	})
}

func (m *Model) openURL(id, label, target string) {
	open := m.opener
	m.queue(m.bus.Execute(command.Request{
		ID:    id,
		Label: label,
		Handler: func() (string, error) {
			if err := open(target); err != nil {
				return "", err
			}
			return fmt.Sprintf("Opened %s", label), nil
		},
	}))
}

// afterEdit keeps the caret in view and, for user edits, notifies the menu
// through an input event on the surface.
func (m *Model) afterEdit(input bool) {
	m.buf.EnsureCursorVisible(m.textHeight())
	m.caretDirty = true
	if input {
		m.surface.Dispatch(dom.NewEvent(dom.EventInput))
	}
}

func (m *Model) handleActionResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.Result)
	if !ok {
		return nil
	}
	if result.Err != nil {
		m.setError(result.Err)
		events.Action.Error(result.Err)
		return nil
	}
	m.errMsg = ""
	if result.Info != "" && m.verbose {
		m.setInfo(result.Info)
	}
	events.Action.Success(result.Info)
	return nil
}

type savedMsg struct {
	path  string
	bytes int
	text  string
	err   error
}

// saveCmd writes text to the open file.
func (m *Model) saveCmd() tea.Cmd {
	if m.path == "" {
		m.setInfo("No file to save to")
		return nil
	}
	path, text := m.path, m.buf.Content()
	return func() tea.Msg {
		if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return savedMsg{path: path, err: fmt.Errorf("save %s: %w", path, err)}
		}
		return savedMsg{path: path, bytes: len(text), text: text}
	}
}

func (m *Model) handleSavedMsg(msg tea.Msg) tea.Cmd {
	saved, ok := msg.(savedMsg)
	if !ok {
		return nil
	}
	if saved.err != nil {
		m.setError(saved.err)
		return nil
	}
	m.saved = saved.text
	m.errMsg = ""
	m.setInfo(fmt.Sprintf("Wrote %d bytes", saved.bytes))
	events.Editor.Save(saved.path, saved.bytes)
	return nil
}

func (m *Model) setError(err error) {
	if err == nil {
		return
	}
	logging.Error(err)
	m.errMsg = err.Error()
	m.forceClearInfo()
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func normalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}
