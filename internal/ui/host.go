package ui

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"

	"github.com/atomicstack/editmenu/internal/editor"
	"github.com/atomicstack/editmenu/internal/menu"
)

// Clipboard is the system clipboard as the editor sees it.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(string) error
}

// SystemClipboard talks to the platform clipboard.
type SystemClipboard struct{}

func (SystemClipboard) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", fmt.Errorf("clipboard unsupported on this platform")
	}
	return clipboard.ReadAll()
}

func (SystemClipboard) WriteText(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard unsupported on this platform")
	}
	return clipboard.WriteAll(text)
}

// OpenURL hands url to the platform opener without waiting for it.
func OpenURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "linux", "freebsd", "openbsd", "netbsd":
		cmd = exec.Command("xdg-open", url)
	default:
		return fmt.Errorf("opening urls not supported on %s", runtime.GOOS)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", url, err)
	}
	go cmd.Wait()
	return nil
}

// bufferContent exposes the editor buffer as menu history content.
type bufferContent struct {
	m *Model
}

func (c bufferContent) Snapshot() menu.Snapshot {
	return menu.Snapshot(c.m.buf.Content())
}

func (c bufferContent) Restore(snap menu.Snapshot) {
	c.m.buf.SetContent(string(snap))
	c.m.afterEdit(false)
}

// bufferSelection reports the editor selection to the menu.
type bufferSelection struct {
	buf *editor.Buffer
}

func (s bufferSelection) Collapsed() bool {
	return s.buf.Collapsed()
}
