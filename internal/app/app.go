package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/atomicstack/editmenu/internal/backend"
	"github.com/atomicstack/editmenu/internal/logging"
	"github.com/atomicstack/editmenu/internal/logging/events"
	"github.com/atomicstack/editmenu/internal/loop"
	"github.com/atomicstack/editmenu/internal/menu"
	"github.com/atomicstack/editmenu/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	Path    string
	Width   int
	Height  int
	Mouse   bool
	Verbose bool
	Menu    menu.Config
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	text, err := readFile(cfg.Path)
	if err != nil {
		return err
	}

	var watcher *backend.Watcher
	if cfg.Path != "" {
		watcher, err = backend.NewWatcher(cfg.Path, backend.DefaultSettle)
		if err != nil {
			// Editing still works without reload notifications.
			logging.Error(fmt.Errorf("watch disabled: %w", err))
			watcher = nil
		}
	}
	if watcher != nil {
		defer watcher.Stop()
	}

	sched := loop.NewProgram(0)
	model, err := ui.NewModel(ui.Options{
		Path:      cfg.Path,
		Text:      text,
		Width:     cfg.Width,
		Height:    cfg.Height,
		Menu:      cfg.Menu,
		Scheduler: sched,
		Clipboard: ui.SystemClipboard{},
		Opener:    ui.OpenURL,
		Watcher:   watcher,
		Verbose:   cfg.Verbose,
	})
	if err != nil {
		return fmt.Errorf("build model: %w", err)
	}
	defer model.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}
	program := tea.NewProgram(model, opts...)
	sched.Attach(program.Send)

	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// readFile returns the contents of path. A missing file starts an empty
// buffer that is created on first save.
func readFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	events.Editor.Load(path, len(data))
	return string(data), nil
}
