package menu

import (
	"fmt"

	"github.com/atomicstack/editmenu/internal/logging"
	"github.com/atomicstack/editmenu/internal/logging/events"
	"github.com/atomicstack/editmenu/internal/loop"
)

// Selection reports whether the editable surface has a non-empty selection.
type Selection interface {
	Collapsed() bool
}

// Clipboard reads the system clipboard. ReadText may block; it is only ever
// called off the event loop.
type Clipboard interface {
	ReadText() (string, error)
}

// selectionActions need a non-collapsed selection to do anything.
var selectionActions = []string{ActionCut, ActionCopy, ActionSearchWithGoogle, ActionTranslate}

type updater struct {
	state     *State
	items     ItemCache
	selection Selection
	clipboard Clipboard
	sched     loop.Scheduler

	// pasteSeq discards clipboard reads superseded by a newer refresh.
	pasteSeq uint64
}

func (u *updater) update() {
	if u.state.IsDestroyed() {
		return
	}
	guard("menu.update", func() {
		collapsed := u.selection == nil || u.selection.Collapsed()
		for _, action := range selectionActions {
			u.setEnabled(action, !collapsed)
		}
		u.updateHistory()
		u.refreshPaste()
	})
}

func (u *updater) updateHistory() {
	u.setEnabled(ActionUndo, u.state.CanUndo())
	u.setEnabled(ActionRedo, u.state.CanRedo())
}

func (u *updater) setEnabled(action string, enabled bool) {
	el, ok := u.items.Get(action)
	if !ok {
		return
	}
	if !el.ToggleClass(ClassDisabled, !enabled) {
		return
	}
	if enabled {
		el.RemoveAttr(AttrAriaDisabled)
	} else {
		el.SetAttr(AttrAriaDisabled, "true")
	}
	events.Menu.ItemState(action, enabled)
}

// refreshPaste resolves paste enablement asynchronously. Until the read
// completes the item keeps whatever state it had.
func (u *updater) refreshPaste() {
	if _, ok := u.items.Get(ActionPaste); !ok {
		return
	}
	if u.clipboard == nil {
		u.setEnabled(ActionPaste, true)
		return
	}
	u.pasteSeq++
	seq := u.pasteSeq
	clip := u.clipboard
	u.sched.Go(func() func() {
		text, err := clip.ReadText()
		return func() {
			if u.state.IsDestroyed() || seq != u.pasteSeq {
				return
			}
			if err != nil {
				// Fails open on purpose: an enabled paste that turns out empty
				// is harmless, a disabled one that should work is not.
				logging.Error(fmt.Errorf("clipboard read: %w", err))
				events.Menu.ClipboardFallback(err)
				u.setEnabled(ActionPaste, true)
				return
			}
			u.setEnabled(ActionPaste, text != "")
		}
	})
}

// invalidate drops in-flight clipboard reads.
func (u *updater) invalidate() {
	u.pasteSeq++
}
